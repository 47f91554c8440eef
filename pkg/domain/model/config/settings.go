package config

// DefaultRiskScaleMax is the upper bound of severity and probability
const DefaultRiskScaleMax = 5

// AreaSeed is an area created at startup when no area of that name exists
type AreaSeed struct {
	Name        string
	Description string
	SortOrder   int
}

// BriefingItem is a standard bullet added to generated briefings
type BriefingItem struct {
	Section string
	Icon    string
	Text    string
}

// BriefingDefaults is the text a generated briefing starts with
type BriefingDefaults struct {
	Title              string
	Organisation       string
	AllgemeineHinweise string
	NotfaelleRaeumung  string
	ZusaetzlicheRegeln string
	Items              []BriefingItem
}

// Settings holds application settings loaded from the TOML config
type Settings struct {
	RiskScaleMax int
	Areas        []AreaSeed
	Briefing     BriefingDefaults
}

// Default returns the built-in settings
func Default() *Settings {
	return &Settings{
		RiskScaleMax: DefaultRiskScaleMax,
		Briefing:     DefaultBriefing(),
	}
}

// DefaultBriefing returns the standard rules for productions and events
func DefaultBriefing() BriefingDefaults {
	return BriefingDefaults{
		Organisation: "• Verantwortlich bei Produktionen ist der Technische Leiter\n" +
			"• Verantwortlich für Einzelgewerke ist der Gewerkeleiter / Bereichsleiter\n" +
			"• Den Anweisungen des Verantwortlichen ist Folge zu leisten\n" +
			"• Die Sicherheitskennzeichnungen sind zu beachten\n" +
			"• Die Kommunikationskette ist einzuhalten",
		AllgemeineHinweise: "• Alle Arbeitsanweisungen müssen eingehalten werden\n" +
			"• Bei Unklarheiten zu einer Aufgabe unbedingt nachfragen\n" +
			"• Anweisungen zu unsicheren Arbeiten müssen nicht befolgt werden!\n" +
			"• Alle Arbeiten sind sicher auszuführen!\n" +
			"• Achtet auf Euch und Andere!\n" +
			"• Die rechtlichen Bestimmungen sind einzuhalten\n" +
			"• Die Arbeitsschutzvorschriften und Gefährdungsbeurteilungen sind im Produktionsbüro einsehbar\n" +
			"• Alkohol, Drogen oder andere berauschende Mittel sind vor und während der Arbeit verboten\n" +
			"• Das Rauchen ist ausschließlich an den dafür vorgesehenen Orten gestattet",
		NotfaelleRaeumung: "• Alle Verkehrswege, z.B. Türen und Tore müssen freigehalten werden\n" +
			"• Flucht- und Rettungswege, bzw. Notausgänge oder Feuerlöscheinrichtungen dürfen nicht verstellt werden\n" +
			"• Bei Unfällen ist sofort Hilfe zu leisten, Ersthelfer/Sanitäter herbei zu holen! (CH 144/EU 112)\n" +
			"• Unfälle und Beinahe-Unfälle müssen sofort dem direkten Ansprechpartner gemeldet werden\n" +
			"• Brände sind sofort zu melden (CH 118/EU 112) und mit den Feuerlöscheinrichtungen zu bekämpfen\n" +
			"• Bei einer notwendigen Räumung ist hilflosen Personen und Personen mit Beeinträchtigung zu helfen\n" +
			"• Alle Mitarbeiter sammeln sich im Falle einer Räumung ausschließlich an der bekanntgegebenen Sammelstelle",
		Items: []BriefingItem{
			{Section: "allgemeine_hinweise", Icon: "info", Text: "Alle Arbeitsanweisungen müssen eingehalten werden"},
			{Section: "allgemeine_hinweise", Icon: "info", Text: "Bei Unklarheiten zu einer Aufgabe unbedingt nachfragen"},
			{Section: "allgemeine_hinweise", Icon: "prohibited", Text: "Alkohol, Drogen oder andere berauschende Mittel sind vor und während der Arbeit verboten"},
			{Section: "allgemeine_hinweise", Icon: "no_smoking", Text: "Das Rauchen ist ausschließlich an den dafür vorgesehenen Orten gestattet"},
			{Section: "notfaelle", Icon: "no_blocking", Text: "Alle Verkehrswege, z.B. Türen und Tore müssen freigehalten werden"},
			{Section: "notfaelle", Icon: "phone", Text: "Bei Unfällen ist sofort Hilfe zu leisten, Ersthelfer/Sanitäter herbei zu holen!"},
			{Section: "notfaelle", Icon: "fire", Text: "Brände sind sofort zu melden (CH 118/EU 112)"},
			{Section: "notfaelle", Icon: "exit", Text: "Bei einer notwendigen Räumung ist hilflosen Personen zu helfen"},
			{Section: "notfaelle", Icon: "assembly", Text: "Alle Mitarbeiter sammeln sich im Falle einer Räumung ausschließlich an der Sammelstelle"},
		},
	}
}
