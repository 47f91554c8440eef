package report

import (
	"strconv"

	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

// CatchAllArea is the group of hazards that have no area. It is always the
// last section of the overview; an area with this name shares it.
const CatchAllArea = "Sonstige"

// HazardRow is one hazard as printed in the overview. RiskBand is taken as
// stored; the builder never reclassifies.
type HazardRow struct {
	Area           string         `toml:"area"`
	Activity       string         `toml:"activity"`
	Hazard         string         `toml:"hazard"`
	Severity       *int           `toml:"severity"`
	Probability    *int           `toml:"probability"`
	RiskBand       types.RiskBand `toml:"risk_band"`
	Substitution   bool           `toml:"substitution"`
	Technical      bool           `toml:"technical"`
	Organizational bool           `toml:"organizational"`
	Personal       bool           `toml:"personal"`
	Mitigation     string         `toml:"mitigation"`
}

var hazardColumns = []Column{
	{Title: "Tätigkeit", Weight: 3, Align: "L"},
	{Title: "Gefährdung", Weight: 4, Align: "L"},
	{Title: "Schadenschwere", Weight: 1.6, Align: "C"},
	{Title: "Wahrscheinlichkeit", Weight: 1.8, Align: "C"},
	{Title: "Risiko", Weight: 1.4, Align: "C"},
	{Title: "S", Weight: 0.6, Align: "C"},
	{Title: "T", Weight: 0.6, Align: "C"},
	{Title: "O", Weight: 0.6, Align: "C"},
	{Title: "P", Weight: 0.6, Align: "C"},
	{Title: "Maßnahmen", Weight: 5, Align: "L"},
}

// stopLegend explains the mitigation flags in their fixed STOP order.
var stopLegend = &Legend{
	Title: "Legende STOP-Prinzip",
	Entries: []Field{
		{Label: "S - Substitution", Value: "Substitution durch Beseitigung von Gefahren oder Einsatz weniger gefährlicher Stoffe"},
		{Label: "T - Technische Maßnahmen", Value: "Technische Lösungen zur Risikominimierung"},
		{Label: "O - Organisatorische Maßnahmen", Value: "Organisatorische und kollektive Lösungen"},
		{Label: "P - Persönliche Schutzausrüstung", Value: "Persönliche Schutzausrüstung als letzte Maßnahme"},
	},
}

// BuildHazardOverview lays out the hazard assessment (GBU) of a project.
// Rows are grouped by area in first-seen order; rows without an area are
// collected in CatchAllArea, which is always emitted last.
func BuildHazardOverview(h Header, rows []HazardRow) (*Document, error) {
	if err := h.validate(); err != nil {
		return nil, err
	}

	doc := &Document{
		Kind:        KindHazardOverview,
		Subject:     h.Subject,
		Title:       "Gefährdungsbeurteilung - " + h.Subject,
		Orientation: Landscape,
		Metadata:    h.metadata(),
		Legend:      stopLegend,
		GeneratedAt: h.GeneratedAt,
	}

	for _, g := range groupByArea(rows) {
		table := &Table{Columns: hazardColumns}
		for _, r := range g.rows {
			table.Rows = append(table.Rows, hazardRow(r))
		}
		doc.Blocks = append(doc.Blocks, Block{Heading: g.name, Table: table})
	}

	return doc, nil
}

type areaGroup struct {
	name string
	rows []HazardRow
}

func groupByArea(rows []HazardRow) []areaGroup {
	var groups []areaGroup
	index := make(map[string]int)
	var rest []HazardRow

	for _, r := range rows {
		if r.Area == "" || r.Area == CatchAllArea {
			rest = append(rest, r)
			continue
		}
		i, ok := index[r.Area]
		if !ok {
			i = len(groups)
			index[r.Area] = i
			groups = append(groups, areaGroup{name: r.Area})
		}
		groups[i].rows = append(groups[i].rows, r)
	}

	if len(rest) > 0 {
		groups = append(groups, areaGroup{name: CatchAllArea, rows: rest})
	}
	return groups
}

func hazardRow(r HazardRow) Row {
	return Row{Cells: []Cell{
		{Text: r.Activity},
		{Text: r.Hazard},
		{Text: intText(r.Severity)},
		{Text: intText(r.Probability)},
		{Text: r.RiskBand.Label(), Tone: riskTone(r.RiskBand)},
		{Check: true, Checked: r.Substitution},
		{Check: true, Checked: r.Technical},
		{Check: true, Checked: r.Organizational},
		{Check: true, Checked: r.Personal},
		{Text: r.Mitigation},
	}}
}

func riskTone(b types.RiskBand) Tone {
	switch b {
	case types.RiskBandHigh:
		return ToneHigh
	case types.RiskBandMedium:
		return ToneMedium
	case types.RiskBandLow:
		return ToneLow
	default:
		return ToneNeutral
	}
}

func intText(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
