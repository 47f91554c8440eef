package report

import "strings"

// BriefingContent is the text of a safety briefing. Empty sections are
// left out of the document entirely.
type BriefingContent struct {
	Title              string         `toml:"title"`
	EventName          string         `toml:"event_name"`
	DateAndLocation    string         `toml:"date_and_location"`
	Organisation       string         `toml:"organisation"`
	AllgemeineHinweise string         `toml:"allgemeine_hinweise"`
	NotfaelleRaeumung  string         `toml:"notfaelle_raeumung"`
	ZusaetzlicheRegeln string         `toml:"zusaetzliche_regeln"`
	Content            string         `toml:"content"`
	Items              []BriefingLine `toml:"item"`
}

// BriefingLine is an item of the briefing in display order
type BriefingLine struct {
	Section string `toml:"section"`
	Icon    string `toml:"icon"`
	Text    string `toml:"text"`
}

// BuildBriefing lays out a briefing (Unterweisung). A line break inside a
// section starts a new paragraph.
func BuildBriefing(h Header, c BriefingContent) (*Document, error) {
	if err := h.validate(); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(c.Title)
	if title == "" {
		title = "Unterweisung"
	}

	doc := &Document{
		Kind:        KindBriefing,
		Subject:     h.Subject,
		Title:       title,
		Orientation: Portrait,
		Metadata: []Field{
			{Label: "Veranstaltung", Value: orPlaceholder(c.EventName)},
			{Label: "Datum und Ort", Value: orPlaceholder(c.DateAndLocation)},
		},
		GeneratedAt: h.GeneratedAt,
	}

	sections := []struct {
		heading string
		text    string
	}{
		{"Organisation", c.Organisation},
		{"Allgemeine Hinweise", c.AllgemeineHinweise},
		{"Notfälle, Räumung", c.NotfaelleRaeumung},
		{"Zusätzliche Regeln", c.ZusaetzlicheRegeln},
		{"Sonstiges", c.Content},
	}
	for _, s := range sections {
		paragraphs := splitParagraphs(s.text)
		if len(paragraphs) == 0 {
			continue
		}
		doc.Blocks = append(doc.Blocks, Block{Heading: s.heading, Paragraphs: paragraphs})
	}

	if len(c.Items) > 0 {
		items := make([]Item, 0, len(c.Items))
		for _, it := range c.Items {
			if strings.TrimSpace(it.Text) == "" {
				continue
			}
			items = append(items, Item{Section: it.Section, Icon: it.Icon, Text: it.Text})
		}
		if len(items) > 0 {
			doc.Blocks = append(doc.Blocks, Block{Heading: "Wichtige Punkte", Items: items})
		}
	}

	if !h.GeneratedAt.IsZero() {
		doc.Footer = "Erstellt am " + h.GeneratedAt.Format(dateLayout)
	}

	return doc, nil
}

func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
