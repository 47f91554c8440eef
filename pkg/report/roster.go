package report

// BlankRosterRows is the number of empty lines appended to every roster for
// people who sign up on site.
const BlankRosterRows = 10

// ParticipantRow is one line of the participant roster
type ParticipantRow struct {
	FirstName string `toml:"first_name"`
	LastName  string `toml:"last_name"`
	Company   string `toml:"company"`
	Position  string `toml:"position"`
}

var rosterColumns = []Column{
	{Title: "Nr.", Weight: 0.8, Align: "C"},
	{Title: "Name", Weight: 3, Align: "L"},
	{Title: "Vorname", Weight: 3, Align: "L"},
	{Title: "Firma", Weight: 3, Align: "L"},
	{Title: "Position", Weight: 2.5, Align: "L"},
	{Title: "Unterschrift", Weight: 3.5, Align: "L"},
	{Title: "Datum", Weight: 2, Align: "L"},
}

// BuildRoster lays out the sign-in sheet. Signature and date cells are left
// blank for handwriting.
func BuildRoster(h Header, rows []ParticipantRow) (*Document, error) {
	if err := h.validate(); err != nil {
		return nil, err
	}

	table := &Table{Columns: rosterColumns}
	for i, r := range rows {
		table.Rows = append(table.Rows, Row{Cells: []Cell{
			{Text: itoa(i + 1)},
			{Text: r.LastName},
			{Text: r.FirstName},
			{Text: r.Company},
			{Text: r.Position},
			{},
			{},
		}})
	}
	for range BlankRosterRows {
		table.Rows = append(table.Rows, blankRow(len(rosterColumns)))
	}

	return &Document{
		Kind:        KindRoster,
		Subject:     h.Subject,
		Title:       "Teilnehmerliste - " + h.Subject,
		Orientation: Portrait,
		Metadata:    h.metadata(),
		Blocks:      []Block{{Table: table}},
		GeneratedAt: h.GeneratedAt,
	}, nil
}

func itoa(i int) string {
	return intText(&i)
}
