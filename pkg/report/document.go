package report

import "time"

// Orientation of the pages of a document
type Orientation string

const (
	Portrait  Orientation = "P"
	Landscape Orientation = "L"
)

// Tone is the background colour class of a table cell
type Tone int

const (
	ToneNone Tone = iota
	ToneNeutral
	ToneLow
	ToneMedium
	ToneHigh
)

// Document is the layout-independent description of a report.
type Document struct {
	Kind        Kind
	Subject     string
	Title       string
	Orientation Orientation
	Metadata    []Field
	Blocks      []Block
	Legend      *Legend
	Footer      string
	GeneratedAt time.Time
}

// Field is a label/value line
type Field struct {
	Label string
	Value string
}

// Block is a content section. Any of its parts may be empty.
type Block struct {
	Heading    string
	Paragraphs []string
	Table      *Table
	Items      []Item
}

// Table is rendered with its column header repeated on every page.
type Table struct {
	Columns []Column
	Rows    []Row
}

// Column widths are relative weights, scaled to the printable width.
type Column struct {
	Title  string
	Weight float64
	Align  string
}

type Row struct {
	Cells []Cell
}

// Cell is a table cell. A cell with Check set prints a check mark when
// Checked is true and stays empty otherwise.
type Cell struct {
	Text    string
	Tone    Tone
	Check   bool
	Checked bool
}

// Item is a bulleted line of a briefing. Icon is an opaque tag resolved by
// the renderer's IconSet.
type Item struct {
	Section string
	Icon    string
	Text    string
}

// Legend is printed on its own page after the content.
type Legend struct {
	Title   string
	Entries []Field
}

func blankRow(columns int) Row {
	return Row{Cells: make([]Cell, columns)}
}
