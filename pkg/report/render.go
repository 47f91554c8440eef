package report

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/utils/logging"
)

const (
	fontFamily   = "DejaVu"
	marginMM     = 10.0
	bottomMM     = 15.0
	cellPadMM    = 1.0
	tableLineMM  = 4.0
	bodyLineMM   = 5.0
	checkGlyph   = "4" // check mark in ZapfDingbats
	checkFont    = "ZapfDingbats"
	metaLabelMM  = 38.0
	itemGlyphMM  = 6.0
	headerLineMM = 4.0
)

// DejaVu Sans Condensed covers Latin, Greek, Cyrillic and common symbols.
var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	fontRegular []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	fontBold []byte
	//go:embed fonts/DejaVuSansCondensed-Oblique.ttf
	fontOblique []byte
)

type rgb struct{ r, g, b int }

var (
	headerFill = rgb{0x1a, 0x23, 0x7e}
	white      = rgb{0xff, 0xff, 0xff}
	black      = rgb{0, 0, 0}

	toneFill = map[Tone]rgb{
		ToneNeutral: {0xee, 0xee, 0xee},
		ToneLow:     {0x00, 0xff, 0x00},
		ToneMedium:  {0xff, 0xff, 0x00},
		ToneHigh:    {0xff, 0x00, 0x00},
	}
)

// Renderer turns documents into PDF. It holds no per-document state and is
// safe for concurrent use.
type Renderer struct {
	icons IconSet
}

type Option func(*Renderer)

// WithIcons sets the glyphs printed in front of briefing items.
func WithIcons(icons IconSet) Option {
	return func(r *Renderer) {
		r.icons = icons
	}
}

func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{icons: DefaultIcons}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes doc to w as a PDF. Identical documents produce identical
// bytes.
func (r *Renderer) Render(ctx context.Context, doc *Document, w io.Writer) error {
	if doc == nil {
		return goerr.New("document is nil")
	}

	orientation := doc.Orientation
	if orientation == "" {
		orientation = Portrait
	}

	pdf := fpdf.New(string(orientation), "mm", "A4", "")
	stamp := doc.GeneratedAt
	if stamp.IsZero() {
		stamp = time.Unix(0, 0)
	}
	pdf.SetCreationDate(stamp.UTC())
	pdf.SetModificationDate(stamp.UTC())
	pdf.SetCatalogSort(true)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("safetydocs", false)
	pdf.SetMargins(marginMM, marginMM, marginMM)
	pdf.SetAutoPageBreak(true, bottomMM)
	pdf.AliasNbPages("")

	pdf.AddUTF8FontFromBytes(fontFamily, "", fontRegular)
	pdf.AddUTF8FontFromBytes(fontFamily, "B", fontBold)
	pdf.AddUTF8FontFromBytes(fontFamily, "I", fontOblique)

	p := &page{pdf: pdf, icons: r.icons}
	pdf.SetFooterFunc(p.pageFooter)

	pdf.AddPage()
	p.title(doc.Title)
	p.metadata(doc.Metadata)

	for _, b := range doc.Blocks {
		p.block(b)
	}
	if doc.Footer != "" {
		p.closingLine(doc.Footer)
	}
	if doc.Legend != nil {
		p.legend(doc.Legend)
	}

	if err := pdf.Error(); err != nil {
		return goerr.Wrap(err, "failed to lay out document", goerr.V("kind", doc.Kind), goerr.V("subject", doc.Subject))
	}
	if err := pdf.Output(w); err != nil {
		return goerr.Wrap(err, "failed to write document", goerr.V("kind", doc.Kind), goerr.V("subject", doc.Subject))
	}

	logging.From(ctx).Debug("report rendered",
		"kind", doc.Kind,
		"subject", doc.Subject,
		"pages", pdf.PageCount(),
	)
	return nil
}

// page wraps the fpdf handle of one Render call.
type page struct {
	pdf   *fpdf.Fpdf
	icons IconSet
}

// tr replaces runes the embedded font tables cannot index.
func (p *page) tr(text string) string {
	return strings.Map(func(r rune) rune {
		if r > 0xFFFF {
			return utf8.RuneError
		}
		return r
	}, text)
}

func (p *page) color(c rgb, fill bool) {
	if fill {
		p.pdf.SetFillColor(c.r, c.g, c.b)
	} else {
		p.pdf.SetTextColor(c.r, c.g, c.b)
	}
}

func (p *page) printableWidth() float64 {
	w, _ := p.pdf.GetPageSize()
	left, _, right, _ := p.pdf.GetMargins()
	return w - left - right
}

// ensureSpace starts a new page when h millimetres no longer fit.
func (p *page) ensureSpace(h float64) bool {
	_, pageH := p.pdf.GetPageSize()
	_, _, _, bottom := p.pdf.GetMargins()
	if p.pdf.GetY()+h > pageH-bottom {
		p.pdf.AddPage()
		return true
	}
	return false
}

func (p *page) pageFooter() {
	p.pdf.SetY(-12)
	p.pdf.SetFont(fontFamily, "I", 8)
	p.color(black, false)
	p.pdf.CellFormat(0, 6, fmt.Sprintf("Seite %d/{nb}", p.pdf.PageNo()), "", 0, "C", false, 0, "")
}

func (p *page) title(text string) {
	p.pdf.SetFont(fontFamily, "B", 16)
	p.pdf.MultiCell(0, 8, p.tr(text), "", "L", false)
	p.pdf.Ln(2)
}

func (p *page) metadata(fields []Field) {
	for _, f := range fields {
		p.pdf.SetFont(fontFamily, "B", 10)
		p.pdf.CellFormat(metaLabelMM, bodyLineMM, p.tr(f.Label+":"), "", 0, "L", false, 0, "")
		p.pdf.SetFont(fontFamily, "", 10)
		p.pdf.MultiCell(0, bodyLineMM, p.tr(f.Value), "", "L", false)
	}
	p.pdf.Ln(4)
}

func (p *page) block(b Block) {
	if b.Heading != "" {
		// keep the heading together with at least one line of content
		p.ensureSpace(8 + 2*bodyLineMM)
		p.pdf.SetFont(fontFamily, "B", 12)
		p.pdf.CellFormat(0, 8, p.tr(b.Heading), "", 1, "L", false, 0, "")
	}

	p.pdf.SetFont(fontFamily, "", 10)
	for _, para := range b.Paragraphs {
		p.pdf.MultiCell(0, bodyLineMM, p.tr(para), "", "L", false)
		p.pdf.Ln(1)
	}

	if b.Table != nil {
		p.table(b.Table)
	}

	for _, it := range b.Items {
		p.pdf.SetFont(fontFamily, "", 10)
		p.pdf.CellFormat(itemGlyphMM, bodyLineMM, p.tr(p.icons.glyph(it.Icon)), "", 0, "L", false, 0, "")
		p.pdf.MultiCell(0, bodyLineMM, p.tr(it.Text), "", "L", false)
	}

	p.pdf.Ln(4)
}

func (p *page) columnWidths(cols []Column) []float64 {
	var total float64
	for _, c := range cols {
		total += c.Weight
	}
	width := p.printableWidth()
	widths := make([]float64, len(cols))
	for i, c := range cols {
		if total == 0 {
			widths[i] = width / float64(len(cols))
			continue
		}
		widths[i] = width * c.Weight / total
	}
	return widths
}

// lineCount returns how many lines text occupies in a cell of width w.
func (p *page) lineCount(text string, w float64) int {
	if text == "" {
		return 1
	}
	n := len(p.pdf.SplitText(p.tr(text), w-2*cellPadMM))
	if n < 1 {
		return 1
	}
	return n
}

func (p *page) tableHeader(cols []Column, widths []float64) {
	p.pdf.SetFont(fontFamily, "B", 8)

	lines := 1
	for i, c := range cols {
		lines = max(lines, p.lineCount(c.Title, widths[i]))
	}
	h := float64(lines)*headerLineMM + 2*cellPadMM

	p.ensureSpace(h)
	left, _, _, _ := p.pdf.GetMargins()
	x, y := left, p.pdf.GetY()

	p.color(headerFill, true)
	p.color(white, false)
	for i, c := range cols {
		p.pdf.Rect(x, y, widths[i], h, "FD")
		p.pdf.SetXY(x, y+cellPadMM)
		p.pdf.MultiCell(widths[i], headerLineMM, p.tr(c.Title), "", "C", false)
		x += widths[i]
	}
	p.color(black, false)
	p.pdf.SetXY(left, y+h)
}

func (p *page) table(t *Table) {
	widths := p.columnWidths(t.Columns)
	p.tableHeader(t.Columns, widths)

	p.pdf.SetFont(fontFamily, "", 8)
	left, _, _, _ := p.pdf.GetMargins()

	for _, row := range t.Rows {
		lines := 1
		for i, c := range row.Cells {
			if i < len(widths) && !c.Check {
				lines = max(lines, p.lineCount(c.Text, widths[i]))
			}
		}
		h := float64(lines)*tableLineMM + 2*cellPadMM

		if p.ensureSpace(h) {
			p.tableHeader(t.Columns, widths)
			p.pdf.SetFont(fontFamily, "", 8)
		}

		x, y := left, p.pdf.GetY()
		for i, c := range row.Cells {
			if i >= len(widths) {
				break
			}
			p.cell(c, t.Columns[i].Align, x, y, widths[i], h)
			x += widths[i]
		}
		p.pdf.SetXY(left, y+h)
	}
}

func (p *page) cell(c Cell, align string, x, y, w, h float64) {
	if fill, ok := toneFill[c.Tone]; ok {
		p.color(fill, true)
		p.pdf.Rect(x, y, w, h, "FD")
	} else {
		p.pdf.Rect(x, y, w, h, "D")
	}

	if c.Check {
		if c.Checked {
			p.pdf.SetFont(checkFont, "", 9)
			p.pdf.SetXY(x, y)
			p.pdf.CellFormat(w, h, checkGlyph, "", 0, "C", false, 0, "")
			p.pdf.SetFont(fontFamily, "", 8)
		}
		return
	}

	if c.Text == "" {
		return
	}
	if align == "" {
		align = "L"
	}
	p.pdf.SetXY(x, y+cellPadMM)
	p.pdf.MultiCell(w, tableLineMM, p.tr(c.Text), "", align, false)
}

func (p *page) closingLine(text string) {
	p.pdf.Ln(4)
	p.pdf.SetFont(fontFamily, "I", 9)
	p.pdf.CellFormat(0, bodyLineMM, p.tr(text), "", 1, "L", false, 0, "")
}

func (p *page) legend(l *Legend) {
	p.pdf.AddPage()
	p.pdf.SetFont(fontFamily, "B", 12)
	p.pdf.CellFormat(0, 8, p.tr(l.Title), "", 1, "L", false, 0, "")
	p.pdf.Ln(2)

	for _, e := range l.Entries {
		p.pdf.SetFont(fontFamily, "B", 10)
		p.pdf.CellFormat(0, bodyLineMM, p.tr(e.Label), "", 1, "L", false, 0, "")
		p.pdf.SetFont(fontFamily, "", 10)
		p.pdf.MultiCell(0, bodyLineMM, p.tr(e.Value), "", "L", false)
		p.pdf.Ln(2)
	}
}
