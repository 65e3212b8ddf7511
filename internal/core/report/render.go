package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/taskdesk/backend/internal/domain"
)

// Page geometry in millimetres.
const (
	marginX         = 14.0
	titleY          = 22.0
	generatedY      = 30.0
	tableTop        = 40.0
	continuationTop = 20.0
	footerOffset    = 10.0
	bottomReserve   = 20.0
	cellPadding     = 2.0
	lineHeight      = 4.5
	summaryGap      = 10.0
	summaryStep     = 7.0
	headerHeight    = lineHeight + 2*cellPadding

	fontFamily = "Helvetica"
)

// Title, Assigned To, Deadline, Status. Sums to the A4 printable width.
var columnWidths = []float64{70, 46, 33, 33}

type rgb struct{ r, g, b int }

var (
	black      = rgb{0, 0, 0}
	bodyText   = rgb{51, 51, 51}
	white      = rgb{255, 255, 255}
	headerFill = rgb{59, 130, 246}
	stripeFill = rgb{245, 247, 250}
	mutedText  = rgb{100, 100, 100}
	footerText = rgb{150, 150, 150}
)

type cellStyle struct {
	fill rgb
	text rgb
}

// Status cells get an opaque fill: the accent colour blended 20% over white.
var statusStyles = map[domain.TaskStatus]cellStyle{
	domain.TaskStatusDone:       {fill: tint(rgb{34, 197, 94}), text: rgb{22, 163, 74}},
	domain.TaskStatusInProgress: {fill: tint(rgb{59, 130, 246}), text: rgb{37, 99, 235}},
	domain.TaskStatusPending:    {fill: tint(rgb{245, 158, 11}), text: rgb{217, 119, 6}},
}

func tint(c rgb) rgb {
	blend := func(v int) int { return 255 - (255-v)*20/100 }
	return rgb{blend(c.r), blend(c.g), blend(c.b)}
}

type Option func(*Renderer)

// WithPageSize selects an fpdf page size name such as "A4" or "Letter".
func WithPageSize(size string) Option {
	return func(r *Renderer) { r.pageSize = size }
}

// WithCompression toggles content stream compression. Uncompressed output is
// larger but greppable.
func WithCompression(enabled bool) Option {
	return func(r *Renderer) { r.compress = enabled }
}

type Renderer struct {
	pageSize string
	compress bool
}

func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{pageSize: "A4", compress: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes rep as a PDF to w and returns the page count. The document
// is laid out twice: the first pass only discovers the total number of
// pages so every footer can print "Page X of N".
func (r *Renderer) Render(w io.Writer, rep *Report) (int, error) {
	probe, err := r.layout(rep, 0)
	if err != nil {
		return 0, err
	}
	total := probe.PageCount()

	doc, err := r.layout(rep, total)
	if err != nil {
		return 0, err
	}
	if err := doc.Output(w); err != nil {
		return 0, fmt.Errorf("write pdf: %w", err)
	}
	return total, nil
}

func (r *Renderer) layout(rep *Report, totalPages int) (*fpdf.Fpdf, error) {
	pdf := fpdf.New("P", "mm", r.pageSize, "")
	pdf.SetCompression(r.compress)
	pdf.SetMargins(marginX, continuationTop, marginX)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("taskdesk", true)
	pdf.SetTitle(rep.Title, true)
	pdf.SetCreationDate(rep.GeneratedAt)

	pageW, pageH := pdf.GetPageSize()
	p := &page{
		pdf:   pdf,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
		width: pageW,
		limit: pageH - bottomReserve,
	}
	pdf.SetFooterFunc(func() { p.footer(pageH-footerOffset, totalPages) })

	pdf.AddPage()
	p.heading(rep)
	end := p.table(rep.Rows)
	p.summary(end+summaryGap, rep.SummaryLines())

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("layout pdf: %w", err)
	}
	return pdf, nil
}

type page struct {
	pdf   *fpdf.Fpdf
	tr    func(string) string
	width float64
	limit float64
}

func (p *page) textColor(c rgb) { p.pdf.SetTextColor(c.r, c.g, c.b) }
func (p *page) fillColor(c rgb) { p.pdf.SetFillColor(c.r, c.g, c.b) }

func (p *page) heading(rep *Report) {
	p.textColor(black)
	p.pdf.SetFont(fontFamily, "", 18)
	p.pdf.Text(marginX, titleY, p.tr(rep.Title))

	p.textColor(mutedText)
	p.pdf.SetFont(fontFamily, "", 11)
	p.pdf.Text(marginX, generatedY, p.tr(rep.GeneratedLine()))
}

// table draws the header and body rows starting at tableTop and returns the
// y coordinate just below the last row. A row that would cross the bottom
// reserve moves to a new page, which starts with a fresh header row. A row
// taller than a whole page is split between lines and continues on the
// following pages.
func (p *page) table(rows []Row) float64 {
	y := p.headerRow(tableTop)
	p.pdf.SetFont(fontFamily, "", 10)

	newPage := func() {
		p.pdf.AddPage()
		y = p.headerRow(continuationTop)
		p.pdf.SetFont(fontFamily, "", 10)
	}
	fullPage := p.limit - (continuationTop + headerHeight)

	for i, row := range rows {
		lines, h := p.measure(row.Cells())
		if y+h > p.limit && h <= fullPage {
			newPage()
		}

		total := lineCount(lines)
		for start := 0; start < total; {
			fit := int((p.limit-y-2*cellPadding)/lineHeight + 1e-9)
			if fit < 1 {
				newPage()
				continue
			}
			end := min(start+fit, total)
			chunkH := float64(end-start)*lineHeight + 2*cellPadding
			p.bodyRow(y, i, row.Status, sliceLines(lines, start, end), chunkH)
			y += chunkH
			start = end
			if start < total {
				newPage()
			}
		}
	}
	return y
}

func lineCount(lines [][]string) int {
	n := 0
	for _, l := range lines {
		n = max(n, len(l))
	}
	return n
}

// sliceLines keeps lines [start, end) of every column.
func sliceLines(lines [][]string, start, end int) [][]string {
	out := make([][]string, len(lines))
	for col, l := range lines {
		if start < len(l) {
			out[col] = l[start:min(end, len(l))]
		}
	}
	return out
}

func (p *page) headerRow(y float64) float64 {
	p.pdf.SetFont(fontFamily, "B", 10)
	h := headerHeight

	p.fillColor(headerFill)
	p.pdf.Rect(marginX, y, p.tableWidth(), h, "F")
	p.textColor(white)

	x := marginX
	for col, label := range Columns {
		p.line(x, y+cellPadding, col, p.tr(label))
		x += columnWidths[col]
	}
	return y + h
}

func (p *page) measure(cells []string) ([][]string, float64) {
	lines := make([][]string, len(cells))
	maxLines := 1
	for col, text := range cells {
		split := p.pdf.SplitLines([]byte(p.tr(text)), columnWidths[col]-2*cellPadding)
		wrapped := make([]string, 0, len(split))
		for _, l := range split {
			wrapped = append(wrapped, string(l))
		}
		if len(wrapped) == 0 {
			wrapped = []string{""}
		}
		lines[col] = wrapped
		if len(wrapped) > maxLines {
			maxLines = len(wrapped)
		}
	}
	return lines, float64(maxLines)*lineHeight + 2*cellPadding
}

func (p *page) bodyRow(y float64, index int, status domain.TaskStatus, lines [][]string, h float64) {
	if index%2 == 1 {
		p.fillColor(stripeFill)
		p.pdf.Rect(marginX, y, p.tableWidth(), h, "F")
	}

	x := marginX
	for col, cellLines := range lines {
		p.textColor(bodyText)
		if col == len(Columns)-1 {
			if style, ok := statusStyles[status]; ok {
				p.fillColor(style.fill)
				p.pdf.Rect(x, y, columnWidths[col], h, "F")
				p.textColor(style.text)
			}
		}
		for i, text := range cellLines {
			p.line(x, y+cellPadding+float64(i)*lineHeight, col, text)
		}
		x += columnWidths[col]
	}
}

// line writes one line of already translated text inside column col.
// Deadline and status are centred.
func (p *page) line(x, y float64, col int, text string) {
	align := "L"
	if col >= 2 {
		align = "C"
	}
	p.pdf.SetXY(x+cellPadding, y)
	p.pdf.CellFormat(columnWidths[col]-2*cellPadding, lineHeight, text, "", 0, align, false, 0, "")
}

func (p *page) summary(y float64, lines []string) {
	height := summaryStep * float64(len(lines))
	if y+height > p.limit {
		p.pdf.AddPage()
		y = continuationTop + summaryGap
	}

	p.textColor(black)
	p.pdf.SetFont(fontFamily, "", 12)
	p.pdf.Text(marginX, y, SummaryHeading)

	p.pdf.SetFont(fontFamily, "", 10)
	for i, l := range lines {
		p.pdf.Text(marginX, y+summaryStep*float64(i+1), p.tr(l))
	}
}

func (p *page) footer(y float64, totalPages int) {
	p.pdf.SetFont(fontFamily, "", 9)
	p.textColor(footerText)

	label := p.tr(ConfidentialLabel)
	p.pdf.Text((p.width-p.pdf.GetStringWidth(label))/2, y, label)

	pageLabel := fmt.Sprintf("Page %d of %d", p.pdf.PageNo(), totalPages)
	p.pdf.Text(p.width-marginX-p.pdf.GetStringWidth(pageLabel), y, pageLabel)
}

func (p *page) tableWidth() float64 {
	var w float64
	for _, cw := range columnWidths {
		w += cw
	}
	return w
}
