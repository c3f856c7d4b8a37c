package brochure

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

type rgb struct{ r, g, b int }

var (
	colorPrimary   = rgb{10, 34, 64}
	colorSecondary = rgb{242, 156, 31}
	colorBody      = rgb{60, 60, 60}
	colorMuted     = rgb{100, 100, 100}
	colorWhite     = rgb{255, 255, 255}
)

const fontFamily = "Helvetica"

// WritePDF draws doc onto A4 pages. Layout decisions were made by Render;
// this only paints them.
func WritePDF(doc *Document, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(MarginLeft, TopMargin, PageWidth-MarginLeft-ContentWidth)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("amana-travel", true)

	r := &renderer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	for _, page := range doc.Pages {
		pdf.AddPage()
		for _, b := range page.Blocks {
			r.block(b)
		}
		r.footer(page.Footer)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write brochure pdf: %w", err)
	}
	return nil
}

type renderer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (r *renderer) font(style string, size float64, c rgb) {
	r.pdf.SetFont(fontFamily, style, size)
	r.pdf.SetTextColor(c.r, c.g, c.b)
}

func (r *renderer) text(x, y, w, h float64, s, align string) {
	r.pdf.SetXY(x, y)
	r.pdf.CellFormat(w, h, r.tr(s), "", 0, align, false, 0, "")
}

func (r *renderer) rule(y float64) {
	r.pdf.SetDrawColor(colorSecondary.r, colorSecondary.g, colorSecondary.b)
	r.pdf.SetLineWidth(0.5)
	r.pdf.Line(MarginLeft, y, MarginLeft+ContentWidth, y)
}

func (r *renderer) block(b Placed) {
	switch b.Kind {
	case BlockMasthead:
		r.font("B", 20, colorPrimary)
		r.text(MarginLeft, b.Y, ContentWidth, 8, b.Text, "C")
		r.font("", 12, colorMuted)
		r.text(MarginLeft, b.Y+9, ContentWidth, 6, b.Value, "C")
		r.rule(b.Y + 18)
	case BlockTitle:
		r.font("B", 16, colorPrimary)
		r.text(MarginLeft, b.Y+2, ContentWidth, 8, b.Text, "C")
	case BlockFact:
		r.font("B", 12, colorPrimary)
		r.text(MarginLeft, b.Y, 50, 7, b.Label, "L")
		r.font("", 12, colorBody)
		r.text(MarginLeft+50, b.Y, ContentWidth-50, 7, b.Value, "L")
	case BlockHeading:
		r.font("B", 13, colorPrimary)
		r.text(MarginLeft, b.Y+2, ContentWidth, 7, b.Text, "L")
	case BlockText:
		r.font("", 11, colorBody)
		r.text(MarginLeft, b.Y, ContentWidth, lineHeight, b.Text, "L")
	case BlockListItem:
		r.font("", 11, colorBody)
		r.text(MarginLeft+2, b.Y, 5, 7, "•", "L")
		r.text(MarginLeft+7, b.Y, ContentWidth-7, 7, b.Text, "L")
	case BlockTableHeader:
		r.row(b, true)
	case BlockTableRow:
		r.row(b, false)
	case BlockSpacer:
	}
}

func (r *renderer) row(b Placed, header bool) {
	if header {
		r.pdf.SetFillColor(colorPrimary.r, colorPrimary.g, colorPrimary.b)
		r.font("B", 10, colorWhite)
	} else {
		r.font("", 10, colorBody)
	}
	r.pdf.SetDrawColor(200, 200, 200)
	r.pdf.SetLineWidth(0.2)

	x := MarginLeft
	for i, lines := range b.Cells {
		w := b.Widths[i]
		style := "D"
		if header {
			style = "FD"
		}
		r.pdf.Rect(x, b.Y, w, b.Height, style)

		for j, line := range lines {
			r.text(x+1.5, b.Y+cellPadding/2+float64(j)*cellLineHeight, w-3, cellLineHeight, line, "L")
		}
		x += w
	}
}

func (r *renderer) footer(f Footer) {
	r.rule(FooterRule)

	r.font("", 9, colorBody)
	r.text(MarginLeft, FooterRule+1, ContentWidth, 5, f.PageNumber, "R")

	r.font("", 10, colorBody)
	for i, line := range f.Lines {
		r.text(MarginLeft, FooterRule+6+float64(i)*6, ContentWidth, 5, line, "C")
	}
}
