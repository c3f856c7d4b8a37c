// Package brochure turns a package into a paginated printable document and
// renders it as PDF.
package brochure

import "amana-travel/internal/data/entity"

type BlockKind int

const (
	BlockMasthead BlockKind = iota
	BlockTitle
	BlockFact
	BlockHeading
	BlockText
	BlockListItem
	BlockTableHeader
	BlockTableRow
	BlockSpacer
)

// Block is the unit of pagination. A block is never split across pages.
type Block struct {
	Kind BlockKind
	// Text is the heading, title, list item or text line.
	Text string
	// Label and Value are set on facts; Value doubles as the masthead tagline.
	Label string
	Value string
	// Cells holds one wrapped cell per column for table rows and headers.
	Cells  [][]string
	Widths []float64
	Height float64
}

// Placed is a block positioned on a page, Y in millimetres from the top.
type Placed struct {
	Block
	Y float64
}

type Page struct {
	Number int
	Blocks []Placed
	Footer Footer
}

type Footer struct {
	Lines      []string
	PageNumber string
}

// Agency is the contact block printed in the masthead and every footer.
type Agency struct {
	Name    string
	Tagline string
	Phone   string
	Email   string
	Website string
}

type Document struct {
	Kind     entity.Kind
	Title    string
	Filename string
	Pages    []Page
}

// Headings returns every section heading in order.
func (d *Document) Headings() []string {
	var out []string
	for _, p := range d.Pages {
		for _, b := range p.Blocks {
			if b.Kind == BlockHeading {
				out = append(out, b.Text)
			}
		}
	}
	return out
}
