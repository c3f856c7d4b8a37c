package brochure

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// A4 geometry in millimetres.
const (
	PageWidth    = 210.0
	MarginLeft   = 20.0
	ContentWidth = 170.0
	TopMargin    = 20.0
	// PageThreshold is the lowest a block may end before it moves to a new
	// page. The footer starts at FooterRule.
	PageThreshold = 250.0
	FooterRule    = 280.0

	lineHeight     = 7.0
	cellLineHeight = 5.5
	cellPadding    = 3.0
	// mmPerChar approximates an average glyph width at the body font size.
	mmPerChar = 1.9
)

func blockHeight(b Block) float64 {
	switch b.Kind {
	case BlockMasthead:
		return 25
	case BlockTitle:
		return 14
	case BlockFact:
		return 10
	case BlockHeading:
		return 10
	case BlockText:
		return lineHeight
	case BlockListItem:
		return 8
	case BlockTableHeader, BlockTableRow:
		lines := 1
		for _, c := range b.Cells {
			if len(c) > lines {
				lines = len(c)
			}
		}
		return float64(lines)*cellLineHeight + cellPadding
	case BlockSpacer:
		return 5
	}
	return lineHeight
}

// paginate places blocks greedily: a block that would end past the
// threshold starts a new page, unless the page is still empty. Tables and
// lists may break between rows.
func paginate(blocks []Block) []Page {
	pages := []Page{{Number: 1}}
	y := TopMargin

	for _, b := range blocks {
		b.Height = blockHeight(b)
		current := &pages[len(pages)-1]

		if y+b.Height > PageThreshold && len(current.Blocks) > 0 {
			// a trailing spacer is pointless at the top of a page
			if b.Kind == BlockSpacer {
				continue
			}
			pages = append(pages, Page{Number: len(pages) + 1})
			current = &pages[len(pages)-1]
			y = TopMargin
		}

		current.Blocks = append(current.Blocks, Placed{Block: b, Y: y})
		y += b.Height
	}

	return pages
}

// stampFooters runs once the page count is known.
func stampFooters(pages []Page, agency Agency) {
	lines := footerLines(agency)
	for i := range pages {
		pages[i].Footer = Footer{
			Lines:      lines,
			PageNumber: fmt.Sprintf("Page %d of %d", i+1, len(pages)),
		}
	}
}

func footerLines(a Agency) []string {
	first := a.Name
	if a.Phone != "" {
		first += " | Phone: " + a.Phone
	}

	var second []string
	if a.Email != "" {
		second = append(second, "Email: "+a.Email)
	}
	if a.Website != "" {
		second = append(second, a.Website)
	}

	lines := []string{first}
	if len(second) > 0 {
		lines = append(lines, strings.Join(second, " | "))
	}
	return lines
}

// wrap breaks text into lines of at most width runes, splitting on spaces.
// A word longer than width is cut.
func wrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}

	var lines []string
	for _, para := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			continue
		}

		var line strings.Builder
		lineLen := 0
		for _, w := range words {
			for utf8.RuneCountInString(w) > width {
				if lineLen > 0 {
					lines = append(lines, line.String())
					line.Reset()
					lineLen = 0
				}
				r := []rune(w)
				lines = append(lines, string(r[:width]))
				w = string(r[width:])
			}

			wLen := utf8.RuneCountInString(w)
			if lineLen > 0 && lineLen+1+wLen > width {
				lines = append(lines, line.String())
				line.Reset()
				lineLen = 0
			}
			if lineLen > 0 {
				line.WriteByte(' ')
				lineLen++
			}
			line.WriteString(w)
			lineLen += wLen
		}
		if lineLen > 0 {
			lines = append(lines, line.String())
		}
	}

	return lines
}

func charsFor(widthMM float64) int {
	return int(widthMM / mmPerChar)
}
