package render

import (
	"unicode"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// CellWidth returns the number of terminal cells s occupies. East Asian wide
// and fullwidth runes take two cells, combining marks none, everything else
// one. s is measured in NFC so decomposed and precomposed text agree.
func CellWidth(s string) int {
	n := 0
	for _, r := range norm.NFC.String(s) {
		if unicode.In(r, unicode.Mn, unicode.Me) {
			continue
		}
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}
