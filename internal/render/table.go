// Package render formats books for the terminal: a bordered grid for the
// full inventory and a labeled block for a single search hit.
package render

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/roach88/ebookstore/internal/book"
)

// headerPadding is the minimum number of cells a column is wider than its
// header, so short numeric columns don't hug their titles.
const headerPadding = 2

type alignment int

const (
	alignLeft alignment = iota
	alignRight
)

type column struct {
	header string
	align  alignment
	cell   func(book.Book) string
}

var bookColumns = []column{
	{"ID", alignRight, func(b book.Book) string { return strconv.FormatInt(b.ID, 10) }},
	{"Title", alignLeft, func(b book.Book) string { return b.Title }},
	{"Author", alignLeft, func(b book.Book) string { return b.Author }},
	{"Quantity", alignRight, func(b book.Book) string { return strconv.Itoa(b.Quantity) }},
}

// Table writes books as a grid:
//
//	+------+-------+
//	|   ID | Title |
//	+======+=======+
//	|    1 | Dune  |
//	+------+-------+
//
// Numbers are right-aligned, text left-aligned. Nothing is written for an
// empty slice; callers print their own "no books" message.
func Table(w io.Writer, books []book.Book) error {
	if len(books) == 0 {
		return nil
	}

	cells := make([][]string, len(books))
	for i, b := range books {
		row := make([]string, len(bookColumns))
		for j, col := range bookColumns {
			row[j] = col.cell(b)
		}
		cells[i] = row
	}

	widths := make([]int, len(bookColumns))
	headers := make([]string, len(bookColumns))
	for j, col := range bookColumns {
		headers[j] = col.header
		widths[j] = CellWidth(col.header) + headerPadding
		for _, row := range cells {
			if n := CellWidth(row[j]); n > widths[j] {
				widths[j] = n
			}
		}
	}

	bw := bufio.NewWriter(w)
	writeRule(bw, widths, '-')
	writeRow(bw, widths, headers)
	writeRule(bw, widths, '=')
	for _, row := range cells {
		writeRow(bw, widths, row)
		writeRule(bw, widths, '-')
	}
	return bw.Flush()
}

func writeRule(w *bufio.Writer, widths []int, fill byte) {
	w.WriteByte('+')
	for _, n := range widths {
		w.WriteString(strings.Repeat(string(fill), n+2))
		w.WriteByte('+')
	}
	w.WriteByte('\n')
}

func writeRow(w *bufio.Writer, widths []int, values []string) {
	w.WriteByte('|')
	for j, v := range values {
		w.WriteByte(' ')
		w.WriteString(pad(v, widths[j], bookColumns[j].align))
		w.WriteString(" |")
	}
	w.WriteByte('\n')
}

func pad(s string, n int, align alignment) string {
	fill := n - CellWidth(s)
	if fill <= 0 {
		return s
	}
	if align == alignRight {
		return strings.Repeat(" ", fill) + s
	}
	return s + strings.Repeat(" ", fill)
}
