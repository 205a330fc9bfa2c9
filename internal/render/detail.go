package render

import (
	"fmt"
	"io"

	"github.com/roach88/ebookstore/internal/book"
)

// Detail writes one book as a labeled block surrounded by blank lines.
func Detail(w io.Writer, b book.Book) error {
	_, err := fmt.Fprintf(w, "\n%-11s%d\n%-11s%s\n%-11s%s\n%-11s%d\n\n",
		"ID:", b.ID,
		"Title:", b.Title,
		"Author:", b.Author,
		"Quantity:", b.Quantity,
	)
	return err
}
