// Package book defines the inventory record shared by the store, the menu
// and the renderers.
package book

import "errors"

// ErrNotFound is returned when no book has the requested id.
var ErrNotFound = errors.New("book not found")

// Book is one inventory row.
//
// Quantity is not checked for sign and Title/Author may be empty; the
// inventory accepts whatever the operator types.
type Book struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Quantity int    `json:"quantity"`
}

// Seed returns the records inserted into an empty inventory, in insertion
// order. Ids are left zero for the store to assign.
func Seed() []Book {
	return []Book{
		{Title: "A Tale of Two Cities", Author: "Charles Dickens", Quantity: 30},
		{Title: "Harry Potter and the Philosopher's Stone", Author: "J.K. Rowling", Quantity: 40},
		{Title: "The Lion, the Witch and the Wardrobe", Author: "C. S. Lewis", Quantity: 25},
		{Title: "The Lord of the Rings", Author: "J.R.R Tolkien", Quantity: 37},
		{Title: "Alice in Wonderland", Author: "Lewis Carroll", Quantity: 12},
	}
}
