package harness

import "github.com/roach88/ebookstore/internal/book"

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	// Transcript is everything the menu wrote during the session.
	Transcript string `json:"transcript"`

	// Books is the inventory once the session ended, in id order.
	Books []book.Book `json:"books"`

	// Errors holds one message per failed assertion.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Books:  []book.Book{},
		Errors: []string{},
	}
}

// AddError records a failed assertion and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
