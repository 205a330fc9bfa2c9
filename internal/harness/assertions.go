package harness

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/roach88/ebookstore/internal/book"
)

// transcriptTail bounds how much of the transcript an AssertionError shows.
const transcriptTail = 400

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type       string // Assertion type for categorization
	Expected   string // Human-readable expected outcome
	Actual     string // Human-readable actual outcome
	Transcript string // Session output for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if e.Transcript != "" {
		tail := e.Transcript
		if len(tail) > transcriptTail {
			start := len(tail) - transcriptTail
			for start < len(tail) && !utf8.RuneStart(tail[start]) {
				start++
			}
			tail = "..." + tail[start:]
		}
		fmt.Fprintf(&buf, "\nTranscript tail:\n%s\n", tail)
	}

	return buf.String()
}

// assertOutputContains checks that the transcript contains the text.
func assertOutputContains(transcript string, assertion Assertion) error {
	if strings.Contains(transcript, assertion.Text) {
		return nil
	}
	return &AssertionError{
		Type:       AssertOutputContains,
		Expected:   fmt.Sprintf("output containing %q", assertion.Text),
		Actual:     "not found in output",
		Transcript: transcript,
	}
}

// assertOutputOrder checks that the texts appear in the specified order.
// Each text is searched for after the end of the previous match, so
// intervening output is allowed.
func assertOutputOrder(transcript string, assertion Assertion) error {
	offset := 0
	for i, text := range assertion.Texts {
		idx := strings.Index(transcript[offset:], text)
		if idx < 0 {
			actual := fmt.Sprintf("%q not found", text)
			if i > 0 {
				actual = fmt.Sprintf("%q not found after %q", text, assertion.Texts[i-1])
			}
			return &AssertionError{
				Type:       AssertOutputOrder,
				Expected:   fmt.Sprintf("output in order: %q", assertion.Texts),
				Actual:     actual,
				Transcript: transcript,
			}
		}
		offset += idx + len(text)
	}
	return nil
}

// assertOutputCount checks that the text appears exactly Count times.
func assertOutputCount(transcript string, assertion Assertion) error {
	count := strings.Count(transcript, assertion.Text)
	if count == *assertion.Count {
		return nil
	}
	return &AssertionError{
		Type:       AssertOutputCount,
		Expected:   fmt.Sprintf("%q %d times", assertion.Text, *assertion.Count),
		Actual:     fmt.Sprintf("%d times", count),
		Transcript: transcript,
	}
}

// assertBookCount checks the size of the final inventory.
func assertBookCount(books []book.Book, assertion Assertion) error {
	if len(books) == *assertion.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertBookCount,
		Expected: fmt.Sprintf("%d books", *assertion.Count),
		Actual:   fmt.Sprintf("%d books", len(books)),
	}
}

// assertBookState checks the fields of the book with the given id.
func assertBookState(books []book.Book, assertion Assertion) error {
	id := *assertion.ID
	b, ok := findBook(books, id)
	if !ok {
		return &AssertionError{
			Type:     AssertBookState,
			Expected: fmt.Sprintf("book %d", id),
			Actual:   "no such book",
		}
	}

	var mismatches []string
	if want := assertion.Expect.Title; want != nil && *want != b.Title {
		mismatches = append(mismatches, fmt.Sprintf("title: expected %q, got %q", *want, b.Title))
	}
	if want := assertion.Expect.Author; want != nil && *want != b.Author {
		mismatches = append(mismatches, fmt.Sprintf("author: expected %q, got %q", *want, b.Author))
	}
	if want := assertion.Expect.Quantity; want != nil && *want != b.Quantity {
		mismatches = append(mismatches, fmt.Sprintf("quantity: expected %d, got %d", *want, b.Quantity))
	}

	if len(mismatches) > 0 {
		return &AssertionError{
			Type:     AssertBookState,
			Expected: fmt.Sprintf("book %d to match", id),
			Actual:   strings.Join(mismatches, "; "),
		}
	}
	return nil
}

// assertBookAbsent checks that no book has the given id.
func assertBookAbsent(books []book.Book, assertion Assertion) error {
	id := *assertion.ID
	if b, ok := findBook(books, id); ok {
		return &AssertionError{
			Type:     AssertBookAbsent,
			Expected: fmt.Sprintf("no book %d", id),
			Actual:   fmt.Sprintf("found %q by %q", b.Title, b.Author),
		}
	}
	return nil
}

func findBook(books []book.Book, id int64) (book.Book, bool) {
	for _, b := range books {
		if b.ID == id {
			return b, true
		}
	}
	return book.Book{}, false
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			errors = append(errors, err.Error())
			continue
		}

		var err error
		switch assertion.Type {
		case AssertOutputContains:
			err = assertOutputContains(result.Transcript, assertion)
		case AssertOutputOrder:
			err = assertOutputOrder(result.Transcript, assertion)
		case AssertOutputCount:
			err = assertOutputCount(result.Transcript, assertion)
		case AssertBookCount:
			err = assertBookCount(result.Books, assertion)
		case AssertBookState:
			err = assertBookState(result.Books, assertion)
		case AssertBookAbsent:
			err = assertBookAbsent(result.Books, assertion)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
