package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is one scripted operator session.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Start selects the initial inventory: StartSeeded (the default) or
	// StartEmpty.
	Start string `yaml:"start,omitempty"`

	// Input lists the lines typed at the terminal, in order.
	Input []string `yaml:"input"`

	// Assertions validate the transcript and the final inventory.
	Assertions []Assertion `yaml:"assertions"`
}

// Initial inventory choices.
const (
	StartSeeded = "seeded"
	StartEmpty  = "empty"
)

// Assertion validates the transcript or the final inventory.
type Assertion struct {
	// Type specifies the assertion type:
	// - "output_contains": Text appears in the transcript
	// - "output_order": Texts appear in the transcript in order
	// - "output_count": Text appears exactly Count times
	// - "book_count": the inventory holds exactly Count books
	// - "book_state": the book with ID has the Expect field values
	// - "book_absent": no book has ID
	Type string `yaml:"type"`

	// Text is the substring to look for (output_contains, output_count).
	Text string `yaml:"text,omitempty"`

	// Texts are the substrings in expected order (output_order).
	Texts []string `yaml:"texts,omitempty"`

	// Count is the expected number (output_count, book_count).
	Count *int `yaml:"count,omitempty"`

	// ID addresses a book (book_state, book_absent).
	ID *int64 `yaml:"id,omitempty"`

	// Expect holds the expected field values (book_state).
	// Subset match - only specified fields are validated.
	Expect *BookExpect `yaml:"expect,omitempty"`
}

// BookExpect lists book fields to compare. Nil fields are not checked.
type BookExpect struct {
	Title    *string `yaml:"title,omitempty"`
	Author   *string `yaml:"author,omitempty"`
	Quantity *int    `yaml:"quantity,omitempty"`
}

// Assertion type constants.
const (
	AssertOutputContains = "output_contains"
	AssertOutputOrder    = "output_order"
	AssertOutputCount    = "output_count"
	AssertBookCount      = "book_count"
	AssertBookState      = "book_state"
	AssertBookAbsent     = "book_absent"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch s.Start {
	case "", StartSeeded, StartEmpty:
	default:
		return fmt.Errorf("start must be %q or %q, got %q", StartSeeded, StartEmpty, s.Start)
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertOutputContains:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for output_contains", index)
		}
	case AssertOutputOrder:
		if len(a.Texts) < 2 {
			return fmt.Errorf("assertions[%d]: at least two texts are required for output_order", index)
		}
	case AssertOutputCount:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for output_count", index)
		}
		if a.Count == nil || *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: non-negative count is required for output_count", index)
		}
	case AssertBookCount:
		if a.Count == nil || *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: non-negative count is required for book_count", index)
		}
	case AssertBookState:
		if a.ID == nil {
			return fmt.Errorf("assertions[%d]: id is required for book_state", index)
		}
		if a.Expect == nil || (a.Expect.Title == nil && a.Expect.Author == nil && a.Expect.Quantity == nil) {
			return fmt.Errorf("assertions[%d]: expect is required for book_state", index)
		}
	case AssertBookAbsent:
		if a.ID == nil {
			return fmt.Errorf("assertions[%d]: id is required for book_absent", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
