package harness

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/ebookstore/internal/menu"
	"github.com/roach88/ebookstore/internal/store"
	"github.com/roach88/ebookstore/internal/testutil"
)

// Harness drives one scenario's session.
type Harness struct {
	store  *store.Store
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
//
// Execution flow:
// 1. Create fresh in-memory database, seeded unless the scenario starts empty
// 2. Feed the input lines to the menu and capture its output
// 3. Read back the final inventory
// 4. Return result with pass/fail, transcript, and errors
//
// An error is returned only when the session itself could not run, such as
// a store failure that ended the menu loop.
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		store:  st,
		logger: testutil.DiscardLogger(),
	}

	ctx := context.Background()

	if scenario.Start != StartEmpty {
		if _, err := st.Initialize(ctx); err != nil {
			return nil, fmt.Errorf("failed to seed store: %w", err)
		}
	}

	result := NewResult()
	if err := h.executeSession(ctx, scenario.Input, result); err != nil {
		return nil, fmt.Errorf("failed to execute session: %w", err)
	}

	books, err := st.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read final inventory: %w", err)
	}
	result.Books = books

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	return result, nil
}

// executeSession runs the menu over the scripted input and records the
// transcript.
func (h *Harness) executeSession(ctx context.Context, input []string, result *Result) error {
	var out bytes.Buffer
	m := menu.New(h.store, testutil.Input(input...), &out, menu.WithLogger(h.logger))

	err := m.Run(ctx)
	result.Transcript = out.String()
	if err != nil {
		return err
	}

	h.logger.Info("session completed",
		"lines", len(input),
		"output_bytes", out.Len(),
	)
	return nil
}
