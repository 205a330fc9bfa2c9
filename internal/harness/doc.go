// Package harness runs scripted operator sessions against the interactive
// menu and checks what the operator would have seen and what the inventory
// holds afterwards.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: add_then_delete
//	description: "Adding a book and deleting it restores the seed inventory"
//	start: seeded            # or "empty"; defaults to seeded
//	input:
//	  - "1"
//	  - Dune
//	  - Frank Herbert
//	  - "10"
//	  - "3"
//	  - "6"
//	  - "0"
//	assertions:
//	  - type: output_contains
//	    text: "Book has been added successfully!"
//	  - type: output_order
//	    texts: ["added successfully", "deleted successfully"]
//	  - type: output_count
//	    text: "Menu:"
//	    count: 3
//	  - type: book_count
//	    count: 5
//	  - type: book_state
//	    id: 2
//	    expect: { title: "Harry Potter and the Philosopher's Stone", quantity: 40 }
//	  - type: book_absent
//	    id: 6
//
// Every session runs against a fresh inventory file in a temporary
// directory. Input lines are fed to the menu exactly as listed; when they
// run out the session ends the same way it does at a closed terminal.
//
// # Golden Transcripts
//
// RunWithGolden compares the session transcript against
// testdata/golden/{name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
