package render

// Messages shared by the interactive menu and the scripting subcommands.
const (
	EmptyInventory = "No books were found in the database."
	SearchMiss     = "Book was not found."
)
