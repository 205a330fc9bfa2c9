package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ebookstore/internal/book"
)

type booksResponse struct {
	Status string      `json:"status"`
	Data   []book.Book `json:"data"`
}

type errorResponse struct {
	Status string   `json:"status"`
	Data   any      `json:"data"`
	Error  CLIError `json:"error"`
}

func decodeError(t *testing.T, stdout string) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp), "stdout: %q", stdout)
	assert.Equal(t, "error", resp.Status)
	assert.Nil(t, resp.Data)
	return resp
}

type bookResponse struct {
	Status string    `json:"status"`
	Data   book.Book `json:"data"`
}

func TestInit(t *testing.T) {
	db := isolate(t)

	res := execute(t, "", "init", "--db", db)
	require.NoError(t, res.err)
	assert.Equal(t, "Inventory "+db+" holds 5 books.\n", res.stdout)

	res = execute(t, "", "init", "--db", db)
	require.NoError(t, res.err)
	assert.Equal(t, "Inventory "+db+" holds 5 books.\n", res.stdout, "init is idempotent")
}

func TestList_Text(t *testing.T) {
	db := isolate(t)

	res := execute(t, "", "list", "--db", db)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "|   ID | Title ")
	assert.Contains(t, res.stdout, "|    2 | Harry Potter and the Philosopher's Stone | J.K. Rowling    |         40 |")
}

func TestList_JSON(t *testing.T) {
	db := isolate(t)

	res := execute(t, "", "list", "--db", db, "--format", "json")
	require.NoError(t, res.err)

	var resp booksResponse
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 5)
	assert.Equal(t, book.Book{ID: 4, Title: "The Lord of the Rings", Author: "J.R.R Tolkien", Quantity: 37}, resp.Data[3])
}

func TestList_AfterDeletingEverything(t *testing.T) {
	db := isolate(t)

	for _, id := range []string{"1", "2", "3", "4", "5"} {
		res := execute(t, "", "delete", id, "--db", db)
		require.NoError(t, res.err)
	}

	res := execute(t, "", "list", "--db", db)
	require.NoError(t, res.err)
	assert.Equal(t, "No books were found in the database.\n", res.stdout)
}

func TestSearch_Found(t *testing.T) {
	db := isolate(t)

	res := execute(t, "", "search", "4", "--db", db)
	require.NoError(t, res.err)
	assert.Equal(t, "\nID:        4\nTitle:     The Lord of the Rings\nAuthor:    J.R.R Tolkien\nQuantity:  37\n\n", res.stdout)
}

func TestSearch_JSON(t *testing.T) {
	db := isolate(t)

	res := execute(t, "", "search", "1", "--db", db, "--format", "json")
	require.NoError(t, res.err)

	var resp booksResponse
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "A Tale of Two Cities", resp.Data[0].Title)
}

func TestSearch_NotFound(t *testing.T) {
	db := isolate(t)

	for _, id := range []string{"999", "abc"} {
		res := execute(t, "", "search", id, "--db", db)
		require.Error(t, res.err)
		assert.Equal(t, ExitNotFound, GetExitCode(res.err))
		assert.Equal(t, "Book was not found.", res.err.Error())
	}
}

func TestSearch_MissingArg(t *testing.T) {
	db := isolate(t)

	res := execute(t, "", "search", "--db", db)
	require.Error(t, res.err)
	assert.Equal(t, ExitUsage, GetExitCode(res.err))
}

func TestAdd_Text(t *testing.T) {
	db := isolate(t)

	res := execute(t, "", "add", "--db", db, "--title", "Dune", "--author", "Frank Herbert", "--quantity", "10")
	require.NoError(t, res.err)
	assert.Equal(t, "Book has been added successfully!\n\nID:        6\nTitle:     Dune\nAuthor:    Frank Herbert\nQuantity:  10\n\n", res.stdout)

	res = execute(t, "", "list", "--db", db, "--format", "json")
	require.NoError(t, res.err)
	var resp booksResponse
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &resp))
	assert.Len(t, resp.Data, 6)
}

func TestAdd_JSON(t *testing.T) {
	db := isolate(t)

	res := execute(t, "", "add", "--db", db, "--format", "json", "--title", "Dune", "--author", "Frank Herbert", "--quantity", "10")
	require.NoError(t, res.err)

	var resp bookResponse
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &resp))
	assert.Equal(t, book.Book{ID: 6, Title: "Dune", Author: "Frank Herbert", Quantity: 10}, resp.Data)
}

func TestAdd_MissingFlags(t *testing.T) {
	db := isolate(t)

	res := execute(t, "", "add", "--db", db, "--title", "Dune")
	require.Error(t, res.err)
	assert.Equal(t, ExitUsage, GetExitCode(res.err))
	assert.Equal(t, `required flag(s) "author", "quantity" not set`, res.err.Error())
}

func TestAdd_NonIntegerQuantity(t *testing.T) {
	db := isolate(t)

	res := execute(t, "", "add", "--db", db, "--title", "Dune", "--author", "Frank Herbert", "--quantity", "ten")
	require.Error(t, res.err)
	assert.Equal(t, ExitUsage, GetExitCode(res.err))
}

func TestUpdate(t *testing.T) {
	db := isolate(t)

	res := execute(t, "", "update", "2", "--db", db, "--title", "Chamber of Secrets", "--author", "J.K. Rowling", "--quantity", "8")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Book has been updated successfully!")

	res = execute(t, "", "search", "2", "--db", db, "--format", "json")
	require.NoError(t, res.err)
	var resp booksResponse
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, book.Book{ID: 2, Title: "Chamber of Secrets", Author: "J.K. Rowling", Quantity: 8}, resp.Data[0])
}

func TestUpdate_NotFound(t *testing.T) {
	db := isolate(t)

	res := execute(t, "", "update", "999", "--db", db, "--title", "T", "--author", "A", "--quantity", "1")
	require.Error(t, res.err)
	assert.Equal(t, ExitNotFound, GetExitCode(res.err))
	assert.ErrorIs(t, res.err, book.ErrNotFound)

	res = execute(t, "", "list", "--db", db, "--format", "json")
	require.NoError(t, res.err)
	var resp booksResponse
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &resp))
	assert.Len(t, resp.Data, 5)
}

func TestUpdate_InvalidID(t *testing.T) {
	db := isolate(t)

	res := execute(t, "", "update", "two", "--db", db, "--title", "T", "--author", "A", "--quantity", "1")
	require.Error(t, res.err)
	assert.Equal(t, ExitUsage, GetExitCode(res.err))
	assert.Contains(t, res.err.Error(), `invalid book id "two"`)
}

func TestDelete(t *testing.T) {
	db := isolate(t)

	res := execute(t, "", "delete", "3", "--db", db)
	require.NoError(t, res.err)
	assert.Equal(t, "Book has been deleted successfully!\n", res.stdout)

	res = execute(t, "", "search", "3", "--db", db)
	assert.Equal(t, ExitNotFound, GetExitCode(res.err))
}

func TestDelete_JSON(t *testing.T) {
	db := isolate(t)

	res := execute(t, "", "delete", "3", "--db", db, "--format", "json")
	require.NoError(t, res.err)
	assert.JSONEq(t, `{"status":"ok"}`, res.stdout)
}

func TestDelete_NotFound(t *testing.T) {
	db := isolate(t)

	res := execute(t, "", "delete", "999", "--db", db)
	require.Error(t, res.err)
	assert.Equal(t, ExitNotFound, GetExitCode(res.err))
}

func TestDelete_InvalidID(t *testing.T) {
	db := isolate(t)

	res := execute(t, "", "delete", "x", "--db", db)
	require.Error(t, res.err)
	assert.Equal(t, ExitUsage, GetExitCode(res.err))
}

func TestJSONErrors(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantExit    int
		wantCode    string
		wantMessage string
	}{
		{"search miss", []string{"search", "999"}, ExitNotFound, ErrCodeNotFound, "Book was not found."},
		{"update missing id", []string{"update", "999", "--title", "T", "--author", "A", "--quantity", "1"}, ExitNotFound, ErrCodeNotFound, "book 999"},
		{"delete missing id", []string{"delete", "999"}, ExitNotFound, ErrCodeNotFound, "book 999"},
		{"invalid id", []string{"delete", "x"}, ExitUsage, ErrCodeUsage, `invalid book id "x"`},
		{"wrong arg count", []string{"search"}, ExitUsage, ErrCodeUsage, "invalid arguments"},
		{"missing field flags", []string{"add", "--title", "Dune"}, ExitUsage, ErrCodeUsage, `required flag(s) "author", "quantity" not set`},
		{"bad flag value", []string{"add", "--title", "Dune", "--author", "Frank Herbert", "--quantity", "ten"}, ExitUsage, ErrCodeUsage, "invalid flags"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := isolate(t)
			args := append([]string{"--format", "json", "--db", db}, tt.args...)

			res := execute(t, "", args...)
			require.Error(t, res.err)
			assert.Equal(t, tt.wantExit, GetExitCode(res.err))

			resp := decodeError(t, res.stdout)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, tt.wantMessage, resp.Error.Message)
		})
	}
}

func TestJSONErrors_StoreFailure(t *testing.T) {
	isolate(t)

	res := execute(t, "", "list", "--format", "json", "--db", "/nonexistent/dir/test.db")
	require.Error(t, res.err)
	assert.Equal(t, ExitFailure, GetExitCode(res.err))

	resp := decodeError(t, res.stdout)
	assert.Equal(t, ErrCodeFailure, resp.Error.Code)
	assert.Equal(t, "failed to open inventory", resp.Error.Message)
	assert.NotEmpty(t, resp.Error.Details)
}

func TestJSONErrors_NotFoundCarriesCause(t *testing.T) {
	db := isolate(t)

	res := execute(t, "", "delete", "999", "--db", db, "--format", "json")
	resp := decodeError(t, res.stdout)
	assert.Equal(t, book.ErrNotFound.Error(), resp.Error.Details)
}

func TestTextErrors_NothingOnStdout(t *testing.T) {
	db := isolate(t)

	res := execute(t, "", "search", "999", "--db", db)
	require.Error(t, res.err)
	assert.Empty(t, res.stdout)
}
