package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/roach88/ebookstore/internal/config"
	"github.com/roach88/ebookstore/internal/testutil"
)

const testSession = "test-session"

type result struct {
	stdout string
	stderr string
	err    error
}

// isolate runs the test in an empty working directory with the ebookstore
// variables cleared, and returns a database path inside it.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	for _, key := range []string{config.EnvConfig, config.EnvDB, config.EnvVerbose, config.EnvLogFormat} {
		t.Setenv(key, "")
	}
	return filepath.Join(dir, "test.db")
}

// execute runs the command tree with args, feeding stdin to the menu.
func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	cmd := newRootCommand(&RootOptions{SessionIDs: testutil.NewFixedSessionGenerator(testSession)})

	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}
