package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"reis/internal/codec"
	"reis/internal/kvstorage/filesystem"
)

// fakeClipboard records copied text.
type fakeClipboard struct {
	copied []string
	err    error
}

func (c *fakeClipboard) Copy(text string) error {
	if c.err != nil {
		return c.err
	}
	c.copied = append(c.copied, text)
	return nil
}

// setupTestApp creates an App with a database in a fresh temp dir. stdin
// supplies the answers to any confirmation prompts.
func setupTestApp(t *testing.T, stdin string) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return &App{
		DBPath:      filepath.Join(t.TempDir(), "reis.db"),
		ConfigStore: newMemConfig(),
		Clipboard:   &fakeClipboard{},
		Log:         zerolog.Nop(),
		In:          strings.NewReader(stdin),
		Out:         &out,
		Err:         &bytes.Buffer{},
		Color:       "never",
	}, &out
}

// runCmd runs the root command with args against app.
func runCmd(t *testing.T, app *App, args ...string) error {
	t.Helper()
	root := newRootCmd(NewTestProvider(app))
	root.SetArgs(args)
	root.SetOut(app.Out)
	root.SetErr(app.Err)
	return root.Execute()
}

// seed writes entries straight into app's database.
func seed(t *testing.T, app *App, pairs map[string]string) {
	t.Helper()
	store, err := filesystem.Open(app.DBPath, filesystem.Options{})
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	for k, v := range pairs {
		store.Insert(k, v)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("closing database: %v", err)
	}
}

// entries decodes app's database file.
func entries(t *testing.T, app *App) map[string]string {
	t.Helper()
	data, err := os.ReadFile(app.DBPath)
	if err != nil {
		t.Fatalf("reading database: %v", err)
	}
	got, err := codec.Decode(data)
	if err != nil {
		t.Fatalf("decoding database: %v", err)
	}
	return got
}

func TestSetCreatesEntry(t *testing.T) {
	app, out := setupTestApp(t, "")

	if err := runCmd(t, app, "set", "name", "alice"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	want := "Successfully set the key name with the value alice in the database!\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
	if got := entries(t, app); got["name"] != "alice" {
		t.Errorf("stored entries = %v", got)
	}
}

func TestActionAliases(t *testing.T) {
	app, out := setupTestApp(t, "")

	steps := []struct {
		args []string
		want string
	}{
		{[]string{"s", "a", "1"}, "Successfully set the key a with the value 1 in the database!"},
		{[]string{"g", "a"}, "1"},
		{[]string{"p", "a", "2"}, "Successfully updated the key a with the value 2 in the database!"},
		{[]string{"ga"}, "#-#a\t2"},
		{[]string{"d", "a"}, "Successfully deleted the entry for a!"},
		{[]string{"ga"}, "The database is empty!"},
	}
	for _, step := range steps {
		out.Reset()
		if err := runCmd(t, app, step.args...); err != nil {
			t.Fatalf("%v failed: %v", step.args, err)
		}
		if got := strings.TrimSuffix(out.String(), "\n"); got != step.want {
			t.Errorf("%v output = %q, want %q", step.args, got, step.want)
		}
	}
}

func TestSetExistingConfirmed(t *testing.T) {
	app, out := setupTestApp(t, "yes\n")
	seed(t, app, map[string]string{"k": "old"})

	if err := runCmd(t, app, "set", "k", "new"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if !strings.Contains(out.String(), "The key k already exists with the value old. Do you want to replace it? (Y/n) ") {
		t.Errorf("expected overwrite prompt, got %q", out.String())
	}
	if !strings.Contains(out.String(), "Successfully updated the key k with the value new in the database!") {
		t.Errorf("expected update message, got %q", out.String())
	}
	if got := entries(t, app)["k"]; got != "new" {
		t.Errorf("k = %q, want new", got)
	}
}

func TestSetExistingDeclined(t *testing.T) {
	app, out := setupTestApp(t, "n\n")
	seed(t, app, map[string]string{"k": "old"})

	if err := runCmd(t, app, "s", "k", "new"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if !strings.HasSuffix(out.String(), "Operation canceled!\n") {
		t.Errorf("expected cancel message, got %q", out.String())
	}
	if got := entries(t, app)["k"]; got != "old" {
		t.Errorf("k = %q, want old", got)
	}
}

func TestSetExistingNoInput(t *testing.T) {
	app, out := setupTestApp(t, "")
	seed(t, app, map[string]string{"k": "old"})

	if err := runCmd(t, app, "s", "k", "new"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if !strings.HasSuffix(out.String(), readInputMessage+"\n") {
		t.Errorf("expected read error message, got %q", out.String())
	}
	if got := entries(t, app)["k"]; got != "old" {
		t.Errorf("k = %q, want old", got)
	}
}

func TestPutMissingKey(t *testing.T) {
	app, out := setupTestApp(t, "")

	if err := runCmd(t, app, "put", "ghost", "v"); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	want := "The entry for ghost doesn't exist! Create it with: reis s ghost v\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
	if got := entries(t, app); len(got) != 0 {
		t.Errorf("put should not create entries, got %v", got)
	}
}

func TestGetCopiesToClipboard(t *testing.T) {
	app, out := setupTestApp(t, "")
	seed(t, app, map[string]string{"token": "s3cret"})

	if err := runCmd(t, app, "g", "token", "-c"); err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if out.String() != "s3cret\n" {
		t.Errorf("output = %q", out.String())
	}
	clip := app.Clipboard.(*fakeClipboard)
	if len(clip.copied) != 1 || clip.copied[0] != "s3cret" {
		t.Errorf("copied = %v, want [s3cret]", clip.copied)
	}
}

func TestGetClipboardFailureStillPrints(t *testing.T) {
	app, out := setupTestApp(t, "")
	app.Clipboard = &fakeClipboard{err: errors.New("no display")}
	seed(t, app, map[string]string{"k": "v"})

	if err := runCmd(t, app, "get", "k", "--clipboard"); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if out.String() != "v\n" {
		t.Errorf("output = %q, want %q", out.String(), "v\n")
	}
}

func TestClearRequiresConfirmation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		stdin   string
		cleared bool
	}{
		{"confirmed", []string{"clr"}, "Y\n", true},
		{"declined", []string{"c"}, "no\n", false},
		{"forced", []string{"c", "-f"}, "", true},
		{"forced long", []string{"clr", "--force"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, out := setupTestApp(t, tt.stdin)
			seed(t, app, map[string]string{"a": "1", "b": "2"})

			if err := runCmd(t, app, tt.args...); err != nil {
				t.Fatalf("clear failed: %v", err)
			}

			got := entries(t, app)
			if tt.cleared {
				if len(got) != 0 {
					t.Errorf("expected empty database, got %v", got)
				}
				if !strings.HasSuffix(out.String(), "Successfully cleared all database values!\n") {
					t.Errorf("output = %q", out.String())
				}
			} else {
				if len(got) != 2 {
					t.Errorf("expected entries to survive, got %v", got)
				}
				if !strings.HasSuffix(out.String(), "Operation canceled!\n") {
					t.Errorf("output = %q", out.String())
				}
			}
		})
	}
}

func TestClearEmptyDatabase(t *testing.T) {
	app, out := setupTestApp(t, "")

	if err := runCmd(t, app, "clr"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if out.String() != "The database is empty!\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestMissingArgumentsFail(t *testing.T) {
	app, out := setupTestApp(t, "")

	err := runCmd(t, app, "set", "only-key")
	if !errors.Is(err, ErrReported) {
		t.Fatalf("expected ErrReported, got %v", err)
	}
	if out.String() != "Invalid arguments were passed for the Set action!\n" {
		t.Errorf("output = %q", out.String())
	}
	if _, statErr := os.Stat(app.DBPath); !os.IsNotExist(statErr) {
		t.Errorf("database should not be touched, stat err = %v", statErr)
	}
}

func TestLooseTokensAccepted(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown flag dropped", []string{"get", "k", "-x"}, "v"},
		{"unknown long flag dropped", []string{"g", "k", "--verbose"}, "v"},
		{"extra argument dropped", []string{"get", "k", "extra"}, "v"},
		{"dash-leading value", []string{"set", "n", "-5"}, "Successfully set the key n with the value -5 in the database!"},
		{"empty key", []string{"s", "", "blank"}, "Successfully set the key  with the value blank in the database!"},
		{"global flag after key", []string{"g", "k", "--color", "never"}, "v"},
		{"double dash", []string{"s", "--", "--json", "x"}, "Successfully set the key --json with the value x in the database!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, out := setupTestApp(t, "")
			seed(t, app, map[string]string{"k": "v"})

			if err := runCmd(t, app, tt.args...); err != nil {
				t.Fatalf("%v failed: %v", tt.args, err)
			}
			if out.String() != tt.want+"\n" {
				t.Errorf("output = %q, want %q", out.String(), tt.want+"\n")
			}
		})
	}
}

func TestDashLeadingValueStored(t *testing.T) {
	app, out := setupTestApp(t, "")

	if err := runCmd(t, app, "s", "n", "-5"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if got := entries(t, app)["n"]; got != "-5" {
		t.Errorf("n = %q, want -5", got)
	}

	out.Reset()
	if err := runCmd(t, app, "g", "n"); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if out.String() != "-5\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestActionHelp(t *testing.T) {
	for _, args := range [][]string{{"get", "-h"}, {"get", "k", "--help"}, {"ga", "-h"}} {
		app, out := setupTestApp(t, "")

		if err := runCmd(t, app, args...); err != nil {
			t.Fatalf("%v failed: %v", args, err)
		}
		if !strings.Contains(out.String(), "Usage:") {
			t.Errorf("%v: expected usage, got %q", args, out.String())
		}
		if _, err := os.Stat(app.DBPath); !os.IsNotExist(err) {
			t.Errorf("%v: help should not open the database", args)
		}
	}
}

func TestGlobalFlagNeedsArgument(t *testing.T) {
	app, _ := setupTestApp(t, "")

	err := runCmd(t, app, "g", "k", "--db")
	if err == nil || !strings.Contains(err.Error(), "flag needs an argument: --db") {
		t.Fatalf("expected missing argument error, got %v", err)
	}
}

func TestInvalidKeyFails(t *testing.T) {
	app, out := setupTestApp(t, "")

	err := runCmd(t, app, "set", "bad\tkey", "v")
	if !errors.Is(err, ErrReported) {
		t.Fatalf("expected ErrReported, got %v", err)
	}
	if out.String() != "Invalid parameters were passed to the operation!\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestCorruptedDatabaseFails(t *testing.T) {
	app, out := setupTestApp(t, "")
	if err := os.WriteFile(app.DBPath, []byte("#-#k\t\xff\n"), 0644); err != nil {
		t.Fatal(err)
	}

	err := runCmd(t, app, "g", "k")
	if !errors.Is(err, ErrReported) {
		t.Fatalf("expected ErrReported, got %v", err)
	}
	if !strings.HasPrefix(out.String(), "Invalid data was read from your database!") {
		t.Errorf("output = %q", out.String())
	}
}

func TestMissingDirectoryFails(t *testing.T) {
	app, out := setupTestApp(t, "")
	app.DBPath = filepath.Join(t.TempDir(), "missing", "reis.db")

	err := runCmd(t, app, "ga")
	if !errors.Is(err, ErrReported) {
		t.Fatalf("expected ErrReported, got %v", err)
	}
	if out.String() != "Database has not been created or could not be found!\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestCount(t *testing.T) {
	app, out := setupTestApp(t, "")
	seed(t, app, map[string]string{"a": "1", "b": "2", "c": "3"})

	if err := runCmd(t, app, "count"); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if out.String() != "3\n" {
		t.Errorf("output = %q, want 3", out.String())
	}
}

func TestJSONOutput(t *testing.T) {
	app, out := setupTestApp(t, "")
	app.JSON = true
	seed(t, app, map[string]string{"k": "v"})

	tests := []struct {
		args []string
		want resultJSON
	}{
		{[]string{"get", "k"}, resultJSON{Status: "success", Operation: "get", Message: "v", Value: "v"}},
		{[]string{"get", "nope"}, resultJSON{
			Status:  "warning",
			Kind:    "entry-doesnt-exist",
			Message: "The entry for nope doesn't exist! Create it with: reis s nope <value>",
		}},
		{[]string{"set", "k"}, resultJSON{
			Status:  "failure",
			Kind:    "invalid-action-arguments",
			Message: "Invalid arguments were passed for the Set action!",
		}},
	}

	for _, tt := range tests {
		out.Reset()
		runCmd(t, app, tt.args...)

		var got resultJSON
		if err := json.Unmarshal(out.Bytes(), &got); err != nil {
			t.Fatalf("%v: invalid JSON %q: %v", tt.args, out.String(), err)
		}
		if got.Status != tt.want.Status || got.Operation != tt.want.Operation ||
			got.Kind != tt.want.Kind || got.Message != tt.want.Message || got.Value != tt.want.Value {
			t.Errorf("%v = %+v, want %+v", tt.args, got, tt.want)
		}
	}
}

func TestJSONPromptGoesToStderr(t *testing.T) {
	app, out := setupTestApp(t, "y\n")
	app.JSON = true
	seed(t, app, map[string]string{"k": "old"})

	if err := runCmd(t, app, "s", "k", "new"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	var got resultJSON
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("stdout is not a single JSON document: %q", out.String())
	}
	if got.Status != "success" || got.Operation != "put" {
		t.Errorf("result = %+v", got)
	}
	if !strings.Contains(app.Err.(*bytes.Buffer).String(), "Do you want to replace it?") {
		t.Errorf("expected prompt on stderr")
	}
}

func TestJSONCount(t *testing.T) {
	app, out := setupTestApp(t, "")
	app.JSON = true

	if err := runCmd(t, app, "count"); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	var got resultJSON
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out.String(), err)
	}
	if got.Count == nil || *got.Count != 0 {
		t.Errorf("count = %v, want 0", got.Count)
	}
}

func TestColorAlways(t *testing.T) {
	app, out := setupTestApp(t, "")
	app.Color = "always"

	if err := runCmd(t, app, "ga"); err != nil {
		t.Fatalf("getall failed: %v", err)
	}
	if out.String() != "\033[38;5;214mThe database is empty!\033[0m\n" {
		t.Errorf("output = %q", out.String())
	}
}
