// SPDX-License-Identifier: MIT

package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/grace/internal/cli/commands"
	"github.com/katalvlaran/grace/library"
)

const good = `Construction "Iso"
Input A 0 0
Input B 1 0
Steps
c1 = Circle(A, B)
c2 = Circle(B, A)
C = Intersect(c1, c2)
Output C
Conclude dist(A,C) = dist(B,C)
`

const wrong = `Construction "Wrong"
Input A 0 0
Input B 1 0
Steps
c = Circle(A, B)
Output c
Conclude dist(A,B) = 2*dist(A,B)
`

// syncBuffer is written by the watch loop and read by the test.
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

// setup writes files into a temp dir and returns it with a config file.
func setup(t *testing.T, files map[string]string) (dir, cfg string) {
	t.Helper()
	dir = t.TempDir()
	for name, src := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	}
	cfg = filepath.Join(t.TempDir(), "grace.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("log:\n  level: error\ncheck:\n  color: false\n"), 0o644))

	return dir, cfg
}

func run(t *testing.T, cfg string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := commands.NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfg, "--no-color"}, args...))
	err := cmd.Execute()

	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := commands.NewRootCommand()
	assert.Equal(t, "grace", cmd.Use)
	assert.NotEmpty(t, cmd.Short)

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"check", "watch", "print", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestVersion(t *testing.T) {
	commands.Version = "1.0.0-test"
	out, err := run(t, "does-not-matter.yaml", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "1.0.0-test")
}

func TestCheckPasses(t *testing.T) {
	dir, cfg := setup(t, map[string]string{"lib/iso.grace": good})

	out, err := run(t, cfg, "check", filepath.Join(dir, "**", "*.grace"))
	require.NoError(t, err)
	assert.Contains(t, out, "ok   Iso")
	assert.Contains(t, out, "1 passed, 0 failed")
}

func TestCheckBundled(t *testing.T) {
	_, cfg := setup(t, nil)
	lib, err := library.Bundled()
	require.NoError(t, err)

	out, err := run(t, cfg, "check", "--bundled")
	require.NoError(t, err)
	for _, tmpl := range lib.Templates() {
		assert.Contains(t, out, "ok   "+tmpl.Name)
	}
}

func TestCheckReportsFailures(t *testing.T) {
	dir, cfg := setup(t, map[string]string{
		"a.grace": good,
		"b.grace": wrong,
		"c.grace": "Construction \"Broken\"\nInput A\nSteps\nX = Circle(A, Q)\n",
	})

	out, err := run(t, cfg, "check", filepath.Join(dir, "*.grace"))
	require.Error(t, err)
	assert.Contains(t, out, "ok   Iso")
	assert.Contains(t, out, "FAIL Wrong")
	assert.Contains(t, out, "does not follow: 0=dist(A,B)")
	assert.Contains(t, out, "c.grace:4:")
	assert.Contains(t, out, "1 passed, 2 failed")
}

func TestCheckFailFast(t *testing.T) {
	dir, cfg := setup(t, map[string]string{"a.grace": wrong, "b.grace": good})

	out, err := run(t, cfg, "check", "--fail-fast", filepath.Join(dir, "*.grace"))
	require.Error(t, err)
	assert.NotContains(t, out, "Iso")
	assert.Contains(t, out, "0 passed, 1 failed")
}

func TestCheckCrossFileReference(t *testing.T) {
	user := `Construction "Twice"
Input A 0 0
Input B 1 0
Steps
C = "Iso"(A, B)
Output C
Conclude dist(A,C) = dist(C,B)
`
	dir, cfg := setup(t, map[string]string{"1.grace": good, "2.grace": user})

	out, err := run(t, cfg, "check", filepath.Join(dir, "*.grace"))
	require.NoError(t, err)
	assert.Contains(t, out, "2 passed, 0 failed")
}

func TestCheckInputErrors(t *testing.T) {
	dir, cfg := setup(t, nil)

	_, err := run(t, cfg, "check")
	assert.Error(t, err)

	_, err = run(t, cfg, "check", filepath.Join(dir, "*.grace"))
	assert.ErrorContains(t, err, "matches no files")
}

func TestPrintRoundTrip(t *testing.T) {
	dir, cfg := setup(t, map[string]string{"iso.grace": "# comment\n" + good})

	out, err := run(t, cfg, "print", filepath.Join(dir, "iso.grace"))
	require.NoError(t, err)
	assert.NotContains(t, out, "comment")

	again, err := library.Parse("printed", out)
	require.NoError(t, err)
	assert.Equal(t, out, library.Format(again.Templates()[0]))
}

func TestPrintByName(t *testing.T) {
	_, cfg := setup(t, nil)

	out, err := run(t, cfg, "print", "--bundled", "--name", "Midpoint")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `Construction "Midpoint"`))
	assert.Equal(t, 1, strings.Count(out, "Construction "))

	_, err = run(t, cfg, "print", "--bundled", "--name", "Nope")
	assert.ErrorIs(t, err, library.ErrUnknownConstruction)
}

func TestWatchRechecksOnChange(t *testing.T) {
	dir, cfg := setup(t, map[string]string{"a.grace": good})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := &syncBuffer{}
	cmd := commands.NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"--config", cfg, "--no-color", "watch", filepath.Join(dir, "*.grace")})

	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "1 passed, 0 failed")
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.grace"), []byte(wrong), 0o644))
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "1 passed, 1 failed")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
