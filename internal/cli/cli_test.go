package cli

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
	"github.com/tidwall/gjson"

	"github.com/NissesSenap/plotstyle/internal/storage"
	"github.com/NissesSenap/plotstyle/internal/style"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const testContextKey contextKey = "test"

func TestCLI_Context(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
	}{
		{
			name: "background context",
			ctx:  context.Background(),
		},
		{
			name: "context with value",
			ctx:  context.WithValue(context.Background(), testContextKey, "value"),
		},
		{
			name: "cancelled context",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli := &CLI{ctx: tt.ctx}

			// Test that Context() returns the same context
			result := cli.Context()
			assert.Equal(t, tt.ctx, result)
		})
	}
}

// setupEnv points configuration and the style library at a temp dir
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PLOTSTYLE_CONFIG", filepath.Join(dir, "config.yaml"))
	t.Setenv("PLOTSTYLE_DATABASE_PATH", filepath.Join(dir, "styles.db"))
	t.Setenv("PLOTSTYLE_STYLE_PATH", "")
	t.Setenv("PLOTSTYLE_LOG_LEVEL", "error")
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), args, &out)
	return out.String(), err
}

func writeStyle(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestVersion(t *testing.T) {
	setupEnv(t)
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "plotstyle version: dev\n", out)
}

func TestGet_Default(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "get", "savefig.dpi", "legend.frameon")
	require.NoError(t, err)
	assert.Equal(t, "savefig.dpi : 72\nlegend.frameon : False\n", out)

	_, err = execute(t, "get", "no.such.key")
	assert.ErrorIs(t, err, style.ErrNotFound)
}

func TestGet_ResolutionOrder(t *testing.T) {
	dir := setupEnv(t)
	configured := writeStyle(t, dir, "configured.mplstyle", "savefig.dpi : 150\n")
	explicit := writeStyle(t, dir, "explicit.mplstyle", "savefig.dpi : 300\n")
	t.Setenv("PLOTSTYLE_STYLE_PATH", configured)

	out, err := execute(t, "get", "savefig.dpi")
	require.NoError(t, err)
	assert.Equal(t, "savefig.dpi : 150\n", out)

	out, err = execute(t, "get", "savefig.dpi", "--file", explicit)
	require.NoError(t, err)
	assert.Equal(t, "savefig.dpi : 300\n", out)
}

func TestLibraryCommands(t *testing.T) {
	dir := setupEnv(t)
	path := writeStyle(t, dir, "dark.mplstyle", "axes.facecolor : 222222  # dark\nsavefig.dpi : 100\n")

	out, err := execute(t, "import", "dark", path)
	require.NoError(t, err)
	assert.Equal(t, "imported dark (2 settings)\n", out)

	_, err = execute(t, "import", "default", writeStyle(t, dir, "default.mplstyle", style.DefaultSource()))
	require.NoError(t, err)

	out, err = execute(t, "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.True(t, strings.HasPrefix(lines[1], "dark "))
	assert.True(t, strings.HasPrefix(lines[2], "default "))

	out, err = execute(t, "get", "--style", "dark", "axes.facecolor")
	require.NoError(t, err)
	assert.Equal(t, "axes.facecolor : 222222\n", out)

	out, err = execute(t, "export", "dark")
	require.NoError(t, err)
	assert.Contains(t, out, "axes.facecolor : 222222  # dark\n")

	out, err = execute(t, "export", "dark", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, "100", gjson.Get(out, "savefig.dpi").String())

	out, err = execute(t, "find", "axes.facecolor")
	require.NoError(t, err)
	assert.Equal(t, "dark: axes.facecolor : 222222\ndefault: axes.facecolor : eeeeee\n", out)

	out, err = execute(t, "delete", "dark")
	require.NoError(t, err)
	assert.Equal(t, "deleted dark\n", out)

	_, err = execute(t, "export", "dark")
	assert.ErrorIs(t, err, storage.ErrStyleNotFound)

	_, err = execute(t, "delete", "dark")
	assert.ErrorIs(t, err, storage.ErrStyleNotFound)
}

func TestImport_FormatFromExtension(t *testing.T) {
	dir := setupEnv(t)
	path := writeStyle(t, dir, "small.json", `{"lines": {"linewidth": "3"}}`)

	_, err := execute(t, "import", "small", path)
	require.NoError(t, err)

	out, err := execute(t, "get", "--style", "small", "lines.linewidth")
	require.NoError(t, err)
	assert.Equal(t, "lines.linewidth : 3\n", out)
}

func TestDump(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "dump")
	require.NoError(t, err)
	assert.Equal(t, style.Default().String(), out)

	out, err = execute(t, "dump", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "savefig.dpi:")

	_, err = execute(t, "dump", "--format", "xml")
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	dir := setupEnv(t)
	clean := writeStyle(t, dir, "clean.mplstyle", style.DefaultSource())
	bad := writeStyle(t, dir, "bad.mplstyle", "lines.linewidth : thick\n")

	out, err := execute(t, "check", clean)
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = execute(t, "check", clean, bad)
	assert.ErrorIs(t, err, ErrProblems)
	assert.Contains(t, out, bad+": line 1: error: lines.linewidth")

	dup := writeStyle(t, dir, "dup.mplstyle", "axes.grid : True\naxes.grid : False\n")
	out, err = execute(t, "check", dup)
	require.Error(t, err)
	assert.Contains(t, out, dup+":")

	_, err = execute(t, "check", "--lenient", dup)
	assert.NoError(t, err)
}

func TestPreview(t *testing.T) {
	dir := setupEnv(t)
	output := filepath.Join(dir, "preview.png")

	out, err := execute(t, "preview", "--output", output)
	require.NoError(t, err)
	assert.Equal(t, "wrote "+output+"\n", out)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))

	out, err = execute(t, "preview", "--engine", "chart", "--format", "svg", "--output", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "<svg")

	_, err = execute(t, "preview", "--engine", "matplotlib", "--output", "-")
	assert.Error(t, err)
}

func TestPreview_FailureLeavesNoFile(t *testing.T) {
	dir := setupEnv(t)
	output := filepath.Join(dir, "out.png")

	_, err := execute(t, "preview", "--engine", "matplotlib", "--output", output)
	require.Error(t, err)
	assert.NoFileExists(t, output)

	bad := writeStyle(t, dir, "bad.mplstyle", "figure.figsize : 8\n")
	_, err = execute(t, "preview", "--file", bad, "--output", output)
	require.Error(t, err)
	assert.NoFileExists(t, output)
}

func TestPreview_DefaultOutputFollowsFormat(t *testing.T) {
	dir := setupEnv(t)
	t.Setenv("PLOTSTYLE_PREVIEW_OUTPUT", filepath.Join(dir, "preview.png"))

	out, err := execute(t, "preview", "--format", "svg")
	require.NoError(t, err)

	svgPath := filepath.Join(dir, "preview.svg")
	assert.Equal(t, "wrote "+svgPath+"\n", out)
	assert.NoFileExists(t, filepath.Join(dir, "preview.png"))

	data, err := os.ReadFile(svgPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestWithExt(t *testing.T) {
	assert.Equal(t, "preview.svg", withExt("preview.png", "svg"))
	assert.Equal(t, "out/figure.png", withExt("out/figure", "png"))
	assert.Equal(t, "-", withExt("-", "svg"))
}

func TestConfig(t *testing.T) {
	dir := setupEnv(t)

	out, err := execute(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "engine: gonum")

	out, err = execute(t, "config", "--init")
	require.NoError(t, err)
	assert.Equal(t, "wrote "+filepath.Join(dir, "config.yaml")+"\n", out)

	_, err = os.Stat(filepath.Join(dir, "config.yaml"))
	assert.NoError(t, err)
}

// lockedBuffer is written from the watcher goroutine and read by the test
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatch(t *testing.T) {
	dir := setupEnv(t)
	t.Setenv("PLOTSTYLE_RELOADS_PER_SECOND", "100")
	path := writeStyle(t, dir, "live.mplstyle", "axes.grid : True\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out lockedBuffer
	done := make(chan error, 1)
	go func() { done <- run(ctx, []string{"watch", path}, &out) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "ok (1 settings)")
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("axes.grid : maybe\n"), 0644))
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "error: axes.grid")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestUnknownCommand(t *testing.T) {
	setupEnv(t)
	_, err := execute(t, "frobnicate")
	assert.Error(t, err)
}
