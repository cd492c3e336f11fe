package checker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NissesSenap/plotstyle/internal/schema"
	"github.com/NissesSenap/plotstyle/internal/style"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewPool(t *testing.T) {
	paths := []string{"a.mplstyle", "b.mplstyle"}
	pool := NewPool(paths, 5)

	assert.Equal(t, paths, pool.paths)
	assert.NotNil(t, pool.logger)
	assert.NotNil(t, pool.errors)
	assert.Equal(t, 5, cap(pool.semaphore), "Semaphore should have capacity of maxConcurrent")

	pool = NewPool(paths, 0)
	assert.Equal(t, 1, cap(pool.semaphore))
}

func TestPool_CheckAll(t *testing.T) {
	dir := t.TempDir()
	clean := writeFile(t, dir, "clean.mplstyle", style.DefaultSource())
	bad := writeFile(t, dir, "bad.mplstyle", "lines.linewidth : thick\nmy.custom : 1\n")

	pool := NewPool([]string{clean, bad}, 2)
	reports, err := pool.CheckAll(context.Background(), schema.Builtin())
	require.NoError(t, err)
	require.Len(t, reports, 2)

	// sorted by path
	assert.Equal(t, bad, reports[0].Path)
	assert.Equal(t, clean, reports[1].Path)

	assert.True(t, reports[0].HasErrors())
	require.Len(t, reports[0].Problems, 2)
	assert.Equal(t, "lines.linewidth", reports[0].Problems[0].Key)
	assert.Equal(t, schema.SeverityWarning, reports[0].Problems[1].Severity)

	assert.Empty(t, reports[1].Problems)
	assert.Empty(t, pool.Errors())
}

func TestPool_CheckAll_PartialFailure(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.mplstyle", "axes.grid : True\n")
	dup := writeFile(t, dir, "dup.mplstyle", "axes.grid : True\naxes.grid : False\n")
	missing := filepath.Join(dir, "missing.mplstyle")

	pool := NewPool([]string{good, dup, missing}, 1)
	reports, err := pool.CheckAll(context.Background(), schema.Builtin())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to check 2 files")

	require.Len(t, reports, 1)
	assert.Equal(t, good, reports[0].Path)

	errs := pool.Errors()
	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[dup], style.ErrDuplicateKey)
	assert.ErrorIs(t, errs[missing], os.ErrNotExist)
}

func TestPool_CheckAll_Lenient(t *testing.T) {
	dir := t.TempDir()
	dup := writeFile(t, dir, "dup.mplstyle", "axes.grid : True\naxes.grid : False\n")

	pool := NewPool([]string{dup}, 1, WithParseOptions(style.Lenient()))
	reports, err := pool.CheckAll(context.Background(), schema.Builtin())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Empty(t, reports[0].Problems)
}

func TestPool_CheckAll_Cancelled(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.mplstyle", "axes.grid : True\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewPool([]string{path}, 1)
	reports, err := pool.CheckAll(ctx, schema.Builtin())
	require.Error(t, err)
	assert.Empty(t, reports)
	assert.ErrorIs(t, pool.Errors()[path], context.Canceled)
}

func TestPool_ErrorsReturnsCopy(t *testing.T) {
	pool := NewPool(nil, 1)
	pool.errors["x"] = assert.AnError

	errs := pool.Errors()
	delete(errs, "x")
	assert.Len(t, pool.Errors(), 1)
}
