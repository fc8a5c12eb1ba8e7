package registry_test

import (
	"context"
	"os"
	"testing"

	"github.com/jpl-au/tdf/internal/diff"
	"github.com/jpl-au/tdf/internal/registry"
	"github.com/jpl-au/tdf/internal/service"
	"github.com/jpl-au/tdf/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupService creates a temporary repository and returns a service along
// with a cleanup function.
func setupService(t *testing.T) (service.Service, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "tdf-test-*")
	require.NoError(t, err, "creating temp dir")

	cwd, err := os.Getwd()
	require.NoError(t, err, "getting cwd")

	require.NoError(t, os.Chdir(tmpDir), "chdir to temp")

	require.NoError(t, registry.Init(true, "", false, ""), "init repository")

	svc, err := registry.New("")
	require.NoError(t, err, "creating service")

	cleanup := func() {
		svc.Close()
		_ = os.Chdir(cwd)
		os.RemoveAll(tmpDir)
	}

	return svc, cleanup
}

func TestService_WriteRead(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	name := "drop/avatar"
	value := "image/png#icon#size:64"

	require.NoError(t, svc.Write(ctx, name, value, "tester", "initial"))

	e, err := svc.Latest(ctx, name, false)
	require.NoError(t, err)

	assert.Equal(t, value, e.Value)
	assert.Equal(t, "tester", e.Author)

	entries, err := svc.List(ctx, "", false, false)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, name, entries[0].Name)
}

func TestService_NameNormalisation(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, svc.Write(ctx, "drop//avatar/", "image/png", "tester", ""))

	// Lookups through any spelling resolve to the same entry
	e, err := svc.Latest(ctx, "drop/avatar", false)
	require.NoError(t, err)
	assert.Equal(t, "drop/avatar", e.Name)
}

func TestService_Value(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, svc.Write(ctx, "drop/avatar", "image/png#icon#size:64", "tester", ""))

	v, err := svc.Value(ctx, "drop/avatar", false)
	require.NoError(t, err)
	assert.Equal(t, "image/png", v.Format())
	assert.True(t, v.HasTag("icon"))
	assert.True(t, v.HasTag("size:"))
}

func TestService_Resolve(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, svc.Write(ctx, "drop/avatar", "image/png", "tester", ""))

	e, err := svc.Latest(ctx, "drop/avatar", false)
	require.NoError(t, err)

	// Resolve by name
	byName, err := svc.Resolve(ctx, "drop/avatar", false)
	require.NoError(t, err)
	assert.Equal(t, e.Key, byName.Key)

	// Resolve by key (keys are 8 chars)
	require.Len(t, e.Key, 8)
	byKey, err := svc.Resolve(ctx, e.Key, false)
	require.NoError(t, err)
	assert.Equal(t, "drop/avatar", byKey.Name)
}

func TestService_TagMutations(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	name := "drop/avatar"
	require.NoError(t, svc.Write(ctx, name, "image/png#icon", "tester", ""))

	// Add a plain tag
	e, err := svc.AddTag(ctx, name, "raster", "tester")
	require.NoError(t, err)
	assert.Equal(t, 2, e.Version)
	assert.Equal(t, "image/png#icon#raster", e.Value)

	// Add a dynamic tag
	e, err = svc.AddTag(ctx, name, "size:32", "tester")
	require.NoError(t, err)
	assert.Equal(t, "image/png#icon#raster#size:32", e.Value)

	// Update the dynamic tag by prefix
	e, err = svc.UpdateDynamicTag(ctx, name, "size:64", "tester")
	require.NoError(t, err)
	assert.Equal(t, "image/png#icon#raster#size:64", e.Value)

	// Remove by dynamic prefix
	e, err = svc.RemoveTag(ctx, name, "size:", "tester")
	require.NoError(t, err)
	assert.Equal(t, "image/png#icon#raster", e.Value)

	// Remove a plain tag
	e, err = svc.RemoveTag(ctx, name, "icon", "tester")
	require.NoError(t, err)
	assert.Equal(t, "image/png#raster", e.Value)

	// Every mutation created a version
	history, err := svc.History(ctx, name, 0, false)
	require.NoError(t, err)
	assert.Len(t, history, 6)
}

func TestService_UpdateDynamicTagRequiresColon(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, svc.Write(ctx, "drop/avatar", "image/png", "tester", ""))

	_, err := svc.UpdateDynamicTag(ctx, "drop/avatar", "plain", "tester")
	assert.Error(t, err)
}

func TestService_SetFormat(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, svc.Write(ctx, "drop/avatar", "image/png#icon", "tester", ""))

	e, err := svc.SetFormat(ctx, "drop/avatar", "image/jpeg", "tester")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg#icon", e.Value)
}

func TestService_ListByTag(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, svc.Write(ctx, "drop/a", "image/png#icon#size:64", "tester", ""))
	require.NoError(t, svc.Write(ctx, "drop/b", "image/jpeg#photo", "tester", ""))
	require.NoError(t, svc.Write(ctx, "clip/c", "text/plain#icon", "tester", ""))

	// Plain tag match
	icons, err := svc.ListByTag(ctx, "", "icon", false, false)
	require.NoError(t, err)
	require.Len(t, icons, 2)

	// Prefix-limited
	dropIcons, err := svc.ListByTag(ctx, "drop/", "icon", false, false)
	require.NoError(t, err)
	require.Len(t, dropIcons, 1)
	assert.Equal(t, "drop/a", dropIcons[0].Name)

	// Dynamic prefix match
	sized, err := svc.ListByTag(ctx, "", "size:", false, false)
	require.NoError(t, err)
	require.Len(t, sized, 1)
	assert.Equal(t, "drop/a", sized[0].Name)

	// Exact dynamic tag does not match by identity
	none, err := svc.ListByTag(ctx, "", "size:64", false, false)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestService_DeleteRestore(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, svc.Write(ctx, "drop/gone", "image/png", "tester", ""))
	require.NoError(t, svc.Delete(ctx, "drop/gone"))

	_, err := svc.Latest(ctx, "drop/gone", false)
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, svc.Restore(ctx, "drop/gone"))

	e, err := svc.Latest(ctx, "drop/gone", false)
	require.NoError(t, err)
	assert.Equal(t, "image/png", e.Value)
}

func TestService_Rename(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, svc.Write(ctx, "drop/old", "image/png", "tester", ""))
	require.NoError(t, svc.Write(ctx, "drop/old", "image/png#icon", "tester", ""))

	require.NoError(t, svc.Rename(ctx, "drop/old", "drop/new"))

	e, err := svc.Latest(ctx, "drop/new", false)
	require.NoError(t, err)
	assert.Equal(t, 2, e.Version)
}

func TestService_Diff(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	name := "drop/avatar"
	require.NoError(t, svc.Write(ctx, name, "image/png#size:32", "tester", ""))
	require.NoError(t, svc.Write(ctx, name, "image/png#icon#size:64", "tester", ""))

	// Default: latest vs previous
	r, err := svc.Diff(ctx, name, diff.Options{})
	require.NoError(t, err)
	assert.True(t, r.Changed())
	assert.Contains(t, r.Summary, "+ #icon")
	assert.Contains(t, r.Summary, "~ #size:32 -> #size:64")

	// Explicit versions
	r, err = svc.Diff(ctx, name, diff.Options{Version1: 1, Version2: 2})
	require.NoError(t, err)
	assert.True(t, r.Changed())

	// Two names
	require.NoError(t, svc.Write(ctx, "drop/other", "image/png#size:32", "tester", ""))
	r, err = svc.Diff(ctx, "drop/other", diff.Options{Name2: name})
	require.NoError(t, err)
	assert.True(t, r.Changed())
}

func TestService_DiffSingleVersion(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, svc.Write(ctx, "drop/one", "image/png", "tester", ""))

	_, err := svc.Diff(ctx, "drop/one", diff.Options{})
	assert.Error(t, err)
}

func TestService_Vacuum(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, svc.Write(ctx, "drop/gone", "image/png", "tester", ""))
	require.NoError(t, svc.Delete(ctx, "drop/gone"))

	count, err := svc.Vacuum(ctx, nil, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = svc.Latest(ctx, "drop/gone", true)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestService_DefaultAuthor(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, svc.Write(ctx, "drop/anon", "image/png", "", ""))

	e, err := svc.Latest(ctx, "drop/anon", false)
	require.NoError(t, err)
	assert.Equal(t, "unknown", e.Author)
}
