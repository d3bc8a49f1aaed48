package storage

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"contracthub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *DiskStore {
	t.Helper()
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestStoreAndLoad(t *testing.T) {
	store := newTestStore(t)

	name, err := store.Store([]byte("%PDF-1.4"), "application/pdf", "agreement.pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, "_agreement.pdf"))

	b, err := store.Load(name)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), b)
}

func TestStoreRejectsEmptyFile(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Store(nil, "application/pdf", "empty.pdf")
	assert.Error(t, err)
}

func TestStoreRejectsOversizedFile(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Store(bytes.Repeat([]byte{0x1}, MaxFileSize+1), "application/pdf", "big.pdf")
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestStoreRejectsUnsupportedType(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Store([]byte("GIF89a"), "image/gif", "animated.gif")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)

	_, err = store.Store([]byte("#!/bin/sh"), "application/x-sh", "run.sh")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestStoreSanitizesName(t *testing.T) {
	store := newTestStore(t)

	name, err := store.Store([]byte("img"), "image/png", "my photo (1)?.png")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, "_my_photo__1__.png"))

	// path segments in the original name never survive
	name, err = store.Store([]byte("img"), "image/png", "../../etc/passwd.png")
	require.NoError(t, err)
	assert.NotContains(t, name, "/")
	assert.NotContains(t, name, "..")
}

func TestStoredNamesAreUnique(t *testing.T) {
	store := newTestStore(t)

	a, err := store.Store([]byte("one"), "application/pdf", "same.pdf")
	require.NoError(t, err)
	b, err := store.Store([]byte("two"), "application/pdf", "same.pdf")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestPathRefusesTraversal(t *testing.T) {
	store := newTestStore(t)

	name, err := store.Store([]byte("pdf"), "application/pdf", "safe.pdf")
	require.NoError(t, err)

	// only the basename is honored, so a traversal path resolves to the
	// stored file or nothing at all
	path, err := store.Path("../../" + name)
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(name), filepath.Base(path))

	_, err = store.Path("../../../etc/passwd")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.Path("")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoadMissingFile(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Load("nope.pdf")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := newTestStore(t)

	name, err := store.Store([]byte("pdf"), "application/pdf", "gone.pdf")
	require.NoError(t, err)

	store.Delete(name)
	store.Delete(name)
	store.Delete("")

	_, err = store.Load(name)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "application/pdf", ContentTypeFor("a.pdf"))
	assert.Equal(t, "image/jpeg", ContentTypeFor("b.JPG"))
	assert.Equal(t, "image/jpeg", ContentTypeFor("c.jpeg"))
	assert.Equal(t, "image/png", ContentTypeFor("d.png"))
	assert.Equal(t, "application/octet-stream", ContentTypeFor("e.docx"))
}
