package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) (ImageStorage, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewLocalStorage(dir)
	require.NoError(t, err)
	return s, dir
}

func TestUploadImageWritesFile(t *testing.T) {
	s, dir := newTestStorage(t)

	ref, err := s.UploadImage(context.Background(), strings.NewReader("fake png bytes"), "posts", "sunset.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "posts/"))
	assert.True(t, strings.HasSuffix(ref, "_sunset.png"))

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(ref)))
	require.NoError(t, err)
	assert.Equal(t, "fake png bytes", string(data))
}

func TestUploadImageRejectsDisallowedExtension(t *testing.T) {
	s, _ := newTestStorage(t)

	_, err := s.UploadImage(context.Background(), strings.NewReader("#!/bin/sh"), "posts", "evil.sh")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowed")
}

func TestUploadImageSanitizesFileName(t *testing.T) {
	s, dir := newTestStorage(t)

	ref, err := s.UploadImage(context.Background(), strings.NewReader("x"), "", "my photo (1).jpg")
	require.NoError(t, err)
	assert.NotContains(t, ref, " ")
	assert.NotContains(t, ref, "(")

	_, err = os.Stat(filepath.Join(dir, ref))
	require.NoError(t, err)
}

func TestDeleteImage(t *testing.T) {
	s, dir := newTestStorage(t)

	ref, err := s.UploadImage(context.Background(), strings.NewReader("x"), "avatars", "me.jpg")
	require.NoError(t, err)

	require.NoError(t, s.DeleteImage(context.Background(), ref))

	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(ref)))
	assert.True(t, os.IsNotExist(err))

	// Deleting the same reference again is a no-op.
	require.NoError(t, s.DeleteImage(context.Background(), ref))
}

func TestDeleteImageRefusesEscapingPaths(t *testing.T) {
	s, _ := newTestStorage(t)

	require.Error(t, s.DeleteImage(context.Background(), "../outside.txt"))
	require.Error(t, s.DeleteImage(context.Background(), "/etc/passwd"))
}
