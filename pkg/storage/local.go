package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

type localStorage struct {
	baseDir string
}

// NewLocalStorage creates a disk-backed ImageStorage rooted at baseDir.
// References are timestamped filenames relative to baseDir, served by the
// HTTP layer under /uploads.
func NewLocalStorage(baseDir string) (ImageStorage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &localStorage{baseDir: baseDir}, nil
}

func (s *localStorage) UploadImage(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("file type %q is not allowed", ext)
	}

	name := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	final := fmt.Sprintf("%d_%s%s", time.Now().Unix(), sanitizeName(name), ext)
	if folder != "" {
		if err := os.MkdirAll(filepath.Join(s.baseDir, folder), 0o755); err != nil {
			return "", fmt.Errorf("failed to create folder %q: %w", folder, err)
		}
		final = filepath.Join(folder, final)
	}

	dst, err := os.Create(filepath.Join(s.baseDir, final))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return filepath.ToSlash(final), nil
}

func (s *localStorage) DeleteImage(ctx context.Context, ref string) error {
	// Refuse anything that escapes the upload directory.
	clean := filepath.Clean(ref)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return fmt.Errorf("invalid storage reference: %s", ref)
	}

	if err := os.Remove(filepath.Join(s.baseDir, clean)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// sanitizeName strips characters that are unsafe in filenames.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
