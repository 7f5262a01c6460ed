package certificate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

// ArtifactStore keeps rendered certificates addressed only by number.
type ArtifactStore interface {
	Exists(ctx context.Context, number string) (bool, error)
	// Write stores whatever render produces under number and returns its
	// location. A failed render must not leave a readable artifact behind.
	Write(ctx context.Context, number string, render func(io.Writer) error) (string, error)
	Open(ctx context.Context, number string) (io.ReadCloser, error)
	Location(number string) string
}

// FileStore keeps one <number>.pdf per certificate under Root. URLPrefix is
// the static path Root is served from.
type FileStore struct {
	Root      string
	URLPrefix string
}

func NewFileStore(root, urlPrefix string) *FileStore {
	return &FileStore{Root: root, URLPrefix: urlPrefix}
}

func (s *FileStore) Location(number string) string {
	return path.Join("/", s.URLPrefix, number+".pdf")
}

func (s *FileStore) path(number string) (string, error) {
	if !ValidNumber(number) {
		return "", fmt.Errorf("artifact path for %q: %w", number, ErrNotFound)
	}
	return filepath.Join(s.Root, number+".pdf"), nil
}

func (s *FileStore) Exists(_ context.Context, number string) (bool, error) {
	p, err := s.path(number)
	if err != nil {
		return false, nil
	}
	info, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat artifact %s: %w: %w", number, ErrIOFailure, err)
	}
	return info.Mode().IsRegular(), nil
}

// Write renders into a temp file next to the target and renames it into
// place once render and close both succeed.
func (s *FileStore) Write(ctx context.Context, number string, render func(io.Writer) error) (string, error) {
	p, err := s.path(number)
	if err != nil {
		return "", fmt.Errorf("write artifact: invalid certificate number %q: %w", number, ErrIOFailure)
	}
	if err := os.MkdirAll(s.Root, 0o755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w: %w", ErrIOFailure, err)
	}

	tmp := p + "." + uuid.NewString() + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create artifact %s: %w: %w", number, ErrIOFailure, err)
	}

	if err := render(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("write artifact %s: %w: %w", number, ErrIOFailure, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("close artifact %s: %w: %w", number, ErrIOFailure, err)
	}
	if err := ctx.Err(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("write artifact %s: %w: %w", number, ErrIOFailure, err)
	}
	if err := os.Rename(tmp, p); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("publish artifact %s: %w: %w", number, ErrIOFailure, err)
	}
	return s.Location(number), nil
}

func (s *FileStore) Open(_ context.Context, number string) (io.ReadCloser, error) {
	p, err := s.path(number)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("artifact %s: %w", number, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("open artifact %s: %w: %w", number, ErrIOFailure, err)
	}
	return f, nil
}
