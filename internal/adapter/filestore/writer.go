package filestore

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/couchcryptid/marine-bulletin-etl/internal/domain"
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// Writer persists report artifacts to a filesystem.
// It implements pipeline.Writer.
type Writer struct {
	fs     afero.Fs
	logger *slog.Logger
}

// NewWriter creates a Writer on the OS filesystem.
func NewWriter(logger *slog.Logger) *Writer {
	return NewWriterFs(afero.NewOsFs(), logger)
}

// NewWriterFs creates a Writer on an arbitrary afero filesystem.
func NewWriterFs(fs afero.Fs, logger *slog.Logger) *Writer {
	return &Writer{fs: fs, logger: logger}
}

// Write stores the artifact under its directory, creating the directory if
// needed and replacing any file with the same name. It returns the file path.
func (w *Writer) Write(_ context.Context, a domain.Artifact) (string, error) {
	path := filepath.Join(a.Dir, a.FileName())

	if err := w.fs.MkdirAll(a.Dir, dirPerm); err != nil {
		return "", &domain.WriteError{Path: a.Dir, Err: err}
	}
	if err := afero.WriteFile(w.fs, path, a.Content, filePerm); err != nil {
		return "", &domain.WriteError{Path: path, Err: err}
	}

	w.logger.Info("artifact written", "kind", a.Kind, "path", path, "bytes", len(a.Content))
	return path, nil
}
