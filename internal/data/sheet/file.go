package sheet

import (
	"context"
	"errors"
	"io/fs"
	"os"
)

// FileSource reads a CSV export saved on disk, for offline use
type FileSource struct {
	path string
}

// NewFileSource creates a source reading path
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the file being read
func (f *FileSource) Path() string {
	return f.path
}

func (f *FileSource) Source() string {
	return "file:" + f.path
}

// FetchCSV reads the whole file. A missing file reports NotFoundError.
func (f *FileSource) FetchCSV(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &NetworkError{Err: err}
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &NotFoundError{Resource: f.path}
		}
		if errors.Is(err, fs.ErrPermission) {
			return "", &AccessDeniedError{}
		}
		return "", &NetworkError{Err: err}
	}
	return string(data), nil
}

// NewFetcher returns a FileSource when cfg names a local file, otherwise an HTTP Client
func NewFetcher(cfg Config, opts ...ClientOption) Fetcher {
	if cfg.LocalFile != "" {
		return NewFileSource(cfg.LocalFile)
	}
	return NewClient(cfg, opts...)
}
