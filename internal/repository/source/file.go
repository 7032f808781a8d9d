package source

import (
	"context"
	"fmt"
	"os"

	"github.com/kailas-cloud/dinedash/internal/domain/restaurant"
)

// File reads the data resource from the local filesystem.
type File struct {
	path string
}

// NewFile creates a file source.
func NewFile(path string) *File {
	return &File{path: path}
}

// Name identifies the source in logs and metrics.
func (f *File) Name() string { return "file" }

// Load reads and decodes the file.
func (f *File) Load(ctx context.Context) ([]restaurant.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Source: f.Name(), Err: err}
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, &Error{Source: f.Name(), Err: fmt.Errorf("read %s: %w", f.path, err)}
	}
	records, err := Decode(data)
	if err != nil {
		return nil, &Error{Source: f.Name(), Err: err}
	}
	return records, nil
}
