package source

import (
	"context"
	"fmt"
	"os"

	"promohub/pkg/models"
)

// FileSource reads the same export from a local file: a mirror of the
// private JSON for development and for the CSV exporter.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Name() string { return "file" }

func (s *FileSource) FetchAll(ctx context.Context) ([]models.RawPromotionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("source: open %s: %w", s.Path, err)
	}
	defer f.Close()

	return decodeRecords(f)
}
