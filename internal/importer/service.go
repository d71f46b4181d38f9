package importer

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	enc "github.com/mbfernandes/bolso/internal/encoding"
)

type Service struct {
	csvImporter Importer
	ofxImporter Importer
}

func NewService() *Service {
	return &Service{
		csvImporter: NewCSV(),
		ofxImporter: NewOFX(),
	}
}

// Import dispatches on the filename's extension (case-insensitive) and
// parses the statement. Unknown extensions are rejected before a single byte
// is read. Parsing is pure: the same content always yields the same result.
func (s *Service) Import(filename string, r io.Reader) (*Result, error) {
	var importer Importer

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "csv":
		importer = s.csvImporter
	case "ofx":
		importer = s.ofxImporter
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	return importer.Parse(utf8r)
}
