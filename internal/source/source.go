package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/issuesreport/internal/model"
)

// StdinPath is the input path that reads from standard input.
const StdinPath = "-"

// Format names an input format.
type Format string

const (
	// FormatAuto picks the format from the file extension, then the content.
	FormatAuto Format = "auto"

	// FormatJSON is the native issuesreport JSON document.
	FormatJSON Format = "json"

	// FormatSARIF is a SARIF 2.1.0 log.
	FormatSARIF Format = "sarif"
)

// Formats returns the accepted format names.
func Formats() []Format {
	return []Format{FormatAuto, FormatJSON, FormatSARIF}
}

// ParseFormat returns the Format for name. The empty string means auto.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatSARIF:
		return FormatSARIF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Batch is the decoded content of one input.
type Batch struct {
	// Source is the name of the input the batch was loaded from.
	Source string

	// Issues are the issues in the order the engine reported them.
	Issues []model.Issue

	// FilesAnalyzed is the number of files the engine analyzed.
	FilesAnalyzed int
}

// Source loads a Batch from one input.
type Source interface {
	// Name returns the input name used in logs and errors.
	Name() string

	// Load reads and decodes the input.
	Load(ctx context.Context) (*Batch, error)
}

// decodeFunc decodes a whole input document.
type decodeFunc func(data []byte) (*Batch, error)

// fileSource reads a file (or stdin) and hands the bytes to a decoder.
type fileSource struct {
	path   string
	format Format
	stdin  io.Reader
}

// New returns a Source for path. StdinPath reads from stdin.
func New(path string, format Format, stdin io.Reader) (Source, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}
	if format == "" {
		format = FormatAuto
	}
	return &fileSource{path: path, format: format, stdin: stdin}, nil
}

// Name returns the input path, or "stdin".
func (s *fileSource) Name() string {
	if s.path == StdinPath {
		return "stdin"
	}
	return s.path
}

// Load reads the input and decodes it in the configured format.
func (s *fileSource) Load(ctx context.Context) (*Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := s.read()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.Name(), err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	batch, err := s.decoder(data)(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name(), err)
	}
	batch.Source = s.Name()
	return batch, nil
}

// read returns the whole input.
func (s *fileSource) read() ([]byte, error) {
	if s.path == StdinPath {
		if s.stdin == nil {
			return nil, nil
		}
		return io.ReadAll(s.stdin)
	}
	return os.ReadFile(filepath.Clean(s.path))
}

// decoder picks the decoder for the input.
func (s *fileSource) decoder(data []byte) decodeFunc {
	format := s.format
	if format == FormatAuto {
		format = Detect(s.path, data)
	}
	if format == FormatSARIF {
		return DecodeSARIF
	}
	return DecodeJSON
}

// Detect guesses the format of an input from its path and content.
// A ".sarif" extension means SARIF; otherwise a top-level "runs" member
// does. Everything else is treated as the native JSON document.
func Detect(path string, data []byte) Format {
	if path != StdinPath && strings.EqualFold(filepath.Ext(path), ".sarif") {
		return FormatSARIF
	}

	var probe struct {
		Runs json.RawMessage `json:"runs"`
	}
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&probe); err == nil && probe.Runs != nil {
		return FormatSARIF
	}
	return FormatJSON
}
