package lang

import (
	"context"
	"io"
	"log/slog"

	json "github.com/goccy/go-json"
	"github.com/klauspost/readahead"

	"github.com/ardnew/rinha/ast"
	"github.com/ardnew/rinha/log"
)

// Decode reads a complete program document from r and decodes it into an
// ast.Program. r is wrapped in an asynchronous read-ahead reader so I/O
// overlaps with the caller's own buffering, the same technique the
// reference project used for its source reader.
func Decode(ctx context.Context, r io.Reader) (*ast.Program, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	log.TraceContext(ctx, "decode", slog.Int("source_bytes", len(data)))

	var prog ast.Program
	if err := json.Unmarshal(data, &prog); err != nil {
		return nil, ErrDecodeAST.Wrap(err)
	}

	if prog.Expression == nil {
		return nil, ErrEmptyProgram
	}

	return &prog, nil
}
