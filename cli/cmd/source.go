// Package cmd implements the CLI-level concerns shared by the run command:
// resolving the input source and the command-scoped error type.
package cmd

import (
	"io"
	"os"
	"path/filepath"
)

// stdinSource is the special source path meaning "read from stdin".
const stdinSource = "-"

// nopCloser wraps a reader that shouldn't be closed by its caller (stdin).
type nopCloser struct {
	io.Reader
}

func (nopCloser) Close() error { return nil }

// OpenSource opens the program source at path. "-" reads from stdin;
// anything else resolves through any symlinks before opening, so a
// dangling or looping link fails here rather than inside the JSON decoder.
func OpenSource(path string) (io.ReadCloser, error) {
	if path == stdinSource {
		return nopCloser{os.Stdin}, nil
	}

	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil, ErrOpenSource.Wrap(err)
	}

	f, err := os.Open(resolved)
	if err != nil {
		return nil, ErrOpenSource.Wrap(err)
	}

	return f, nil
}
