package wordsource

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// ErrNoSuchDictionary is returned when a dictionary path does not exist.
var ErrNoSuchDictionary = errors.New("no such dictionary")

// OpenFile opens the dictionary at path on fs. The path Stdin returns a
// reader over os.Stdin whose Close is a no-op. The returned size is the file
// size in bytes, or -1 when unknown.
func OpenFile(fs afero.Fs, path string) (io.ReadCloser, int64, error) {
	if path == Stdin {
		return io.NopCloser(os.Stdin), -1, nil
	}

	fi, err := fs.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, fmt.Errorf("%w: %s", ErrNoSuchDictionary, path)
		}
		return nil, 0, err
	}
	if fi.IsDir() {
		return nil, 0, fmt.Errorf("dictionary %s is a directory", path)
	}

	f, err := fs.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("could not open dictionary %s: %w", path, err)
	}
	return f, fi.Size(), nil
}
