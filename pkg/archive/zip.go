package archive

import (
	"archive/zip"
	"compress/flate"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
)

const compressionLevel = 6

type Info struct {
	Path  string
	Files int
	Size  int64
}

// Create writes the given files into a new zip archive at output. Entries
// are stored flat under their base names. On failure the partial archive
// is removed.
func Create(output string, files []string) (*Info, error) {
	out, err := os.Create(output)

	if err != nil {
		return nil, fmt.Errorf("create archive: %w", err)
	}

	writer := zip.NewWriter(out)

	writer.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, compressionLevel)
	})

	var result error

	for _, file := range files {
		if err := addFile(writer, file); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if err := writer.Close(); err != nil {
		result = multierror.Append(result, err)
	}

	if err := out.Close(); err != nil {
		result = multierror.Append(result, err)
	}

	if result != nil {
		_ = os.Remove(output)
		return nil, result
	}

	info, err := os.Stat(output)

	if err != nil {
		return nil, err
	}

	return &Info{
		Path:  output,
		Files: len(files),
		Size:  info.Size(),
	}, nil
}

func addFile(writer *zip.Writer, path string) error {
	in, err := os.Open(path)

	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	defer in.Close()

	entry, err := writer.Create(filepath.Base(path))

	if err != nil {
		return fmt.Errorf("add %s: %w", path, err)
	}

	if _, err := io.Copy(entry, in); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
