package filex

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
)

// ErrTooLarge is returned by ReadUpload for files over the size limit.
var ErrTooLarge = errors.New("file too large")

// EnsureParentDir creates the directory that will hold path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// Upload is a local file picked for upload.
type Upload struct {
	Name        string
	ContentType string
	Data        []byte
}

// ReadUpload reads the file at path, refusing files larger than limit
// bytes. The content type comes from the file extension and is empty when
// the extension is unknown.
func ReadUpload(path string, limit int64) (Upload, error) {
	f, err := os.Open(path)
	if err != nil {
		return Upload{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return Upload{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.IsDir() {
		return Upload{}, fmt.Errorf("%s is a directory", path)
	}
	if fi.Size() > limit {
		return Upload{}, fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, path, fi.Size())
	}

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return Upload{}, fmt.Errorf("read %s: %w", path, err)
	}
	if int64(len(data)) > limit {
		return Upload{}, fmt.Errorf("%w: %s", ErrTooLarge, path)
	}

	return Upload{
		Name:        filepath.Base(path),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Data:        data,
	}, nil
}
