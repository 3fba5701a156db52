package workspace

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// ReadPrefix reads up to limit bytes from r. Fewer bytes than limit is a normal
// short read, not an error; the returned slice holds only what was read. The
// buffer grows with the data read, not with limit.
func ReadPrefix(r io.Reader, limit int) ([]byte, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("invalid prefix size %d", limit)
	}
	return io.ReadAll(io.LimitReader(r, int64(limit)))
}

// ReadPrefix opens rel and returns at most limit leading bytes. The file handle
// is closed before returning on every path.
func (w *Workspace) ReadPrefix(rel string, limit int) (data []byte, err error) {
	f, err := w.fs.Open(w.abs(rel))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", rel)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "failed to close %s", rel)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to stat %s", rel)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", rel)
	}

	data, err = ReadPrefix(f, limit)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", rel)
	}
	return data, nil
}
