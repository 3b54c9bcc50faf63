package memfs

import (
	"github.com/blockpool/memfs/internal/logger"
)

// Dir returns the names of every file currently in the directory, most
// recently created first. Each name is copied into its own string so the
// result never aliases directory-internal state. Fails with NotExists if
// the directory is empty.
func (fs *FileSystem) Dir() ([]string, error) {
	lc := logger.NewLogContext("Dir", "")

	entries, err := fs.dir.Gather()
	if err != nil {
		logger.Debug("dir failed", logger.Err(err))
		fs.recordOp(lc, "Dir", err)
		return nil, err
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		name := make([]byte, len(e.Name))
		copy(name, e.Name)
		names[i] = string(name)
	}

	logger.Debug("dir listed", "count", len(names))
	fs.recordOp(lc, "Dir", nil)

	return names, nil
}
