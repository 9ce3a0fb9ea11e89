package jsonfile

import (
	"os"
	"path/filepath"

	"github.com/trezcool/schoolms/core"
	"github.com/trezcool/schoolms/core/school"
)

type store struct {
	path string
}

var _ school.Store = (*store)(nil) // interface compliance check

// NewStore returns a school.Store backed by the JSON file at path.
func NewStore(path string) school.Store {
	return &store{path: path}
}

func (s *store) Read() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, core.NewIOError("read", s.path, err)
	}
	return data, nil
}

// Write replaces the file as a whole: data goes to a temp file in the same
// directory which is then renamed over the target.
func (s *store) Write(data []byte) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return core.NewIOError("write", s.path, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // no-op once renamed

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return core.NewIOError("write", s.path, err)
	}
	if err = tmp.Close(); err != nil {
		return core.NewIOError("write", s.path, err)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return core.NewIOError("write", s.path, err)
	}
	if err = os.Rename(tmpName, s.path); err != nil {
		return core.NewIOError("write", s.path, err)
	}
	return nil
}
