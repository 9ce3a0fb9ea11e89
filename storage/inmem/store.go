package inmem

import (
	"io/fs"
	"sync"

	"github.com/trezcool/schoolms/core"
	"github.com/trezcool/schoolms/core/school"
)

// Store keeps the last written snapshot in memory.
type Store struct {
	mutex  sync.RWMutex
	data   []byte
	writes int
}

var _ school.Store = (*Store)(nil) // interface compliance check

func NewStore(data ...[]byte) *Store {
	st := &Store{}
	if len(data) > 0 && data[0] != nil {
		st.data = append([]byte(nil), data[0]...)
	}
	return st
}

func (st *Store) Read() ([]byte, error) {
	st.mutex.RLock()
	defer st.mutex.RUnlock()

	if st.data == nil {
		return nil, core.NewIOError("read", "memory", fs.ErrNotExist)
	}
	return append([]byte(nil), st.data...), nil
}

func (st *Store) Write(data []byte) error {
	st.mutex.Lock()
	defer st.mutex.Unlock()

	st.data = append(make([]byte, 0, len(data)), data...)
	st.writes++
	return nil
}

// Writes returns how many times Write was called.
func (st *Store) Writes() int {
	st.mutex.RLock()
	defer st.mutex.RUnlock()
	return st.writes
}
