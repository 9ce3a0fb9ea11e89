package school

import (
	"io/fs"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/trezcool/schoolms/core"
)

type (
	// Store persists a serialized Registry.
	// Read returns an error matching fs.ErrNotExist when nothing was saved yet.
	Store interface {
		Read() ([]byte, error)
		Write(data []byte) error
	}

	Service struct {
		store Store
		log   core.Logger
	}
)

func NewService(store Store, logger core.Logger) *Service {
	return &Service{store: store, log: logger}
}

// Load reads the saved registry.
// When nothing was saved yet an empty registry is returned.
// When some records are malformed, the registry of accepted records is
// returned together with the error.
func (svc *Service) Load() (*Registry, error) {
	data, err := svc.store.Read()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			svc.log.Info("no saved data found, starting empty")
			return NewRegistry(), nil
		}
		return nil, err
	}

	reg, err := Deserialize(data)
	if err != nil {
		if reg == nil {
			return nil, err
		}
		if merr, ok := err.(*multierror.Error); ok {
			for _, rerr := range merr.Errors {
				svc.log.Warn("record rejected", rerr)
			}
		}
		return reg, err
	}

	svc.log.Debug("data loaded", map[string]interface{}{
		CollectionStudents:    len(reg.students),
		CollectionInstructors: len(reg.instructors),
		CollectionCourses:     len(reg.courses),
	})
	return reg, nil
}

func (svc *Service) Save(reg *Registry) error {
	data, err := Serialize(reg)
	if err != nil {
		return err
	}
	if err := svc.store.Write(data); err != nil {
		svc.log.Error("saving data", err)
		return err
	}
	svc.log.Debug("data saved")
	return nil
}
