package school

import (
	"strings"

	"github.com/trezcool/schoolms/core"
)

// Record is the flat projection of an entity used for listings.
// For courses Name is the course name.
type Record struct {
	Kind string `json:"kind" yaml:"kind"`
	Name string `json:"name" yaml:"name"`
	ID   string `json:"id" yaml:"id"`
}

type SearchField string

const (
	SearchByName   SearchField = "name"
	SearchByID     SearchField = "id"
	SearchByCourse SearchField = "course"
)

var SearchFields = []SearchField{SearchByName, SearchByID, SearchByCourse}

// ParseSearchField maps user input ("Name", "id", ...) to a SearchField.
func ParseSearchField(s string) (SearchField, bool) {
	f := SearchField(core.CleanString(s, true /* lower */))
	for _, known := range SearchFields {
		if f == known {
			return f, true
		}
	}
	return "", false
}

func studentRecord(s *Student) Record {
	return Record{Kind: KindStudent, Name: s.name, ID: s.id}
}

func instructorRecord(i *Instructor) Record {
	return Record{Kind: KindInstructor, Name: i.name, ID: i.id}
}

func courseRecord(c *Course) Record {
	return Record{Kind: KindCourse, Name: c.name, ID: c.id}
}

// Records lists students, then instructors, then courses.
func (r *Registry) Records() []Record {
	recs := make([]Record, 0, len(r.students)+len(r.instructors)+len(r.courses))
	for _, s := range r.students {
		recs = append(recs, studentRecord(s))
	}
	for _, i := range r.instructors {
		recs = append(recs, instructorRecord(i))
	}
	for _, c := range r.courses {
		recs = append(recs, courseRecord(c))
	}
	return recs
}

// Search does a case-insensitive substring match of text.
// SearchByName and SearchByID look at students and instructors,
// SearchByCourse looks at course names.
func (r *Registry) Search(by SearchField, text string) []Record {
	text = strings.TrimSpace(text)
	var recs []Record

	switch by {
	case SearchByName, SearchByID:
		field := func(name, id string) string {
			if by == SearchByName {
				return name
			}
			return id
		}
		for _, s := range r.students {
			if core.ContainsFold(field(s.name, s.id), text) {
				recs = append(recs, studentRecord(s))
			}
		}
		for _, i := range r.instructors {
			if core.ContainsFold(field(i.name, i.id), text) {
				recs = append(recs, instructorRecord(i))
			}
		}
	case SearchByCourse:
		for _, c := range r.courses {
			if core.ContainsFold(c.name, text) {
				recs = append(recs, courseRecord(c))
			}
		}
	}
	return recs
}
