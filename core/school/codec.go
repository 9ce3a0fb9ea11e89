package school

import (
	"encoding/json"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/trezcool/schoolms/core"
)

// Collection names, as persisted.
const (
	CollectionStudents    = "students"
	CollectionInstructors = "instructors"
	CollectionCourses     = "courses"
)

// Nested references only carry identity fields.
type (
	courseRef struct {
		CourseID   string `json:"course_id"`
		CourseName string `json:"course_name"`
	}

	studentRef struct {
		StudentID string `json:"student_id"`
		Name      string `json:"name"`
	}

	instructorRef struct {
		InstructorID string `json:"instructor_id"`
		Name         string `json:"name"`
	}
)

// Pointer fields tell a missing field apart from a zero value.
type (
	studentEntry struct {
		Name              *string     `json:"name"`
		Age               *int        `json:"age"`
		Email             *string     `json:"email"`
		StudentID         *string     `json:"student_id"`
		RegisteredCourses []courseRef `json:"registered_courses"`
	}

	instructorEntry struct {
		Name            *string     `json:"name"`
		Age             *int        `json:"age"`
		Email           *string     `json:"email"`
		InstructorID    *string     `json:"instructor_id"`
		AssignedCourses []courseRef `json:"assigned_courses"`
	}

	courseEntry struct {
		CourseID         *string        `json:"course_id"`
		CourseName       *string        `json:"course_name"`
		Instructor       *instructorRef `json:"instructor"`
		EnrolledStudents []studentRef   `json:"enrolled_students"`
	}

	document struct {
		Students    []studentEntry    `json:"students"`
		Instructors []instructorEntry `json:"instructors"`
		Courses     []courseEntry     `json:"courses"`
	}

	rawDocument struct {
		Students    []json.RawMessage `json:"students"`
		Instructors []json.RawMessage `json:"instructors"`
		Courses     []json.RawMessage `json:"courses"`
	}
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

// missingFields returns a *core.ValidationError naming every nil field, or nil.
func missingFields(flds map[string]bool) error {
	var errs []*core.InvalidFieldError
	for _, name := range []string{"name", "age", "email", "student_id", "instructor_id", "course_id", "course_name"} {
		if present, ok := flds[name]; ok && !present {
			errs = append(errs, &core.InvalidFieldError{Field: name, Reason: "missing required field"})
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return core.NewValidationError(errs...)
}

func (e studentEntry) build() (*Student, error) {
	if err := missingFields(map[string]bool{
		"name":       e.Name != nil,
		"age":        e.Age != nil,
		"email":      e.Email != nil,
		"student_id": e.StudentID != nil,
	}); err != nil {
		return nil, err
	}
	return BuildStudent(NewStudent{Name: *e.Name, Age: *e.Age, Email: *e.Email, StudentID: *e.StudentID})
}

func (e instructorEntry) build() (*Instructor, error) {
	if err := missingFields(map[string]bool{
		"name":          e.Name != nil,
		"age":           e.Age != nil,
		"email":         e.Email != nil,
		"instructor_id": e.InstructorID != nil,
	}); err != nil {
		return nil, err
	}
	return BuildInstructor(NewInstructor{Name: *e.Name, Age: *e.Age, Email: *e.Email, InstructorID: *e.InstructorID})
}

func (e courseEntry) build() (*Course, error) {
	if err := missingFields(map[string]bool{
		"course_id":   e.CourseID != nil,
		"course_name": e.CourseName != nil,
	}); err != nil {
		return nil, err
	}
	return BuildCourse(NewCourse{CourseID: *e.CourseID, CourseName: *e.CourseName})
}

func (r *Registry) courseRefs(ids []string) []courseRef {
	refs := make([]courseRef, 0, len(ids))
	for _, id := range ids {
		ref := courseRef{CourseID: id}
		if c, err := r.CourseByID(id); err == nil {
			ref.CourseName = c.name
		}
		refs = append(refs, ref)
	}
	return refs
}

func (r *Registry) document() document {
	doc := document{
		Students:    make([]studentEntry, 0, len(r.students)),
		Instructors: make([]instructorEntry, 0, len(r.instructors)),
		Courses:     make([]courseEntry, 0, len(r.courses)),
	}
	for _, s := range r.students {
		doc.Students = append(doc.Students, studentEntry{
			Name:              strPtr(s.name),
			Age:               intPtr(s.age),
			Email:             strPtr(s.email),
			StudentID:         strPtr(s.id),
			RegisteredCourses: r.courseRefs(s.courses),
		})
	}
	for _, i := range r.instructors {
		doc.Instructors = append(doc.Instructors, instructorEntry{
			Name:            strPtr(i.name),
			Age:             intPtr(i.age),
			Email:           strPtr(i.email),
			InstructorID:    strPtr(i.id),
			AssignedCourses: r.courseRefs(i.courses),
		})
	}
	for _, c := range r.courses {
		entry := courseEntry{
			CourseID:         strPtr(c.id),
			CourseName:       strPtr(c.name),
			EnrolledStudents: make([]studentRef, 0, len(c.students)),
		}
		if id, ok := c.Instructor(); ok {
			ref := &instructorRef{InstructorID: id}
			if i, err := r.InstructorByID(id); err == nil {
				ref.Name = i.name
			}
			entry.Instructor = ref
		}
		for _, id := range c.students {
			ref := studentRef{StudentID: id}
			if s, err := r.StudentByID(id); err == nil {
				ref.Name = s.name
			}
			entry.EnrolledStudents = append(entry.EnrolledStudents, ref)
		}
		doc.Courses = append(doc.Courses, entry)
	}
	return doc
}

// Serialize encodes the registry as an indented JSON document with the
// "students", "instructors" and "courses" arrays.
// Nested relations are reduced to identifier and name.
func Serialize(r *Registry) ([]byte, error) {
	data, err := json.MarshalIndent(r.document(), "", "    ")
	if err != nil {
		return nil, errors.Wrap(err, "encoding registry")
	}
	return data, nil
}

// Deserialize rebuilds a Registry from data produced by Serialize.
//
// Every record goes through its validated constructor. Records that fail are
// skipped and reported as *core.MalformedRecordError, aggregated in a
// *multierror.Error returned along with the registry of accepted records.
// Relations are rebuilt by identifier; references to records that were not
// accepted are dropped.
// If data is not a JSON document, the error wraps core.ErrMalformedData and
// the registry is nil.
func Deserialize(data []byte) (*Registry, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(core.ErrMalformedData, err.Error())
	}

	var result *multierror.Error
	reject := func(collection string, idx int, err error) {
		result = multierror.Append(result, &core.MalformedRecordError{Collection: collection, Index: idx, Err: err})
	}

	reg := NewRegistry()
	var doc document

	for idx, msg := range raw.Students {
		var entry studentEntry
		if err := json.Unmarshal(msg, &entry); err != nil {
			reject(CollectionStudents, idx, err)
			continue
		}
		s, err := entry.build()
		if err != nil {
			reject(CollectionStudents, idx, err)
			continue
		}
		if _, err := reg.StudentByID(s.id); err == nil {
			reject(CollectionStudents, idx, duplicateIDError("student_id"))
			continue
		}
		reg.students = append(reg.students, s)
		doc.Students = append(doc.Students, entry)
	}

	for idx, msg := range raw.Instructors {
		var entry instructorEntry
		if err := json.Unmarshal(msg, &entry); err != nil {
			reject(CollectionInstructors, idx, err)
			continue
		}
		i, err := entry.build()
		if err != nil {
			reject(CollectionInstructors, idx, err)
			continue
		}
		if _, err := reg.InstructorByID(i.id); err == nil {
			reject(CollectionInstructors, idx, duplicateIDError("instructor_id"))
			continue
		}
		reg.instructors = append(reg.instructors, i)
		doc.Instructors = append(doc.Instructors, entry)
	}

	for idx, msg := range raw.Courses {
		var entry courseEntry
		if err := json.Unmarshal(msg, &entry); err != nil {
			reject(CollectionCourses, idx, err)
			continue
		}
		c, err := entry.build()
		if err != nil {
			reject(CollectionCourses, idx, err)
			continue
		}
		if _, err := reg.CourseByID(c.id); err == nil {
			reject(CollectionCourses, idx, duplicateIDError("course_id"))
			continue
		}
		reg.courses = append(reg.courses, c)
		doc.Courses = append(doc.Courses, entry)
	}

	reg.link(doc)
	return reg, result.ErrorOrNil()
}

// link restores relations from accepted entries; entries are index-aligned with the collections.
func (r *Registry) link(doc document) {
	for idx, entry := range doc.Students {
		s := r.students[idx]
		for _, ref := range entry.RegisteredCourses {
			if c, err := r.CourseByID(ref.CourseID); err == nil {
				s.courses = append(s.courses, c.id)
			}
		}
	}
	for idx, entry := range doc.Instructors {
		i := r.instructors[idx]
		for _, ref := range entry.AssignedCourses {
			if c, err := r.CourseByID(ref.CourseID); err == nil {
				i.courses = append(i.courses, c.id)
			}
		}
	}
	for idx, entry := range doc.Courses {
		c := r.courses[idx]
		if entry.Instructor != nil {
			if i, err := r.InstructorByID(entry.Instructor.InstructorID); err == nil {
				c.instructorID = i.id
			}
		}
		for _, ref := range entry.EnrolledStudents {
			if s, err := r.StudentByID(ref.StudentID); err == nil {
				c.students = append(c.students, s.id)
			}
		}
	}
}
