package school

import (
	"github.com/pkg/errors"

	"github.com/trezcool/schoolms/core"
)

// Registry owns every Student, Instructor and Course.
// Collections keep insertion order and every lookup is a linear scan.
// Relations are stored as identifiers and resolved through the Registry.
//
// A Registry is not safe for concurrent use.
type Registry struct {
	students    []*Student
	instructors []*Instructor
	courses     []*Course
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Students() []*Student       { return append([]*Student(nil), r.students...) }
func (r *Registry) Instructors() []*Instructor { return append([]*Instructor(nil), r.instructors...) }
func (r *Registry) Courses() []*Course         { return append([]*Course(nil), r.courses...) }

func find[T any](items []*T, match func(*T) bool) (*T, error) {
	if idx := indexOf(items, match); idx >= 0 {
		return items[idx], nil
	}
	return nil, core.ErrNotFound
}

func indexOf[T any](items []*T, match func(*T) bool) int {
	for i, item := range items {
		if match(item) {
			return i
		}
	}
	return -1
}

func removeAt[T any](items []*T, idx int) []*T {
	copy(items[idx:], items[idx+1:])
	items[len(items)-1] = nil
	return items[:len(items)-1]
}

// without returns ids minus every occurrence of id.
func without(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func replaceID(ids []string, oldID, newID string) {
	for i, v := range ids {
		if v == oldID {
			ids[i] = newID
		}
	}
}

// FindStudent returns the first student matching, or core.ErrNotFound.
func (r *Registry) FindStudent(match func(*Student) bool) (*Student, error) {
	return find(r.students, match)
}

// FindInstructor returns the first instructor matching, or core.ErrNotFound.
func (r *Registry) FindInstructor(match func(*Instructor) bool) (*Instructor, error) {
	return find(r.instructors, match)
}

// FindCourse returns the first course matching, or core.ErrNotFound.
func (r *Registry) FindCourse(match func(*Course) bool) (*Course, error) {
	return find(r.courses, match)
}

func (r *Registry) StudentByID(id string) (*Student, error) {
	id = core.CleanString(id)
	return r.FindStudent(func(s *Student) bool { return s.id == id })
}

func (r *Registry) StudentByName(name string) (*Student, error) {
	name = core.CleanString(name)
	return r.FindStudent(func(s *Student) bool { return s.name == name })
}

func (r *Registry) InstructorByID(id string) (*Instructor, error) {
	id = core.CleanString(id)
	return r.FindInstructor(func(i *Instructor) bool { return i.id == id })
}

func (r *Registry) InstructorByName(name string) (*Instructor, error) {
	name = core.CleanString(name)
	return r.FindInstructor(func(i *Instructor) bool { return i.name == name })
}

func (r *Registry) CourseByID(id string) (*Course, error) {
	id = core.CleanString(id)
	return r.FindCourse(func(c *Course) bool { return c.id == id })
}

func (r *Registry) CourseByName(name string) (*Course, error) {
	name = core.CleanString(name)
	return r.FindCourse(func(c *Course) bool { return c.name == name })
}

func duplicateIDError(field string) error {
	return core.NewValidationError(&core.InvalidFieldError{Field: field, Reason: core.ErrDuplicateID.Error()})
}

func (r *Registry) AddStudent(ns NewStudent) (*Student, error) {
	s, err := BuildStudent(ns)
	if err != nil {
		return nil, err
	}
	if _, err := r.StudentByID(s.id); err == nil {
		return nil, duplicateIDError("student_id")
	}
	r.students = append(r.students, s)
	return s, nil
}

func (r *Registry) AddInstructor(ni NewInstructor) (*Instructor, error) {
	i, err := BuildInstructor(ni)
	if err != nil {
		return nil, err
	}
	if _, err := r.InstructorByID(i.id); err == nil {
		return nil, duplicateIDError("instructor_id")
	}
	r.instructors = append(r.instructors, i)
	return i, nil
}

func (r *Registry) AddCourse(nc NewCourse) (*Course, error) {
	c, err := BuildCourse(nc)
	if err != nil {
		return nil, err
	}
	if _, err := r.CourseByID(c.id); err == nil {
		return nil, duplicateIDError("course_id")
	}
	r.courses = append(r.courses, c)
	return c, nil
}

// Enroll registers the student in the course and adds the student to the course's roll.
func (r *Registry) Enroll(studentID, courseID string) error {
	s, err := r.StudentByID(studentID)
	if err != nil {
		return errors.Wrapf(err, "student %q", studentID)
	}
	c, err := r.CourseByID(courseID)
	if err != nil {
		return errors.Wrapf(err, "course %q", courseID)
	}
	s.RegisterCourse(c)
	c.AddStudent(s)
	return nil
}

// Assign makes the instructor the course's instructor.
// A previously assigned instructor loses the course.
func (r *Registry) Assign(instructorID, courseID string) error {
	i, err := r.InstructorByID(instructorID)
	if err != nil {
		return errors.Wrapf(err, "instructor %q", instructorID)
	}
	c, err := r.CourseByID(courseID)
	if err != nil {
		return errors.Wrapf(err, "course %q", courseID)
	}
	if prevID, ok := c.Instructor(); ok && prevID != i.id {
		if prev, err := r.InstructorByID(prevID); err == nil {
			prev.courses = without(prev.courses, c.id)
		}
	}
	i.AssignCourse(c)
	return nil
}

// RemoveStudent removes the student and drops it from every course roll.
func (r *Registry) RemoveStudent(id string) error {
	id = core.CleanString(id)
	idx := indexOf(r.students, func(s *Student) bool { return s.id == id })
	if idx < 0 {
		return core.ErrNotFound
	}
	r.students = removeAt(r.students, idx)
	for _, c := range r.courses {
		c.students = without(c.students, id)
	}
	return nil
}

// RemoveInstructor removes the instructor and clears it from the courses it taught.
func (r *Registry) RemoveInstructor(id string) error {
	id = core.CleanString(id)
	idx := indexOf(r.instructors, func(i *Instructor) bool { return i.id == id })
	if idx < 0 {
		return core.ErrNotFound
	}
	r.instructors = removeAt(r.instructors, idx)
	for _, c := range r.courses {
		if c.instructorID == id {
			c.instructorID = ""
		}
	}
	return nil
}

// RemoveCourse removes the course and drops it from every student and instructor.
func (r *Registry) RemoveCourse(id string) error {
	id = core.CleanString(id)
	idx := indexOf(r.courses, func(c *Course) bool { return c.id == id })
	if idx < 0 {
		return core.ErrNotFound
	}
	r.courses = removeAt(r.courses, idx)
	for _, s := range r.students {
		s.courses = without(s.courses, id)
	}
	for _, i := range r.instructors {
		i.courses = without(i.courses, id)
	}
	return nil
}

// UpdateStudent rebuilds the student identified by id from ns.
// The student keeps its position and its courses.
func (r *Registry) UpdateStudent(id string, ns NewStudent) (*Student, error) {
	id = core.CleanString(id)
	idx := indexOf(r.students, func(s *Student) bool { return s.id == id })
	if idx < 0 {
		return nil, core.ErrNotFound
	}
	s, err := BuildStudent(ns)
	if err != nil {
		return nil, err
	}
	if s.id != id {
		if _, err := r.StudentByID(s.id); err == nil {
			return nil, duplicateIDError("student_id")
		}
		for _, c := range r.courses {
			replaceID(c.students, id, s.id)
		}
	}
	s.courses = r.students[idx].courses
	r.students[idx] = s
	return s, nil
}

// UpdateInstructor rebuilds the instructor identified by id from ni.
// The instructor keeps its position and its courses.
func (r *Registry) UpdateInstructor(id string, ni NewInstructor) (*Instructor, error) {
	id = core.CleanString(id)
	idx := indexOf(r.instructors, func(i *Instructor) bool { return i.id == id })
	if idx < 0 {
		return nil, core.ErrNotFound
	}
	i, err := BuildInstructor(ni)
	if err != nil {
		return nil, err
	}
	if i.id != id {
		if _, err := r.InstructorByID(i.id); err == nil {
			return nil, duplicateIDError("instructor_id")
		}
		for _, c := range r.courses {
			if c.instructorID == id {
				c.instructorID = i.id
			}
		}
	}
	i.courses = r.instructors[idx].courses
	r.instructors[idx] = i
	return i, nil
}

// UpdateCourse rebuilds the course identified by id from nc.
// The course keeps its position, its instructor and its students.
func (r *Registry) UpdateCourse(id string, nc NewCourse) (*Course, error) {
	id = core.CleanString(id)
	idx := indexOf(r.courses, func(c *Course) bool { return c.id == id })
	if idx < 0 {
		return nil, core.ErrNotFound
	}
	c, err := BuildCourse(nc)
	if err != nil {
		return nil, err
	}
	if c.id != id {
		if _, err := r.CourseByID(c.id); err == nil {
			return nil, duplicateIDError("course_id")
		}
		for _, s := range r.students {
			replaceID(s.courses, id, c.id)
		}
		for _, i := range r.instructors {
			replaceID(i.courses, id, c.id)
		}
	}
	orig := r.courses[idx]
	c.instructorID = orig.instructorID
	c.students = orig.students
	r.courses[idx] = c
	return c, nil
}

// StudentCourses resolves the student's registered courses, skipping unknown ids.
func (r *Registry) StudentCourses(s *Student) []*Course {
	return r.resolveCourses(s.courses)
}

// InstructorCourses resolves the instructor's assigned courses, skipping unknown ids.
func (r *Registry) InstructorCourses(i *Instructor) []*Course {
	return r.resolveCourses(i.courses)
}

func (r *Registry) resolveCourses(ids []string) []*Course {
	courses := make([]*Course, 0, len(ids))
	for _, id := range ids {
		if c, err := r.CourseByID(id); err == nil {
			courses = append(courses, c)
		}
	}
	return courses
}

// CourseStudents resolves the course's enrolled students, skipping unknown ids.
func (r *Registry) CourseStudents(c *Course) []*Student {
	students := make([]*Student, 0, len(c.students))
	for _, id := range c.students {
		if s, err := r.StudentByID(id); err == nil {
			students = append(students, s)
		}
	}
	return students
}

// CourseInstructor resolves the course's instructor, or core.ErrNotFound.
func (r *Registry) CourseInstructor(c *Course) (*Instructor, error) {
	id, ok := c.Instructor()
	if !ok {
		return nil, core.ErrNotFound
	}
	return r.InstructorByID(id)
}
