package school

import (
	"fmt"

	"github.com/trezcool/schoolms/core"
)

// Record kinds
const (
	KindStudent    = "Student"
	KindInstructor = "Instructor"
	KindCourse     = "Course"
)

// Person holds the fields shared by students and instructors.
// It is only built through BuildStudent or BuildInstructor.
type Person struct {
	name  string
	age   int
	email string
}

func (p Person) Name() string  { return p.name }
func (p Person) Age() int      { return p.age }
func (p Person) Email() string { return p.email }

func (p Person) Introduce() string {
	return fmt.Sprintf("Hi, my name is %s and I am %d years old.", p.name, p.age)
}

type Student struct {
	Person
	id      string
	courses []string // course ids, in registration order
}

func (s *Student) ID() string { return s.id }

// Courses returns the ids of the courses the student registered in.
func (s *Student) Courses() []string { return append([]string(nil), s.courses...) }

// RegisterCourse appends the course to the student's registered courses.
// Duplicates are kept.
func (s *Student) RegisterCourse(c *Course) []string {
	s.courses = append(s.courses, c.id)
	return s.Courses()
}

type Instructor struct {
	Person
	id      string
	courses []string // course ids, in assignment order
}

func (i *Instructor) ID() string { return i.id }

// Courses returns the ids of the courses assigned to the instructor.
func (i *Instructor) Courses() []string { return append([]string(nil), i.courses...) }

// AssignCourse appends the course to the instructor's assigned courses
// and makes the instructor the course's only instructor.
func (i *Instructor) AssignCourse(c *Course) []string {
	i.courses = append(i.courses, c.id)
	c.instructorID = i.id
	return i.Courses()
}

type Course struct {
	id           string
	name         string
	instructorID string
	students     []string // student ids, in enrollment order
}

func (c *Course) ID() string   { return c.id }
func (c *Course) Name() string { return c.name }

// Instructor returns the id of the instructor assigned last, if any.
func (c *Course) Instructor() (string, bool) {
	return c.instructorID, c.instructorID != ""
}

// Students returns the ids of the enrolled students.
func (c *Course) Students() []string { return append([]string(nil), c.students...) }

// AddStudent appends the student to the course's enrolled students.
// Duplicates are kept.
func (c *Course) AddStudent(s *Student) []string {
	c.students = append(c.students, s.id)
	return c.Students()
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	Name      string `json:"name" validate:"notblank"`
	Age       int    `json:"age" validate:"school_age"`
	Email     string `json:"email" validate:"school_email"`
	StudentID string `json:"student_id" validate:"school_id"`
}

func (ns *NewStudent) clean() {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email)
	ns.StudentID = core.CleanString(ns.StudentID)
}

// NewInstructor contains information needed to create a new Instructor.
type NewInstructor struct {
	Name         string `json:"name" validate:"notblank"`
	Age          int    `json:"age" validate:"school_age"`
	Email        string `json:"email" validate:"school_email"`
	InstructorID string `json:"instructor_id" validate:"school_id"`
}

func (ni *NewInstructor) clean() {
	ni.Name = core.CleanString(ni.Name)
	ni.Email = core.CleanString(ni.Email)
	ni.InstructorID = core.CleanString(ni.InstructorID)
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	CourseID   string `json:"course_id" validate:"notblank"`
	CourseName string `json:"course_name" validate:"notblank"`
}

func (nc *NewCourse) clean() {
	nc.CourseID = core.CleanString(nc.CourseID)
	nc.CourseName = core.CleanString(nc.CourseName)
}

// BuildStudent validates ns and returns the new Student.
// On failure the error is a *core.ValidationError and no Student is returned.
func BuildStudent(ns NewStudent) (*Student, error) {
	ns.clean()
	if err := core.ValidateStruct(ns); err != nil {
		return nil, err
	}
	return &Student{
		Person: Person{name: ns.Name, age: ns.Age, email: ns.Email},
		id:     ns.StudentID,
	}, nil
}

// BuildInstructor validates ni and returns the new Instructor.
// On failure the error is a *core.ValidationError and no Instructor is returned.
func BuildInstructor(ni NewInstructor) (*Instructor, error) {
	ni.clean()
	if err := core.ValidateStruct(ni); err != nil {
		return nil, err
	}
	return &Instructor{
		Person: Person{name: ni.Name, age: ni.Age, email: ni.Email},
		id:     ni.InstructorID,
	}, nil
}

// BuildCourse validates nc and returns the new Course.
func BuildCourse(nc NewCourse) (*Course, error) {
	nc.clean()
	if err := core.ValidateStruct(nc); err != nil {
		return nil, err
	}
	return &Course{id: nc.CourseID, name: nc.CourseName}, nil
}
