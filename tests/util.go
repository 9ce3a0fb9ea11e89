package testutil

import (
	"fmt"
	"sync"
	"testing"

	"github.com/trezcool/schoolms/core"
	"github.com/trezcool/schoolms/core/school"
)

func CreateStudent(t *testing.T, reg *school.Registry, name string, age int, email, id string) *school.Student {
	t.Helper()
	s, err := reg.AddStudent(school.NewStudent{Name: name, Age: age, Email: email, StudentID: id})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return s
}

func CreateInstructor(t *testing.T, reg *school.Registry, name string, age int, email, id string) *school.Instructor {
	t.Helper()
	i, err := reg.AddInstructor(school.NewInstructor{Name: name, Age: age, Email: email, InstructorID: id})
	if err != nil {
		t.Fatalf("CreateInstructor() failed: %v", err)
	}
	return i
}

func CreateCourse(t *testing.T, reg *school.Registry, id, name string) *school.Course {
	t.Helper()
	c, err := reg.AddCourse(school.NewCourse{CourseID: id, CourseName: name})
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return c
}

// SeedRegistry returns a registry with two students, one instructor and two courses:
// Ann (A1) and Bob (B2) in Intro (C1), Bob in Algebra (C2), Joseph (I1) teaching Intro.
func SeedRegistry(t *testing.T) *school.Registry {
	t.Helper()
	reg := school.NewRegistry()
	CreateStudent(t, reg, "Ann", 20, "ann@x.com", "A1")
	CreateStudent(t, reg, "Bob", 22, "bob@x.com", "B2")
	CreateInstructor(t, reg, "Joseph", 40, "joseph@x.com", "I1")
	CreateCourse(t, reg, "C1", "Intro")
	CreateCourse(t, reg, "C2", "Algebra")
	for _, pair := range [][2]string{{"A1", "C1"}, {"B2", "C1"}, {"B2", "C2"}} {
		if err := reg.Enroll(pair[0], pair[1]); err != nil {
			t.Fatalf("SeedRegistry() failed: %v", err)
		}
	}
	if err := reg.Assign("I1", "C1"); err != nil {
		t.Fatalf("SeedRegistry() failed: %v", err)
	}
	return reg
}

type Entry struct {
	Level string
	Msg   string
	Args  []interface{}
}

// Logger records every entry instead of printing it.
type Logger struct {
	mu      sync.Mutex
	Entries []Entry
}

var _ core.Logger = (*Logger)(nil)

func (l *Logger) add(level, msg string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, Entry{Level: level, Msg: msg, Args: args})
}

// Count returns the number of entries logged at level.
func (l *Logger) Count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	var n int
	for _, e := range l.Entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.add("DEBUG", msg, args) }
func (l *Logger) Info(msg string, args ...interface{})  { l.add("INFO", msg, args) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.add("WARN", msg, args) }
func (l *Logger) Error(msg string, args ...interface{}) { l.add("ERROR", msg, args) }

func (l *Logger) Fatal(msg string, args ...interface{}) {
	l.add("FATAL", msg, args)
	panic(fmt.Sprintf("fatal: %s", msg))
}
