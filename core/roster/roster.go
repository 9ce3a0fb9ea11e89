// Package roster holds the flat enrollment table persisted as CSV:
// one (student, instructor, course) row per enrollment or assignment.
package roster

import (
	"github.com/trezcool/schoolms/core"
	"github.com/trezcool/schoolms/core/school"
)

// Header is the first row of a persisted roster.
var Header = []string{"Student Name", "Instructor Name", "Course Name"}

// Row is one enrollment or assignment tuple. Any field may be empty.
type Row struct {
	StudentName    string
	InstructorName string
	CourseName     string
}

func (r Row) Fields() []string {
	return []string{r.StudentName, r.InstructorName, r.CourseName}
}

// RowFromFields maps CSV fields to a Row; missing trailing fields are empty
// and extra fields are ignored.
func RowFromFields(fields []string) Row {
	var padded [3]string
	copy(padded[:], fields)
	return Row{StudentName: padded[0], InstructorName: padded[1], CourseName: padded[2]}
}

type Table struct {
	rows []Row
}

func NewTable(rows ...Row) *Table {
	return &Table{rows: append([]Row(nil), rows...)}
}

func (t *Table) Len() int { return len(t.rows) }

func (t *Table) Rows() []Row { return append([]Row(nil), t.rows...) }

func (t *Table) Row(idx int) (Row, error) {
	if idx < 0 || idx >= len(t.rows) {
		return Row{}, core.ErrNotFound
	}
	return t.rows[idx], nil
}

// Append adds a row at the end and returns its index.
func (t *Table) Append(row Row) int {
	t.rows = append(t.rows, row)
	return len(t.rows) - 1
}

// Register appends a registration row: student and course, no instructor.
func (t *Table) Register(student, course string) (int, error) {
	student, course = core.CleanString(student), core.CleanString(course)
	if student == "" || course == "" {
		return -1, core.NewValidationError(&core.InvalidFieldError{
			Field:  "student_name,course_name",
			Reason: "select both student and course",
		})
	}
	return t.Append(Row{StudentName: student, CourseName: course}), nil
}

// Edit replaces the student and course names of the row at idx.
func (t *Table) Edit(idx int, student, course string) error {
	if idx < 0 || idx >= len(t.rows) {
		return core.ErrNotFound
	}
	t.rows[idx].StudentName = core.CleanString(student)
	t.rows[idx].CourseName = core.CleanString(course)
	return nil
}

func (t *Table) Delete(idx int) error {
	if idx < 0 || idx >= len(t.rows) {
		return core.ErrNotFound
	}
	t.rows = append(t.rows[:idx], t.rows[idx+1:]...)
	return nil
}

// Filter returns the indexes of rows whose student or course name contains
// text, ignoring case. An empty text matches every row.
func (t *Table) Filter(text string) []int {
	text = core.CleanString(text)
	idxs := make([]int, 0, len(t.rows))
	for i, r := range t.rows {
		if core.ContainsFold(r.StudentName, text) || core.ContainsFold(r.CourseName, text) {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// FromRegistry lists one row per enrolled student of every course, with the
// course's instructor. A course with an instructor but no students still
// gets a row.
func FromRegistry(reg *school.Registry) *Table {
	t := NewTable()
	for _, c := range reg.Courses() {
		var instructor string
		if i, err := reg.CourseInstructor(c); err == nil {
			instructor = i.Name()
		}
		students := reg.CourseStudents(c)
		for _, s := range students {
			t.Append(Row{StudentName: s.Name(), InstructorName: instructor, CourseName: c.Name()})
		}
		if len(students) == 0 && instructor != "" {
			t.Append(Row{InstructorName: instructor, CourseName: c.Name()})
		}
	}
	return t
}
