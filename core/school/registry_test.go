package school_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/schoolms/core"
	"github.com/trezcool/schoolms/core/school"
	"github.com/trezcool/schoolms/tests"
)

func ids[T interface{ ID() string }](items []T) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID())
	}
	return out
}

func TestRegistry_Lookups(t *testing.T) {
	reg := testutil.SeedRegistry(t)

	tests := []struct {
		name    string
		find    func() (string, error)
		want    string
		wantErr error
	}{
		{name: "student by id", find: func() (string, error) { s, err := reg.StudentByID(" B2 "); return id(s, err) }, want: "B2"},
		{name: "student by name", find: func() (string, error) { s, err := reg.StudentByName("Ann"); return id(s, err) }, want: "A1"},
		{name: "unknown student", find: func() (string, error) { s, err := reg.StudentByID("Z9"); return id(s, err) }, wantErr: core.ErrNotFound},
		{name: "names are case sensitive", find: func() (string, error) { s, err := reg.StudentByName("ann"); return id(s, err) }, wantErr: core.ErrNotFound},
		{name: "instructor by id", find: func() (string, error) { i, err := reg.InstructorByID("I1"); return id(i, err) }, want: "I1"},
		{name: "instructor by name", find: func() (string, error) { i, err := reg.InstructorByName("Joseph"); return id(i, err) }, want: "I1"},
		{name: "unknown instructor", find: func() (string, error) { i, err := reg.InstructorByName("Mary"); return id(i, err) }, wantErr: core.ErrNotFound},
		{name: "course by id", find: func() (string, error) { c, err := reg.CourseByID("C2"); return id(c, err) }, want: "C2"},
		{name: "course by name", find: func() (string, error) { c, err := reg.CourseByName("Intro"); return id(c, err) }, want: "C1"},
		{name: "unknown course", find: func() (string, error) { c, err := reg.CourseByID("C3"); return id(c, err) }, wantErr: core.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.find()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func id[T interface{ ID() string }](item T, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return item.ID(), nil
}

func TestRegistry_FindStudent(t *testing.T) {
	reg := testutil.SeedRegistry(t)
	s, err := reg.FindStudent(func(s *school.Student) bool { return s.Age() > 21 })
	require.NoError(t, err)
	assert.Equal(t, "Bob", s.Name())
}

func TestRegistry_AddDuplicate(t *testing.T) {
	reg := testutil.SeedRegistry(t)

	tests := []struct {
		name  string
		add   func() error
		field string
	}{
		{name: "student", field: "student_id", add: func() error {
			_, err := reg.AddStudent(school.NewStudent{Name: "Other", Age: 30, Email: "o@x.com", StudentID: "A1"})
			return err
		}},
		{name: "instructor", field: "instructor_id", add: func() error {
			_, err := reg.AddInstructor(school.NewInstructor{Name: "Other", Age: 30, Email: "o@x.com", InstructorID: "I1"})
			return err
		}},
		{name: "course", field: "course_id", add: func() error {
			_, err := reg.AddCourse(school.NewCourse{CourseID: " C1", CourseName: "Other"})
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var vErr *core.ValidationError
			require.True(t, errors.As(tt.add(), &vErr))
			fe, ok := vErr.Field(tt.field)
			require.True(t, ok)
			assert.Equal(t, core.ErrDuplicateID.Error(), fe.Reason)
		})
	}
	assert.Len(t, reg.Students(), 2)
	assert.Len(t, reg.Instructors(), 1)
	assert.Len(t, reg.Courses(), 2)
}

func TestRegistry_AddInvalid(t *testing.T) {
	reg := school.NewRegistry()
	_, err := reg.AddStudent(school.NewStudent{Name: "Ann", Age: 300, Email: "ann@x.com", StudentID: "A1"})
	var fe *core.InvalidFieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "age", fe.Field)
	assert.Empty(t, reg.Students())
}

func TestRegistry_Enroll(t *testing.T) {
	reg := testutil.SeedRegistry(t)

	ann, _ := reg.StudentByID("A1")
	intro, _ := reg.CourseByID("C1")
	assert.Equal(t, []string{"C1"}, ann.Courses())
	assert.Equal(t, []string{"A1", "B2"}, intro.Students())
	assert.Equal(t, []string{"A1", "B2"}, ids(reg.CourseStudents(intro)))

	// enrolling twice is kept
	require.NoError(t, reg.Enroll("A1", "C1"))
	assert.Equal(t, []string{"C1", "C1"}, ann.Courses())
	assert.Equal(t, []string{"A1", "B2", "A1"}, intro.Students())

	err := reg.Enroll("Z9", "C1")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Contains(t, err.Error(), `student "Z9"`)

	err = reg.Enroll("A1", "C9")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Contains(t, err.Error(), `course "C9"`)
}

func TestRegistry_Assign(t *testing.T) {
	reg := testutil.SeedRegistry(t)
	mary := testutil.CreateInstructor(t, reg, "Mary", 35, "mary@x.com", "I2")
	joseph, _ := reg.InstructorByID("I1")
	intro, _ := reg.CourseByID("C1")

	got, err := reg.CourseInstructor(intro)
	require.NoError(t, err)
	assert.Equal(t, "I1", got.ID())

	// the last assignment wins on both sides
	require.NoError(t, reg.Assign("I2", "C1"))
	got, err = reg.CourseInstructor(intro)
	require.NoError(t, err)
	assert.Equal(t, "I2", got.ID())
	assert.Empty(t, joseph.Courses())
	assert.Equal(t, []string{"C1"}, mary.Courses())
	assert.Equal(t, []string{"C1"}, ids(reg.InstructorCourses(mary)))

	err = reg.Assign("I9", "C1")
	assert.ErrorIs(t, err, core.ErrNotFound)

	algebra, _ := reg.CourseByID("C2")
	_, err = reg.CourseInstructor(algebra)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRegistry_RemoveStudent(t *testing.T) {
	reg := testutil.SeedRegistry(t)

	require.NoError(t, reg.RemoveStudent("B2"))
	assert.Equal(t, []string{"A1"}, ids(reg.Students()))
	for _, c := range reg.Courses() {
		assert.NotContains(t, c.Students(), "B2", c.ID())
	}

	assert.ErrorIs(t, reg.RemoveStudent("B2"), core.ErrNotFound)
}

func TestRegistry_RemoveInstructor(t *testing.T) {
	reg := testutil.SeedRegistry(t)

	require.NoError(t, reg.RemoveInstructor("I1"))
	assert.Empty(t, reg.Instructors())
	intro, _ := reg.CourseByID("C1")
	_, ok := intro.Instructor()
	assert.False(t, ok)

	assert.ErrorIs(t, reg.RemoveInstructor("I1"), core.ErrNotFound)
}

func TestRegistry_RemoveCourse(t *testing.T) {
	reg := testutil.SeedRegistry(t)
	bob, _ := reg.StudentByID("B2")
	joseph, _ := reg.InstructorByID("I1")

	require.NoError(t, reg.RemoveCourse("C1"))
	assert.Equal(t, []string{"C2"}, ids(reg.Courses()))
	// removal cascades to students and instructors
	assert.Equal(t, []string{"C2"}, bob.Courses())
	assert.Empty(t, joseph.Courses())
	ann, _ := reg.StudentByID("A1")
	assert.Empty(t, ann.Courses())

	assert.ErrorIs(t, reg.RemoveCourse("C1"), core.ErrNotFound)
}

func TestRegistry_UpdateStudent(t *testing.T) {
	reg := testutil.SeedRegistry(t)

	s, err := reg.UpdateStudent("B2", school.NewStudent{Name: "Robert", Age: 23, Email: "rob@x.com", StudentID: "R2"})
	require.NoError(t, err)
	assert.Equal(t, "Robert", s.Name())
	assert.Equal(t, []string{"C1", "C2"}, s.Courses())
	assert.Equal(t, []string{"A1", "R2"}, ids(reg.Students())) // position kept

	intro, _ := reg.CourseByID("C1")
	assert.Equal(t, []string{"A1", "R2"}, intro.Students())

	_, err = reg.UpdateStudent("R2", school.NewStudent{Name: "Robert", Age: 23, Email: "rob@x.com", StudentID: "A1"})
	var vErr *core.ValidationError
	require.True(t, errors.As(err, &vErr))
	_, ok := vErr.Field("student_id")
	assert.True(t, ok)

	_, err = reg.UpdateStudent("R2", school.NewStudent{Name: "Robert", Age: 200, Email: "rob@x.com", StudentID: "R2"})
	require.True(t, errors.As(err, &vErr))
	s, _ = reg.StudentByID("R2")
	assert.Equal(t, 23, s.Age())

	_, err = reg.UpdateStudent("B2", school.NewStudent{Name: "Bob", Age: 22, Email: "bob@x.com", StudentID: "B2"})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRegistry_UpdateInstructor(t *testing.T) {
	reg := testutil.SeedRegistry(t)

	i, err := reg.UpdateInstructor("I1", school.NewInstructor{Name: "Joe", Age: 41, Email: "joe@x.com", InstructorID: "I7"})
	require.NoError(t, err)
	assert.Equal(t, []string{"C1"}, i.Courses())

	intro, _ := reg.CourseByID("C1")
	got, err := reg.CourseInstructor(intro)
	require.NoError(t, err)
	assert.Equal(t, "Joe", got.Name())
}

func TestRegistry_UpdateCourse(t *testing.T) {
	reg := testutil.SeedRegistry(t)

	c, err := reg.UpdateCourse("C1", school.NewCourse{CourseID: "C10", CourseName: "Intro to Go"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "B2"}, c.Students())
	instructorID, _ := c.Instructor()
	assert.Equal(t, "I1", instructorID)
	assert.Equal(t, []string{"C10", "C2"}, ids(reg.Courses()))

	bob, _ := reg.StudentByID("B2")
	assert.Equal(t, []string{"C10", "C2"}, bob.Courses())
	joseph, _ := reg.InstructorByID("I1")
	assert.Equal(t, []string{"C10"}, joseph.Courses())

	_, err = reg.UpdateCourse("C10", school.NewCourse{CourseID: "C2", CourseName: "Intro"})
	var vErr *core.ValidationError
	assert.True(t, errors.As(err, &vErr))
}

func TestRegistry_CollectionsAreCopies(t *testing.T) {
	reg := testutil.SeedRegistry(t)
	students := reg.Students()
	students[0] = nil
	assert.NotNil(t, reg.Students()[0])
}
