package school_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/schoolms/core"
	"github.com/trezcool/schoolms/core/school"
	"github.com/trezcool/schoolms/tests"
)

func TestSerialize(t *testing.T) {
	reg := school.NewRegistry()
	testutil.CreateStudent(t, reg, "Ann", 20, "ann@x.com", "A1")
	testutil.CreateCourse(t, reg, "C1", "Intro")
	require.NoError(t, reg.Enroll("A1", "C1"))

	data, err := school.Serialize(reg)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n    \"students\": ["), "want 4-space indent, got:\n%s", data)
	assert.JSONEq(t, `{
		"students": [{
			"name": "Ann",
			"age": 20,
			"email": "ann@x.com",
			"student_id": "A1",
			"registered_courses": [{"course_id": "C1", "course_name": "Intro"}]
		}],
		"instructors": [],
		"courses": [{
			"course_id": "C1",
			"course_name": "Intro",
			"instructor": null,
			"enrolled_students": [{"student_id": "A1", "name": "Ann"}]
		}]
	}`, string(data))
}

func TestSerialize_Empty(t *testing.T) {
	data, err := school.Serialize(school.NewRegistry())
	require.NoError(t, err)
	assert.JSONEq(t, `{"students": [], "instructors": [], "courses": []}`, string(data))
}

func TestSerialize_EndToEnd(t *testing.T) {
	reg := school.NewRegistry()
	testutil.CreateStudent(t, reg, "Ann", 20, "ann@x.com", "A1")
	testutil.CreateCourse(t, reg, "C1", "Intro")
	require.NoError(t, reg.Enroll("A1", "C1"))

	data, err := school.Serialize(reg)
	require.NoError(t, err)
	got, err := school.Deserialize(data)
	require.NoError(t, err)

	require.Len(t, got.Students(), 1)
	require.Len(t, got.Courses(), 1)
	assert.Equal(t, "Ann", got.Students()[0].Name())
	assert.Equal(t, "C1", got.Courses()[0].ID())

	var doc struct {
		Students []struct {
			Name string `json:"name"`
		} `json:"students"`
		Courses []struct {
			CourseID string `json:"course_id"`
		} `json:"courses"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Ann", doc.Students[0].Name)
	assert.Equal(t, "C1", doc.Courses[0].CourseID)
}

func TestDeserialize_RoundTripKeepsRelations(t *testing.T) {
	reg := testutil.SeedRegistry(t)
	data, err := school.Serialize(reg)
	require.NoError(t, err)

	got, err := school.Deserialize(data)
	require.NoError(t, err)
	assert.Equal(t, reg.Records(), got.Records())

	ann, err := got.StudentByID("A1")
	require.NoError(t, err)
	assert.Equal(t, 20, ann.Age())
	assert.Equal(t, "ann@x.com", ann.Email())
	assert.Equal(t, []string{"C1"}, ann.Courses())

	bob, _ := got.StudentByID("B2")
	assert.Equal(t, []string{"C1", "C2"}, bob.Courses())

	intro, _ := got.CourseByID("C1")
	assert.Equal(t, []string{"A1", "B2"}, intro.Students())
	instructor, err := got.CourseInstructor(intro)
	require.NoError(t, err)
	assert.Equal(t, "Joseph", instructor.Name())
	assert.Equal(t, []string{"C1"}, instructor.Courses())

	again, err := school.Serialize(got)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
}

func TestDeserialize_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty", data: ""},
		{name: "truncated", data: `{"students": [`},
		{name: "not an object", data: `[]`},
		{name: "collection not an array", data: `{"students": {}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := school.Deserialize([]byte(tt.data))
			assert.Nil(t, reg)
			assert.ErrorIs(t, err, core.ErrMalformedData)
		})
	}
}

func TestDeserialize_MissingCollections(t *testing.T) {
	reg, err := school.Deserialize([]byte(`{"courses": [{"course_id": "C1", "course_name": "Intro"}]}`))
	require.NoError(t, err)
	assert.Empty(t, reg.Students())
	assert.Empty(t, reg.Instructors())
	assert.Len(t, reg.Courses(), 1)
}

func TestDeserialize_RejectsRecords(t *testing.T) {
	data := `{
		"students": [
			{"name": "Ann", "age": 20, "email": "ann@x.com", "student_id": "A1", "registered_courses": [{"course_id": "C1"}, {"course_id": "C9"}]},
			{"name": "Bob", "age": 500, "email": "bob@x.com", "student_id": "B2"},
			{"name": "Cid", "age": 30, "student_id": "C3"},
			{"name": "Ann", "age": 21, "email": "ann2@x.com", "student_id": "A1"},
			{"name": "Dee", "age": "30", "email": "dee@x.com", "student_id": "D4"},
			"lol"
		],
		"instructors": [
			{"name": "Joseph", "age": 40, "email": "joseph@x.com", "instructor_id": "I-1", "assigned_courses": [{"course_id": "C1"}]}
		],
		"courses": [
			{
				"course_id": "C1",
				"course_name": "Intro",
				"instructor": {"instructor_id": "I-1", "name": "Joseph"},
				"enrolled_students": [{"student_id": "A1"}, {"student_id": "B2"}]
			},
			{"course_name": "Nameless"}
		]
	}`

	reg, err := school.Deserialize([]byte(data))
	require.NotNil(t, reg)
	require.Error(t, err)

	merr, ok := err.(*multierror.Error)
	require.True(t, ok, "want *multierror.Error, got %T", err)

	type rejected struct {
		collection string
		index      int
	}
	var got []rejected
	for _, rerr := range merr.Errors {
		var mErr *core.MalformedRecordError
		require.True(t, errors.As(rerr, &mErr), "want *core.MalformedRecordError, got %T", rerr)
		got = append(got, rejected{collection: mErr.Collection, index: mErr.Index})
	}
	assert.Equal(t, []rejected{
		{collection: school.CollectionStudents, index: 1},
		{collection: school.CollectionStudents, index: 2},
		{collection: school.CollectionStudents, index: 3},
		{collection: school.CollectionStudents, index: 4},
		{collection: school.CollectionStudents, index: 5},
		{collection: school.CollectionInstructors, index: 0},
		{collection: school.CollectionCourses, index: 1},
	}, got)

	var vErr *core.ValidationError
	require.True(t, errors.As(merr.Errors[1], &vErr))
	fe, ok := vErr.Field("email")
	require.True(t, ok)
	assert.Equal(t, "missing required field", fe.Reason)

	require.True(t, errors.As(merr.Errors[2], &vErr))
	fe, ok = vErr.Field("student_id")
	require.True(t, ok)
	assert.Equal(t, core.ErrDuplicateID.Error(), fe.Reason)

	// references to rejected or unknown records are dropped
	assert.Equal(t, []string{"A1"}, ids(reg.Students()))
	assert.Empty(t, reg.Instructors())
	ann, _ := reg.StudentByID("A1")
	assert.Equal(t, []string{"C1"}, ann.Courses())
	intro, _ := reg.CourseByID("C1")
	assert.Equal(t, []string{"A1"}, intro.Students())
	_, ok = intro.Instructor()
	assert.False(t, ok)
}
