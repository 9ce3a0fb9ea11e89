package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/schoolms/core"
	"github.com/trezcool/schoolms/core/school"
)

func recordRows(recs []school.Record) [][]string {
	rows := make([][]string, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, []string{rec.Kind, rec.Name, rec.ID})
	}
	return rows
}

var recordHeader = []string{"TYPE", "NAME", "ID"}

// notFound wraps core.ErrNotFound with a "did you mean" hint when names look alike.
func (cli *commandLine) notFound(kind, name string) error {
	msg := fmt.Sprintf("%s %q", strings.ToLower(kind), name)
	if hints := cli.reg.Suggest(kind, name); len(hints) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(hints, ", "))
	}
	return errors.Wrap(core.ErrNotFound, msg)
}

type personFlags struct {
	name, email, id *string
	age             *int
}

func (cli *commandLine) addPerson(cmd string, args []string) (personFlags, error) {
	fs := cli.newFlagSet(cmd)
	pf := personFlags{
		name:  fs.String("name", "", "Full name."),
		age:   fs.Int("age", -1, "Age, between 0 and 120."),
		email: fs.String("email", "", "Email address."),
		id:    fs.String("id", "", "Alphanumeric identifier."),
	}
	return pf, parse(fs, args)
}

func (cli *commandLine) addStudent(args []string) error {
	pf, err := cli.addPerson("add-student", args)
	if err != nil {
		return err
	}
	s, err := cli.reg.AddStudent(school.NewStudent{Name: *pf.name, Age: *pf.age, Email: *pf.email, StudentID: *pf.id})
	if err != nil {
		return err
	}
	cli.log.Info("student added", s.ID())
	cli.printf("Student %s added.\n", s.Name())
	return nil
}

func (cli *commandLine) addInstructor(args []string) error {
	pf, err := cli.addPerson("add-instructor", args)
	if err != nil {
		return err
	}
	i, err := cli.reg.AddInstructor(school.NewInstructor{Name: *pf.name, Age: *pf.age, Email: *pf.email, InstructorID: *pf.id})
	if err != nil {
		return err
	}
	cli.log.Info("instructor added", i.ID())
	cli.printf("Instructor %s added.\n", i.Name())
	return nil
}

func (cli *commandLine) addCourse(args []string) error {
	fs := cli.newFlagSet("add-course")
	id := fs.String("id", "", "Course identifier.")
	name := fs.String("name", "", "Course name.")
	if err := parse(fs, args); err != nil {
		return err
	}
	c, err := cli.reg.AddCourse(school.NewCourse{CourseID: *id, CourseName: *name})
	if err != nil {
		return err
	}
	cli.log.Info("course added", c.ID())
	cli.printf("Course %s added.\n", c.Name())
	return nil
}

// resolveStudent finds a student by id, or by name when byName is set.
func (cli *commandLine) resolveStudent(key string, byName bool) (*school.Student, error) {
	find := cli.reg.StudentByID
	if byName {
		find = cli.reg.StudentByName
	}
	s, err := find(key)
	if err != nil {
		return nil, cli.notFound(school.KindStudent, key)
	}
	return s, nil
}

func (cli *commandLine) resolveInstructor(key string, byName bool) (*school.Instructor, error) {
	find := cli.reg.InstructorByID
	if byName {
		find = cli.reg.InstructorByName
	}
	i, err := find(key)
	if err != nil {
		return nil, cli.notFound(school.KindInstructor, key)
	}
	return i, nil
}

func (cli *commandLine) resolveCourse(key string, byName bool) (*school.Course, error) {
	find := cli.reg.CourseByID
	if byName {
		find = cli.reg.CourseByName
	}
	c, err := find(key)
	if err != nil {
		return nil, cli.notFound(school.KindCourse, key)
	}
	return c, nil
}

func (cli *commandLine) enroll(args []string) error {
	fs := cli.newFlagSet("enroll")
	student := fs.String("student", "", "Student identifier (or name with -by-name).")
	course := fs.String("course", "", "Course identifier (or name with -by-name).")
	byName := fs.Bool("by-name", false, "Look up the student and the course by name.")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *student == "" || *course == "" {
		fs.Usage()
		return errHelp
	}

	s, err := cli.resolveStudent(*student, *byName)
	if err != nil {
		return err
	}
	c, err := cli.resolveCourse(*course, *byName)
	if err != nil {
		return err
	}
	if err := cli.reg.Enroll(s.ID(), c.ID()); err != nil {
		return err
	}
	cli.printf("Student %s registered to %s\n", s.Name(), c.Name())
	return nil
}

func (cli *commandLine) assign(args []string) error {
	fs := cli.newFlagSet("assign")
	instructor := fs.String("instructor", "", "Instructor identifier (or name with -by-name).")
	course := fs.String("course", "", "Course identifier (or name with -by-name).")
	byName := fs.Bool("by-name", false, "Look up the instructor and the course by name.")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *instructor == "" || *course == "" {
		fs.Usage()
		return errHelp
	}

	i, err := cli.resolveInstructor(*instructor, *byName)
	if err != nil {
		return err
	}
	c, err := cli.resolveCourse(*course, *byName)
	if err != nil {
		return err
	}
	if err := cli.reg.Assign(i.ID(), c.ID()); err != nil {
		return err
	}
	cli.printf("Instructor %s assigned to %s\n", i.Name(), c.Name())
	return nil
}

func (cli *commandLine) list(args []string) error {
	fs := cli.newFlagSet("list")
	format := fs.String("format", formatTable, "Output format: table, json or yaml.")
	if err := parse(fs, args); err != nil {
		return err
	}
	return cli.printRecords(*format, cli.reg.Records())
}

func (cli *commandLine) search(args []string) error {
	fs := cli.newFlagSet("search")
	by := fs.String("by", "name", "Search by name, id or course.")
	q := fs.String("q", "", "Text to look for (case-insensitive).")
	format := fs.String("format", formatTable, "Output format: table, json or yaml.")
	if err := parse(fs, args); err != nil {
		return err
	}
	field, ok := school.ParseSearchField(*by)
	if !ok {
		return core.NewValidationError(&core.InvalidFieldError{Field: "by", Reason: "must be one of name, id or course"})
	}
	return cli.printRecords(*format, cli.reg.Search(field, *q))
}

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func (cli *commandLine) printRecords(format string, recs []school.Record) error {
	if recs == nil {
		recs = []school.Record{}
	}
	switch core.CleanString(format, true /* lower */) {
	case formatTable:
		cli.table(recordHeader, recordRows(recs))
	case formatJSON:
		data, err := json.MarshalIndent(recs, "", "  ")
		if err != nil {
			return errors.Wrap(err, "encoding records")
		}
		cli.printf("%s\n", data)
	case formatYAML:
		enc := yaml.NewEncoder(cli.out)
		enc.SetIndent(2)
		if err := enc.Encode(recs); err != nil {
			return errors.Wrap(err, "encoding records")
		}
		return errors.Wrap(enc.Close(), "encoding records")
	default:
		return core.NewValidationError(&core.InvalidFieldError{Field: "format", Reason: "must be one of table, json or yaml"})
	}
	return nil
}

func (cli *commandLine) introduce(args []string) error {
	fs := cli.newFlagSet("introduce")
	kind := fs.String("type", "student", "student or instructor.")
	id := fs.String("id", "", "Identifier.")
	if err := parse(fs, args); err != nil {
		return err
	}
	switch core.CleanString(*kind, true /* lower */) {
	case "student":
		s, err := cli.resolveStudent(*id, false)
		if err != nil {
			return err
		}
		cli.printf("%s\n", s.Introduce())
	case "instructor":
		i, err := cli.resolveInstructor(*id, false)
		if err != nil {
			return err
		}
		cli.printf("%s\n", i.Introduce())
	default:
		return errUnknownType(*kind)
	}
	return nil
}

func errUnknownType(kind string) error {
	return core.NewValidationError(&core.InvalidFieldError{
		Field:  "type",
		Reason: fmt.Sprintf("unknown record type %q", kind),
	})
}

func (cli *commandLine) edit(args []string) error {
	fs := cli.newFlagSet("edit")
	kind := fs.String("type", "", "student, instructor or course.")
	id := fs.String("id", "", "Identifier of the record to edit.")
	name := fs.String("name", "", "New name (unchanged if empty).")
	age := fs.String("age", "", "New age (unchanged if empty).")
	email := fs.String("email", "", "New email (unchanged if empty).")
	newID := fs.String("new-id", "", "New identifier (unchanged if empty).")
	if err := parse(fs, args); err != nil {
		return err
	}

	orDefault := func(v, def string) string {
		if v = core.CleanString(v); v != "" {
			return v
		}
		return def
	}
	ageOr := func(def int) (int, error) {
		if core.CleanString(*age) == "" {
			return def, nil
		}
		n, err := strconv.Atoi(core.CleanString(*age))
		if err != nil {
			return 0, core.NewValidationError(&core.InvalidFieldError{Field: "age", Reason: "please enter a valid age"})
		}
		return n, nil
	}

	var label string
	switch core.CleanString(*kind, true /* lower */) {
	case "student":
		label = school.KindStudent
		s, err := cli.resolveStudent(*id, false)
		if err != nil {
			return err
		}
		n, err := ageOr(s.Age())
		if err != nil {
			return err
		}
		if _, err = cli.reg.UpdateStudent(s.ID(), school.NewStudent{
			Name:      orDefault(*name, s.Name()),
			Age:       n,
			Email:     orDefault(*email, s.Email()),
			StudentID: orDefault(*newID, s.ID()),
		}); err != nil {
			return err
		}
	case "instructor":
		label = school.KindInstructor
		i, err := cli.resolveInstructor(*id, false)
		if err != nil {
			return err
		}
		n, err := ageOr(i.Age())
		if err != nil {
			return err
		}
		if _, err = cli.reg.UpdateInstructor(i.ID(), school.NewInstructor{
			Name:         orDefault(*name, i.Name()),
			Age:          n,
			Email:        orDefault(*email, i.Email()),
			InstructorID: orDefault(*newID, i.ID()),
		}); err != nil {
			return err
		}
	case "course":
		label = school.KindCourse
		c, err := cli.resolveCourse(*id, false)
		if err != nil {
			return err
		}
		if _, err = cli.reg.UpdateCourse(c.ID(), school.NewCourse{
			CourseID:   orDefault(*newID, c.ID()),
			CourseName: orDefault(*name, c.Name()),
		}); err != nil {
			return err
		}
	default:
		return errUnknownType(*kind)
	}
	cli.log.Info("record updated", label, *id)
	cli.printf("%s record updated.\n", label)
	return nil
}

func (cli *commandLine) remove(args []string) error {
	fs := cli.newFlagSet("delete")
	kind := fs.String("type", "", "student, instructor or course.")
	id := fs.String("id", "", "Identifier of the record to delete.")
	if err := parse(fs, args); err != nil {
		return err
	}

	var (
		err   error
		label string
	)
	switch core.CleanString(*kind, true /* lower */) {
	case "student":
		label, err = school.KindStudent, cli.reg.RemoveStudent(*id)
	case "instructor":
		label, err = school.KindInstructor, cli.reg.RemoveInstructor(*id)
	case "course":
		label, err = school.KindCourse, cli.reg.RemoveCourse(*id)
	default:
		return errUnknownType(*kind)
	}
	if err != nil {
		return errors.Wrapf(err, "%s %q", strings.ToLower(label), *id)
	}
	cli.log.Info("record deleted", label, *id)
	cli.printf("%s record deleted.\n", label)
	return nil
}
