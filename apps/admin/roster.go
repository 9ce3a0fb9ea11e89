package main

import (
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/trezcool/schoolms/core/roster"
	"github.com/trezcool/schoolms/storage/csvfile"
)

func rosterRows(t *roster.Table, idxs []int) [][]string {
	rows := make([][]string, 0, len(idxs))
	for _, idx := range idxs {
		row, _ := t.Row(idx)
		rows = append(rows, append([]string{strconv.Itoa(idx)}, row.Fields()...))
	}
	return rows
}

var rosterHeader = append([]string{"ROW"}, roster.Header...)

func (cli *commandLine) exportCSV(args []string) error {
	fs := cli.newFlagSet("export-csv")
	path := fs.String("o", cli.conf.RosterFile, "CSV file to write.")
	if err := parse(fs, args); err != nil {
		return err
	}
	t := roster.FromRegistry(cli.reg)
	if err := csvfile.Save(*path, t); err != nil {
		return err
	}
	cli.log.Info("roster exported", *path, t.Len())
	cli.printf("%d rows written to %s\n", t.Len(), *path)
	return nil
}

func (cli *commandLine) showCSV(args []string) error {
	fs := cli.newFlagSet("show-csv")
	path := fs.String("f", cli.conf.RosterFile, "CSV file to read.")
	q := fs.String("q", "", "Only show rows whose student or course name contains TEXT.")
	if err := parse(fs, args); err != nil {
		return err
	}
	t, err := csvfile.Load(*path)
	if err != nil {
		return err
	}
	cli.table(rosterHeader, rosterRows(t, t.Filter(*q)))
	return nil
}

// editRoster loads the roster at path, applies fn and saves it back.
// A missing file is an empty roster.
func (cli *commandLine) editRoster(path string, fn func(t *roster.Table) error) error {
	t, err := csvfile.Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		t = roster.NewTable()
	}
	if err := fn(t); err != nil {
		return err
	}
	return csvfile.Save(path, t)
}

func (cli *commandLine) rosterAdd(args []string) error {
	fs := cli.newFlagSet("roster-add")
	path := fs.String("f", cli.conf.RosterFile, "CSV file to update.")
	student := fs.String("student", "", "Student name.")
	course := fs.String("course", "", "Course name.")
	if err := parse(fs, args); err != nil {
		return err
	}
	return cli.editRoster(*path, func(t *roster.Table) error {
		idx, err := t.Register(*student, *course)
		if err != nil {
			return err
		}
		cli.printf("row %d added\n", idx)
		return nil
	})
}

func (cli *commandLine) rosterEdit(args []string) error {
	fs := cli.newFlagSet("roster-edit")
	path := fs.String("f", cli.conf.RosterFile, "CSV file to update.")
	idx := fs.Int("row", -1, "Row number, as printed by show-csv.")
	student := fs.String("student", "", "New student name.")
	course := fs.String("course", "", "New course name.")
	if err := parse(fs, args); err != nil {
		return err
	}
	return cli.editRoster(*path, func(t *roster.Table) error {
		if err := t.Edit(*idx, *student, *course); err != nil {
			return err
		}
		cli.printf("row %d updated\n", *idx)
		return nil
	})
}

func (cli *commandLine) rosterDelete(args []string) error {
	fs := cli.newFlagSet("roster-delete")
	path := fs.String("f", cli.conf.RosterFile, "CSV file to update.")
	idx := fs.Int("row", -1, "Row number, as printed by show-csv.")
	if err := parse(fs, args); err != nil {
		return err
	}
	return cli.editRoster(*path, func(t *roster.Table) error {
		if err := t.Delete(*idx); err != nil {
			return err
		}
		cli.printf("row %d deleted\n", *idx)
		return nil
	})
}
