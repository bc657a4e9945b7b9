package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/najahtutors/backend/core/student"
	"github.com/najahtutors/backend/storage/database"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db     *sqlx.DB
	stdSvc *student.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate - apply the database schema")
	fmt.Println("  addstudent -name NAME -email EMAIL [-phone PHONE] [-board BOARD] [-class CLASS] - register a student")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addStudentCmd := flag.NewFlagSet("addstudent", flag.ExitOnError)
	addStudentName := addStudentCmd.String("name", "", "The student's full name.")
	addStudentEmail := addStudentCmd.String("email", "", "The student's email address.")
	addStudentPhone := addStudentCmd.String("phone", "", "The student's phone number.")
	addStudentBoard := addStudentCmd.String("board", "", "The student's education board.")
	addStudentClass := addStudentCmd.String("class", "", "The student's class or grade.")

	switch args[1] {
	case "migrate":
		return database.Migrate(cli.db)
	case "addstudent":
		if err := addStudentCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addStudentName == "" || *addStudentEmail == "" {
			addStudentCmd.Usage()
			return errHelp
		}
		return cli.addStudent(*addStudentName, *addStudentEmail, *addStudentPhone, *addStudentBoard, *addStudentClass)
	default:
		cli.printUsage()
		return errHelp
	}
}
