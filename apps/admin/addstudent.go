package main

import (
	"fmt"

	"github.com/najahtutors/backend/core/student"
)

// addStudent registers a new student account.
func (cli *commandLine) addStudent(name, email, phone, board, class string) error {
	data := student.NewStudent{
		Name:      name,
		Email:     email,
		Phone:     phone,
		Board:     board,
		ClassName: class,
	}
	if err := data.Validate(); err != nil {
		return err
	}

	std, err := cli.stdSvc.Create(data)
	if err != nil {
		return err
	}
	fmt.Printf("student %q created: %s\n", std.Name, std.ID)
	return nil
}
