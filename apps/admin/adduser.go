package main

import (
	"context"
	"fmt"

	"github.com/gradetracker/backend/core/user"
)

// addUser creates a user, applying the same rules as sign up.
func (cli *commandLine) addUser(uname, pwd string) error {
	ctx := context.Background()
	nu := user.NewUser{Username: uname, Password: pwd}
	if err := nu.Validate(ctx, cli.validate, cli.usrSvc); err != nil {
		return err
	}
	usr, err := cli.usrSvc.Create(ctx, nu)
	if err != nil {
		return err
	}
	fmt.Printf("user %q created (id %d)\n", usr.Username, usr.ID)
	return nil
}
