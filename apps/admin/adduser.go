package main

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/timetable/core"
	"github.com/trezcool/timetable/core/user"
)

// addUser creates the user, or updates the role, password and teacher link of the one holding the username.
// Existing users are re-activated.
func (cli *commandLine) addUser(nu user.NewUser) error {
	ctx := context.Background()
	uname := core.CleanString(nu.Username, true /* lower */)

	usr, err := cli.usrRepo.GetUser(ctx, user.GetFilter{Username: uname})
	if err != nil {
		if !core.IsNotFound(err) {
			return errors.Wrap(err, "finding user")
		}
		if err = nu.Validate(cli.validate, cli.usrSvc); err != nil {
			return err
		}
		usr, err = cli.usrSvc.Create(ctx, nu)
		if err != nil {
			return errors.Wrap(err, "creating user")
		}
		cli.logger.Info("user created", usr)
		return nil
	}

	// only the password and role are checked: the user already exists
	nu.Username, nu.Name, nu.Email = usr.Username, usr.Name, usr.Email
	if err = cli.validate.StructPartial(&nu, "Role", "Password", "PasswordConfirm"); err != nil {
		return err
	}
	usr.Role = user.NormalizeRole(nu.Role)
	usr.IsActive = true
	if nu.TeacherID != nil {
		usr.TeacherID = nu.TeacherID
	}
	if err = usr.SetPassword(nu.Password); err != nil {
		return errors.Wrap(err, "setting password")
	}
	usr.UpdatedAt = time.Now().UTC()
	if usr, err = cli.usrRepo.UpdateUser(ctx, usr); err != nil {
		return errors.Wrap(err, "updating user")
	}
	cli.logger.Info("user updated", usr)
	return nil
}
