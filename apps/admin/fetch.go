package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	echoapi "github.com/trezcool/timetable/apps/api/echo"
	"github.com/trezcool/timetable/client"
	"github.com/trezcool/timetable/core/user"
)

// fetch GETs path with a token signed for the user and prints the indented JSON response.
func (cli *commandLine) fetch(baseURL, path, uname string) error {
	ctx := context.Background()
	usr, err := cli.usrSvc.GetByUsernameOrEmail(ctx, uname)
	if err != nil {
		return err
	}
	if !usr.IsActive {
		return user.ErrAccountDeactivated
	}
	token, err := echoapi.GenerateToken(cli.conf, usr)
	if err != nil {
		return err
	}

	var data json.RawMessage
	if err = client.New(baseURL, cli.logger, client.WithToken(token)).Fetch(ctx, path, &data); err != nil {
		return err
	}

	var out bytes.Buffer
	if err = json.Indent(&out, data, "", "  "); err != nil {
		return errors.Wrap(err, "indenting response")
	}
	_, err = fmt.Fprintln(cli.out, out.String())
	return err
}
