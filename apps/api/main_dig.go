package main

import (
	"log"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"go.uber.org/dig"

	dicontainer "github.com/trezcool/timetable/apps/api/di"
	echoapi "github.com/trezcool/timetable/apps/api/echo"
	"github.com/trezcool/timetable/core"
	"github.com/trezcool/timetable/storage/database"
)

type digDeps struct {
	dig.In

	Conf       *core.Config
	Logger     core.Logger
	DBLogger   core.Logger `name:"dbLogger"`
	Validate   *validator.Validate
	Translator ut.Translator
	Server     echoapi.Server
}

func startWithDig() {
	c := dicontainer.New()

	must(c.Invoke(func(deps digDeps) {
		defer func() {
			if err := database.Close(); err != nil {
				deps.DBLogger.Error("Failed to close", err)
			}
		}()

		run(deps.Conf, deps.Logger, deps.Validate, deps.Translator, deps.Server)
	}))
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
