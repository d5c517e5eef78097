package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/timetable/core"
	"github.com/trezcool/timetable/core/school"
	"github.com/trezcool/timetable/core/user"
	emailsvc "github.com/trezcool/timetable/services/email"
	logsvc "github.com/trezcool/timetable/services/logger"
	"github.com/trezcool/timetable/storage/database"
	boiledrepos "github.com/trezcool/timetable/storage/database/sqlboiler"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)
	logger.Enable(!conf.Debug)

	// set up DB
	db, err := database.Pool(conf)
	if err != nil {
		logger.Fatal("setting up database", err)
	}

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	school.InitValidators(validate, translator)

	// start CLI
	usrRepo := boiledrepos.NewUserRepository(db)
	cli := commandLine{
		conf:     conf,
		db:       db.DB,
		usrRepo:  usrRepo,
		usrSvc:   user.NewService(usrRepo, emailsvc.NewConsoleService(conf, logger), conf),
		validate: validate,
		logger:   logger,
		out:      os.Stdout,
	}
	err = cli.run(os.Args)
	if err != nil && err != errHelp {
		logger.Error("admin command failed", err)
	}

	_ = database.Close()
	logger.Close()
	if err != nil {
		os.Exit(1)
	}
}
