package main

import (
	"flag"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	echoapi "github.com/trezcool/timetable/apps/api/echo"
	"github.com/trezcool/timetable/core"
	"github.com/trezcool/timetable/core/school"
	"github.com/trezcool/timetable/core/user"
	emailsvc "github.com/trezcool/timetable/services/email"
	logsvc "github.com/trezcool/timetable/services/logger"
	"github.com/trezcool/timetable/storage/database"
	boiledrepos "github.com/trezcool/timetable/storage/database/sqlboiler"
)

func main() {
	useDig := flag.Bool("dig", false, "build the dependencies with the dig container")
	flag.Parse()

	if *useDig {
		startWithDig()
		return
	}
	startManual()
}

func startManual() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)
	defer logger.Close()

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger.Enable(!conf.Debug)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal("setting up database", err)
	}
	defer func() {
		if err = database.Close(); err != nil {
			dbLogger.Error("Failed to close", err)
		}
	}()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	usrSvc := user.NewService(boiledrepos.NewUserRepository(db), mailSvc, conf)
	schoolSvc := school.NewService(boiledrepos.NewSchoolRepository(db))

	validate := validator.New()
	translator := core.NewTranslator()

	server := echoapi.NewServer(echoapi.ServerDeps{
		Conf:       conf,
		Logger:     logger,
		UserSvc:    usrSvc,
		SchoolSvc:  schoolSvc,
		Validate:   validate,
		Translator: translator,
	})

	run(conf, logger, validate, translator, server)
}

// setUpDB prepares the database then returns the shared pool, migrated.
func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Pool(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db.DB); err != nil {
		return nil, err
	}
	return db, nil
}
