package main

import (
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/gradetracker/backend/core"
	"github.com/gradetracker/backend/core/grade"
	"github.com/gradetracker/backend/core/user"
	"github.com/gradetracker/backend/storage/database"
	sqlxrepos "github.com/gradetracker/backend/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	_en := en.New()
	translator, _ := ut.New(_en, _en).GetTranslator("en")
	validate := validator.New()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	grade.InitValidators(validate, translator)

	cli := commandLine{conf: conf, validate: validate}

	// set up DB
	if needsDB(os.Args) {
		db, err := database.Open(conf)
		errAndDie(err)
		defer db.Close()

		cli.db = db
		cli.usrSvc = user.NewService(sqlxrepos.NewUserRepository(db))
	}

	// start CLI
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		if cli.db != nil {
			_ = cli.db.Close()
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
