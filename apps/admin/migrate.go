package main

import (
	"database/sql"

	"github.com/gradetracker/backend/storage/database"
)

var (
	gooseRunFunc = database.RunMigrations    // mockable
	createDBFunc = database.CreateIfNotExist // mockable
)

func (cli *commandLine) migrate(args []string) error {
	var db *sql.DB
	if cli.db != nil {
		db = cli.db.DB
	}
	return gooseRunFunc(args[0], db, args[1:]...)
}

func (cli *commandLine) createDB() error {
	return createDBFunc(cli.conf)
}
