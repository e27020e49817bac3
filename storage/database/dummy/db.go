package dummydb

import (
	"sync"

	"github.com/gradetracker/backend/core/grade"
	"github.com/gradetracker/backend/core/user"
)

type (
	// DB is an in-memory store; each table has its own lock and primary key counter.
	DB struct {
		user  *userTable
		grade *gradeTable
	}

	userTable struct {
		sync.RWMutex
		pkCount int
		table   map[int]*user.User
	}

	gradeTable struct {
		sync.RWMutex
		pkCount int
		table   map[int]*grade.Grade
	}
)

func Open() *DB {
	return &DB{
		user:  &userTable{table: make(map[int]*user.User)},
		grade: &gradeTable{table: make(map[int]*grade.Grade)},
	}
}

// Reset empties every table.
func (db *DB) Reset() {
	db.user.Lock()
	db.user.table = make(map[int]*user.User)
	db.user.Unlock()

	db.grade.Lock()
	db.grade.table = make(map[int]*grade.Grade)
	db.grade.Unlock()
}
