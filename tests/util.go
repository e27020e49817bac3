package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/gradetracker/backend/core"
	"github.com/gradetracker/backend/core/grade"
	"github.com/gradetracker/backend/core/user"
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	uname, pwd string,
	prefs user.Preferences,
	createdAt ...time.Time,
) user.User {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Username:    uname,
		Preferences: prefs,
		CreatedAt:   tstamp,
		UpdatedAt:   tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("createUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}

// CreateGrade stores a grade dated `date` (YYYY-MM-DD) for usr.
func CreateGrade(
	t *testing.T,
	repo grade.Repository,
	usr user.User,
	subject, name string,
	score int,
	sem grade.Semester,
	typ grade.Type,
	date string,
	att ...*grade.Attachment,
) grade.Grade {
	d, err := core.ParseDate(date)
	if err != nil {
		t.Fatalf("createGrade() failed: %v", err)
	}
	g := grade.Grade{
		UserID:   usr.ID,
		Subject:  subject,
		Name:     name,
		Score:    score,
		Semester: sem,
		Type:     typ,
		Date:     d,
	}
	if len(att) > 0 {
		g.Attachment = att[0]
	}
	g, err = repo.CreateGrade(context.Background(), g)
	if err != nil {
		t.Fatalf("createGrade() failed: %v", err)
	}
	return g
}
