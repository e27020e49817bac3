package user

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/gradetracker/backend/core"
	"github.com/gradetracker/backend/core/grade"
)

type User struct {
	ID           int         `json:"id"`
	Username     string      `json:"username"`
	PasswordHash []byte      `json:"-"`
	Preferences  Preferences `json:"preferences"`
	CreatedAt    time.Time   `json:"createdAt"` // UTC
	UpdatedAt    time.Time   `json:"updatedAt"` // UTC
	LastLogin    time.Time   `json:"lastLogin"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

// Preferences are the user's subject list and semester date ranges.
type Preferences struct {
	Subjects  []string              `json:"subjects" validate:"max=50,dive,required,notblank,max=100"`
	Semesters []grade.SemesterRange `json:"semesters" validate:"max=20,dive"`
}

// WithDefaults returns the preferences to work with: defaultSubjects stand in for an empty subject list.
func (p Preferences) WithDefaults(defaultSubjects []string) Preferences {
	eff := Preferences{Subjects: p.Subjects, Semesters: p.Semesters}
	if len(eff.Subjects) == 0 {
		eff.Subjects = append([]string{}, defaultSubjects...)
	}
	if eff.Semesters == nil {
		eff.Semesters = []grade.SemesterRange{}
	}
	return eff
}

// Scan implements sql.Scanner for the JSONB preferences column.
func (p *Preferences) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*p = Preferences{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.Errorf("cannot scan %T into user.Preferences", src)
	}
	var prefs Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return errors.Wrap(err, "unmarshalling preferences")
	}
	*p = prefs
	return nil
}

// Value implements driver.Valuer.
func (p Preferences) Value() (driver.Value, error) {
	subjects := p.Subjects
	if subjects == nil {
		subjects = []string{}
	}
	semesters := p.Semesters
	if semesters == nil {
		semesters = []grade.SemesterRange{}
	}
	data, err := json.Marshal(Preferences{Subjects: subjects, Semesters: semesters})
	if err != nil {
		return nil, errors.Wrap(err, "marshalling preferences")
	}
	return string(data), nil
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Username string `json:"username" validate:"required,max=50,alphanum_"`
	Password string `json:"password" validate:"required"`
}

func (nu *NewUser) Validate(ctx context.Context, validate *validator.Validate, svc Service) error {
	nu.Username = core.CleanString(nu.Username, true /* lower */)

	if err := validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckUniqueness(ctx, nu.Username)
}

// UpdatePreferences replaces a user's preferences.
type UpdatePreferences struct {
	Preferences Preferences `json:"preferences"`
}

func (up *UpdatePreferences) Validate(validate *validator.Validate) error {
	subjects := make([]string, 0, len(up.Preferences.Subjects))
	for _, s := range up.Preferences.Subjects {
		subjects = append(subjects, core.CleanString(s))
	}
	up.Preferences.Subjects = subjects
	for i := range up.Preferences.Semesters {
		up.Preferences.Semesters[i].ID = grade.Semester(core.CleanString(string(up.Preferences.Semesters[i].ID)))
	}
	return validate.Struct(up)
}

type GetFilter struct {
	ID       int
	Username string
}
