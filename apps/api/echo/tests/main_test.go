package tests

import (
	"io"
	"log"
	"os"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	. "github.com/gradetracker/backend/apps/api/echo"
	"github.com/gradetracker/backend/core"
	"github.com/gradetracker/backend/core/grade"
	"github.com/gradetracker/backend/core/user"
	logsvc "github.com/gradetracker/backend/services/logger"
	"github.com/gradetracker/backend/storage/database/dummy"
)

var (
	db        *dummydb.DB
	conf      *core.Config
	app       Server
	usrRepo   user.Repository
	gradeRepo grade.Repository
)

func TestMain(m *testing.M) {
	conf = core.NewConfig()
	conf.TestMode = true
	conf.Debug = false
	conf.Semesters = []string{"12/1", "12/2"}
	conf.DefaultSubjects = []string{"Mathematik", "Deutsch"}

	// set up DB & repos
	db = dummydb.Open()
	usrRepo = dummydb.NewUserRepository(db)
	gradeRepo = dummydb.NewGradeRepository(db)

	// set up services
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
	logger.Enable(false)

	_en := en.New()
	translator, _ := ut.New(_en, _en).GetTranslator("en")
	validate := validator.New()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	grade.InitValidators(validate, translator)

	// set up server
	app = NewServer(ServerDeps{
		Conf:           conf,
		Logger:         logger,
		UserSvc:        user.NewService(usrRepo),
		GradeSvc:       grade.NewService(gradeRepo, conf),
		Validate:       validate,
		Translator:     translator,
		DisableReqLogs: true,
	})

	os.Exit(m.Run())
}
