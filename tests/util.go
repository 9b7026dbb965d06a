package testutil

import (
	"context"
	"net/mail"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/attendance"
	"github.com/darasahq/darasa/core/marks"
	"github.com/darasahq/darasa/core/student"
	"github.com/darasahq/darasa/core/user"
	inmemdb "github.com/darasahq/darasa/storage/database/inmem"
)

var validatorsOnce sync.Once

// InitValidators wires the shared validator and translator once for the
// whole test binary.
func InitValidators() {
	validatorsOnce.Do(func() {
		_en := en.New()
		uni := ut.New(_en, _en)
		translator, _ := uni.GetTranslator("en")

		validate := validator.New()
		core.InitValidators(validate, translator)
		user.InitValidators(validate, translator)
	})
}

func NewConfig() *core.Config {
	conf := &core.Config{
		Debug:            true,
		TestMode:         true,
		Env:              "TEST",
		AppName:          "Darasa",
		SecretKey:        "secret",
		FrontendBaseURL:  "http://localhost:3000",
		DefaultFromEmail: mail.Address{Name: "Darasa", Address: "noreply@test.cd"},
	}
	conf.Server.JWTExpirationDelta = 10 * time.Minute
	conf.Server.JWTRefreshExpirationDelta = 4 * time.Hour
	conf.Dashboard.RecentLimit = 10
	conf.Dashboard.GradeWindow = 10
	conf.Dashboard.MarksGroupWindow = 20
	conf.Dashboard.MarksGroupLimit = 5
	return conf
}

func OpenDB(t *testing.T) *inmemdb.DB {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("OpenDB() failed: %v", err)
	}
	return db
}

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, uname, email, pwd string,
	roles []string,
	isActive bool,
	createdAt ...time.Time,
) user.User {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		ID:        uuid.New().String(),
		Name:      name,
		Username:  uname,
		Email:     email,
		Roles:     roles,
		IsActive:  isActive,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateStudent(
	t *testing.T,
	repo student.Repository,
	name, batch, classID, board string,
) student.Student {
	now := time.Now().UTC()
	st, err := repo.CreateStudent(context.Background(), student.Student{
		ID:        uuid.New().String(),
		Name:      name,
		Batch:     batch,
		ClassID:   classID,
		Board:     board,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return st
}

func CreateAttendance(
	t *testing.T,
	repo attendance.Repository,
	studentID, date string,
	morning, afternoon, evening bool,
) attendance.Record {
	day, err := core.ParseDay(date)
	if err != nil {
		t.Fatalf("CreateAttendance() failed: %v", err)
	}
	rec := attendance.Record{
		ID:        uuid.New().String(),
		StudentID: studentID,
		Date:      day,
		Morning:   morning,
		Afternoon: afternoon,
		Evening:   evening,
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.UpsertRecords(context.Background(), []attendance.Record{rec}); err != nil {
		t.Fatalf("CreateAttendance() failed: %v", err)
	}
	return rec
}

func CreateMark(
	t *testing.T,
	repo marks.Repository,
	studentID, classID, board, examType, subjectID string,
	score int,
	createdAt ...time.Time,
) marks.Mark {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	m, err := repo.CreateMark(context.Background(), marks.Mark{
		ID:        uuid.New().String(),
		StudentID: studentID,
		ClassID:   classID,
		Board:     board,
		ExamType:  examType,
		SubjectID: subjectID,
		Score:     score,
		CreatedAt: tstamp,
	})
	if err != nil {
		t.Fatalf("CreateMark() failed: %v", err)
	}
	return m
}
