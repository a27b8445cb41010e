package testutil

import (
	"context"
	"net/mail"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/catalog"
)

// InitConfig installs a test-mode configuration. Call it at the top of every
// test that touches core.Conf.
func InitConfig() {
	if core.Conf != nil && core.Conf.TestMode {
		return
	}
	core.Conf = &core.Config{
		AppName:          "Darasa",
		Env:              "test",
		TestMode:         true,
		WorkDir:          core.Getwd(),
		FrontendBaseURL:  "http://localhost:3000",
		DefaultFromEmail: mail.Address{Name: "Darasa", Address: "noreply@test.cd"},
		StaffEmail:       mail.Address{Name: "Darasa Staff", Address: "staff@test.cd"},
	}
}

// NewValidator returns a translator-backed validator like the one the apps
// wire at startup.
func NewValidator() (*validator.Validate, ut.Translator) {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()
	core.InitValidators(validate, translator)
	return validate, translator
}

// NopLogger discards everything; it keeps test output quiet.
type NopLogger struct{}

var _ core.Logger = (*NopLogger)(nil)

func (NopLogger) Enable(bool)                  {}
func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
func (NopLogger) Fatal(string, ...interface{}) {}

func CreateSubject(t *testing.T, repo catalog.Repository, ref catalog.Ref, name string) catalog.Subject {
	t.Helper()
	now := time.Now().UTC()
	sub, err := repo.CreateSubject(context.Background(), ref, catalog.Subject{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateSubject() failed: %v", err)
	}
	return sub
}

func CreateTopic(t *testing.T, repo catalog.Repository, ref catalog.Ref, title string) catalog.Topic {
	t.Helper()
	now := time.Now().UTC()
	topic, err := repo.CreateTopic(context.Background(), ref, catalog.Topic{
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateTopic() failed: %v", err)
	}
	return topic
}

func CreateExam(t *testing.T, repo catalog.Repository, ref catalog.Ref, title string, questions ...catalog.Question) catalog.Exam {
	t.Helper()
	now := time.Now().UTC()
	ref.Exam = core.Slugify(title)
	exam, err := repo.CreateExam(context.Background(), ref, catalog.Exam{
		ID:        ref.Exam,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateExam() failed: %v", err)
	}
	if len(questions) > 0 {
		if err := repo.ReplaceQuestions(context.Background(), ref, questions); err != nil {
			t.Fatalf("CreateExam() writing questions failed: %v", err)
		}
	}
	return exam
}
