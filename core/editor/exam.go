package editor

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/catalog"
)

var (
	ErrNoQuestions  = errors.New("an exam needs at least one question")
	ErrUntitledExam = errors.New("the exam title must contain at least one letter or digit")
)

// QuestionDraft is one unsaved question row; rows whose question body is
// blank are dropped at save time.
type QuestionDraft struct {
	QuestionHTML string `json:"question_html"`
	AnswerHTML   string `json:"answer_html"`
}

func (qd QuestionDraft) blank() bool {
	return core.CleanString(qd.QuestionHTML) == ""
}

type ExamForm struct {
	Title     string          `json:"title" validate:"required"`
	Questions []QuestionDraft `json:"questions"`
	// AllowEmpty confirms saving a new exam with no questions. It has no
	// effect on edits.
	AllowEmpty bool `json:"allow_empty"`
}

func (f *ExamForm) Validate(validate *validator.Validate) error {
	f.Title = core.CleanString(f.Title)
	return validate.Struct(f)
}

// ExamEditor creates and updates exams together with their question list.
// Saving always rewrites the full question set: ids are not preserved across
// saves, and question order follows the draft order.
type ExamEditor struct {
	guard

	ref      catalog.Ref
	existing *catalog.Exam
	repo     catalog.Repository
	mail     core.EmailService
	validate *validator.Validate
	log      core.Logger
}

func NewExamEditor(
	repo catalog.Repository,
	mail core.EmailService,
	validate *validator.Validate,
	log core.Logger,
) *ExamEditor {
	return &ExamEditor{repo: repo, mail: mail, validate: validate, log: log}
}

// Open prepares the editor for a new exam under ref when existing is nil, or
// for editing existing otherwise. For a topic-scoped curriculum, ref.Topic
// must be set; for a subject-scoped one it must be empty.
func (ed *ExamEditor) Open(ref catalog.Ref, existing *catalog.Exam) {
	ed.ref = ref
	ed.existing = existing
	ed.guard.open(existing != nil)
}

// Form returns the values the edit form should be prefilled with. Loading the
// existing question list is the caller's job (it may already have them from
// the tree view).
func (ed *ExamEditor) Form(questions []catalog.Question) ExamForm {
	form := ExamForm{}
	if ed.existing != nil {
		form.Title = ed.existing.Title
	}
	for _, q := range questions {
		form.Questions = append(form.Questions, QuestionDraft{
			QuestionHTML: q.QuestionHTML,
			AnswerHTML:   q.AnswerHTML,
		})
	}
	return form
}

func (ed *ExamEditor) Cancel() { ed.guard.cancel() }

func (ed *ExamEditor) State() State { return ed.guard.current() }

func (ed *ExamEditor) Save(ctx context.Context, form ExamForm) (catalog.Exam, error) {
	gen, err := ed.beginSave()
	if err != nil {
		return catalog.Exam{}, err
	}
	exam, err := ed.save(ctx, form)
	ed.endSave(gen, err == nil)
	return exam, err
}

func (ed *ExamEditor) save(ctx context.Context, form ExamForm) (catalog.Exam, error) {
	if err := form.Validate(ed.validate); err != nil {
		return catalog.Exam{}, err
	}
	questions := buildQuestions(form.Questions, time.Now().UTC())

	if ed.existing == nil {
		return ed.create(ctx, form, questions)
	}
	return ed.update(ctx, form, questions)
}

func (ed *ExamEditor) create(ctx context.Context, form ExamForm, questions []catalog.Question) (catalog.Exam, error) {
	if len(questions) == 0 && !form.AllowEmpty {
		return catalog.Exam{}, core.NewValidationError(ErrNoQuestions,
			core.FieldError{Field: "questions", Error: ErrNoQuestions.Error()})
	}
	id := core.Slugify(form.Title)
	if id == "" {
		return catalog.Exam{}, core.NewValidationError(ErrUntitledExam,
			core.FieldError{Field: "title", Error: ErrUntitledExam.Error()})
	}

	now := time.Now().UTC()
	ref := ed.ref
	ref.Exam = id
	exam, err := ed.repo.CreateExam(ctx, ref, catalog.Exam{
		ID:        id,
		Title:     form.Title,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return catalog.Exam{}, errors.Wrap(err, "creating exam")
	}
	if len(questions) > 0 {
		if err := ed.repo.ReplaceQuestions(ctx, ref, questions); err != nil {
			return catalog.Exam{}, errors.Wrap(err, "writing questions")
		}
	}
	notifyPublished(ed.mail, ed.log, "Exam", exam.Title, ed.ref)
	return exam, nil
}

func (ed *ExamEditor) update(ctx context.Context, form ExamForm, questions []catalog.Question) (catalog.Exam, error) {
	now := time.Now().UTC()
	ref := ed.ref
	ref.Exam = ed.existing.ID
	patch := catalog.ExamPatch{Title: form.Title, UpdatedAt: now}
	if err := ed.repo.UpdateExam(ctx, ref, patch); err != nil {
		return catalog.Exam{}, errors.Wrap(err, "updating exam")
	}
	if err := ed.repo.ReplaceQuestions(ctx, ref, questions); err != nil {
		return catalog.Exam{}, errors.Wrap(err, "replacing questions")
	}
	updated := *ed.existing
	updated.Title = form.Title
	updated.UpdatedAt = now
	return updated, nil
}

// buildQuestions drops blank drafts and assigns contiguous zero-based order
// following the draft order.
func buildQuestions(drafts []QuestionDraft, now time.Time) []catalog.Question {
	questions := make([]catalog.Question, 0, len(drafts))
	for _, qd := range drafts {
		if qd.blank() {
			continue
		}
		questions = append(questions, catalog.Question{
			QuestionHTML: core.CleanString(qd.QuestionHTML),
			AnswerHTML:   core.CleanString(qd.AnswerHTML),
			Order:        len(questions),
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	return questions
}
