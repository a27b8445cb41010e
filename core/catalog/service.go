package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

var (
	// errors
	ErrNotFound          = errors.New("not found")
	ErrCurriculumUnknown = errors.New("unknown curriculum")
	ErrGradeUnknown      = errors.New("unknown grade")
	ErrMissingSegment    = errors.New("missing path segment")
	ErrSubjectExists     = errors.New("a subject with this name is already registered for this grade")
)

type (
	// Repository persists catalog entities in the hierarchical document store.
	Repository interface {
		CreateSubject(ctx context.Context, ref Ref, sub Subject) (Subject, error)
		ListSubjects(ctx context.Context, ref Ref) ([]Subject, error)
		GetSubject(ctx context.Context, ref Ref) (Subject, error)
		UpdateSubject(ctx context.Context, ref Ref, name string, updatedAt time.Time) error
		DeleteSubject(ctx context.Context, ref Ref) error

		CreateTopic(ctx context.Context, ref Ref, topic Topic) (Topic, error)
		ListTopics(ctx context.Context, ref Ref) ([]Topic, error)
		GetTopic(ctx context.Context, ref Ref) (Topic, error)
		// UpdateTopic performs a merge write; a nil patch.VideoURL leaves the
		// stored video_url untouched.
		UpdateTopic(ctx context.Context, ref Ref, patch TopicPatch) error
		DeleteTopic(ctx context.Context, ref Ref) error

		// CreateExam writes the exam document under the id set in ref.Exam.
		CreateExam(ctx context.Context, ref Ref, exam Exam) (Exam, error)
		ListExams(ctx context.Context, ref Ref) ([]Exam, error)
		GetExam(ctx context.Context, ref Ref) (Exam, error)
		UpdateExam(ctx context.Context, ref Ref, patch ExamPatch) error
		DeleteExam(ctx context.Context, ref Ref) error

		ListQuestions(ctx context.Context, ref Ref) ([]Question, error)
		// ReplaceQuestions deletes every question document under ref.Exam and
		// rewrites the given list. The two batches are not atomic as a whole;
		// a concurrent reader may observe a partially-deleted state.
		ReplaceQuestions(ctx context.Context, ref Ref, questions []Question) error
	}

	Service struct {
		repo Repository
		log  core.Logger
	}
)

func NewService(repo Repository, log core.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Curricula returns the descriptor registry.
func (svc *Service) Curricula() []Descriptor {
	return Curricula
}

// Grades returns the static grade list of a curriculum.
func (svc *Service) Grades(curriculum string) ([]string, error) {
	cur, err := GetCurriculum(curriculum)
	if err != nil {
		return nil, err
	}
	return cur.Grades, nil
}

// RegisterSubject creates a Subject after checking name uniqueness within the
// (curriculum, grade). The check is advisory (the store does not enforce it);
// a duplicate is rejected with a field-level validation error and no create
// call is issued.
func (svc *Service) RegisterSubject(ctx context.Context, ref Ref, ns NewSubject) (Subject, error) {
	if err := svc.checkNameUniqueness(ctx, ref, ns.Name); err != nil {
		return Subject{}, err
	}

	now := time.Now().UTC()
	sub := Subject{
		Name:      ns.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateSubject(ctx, ref, sub)
}

func (svc *Service) ListSubjects(ctx context.Context, ref Ref) ([]Subject, error) {
	return svc.repo.ListSubjects(ctx, ref)
}

func (svc *Service) GetSubject(ctx context.Context, ref Ref) (Subject, error) {
	return svc.repo.GetSubject(ctx, ref)
}

func (svc *Service) UpdateSubject(ctx context.Context, ref Ref, us UpdateSubject) error {
	orig, err := svc.repo.GetSubject(ctx, ref)
	if err != nil {
		return err
	}
	if !strings.EqualFold(orig.Name, us.Name) {
		if err := svc.checkNameUniqueness(ctx, ref, us.Name); err != nil {
			return err
		}
	}
	return svc.repo.UpdateSubject(ctx, ref, us.Name, time.Now().UTC())
}

func (svc *Service) DeleteSubject(ctx context.Context, ref Ref) error {
	return svc.repo.DeleteSubject(ctx, ref)
}

func (svc *Service) ListTopics(ctx context.Context, ref Ref) ([]Topic, error) {
	return svc.repo.ListTopics(ctx, ref)
}

func (svc *Service) GetTopic(ctx context.Context, ref Ref) (Topic, error) {
	return svc.repo.GetTopic(ctx, ref)
}

func (svc *Service) DeleteTopic(ctx context.Context, ref Ref) error {
	return svc.repo.DeleteTopic(ctx, ref)
}

func (svc *Service) ListExams(ctx context.Context, ref Ref) ([]Exam, error) {
	return svc.repo.ListExams(ctx, ref)
}

func (svc *Service) GetExam(ctx context.Context, ref Ref) (Exam, error) {
	return svc.repo.GetExam(ctx, ref)
}

func (svc *Service) DeleteExam(ctx context.Context, ref Ref) error {
	return svc.repo.DeleteExam(ctx, ref)
}

func (svc *Service) ListQuestions(ctx context.Context, ref Ref) ([]Question, error) {
	return svc.repo.ListQuestions(ctx, ref)
}

func (svc *Service) checkNameUniqueness(ctx context.Context, ref Ref, name string) error {
	subs, err := svc.repo.ListSubjects(ctx, ref)
	if err != nil {
		return errors.Wrap(err, "listing subjects for uniqueness check")
	}
	for _, sub := range subs {
		if strings.EqualFold(sub.Name, name) {
			return core.NewValidationError(ErrSubjectExists, core.FieldError{Field: "name", Error: ErrSubjectExists.Error()})
		}
	}
	return nil
}
