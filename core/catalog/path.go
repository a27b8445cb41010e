package catalog

import (
	"strings"

	"github.com/pkg/errors"
)

// Collection names of the store schema:
// {curriculum}/{grade}/subjects/{id}/topics/{id}
// {curriculum}/{grade}/subjects/{id}/exams/{id}/questions/{id}
// {curriculum}/{grade}/subjects/{id}/topics/{id}/exams/{id}/questions/{id}
const (
	colSubjects  = "subjects"
	colTopics    = "topics"
	colExams     = "exams"
	colQuestions = "questions"
)

// Ref identifies a position in the curriculum tree. Curriculum and Grade are
// always required; deeper fields are required per the depth being resolved.
// A set Topic routes Exam/Question paths through the topic-scoped hierarchy;
// an empty Topic routes them through the subject-scoped one. The two
// hierarchies stay distinct and independently addressable.
type Ref struct {
	Curriculum string
	Grade      string
	Subject    string
	Topic      string
	Exam       string
	Question   string
}

func (r Ref) root() ([]string, error) {
	cur, err := GetCurriculum(r.Curriculum)
	if err != nil {
		return nil, err
	}
	if r.Grade == "" {
		return nil, errors.Wrap(ErrMissingSegment, "grade")
	}
	if !cur.HasGrade(r.Grade) {
		return nil, errors.Wrapf(ErrGradeUnknown, "%q in curriculum %q", r.Grade, r.Curriculum)
	}
	return []string{cur.PathSegment, r.Grade}, nil
}

// Subjects resolves the subjects collection under (curriculum, grade).
func (r Ref) Subjects() ([]string, error) {
	root, err := r.root()
	if err != nil {
		return nil, err
	}
	return append(root, colSubjects), nil
}

// SubjectPath resolves the subject document.
func (r Ref) SubjectPath() ([]string, error) {
	col, err := r.Subjects()
	if err != nil {
		return nil, err
	}
	if r.Subject == "" {
		return nil, errors.Wrap(ErrMissingSegment, "subject")
	}
	return append(col, r.Subject), nil
}

// Topics resolves the topics collection under the subject.
func (r Ref) Topics() ([]string, error) {
	doc, err := r.SubjectPath()
	if err != nil {
		return nil, err
	}
	return append(doc, colTopics), nil
}

// TopicPath resolves the topic document.
func (r Ref) TopicPath() ([]string, error) {
	col, err := r.Topics()
	if err != nil {
		return nil, err
	}
	if r.Topic == "" {
		return nil, errors.Wrap(ErrMissingSegment, "topic")
	}
	return append(col, r.Topic), nil
}

// Exams resolves the exams collection: under the topic when Topic is set,
// otherwise under the subject.
func (r Ref) Exams() ([]string, error) {
	var doc []string
	var err error
	if r.Topic != "" {
		doc, err = r.TopicPath()
	} else {
		doc, err = r.SubjectPath()
	}
	if err != nil {
		return nil, err
	}
	return append(doc, colExams), nil
}

// ExamPath resolves the exam document.
func (r Ref) ExamPath() ([]string, error) {
	col, err := r.Exams()
	if err != nil {
		return nil, err
	}
	if r.Exam == "" {
		return nil, errors.Wrap(ErrMissingSegment, "exam")
	}
	return append(col, r.Exam), nil
}

// Questions resolves the questions collection under the exam.
func (r Ref) Questions() ([]string, error) {
	doc, err := r.ExamPath()
	if err != nil {
		return nil, err
	}
	return append(doc, colQuestions), nil
}

// QuestionPath resolves the question document.
func (r Ref) QuestionPath() ([]string, error) {
	col, err := r.Questions()
	if err != nil {
		return nil, err
	}
	if r.Question == "" {
		return nil, errors.Wrap(ErrMissingSegment, "question")
	}
	return append(col, r.Question), nil
}

// String renders the deepest resolvable document or collection path, for logs.
func (r Ref) String() string {
	for _, resolve := range []func() ([]string, error){
		r.QuestionPath, r.Questions, r.ExamPath, r.Exams,
		r.TopicPath, r.Topics, r.SubjectPath, r.Subjects,
	} {
		if segs, err := resolve(); err == nil {
			return strings.Join(segs, "/")
		}
	}
	return r.Curriculum + "/" + r.Grade
}
