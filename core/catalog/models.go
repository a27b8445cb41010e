package catalog

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
)

// Subject is a course unit registered under a (curriculum, grade).
// Name uniqueness within the grade is checked by the Service before insert;
// the store itself does not enforce it.
type Subject struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// Topic is a content unit under a Subject, optionally carrying a video.
type Topic struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoURL    string    `json:"video_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

// Exam is an ordered collection of questions under a Subject or a Topic.
type Exam struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// Question is one question/answer rich-text pair of an Exam. Order is
// zero-based and contiguous within the exam.
type Question struct {
	ID           string    `json:"id"`
	QuestionHTML string    `json:"question_html"`
	AnswerHTML   string    `json:"answer_html,omitempty"`
	Order        int       `json:"order"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
}

// TopicPatch carries a partial topic update. A nil VideoURL leaves the stored
// video_url untouched (merge write).
type TopicPatch struct {
	Title       string
	Description string
	VideoURL    *string
	UpdatedAt   time.Time
}

// ExamPatch carries a partial exam metadata update (merge write).
type ExamPatch struct {
	Title     string
	UpdatedAt time.Time
}

// NewSubject contains information needed to register a new Subject.
type NewSubject struct {
	Name string `json:"name" validate:"required"`
}

func (ns *NewSubject) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	return validate.Struct(ns)
}

// UpdateSubject defines what information may be provided to modify a Subject.
type UpdateSubject struct {
	Name string `json:"name" validate:"required"`
}

func (us *UpdateSubject) Validate(validate *validator.Validate) error {
	us.Name = core.CleanString(us.Name)
	return validate.Struct(us)
}
