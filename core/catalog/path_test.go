package catalog

import (
	"reflect"
	"testing"

	"github.com/pkg/errors"
)

func TestRef_paths(t *testing.T) {
	full := Ref{
		Curriculum: "cbc",
		Grade:      "grade_5",
		Subject:    "sub1",
		Topic:      "top1",
		Exam:       "mid-term",
		Question:   "q1",
	}

	tests := []struct {
		name    string
		ref     Ref
		resolve func(Ref) ([]string, error)
		want    []string
		wantErr error
	}{
		{
			name:    "subjects collection",
			ref:     Ref{Curriculum: "cbc", Grade: "grade_5"},
			resolve: Ref.Subjects,
			want:    []string{"cbc", "grade_5", "subjects"},
		},
		{
			name:    "course curriculum uses its canonical segment",
			ref:     Ref{Curriculum: "english", Grade: "A1 (Beginner)"},
			resolve: Ref.Subjects,
			want:    []string{"englishLevels", "A1 (Beginner)", "subjects"},
		},
		{
			name:    "subject document",
			ref:     Ref{Curriculum: "cbc", Grade: "grade_5", Subject: "sub1"},
			resolve: Ref.SubjectPath,
			want:    []string{"cbc", "grade_5", "subjects", "sub1"},
		},
		{
			name:    "topic document",
			ref:     Ref{Curriculum: "cbc", Grade: "grade_5", Subject: "sub1", Topic: "top1"},
			resolve: Ref.TopicPath,
			want:    []string{"cbc", "grade_5", "subjects", "sub1", "topics", "top1"},
		},
		{
			name:    "subject-scoped exams",
			ref:     Ref{Curriculum: "cbc", Grade: "grade_5", Subject: "sub1"},
			resolve: Ref.Exams,
			want:    []string{"cbc", "grade_5", "subjects", "sub1", "exams"},
		},
		{
			name:    "topic-scoped exams",
			ref:     Ref{Curriculum: "english", Grade: "A1 (Beginner)", Subject: "sub1", Topic: "top1"},
			resolve: Ref.Exams,
			want:    []string{"englishLevels", "A1 (Beginner)", "subjects", "sub1", "topics", "top1", "exams"},
		},
		{
			name:    "question document full depth",
			ref:     full,
			resolve: Ref.QuestionPath,
			want: []string{
				"cbc", "grade_5", "subjects", "sub1",
				"topics", "top1", "exams", "mid-term", "questions", "q1",
			},
		},
		{
			name:    "unknown curriculum",
			ref:     Ref{Curriculum: "lol", Grade: "grade_5"},
			resolve: Ref.Subjects,
			wantErr: ErrCurriculumUnknown,
		},
		{
			name:    "grade not in curriculum",
			ref:     Ref{Curriculum: "cbc", Grade: "year_9"},
			resolve: Ref.Subjects,
			wantErr: ErrGradeUnknown,
		},
		{
			name:    "missing grade",
			ref:     Ref{Curriculum: "cbc"},
			resolve: Ref.Subjects,
			wantErr: ErrMissingSegment,
		},
		{
			name:    "missing subject",
			ref:     Ref{Curriculum: "cbc", Grade: "grade_5"},
			resolve: Ref.SubjectPath,
			wantErr: ErrMissingSegment,
		},
		{
			name:    "missing exam id",
			ref:     Ref{Curriculum: "cbc", Grade: "grade_5", Subject: "sub1"},
			resolve: Ref.ExamPath,
			wantErr: ErrMissingSegment,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.resolve(tt.ref)
			if tt.wantErr != nil {
				if errors.Cause(err) != tt.wantErr {
					t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("path = %v, want %v", got, tt.want)
			}
		})
	}
}

// The two exam hierarchies must stay distinct: the same subject resolves
// different exam collections with and without a topic.
func TestRef_parallelExamHierarchies(t *testing.T) {
	subjectScoped := Ref{Curriculum: "cbc", Grade: "grade_5", Subject: "sub1", Exam: "mid-term"}
	topicScoped := subjectScoped
	topicScoped.Topic = "top1"

	p1, err := subjectScoped.ExamPath()
	if err != nil {
		t.Fatalf("ExamPath() failed: %v", err)
	}
	p2, err := topicScoped.ExamPath()
	if err != nil {
		t.Fatalf("ExamPath() failed: %v", err)
	}
	if reflect.DeepEqual(p1, p2) {
		t.Errorf("expected distinct paths, both = %v", p1)
	}
}

func TestDescriptor_ExamParent(t *testing.T) {
	cbc, _ := GetCurriculum("cbc")
	if got := cbc.ExamParent(); got != LevelSubject {
		t.Errorf("cbc ExamParent() = %s, want subject", got)
	}
	english, _ := GetCurriculum("english")
	if got := english.ExamParent(); got != LevelTopic {
		t.Errorf("english ExamParent() = %s, want topic", got)
	}
}

func TestLevelFromString(t *testing.T) {
	for _, l := range []Level{LevelGrade, LevelSubject, LevelTopic, LevelExam, LevelQuestion} {
		if got := LevelFromString(l.String()); got != l {
			t.Errorf("LevelFromString(%q) = %d, want %d", l.String(), got, l)
		}
	}
	if got := LevelFromString("lol"); got != 0 {
		t.Errorf("LevelFromString(lol) = %d, want 0", got)
	}
}
