package catalog

// Level is a depth in the curriculum tree.
type Level int

const (
	LevelGrade Level = iota + 1
	LevelSubject
	LevelTopic
	LevelExam
	LevelQuestion
)

var levelNames = map[Level]string{
	LevelGrade:    "grade",
	LevelSubject:  "subject",
	LevelTopic:    "topic",
	LevelExam:     "exam",
	LevelQuestion: "question",
}

func (l Level) String() string { return levelNames[l] }

// LevelFromString maps a level name back to its Level; 0 if unknown.
func LevelFromString(s string) Level {
	for l, name := range levelNames {
		if name == s {
			return l
		}
	}
	return 0
}

// ExamScope selects which of the two parallel exam hierarchies a curriculum
// uses: exams attached directly to subjects, or exams attached to topics.
type ExamScope int

const (
	ExamScopeSubject ExamScope = iota
	ExamScopeTopic
)

// Descriptor is the static definition of one curriculum: its canonical path
// segment, its fixed grade/level list and its exam hierarchy. Grade lists are
// enumerated here, never queried from the store.
type Descriptor struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	PathSegment string    `json:"-"`
	Grades      []string  `json:"grades"`
	ExamScope   ExamScope `json:"-"`
}

// HasGrade reports whether `grade` is one of the descriptor's fixed grades.
func (d Descriptor) HasGrade(grade string) bool {
	for _, g := range d.Grades {
		if g == grade {
			return true
		}
	}
	return false
}

// ExamParent returns the level exams hang off in this curriculum.
func (d Descriptor) ExamParent() Level {
	if d.ExamScope == ExamScopeTopic {
		return LevelTopic
	}
	return LevelSubject
}

var courseLevels = []string{
	"A1 (Beginner)",
	"A2 (Elementary)",
	"B1 (Intermediate)",
	"B2 (Upper Intermediate)",
	"C1 (Advanced)",
	"C2 (Proficiency)",
}

// Curricula is the descriptor registry. The PathSegment is the single
// canonical store segment for each curriculum; nothing else in the codebase
// hard-codes these strings.
var Curricula = []Descriptor{
	{
		ID:          "cbc",
		Name:        "CBC",
		PathSegment: "cbc",
		Grades: []string{
			"grade_1", "grade_2", "grade_3", "grade_4",
			"grade_5", "grade_6", "grade_7", "grade_8",
		},
		ExamScope: ExamScopeSubject,
	},
	{
		ID:          "igcse",
		Name:        "IGCSE",
		PathSegment: "igcse",
		Grades:      []string{"year_9", "year_10", "year_11"},
		ExamScope:   ExamScopeSubject,
	},
	{
		ID:          "english",
		Name:        "English Course",
		PathSegment: "englishLevels",
		Grades:      courseLevels,
		ExamScope:   ExamScopeTopic,
	},
	{
		ID:          "somali",
		Name:        "Somali Course",
		PathSegment: "somaliLevels",
		Grades:      courseLevels,
		ExamScope:   ExamScopeTopic,
	},
	{
		ID:          "kiswahili",
		Name:        "Kiswahili Course",
		PathSegment: "kiswahiliLevels",
		Grades:      courseLevels,
		ExamScope:   ExamScopeTopic,
	},
	{
		ID:          "arabic",
		Name:        "Arabic Course",
		PathSegment: "arabicLevels",
		Grades:      courseLevels,
		ExamScope:   ExamScopeTopic,
	},
}

// GetCurriculum finds a descriptor by ID.
func GetCurriculum(id string) (Descriptor, error) {
	for _, d := range Curricula {
		if d.ID == id {
			return d, nil
		}
	}
	return Descriptor{}, ErrCurriculumUnknown
}
