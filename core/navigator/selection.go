// Package navigator tracks a user's drill-down position in the curriculum
// tree and renders the cards for the next level. State is ephemeral and
// per-session; nothing here is persisted.
package navigator

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/catalog"
)

var (
	ErrValueRequired    = errors.New("a value is required to select")
	ErrInvalidSelection = errors.New("selection not reachable from the current position")
)

// Selection is the user's current position in the tree. Invariant: a field is
// non-empty only if all of its ancestor fields are non-empty.
type Selection struct {
	Curriculum string `json:"curriculum"`
	Grade      string `json:"grade,omitempty"`
	Subject    string `json:"subject,omitempty"`
	Topic      string `json:"topic,omitempty"`
	Exam       string `json:"exam,omitempty"`
	Question   string `json:"question,omitempty"`
}

// Ref maps the selection to a catalog path reference.
func (s Selection) Ref() catalog.Ref {
	return catalog.Ref{
		Curriculum: s.Curriculum,
		Grade:      s.Grade,
		Subject:    s.Subject,
		Topic:      s.Topic,
		Exam:       s.Exam,
		Question:   s.Question,
	}
}

func (s *Selection) get(level catalog.Level) string {
	switch level {
	case catalog.LevelGrade:
		return s.Grade
	case catalog.LevelSubject:
		return s.Subject
	case catalog.LevelTopic:
		return s.Topic
	case catalog.LevelExam:
		return s.Exam
	case catalog.LevelQuestion:
		return s.Question
	}
	return ""
}

func (s *Selection) set(level catalog.Level, value string) {
	switch level {
	case catalog.LevelGrade:
		s.Grade = value
	case catalog.LevelSubject:
		s.Subject = value
	case catalog.LevelTopic:
		s.Topic = value
	case catalog.LevelExam:
		s.Exam = value
	case catalog.LevelQuestion:
		s.Question = value
	}
}

// Machine is the selection state machine. Forward moves are driven by card
// clicks, backward moves by explicit "Go Back" events; the browser history is
// never consulted. Safe for concurrent use by handlers sharing a session.
type Machine struct {
	mu      sync.Mutex
	cur     catalog.Descriptor
	sel     Selection
	history []catalog.Level
}

func NewMachine(cur catalog.Descriptor) *Machine {
	return &Machine{
		cur: cur,
		sel: Selection{Curriculum: cur.ID},
	}
}

// Curriculum returns the descriptor the machine is bound to.
func (m *Machine) Curriculum() catalog.Descriptor { return m.cur }

// Selection returns a copy of the current selection.
func (m *Machine) Selection() Selection {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sel
}

// parent returns the level whose selection must be in place before `level`
// may be selected. Exams hang off the level the descriptor's scope dictates.
func (m *Machine) parent(level catalog.Level) (catalog.Level, error) {
	switch level {
	case catalog.LevelGrade:
		return 0, nil
	case catalog.LevelSubject:
		return catalog.LevelGrade, nil
	case catalog.LevelTopic:
		return catalog.LevelSubject, nil
	case catalog.LevelExam:
		return m.cur.ExamParent(), nil
	case catalog.LevelQuestion:
		return catalog.LevelExam, nil
	}
	return 0, errors.Errorf("unknown level %d", level)
}

// Select records a forward navigation to `value` at `level`. All ancestor
// levels must already be selected; the level's previous value (if any) and
// every descendant selection are cleared first. Each move one level deeper
// pushes exactly one history entry.
func (m *Machine) Select(level catalog.Level, value string) error {
	if value == "" {
		return ErrValueRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	parent, err := m.parent(level)
	if err != nil {
		return err
	}
	if parent != 0 && m.sel.get(parent) == "" {
		return errors.Wrapf(ErrInvalidSelection, "%s requires a selected %s", level, parent)
	}
	if level == catalog.LevelGrade && !m.cur.HasGrade(value) {
		return errors.Wrapf(catalog.ErrGradeUnknown, "%q", value)
	}

	m.clearFrom(level)
	m.sel.set(level, value)
	m.history = append(m.history, level)
	return nil
}

// GoBack pops the most recent navigation entry and clears that level and its
// descendants. On an empty history it reports false and changes nothing.
func (m *Machine) GoBack() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.history) == 0 {
		return false
	}
	last := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	m.clearFrom(last)
	return true
}

// Reset clears all selection and history.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sel = Selection{Curriculum: m.cur.ID}
	m.history = nil
}

// HistoryDepth reports how many forward moves can be undone.
func (m *Machine) HistoryDepth() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.history)
}

// clearFrom empties `level` and every level below it, dropping the matching
// history entries so history always mirrors the set levels.
func (m *Machine) clearFrom(level catalog.Level) {
	for l := level; l <= catalog.LevelQuestion; l++ {
		if m.sel.get(l) == "" {
			continue
		}
		m.sel.set(l, "")
		for i := len(m.history) - 1; i >= 0; i-- {
			if m.history[i] == l {
				m.history = append(m.history[:i], m.history[i+1:]...)
				break
			}
		}
	}
}
