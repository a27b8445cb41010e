package navigator

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/catalog"
)

// user-facing notices; store failures and empty collections are displayed
// states, never propagated errors
const (
	noticeNoSubjects  = "No subjects registered for this grade yet."
	noticeNoTopics    = "No topics available for this subject yet."
	noticeNoExams     = "No exams available here yet."
	noticeNoQuestions = "No questions added to this exam yet."
	noticeLoadFailed  = "Could not load content. Please try again."
)

type (
	// Card is one selectable item at the next tree level.
	Card struct {
		Level catalog.Level `json:"level"`
		ID    string        `json:"id"`
		Title string        `json:"title"`
	}

	// Page is what the tree renders for the current selection: the cards of
	// the next unselected level, plus the exam cards whenever the current
	// node is the parent of an exam hierarchy. Notice carries the empty/error
	// display state.
	Page struct {
		Selection Selection     `json:"selection"`
		Level     catalog.Level `json:"level,omitempty"`
		Cards     []Card        `json:"cards"`
		Exams     []Card        `json:"exams,omitempty"`
		Notice    string        `json:"notice,omitempty"`
	}

	// TreeView renders pages for a Machine's selection. Every Render re-reads
	// the relevant collections from the store; nothing is cached.
	TreeView struct {
		machine *Machine
		svc     *catalog.Service
		log     core.Logger
	}
)

func NewTreeView(machine *Machine, svc *catalog.Service, log core.Logger) *TreeView {
	return &TreeView{machine: machine, svc: svc, log: log}
}

// Machine exposes the view's selection machine for navigation events.
func (v *TreeView) Machine() *Machine { return v.machine }

// Render produces the page for the current selection. The sequence of cards
// is finite and restartable: call Render again to re-issue the reads.
func (v *TreeView) Render(ctx context.Context) Page {
	cur := v.machine.Curriculum()
	sel := v.machine.Selection()
	page := Page{Selection: sel}

	switch {
	case sel.Grade == "":
		page.Level = catalog.LevelGrade
		for _, g := range cur.Grades {
			page.Cards = append(page.Cards, Card{Level: catalog.LevelGrade, ID: g, Title: g})
		}

	case sel.Subject == "":
		page.Level = catalog.LevelSubject
		subs, err := v.svc.ListSubjects(ctx, sel.Ref())
		if err != nil {
			return v.failed(page, err)
		}
		for _, sub := range subs {
			page.Cards = append(page.Cards, Card{Level: catalog.LevelSubject, ID: sub.ID, Title: sub.Name})
		}
		if len(page.Cards) == 0 {
			page.Notice = noticeNoSubjects
		}

	case sel.Topic == "" && sel.Exam == "":
		page.Level = catalog.LevelTopic
		topics, err := v.svc.ListTopics(ctx, sel.Ref())
		if err != nil {
			return v.failed(page, err)
		}
		for _, topic := range topics {
			page.Cards = append(page.Cards, Card{Level: catalog.LevelTopic, ID: topic.ID, Title: topic.Title})
		}
		if len(page.Cards) == 0 {
			page.Notice = noticeNoTopics
		}
		if cur.ExamScope == catalog.ExamScopeSubject {
			if err := v.renderExams(ctx, sel, &page); err != nil {
				return v.failed(page, err)
			}
		}

	case sel.Exam == "": // topic selected, topic-scoped exams
		page.Level = catalog.LevelExam
		if cur.ExamScope == catalog.ExamScopeTopic {
			if err := v.renderExams(ctx, sel, &page); err != nil {
				return v.failed(page, err)
			}
			page.Cards = page.Exams
			page.Exams = nil
			if len(page.Cards) == 0 {
				page.Notice = noticeNoExams
			}
		}

	default: // exam (or question) selected
		page.Level = catalog.LevelQuestion
		questions, err := v.svc.ListQuestions(ctx, sel.Ref())
		if err != nil {
			return v.failed(page, err)
		}
		for _, q := range questions {
			if sel.Question != "" && q.ID != sel.Question {
				continue
			}
			page.Cards = append(page.Cards, Card{Level: catalog.LevelQuestion, ID: q.ID, Title: q.QuestionHTML})
		}
		if len(page.Cards) == 0 {
			page.Notice = noticeNoQuestions
		}
	}

	return page
}

func (v *TreeView) renderExams(ctx context.Context, sel Selection, page *Page) error {
	exams, err := v.svc.ListExams(ctx, sel.Ref())
	if err != nil {
		return err
	}
	for _, exam := range exams {
		page.Exams = append(page.Exams, Card{Level: catalog.LevelExam, ID: exam.ID, Title: exam.Title})
	}
	return nil
}

func (v *TreeView) failed(page Page, err error) Page {
	v.log.Error("tree view fetch failed", errors.Wrapf(err, "rendering %s", page.Selection.Ref()))
	page.Cards = nil
	page.Exams = nil
	page.Notice = noticeLoadFailed
	return page
}
