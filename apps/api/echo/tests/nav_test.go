package tests

import (
	"net/http"
	"testing"

	. "github.com/trezcool/darasa/apps/api/echo"
	"github.com/trezcool/darasa/core/catalog"
	"github.com/trezcool/darasa/core/navigator"
	"github.com/trezcool/darasa/tests"
)

func Test_navApi_treeNavigation(t *testing.T) {
	gradeRef := catalog.Ref{Curriculum: "igcse", Grade: "year_9"}
	maths := testutil.CreateSubject(t, repo, gradeRef, "Mathematics")

	igcse, err := catalog.GetCurriculum("igcse")
	if err != nil {
		t.Fatalf("GetCurriculum(): %v", err)
	}

	var gradeCards []navigator.Card
	for _, g := range igcse.Grades {
		gradeCards = append(gradeCards, navigator.Card{Level: catalog.LevelGrade, ID: g, Title: g})
	}
	gradePage := navigator.Page{
		Selection: navigator.Selection{Curriculum: "igcse"},
		Level:     catalog.LevelGrade,
		Cards:     gradeCards,
	}
	subjectPage := navigator.Page{
		Selection: navigator.Selection{Curriculum: "igcse", Grade: "year_9"},
		Level:     catalog.LevelSubject,
		Cards:     []navigator.Card{{Level: catalog.LevelSubject, ID: maths.ID, Title: maths.Name}},
	}

	base := "/v1/nav/igcse"
	selectBody := func(level, value string) []byte {
		return marchallObj(t, SelectRequest{Level: level, Value: value})
	}

	steps := []httpTest{
		{name: "Auth required", method: http.MethodGet, path: base, wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Unknown curriculum", method: http.MethodGet, path: "/v1/nav/lol", token: studentToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: catalog.ErrCurriculumUnknown.Error()}),
		},
		{name: "Root shows grade cards", method: http.MethodGet, path: base, token: studentToken, wantData: marchallObj(t, gradePage)},
		{
			name: "Unknown level name", method: http.MethodPost, path: base + "/select", token: studentToken,
			body: selectBody("lol", "year_9"), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"level": "unknown level"}),
		},
		{
			name: "Value required", method: http.MethodPost, path: base + "/select", token: studentToken,
			body: selectBody("grade", ""), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: navigator.ErrValueRequired.Error()}),
		},
		{
			name: "Unknown grade", method: http.MethodPost, path: base + "/select", token: studentToken,
			body: selectBody("grade", "year_42"), wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: catalog.ErrGradeUnknown.Error()}),
		},
		{
			name: "Ancestors come first", method: http.MethodPost, path: base + "/select", token: studentToken,
			body: selectBody("subject", maths.ID), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: navigator.ErrInvalidSelection.Error()}),
		},
		{
			name: "Select grade", method: http.MethodPost, path: base + "/select", token: studentToken,
			body: selectBody("grade", "year_9"), wantData: marchallObj(t, subjectPage),
		},
		{
			name: "Sessions are per user", method: http.MethodGet, path: base, token: teacherToken,
			wantData: marchallObj(t, gradePage),
		},
		{
			name: "Go back pops one level", method: http.MethodPost, path: base + "/back", token: studentToken,
			wantData: marchallObj(t, gradePage),
		},
		{
			name: "Go back on empty history is a no-op", method: http.MethodPost, path: base + "/back", token: studentToken,
			wantData: marchallObj(t, gradePage),
		},
		{
			name: "Drill down again", method: http.MethodPost, path: base + "/select", token: studentToken,
			body: selectBody("grade", "year_9"), wantData: marchallObj(t, subjectPage),
		},
		{
			name: "Reset jumps to the root", method: http.MethodPost, path: base + "/reset", token: studentToken,
			wantData: marchallObj(t, gradePage),
		},
	}
	for _, tt := range steps {
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_navApi_emptyGradeNotice(t *testing.T) {
	req, rec := newAuthRequest(http.MethodPost, "/v1/nav/somali/select", studentToken,
		marchallObj(t, SelectRequest{Level: "grade", Value: "A1 (Beginner)"}))
	app.ServeHTTP(rec, req)

	want := navigator.Page{
		Selection: navigator.Selection{Curriculum: "somali", Grade: "A1 (Beginner)"},
		Level:     catalog.LevelSubject,
		Notice:    "No subjects registered for this grade yet.",
	}
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, want)}, rec)
}
