package tests

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/trezcool/darasa/core/catalog"
	"github.com/trezcool/darasa/core/editor"
	"github.com/trezcool/darasa/tests"
)

// newTopicRequest builds the multipart form the content editor submits:
// title, description and an optional video part.
func newTopicRequest(t *testing.T, method, path, token, title, description, videoName string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := w.WriteField("title", title); err != nil {
		t.Fatalf("WriteField(): %v", err)
	}
	if err := w.WriteField("description", description); err != nil {
		t.Fatalf("WriteField(): %v", err)
	}
	if videoName != "" {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", `form-data; name="video"; filename="`+videoName+`"`)
		hdr.Set("Content-Type", "video/mp4")
		part, err := w.CreatePart(hdr)
		if err != nil {
			t.Fatalf("CreatePart(): %v", err)
		}
		if _, err = part.Write([]byte("fake video bytes")); err != nil {
			t.Fatalf("part.Write(): %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("multipart.Close(): %v", err)
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	return req, rec
}

func Test_editorApi_topics(t *testing.T) {
	gradeRef := catalog.Ref{Curriculum: "cbc", Grade: "grade_6"}
	sub := testutil.CreateSubject(t, repo, gradeRef, "Biology")
	base := "/v1/catalog/cbc/grade_6/subjects/" + sub.ID

	subRef := gradeRef
	subRef.Subject = sub.ID

	t.Run("staff only", func(t *testing.T) {
		req, rec := newTopicRequest(t, http.MethodPost, base+"/topics", studentToken, "Cells", "", "")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)}, rec)
	})

	t.Run("title required", func(t *testing.T) {
		req, rec := newTopicRequest(t, http.MethodPost, base+"/topics", teacherToken, "   ", "", "")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"title": "this field is required"}),
		}, rec)
	})

	t.Run("upload failure aborts the save", func(t *testing.T) {
		blobs.FailUploads = true
		defer func() { blobs.FailUploads = false }()

		req, rec := newTopicRequest(t, http.MethodPost, base+"/topics", teacherToken, "Cells", "", "cells.mp4")
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("failed! code = %v; want %v", rec.Code, http.StatusInternalServerError)
		}

		req2, rec2 := newAuthRequest(http.MethodGet, base+"/topics", teacherToken)
		app.ServeHTTP(rec2, req2)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallList(t, []interface{}{}...)}, rec2)
	})

	var cells catalog.Topic
	t.Run("create with video", func(t *testing.T) {
		req, rec := newTopicRequest(t, http.MethodPost, base+"/topics", teacherToken, "Cells", "Cell structure basics", "Cells Intro.MP4")
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create failed! code = %v; body = %v", rec.Code, rec.Body.String())
		}
		unmarchallObj(t, rec.Body.Bytes(), &cells)
		if cells.ID == "" || cells.Title != "Cells" || cells.Description != "Cell structure basics" {
			t.Errorf("create failed! topic = %+v", cells)
		}
		wantPrefix := "memory://videos/cbc/grade_6/" + sub.ID + "/"
		if !strings.HasPrefix(cells.VideoURL, wantPrefix) || !strings.HasSuffix(cells.VideoURL, ".mp4") {
			t.Errorf("failed! video url = %q; want %q*.mp4", cells.VideoURL, wantPrefix)
		}
	})

	t.Run("edit without video keeps the stored url", func(t *testing.T) {
		req, rec := newTopicRequest(t, http.MethodPut, base+"/topics/"+cells.ID, teacherToken, "Cells & Organelles", "Updated notes", "")
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("update failed! code = %v; body = %v", rec.Code, rec.Body.String())
		}
		var updated catalog.Topic
		unmarchallObj(t, rec.Body.Bytes(), &updated)
		if updated.Title != "Cells & Organelles" || updated.Description != "Updated notes" {
			t.Errorf("update failed! topic = %+v", updated)
		}
		if updated.VideoURL != cells.VideoURL {
			t.Errorf("failed! video url changed: %q -> %q", cells.VideoURL, updated.VideoURL)
		}

		req2, rec2 := newAuthRequest(http.MethodGet, base+"/topics/"+cells.ID, teacherToken)
		app.ServeHTTP(rec2, req2)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, updated)}, rec2)
	})

	t.Run("unknown topic", func(t *testing.T) {
		req, rec := newTopicRequest(t, http.MethodPut, base+"/topics/lol", teacherToken, "Nope", "", "")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)}, rec)
	})
}

func Test_editorApi_exams(t *testing.T) {
	gradeRef := catalog.Ref{Curriculum: "cbc", Grade: "grade_7"}
	sub := testutil.CreateSubject(t, repo, gradeRef, "History")
	base := "/v1/catalog/cbc/grade_7/subjects/" + sub.ID

	drafts := []editor.QuestionDraft{
		{QuestionHTML: "<p>Q1?</p>", AnswerHTML: "<p>A1</p>"},
		{QuestionHTML: "   ", AnswerHTML: "<p>dropped</p>"}, // blank question rows are dropped
		{QuestionHTML: "<p>Q2?</p>"},
	}

	t.Run("staff only", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, base+"/exams", studentToken,
			marchallObj(t, editor.ExamForm{Title: "Paper 1", Questions: drafts}))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)}, rec)
	})

	t.Run("questions required unless allowed empty", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, base+"/exams", teacherToken,
			marchallObj(t, editor.ExamForm{Title: "Paper 1"}))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"questions": editor.ErrNoQuestions.Error()}),
		}, rec)
	})

	t.Run("slug-less title is rejected", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, base+"/exams", teacherToken,
			marchallObj(t, editor.ExamForm{Title: "!!!", AllowEmpty: true}))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"title": editor.ErrUntitledExam.Error()}),
		}, rec)
	})

	var paper catalog.Exam
	t.Run("create", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, base+"/exams", teacherToken,
			marchallObj(t, editor.ExamForm{Title: "End of Term: Paper 1!", Questions: drafts}))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create failed! code = %v; body = %v", rec.Code, rec.Body.String())
		}
		unmarchallObj(t, rec.Body.Bytes(), &paper)
		if paper.ID != "end-of-term-paper-1" {
			t.Errorf("failed! id = %q; want %q", paper.ID, "end-of-term-paper-1")
		}

		req2, rec2 := newAuthRequest(http.MethodGet, base+"/exams/"+paper.ID+"/questions", teacherToken)
		app.ServeHTTP(rec2, req2)
		var questions []catalog.Question
		unmarchallObj(t, rec2.Body.Bytes(), &questions)
		if len(questions) != 2 {
			t.Fatalf("failed! got %d questions; want 2", len(questions))
		}
		for i, q := range questions {
			if q.Order != i {
				t.Errorf("failed! questions[%d].Order = %d", i, q.Order)
			}
		}
		if questions[0].QuestionHTML != "<p>Q1?</p>" || questions[1].QuestionHTML != "<p>Q2?</p>" {
			t.Errorf("failed! questions = %+v", questions)
		}
	})

	t.Run("edit rewrites the questions, never the id", func(t *testing.T) {
		form := editor.ExamForm{
			Title:     "End of Term Paper One",
			Questions: []editor.QuestionDraft{{QuestionHTML: "<p>Only one now</p>"}},
		}
		req, rec := newAuthRequest(http.MethodPut, base+"/exams/"+paper.ID, teacherToken, marchallObj(t, form))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("update failed! code = %v; body = %v", rec.Code, rec.Body.String())
		}
		var updated catalog.Exam
		unmarchallObj(t, rec.Body.Bytes(), &updated)
		if updated.ID != paper.ID || updated.Title != "End of Term Paper One" {
			t.Errorf("update failed! exam = %+v", updated)
		}

		req2, rec2 := newAuthRequest(http.MethodGet, base+"/exams/"+paper.ID+"/questions", teacherToken)
		app.ServeHTTP(rec2, req2)
		var questions []catalog.Question
		unmarchallObj(t, rec2.Body.Bytes(), &questions)
		if len(questions) != 1 || questions[0].QuestionHTML != "<p>Only one now</p>" {
			t.Errorf("failed! questions = %+v", questions)
		}
	})

	t.Run("topic-scoped create", func(t *testing.T) {
		courseRef := catalog.Ref{Curriculum: "english", Grade: "B1 (Intermediate)"}
		engSub := testutil.CreateSubject(t, repo, courseRef, "Writing")
		topicRef := courseRef
		topicRef.Subject = engSub.ID
		essays := testutil.CreateTopic(t, repo, topicRef, "Essays")

		path := "/v1/catalog/english/B1%20(Intermediate)/subjects/" + engSub.ID + "/topics/" + essays.ID + "/exams"
		req, rec := newAuthRequest(http.MethodPost, path, teacherToken,
			marchallObj(t, editor.ExamForm{Title: "Essay Quiz", Questions: []editor.QuestionDraft{{QuestionHTML: "<p>Write one.</p>"}}}))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create failed! code = %v; body = %v", rec.Code, rec.Body.String())
		}
		var quiz catalog.Exam
		unmarchallObj(t, rec.Body.Bytes(), &quiz)
		if quiz.ID != "essay-quiz" {
			t.Errorf("failed! id = %q; want %q", quiz.ID, "essay-quiz")
		}

		// the exam lives under the topic, not the subject
		req2, rec2 := newAuthRequest(http.MethodGet, "/v1/catalog/english/B1%20(Intermediate)/subjects/"+engSub.ID+"/exams", teacherToken)
		app.ServeHTTP(rec2, req2)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallList(t, []interface{}{}...)}, rec2)

		req3, rec3 := newAuthRequest(http.MethodGet, path+"/"+quiz.ID, teacherToken)
		app.ServeHTTP(rec3, req3)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, quiz)}, rec3)
	})
}
