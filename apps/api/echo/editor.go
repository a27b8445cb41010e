package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/catalog"
	"github.com/trezcool/darasa/core/editor"
)

type (
	editorDeps struct {
		svc      *catalog.Service
		repo     catalog.Repository
		blobs    core.BlobStore
		mailSvc  core.EmailService
		validate *validator.Validate
		log      core.Logger
	}

	editorApi struct {
		editorDeps
	}
)

func registerEditorAPI(g *echo.Group, authed echo.MiddlewareFunc, deps editorDeps) {
	api := editorApi{editorDeps: deps}

	eg := g.Group("/catalog/:curriculum/:grade/subjects/:subject", authed, staffMiddleware())
	eg.POST("/topics", api.createTopic)
	eg.PUT("/topics/:topic", api.updateTopic)

	eg.POST("/exams", api.createExam)
	eg.PUT("/exams/:exam", api.updateExam)
	eg.POST("/topics/:topic/exams", api.createExam)
	eg.PUT("/topics/:topic/exams/:exam", api.updateExam)
}

// Handlers

// createTopic accepts a multipart form: title, description and an optional
// video part. The video is uploaded to the blob store before the topic
// document is written.
func (api *editorApi) createTopic(ctx echo.Context) error {
	form, closeForm, err := api.bindTopicForm(ctx)
	if err != nil {
		return err
	}
	defer closeForm()

	ed := editor.NewTopicEditor(api.repo, api.blobs, api.mailSvc, api.validate, api.log)
	ed.Open(pathRef(ctx), nil)

	topic, err := ed.Save(ctx.Request().Context(), form)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, topic)
}

// updateTopic merges the form into the existing topic. When no video part is
// sent the stored video URL is left as it is.
func (api *editorApi) updateTopic(ctx echo.Context) error {
	ref := pathRef(ctx)
	existing, err := api.svc.GetTopic(ctx.Request().Context(), ref)
	if err != nil {
		return err
	}

	form, closeForm, err := api.bindTopicForm(ctx)
	if err != nil {
		return err
	}
	defer closeForm()

	subjectRef := ref
	subjectRef.Topic = ""
	ed := editor.NewTopicEditor(api.repo, api.blobs, api.mailSvc, api.validate, api.log)
	ed.Open(subjectRef, &existing)

	topic, err := ed.Save(ctx.Request().Context(), form)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, topic)
}

func (api *editorApi) createExam(ctx echo.Context) error {
	var form editor.ExamForm
	if err := ctx.Bind(&form); err != nil {
		return errors.Wrap(err, "binding to ExamForm")
	}

	ed := editor.NewExamEditor(api.repo, api.mailSvc, api.validate, api.log)
	ed.Open(pathRef(ctx), nil)

	exam, err := ed.Save(ctx.Request().Context(), form)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, exam)
}

func (api *editorApi) updateExam(ctx echo.Context) error {
	ref := pathRef(ctx)
	existing, err := api.svc.GetExam(ctx.Request().Context(), ref)
	if err != nil {
		return err
	}

	var form editor.ExamForm
	if err := ctx.Bind(&form); err != nil {
		return errors.Wrap(err, "binding to ExamForm")
	}

	parentRef := ref
	parentRef.Exam = ""
	ed := editor.NewExamEditor(api.repo, api.mailSvc, api.validate, api.log)
	ed.Open(parentRef, &existing)

	exam, err := ed.Save(ctx.Request().Context(), form)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, exam)
}

// bindTopicForm reads the multipart topic form. The returned closer releases
// the video part's file handle and must be called after the save resolves.
func (api *editorApi) bindTopicForm(ctx echo.Context) (editor.TopicForm, func(), error) {
	form := editor.TopicForm{
		Title:       ctx.FormValue("title"),
		Description: ctx.FormValue("description"),
	}
	closeForm := func() {}

	fh, err := ctx.FormFile("video")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return form, closeForm, nil
		}
		// no multipart body at all means no video either
		if errors.Is(err, http.ErrNotMultipart) {
			return form, closeForm, nil
		}
		return form, closeForm, errors.Wrap(err, "reading video part")
	}
	f, err := fh.Open()
	if err != nil {
		return form, closeForm, errors.Wrap(err, "opening video part")
	}
	form.Video = &editor.VideoUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Content:     f,
	}
	closeForm = func() { _ = f.Close() }
	return form, closeForm, nil
}
