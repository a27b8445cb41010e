package echoapi

import (
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/catalog"
)

type catalogApi struct {
	svc      *catalog.Service
	validate *validator.Validate
}

func registerCatalogAPI(
	g *echo.Group,
	authed echo.MiddlewareFunc,
	svc *catalog.Service,
	validate *validator.Validate,
) {
	api := catalogApi{svc: svc, validate: validate}

	cg := g.Group("/catalog", authed)
	cg.GET("/curricula", api.queryCurricula)
	cg.GET("/:curriculum/grades", api.queryGrades)

	sg := cg.Group("/:curriculum/:grade/subjects")
	sg.GET("", api.querySubjects)
	sg.POST("", api.createSubject, staffMiddleware())

	sd := sg.Group("/:subject")
	sd.GET("", api.retrieveSubject)
	sd.PUT("", api.updateSubject, staffMiddleware())
	sd.DELETE("", api.destroySubject, adminMiddleware())

	sd.GET("/topics", api.queryTopics)
	sd.GET("/topics/:topic", api.retrieveTopic)
	sd.DELETE("/topics/:topic", api.destroyTopic, staffMiddleware())

	// exams hang off the subject or the topic depending on the curriculum;
	// both hierarchies are routed, the handlers resolve via the path ref
	for _, eg := range []*echo.Group{sd.Group("/exams"), sd.Group("/topics/:topic/exams")} {
		eg.GET("", api.queryExams)
		eg.GET("/:exam", api.retrieveExam)
		eg.DELETE("/:exam", api.destroyExam, staffMiddleware())
		eg.GET("/:exam/questions", api.queryQuestions)
	}
}

// pathRef builds the store reference addressed by the request path.
func pathRef(ctx echo.Context) catalog.Ref {
	return catalog.Ref{
		Curriculum: pathParam(ctx, "curriculum"),
		Grade:      pathParam(ctx, "grade"),
		Subject:    pathParam(ctx, "subject"),
		Topic:      pathParam(ctx, "topic"),
		Exam:       pathParam(ctx, "exam"),
		Question:   pathParam(ctx, "question"),
	}
}

// pathParam returns a decoded path parameter. The router matches on the raw
// path, so segments like "A1 (Beginner)" arrive still escaped.
func pathParam(ctx echo.Context, name string) string {
	v := ctx.Param(name)
	if unescaped, err := url.PathUnescape(v); err == nil {
		return unescaped
	}
	return v
}

// Handlers

func (api *catalogApi) queryCurricula(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Curricula())
}

func (api *catalogApi) queryGrades(ctx echo.Context) error {
	grades, err := api.svc.Grades(ctx.Param("curriculum"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, grades)
}

func (api *catalogApi) querySubjects(ctx echo.Context) error {
	subs, err := api.svc.ListSubjects(ctx.Request().Context(), pathRef(ctx))
	if err != nil {
		return errors.Wrap(err, "querying subjects")
	}
	if subs == nil {
		subs = []catalog.Subject{}
	}
	return ctx.JSON(http.StatusOK, subs)
}

func (api *catalogApi) createSubject(ctx echo.Context) error {
	var data catalog.NewSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubject")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sub, err := api.svc.RegisterSubject(ctx.Request().Context(), pathRef(ctx), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, sub)
}

func (api *catalogApi) retrieveSubject(ctx echo.Context) error {
	sub, err := api.svc.GetSubject(ctx.Request().Context(), pathRef(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *catalogApi) updateSubject(ctx echo.Context) error {
	var data catalog.UpdateSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateSubject")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ref := pathRef(ctx)
	if err := api.svc.UpdateSubject(ctx.Request().Context(), ref, data); err != nil {
		return err
	}
	sub, err := api.svc.GetSubject(ctx.Request().Context(), ref)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *catalogApi) destroySubject(ctx echo.Context) error {
	if err := api.svc.DeleteSubject(ctx.Request().Context(), pathRef(ctx)); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *catalogApi) queryTopics(ctx echo.Context) error {
	topics, err := api.svc.ListTopics(ctx.Request().Context(), pathRef(ctx))
	if err != nil {
		return errors.Wrap(err, "querying topics")
	}
	if topics == nil {
		topics = []catalog.Topic{}
	}
	return ctx.JSON(http.StatusOK, topics)
}

func (api *catalogApi) retrieveTopic(ctx echo.Context) error {
	topic, err := api.svc.GetTopic(ctx.Request().Context(), pathRef(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, topic)
}

func (api *catalogApi) destroyTopic(ctx echo.Context) error {
	if err := api.svc.DeleteTopic(ctx.Request().Context(), pathRef(ctx)); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *catalogApi) queryExams(ctx echo.Context) error {
	exams, err := api.svc.ListExams(ctx.Request().Context(), pathRef(ctx))
	if err != nil {
		return errors.Wrap(err, "querying exams")
	}
	if exams == nil {
		exams = []catalog.Exam{}
	}
	return ctx.JSON(http.StatusOK, exams)
}

func (api *catalogApi) retrieveExam(ctx echo.Context) error {
	exam, err := api.svc.GetExam(ctx.Request().Context(), pathRef(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, exam)
}

func (api *catalogApi) destroyExam(ctx echo.Context) error {
	if err := api.svc.DeleteExam(ctx.Request().Context(), pathRef(ctx)); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *catalogApi) queryQuestions(ctx echo.Context) error {
	questions, err := api.svc.ListQuestions(ctx.Request().Context(), pathRef(ctx))
	if err != nil {
		return errors.Wrap(err, "querying questions")
	}
	if questions == nil {
		questions = []catalog.Question{}
	}
	return ctx.JSON(http.StatusOK, questions)
}
