package echoapi

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/catalog"
	"github.com/trezcool/darasa/core/navigator"
)

type navApi struct {
	svc *catalog.Service
	log core.Logger

	mu    sync.Mutex
	views map[string]*navigator.TreeView // keyed by (user, curriculum)
}

func registerNavAPI(g *echo.Group, authed echo.MiddlewareFunc, svc *catalog.Service, log core.Logger) {
	api := navApi{
		svc:   svc,
		log:   log,
		views: make(map[string]*navigator.TreeView),
	}

	ng := g.Group("/nav/:curriculum", authed)
	ng.GET("", api.view)
	ng.POST("/select", api.selectCard)
	ng.POST("/back", api.goBack)
	ng.POST("/reset", api.reset)
}

// treeView returns the caller's navigation view for the curriculum, creating
// it on first use. Each (user, curriculum) pair drills down independently.
func (api *navApi) treeView(ctx echo.Context) (*navigator.TreeView, error) {
	usr, err := getContextUser(ctx)
	if err != nil {
		return nil, err
	}
	cur, err := catalog.GetCurriculum(ctx.Param("curriculum"))
	if err != nil {
		return nil, err
	}

	key := usr.ID + "|" + cur.ID
	api.mu.Lock()
	defer api.mu.Unlock()
	tv, ok := api.views[key]
	if !ok {
		tv = navigator.NewTreeView(navigator.NewMachine(cur), api.svc, api.log)
		api.views[key] = tv
	}
	return tv, nil
}

// Handlers

func (api *navApi) view(ctx echo.Context) error {
	tv, err := api.treeView(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tv.Render(ctx.Request().Context()))
}

func (api *navApi) selectCard(ctx echo.Context) error {
	var data SelectRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SelectRequest")
	}

	tv, err := api.treeView(ctx)
	if err != nil {
		return err
	}
	level := catalog.LevelFromString(data.Level)
	if level == 0 {
		return core.NewValidationError(nil, core.FieldError{Field: "level", Error: "unknown level"})
	}
	if err := tv.Machine().Select(level, data.Value); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tv.Render(ctx.Request().Context()))
}

func (api *navApi) goBack(ctx echo.Context) error {
	tv, err := api.treeView(ctx)
	if err != nil {
		return err
	}
	// going back on an empty history is a no-op, not an error
	tv.Machine().GoBack()
	return ctx.JSON(http.StatusOK, tv.Render(ctx.Request().Context()))
}

func (api *navApi) reset(ctx echo.Context) error {
	tv, err := api.treeView(ctx)
	if err != nil {
		return err
	}
	tv.Machine().Reset()
	return ctx.JSON(http.StatusOK, tv.Render(ctx.Request().Context()))
}
