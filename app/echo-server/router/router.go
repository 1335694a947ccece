package router

import (
	"context"
	"net/http"
	"sort"
	"time"

	"retroFinder/internal/rest"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupFinderRoutes(api *echo.Group, handler *rest.FinderHandler) {
	sessions := api.Group("/finder/sessions")

	sessions.POST("", handler.StartSession)
	sessions.GET("/:id", handler.GetSession)
	sessions.POST("/:id/choices", handler.Choose)
	sessions.POST("/:id/restart", handler.Restart)
	sessions.DELETE("/:id", handler.Abandon)
}

func SetupFinderAdminRoutes(
	api *echo.Group,
	finderHandler *rest.FinderHandler,
	adminHandler *rest.FinderAdminHandler,
	authRequired echo.MiddlewareFunc,
	adminOnly echo.MiddlewareFunc,
) {
	admin := api.Group("/admin/finder", authRequired, adminOnly)

	admin.GET("/config", adminHandler.GetConfig)
	admin.PUT("/config", adminHandler.UpsertConfig)
	admin.GET("/sessions/:id/ranking", finderHandler.DebugRanking)
}

func SetupCatalogRoutes(api *echo.Group, handler *rest.CatalogHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	items := api.Group("/catalog")

	items.GET("", handler.GetAllItems)
	items.GET("/:id", handler.GetItemByID)
	items.POST("", handler.CreateItem, authRequired, adminOnly)
	items.PUT("/:id", handler.UpdateItem, authRequired, adminOnly)
	items.DELETE("/:id", handler.DeleteItem, authRequired, adminOnly)
}

const healthTimeout = 2 * time.Second

// SetupOpsRoutes exposes Prometheus metrics and a health check. Every named
// check must pass for /healthz to answer 200.
func SetupOpsRoutes(e *echo.Echo, checks map[string]func(context.Context) error) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/healthz", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
		defer cancel()

		failed := []string{}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				failed = append(failed, name)
			}
		}
		sort.Strings(failed)

		if len(failed) > 0 {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "degraded", "failed": failed})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
}
