package handler

import (
	"net/http"

	"ecadmin/internal/usecase"

	"github.com/labstack/echo/v4"
)

type DashboardHandler struct {
	uc *usecase.OverviewUsecase
}

func NewDashboardHandler(uc *usecase.OverviewUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) RegisterRoutes(admin *echo.Group) {
	admin.GET("/dashboard", h.summary)
	admin.POST("/dashboard/reload", h.reload)
}

// サマリーカード（注文・レンタル注文・合計）
func (h *DashboardHandler) summary(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.Get())
}

func (h *DashboardHandler) reload(c echo.Context) error {
	if err := h.uc.LoadAll(c.Request().Context()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, h.uc.Get())
}
