package handler

import (
	"net/http"

	"ecadmin/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AdminOrderHandler は注文・レンタル注文の一覧と操作API。種別ごとに1つ作る。
type AdminOrderHandler[T any] struct {
	uc *usecase.Dashboard[T]
}

func NewAdminOrderHandler[T any](uc *usecase.Dashboard[T]) *AdminOrderHandler[T] {
	return &AdminOrderHandler[T]{uc: uc}
}

type OrderStatusUpdateRequest struct {
	Status string `json:"status" validate:"required,max=32"`
}

// RegisterRoutes は認可済みの admin グループの下に prefix（/orders など）でぶら下げる。
func (h *AdminOrderHandler[T]) RegisterRoutes(admin *echo.Group, prefix string) {
	g := admin.Group(prefix)

	g.GET("", h.list)
	g.POST("/reload", h.reload)
	g.PUT("/:id/status", h.updateStatus)
	g.POST("/:id/complete", h.complete)
	g.DELETE("/:id", h.delete)
}

// GET ?status=&q=
func (h *AdminOrderHandler[T]) list(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.View(c.QueryParam("status"), c.QueryParam("q")))
}

// バックエンドから取り直して、絞り込みなしの一覧を返す
func (h *AdminOrderHandler[T]) reload(c echo.Context) error {
	if err := h.uc.Load(c.Request().Context()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, h.uc.View("", ""))
}

func (h *AdminOrderHandler[T]) updateStatus(c echo.Context) error {
	var req OrderStatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	n, err := h.uc.UpdateStatus(c.Request().Context(), actor, c.Param("id"), req.Status)
	return writeNotification(c, n, err)
}

func (h *AdminOrderHandler[T]) complete(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	n, err := h.uc.Complete(c.Request().Context(), actor, c.Param("id"))
	return writeNotification(c, n, err)
}

func (h *AdminOrderHandler[T]) delete(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	n, err := h.uc.Delete(c.Request().Context(), actor, c.Param("id"))
	return writeNotification(c, n, err)
}
