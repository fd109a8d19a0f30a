package handler

import (
	"net/http"

	"ecadmin/internal/domain/model"
	"ecadmin/internal/middleware"

	"github.com/labstack/echo/v4"
)

// ログインそのものはIDプロバイダ側。ここではセッションの中身を返すだけ。
type AuthHandler struct {
	isAdmin middleware.AdminPredicate
}

func NewAuthHandler(isAdmin middleware.AdminPredicate) *AuthHandler {
	return &AuthHandler{isAdmin: isAdmin}
}

type MeResponse struct {
	User    model.User `json:"user"`
	IsAdmin bool       `json:"is_admin"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	g := e.Group("/auth", auth, middleware.RequireUser())
	g.GET("/me", h.me)
}

func (h *AuthHandler) me(c echo.Context) error {
	u, ok := middleware.UserFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	return c.JSON(http.StatusOK, MeResponse{User: u, IsAdmin: h.isAdmin(u)})
}
