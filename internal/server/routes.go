package server

import (
	"net/http"

	"ecadmin/internal/domain/model"
	"ecadmin/internal/handler"
	"ecadmin/internal/middleware"

	"github.com/labstack/echo/v4"
)

// Routes はルート登録に必要な部品。
type Routes struct {
	Verifier     *middleware.Verifier
	IsAdmin      middleware.AdminPredicate
	RedirectTo   string
	Auth         *handler.AuthHandler
	Dashboard    *handler.DashboardHandler
	Orders       *handler.AdminOrderHandler[model.Order]
	RentalOrders *handler.AdminOrderHandler[model.RentalOrder]
	AuditLogs    *handler.AuditLogHandler
}

func RegisterRoutes(e *echo.Echo, r Routes) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	auth := middleware.AuthJWT(r.Verifier)
	r.Auth.RegisterRoutes(e, auth)

	//管理画面：未ログイン・非管理者は黙ってリダイレクト
	admin := e.Group("/admin", auth, middleware.AdminGuard(r.IsAdmin, r.RedirectTo))

	r.Dashboard.RegisterRoutes(admin)
	r.Orders.RegisterRoutes(admin, "/orders")
	r.RentalOrders.RegisterRoutes(admin, "/rental-orders")
	r.AuditLogs.RegisterRoutes(admin)
}
