package handler

import (
	"net/http"

	"ecadmin/internal/domain/model"
	"ecadmin/internal/middleware"
	"ecadmin/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error        string              `json:"error"`
	Notification *model.Notification `json:"notification,omitempty"`
}

// 書き込み系の応答。画面はこのアラートをそのまま表示する
type NotificationResponse struct {
	Notification model.Notification `json:"notification"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// writeNotification は成功なら200、失敗ならエラーのステータスでアラートを一緒に返す。
func writeNotification(c echo.Context, n model.Notification, err error) error {
	if err == nil {
		return c.JSON(http.StatusOK, NotificationResponse{Notification: n})
	}

	he, ok := usecase.AsHTTPError(err)
	if !ok {
		return writeError(c, err)
	}
	res := ErrorResponse{Error: he.Message}
	if n != (model.Notification{}) {
		res.Notification = &n
	}
	return c.JSON(he.Status, res)
}

// 操作した管理者（監査ログ用）
func actorFrom(c echo.Context) (model.User, bool) {
	return middleware.UserFrom(c)
}
