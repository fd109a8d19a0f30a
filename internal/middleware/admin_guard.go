package middleware

import (
	"net/http"

	"ecadmin/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// AdminPredicate はユーザーが管理画面に入れるかどうかを判定する。
type AdminPredicate func(model.User) bool

// EmailAdmin は主メールアドレスが設定値と完全一致（大文字小文字も区別）したら管理者とみなす。
// 設定値が空なら誰も一致しない。
func EmailAdmin(adminEmail string) AdminPredicate {
	return func(u model.User) bool {
		if adminEmail == "" {
			return false
		}
		return u.PrimaryEmail == adminEmail
	}
}

// AdminGuard は未ログイン・非管理者をエラーを出さずに redirectTo へ飛ばす。
func AdminGuard(isAdmin AdminPredicate, redirectTo string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := UserFrom(c)
			if !ok || !isAdmin(user) {
				return c.Redirect(http.StatusFound, redirectTo)
			}
			return next(c)
		}
	}
}
