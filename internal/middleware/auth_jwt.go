package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"ecadmin/internal/domain/model"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const (
	CtxUserKey = "user" // model.User

	// IDプロバイダがブラウザに置くセッションcookie
	SessionCookieName = "__session"
)

var ErrInvalidToken = errors.New("invalid session token")

// Verifier はIDプロバイダが発行したセッションJWTを検証する。
// 公開鍵があれば RS256、なければ共有シークレットで HS256。
type Verifier struct {
	method jwt.SigningMethod
	key    interface{}
}

func NewVerifier(secret string, publicKeyPEM string) (*Verifier, error) {
	if publicKeyPEM != "" {
		pub, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("parse jwt public key: %w", err)
		}
		return &Verifier{method: jwt.SigningMethodRS256, key: pub}, nil
	}
	if secret == "" {
		return nil, errors.New("jwt secret or public key is required")
	}
	return &Verifier{method: jwt.SigningMethodHS256, key: []byte(secret)}, nil
}

// Verify はトークンを検証してユーザーを取り出す。
func (v *Verifier) Verify(rawToken string) (model.User, error) {
	token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != v.method.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return v.key, nil
	})
	if err != nil || token == nil || !token.Valid {
		return model.User{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.User{}, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return model.User{}, ErrInvalidToken
	}

	//メールはプロバイダによって claim 名が違う
	email := claimString(claims, "primary_email")
	if email == "" {
		email = claimString(claims, "email")
	}

	return model.User{
		ID:           sub,
		PrimaryEmail: email,
		FirstName:    claimString(claims, "first_name"),
		LastName:     claimString(claims, "last_name"),
	}, nil
}

// AuthJWT はセッションがあればユーザーを context に入れる。無効・無しでも止めない。
// 止めるのは RequireUser / AdminGuard の役目。
func AuthJWT(v *Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawToken := extractToken(c)
			if rawToken == "" {
				return next(c)
			}

			user, err := v.Verify(rawToken)
			if err != nil {
				log.Debug().Err(err).Msg("session token rejected")
				return next(c)
			}

			c.Set(CtxUserKey, user)
			return next(c)
		}
	}
}

// RequireUser はログインしていなければ401を返す。
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := UserFrom(c); !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			return next(c)
		}
	}
}

// UserFrom は context からログインユーザーを取り出す。
func UserFrom(c echo.Context) (model.User, bool) {
	u, ok := c.Get(CtxUserKey).(model.User)
	if !ok || u.ID == "" {
		return model.User{}, false
	}
	return u, true
}

// Authorization: Bearer を優先し、無ければセッションcookie
func extractToken(c echo.Context) string {
	if authz := c.Request().Header.Get("Authorization"); authz != "" {
		parts := strings.SplitN(authz, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}

	if ck, err := c.Cookie(SessionCookieName); err == nil {
		return strings.TrimSpace(ck.Value)
	}
	return ""
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

func claimString(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}
