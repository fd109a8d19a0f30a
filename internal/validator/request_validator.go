package validator

import (
	"errors"
	"fmt"
	"strings"

	playground "github.com/go-playground/validator/v10"
)

// 入力が不正
var ErrInvalidInput = errors.New("invalid input")

// RequestValidator は echo.Validator としてリクエストボディを検証する。
type RequestValidator struct {
	v *playground.Validate
}

func New() *RequestValidator {
	return &RequestValidator{v: playground.New(playground.WithRequiredStructEnabled())}
}

// Validate は構造体タグ（validate:"..."）で検証し、
// 失敗したら ErrInvalidInput を包んだ「field: rule」形式のエラーを返す。
func (rv *RequestValidator) Validate(i interface{}) error {
	err := rv.v.Struct(i)
	if err == nil {
		return nil
	}

	var ves playground.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}

	details := make([]string, 0, len(ves))
	for _, fe := range ves {
		details = append(details, fmt.Sprintf("%s: %s", jsonName(fe), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(details, ", "))
}

// フィールド名は小文字で返す（JSONのキーに合わせる）
func jsonName(fe playground.FieldError) string {
	return strings.ToLower(fe.Field())
}
