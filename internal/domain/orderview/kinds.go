package orderview

import (
	"strings"

	"ecadmin/internal/domain/model"
)

// Kind は Engine が扱うレコード種別ごとの差分（ステータス一覧と各フィールドの読み方）。
type Kind[T any] struct {
	// バックエンドのドキュメント型（"order" / "rentalOrder"）
	Name string

	Statuses        []string
	PendingStatus   string
	CompletedStatus string

	ID         func(T) string
	Status     func(T) string
	TotalPrice func(T) float64
	// 顧客IDが無いときは ""
	CustomerID func(T) string
	// 検索対象（氏名・メール・電話）。顧客スナップショットが無いときは false
	SearchFields func(T) ([]string, bool)
	// ステータスだけ差し替えたコピー
	WithStatus func(T, string) T
}

// CanonicalStatus はプルダウンの値と大文字小文字を無視して照合し、正規の表記を返す。
func (k Kind[T]) CanonicalStatus(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, st := range k.Statuses {
		if strings.EqualFold(st, s) {
			return st, true
		}
	}
	return "", false
}

// FilterOptions はステータス絞り込みの選択肢（先頭は "All"）。
func (k Kind[T]) FilterOptions() []string {
	out := make([]string, 0, len(k.Statuses)+1)
	out = append(out, FilterAll)
	return append(out, k.Statuses...)
}

var OrderKind = Kind[model.Order]{
	Name:            "order",
	Statuses:        statusStrings(model.OrderStatuses),
	PendingStatus:   string(model.OrderStatusPending),
	CompletedStatus: string(model.OrderStatusCompleted),

	ID:         func(o model.Order) string { return o.ID },
	Status:     func(o model.Order) string { return string(o.Status) },
	TotalPrice: func(o model.Order) float64 { return o.TotalPrice },
	CustomerID: func(o model.Order) string {
		if o.Customer == nil {
			return ""
		}
		return o.Customer.ID
	},
	SearchFields: func(o model.Order) ([]string, bool) {
		if o.Customer == nil {
			return nil, false
		}
		return []string{o.Customer.FullName(), o.Customer.Email, o.Customer.Phone}, true
	},
	WithStatus: func(o model.Order, s string) model.Order {
		o.Status = model.OrderStatus(s)
		return o
	},
}

var RentalOrderKind = Kind[model.RentalOrder]{
	Name:            "rentalOrder",
	Statuses:        statusStrings(model.RentalStatuses),
	PendingStatus:   string(model.RentalStatusPending),
	CompletedStatus: string(model.RentalStatusCompleted),

	ID:         func(o model.RentalOrder) string { return o.ID },
	Status:     func(o model.RentalOrder) string { return string(o.Status) },
	TotalPrice: func(o model.RentalOrder) float64 { return o.TotalPrice },
	CustomerID: func(o model.RentalOrder) string {
		if o.Customer == nil {
			return ""
		}
		return o.Customer.ID
	},
	SearchFields: func(o model.RentalOrder) ([]string, bool) {
		if o.Customer == nil {
			return nil, false
		}
		return []string{o.Customer.FullName, o.Customer.Email, o.Customer.Phone}, true
	},
	WithStatus: func(o model.RentalOrder, s string) model.RentalOrder {
		o.Status = model.RentalStatus(s)
		return o
	},
}

func statusStrings[S ~string](in []S) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = string(s)
	}
	return out
}
