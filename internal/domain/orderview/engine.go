package orderview

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ステータス絞り込みで「全件」を表す値
const FilterAll = "All"

var (
	ErrStatusPatch    = errors.New("remote status update failed")
	ErrOrderDelete    = errors.New("remote order delete failed")
	ErrCustomerDelete = errors.New("remote customer delete failed")
)

// Remote はバックエンドへの書き込み（ステータス更新・削除）の約束。
type Remote interface {
	PatchStatus(ctx context.Context, id string, status string) error
	Delete(ctx context.Context, id string) error
}

// 顧客数の数え方
type CustomerCountMode string

const (
	// 顧客IDで数える（顧客IDが無いレコードはレコードIDで代用）
	CountByCustomer CustomerCountMode = "customer"
	// レコードIDで数える（＝注文数と同じになる）
	CountByRecord CustomerCountMode = "order"
)

// ParseCustomerCountMode は設定値をモードに変換する。空文字は CountByCustomer。
func ParseCustomerCountMode(s string) (CustomerCountMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(CountByCustomer):
		return CountByCustomer, nil
	case string(CountByRecord):
		return CountByRecord, nil
	default:
		return "", fmt.Errorf("unknown customer count mode %q", s)
	}
}

// Metrics はサマリーカードに出す集計値。常に絞り込み前の全件から計算する。
type Metrics struct {
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	OrderCount    int             `json:"order_count"`
	CustomerCount int             `json:"customer_count"`
	PendingCount  int             `json:"pending_count"`
}

// Add は2種別のサマリーを合算する（ダッシュボードの全体カード用）。
// 顧客ドキュメントは種別ごとに別なので、顧客数は単純に足す。
func (m Metrics) Add(o Metrics) Metrics {
	return Metrics{
		TotalRevenue:  m.TotalRevenue.Add(o.TotalRevenue),
		OrderCount:    m.OrderCount + o.OrderCount,
		CustomerCount: m.CustomerCount + o.CustomerCount,
		PendingCount:  m.PendingCount + o.PendingCount,
	}
}

// Engine は注文一覧の集計・絞り込み・ステータス変更・削除をまとめたもの。
// 注文とレンタル注文は Kind を差し替えて同じ Engine で扱う。
type Engine[T any] struct {
	kind            Kind[T]
	remote          Remote
	countMode       CustomerCountMode
	deleteCustomers bool
}

type Option func(*engineOptions)

type engineOptions struct {
	countMode       CustomerCountMode
	deleteCustomers bool
}

// WithCustomerCountMode は顧客数の数え方を切り替える。
func WithCustomerCountMode(mode CustomerCountMode) Option {
	return func(o *engineOptions) {
		o.countMode = mode
	}
}

// WithCustomerCascade は注文削除のあとに顧客ドキュメントも消すかどうか。
func WithCustomerCascade(enabled bool) Option {
	return func(o *engineOptions) {
		o.deleteCustomers = enabled
	}
}

func NewEngine[T any](kind Kind[T], remote Remote, opts ...Option) *Engine[T] {
	o := engineOptions{
		countMode:       CountByCustomer,
		deleteCustomers: true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Engine[T]{
		kind:            kind,
		remote:          remote,
		countMode:       o.countMode,
		deleteCustomers: o.deleteCustomers,
	}
}

func (e *Engine[T]) Kind() Kind[T] {
	return e.kind
}

// FilterByStatus は "All"（大文字小文字は問わない）なら全件、それ以外は大文字小文字を無視して一致するものだけ返す。
// 未知のステータスはエラーにせず空を返す。
func (e *Engine[T]) FilterByStatus(records []T, filter string) []T {
	if strings.EqualFold(filter, FilterAll) {
		return records
	}

	out := make([]T, 0, len(records))
	for _, r := range records {
		if strings.EqualFold(e.kind.Status(r), filter) {
			out = append(out, r)
		}
	}
	return out
}

// SearchByCustomer は顧客の氏名・メール・電話番号の部分一致で絞り込む。
func (e *Engine[T]) SearchByCustomer(records []T, query string) []T {
	if query == "" {
		return records
	}
	q := strings.ToLower(query)

	out := make([]T, 0, len(records))
	for _, r := range records {
		fields, ok := e.kind.SearchFields(r)
		if !ok {
			//顧客スナップショットが無いものはヒットしない
			continue
		}
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), q) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// View はステータス絞り込み → 顧客検索の順で適用する。
func (e *Engine[T]) View(records []T, filter string, query string) []T {
	return e.SearchByCustomer(e.FilterByStatus(records, filter), query)
}

// Aggregate は毎回全件から計算し直す。
func (e *Engine[T]) Aggregate(records []T) Metrics {
	revenue := decimal.Zero
	customers := make(map[string]struct{}, len(records))
	pending := 0

	for _, r := range records {
		revenue = revenue.Add(decimal.NewFromFloat(e.kind.TotalPrice(r)))

		key := e.kind.ID(r)
		if e.countMode == CountByCustomer {
			if cid := e.kind.CustomerID(r); cid != "" {
				key = cid
			}
		}
		customers[key] = struct{}{}

		if strings.EqualFold(e.kind.Status(r), e.kind.PendingStatus) {
			pending++
		}
	}

	return Metrics{
		TotalRevenue:  revenue.Round(2),
		OrderCount:    len(records),
		CustomerCount: len(customers),
		PendingCount:  pending,
	}
}

// ApplyStatusTransition はバックエンドの更新が成功してから、対象1件のステータスだけ差し替えた新しいスライスを返す。
// 失敗したときは入力をそのまま返す。遷移の制約は設けない。
func (e *Engine[T]) ApplyStatusTransition(ctx context.Context, records []T, id string, newStatus string) ([]T, error) {
	if err := e.remote.PatchStatus(ctx, id, newStatus); err != nil {
		return records, fmt.Errorf("%w: %s: %w", ErrStatusPatch, id, err)
	}
	return e.WithStatus(records, id, newStatus), nil
}

// WithStatus は対象1件のステータスを差し替えたコピーを返す（リモート呼び出しなし）。
func (e *Engine[T]) WithStatus(records []T, id string, newStatus string) []T {
	out := make([]T, len(records))
	for i, r := range records {
		if e.kind.ID(r) == id {
			out[i] = e.kind.WithStatus(r, newStatus)
			continue
		}
		out[i] = r
	}
	return out
}

// ApplyDeletion は注文 → 顧客の順にバックエンドから削除する。
// 2つの削除にトランザクションは無い。注文の削除が成功していれば、顧客の削除に失敗しても一覧からは外し、
// ErrCustomerDelete を返す（顧客ドキュメントは残ったままになる）。
func (e *Engine[T]) ApplyDeletion(ctx context.Context, records []T, id string) ([]T, error) {
	customerID := e.CustomerIDOf(records, id)

	if err := e.remote.Delete(ctx, id); err != nil {
		return records, fmt.Errorf("%w: %s: %w", ErrOrderDelete, id, err)
	}

	out := e.Without(records, id)

	if e.deleteCustomers && customerID != "" {
		if err := e.remote.Delete(ctx, customerID); err != nil {
			return out, fmt.Errorf("%w: %s: %w", ErrCustomerDelete, customerID, err)
		}
	}
	return out, nil
}

// CascadesCustomer は ApplyDeletion がこのレコードの顧客ドキュメントも消すかどうか。
func (e *Engine[T]) CascadesCustomer(record T) bool {
	return e.deleteCustomers && e.kind.CustomerID(record) != ""
}

// Without は対象を取り除いたコピーを返す（リモート呼び出しなし）。
func (e *Engine[T]) Without(records []T, id string) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if e.kind.ID(r) != id {
			out = append(out, r)
		}
	}
	return out
}

// CustomerIDOf は一覧の中の対象レコードの顧客IDを返す。
func (e *Engine[T]) CustomerIDOf(records []T, id string) string {
	for _, r := range records {
		if e.kind.ID(r) == id {
			return e.kind.CustomerID(r)
		}
	}
	return ""
}

// Find は一覧から対象を探す。
func (e *Engine[T]) Find(records []T, id string) (T, bool) {
	for _, r := range records {
		if e.kind.ID(r) == id {
			return r, true
		}
	}
	var zero T
	return zero, false
}
