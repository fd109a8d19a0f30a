package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"ecadmin/internal/domain/model"
	"ecadmin/internal/domain/orderview"
	repo "ecadmin/internal/repository"

	"github.com/rs/zerolog/log"
)

type Clock interface {
	Now() time.Time
}

// Dashboard は1種別（注文 or レンタル注文）の一覧スナップショットを持ち、
// Engine を通して絞り込み・ステータス変更・削除を行う。
//
// スナップショットは明示的な再読込か、バックエンドへの書き込み成功後のローカル更新でしか変わらない。
// バックエンド呼び出し自体は直列化しない（同じ注文への同時削除はバックエンド側で吸収される）。
type Dashboard[T any] struct {
	engine    *orderview.Engine[T]
	store     repo.DocumentRepository[T]
	auditRepo repo.AuditLogRepository
	clock     Clock

	resource         model.AuditResourceType
	customerResource model.AuditResourceType
	messages         notificationSet

	mu       sync.RWMutex
	records  []T
	loadedAt time.Time
}

// 一覧画面1回分の表示内容
type DashboardView[T any] struct {
	Records       []T               `json:"records"`
	Metrics       orderview.Metrics `json:"metrics"`
	Filter        string            `json:"filter"`
	Query         string            `json:"query"`
	StatusOptions []string          `json:"status_options"`
	LoadedAt      *time.Time        `json:"loaded_at"`
}

func NewOrderDashboard(
	store repo.DocumentRepository[model.Order],
	auditRepo repo.AuditLogRepository,
	clock Clock,
	opts ...orderview.Option,
) *Dashboard[model.Order] {
	return &Dashboard[model.Order]{
		engine:           orderview.NewEngine(orderview.OrderKind, store, opts...),
		store:            store,
		auditRepo:        auditRepo,
		clock:            clock,
		resource:         model.AuditResourceOrder,
		customerResource: model.AuditResourceCustomer,
		messages:         orderNotifications,
		records:          []model.Order{},
	}
}

func NewRentalOrderDashboard(
	store repo.DocumentRepository[model.RentalOrder],
	auditRepo repo.AuditLogRepository,
	clock Clock,
	opts ...orderview.Option,
) *Dashboard[model.RentalOrder] {
	return &Dashboard[model.RentalOrder]{
		engine:           orderview.NewEngine(orderview.RentalOrderKind, store, opts...),
		store:            store,
		auditRepo:        auditRepo,
		clock:            clock,
		resource:         model.AuditResourceRentalOrder,
		customerResource: model.AuditResourceRentalCustomer,
		messages:         rentalNotifications,
		records:          []model.RentalOrder{},
	}
}

func (d *Dashboard[T]) Kind() orderview.Kind[T] {
	return d.engine.Kind()
}

// Load はバックエンドから全件を取り直してスナップショットを差し替える。
// 失敗したら前のスナップショット（初回なら空）のまま。
func (d *Dashboard[T]) Load(ctx context.Context) error {
	kind := d.engine.Kind().Name

	records, err := d.store.FetchAll(ctx)
	if err != nil {
		log.Error().Err(err).Str("kind", kind).Msg("failed to fetch documents")
		return NewHTTPError(http.StatusBadGateway, "failed to fetch "+kind+" documents")
	}

	d.mu.Lock()
	d.records = records
	d.loadedAt = d.clock.Now()
	d.mu.Unlock()

	log.Info().Str("kind", kind).Int("count", len(records)).Msg("documents loaded")
	return nil
}

// Snapshot は現在の一覧のコピーを返す。
func (d *Dashboard[T]) Snapshot() []T {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]T, len(d.records))
	copy(out, d.records)
	return out
}

// Metrics は絞り込み前の全件から計算したサマリー。
func (d *Dashboard[T]) Metrics() orderview.Metrics {
	return d.engine.Aggregate(d.Snapshot())
}

// View はステータス絞り込みと顧客検索をかけた一覧を返す。filter が空なら "All"。
func (d *Dashboard[T]) View(filter string, query string) DashboardView[T] {
	if filter == "" {
		filter = orderview.FilterAll
	}

	d.mu.RLock()
	all := make([]T, len(d.records))
	copy(all, d.records)
	loadedAt := d.loadedAt
	d.mu.RUnlock()

	v := DashboardView[T]{
		Records:       d.engine.View(all, filter, query),
		Metrics:       d.engine.Aggregate(all),
		Filter:        filter,
		Query:         query,
		StatusOptions: d.engine.Kind().FilterOptions(),
	}
	if !loadedAt.IsZero() {
		v.LoadedAt = &loadedAt
	}
	return v
}

// UpdateStatus はバックエンドを更新し、成功したら一覧の対象1件だけ書き換える。
// 戻り値の Notification は成功・失敗どちらでも画面に出すもの。
func (d *Dashboard[T]) UpdateStatus(ctx context.Context, actor model.User, id string, status string) (model.Notification, error) {
	kind := d.engine.Kind()

	newStatus, ok := kind.CanonicalStatus(status)
	if !ok {
		return model.Notification{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	before, found := d.engine.Find(d.Snapshot(), id)
	if !found {
		return model.Notification{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	beforeStatus := kind.Status(before)

	if _, err := d.engine.ApplyStatusTransition(ctx, []T{before}, id, newStatus); err != nil {
		log.Error().Err(err).Str("kind", kind.Name).Str("id", id).Str("status", newStatus).Msg("failed to change status")
		return notifyStatusFailed, NewHTTPError(http.StatusBadGateway, "failed to change status")
	}

	//成功してから最新のスナップショットに当てる
	d.mu.Lock()
	d.records = d.engine.WithStatus(d.records, id, newStatus)
	d.mu.Unlock()

	d.audit(ctx, model.AuditLog{
		ActorUserID:  actor.ID,
		ActorEmail:   actor.PrimaryEmail,
		Action:       model.AuditActionUpdateStatus,
		ResourceType: d.resource,
		ResourceID:   id,
		BeforeJSON:   statusJSON(beforeStatus),
		AfterJSON:    statusJSON(newStatus),
	})

	return d.messages.statusChanged(newStatus), nil
}

// Complete は「完了」ボタン。種別の完了ステータスへ変更する。
func (d *Dashboard[T]) Complete(ctx context.Context, actor model.User, id string) (model.Notification, error) {
	return d.UpdateStatus(ctx, actor, id, d.engine.Kind().CompletedStatus)
}

// Delete は注文 → 顧客の順に削除する。
// 顧客の削除だけ失敗したときは、注文は一覧から外したうえで警告とエラーを返す。
func (d *Dashboard[T]) Delete(ctx context.Context, actor model.User, id string) (model.Notification, error) {
	kind := d.engine.Kind()

	target, found := d.engine.Find(d.Snapshot(), id)
	if !found {
		return model.Notification{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	customerID := kind.CustomerID(target)

	_, err := d.engine.ApplyDeletion(ctx, []T{target}, id)
	if errors.Is(err, orderview.ErrOrderDelete) {
		log.Error().Err(err).Str("kind", kind.Name).Str("id", id).Msg("failed to delete order")
		return notifyDeleteFailed, NewHTTPError(http.StatusBadGateway, "failed to delete order")
	}

	//注文の削除は成功している
	d.mu.Lock()
	d.records = d.engine.Without(d.records, id)
	d.mu.Unlock()

	d.audit(ctx, model.AuditLog{
		ActorUserID:  actor.ID,
		ActorEmail:   actor.PrimaryEmail,
		Action:       model.AuditActionDeleteOrder,
		ResourceType: d.resource,
		ResourceID:   id,
		BeforeJSON:   recordJSON(target),
	})

	if errors.Is(err, orderview.ErrCustomerDelete) {
		log.Warn().Err(err).Str("kind", kind.Name).Str("id", id).Str("customer_id", customerID).
			Msg("order deleted but customer delete failed")
		return notifyCustomerDeleteFailed, NewHTTPError(http.StatusBadGateway, "failed to delete customer")
	}
	if err != nil {
		log.Error().Err(err).Str("kind", kind.Name).Str("id", id).Msg("unexpected delete error")
		return notifyDeleteFailed, NewHTTPError(http.StatusBadGateway, "failed to delete order")
	}

	if !d.engine.CascadesCustomer(target) {
		return notifyOrderOnlyDeleted, nil
	}

	d.audit(ctx, model.AuditLog{
		ActorUserID:  actor.ID,
		ActorEmail:   actor.PrimaryEmail,
		Action:       model.AuditActionDeleteCustomer,
		ResourceType: d.customerResource,
		ResourceID:   customerID,
	})
	return notifyDeleted, nil
}

// 監査ログの失敗は画面には出さない
func (d *Dashboard[T]) audit(ctx context.Context, entry model.AuditLog) {
	entry.CreatedAt = d.clock.Now()
	if err := d.auditRepo.Create(ctx, entry); err != nil {
		log.Warn().Err(err).Str("action", string(entry.Action)).Str("resource_id", entry.ResourceID).
			Msg("failed to write audit log")
	}
}

func statusJSON(status string) string {
	b, _ := json.Marshal(map[string]string{"status": status})
	return string(b)
}

func recordJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
