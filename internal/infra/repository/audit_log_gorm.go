package repository

import (
	"context"
	"fmt"
	"time"

	"ecadmin/internal/domain/model"
	repo "ecadmin/internal/repository"

	"gorm.io/gorm"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

type auditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) repo.AuditLogRepository {
	return &auditLogGormRepository{db: db}
}

func (r *auditLogGormRepository) Create(ctx context.Context, entry model.AuditLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}

// List は新しい順に返す。条件は AND で重ねる。
func (r *auditLogGormRepository) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	logs := []model.AuditLog{}
	err := r.db.WithContext(ctx).
		Scopes(auditFilterScopes(filter)...).
		Scopes(auditPage(filter.Limit, filter.Offset)).
		Order("created_at DESC").
		Order("id DESC").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return logs, nil
}

func auditFilterScopes(f repo.AuditLogFilter) []func(*gorm.DB) *gorm.DB {
	scopes := []func(*gorm.DB) *gorm.DB{}
	eq := func(column string, v any) {
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where(column+" = ?", v)
		})
	}

	if f.ActorUserID != nil {
		eq("actor_user_id", *f.ActorUserID)
	}
	if f.Action != nil {
		eq("action", string(*f.Action))
	}
	if f.ResourceType != nil {
		eq("resource_type", string(*f.ResourceType))
	}
	if f.ResourceID != nil {
		eq("resource_id", *f.ResourceID)
	}
	if f.CreatedFrom != nil {
		from := *f.CreatedFrom
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("created_at >= ?", from)
		})
	}
	if f.CreatedTo != nil {
		to := *f.CreatedTo
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("created_at <= ?", to)
		})
	}
	return scopes
}

// 範囲外の limit は既定値に寄せる
func auditPage(limit, offset int) func(*gorm.DB) *gorm.DB {
	if limit <= 0 || limit > maxAuditLimit {
		limit = defaultAuditLimit
	}
	if offset < 0 {
		offset = 0
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Limit(limit).Offset(offset)
	}
}
