package repository

import (
	"context"

	"ecadmin/internal/domain/model"
	repo "ecadmin/internal/repository"
)

// DATABASE_URL 未設定のときに使う。保存せず、一覧は常に空。
type auditLogDiscardRepository struct{}

func NewAuditLogDiscardRepository() repo.AuditLogRepository {
	return auditLogDiscardRepository{}
}

func (auditLogDiscardRepository) Create(ctx context.Context, log model.AuditLog) error {
	return nil
}

func (auditLogDiscardRepository) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	return []model.AuditLog{}, nil
}
