package model

import "time"

// ステータス変更、削除など。
type AuditAction string

const (
	//注文ステータスを更新した操作。
	AuditActionUpdateStatus AuditAction = "UPDATE_STATUS"
	//注文を削除した操作。
	AuditActionDeleteOrder AuditAction = "DELETE_ORDER"
	//注文に紐づく顧客を削除した操作。
	AuditActionDeleteCustomer AuditAction = "DELETE_CUSTOMER"
)

// 何に対する操作か（バックエンドのドキュメント型）
type AuditResourceType string

const (
	AuditResourceOrder          AuditResourceType = "order"
	AuditResourceRentalOrder    AuditResourceType = "rentalOrder"
	AuditResourceCustomer       AuditResourceType = "customer"
	AuditResourceRentalCustomer AuditResourceType = "rentalCustomer"
)

// 監査ログ（管理者操作ログ）。
// 「誰が」「何を」「どの対象に」「どう変えたか」を残す。
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//操作した管理者（IDプロバイダのユーザーID）。
	ActorUserID string `gorm:"type:varchar(255);not null;index" json:"actor_user_id"`
	ActorEmail  string `gorm:"type:varchar(255);not null" json:"actor_email"`

	Action AuditAction `gorm:"type:varchar(50);not null;index" json:"action"`

	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`

	//対象ドキュメントの_id。
	ResourceID string `gorm:"type:varchar(255);not null;index" json:"resource_id"`

	//JSON文字列で保存する。
	BeforeJSON string `gorm:"type:text" json:"before_json"`
	AfterJSON  string `gorm:"type:text" json:"after_json"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
