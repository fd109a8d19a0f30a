package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// 注文ステータスのプルダウン表示順
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusCompleted,
	OrderStatusShipped,
	OrderStatusCancelled,
}

// ストアフロントの注文ドキュメント（customerは参照を展開したもの）
type Order struct {
	ID         string      `json:"_id"`
	CreatedAt  time.Time   `json:"_createdAt"`
	UpdatedAt  time.Time   `json:"_updatedAt"`
	Status     OrderStatus `json:"status"`
	TotalPrice float64     `json:"totalPrice"`
	UserID     string      `json:"userId"`
	CartItems  []CartItem  `json:"cartItems"`
	Customer   *Customer   `json:"customer"`
}

// 注文時点の顧客スナップショット
type Customer struct {
	ID            string `json:"_id"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	StreetAddress string `json:"streetAddress"`
}

// FullName は「名 姓」を返す。
func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
