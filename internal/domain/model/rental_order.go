package model

import "time"

type RentalStatus string

const (
	RentalStatusPending    RentalStatus = "pending"
	RentalStatusConfirmed  RentalStatus = "confirmed"
	RentalStatusProcessing RentalStatus = "processing"
	RentalStatusShipped    RentalStatus = "shipped"
	RentalStatusDelivered  RentalStatus = "delivered"
	RentalStatusActive     RentalStatus = "active"
	RentalStatusCompleted  RentalStatus = "completed"
	RentalStatusReturned   RentalStatus = "returned"
	RentalStatusCancelled  RentalStatus = "cancelled"
	RentalStatusDelayed    RentalStatus = "delayed"
	RentalStatusOverdue    RentalStatus = "overdue"
	RentalStatusExpired    RentalStatus = "expired"
)

var RentalStatuses = []RentalStatus{
	RentalStatusPending,
	RentalStatusConfirmed,
	RentalStatusProcessing,
	RentalStatusShipped,
	RentalStatusDelivered,
	RentalStatusActive,
	RentalStatusCompleted,
	RentalStatusReturned,
	RentalStatusCancelled,
	RentalStatusDelayed,
	RentalStatusOverdue,
	RentalStatusExpired,
}

// レンタル注文。開始日/終了日は日付のみの文字列で届くので string のまま持つ。
type RentalOrder struct {
	ID                string          `json:"_id"`
	RentalStartDate   string          `json:"rentalStartDate"`
	RentalEndDate     string          `json:"rentalEndDate"`
	Product           Reference       `json:"product"`
	ProductImage      *ProductImage   `json:"productImage"`
	Quantity          int             `json:"quantity"`
	TotalPrice        float64         `json:"totalPrice"`
	RentalPricePerDay float64         `json:"rentalPricePerDay"`
	TotalDays         int             `json:"totalDays"`
	Status            RentalStatus    `json:"status"`
	CreatedAt         time.Time       `json:"_createdAt"`
	UpdatedAt         time.Time       `json:"_updatedAt"`
	Customer          *RentalCustomer `json:"customerId"`
}

type ProductImage struct {
	Type  string      `json:"_type"`
	Asset *ImageAsset `json:"asset"`
}

type ImageAsset struct {
	ID  string `json:"_id"`
	URL string `json:"url"`
}

// レンタル注文の顧客スナップショット
type RentalCustomer struct {
	ID        string    `json:"_id"`
	Type      string    `json:"_type"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Country   string    `json:"country"`
	ZipCode   string    `json:"zipCode"`
	CreatedAt time.Time `json:"_createdAt"`
}
