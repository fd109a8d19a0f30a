package model

// IDプロバイダのセッションから取り出したログインユーザー
type User struct {
	ID           string `json:"id"`
	PrimaryEmail string `json:"primary_email"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
}
