package model

// 注文の明細（カートの1行）
type CartItem struct {
	ID    string    `json:"_id"`
	Title string    `json:"title"`
	Price float64   `json:"price"`
	Image Reference `json:"image"`
}
