package model

type NotificationIcon string

const (
	NotificationSuccess NotificationIcon = "success"
	NotificationError   NotificationIcon = "error"
	NotificationWarning NotificationIcon = "warning"
)

// 管理画面に出すアラート（タイトル・本文・アイコン）
type Notification struct {
	Title string           `json:"title"`
	Text  string           `json:"text"`
	Icon  NotificationIcon `json:"icon"`
}
