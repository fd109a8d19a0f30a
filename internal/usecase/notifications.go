package usecase

import "ecadmin/internal/domain/model"

// 画面に出すアラートの文言。種別ごとに少し違う。
type notificationSet struct {
	// ステータスごとの成功メッセージ。無いものは defaultStatus
	statusTexts   map[string]model.Notification
	defaultStatus model.Notification
}

var (
	notifyStatusFailed = model.Notification{
		Title: "Error!",
		Text:  "Failed to change status",
		Icon:  model.NotificationError,
	}
	notifyDeleted = model.Notification{
		Title: "Deleted!",
		Text:  "The order and customer have been deleted.",
		Icon:  model.NotificationSuccess,
	}
	// 顧客は消さない設定、または注文に顧客がいないとき
	notifyOrderOnlyDeleted = model.Notification{
		Title: "Deleted!",
		Text:  "The order has been deleted.",
		Icon:  model.NotificationSuccess,
	}
	notifyDeleteFailed = model.Notification{
		Title: "Error!",
		Text:  "Failed to delete order.",
		Icon:  model.NotificationError,
	}
	// 注文は消えたが顧客ドキュメントが残った
	notifyCustomerDeleteFailed = model.Notification{
		Title: "Warning",
		Text:  "The order was deleted, but the customer could not be deleted.",
		Icon:  model.NotificationWarning,
	}
)

func success(title, text string) model.Notification {
	return model.Notification{Title: title, Text: text, Icon: model.NotificationSuccess}
}

var orderNotifications = notificationSet{
	statusTexts: map[string]model.Notification{
		string(model.OrderStatusShipped):   success("Order Shipped", "Order has been shipped"),
		string(model.OrderStatusCompleted): success("Success", "Order has been completed"),
	},
	defaultStatus: success("Status Updated", "Status updated."),
}

var rentalNotifications = notificationSet{
	statusTexts: map[string]model.Notification{
		string(model.RentalStatusShipped):    success("Status Updated", "Order has been shipped."),
		string(model.RentalStatusCompleted):  success("Status Updated", "Order has been completed."),
		string(model.RentalStatusReturned):   success("Status Updated", "Order has been returned."),
		string(model.RentalStatusDelayed):    success("Status Updated", "Order has been delayed."),
		string(model.RentalStatusOverdue):    success("Status Updated", "Order is overdue."),
		string(model.RentalStatusExpired):    success("Status Updated", "Order has expired."),
		string(model.RentalStatusPending):    success("Status Updated", "Order is now pending."),
		string(model.RentalStatusConfirmed):  success("Status Updated", "Order has been confirmed."),
		string(model.RentalStatusProcessing): success("Status Updated", "Order is being processed."),
		string(model.RentalStatusActive):     success("Status Updated", "Order is now active."),
		string(model.RentalStatusCancelled):  success("Status Updated", "Order has been cancelled."),
	},
	defaultStatus: success("Status Updated", "Status updated."),
}

func (n notificationSet) statusChanged(status string) model.Notification {
	if msg, ok := n.statusTexts[status]; ok {
		return msg
	}
	return n.defaultStatus
}
