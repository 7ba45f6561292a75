package enum

import (
	"encoding/json"
)

// NotificationType represents the category of a notification
type NotificationType string

const (
	NotificationTypeLowStock    NotificationType = "Low Stock"
	NotificationTypeSystemAlert NotificationType = "System Alert"
	NotificationTypePaymentDue  NotificationType = "Payment Due"
	NotificationTypeOther       NotificationType = "Other"
)

func (t NotificationType) String() string {
	return string(t)
}

func (t NotificationType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *NotificationType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch NotificationType(str) {
	case NotificationTypeLowStock, NotificationTypeSystemAlert, NotificationTypePaymentDue:
		*t = NotificationType(str)
	default:
		*t = NotificationTypeOther
	}
	return nil
}

