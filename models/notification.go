package models

import "time"

// Notification type constants
const (
	NotificationTypeRequestApproved = "REQUEST_APPROVED"
	NotificationTypeRequestRejected = "REQUEST_REJECTED"
)

// Notification status constants
const (
	NotificationStatusRead   = "READ"
	NotificationStatusUnread = "UNREAD"
)

type Notification struct {
	Notification_ID      int       `json:"notificationId" goqu:"skipinsert"`
	User_Profile_ID      int       `json:"userProfileId"`
	Notification_Type    string    `json:"notificationType"`
	Notification_Message string    `json:"notificationMessage"`
	Notification_Status  string    `json:"notificationStatus"`
	Datetime_Create      time.Time `json:"datetimeCreate" goqu:"skipinsert"`
}
