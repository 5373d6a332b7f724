package services

import (
	"fmt"
	"log"

	"github.com/StockRoom/initializers"
	"github.com/StockRoom/models"
	"github.com/doug-martin/goqu/v9"
)

// NotifyRequestDecision records an in-app notification for the requester and
// fires a push to their devices. Called in a detached goroutine after an
// approve/reject response has been sent; every failure here is log-only.
func NotifyRequestDecision(requestedBy string, requestID int, itemName string, quantity int, status string) {
	var userID int
	found, err := initializers.DB.From("user_profile").
		Select("user_profile_id").
		Where(goqu.C("username").Eq(requestedBy)).
		ScanVal(&userID)
	if err != nil || !found {
		log.Printf("Skipping request decision notification, no user for %q: %v", requestedBy, err)
		return
	}

	notifType := models.NotificationTypeRequestApproved
	verb := "approved"
	if status == models.RequestStatusRejected {
		notifType = models.NotificationTypeRequestRejected
		verb = "rejected"
	}
	message := fmt.Sprintf("Your request for %d x %s was %s.", quantity, itemName, verb)

	notification := models.Notification{
		User_Profile_ID:      userID,
		Notification_Type:    notifType,
		Notification_Message: message,
		Notification_Status:  models.NotificationStatusUnread,
	}

	insert := initializers.DB.Insert("notification").Rows(notification).Executor()
	if _, err := insert.Exec(); err != nil {
		log.Printf("Failed to store request decision notification for user %d: %v", userID, err)
	}

	push := GetPushNotificationService()
	if push == nil {
		return
	}

	payload := NotificationPayload{
		Title: "Request " + verb,
		Body:  message,
		Data: map[string]string{
			"type":      notifType,
			"requestId": fmt.Sprintf("%d", requestID),
		},
	}

	if err := push.SendNotificationToUser(userID, payload); err != nil {
		log.Printf("Failed to push request decision to user %d: %v", userID, err)
	}
}
