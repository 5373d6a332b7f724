package controllers

import (
	"net/http"
	"strconv"

	"github.com/StockRoom/initializers"
	"github.com/StockRoom/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
)

func GetUserNotifications(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)

	userID, err := strconv.Atoi(c.Param("user_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user profile ID", "details": err.Error()})
		return
	}

	if userID != currentUser.User_Profile_ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to view this user's notifications"})
		return
	}

	var notifications []models.Notification

	dbErr := initializers.DB.From("notification").
		Select(
			"notification_id",
			"user_profile_id",
			"notification_type",
			"notification_message",
			"notification_status",
			"datetime_create",
		).
		Where(goqu.C("user_profile_id").Eq(userID)).
		Order(goqu.C("datetime_create").Desc()).
		ScanStructs(&notifications)

	if dbErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": dbErr.Error()})
		return
	}

	if notifications == nil {
		notifications = []models.Notification{}
	}

	c.JSON(http.StatusOK, notifications)
}

func MarkAllNotificationsAsRead(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)

	userID, err := strconv.Atoi(c.Param("user_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user profile ID", "details": err.Error()})
		return
	}

	if userID != currentUser.User_Profile_ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to modify this user's notifications"})
		return
	}

	update := initializers.DB.Update("notification").
		Set(goqu.Record{"notification_status": models.NotificationStatusRead}).
		Where(
			goqu.C("user_profile_id").Eq(userID),
			goqu.C("notification_status").Eq(models.NotificationStatusUnread),
		).
		Executor()

	result, err := update.Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications as read", "details": err.Error()})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	c.JSON(http.StatusOK, gin.H{"message": "Notifications marked as read", "updated": rowsAffected})
}

func StorePushToken(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)

	var req models.PushTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Replace any previous registration of the same token for this user.
	del := initializers.DB.Delete("user_push_token").
		Where(
			goqu.C("user_profile_id").Eq(currentUser.User_Profile_ID),
			goqu.C("push_token").Eq(req.PushToken),
		).
		Executor()
	if _, err := del.Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store push token", "details": err.Error()})
		return
	}

	token := models.PushToken{
		User_Profile_ID: currentUser.User_Profile_ID,
		Push_Token:      req.PushToken,
		Platform:        req.Platform,
	}

	insert := initializers.DB.Insert("user_push_token").Rows(token).Executor()
	if _, err := insert.Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store push token", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Push token stored"})
}
