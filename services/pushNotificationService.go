package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/StockRoom/initializers"
	"github.com/StockRoom/models"
	"github.com/doug-martin/goqu/v9"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

type PushNotificationService struct {
	fcmClient *messaging.Client
}

type NotificationPayload struct {
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Data     map[string]string `json:"data,omitempty"`
	Priority string            `json:"priority,omitempty"`
}

var pushService *PushNotificationService

func InitPushNotificationService() {
	pushService = &PushNotificationService{}

	serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")

	var app *firebase.App
	var err error

	if serviceAccountPath != "" {
		opt := option.WithCredentialsFile(serviceAccountPath)
		app, err = firebase.NewApp(context.Background(), nil, opt)
		if err != nil {
			log.Printf("Failed to initialize Firebase app with service account: %v", err)
			return
		}
		log.Println("Firebase initialized with service account file")
	} else {
		// Application Default Credentials
		app, err = firebase.NewApp(context.Background(), nil)
		if err != nil {
			log.Printf("Failed to initialize Firebase app with ADC: %v", err)
			return
		}
		log.Println("Firebase initialized with Application Default Credentials")
	}

	pushService.fcmClient, err = app.Messaging(context.Background())
	if err != nil {
		log.Printf("Failed to get Firebase messaging client: %v", err)
		return
	}

	log.Println("Push notification service initialized successfully with FCM")
}

func GetPushNotificationService() *PushNotificationService {
	return pushService
}

// SendNotificationToUser delivers the payload to every registered device of
// the user. Individual token failures are logged and skipped.
func (s *PushNotificationService) SendNotificationToUser(userID int, payload NotificationPayload) error {
	var tokens []models.PushToken
	query := initializers.DB.From("user_push_token").
		Where(goqu.C("user_profile_id").Eq(userID))

	err := query.ScanStructs(&tokens)
	if err != nil {
		return fmt.Errorf("failed to get push tokens for user %d: %v", userID, err)
	}

	if len(tokens) == 0 {
		return fmt.Errorf("no push tokens found for user %d", userID)
	}

	for _, token := range tokens {
		if err := s.sendToToken(token, payload); err != nil {
			log.Printf("Failed to send notification to token %s: %v", token.Push_Token, err)
		}
	}

	return nil
}

func (s *PushNotificationService) sendToToken(pushToken models.PushToken, payload NotificationPayload) error {
	// Expo Go tokens bypass FCM
	if strings.HasPrefix(pushToken.Push_Token, "ExponentPushToken[") {
		return s.sendExpoNotification(pushToken, payload)
	}

	if s.fcmClient == nil {
		return fmt.Errorf("FCM client not initialized")
	}

	message := &messaging.Message{
		Token: pushToken.Push_Token,
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Data: payload.Data,
	}

	if pushToken.Platform == "ios" {
		message.APNS = &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: payload.Title,
						Body:  payload.Body,
					},
				},
			},
		}
		if payload.Priority == "high" {
			message.APNS.Headers = map[string]string{
				"apns-priority": "10",
			}
		}
	} else if pushToken.Platform == "android" {
		message.Android = &messaging.AndroidConfig{
			Notification: &messaging.AndroidNotification{
				Title: payload.Title,
				Body:  payload.Body,
			},
		}
		if payload.Priority == "high" {
			message.Android.Priority = "high"
		} else {
			message.Android.Priority = "normal"
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	response, err := s.fcmClient.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send FCM message: %v", err)
	}

	log.Printf("Successfully sent FCM notification. Message ID: %s", response)
	return nil
}

// sendExpoNotification sends notification via Expo Push API (for Expo Go testing)
func (s *PushNotificationService) sendExpoNotification(pushToken models.PushToken, payload NotificationPayload) error {
	expoMessage := map[string]interface{}{
		"to":    pushToken.Push_Token,
		"title": payload.Title,
		"body":  payload.Body,
		"data":  payload.Data,
	}

	if payload.Priority == "high" {
		expoMessage["priority"] = "high"
	}

	jsonBody, err := json.Marshal(expoMessage)
	if err != nil {
		return fmt.Errorf("failed to marshal Expo message: %v", err)
	}

	resp, err := http.Post("https://exp.host/--/api/v2/push/send", "application/json", bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to send Expo notification: %v", err)
	}
	defer resp.Body.Close()

	responseBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Expo push API returned status %d: %s", resp.StatusCode, string(responseBody))
	}

	log.Printf("Successfully sent Expo notification to %s", pushToken.Push_Token)
	return nil
}
