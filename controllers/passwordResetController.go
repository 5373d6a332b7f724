package controllers

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/StockRoom/initializers"
	"github.com/StockRoom/models"
	"github.com/StockRoom/services"
	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenLifetime = time.Hour

// safeOk is the single response every forgot-password branch returns, so the
// caller can never tell whether the email matched an account.
func safeOk(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "If that email exists, a reset link has been sent.",
	})
}

// ForgotPassword issues a one-time reset token and emails the reset link.
// Only the sha-256 fingerprint of the token is stored; the raw value leaves
// the process exclusively inside the emailed link.
func ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest

	// Malformed bodies collapse into the uniform success response too.
	if err := c.ShouldBindJSON(&req); err != nil {
		safeOk(c)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		safeOk(c)
		return
	}

	var user models.UserProfile
	found, err := initializers.DB.From("user_profile").
		Select("*").
		Where(goqu.C("email").Eq(email)).
		ScanStruct(&user)

	if err != nil {
		log.Printf("forgot-password: user lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error processing request."})
		return
	}

	if !found {
		log.Printf("forgot-password: no user for email %s", email)
		safeOk(c)
		return
	}

	raw, err := generateResetToken()
	if err != nil {
		log.Printf("forgot-password: token generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error processing request."})
		return
	}

	update := initializers.DB.Update("user_profile").
		Set(goqu.Record{
			"reset_token":   hashResetToken(raw),
			"reset_expires": time.Now().Add(resetTokenLifetime),
		}).
		Where(goqu.C("user_profile_id").Eq(user.User_Profile_ID)).
		Executor()

	if _, err := update.Exec(); err != nil {
		log.Printf("forgot-password: failed to store reset token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error processing request."})
		return
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", clientURL(), raw)

	// Respond before dispatching mail so relay latency never reaches the
	// caller, and never retry: a failed send only leaves a log line.
	safeOk(c)

	go func(toEmail, username, link string) {
		emailService := services.GetEmailService()
		if emailService == nil {
			log.Printf("forgot-password: email service unavailable, reset link not sent to %s", toEmail)
			return
		}
		if err := emailService.SendPasswordResetEmail(toEmail, link, username); err != nil {
			log.Printf("forgot-password: email send error (ignored): %v", err)
		}
	}(user.Email, user.Username, resetURL)
}

// ResetPassword consumes a reset token and sets the new password. The token
// match, expiry check, credential overwrite and token clearing happen in one
// conditional update, so a token can never be spent twice.
func ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	_ = c.ShouldBindJSON(&req)

	raw := c.Param("token")
	if raw == "" {
		raw = req.Token
	}

	if raw == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Token and new password are required."})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("reset-password: failed to hash password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error updating password."})
		return
	}

	update := initializers.DB.Update("user_profile").
		Set(goqu.Record{
			"password":      string(passwordHash),
			"reset_token":   nil,
			"reset_expires": nil,
		}).
		Where(
			goqu.C("reset_token").Eq(hashResetToken(raw)),
			goqu.C("reset_expires").Gt(time.Now()),
		).
		Executor()

	result, err := update.Exec()
	if err != nil {
		log.Printf("reset-password: failed to update password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error updating password."})
		return
	}

	// Zero rows covers wrong, expired and already-consumed tokens alike.
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Reset link is invalid or has expired."})
		return
	}

	log.Println("reset-password: password updated, token consumed")

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset. You can now log in."})
}

// generateResetToken returns a hex-encoded 256-bit random secret.
func generateResetToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// hashResetToken derives the stored fingerprint of a raw token.
func hashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func clientURL() string {
	if url := os.Getenv("CLIENT_URL"); url != "" {
		return url
	}
	return "http://localhost:3000"
}
