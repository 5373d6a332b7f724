package controllers

import (
	"database/sql"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/StockRoom/initializers"
	"github.com/StockRoom/models"
	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
)

// SetupTestDB creates a mock database and sets it as the global DB for testing
func SetupTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}

	goquDB := goqu.New("postgres", db)

	// Store original DB to restore after test
	originalDB := initializers.DB
	initializers.DB = goquDB

	cleanup := func() {
		// Small delay to allow detached goroutines (mail, notifications) to finish
		time.Sleep(10 * time.Millisecond)
		db.Close()
		initializers.DB = originalDB
	}

	return db, mock, cleanup
}

// SetupTestContext creates a test Gin context with a response recorder
func SetupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

// SetAuthenticatedUser sets the currentUser value in the Gin context,
// simulating what the CheckAuth middleware does
func SetAuthenticatedUser(c *gin.Context, user models.UserProfile) {
	c.Set("currentUser", user)
}

// userProfileColumns is the column set returned by SELECT * on user_profile
func userProfileRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"user_profile_id", "username", "password", "email", "role",
		"reset_token", "reset_expires", "datetime_create", "datetime_update",
	})
}
