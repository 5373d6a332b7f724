package controllers

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/StockRoom/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const forgotPasswordBody = `{"message":"If that email exists, a reset link has been sent."}`

// Test ForgotPassword - every input class gets the identical success response
func TestForgotPassword(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name           string
		requestBody    interface{}
		userExists     bool
		expectLookup   bool
		updateFails    bool
		expectedStatus int
	}{
		{
			name:           "known email issues token",
			requestBody:    models.ForgotPasswordRequest{Email: "user@example.com"},
			userExists:     true,
			expectLookup:   true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown email - same success response",
			requestBody:    models.ForgotPasswordRequest{Email: "nonexistent@example.com"},
			userExists:     false,
			expectLookup:   true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "empty email - same success response, no lookup",
			requestBody:    models.ForgotPasswordRequest{Email: "   "},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "malformed JSON - same success response",
			requestBody:    "{invalid json}",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "token store failure surfaces as 500",
			requestBody:    models.ForgotPasswordRequest{Email: "user@example.com"},
			userExists:     true,
			expectLookup:   true,
			updateFails:    true,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.expectLookup {
				if tt.userExists {
					rows := userProfileRows().
						AddRow(1, "testuser", "hashedpassword", "user@example.com", "stembassador", nil, nil, now, now)
					mock.ExpectQuery("SELECT").WillReturnRows(rows)

					if tt.updateFails {
						mock.ExpectExec(`UPDATE "user_profile"`).WillReturnError(sqlmock.ErrCancelled)
					} else {
						mock.ExpectExec(`UPDATE "user_profile" SET "reset_expires"=.+,"reset_token"=`).
							WillReturnResult(sqlmock.NewResult(0, 1))
					}
				} else {
					mock.ExpectQuery("SELECT").WillReturnRows(userProfileRows())
				}
			}

			c, w := SetupTestContext()

			var jsonData []byte
			if str, ok := tt.requestBody.(string); ok {
				jsonData = []byte(str)
			} else {
				jsonData, _ = json.Marshal(tt.requestBody)
			}

			c.Request = httptest.NewRequest("POST", "/api/auth/forgot-password", bytes.NewBuffer(jsonData))
			c.Request.Header.Set("Content-Type", "application/json")

			ForgotPassword(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, forgotPasswordBody, w.Body.String())
			}
		})
	}
}

// The success body must be byte-identical whether or not the account exists
func TestForgotPasswordResponsesIndistinguishable(t *testing.T) {
	now := time.Now()

	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	// Known email
	rows := userProfileRows().
		AddRow(1, "testuser", "hashedpassword", "user@example.com", "stembassador", nil, nil, now, now)
	mock.ExpectQuery("SELECT").WillReturnRows(rows)
	mock.ExpectExec(`UPDATE "user_profile"`).WillReturnResult(sqlmock.NewResult(0, 1))

	c1, w1 := SetupTestContext()
	c1.Request = httptest.NewRequest("POST", "/api/auth/forgot-password",
		bytes.NewBufferString(`{"email":"user@example.com"}`))
	c1.Request.Header.Set("Content-Type", "application/json")
	ForgotPassword(c1)

	// Unknown email
	mock.ExpectQuery("SELECT").WillReturnRows(userProfileRows())

	c2, w2 := SetupTestContext()
	c2.Request = httptest.NewRequest("POST", "/api/auth/forgot-password",
		bytes.NewBufferString(`{"email":"nobody@example.com"}`))
	c2.Request.Header.Set("Content-Type", "application/json")
	ForgotPassword(c2)

	assert.Equal(t, w1.Code, w2.Code)
	assert.Equal(t, w1.Body.String(), w2.Body.String())
}

// Email normalization: uppercase and padded input still matches the stored address
func TestForgotPasswordNormalizesEmail(t *testing.T) {
	now := time.Now()

	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	rows := userProfileRows().
		AddRow(1, "testuser", "hashedpassword", "user@example.com", "stembassador", nil, nil, now, now)
	mock.ExpectQuery(`SELECT \* FROM "user_profile" WHERE \("email" = 'user@example\.com'\)`).
		WillReturnRows(rows)
	mock.ExpectExec(`UPDATE "user_profile"`).WillReturnResult(sqlmock.NewResult(0, 1))

	c, w := SetupTestContext()
	c.Request = httptest.NewRequest("POST", "/api/auth/forgot-password",
		bytes.NewBufferString(`{"email":"  User@Example.COM  "}`))
	c.Request.Header.Set("Content-Type", "application/json")

	ForgotPassword(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Test ResetPassword - token consumption via a single conditional update
func TestResetPassword(t *testing.T) {
	tests := []struct {
		name            string
		pathToken       string
		requestBody     string
		rowsAffected    int64
		updateFails     bool
		expectUpdate    bool
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "valid token resets password",
			pathToken:       "a1b2c3",
			requestBody:     `{"password":"NewPass123"}`,
			rowsAffected:    1,
			expectUpdate:    true,
			expectedStatus:  http.StatusOK,
			expectedMessage: "Password has been reset. You can now log in.",
		},
		{
			name:            "token in body when path is empty",
			requestBody:     `{"token":"a1b2c3","password":"NewPass123"}`,
			rowsAffected:    1,
			expectUpdate:    true,
			expectedStatus:  http.StatusOK,
			expectedMessage: "Password has been reset. You can now log in.",
		},
		{
			name:            "missing password",
			pathToken:       "a1b2c3",
			requestBody:     `{}`,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Token and new password are required.",
		},
		{
			name:            "missing token",
			requestBody:     `{"password":"NewPass123"}`,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Token and new password are required.",
		},
		{
			name:            "unknown, expired or consumed token",
			pathToken:       "never-issued",
			requestBody:     `{"password":"NewPass123"}`,
			rowsAffected:    0,
			expectUpdate:    true,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Reset link is invalid or has expired.",
		},
		{
			name:            "store failure",
			pathToken:       "a1b2c3",
			requestBody:     `{"password":"NewPass123"}`,
			updateFails:     true,
			expectUpdate:    true,
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "Server error updating password.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.expectUpdate {
				if tt.updateFails {
					mock.ExpectExec(`UPDATE "user_profile"`).WillReturnError(sqlmock.ErrCancelled)
				} else {
					mock.ExpectExec(`UPDATE "user_profile"`).
						WillReturnResult(sqlmock.NewResult(0, tt.rowsAffected))
				}
			}

			c, w := SetupTestContext()
			c.Request = httptest.NewRequest("POST", "/api/auth/reset-password/x",
				bytes.NewBufferString(tt.requestBody))
			c.Request.Header.Set("Content-Type", "application/json")
			if tt.pathToken != "" {
				c.Params = gin.Params{{Key: "token", Value: tt.pathToken}}
			}

			ResetPassword(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			_ = json.Unmarshal(w.Body.Bytes(), &response)
			assert.Equal(t, tt.expectedMessage, response["message"])
		})
	}
}

// The update must match on the fingerprint of the raw token, never the raw value
func TestResetPasswordMatchesFingerprint(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	raw := "c0ffee00deadbeef"
	fingerprint := hashResetToken(raw)

	mock.ExpectExec(`UPDATE "user_profile" SET .+ WHERE \(\("reset_token" = '` + fingerprint + `'\) AND \("reset_expires" > .+`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, w := SetupTestContext()
	c.Request = httptest.NewRequest("POST", "/api/auth/reset-password/"+raw,
		bytes.NewBufferString(`{"password":"NewPass123"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "token", Value: raw}}

	ResetPassword(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A second attempt with the same raw token fails once the first has consumed it
func TestResetPasswordConsumesTokenOnce(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	raw := "c0ffee00deadbeef"

	// First consume clears the fingerprint, second finds no matching row.
	mock.ExpectExec(`UPDATE "user_profile"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "user_profile"`).WillReturnResult(sqlmock.NewResult(0, 0))

	for i, expectedStatus := range []int{http.StatusOK, http.StatusBadRequest} {
		c, w := SetupTestContext()
		c.Request = httptest.NewRequest("POST", "/api/auth/reset-password/"+raw,
			bytes.NewBufferString(`{"password":"NewPass123"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "token", Value: raw}}

		ResetPassword(c)

		assert.Equal(t, expectedStatus, w.Code, "attempt %d", i+1)
	}
}

func TestGenerateResetToken(t *testing.T) {
	raw, err := generateResetToken()
	assert.NoError(t, err)

	// 32 random bytes, hex-encoded
	decoded, err := hex.DecodeString(raw)
	assert.NoError(t, err)
	assert.Len(t, decoded, 32)

	other, err := generateResetToken()
	assert.NoError(t, err)
	assert.NotEqual(t, raw, other)
}

func TestHashResetToken(t *testing.T) {
	// Deterministic and fixed-length
	assert.Equal(t, hashResetToken("secret"), hashResetToken("secret"))
	assert.Len(t, hashResetToken("secret"), 64)

	// Distinct secrets produce distinct fingerprints
	assert.NotEqual(t, hashResetToken("secret"), hashResetToken("secret2"))

	// The fingerprint never contains the raw value
	assert.NotContains(t, hashResetToken("c0ffee00deadbeef"), "c0ffee00deadbeef")
}
