package controllers

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/StockRoom/initializers"
	"github.com/StockRoom/models"
	"github.com/StockRoom/services"
	"github.com/doug-martin/goqu/v9"
	"golang.org/x/crypto/bcrypt"
)

func UserSignup(c *gin.Context) {
	var signup models.UserProfileSignup

	if err := c.ShouldBindJSON(&signup); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	signup.Username = strings.TrimSpace(signup.Username)
	signup.Email = strings.ToLower(strings.TrimSpace(signup.Email))

	if signup.Username == "" || signup.Email == "" || signup.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username, email, and password are required."})
		return
	}

	userCount, err := initializers.DB.From("user_profile").
		Select("username").
		Where(goqu.Or(
			goqu.C("username").Eq(signup.Username),
			goqu.C("email").Eq(signup.Email),
		)).
		Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if userCount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already exists"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(signup.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := signup.Role
	if role == "" {
		role = models.RoleStembassador
	}

	newUser := models.UserProfile{
		Username: signup.Username,
		Password: string(passwordHash),
		Email:    signup.Email,
		Role:     role,
	}

	insert := initializers.DB.Insert("user_profile").Rows(newUser).Executor()
	if _, err := insert.Exec(); err != nil {
		log.Printf("signup: insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Welcome mail is best-effort and never delays or fails the signup.
	go func(toEmail, username string) {
		emailService := services.GetEmailService()
		if emailService == nil {
			return
		}
		if err := emailService.SendWelcomeEmail(toEmail, username); err != nil {
			log.Printf("signup: welcome email error (ignored): %v", err)
		}
	}(newUser.Email, newUser.Username)

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully"})
}

func UserLogin(c *gin.Context) {
	var login models.Login

	if err := c.ShouldBindJSON(&login); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required."})
		return
	}

	var dbUser models.UserProfile
	found, err := initializers.DB.From("user_profile").
		Select("*").
		Where(goqu.C("username").Eq(login.Username)).
		ScanStruct(&dbUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Same response for unknown user and wrong password.
	if !found {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid username or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(dbUser.Password), []byte(login.Password)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid username or password"})
		return
	}

	generateToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   dbUser.User_Profile_ID,
		"exp":  time.Now().Add(time.Hour * 2).Unix(),
		"role": dbUser.Role,
	})

	token, err := generateToken.SignedString([]byte(os.Getenv("SECRET")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User logged in successfully.",
		"token":   token,
		"user":    dbUser,
	})
}

func GetUserProfile(c *gin.Context) {

	user, _ := c.Get("currentUser")

	c.JSON(http.StatusOK, gin.H{"user": user})
}
