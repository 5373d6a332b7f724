package models

import "time"

// Role constants
const (
	RoleDirector         = "director"
	RoleInventoryManager = "inventoryManager"
	RoleStembassador     = "stembassador"
)

type UserProfile struct {
	User_Profile_ID int        `json:"userProfileId" goqu:"skipinsert"`
	Username        string     `json:"username"`
	Password        string     `json:"-"`
	Email           string     `json:"email"`
	Role            string     `json:"role"`
	Reset_Token     *string    `json:"-" goqu:"skipinsert"`
	Reset_Expires   *time.Time `json:"-" goqu:"skipinsert"`
	Datetime_Create time.Time  `json:"datetimeCreate" goqu:"skipinsert"`
	Datetime_Update time.Time  `json:"datetimeUpdate" goqu:"skipinsert"`
}

type UserProfileSignup struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type Login struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordRequest deliberately carries no binding tags: a malformed or
// empty email must produce the same success response as a valid one.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}
