package models

import "time"

type PushToken struct {
	User_Push_Token_ID int       `json:"userPushTokenId" goqu:"skipinsert"`
	User_Profile_ID    int       `json:"userProfileId"`
	Push_Token         string    `json:"pushToken"`
	Platform           string    `json:"platform"`
	Created_At         time.Time `json:"createdAt" goqu:"skipinsert"`
}

type PushTokenRequest struct {
	PushToken string `json:"pushToken" binding:"required"`
	Platform  string `json:"platform" binding:"required,oneof=ios android web"`
}
