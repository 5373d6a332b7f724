package models

import "time"

// Request status constants
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

type ItemRequest struct {
	Item_Request_ID   int       `json:"requestId" goqu:"skipinsert"`
	Inventory_Item_ID int       `json:"inventoryItemId"`
	Quantity          int       `json:"quantity"`
	Status            string    `json:"status"`
	Requested_By      string    `json:"requestedBy"`
	Requested_At      time.Time `json:"requestedAt" goqu:"skipinsert"`
}

// ItemRequestWithItem is the joined shape returned by the listing endpoints.
type ItemRequestWithItem struct {
	Item_Request_ID int       `json:"requestId"`
	Item_Name       string    `json:"itemName"`
	Quantity        int       `json:"quantity"`
	Status          string    `json:"status"`
	Requested_By    string    `json:"requestedBy"`
	Requested_At    time.Time `json:"requestedAt"`
}

type ItemRequestLine struct {
	ItemID   int `json:"itemId" binding:"required"`
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

type ItemRequestSubmit struct {
	Requests []ItemRequestLine `json:"requests" binding:"required"`
}
