package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/StockRoom/initializers"
	"github.com/StockRoom/models"
	"github.com/StockRoom/services"
	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
)

// SubmitRequests - Submit one or more item requests for the current user
func SubmitRequests(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)

	var body models.ItemRequestSubmit
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No requests provided"})
		return
	}

	if len(body.Requests) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No requests provided"})
		return
	}

	requests := make([]models.ItemRequest, 0, len(body.Requests))
	for _, line := range body.Requests {
		requests = append(requests, models.ItemRequest{
			Inventory_Item_ID: line.ItemID,
			Quantity:          line.Quantity,
			Status:            models.RequestStatusPending,
			Requested_By:      currentUser.Username,
		})
	}

	insert := initializers.DB.Insert("item_request").Rows(requests).Executor()
	if _, err := insert.Exec(); err != nil {
		log.Println("Error submitting requests:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error submitting request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Requests submitted successfully", "data": requests})
}

// GetUserRequests - Fetch past requests for a user, newest first
func GetUserRequests(c *gin.Context) {
	username := c.Param("username")

	var requests []models.ItemRequestWithItem
	err := requestsWithItems().
		Where(goqu.C("requested_by").Table("item_request").Eq(username)).
		ScanStructs(&requests)

	if err != nil {
		log.Println("Error fetching user requests:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch requests"})
		return
	}

	if requests == nil {
		requests = []models.ItemRequestWithItem{}
	}

	c.JSON(http.StatusOK, requests)
}

// GetPendingRequests - Fetch only pending requests, newest first
func GetPendingRequests(c *gin.Context) {
	var requests []models.ItemRequestWithItem
	err := requestsWithItems().
		Where(goqu.C("status").Table("item_request").Eq(models.RequestStatusPending)).
		ScanStructs(&requests)

	if err != nil {
		log.Println("Error fetching pending requests:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending requests"})
		return
	}

	if requests == nil {
		requests = []models.ItemRequestWithItem{}
	}

	c.JSON(http.StatusOK, requests)
}

// GetAllRequests - Fetch all requests regardless of status, newest first
func GetAllRequests(c *gin.Context) {
	var requests []models.ItemRequestWithItem
	err := requestsWithItems().ScanStructs(&requests)

	if err != nil {
		log.Println("Error fetching all requests:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch all requests"})
		return
	}

	if requests == nil {
		requests = []models.ItemRequestWithItem{}
	}

	c.JSON(http.StatusOK, requests)
}

// ApproveRequest - Approve a pending request
func ApproveRequest(c *gin.Context) {
	decideRequest(c, models.RequestStatusApproved)
}

// RejectRequest - Reject a pending request
func RejectRequest(c *gin.Context) {
	decideRequest(c, models.RequestStatusRejected)
}

func decideRequest(c *gin.Context, status string) {
	requestID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	update := initializers.DB.Update("item_request").
		Set(goqu.Record{"status": status}).
		Where(goqu.C("item_request_id").Eq(requestID)).
		Executor()

	result, err := update.Exec()
	if err != nil {
		log.Printf("Error updating request %d to %s: %v", requestID, status, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + verbFor(status) + " request"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		return
	}

	var updated models.ItemRequestWithItem
	found, err := requestsWithItems().
		Where(goqu.C("item_request_id").Table("item_request").Eq(requestID)).
		ScanStruct(&updated)

	if err != nil || !found {
		log.Printf("Error reloading request %d: %v", requestID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + verbFor(status) + " request"})
		return
	}

	c.JSON(http.StatusOK, updated)

	// Requester notification runs detached; its failures stay in the logs.
	go services.NotifyRequestDecision(updated.Requested_By, updated.Item_Request_ID, updated.Item_Name, updated.Quantity, status)
}

// requestsWithItems joins requests with their item names, newest first.
func requestsWithItems() *goqu.SelectDataset {
	return initializers.DB.From("item_request").
		Select(
			goqu.I("item_request.item_request_id"),
			goqu.I("inventory_item.name").As("item_name"),
			goqu.I("item_request.quantity"),
			goqu.I("item_request.status"),
			goqu.I("item_request.requested_by"),
			goqu.I("item_request.requested_at"),
		).
		InnerJoin(
			goqu.T("inventory_item"),
			goqu.On(goqu.Ex{"item_request.inventory_item_id": goqu.I("inventory_item.inventory_item_id")}),
		).
		Order(goqu.C("requested_at").Table("item_request").Desc())
}

func verbFor(status string) string {
	if status == models.RequestStatusRejected {
		return "reject"
	}
	return "approve"
}
