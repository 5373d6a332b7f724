package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/StockRoom/initializers"
	"github.com/StockRoom/models"
	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
)

// GetInventory - Fetch all inventory items
func GetInventory(c *gin.Context) {
	var items []models.InventoryItem
	err := initializers.DB.From("inventory_item").
		Order(goqu.C("name").Asc()).
		ScanStructs(&items)

	if err != nil {
		log.Println("Error fetching inventory:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
		return
	}

	if items == nil {
		items = []models.InventoryItem{}
	}

	c.JSON(http.StatusOK, items)
}

// FilterInventory - Filter items by location, e.g. /inventory/filter?location=A1
func FilterInventory(c *gin.Context) {
	location := c.Query("location")

	var items []models.InventoryItem
	err := initializers.DB.From("inventory_item").
		Where(goqu.C("location").Eq(location)).
		Order(goqu.C("name").Asc()).
		ScanStructs(&items)

	if err != nil {
		log.Println("Error filtering inventory:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to filter inventory"})
		return
	}

	if items == nil {
		items = []models.InventoryItem{}
	}

	c.JSON(http.StatusOK, items)
}

// AddInventoryItem - Add a new inventory item
func AddInventoryItem(c *gin.Context) {
	var body models.InventoryItemCreate
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := models.InventoryItem{
		Name:        body.Name,
		Description: body.Description,
		Location:    body.Location,
		Quantity:    body.Quantity,
	}

	insert := initializers.DB.Insert("inventory_item").Rows(item).Executor()
	if _, err := insert.Exec(); err != nil {
		log.Println("Error adding item:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Item added successfully", "item": item})
}

// UpdateInventoryItem - Update an inventory item
func UpdateInventoryItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var body models.InventoryItemCreate
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := initializers.DB.Update("inventory_item").
		Set(goqu.Record{
			"name":        body.Name,
			"description": body.Description,
			"location":    body.Location,
			"quantity":    body.Quantity,
		}).
		Where(goqu.C("inventory_item_id").Eq(itemID)).
		Executor()

	result, err := update.Exec()
	if err != nil {
		log.Println("Error updating item:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item updated successfully"})
}

// DeleteInventoryItem - Delete an inventory item
func DeleteInventoryItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	del := initializers.DB.Delete("inventory_item").
		Where(goqu.C("inventory_item_id").Eq(itemID)).
		Executor()

	if _, err := del.Exec(); err != nil {
		log.Println("Error deleting item:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}
