package models

type InventoryItem struct {
	Inventory_Item_ID int    `json:"inventoryItemId" goqu:"skipinsert"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	Location          string `json:"location"`
	Quantity          int    `json:"quantity"`
}

type InventoryItemCreate struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Location    string `json:"location" binding:"required"`
	Quantity    int    `json:"quantity"`
}
