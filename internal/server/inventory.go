package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pantrychef/internal/repository"
)

func (s *Server) handleListInventory(c *gin.Context) {
	items, err := s.inventory.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type addItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required"`
	Unit     string  `json:"unit" binding:"required"`
	Price    float64 `json:"price"`
}

func (s *Server) handleAddInventoryItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || req.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item data"})
		return
	}

	item := &repository.InventoryItem{
		UserID:   currentUserID(c),
		Name:     name,
		Quantity: req.Quantity,
		Unit:     strings.ToLower(strings.TrimSpace(req.Unit)),
		Price:    req.Price,
	}
	if err := s.inventory.Insert(c.Request.Context(), item); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Item added successfully",
		"item_id": item.ID,
	})
}

func (s *Server) handleDeleteInventoryItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	if err := s.inventory.Delete(c.Request.Context(), currentUserID(c), itemID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}

func (s *Server) handleDeleteAllInventory(c *gin.Context) {
	n, err := s.inventory.DeleteAll(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Deleted %d items", n)})
}

func (s *Server) handleExportInventory(c *gin.Context) {
	data, err := s.exports.ExportInventoryXLSX(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="inventory.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
