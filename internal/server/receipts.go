package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"pantrychef/constants"
	"pantrychef/internal/imaging"
	"pantrychef/internal/repository"
)

// handleAnalyzeReceipt accepts a receipt image, runs extraction, and returns
// the items for user review. Nothing is written to inventory yet.
func (s *Server) handleAnalyzeReceipt(c *gin.Context) {
	// Accept either field name; clients have used both.
	file, err := c.FormFile("file")
	if err != nil {
		file, err = c.FormFile("receipt")
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}
	if file.Size > s.cfg.Server.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}
	if !constants.IsAllowedExt(filepath.Ext(file.Filename)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file type, please upload an image"})
		return
	}

	if err := os.MkdirAll(s.cfg.Server.UploadDir, 0o755); err != nil {
		s.log.Error("receipts.analyze.mkdir_failed", "error", err)
		respondError(c, err)
		return
	}

	name := fmt.Sprintf("%s_%s", time.Now().Format("20060102_150405"), filepath.Base(file.Filename))
	path := filepath.Join(s.cfg.Server.UploadDir, name)
	if err := c.SaveUploadedFile(file, path); err != nil {
		s.log.Error("receipts.analyze.save_failed", "error", err)
		respondError(c, err)
		return
	}

	if err := imaging.Downscale(path, s.cfg.Extract.MaxVisionEdge, s.log); err != nil {
		// Extraction can still work on the original image.
		s.log.Warn("receipts.analyze.downscale_failed", "path", path, "error", err)
	}

	items, err := s.pipeline.Process(c.Request.Context(), path)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no items found in receipt"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"items":   items,
		"message": fmt.Sprintf("Found %d items. Please review and confirm.", len(items)),
	})
}

type confirmItemsRequest struct {
	Items []struct {
		Name     string  `json:"name" binding:"required"`
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit"`
		Price    float64 `json:"price"`
		Category string  `json:"category"`
	} `json:"items" binding:"required"`
}

// handleConfirmReceipt writes the reviewed items into inventory.
func (s *Server) handleConfirmReceipt(c *gin.Context) {
	var req confirmItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no items provided"})
		return
	}

	userID := currentUserID(c)
	items := make([]*repository.InventoryItem, 0, len(req.Items))
	for _, it := range req.Items {
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}
		unit := it.Unit
		if unit == "" {
			unit = string(constants.Piece)
		}
		items = append(items, &repository.InventoryItem{
			UserID:   userID,
			Name:     it.Name,
			Quantity: qty,
			Unit:     unit,
			Price:    it.Price,
			Category: it.Category,
		})
	}

	inserted, err := s.inventory.InsertBatch(c.Request.Context(), items)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Successfully added %d items to inventory", inserted),
	})
}
