// internal/api/handlers/books_handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/princevibe/books-backend/internal/gateway"
	"github.com/princevibe/books-backend/internal/service"
	"github.com/princevibe/books-backend/internal/store"
)

// SnapshotReader is the read side of the gateway.
type SnapshotReader interface {
	Snapshot() (*store.Snapshot, error)
	State() gateway.State
}

// BooksHandler serves the entity collections and the gateway controls.
type BooksHandler struct {
	reader  SnapshotReader
	reports *service.ReportService
}

func NewBooksHandler(reader SnapshotReader, reports *service.ReportService) *BooksHandler {
	return &BooksHandler{reader: reader, reports: reports}
}

func (h *BooksHandler) snapshot(c *gin.Context) (*store.Snapshot, bool) {
	snap, err := h.reader.Snapshot()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return nil, false
	}
	return snap, true
}

func (h *BooksHandler) GetInventory(c *gin.Context) {
	if snap, ok := h.snapshot(c); ok {
		c.JSON(http.StatusOK, gin.H{"inventory": snap.Inventory})
	}
}

func (h *BooksHandler) GetPurchases(c *gin.Context) {
	if snap, ok := h.snapshot(c); ok {
		c.JSON(http.StatusOK, gin.H{"purchases": snap.Purchases})
	}
}

func (h *BooksHandler) GetSales(c *gin.Context) {
	if snap, ok := h.snapshot(c); ok {
		c.JSON(http.StatusOK, gin.H{"sales": snap.Sales})
	}
}

func (h *BooksHandler) GetExpenses(c *gin.Context) {
	if snap, ok := h.snapshot(c); ok {
		c.JSON(http.StatusOK, gin.H{"expenses": snap.Expenses})
	}
}

func (h *BooksHandler) GetPartners(c *gin.Context) {
	if snap, ok := h.snapshot(c); ok {
		c.JSON(http.StatusOK, gin.H{"partners": snap.Partners})
	}
}

func (h *BooksHandler) GetSettings(c *gin.Context) {
	if snap, ok := h.snapshot(c); ok {
		c.JSON(http.StatusOK, gin.H{"settings": snap.Settings})
	}
}

// GetGatewayState reports the gateway phase and backing store.
func (h *BooksHandler) GetGatewayState(c *gin.Context) {
	c.JSON(http.StatusOK, h.reader.State())
}

// TriggerMigration starts the local-to-remote migration. Only valid while
// the gateway is local-backed.
func (h *BooksHandler) TriggerMigration(c *gin.Context) {
	if err := h.reports.Migrate(c.Request.Context()); err != nil {
		if errors.Is(err, gateway.ErrNotLocal) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
			"state": h.reader.State(),
		})
		return
	}
	c.JSON(http.StatusOK, h.reader.State())
}
