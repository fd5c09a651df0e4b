package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"labtrack-backend/internal/model"
)

type softwareRequest struct {
	PCID       int64      `json:"pc"`
	Name       string     `json:"name" binding:"required"`
	Version    string     `json:"version"`
	LicenseKey string     `json:"license_key"`
	ExpiryDate *time.Time `json:"expiry_date"`
}

// ListSoftware returns all software installations.
func (h *Handler) ListSoftware(c *gin.Context) {
	var items []model.Software
	if err := h.db().Order("id").Find(&items).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve software"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateSoftware records a software installation on an existing PC.
func (h *Handler) CreateSoftware(c *gin.Context) {
	var req softwareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var pc model.PC
	if err := h.db().First(&pc, req.PCID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"pc": "PC not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	item := model.Software{
		PCID:       pc.ID,
		Name:       req.Name,
		Version:    req.Version,
		LicenseKey: req.LicenseKey,
		ExpiryDate: req.ExpiryDate,
	}
	if err := h.db().Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GetSoftware returns one installation by id.
func (h *Handler) GetSoftware(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var item model.Software
	if err := h.db().First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "software not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateSoftware updates an installation record.
func (h *Handler) UpdateSoftware(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var item model.Software
	if err := h.db().First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "software not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var req softwareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.PCID != 0 && req.PCID != item.PCID {
		var pc model.PC
		if err := h.db().First(&pc, req.PCID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"pc": "PC not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}
		item.PCID = pc.ID
	}

	item.Name = req.Name
	item.Version = req.Version
	item.LicenseKey = req.LicenseKey
	item.ExpiryDate = req.ExpiryDate
	if err := h.db().Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteSoftware removes an installation record.
func (h *Handler) DeleteSoftware(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	res := h.db().Delete(&model.Software{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "software not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
