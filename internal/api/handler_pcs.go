package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"labtrack-backend/internal/model"
)

type pcRequest struct {
	LabID        int64   `json:"lab"`
	Name         string  `json:"name" binding:"required"`
	Status       string  `json:"status"`
	Brand        string  `json:"brand"`
	SerialNumber *string `json:"serial_number"`
}

// ListPCs returns all PCs across labs.
func (h *Handler) ListPCs(c *gin.Context) {
	var pcs []model.PC
	if err := h.db().Order("id").Find(&pcs).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve pcs"})
		return
	}
	c.JSON(http.StatusOK, pcs)
}

// CreatePC creates a PC under the lab named in the body.
func (h *Handler) CreatePC(c *gin.Context) {
	var req pcRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var lab model.Lab
	if err := h.db().First(&lab, req.LabID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"lab": "Lab not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	pc := model.PC{
		LabID:        lab.ID,
		Name:         req.Name,
		Status:       req.Status,
		Brand:        req.Brand,
		SerialNumber: normalizeSerial(req.SerialNumber),
	}
	if err := h.db().Create(&pc).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"serial_number": "A pc with that serial number already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, pc)
}

// GetPC returns one PC by id.
func (h *Handler) GetPC(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var pc model.PC
	if err := h.db().First(&pc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "pc not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, pc)
}

// UpdatePC updates a PC in place. The owning lab can be moved when the body
// names a different (existing) lab.
func (h *Handler) UpdatePC(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var pc model.PC
	if err := h.db().First(&pc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "pc not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var req pcRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.LabID != 0 && req.LabID != pc.LabID {
		var lab model.Lab
		if err := h.db().First(&lab, req.LabID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"lab": "Lab not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}
		pc.LabID = lab.ID
	}

	pc.Name = req.Name
	pc.Status = req.Status
	pc.Brand = req.Brand
	pc.SerialNumber = normalizeSerial(req.SerialNumber)
	if err := h.db().Save(&pc).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"serial_number": "A pc with that serial number already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pc)
}

// DeletePC removes a PC and cascades its installed software.
func (h *Handler) DeletePC(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	res := h.db().Delete(&model.PC{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "pc not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
