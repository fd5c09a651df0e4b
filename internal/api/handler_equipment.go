package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"labtrack-backend/internal/model"
)

type equipmentRequest struct {
	LabID         int64   `json:"lab"`
	EquipmentType string  `json:"equipment_type" binding:"required"`
	Brand         string  `json:"brand"`
	ModelName     string  `json:"model_name"`
	SerialNumber  *string `json:"serial_number"`
	LocationInLab string  `json:"location_in_lab"`
	Price         float64 `json:"price"`
	Status        string  `json:"status"`
}

// validate checks the type and status enums. An omitted status falls back to
// the given value: working on create, the row's current status on update.
func (r *equipmentRequest) validate(c *gin.Context, fallback string) bool {
	if !model.ValidEquipmentType(r.EquipmentType) {
		c.JSON(http.StatusBadRequest, gin.H{"equipment_type": "unknown equipment type"})
		return false
	}
	if r.Status == "" {
		r.Status = fallback
	}
	if !model.ValidEquipmentStatus(r.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"status": "unknown equipment status"})
		return false
	}
	return true
}

// ListEquipment returns all equipment rows.
func (h *Handler) ListEquipment(c *gin.Context) {
	var items []model.Equipment
	if err := h.db().Order("id").Find(&items).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve equipment"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateEquipment creates an equipment row in an existing lab.
func (h *Handler) CreateEquipment(c *gin.Context) {
	var req equipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.validate(c, model.StatusWorking) {
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

	item := model.Equipment{
		LabID:         lab.ID,
		EquipmentType: req.EquipmentType,
		Brand:         req.Brand,
		ModelName:     req.ModelName,
		SerialNumber:  normalizeSerial(req.SerialNumber),
		LocationInLab: req.LocationInLab,
		Price:         req.Price,
		Status:        req.Status,
	}
	if err := h.db().Create(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"serial_number": "Equipment with that serial number already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GetEquipment returns one equipment row by id.
func (h *Handler) GetEquipment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var item model.Equipment
	if err := h.db().First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "equipment not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateEquipment updates an equipment row, including its status, which the
// inventory picks up on the next read.
func (h *Handler) UpdateEquipment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var item model.Equipment
	if err := h.db().First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "equipment not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var req equipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.validate(c, item.Status) {
		return
	}
	if req.LabID != 0 && req.LabID != item.LabID {
		var lab model.Lab
		if err := h.db().First(&lab, req.LabID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"lab": "Lab not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}
		item.LabID = lab.ID
	}

	item.EquipmentType = req.EquipmentType
	item.Brand = req.Brand
	item.ModelName = req.ModelName
	item.SerialNumber = normalizeSerial(req.SerialNumber)
	item.LocationInLab = req.LocationInLab
	item.Price = req.Price
	item.Status = req.Status
	if err := h.db().Save(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"serial_number": "Equipment with that serial number already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteEquipment removes an equipment row and cascades its maintenance logs.
func (h *Handler) DeleteEquipment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	res := h.db().Delete(&model.Equipment{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "equipment not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
