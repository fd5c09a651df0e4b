package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"labtrack-backend/internal/model"
)

type labRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
}

// ListLabs returns all labs.
func (h *Handler) ListLabs(c *gin.Context) {
	var labs []model.Lab
	if err := h.db().Order("id").Find(&labs).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve labs"})
		return
	}
	c.JSON(http.StatusOK, labs)
}

// CreateLab creates a lab. Names are unique store-wide.
func (h *Handler) CreateLab(c *gin.Context) {
	var req labRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lab := model.Lab{Name: req.Name, Location: req.Location}
	if err := h.db().Create(&lab).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"name": "A lab with that name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, lab)
}

// GetLab returns one lab by id.
func (h *Handler) GetLab(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var lab model.Lab
	if err := h.db().First(&lab, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "lab not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, lab)
}

// UpdateLab updates a lab's name and location.
func (h *Handler) UpdateLab(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var lab model.Lab
	if err := h.db().First(&lab, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "lab not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var req labRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lab.Name = req.Name
	lab.Location = req.Location
	if err := h.db().Save(&lab).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"name": "A lab with that name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, lab)
}

// DeleteLab removes a lab. PCs and equipment in the lab cascade away with it.
func (h *Handler) DeleteLab(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	res := h.db().Delete(&model.Lab{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "lab not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ListLabPCs returns the PCs belonging to one lab.
func (h *Handler) ListLabPCs(c *gin.Context) {
	labID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var pcs []model.PC
	if err := h.db().Where("lab_id = ?", labID).Order("id").Find(&pcs).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve pcs"})
		return
	}
	c.JSON(http.StatusOK, pcs)
}

// CreateLabPC creates a PC nested under a lab path. The lab is resolved
// first; a missing lab is a validation failure naming the lab field and
// nothing is persisted.
func (h *Handler) CreateLabPC(c *gin.Context) {
	labID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var lab model.Lab
	if err := h.db().First(&lab, labID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"lab": "Lab not found"})
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
