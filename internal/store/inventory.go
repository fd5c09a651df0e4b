package store

import (
	"context"
	"fmt"

	"labtrack-backend/internal/model"
)

// InventoryRow is one computed inventory line. Its identity is the composite
// (lab, equipment_type) pair; rows are never persisted.
type InventoryRow struct {
	LabID         int64  `json:"lab"`
	LabName       string `json:"lab_name"`
	EquipmentType string `json:"equipment_type"`
	Total         int64  `json:"total"`
	Working       int64  `json:"working"`
	NotWorking    int64  `json:"not_working"`
	UnderRepair   int64  `json:"under_repair"`
}

// ComputeInventory recomputes the full inventory projection from the current
// equipment table. Labs appear in id order, types in code order within a lab;
// (lab, type) pairs with no equipment produce no row.
func (s *gormStore) ComputeInventory(ctx context.Context) ([]InventoryRow, error) {
	var labs []model.Lab
	if err := s.db.WithContext(ctx).Order("id").Find(&labs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch labs: %w", err)
	}

	type aggRow struct {
		LabID         int64
		EquipmentType string
		Total         int64
		Working       int64
		NotWorking    int64
		UnderRepair   int64
	}
	var aggs []aggRow
	err := s.db.WithContext(ctx).
		Model(&model.Equipment{}).
		Select(`lab_id,
			equipment_type,
			COUNT(*) AS total,
			SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS working,
			SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS not_working,
			SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS under_repair`,
			model.StatusWorking, model.StatusNotWorking, model.StatusUnderRepair).
		Group("lab_id").
		Group("equipment_type").
		Order("lab_id, equipment_type").
		Scan(&aggs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate equipment: %w", err)
	}

	byLab := make(map[int64][]aggRow, len(labs))
	for _, a := range aggs {
		byLab[a.LabID] = append(byLab[a.LabID], a)
	}

	rows := make([]InventoryRow, 0, len(aggs))
	for _, lab := range labs {
		for _, a := range byLab[lab.ID] {
			rows = append(rows, InventoryRow{
				LabID:         lab.ID,
				LabName:       lab.Name,
				EquipmentType: a.EquipmentType,
				Total:         a.Total,
				Working:       a.Working,
				NotWorking:    a.NotWorking,
				UnderRepair:   a.UnderRepair,
			})
		}
	}
	return rows, nil
}
