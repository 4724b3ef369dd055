package internal

import (
	statsdomain "foodops-server/internal/stats/domain"
)

type WeighingCategoryResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	KgPerUnit    float64 `json:"kg_per_unit"`
	DisplayOrder int     `json:"display_order"`
	IsActive     bool    `json:"is_active"`
}

func ToWeighingCategoryResponse(category statsdomain.WeighingCategory) WeighingCategoryResponse {
	return WeighingCategoryResponse{
		ID:           category.ID.String(),
		Name:         category.Name.String(),
		KgPerUnit:    category.KgPerUnit,
		DisplayOrder: category.DisplayOrder,
		IsActive:     category.IsActive,
	}
}

type WeighingCategoryCreateRequest struct {
	Name         string  `json:"name"`
	KgPerUnit    float64 `json:"kg_per_unit"`
	DisplayOrder int     `json:"display_order"`
}

type WeighingCategoryUpdateRequest struct {
	Name         *string  `json:"name,omitempty"`
	KgPerUnit    *float64 `json:"kg_per_unit,omitempty"`
	DisplayOrder *int     `json:"display_order,omitempty"`
	IsActive     *bool    `json:"is_active,omitempty"`
}
