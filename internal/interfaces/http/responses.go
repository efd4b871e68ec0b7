package http

import (
	"github.com/lizmareco/distrisoft-sub002/internal/application/dto"
	"github.com/lizmareco/distrisoft-sub002/internal/domain/entity"
)

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		UnitWeight:  p.UnitWeight,
		StockActual: p.StockActual,
		UnitMeasure: p.UnitMeasure,
		CreatedAt:   p.CreatedAt,
	}
}

func toRawMaterialResponse(m *entity.RawMaterial) dto.RawMaterialResponse {
	return dto.RawMaterialResponse{
		ID:          m.ID,
		Name:        m.Name,
		StockActual: m.StockActual,
		StockMin:    m.StockMin,
		UnitMeasure: m.UnitMeasure,
		Status:      m.Status,
		BelowMin:    m.BelowMinimum(),
	}
}

func toProductionOrderResponse(po *entity.ProductionOrder) dto.ProductionOrderResponse {
	return dto.ProductionOrderResponse{
		ID:         po.ID,
		OrderID:    po.OrderID,
		OperatorID: po.OperatorID,
		Status:     po.Status.String(),
		StartDate:  po.StartDate,
		EndDate:    po.EndDate,
	}
}

func toRawMovementResponse(m *entity.RawMaterialMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:                m.ID,
		Type:              m.Type,
		Quantity:          m.Quantity,
		ProductionOrderID: m.ProductionOrderID,
		Motive:            m.Motive,
		Observation:       m.Observation,
		Date:              m.Date,
		CreatedBy:         m.CreatedBy,
	}
}

func toProductMovementResponse(m *entity.ProductMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:                m.ID,
		Type:              m.Type,
		Quantity:          m.Quantity,
		ProductionOrderID: m.ProductionOrderID,
		Motive:            m.Motive,
		Observation:       m.Observation,
		Date:              m.Date,
		CreatedBy:         m.CreatedBy,
	}
}
