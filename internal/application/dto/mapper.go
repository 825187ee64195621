package dto

import (
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

// FromItem convierte un ítem a su respuesta.
func FromItem(it *entity.InventoryItem) ItemResponse {
	return ItemResponse{
		ID:              it.ID,
		Name:            it.Name,
		Category:        it.Category,
		SupplierID:      it.SupplierID,
		Unit:            it.Unit,
		CurrentStock:    it.CurrentStock,
		ReorderPoint:    it.ReorderPoint,
		OptimalStock:    it.OptimalStock,
		UnitCost:        it.UnitCost,
		ExpiryDate:      NewDate(it.ExpiryDate),
		StorageLocation: it.StorageLocation,
		Notes:           it.Notes,
		CreatedAt:       it.CreatedAt,
		UpdatedAt:       it.UpdatedAt,
	}
}

// FromMovement convierte un movimiento a su respuesta.
func FromMovement(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:            m.ID,
		ItemID:        m.ItemID,
		Type:          m.Type,
		Direction:     m.Direction,
		Quantity:      m.Quantity,
		UnitCost:      m.UnitCost,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		Notes:         m.Notes,
		PerformedBy:   m.PerformedBy,
		PerformedAt:   m.PerformedAt,
		BalanceAfter:  m.BalanceAfter,
	}
}

// FromAlert convierte una alerta a su respuesta.
func FromAlert(a *entity.Alert) AlertResponse {
	return AlertResponse{
		ID:         a.ID,
		ItemID:     a.ItemID,
		Type:       a.Type,
		Level:      a.Level,
		Message:    a.Message,
		IsResolved: a.IsResolved,
		ResolvedAt: a.ResolvedAt,
		ResolvedBy: a.ResolvedBy,
		CreatedAt:  a.CreatedAt,
	}
}

// FromReconciliation convierte un informe de reconciliación.
func FromReconciliation(r inventory.ReconciliationReport) ReconciliationResponse {
	return ReconciliationResponse{
		ItemID:        r.ItemID,
		StoredStock:   r.StoredStock,
		ReplayedStock: r.ReplayedStock,
		MovementCount: r.MovementCount,
		Drift:         r.Drift,
		InSync:        r.InSync(),
	}
}

// FromPurchaseOrder convierte una orden de compra con sus líneas.
func FromPurchaseOrder(po *entity.PurchaseOrder) PurchaseOrderResponse {
	out := PurchaseOrderResponse{
		ID:                   po.ID,
		OrderNumber:          po.OrderNumber,
		SupplierID:           po.SupplierID,
		OrderDate:            Date{Time: po.OrderDate},
		ExpectedDeliveryDate: NewDate(po.ExpectedDeliveryDate),
		ActualDeliveryDate:   NewDate(po.ActualDeliveryDate),
		Status:               po.Status,
		Subtotal:             po.Subtotal,
		TaxAmount:            po.TaxAmount,
		TotalAmount:          po.TotalAmount,
		Notes:                po.Notes,
		CreatedBy:            po.CreatedBy,
		CreatedAt:            po.CreatedAt,
		Items:                make([]PurchaseOrderItemResponse, 0, len(po.Items)),
	}
	for _, it := range po.Items {
		out.Items = append(out.Items, PurchaseOrderItemResponse{
			ID:              it.ID,
			InventoryItemID: it.InventoryItemID,
			ItemName:        it.ItemName,
			Description:     it.Description,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			TaxRate:         it.TaxRate,
			Amount:          it.Amount,
		})
	}
	return out
}

// FromAdministrator convierte un administrador (sin hash).
func FromAdministrator(a *entity.Administrator) AdministratorResponse {
	return AdministratorResponse{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		Role:      a.Role,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
	}
}
