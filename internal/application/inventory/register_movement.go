package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// ApplyMovementFromRequest adapta el request HTTP a ApplyMovement(ctx, MovementInput).
// actor es el administrador autenticado.
func (s *Service) ApplyMovementFromRequest(ctx context.Context, itemID, actor string, in dto.RegisterMovementRequest) (*MovementResult, error) {
	return s.ApplyMovement(ctx, MovementInput{
		ItemID:        itemID,
		Type:          in.Type,
		Direction:     in.Direction,
		Quantity:      in.Quantity,
		UnitCost:      in.UnitCost,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		Notes:         in.Notes,
		Actor:         actor,
	})
}

// CreateItemFromRequest adapta el request HTTP a CreateItem.
func (s *Service) CreateItemFromRequest(ctx context.Context, actor string, in dto.CreateItemRequest) (*entity.InventoryItem, error) {
	return s.CreateItem(ctx, ItemInput{
		Name:            in.Name,
		Category:        in.Category,
		SupplierID:      in.SupplierID,
		Unit:            in.Unit,
		ReorderPoint:    in.ReorderPoint,
		OptimalStock:    in.OptimalStock,
		UnitCost:        in.UnitCost,
		ExpiryDate:      in.ExpiryDate.Ptr(),
		StorageLocation: in.StorageLocation,
		Notes:           in.Notes,
		InitialStock:    in.InitialStock,
		Actor:           actor,
	})
}

// UpdateItemFromRequest adapta el request HTTP a UpdateItem.
func (s *Service) UpdateItemFromRequest(ctx context.Context, id, actor string, in dto.UpdateItemRequest) (*entity.InventoryItem, error) {
	return s.UpdateItem(ctx, id, ItemPatch{
		Name:            in.Name,
		Category:        in.Category,
		SupplierID:      in.SupplierID,
		Unit:            in.Unit,
		ReorderPoint:    in.ReorderPoint,
		OptimalStock:    in.OptimalStock,
		ExpiryDate:      in.ExpiryDate.Ptr(),
		ClearExpiry:     in.ClearExpiry,
		StorageLocation: in.StorageLocation,
		Notes:           in.Notes,
		Actor:           actor,
	})
}

// ListItemsPage devuelve una página de ítems con id > page.After.
func (s *Service) ListItemsPage(ctx context.Context, filter entity.ItemFilter, page dto.PageRequest) (*dto.ItemListResponse, error) {
	page.DefaultPage()
	if err := checkQueryID("supplier_id", filter.SupplierID); err != nil {
		return nil, err
	}
	if err := checkQueryID("after", page.After); err != nil {
		return nil, err
	}
	var items []*entity.InventoryItem
	err := s.tx.View(ctx, func(r repository.Repositories) error {
		var err error
		items, err = r.Items.ListPage(ctx, filter, page.After, page.Limit+1)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := &dto.ItemListResponse{Items: make([]dto.ItemResponse, 0, len(items))}
	if len(items) > page.Limit {
		items = items[:page.Limit]
		out.NextAfter = items[len(items)-1].ID
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.FromItem(it))
	}
	return out, nil
}

// HistoryPage devuelve una página del historial del ítem con id > page.After.
func (s *Service) HistoryPage(ctx context.Context, itemID string, since *time.Time, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.DefaultPage()
	if err := checkQueryID("after", page.After); err != nil {
		return nil, err
	}
	var movs []*entity.Movement
	err := s.tx.View(ctx, func(r repository.Repositories) error {
		if _, err := r.Items.GetByID(ctx, itemID); err != nil {
			return err
		}
		var err error
		movs, err = r.Movements.ListPage(ctx, entity.MovementPage{
			ItemID: itemID, Since: since, After: page.After, Limit: page.Limit + 1,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	out := &dto.MovementListResponse{Movements: make([]dto.MovementResponse, 0, len(movs))}
	if len(movs) > page.Limit {
		movs = movs[:page.Limit]
		out.NextAfter = movs[len(movs)-1].ID
	}
	for _, m := range movs {
		out.Movements = append(out.Movements, dto.FromMovement(m))
	}
	return out, nil
}
