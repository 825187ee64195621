package inventory

import (
	"context"
	"iter"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// DefaultPageSize tamaño de página usado por los iteradores.
const DefaultPageSize = 100

// Options parámetros del servicio; los valores cero toman el default.
type Options struct {
	ExpiryWindowDays int
	Location         *time.Location // zona de los días calendario para vencimientos
	PageSize         int
	Now              func() time.Time
}

func (o Options) withDefaults() Options {
	if o.ExpiryWindowDays <= 0 {
		o.ExpiryWindowDays = inventory.DefaultExpiryWindowDays
	}
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Service es el almacén de ítems: cada cambio de stock pasa por el libro de movimientos
// dentro de la misma transacción, y después se reconcilian las alertas.
type Service struct {
	tx     repository.TxRunner
	alerts *AlertEngine
	log    zerolog.Logger
	opts   Options
}

// NewService construye el servicio de inventario y su motor de alertas.
func NewService(tx repository.TxRunner, log zerolog.Logger, opts Options) *Service {
	opts = opts.withDefaults()
	log = log.With().Str("component", "inventory").Logger()
	return &Service{
		tx:     tx,
		alerts: newAlertEngine(tx, log, opts),
		log:    log,
		opts:   opts,
	}
}

// Alerts devuelve el motor de alertas asociado.
func (s *Service) Alerts() *AlertEngine {
	return s.alerts
}

// ItemInput datos para crear un ítem. InitialStock > 0 registra un movimiento initial.
type ItemInput struct {
	Name             string
	Category         string
	SupplierID       string
	Unit             string
	ReorderPoint     decimal.Decimal
	OptimalStock     decimal.Decimal
	UnitCost         decimal.Decimal
	ExpiryDate       *time.Time
	StorageLocation  string
	Notes            string
	InitialStock     decimal.Decimal
	InitialReference string // reference_type del movimiento initial; vacío = initial_setup
	Actor            string
}

// ItemPatch actualización parcial; los campos nil no cambian. Nunca toca el stock.
type ItemPatch struct {
	Name            *string
	Category        *string
	SupplierID      *string
	Unit            *string
	ReorderPoint    *decimal.Decimal
	OptimalStock    *decimal.Decimal
	ExpiryDate      *time.Time
	ClearExpiry     bool
	StorageLocation *string
	Notes           *string
	Actor           string
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// checkQueryID valida ids que llegan como filtro o cursor; vacío = sin filtro.
func checkQueryID(name, v string) error {
	if v == "" {
		return nil
	}
	if _, err := uuid.Parse(v); err != nil {
		return domain.Invalid("%s no es un id válido (recibido %q)", name, v)
	}
	return nil
}

// CreateItem crea el ítem con stock 0 y, si corresponde, su movimiento initial en la misma transacción.
func (s *Service) CreateItem(ctx context.Context, in ItemInput) (*entity.InventoryItem, error) {
	if in.InitialStock.IsNegative() {
		return nil, domain.Invalid("initial_stock no puede ser negativo")
	}
	now := s.opts.Now()
	item := &entity.InventoryItem{
		ID:              newID(),
		Name:            in.Name,
		Category:        in.Category,
		SupplierID:      in.SupplierID,
		Unit:            in.Unit,
		CurrentStock:    decimal.Zero,
		ReorderPoint:    in.ReorderPoint,
		OptimalStock:    in.OptimalStock,
		UnitCost:        in.UnitCost,
		ExpiryDate:      calendarDay(in.ExpiryDate),
		StorageLocation: in.StorageLocation,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := inventory.ValidateItem(item); err != nil {
		return nil, err
	}

	err := s.tx.Run(ctx, func(r repository.Repositories) error {
		if err := r.Items.Create(ctx, item); err != nil {
			return err
		}
		if !in.InitialStock.IsPositive() {
			return nil
		}
		ref := in.InitialReference
		if ref == "" {
			ref = entity.ReferenceInitialSetup
		}
		cost := item.UnitCost
		updated, _, err := RecordInTx(ctx, r, MovementInput{
			ItemID:        item.ID,
			Type:          entity.MovementTypeInitial,
			Quantity:      in.InitialStock,
			UnitCost:      &cost,
			ReferenceType: ref,
			Notes:         "初期在庫",
			Actor:         in.Actor,
		}, now)
		if err != nil {
			return err
		}
		item = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("item_id", item.ID).Str("name", item.Name).Str("stock", item.CurrentStock.String()).Msg("ítem creado")

	if _, err := s.alerts.Reconcile(ctx, item.ID, in.Actor); err != nil {
		s.log.Warn().Err(err).Str("item_id", item.ID).Msg("reconciliación de alertas pendiente")
	}
	return item, nil
}

// GetItem devuelve el ítem o domain.ErrNotFound.
func (s *Service) GetItem(ctx context.Context, id string) (*entity.InventoryItem, error) {
	var item *entity.InventoryItem
	err := s.tx.View(ctx, func(r repository.Repositories) error {
		var err error
		item, err = r.Items.GetByID(ctx, id)
		return err
	})
	return item, err
}

// UpdateItem aplica el parche sobre los datos descriptivos y umbrales, y reconcilia alertas.
func (s *Service) UpdateItem(ctx context.Context, id string, p ItemPatch) (*entity.InventoryItem, error) {
	var item *entity.InventoryItem
	err := s.tx.Run(ctx, func(r repository.Repositories) error {
		cur, err := r.Items.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		applyPatch(cur, p)
		if err := inventory.ValidateItem(cur); err != nil {
			return err
		}
		cur.UpdatedAt = s.opts.Now()
		if err := r.Items.Update(ctx, cur); err != nil {
			return err
		}
		item = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	if _, err := s.alerts.Reconcile(ctx, item.ID, p.Actor); err != nil {
		s.log.Warn().Err(err).Str("item_id", item.ID).Msg("reconciliación de alertas pendiente")
	}
	return item, nil
}

func applyPatch(it *entity.InventoryItem, p ItemPatch) {
	if p.Name != nil {
		it.Name = *p.Name
	}
	if p.Category != nil {
		it.Category = *p.Category
	}
	if p.SupplierID != nil {
		it.SupplierID = *p.SupplierID
	}
	if p.Unit != nil {
		it.Unit = *p.Unit
	}
	if p.ReorderPoint != nil {
		it.ReorderPoint = *p.ReorderPoint
	}
	if p.OptimalStock != nil {
		it.OptimalStock = *p.OptimalStock
	}
	if p.ClearExpiry {
		it.ExpiryDate = nil
	} else if p.ExpiryDate != nil {
		it.ExpiryDate = calendarDay(p.ExpiryDate)
	}
	if p.StorageLocation != nil {
		it.StorageLocation = *p.StorageLocation
	}
	if p.Notes != nil {
		it.Notes = *p.Notes
	}
}

// calendarDay normaliza una fecha de vencimiento a 00:00 UTC del mismo día.
func calendarDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &day
}

// DeleteItem borra el ítem con sus movimientos y alertas. domain.ErrConflict si una
// orden de compra vigente lo referencia.
func (s *Service) DeleteItem(ctx context.Context, id string) error {
	err := s.tx.Run(ctx, func(r repository.Repositories) error {
		if _, err := r.Items.GetForUpdate(ctx, id); err != nil {
			return err
		}
		referenced, err := r.PurchaseOrders.HasLiveReference(ctx, id)
		if err != nil {
			return err
		}
		if referenced {
			return domain.ErrConflict
		}
		return r.Items.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.log.Info().Str("item_id", id).Msg("ítem eliminado")
	return nil
}

// ListItems recorre los ítems por id ascendente, una página por transacción de lectura.
// Cada range vuelve a consultar desde el principio.
func (s *Service) ListItems(ctx context.Context, filter entity.ItemFilter) iter.Seq2[*entity.InventoryItem, error] {
	return func(yield func(*entity.InventoryItem, error) bool) {
		if err := checkQueryID("supplier_id", filter.SupplierID); err != nil {
			yield(nil, err)
			return
		}
		after := ""
		for {
			var page []*entity.InventoryItem
			err := s.tx.View(ctx, func(r repository.Repositories) error {
				var err error
				page, err = r.Items.ListPage(ctx, filter, after, s.opts.PageSize)
				return err
			})
			if err != nil {
				yield(nil, err)
				return
			}
			for _, it := range page {
				if !yield(it, nil) {
					return
				}
			}
			if len(page) < s.opts.PageSize {
				return
			}
			after = page[len(page)-1].ID
		}
	}
}
