package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de inventario.
const (
	MovementTypeInitial    = "initial"    // carga inicial
	MovementTypeInbound    = "inbound"    // entrada (compra, recepción de orden)
	MovementTypeOutbound   = "outbound"   // salida (consumo)
	MovementTypeAdjustment = "adjustment" // ajuste manual, con dirección
	MovementTypeWaste      = "waste"      // merma
)

// Dirección de un ajuste.
const (
	DirectionIncrease = "increase"
	DirectionDecrease = "decrease"
)

// Tipos de referencia conocidos.
const (
	ReferenceInitialSetup  = "initial_setup"
	ReferencePurchaseOrder = "purchase_order"
)

// Movement es un registro inmutable del libro: la fuente de verdad del stock.
// Quantity siempre es > 0; el signo lo determinan Type y Direction.
type Movement struct {
	ID            string
	ItemID        string
	Type          string
	Direction     string // solo para adjustment
	Quantity      decimal.Decimal
	UnitCost      *decimal.Decimal
	ReferenceType string
	ReferenceID   string
	Notes         string
	PerformedBy   string // administrador; vacío = sistema
	PerformedAt   time.Time
	BalanceAfter  decimal.Decimal // stock resultante tras aplicar este movimiento
}

// MovementPage parámetros de paginación por keyset para el historial.
type MovementPage struct {
	ItemID string
	Since  *time.Time // nil = desde el inicio
	After  string     // último ID leído; vacío = primera página
	Limit  int
}
