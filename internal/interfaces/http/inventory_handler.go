package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	appinv "github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// InventoryHandler maneja ítems, movimientos y alertas (protegido).
type InventoryHandler struct {
	svc *appinv.Service
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(svc *appinv.Service) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

func itemFilter(c *fiber.Ctx) entity.ItemFilter {
	return entity.ItemFilter{Category: c.Query("category"), SupplierID: c.Query("supplier_id")}
}

func pageRequest(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{Limit: c.QueryInt("limit", 20), After: c.Query("after")}
}

// parseSince acepta "2006-01-02" o RFC3339; vacío = sin filtro.
func parseSince(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, domain.Invalid("since debe ser YYYY-MM-DD o RFC3339 (recibido %q)", raw)
	}
	return &t, nil
}

// CreateItem godoc
// @Summary      Crear ítem de inventario
// @Description  initial_stock > 0 queda registrado como movimiento inicial.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "ítem"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/items [post]
func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	actor := GetAdminID(c)
	if actor == "" {
		return unauthorized(c)
	}
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	it, err := h.svc.CreateItemFromRequest(c.Context(), actor, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromItem(it))
}

// ListItems godoc
// @Summary      Listar ítems
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        category     query  string  false  "categoría"
// @Param        supplier_id  query  string  false  "proveedor"
// @Param        limit        query  int     false  "tamaño de página (máx 100)"
// @Param        after        query  string  false  "último id leído"
// @Success      200  {object}  dto.ItemListResponse
// @Router       /api/inventory/items [get]
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	out, err := h.svc.ListItemsPage(c.Context(), itemFilter(c), pageRequest(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetItem godoc
// @Summary      Obtener ítem
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "id del ítem"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [get]
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	it, err := h.svc.GetItem(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromItem(it))
}

// UpdateItem godoc
// @Summary      Actualizar atributos del ítem (no el stock)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "id del ítem"
// @Param        body  body  dto.UpdateItemRequest  true  "campos a modificar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [put]
func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	actor := GetAdminID(c)
	if actor == "" {
		return unauthorized(c)
	}
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	it, err := h.svc.UpdateItemFromRequest(c.Context(), c.Params("id"), actor, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromItem(it))
}

// DeleteItem godoc
// @Summary      Eliminar ítem con su historial y alertas
// @Description  409 si una orden de compra vigente lo referencia.
// @Tags         inventory
// @Security     Bearer
// @Param        id   path  string  true  "id del ítem"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [delete]
func (h *InventoryHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.svc.DeleteItem(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  El movimiento y el nuevo stock se confirman juntos. Si después falla la
// @Description  reconciliación de alertas el movimiento queda registrado y se informa alert_warning.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "id del ítem"
// @Param        body  body  dto.RegisterMovementRequest  true  "type, quantity, direction (ajustes), unit_cost (entradas)"
// @Success      201   {object}  dto.MovementResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	actor := GetAdminID(c)
	if actor == "" {
		return unauthorized(c)
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	res, err := h.svc.ApplyMovementFromRequest(c.Context(), c.Params("id"), actor, in)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.MovementResultResponse{
		Movement: dto.FromMovement(res.Movement),
		Balance:  res.Balance(),
	}
	if res.AlertErr != nil {
		out.AlertWarning = res.AlertErr.Error()
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// History godoc
// @Summary      Historial de movimientos del ítem
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "id del ítem"
// @Param        since  query  string  false  "YYYY-MM-DD o RFC3339"
// @Param        limit  query  int     false  "tamaño de página (máx 100)"
// @Param        after  query  string  false  "último id leído"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/movements [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	since, err := parseSince(c.Query("since"))
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.HistoryPage(c.Context(), c.Params("id"), since, pageRequest(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reconcile godoc
// @Summary      Comparar stock almacenado contra el libro
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "id del ítem"
// @Success      200  {object}  dto.ReconciliationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/reconciliation [get]
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	rep, err := h.svc.Reconcile(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromReconciliation(rep))
}

// ListAlerts godoc
// @Summary      Listar alertas
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        item_id  query  string  false  "id del ítem"
// @Param        open     query  bool    false  "solo abiertas (default true)"
// @Success      200  {array}  dto.AlertResponse
// @Router       /api/inventory/alerts [get]
func (h *InventoryHandler) ListAlerts(c *fiber.Ctx) error {
	filter := entity.AlertFilter{ItemID: c.Query("item_id"), OpenOnly: c.QueryBool("open", true)}
	alerts, err := h.svc.Alerts().ListAlerts(c.Context(), filter)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, dto.FromAlert(a))
	}
	return c.JSON(out)
}

// ResolveAlert godoc
// @Summary      Resolver manualmente una alerta
// @Description  Si la condición persiste, la siguiente reconciliación abre una alerta nueva.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "id de la alerta"
// @Success      200  {object}  dto.AlertResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/alerts/{id}/resolve [post]
func (h *InventoryHandler) ResolveAlert(c *fiber.Ctx) error {
	actor := GetAdminID(c)
	if actor == "" {
		return unauthorized(c)
	}
	a, err := h.svc.Alerts().ResolveAlert(c.Context(), c.Params("id"), actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromAlert(a))
}

// SweepAlerts godoc
// @Summary      Reconciliar las alertas de todos los ítems
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /api/inventory/alerts/sweep [post]
func (h *InventoryHandler) SweepAlerts(c *fiber.Ctx) error {
	rep, err := h.svc.Alerts().Sweep(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"items":    rep.Items,
		"created":  rep.Created,
		"resolved": rep.Resolved,
		"failed":   rep.Failed,
	})
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Ítems en o bajo su punto de pedido con la cantidad sugerida hasta el stock óptimo,
//
//	ordenados por déficit relativo.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        category     query  string  false  "categoría"
// @Param        supplier_id  query  string  false  "proveedor"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/inventory/replenishment-list [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.svc.Replenishment(c.Context(), itemFilter(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}

// GetSummary godoc
// @Summary      Resumen del inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventorySummaryDTO
// @Router       /api/inventory/summary [get]
func (h *InventoryHandler) GetSummary(c *fiber.Ctx) error {
	sum, err := h.svc.Summary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(sum)
}
