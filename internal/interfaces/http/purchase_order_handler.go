package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/purchasing"
)

// PurchaseOrderHandler maneja las órdenes de compra (protegido).
type PurchaseOrderHandler struct {
	uc *purchasing.UseCase
}

// NewPurchaseOrderHandler construye el handler.
func NewPurchaseOrderHandler(uc *purchasing.UseCase) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de compra
// @Description  Subtotal, impuesto y total se calculan por línea; tax_rate vacío = 10%.
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "orden"
// @Success      201   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [post]
func (h *PurchaseOrderHandler) Create(c *fiber.Ctx) error {
	actor := GetAdminID(c)
	if actor == "" {
		return unauthorized(c)
	}
	var in dto.CreatePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	po, err := h.uc.CreateOrder(c.Context(), actor, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromPurchaseOrder(po))
}

// GetByID GET /api/purchase-orders/:id
func (h *PurchaseOrderHandler) GetByID(c *fiber.Ctx) error {
	po, err := h.uc.GetOrder(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromPurchaseOrder(po))
}

// Receive godoc
// @Summary      Recibir orden de compra
// @Description  Registra una entrada por cada línea vinculada a inventario y marca la orden como entregada.
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "id de la orden"
// @Success      200  {object}  dto.ReceiveOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/receive [post]
func (h *PurchaseOrderHandler) Receive(c *fiber.Ctx) error {
	actor := GetAdminID(c)
	if actor == "" {
		return unauthorized(c)
	}
	res, err := h.uc.ReceiveOrder(c.Context(), c.Params("id"), actor)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.ReceiveOrderResponse{
		Order:     dto.FromPurchaseOrder(res.Order),
		Movements: make([]dto.MovementResponse, 0, len(res.Movements)),
	}
	for _, m := range res.Movements {
		out.Movements = append(out.Movements, dto.FromMovement(m))
	}
	if res.AlertErr != nil {
		out.AlertWarning = res.AlertErr.Error()
	}
	return c.JSON(out)
}

// Cancel POST /api/purchase-orders/:id/cancel
func (h *PurchaseOrderHandler) Cancel(c *fiber.Ctx) error {
	po, err := h.uc.CancelOrder(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromPurchaseOrder(po))
}

// Delete borrado lógico; la orden deja de bloquear el borrado de ítems.
// DELETE /api/purchase-orders/:id
func (h *PurchaseOrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteOrder(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
