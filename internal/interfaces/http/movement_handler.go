package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/application/ledger"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

// MovementHandler maneja las peticiones HTTP del libro de movimientos (protegido).
type MovementHandler struct {
	uc *ledger.UseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *ledger.UseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar movimiento de inventario
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "kind, lines[] (item_id, quantity, unit), reason según tipo"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.uc.CreateFromRequest(c.Context(), userID, in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromMovement(mov))
}

// Update godoc
// @Summary      Editar movimiento (revierte efecto original y aplica el nuevo)
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del movimiento"
// @Param        body  body  dto.UpdateMovementRequest  true  "campos y líneas nuevas"
// @Success      200   {object}  dto.MovementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [put]
func (h *MovementHandler) Update(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.UpdateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.uc.UpdateFromRequest(c.Context(), c.Params("id"), userID, in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.FromMovement(mov))
}

// Delete godoc
// @Summary      Eliminar movimiento (revierte su efecto sobre el stock)
// @Tags         movements
// @Security     Bearer
// @Param        id  path  string  true  "ID del movimiento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Obtener movimiento por ID
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	mov, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.FromMovement(mov))
}

// List godoc
// @Summary      Listar movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        kind     query  string  false  "Filtrar por tipo"
// @Param        item_id  query  string  false  "Filtrar por artículo"
// @Param        from     query  string  false  "Desde (RFC3339)"
// @Param        to       query  string  false  "Hasta (RFC3339)"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()

	filter := repository.MovementFilter{
		Kind:   c.Query("kind"),
		ItemID: c.Query("item_id"),
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	if s := c.Query("from"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			filter.From = &t
		}
	}
	if s := c.Query("to"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			filter.To = &t
		}
	}
	list, err := h.uc.List(c.Context(), filter)
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.FromMovement(m))
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

// ClosingSummary godoc
// @Summary      Resumen de cierre de tienda del día
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "Día (YYYY-MM-DD); por defecto hoy"
// @Success      200  {array}  dto.ClosingLineResponse
// @Router       /api/movements/closing [get]
func (h *MovementHandler) ClosingSummary(c *fiber.Ctx) error {
	day := time.Now()
	if s := c.Query("date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, formato YYYY-MM-DD"})
		}
		day = t
	}
	lines, err := h.uc.ClosingSummary(c.Context(), day)
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.ClosingLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.ClosingLineResponse{
			ItemID:          l.ItemID,
			ItemName:        l.ItemName,
			Credits:         l.Credits,
			Debits:          l.Debits,
			NetChange:       l.NetChange,
			ClosingQuantity: l.ClosingQuantity,
			Movements:       l.Movements,
		})
	}
	return c.JSON(fiber.Map{"date": day.Format("2006-01-02"), "lines": out})
}
