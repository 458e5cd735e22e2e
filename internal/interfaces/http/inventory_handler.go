package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jcardenas-dev/gestion-api/internal/application/dto"
	"github.com/jcardenas-dev/gestion-api/internal/application/inventory"
	"github.com/jcardenas-dev/gestion-api/internal/domain/entity"
	"github.com/jcardenas-dev/gestion-api/internal/domain/repository"
)

// InventoryHandler maneja las peticiones HTTP del núcleo de inventario (protegido).
type InventoryHandler struct {
	appendUC     *inventory.AppendMovementUseCase
	transferUC   *inventory.TransferUseCase
	availability *inventory.AvailabilityUseCase
	kardexUC     *inventory.KardexUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	appendUC *inventory.AppendMovementUseCase,
	transferUC *inventory.TransferUseCase,
	availability *inventory.AvailabilityUseCase,
	kardexUC *inventory.KardexUseCase,
) *InventoryHandler {
	return &InventoryHandler{
		appendUC:     appendUC,
		transferUC:   transferUC,
		availability: availability,
		kardexUC:     kardexUC,
	}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, type (IN|OUT|ADJUSTMENT), quantity, unit_cost (entradas)"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	mov, err := h.appendUC.Append(c.Context(), inventory.MovementInput{
		CompanyID: companyID,
		UserID:    userID,
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
		Reference: in.Reference,
		Notes:     in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// Transfer godoc
// @Summary      Registrar traslado (dos patas atómicas)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "product_id, quantity, from_ref, to_ref"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfers [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	err := h.transferUC.Transfer(c.Context(), inventory.TransferInput{
		CompanyID: companyID,
		UserID:    userID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		FromRef:   in.FromRef,
		ToRef:     in.ToRef,
		Notes:     in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "traslado registrado"})
}

// GetAvailability godoc
// @Summary      Disponibilidad por producto (saldo, reservado, disponible)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_ids  query  string  true  "IDs de producto separados por coma"
// @Success      200  {array}   dto.AvailabilityRowDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/availability [get]
func (h *InventoryHandler) GetAvailability(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	raw := strings.TrimSpace(c.Query("product_ids"))
	if raw == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_ids requerido"})
	}
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	rows, err := h.availability.Availability(c.Context(), companyID, ids)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.AvailabilityRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.AvailabilityRowDTO{
			ProductID: r.ProductID,
			SKU:       r.SKU,
			Name:      r.Name,
			Balance:   r.Balance,
			Reserved:  r.Reserved,
			Available: r.Available,
			LowStock:  r.LowStock,
		})
	}
	return c.JSON(out)
}

// GetKardex godoc
// @Summary      Kardex de un producto (movimientos con saldo acumulado)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productID  path   string  true   "ID del producto"
// @Param        type       query  string  false  "Filtrar por tipo de movimiento"
// @Param        from       query  string  false  "Desde (RFC3339)"
// @Param        to         query  string  false  "Hasta (RFC3339)"
// @Success      200  {array}   dto.KardexEntryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/kardex/{productID} [get]
func (h *InventoryHandler) GetKardex(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	productID := c.Params("productID")

	var filter repository.MovementFilter
	filter.Type = c.Query("type")
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
		}
		filter.To = &t
	}

	entries, err := h.kardexUC.MovementsFor(c.Context(), companyID, productID, filter)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.KardexEntryDTO, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		out = append(out, dto.KardexEntryDTO{
			Movement: toMovementResponse(&e.Movement),
			Delta:    e.Delta,
			Running:  e.Running,
		})
	}
	return c.JSON(out)
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		UnitCost:  m.UnitCost,
		Reference: m.Reference,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
		CreatedBy: m.CreatedBy,
	}
}
