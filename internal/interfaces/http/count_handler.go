package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcardenas-dev/gestion-api/internal/application/counting"
	"github.com/jcardenas-dev/gestion-api/internal/application/dto"
	"github.com/jcardenas-dev/gestion-api/internal/domain/entity"
)

// CountHandler maneja las peticiones HTTP de conteos físicos (protegido).
type CountHandler struct {
	uc *counting.ReconcileUseCase
}

// NewCountHandler construye el handler.
func NewCountHandler(uc *counting.ReconcileUseCase) *CountHandler {
	return &CountHandler{uc: uc}
}

// CreateCount godoc
// @Summary      Conciliar un conteo físico de inventario
// @Description  Toma la foto de saldos del sistema, concilia contra las cantidades
//
//	contadas y guarda la sesión valorizada. La sesión queda inmutable.
//
// @Tags         counts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CountSessionRequest  true  "líneas contadas (product_code, physical_qty)"
// @Success      201   {object}  dto.CountSessionDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/counts [post]
func (h *CountHandler) CreateCount(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CountSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	input := counting.SessionInput{CompanyID: companyID, PerformedBy: userID}
	for _, line := range in.Lines {
		input.Lines = append(input.Lines, counting.CountLineInput{
			ProductCode: line.ProductCode,
			PhysicalQty: line.PhysicalQty,
		})
	}
	session, err := h.uc.Reconcile(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCountSessionDTO(session))
}

// GetCount godoc
// @Summary      Consultar una sesión de conteo guardada
// @Tags         counts
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la sesión"
// @Success      200  {object}  dto.CountSessionDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/counts/{id} [get]
func (h *CountHandler) GetCount(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	session, err := h.uc.GetSession(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCountSessionDTO(session))
}

func toCountSessionDTO(s *entity.CountSession) dto.CountSessionDTO {
	out := dto.CountSessionDTO{
		ID:            s.ID,
		PerformedBy:   s.PerformedBy,
		ShortageTotal: s.ShortageTotal,
		OverageTotal:  s.OverageTotal,
		CreatedAt:     s.CreatedAt,
	}
	for _, l := range s.Lines {
		out.Lines = append(out.Lines, dto.CountLineDTO{
			ProductCode:   l.ProductCode,
			UnitCost:      l.UnitCost,
			SystemQty:     l.SystemQty,
			PhysicalQty:   l.PhysicalQty,
			Shortage:      l.Shortage,
			Overage:       l.Overage,
			ShortageValue: l.ShortageValue,
			OverageValue:  l.OverageValue,
		})
	}
	return out
}
