package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcardenas-dev/gestion-api/internal/application/dto"
	"github.com/jcardenas-dev/gestion-api/internal/application/sales"
	"github.com/jcardenas-dev/gestion-api/internal/domain/entity"
)

// DocumentHandler maneja las peticiones HTTP de cotizaciones y pedidos (protegido).
type DocumentHandler struct {
	uc *sales.DocumentUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *sales.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cotización o pedido
// @Description  Asigna el consecutivo (COT-/PED-) y crea el documento. Los pedidos
//
//	nacen en OPEN y reservan stock; las cotizaciones nacen en DRAFT y no.
//
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDocumentRequest  true  "type (QUOTE|ORDER), customer_name, items"
// @Success      201   {object}  dto.DocumentDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/documents [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	input := sales.CreateInput{
		CompanyID:    companyID,
		UserID:       userID,
		Type:         in.Type,
		CustomerName: in.CustomerName,
	}
	for _, item := range in.Items {
		input.Items = append(input.Items, sales.ItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	doc, err := h.uc.Create(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toDocumentDTO(doc))
}

// GetByID godoc
// @Summary      Consultar documento por ID
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	doc, err := h.uc.GetByID(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toDocumentDTO(doc))
}

// Finalize godoc
// @Summary      Finalizar (despachar) un pedido
// @Description  Registra un movimiento OUT por cada línea y marca el pedido
//
//	FINALIZED en una transacción. Solo pedidos en DRAFT/OPEN.
//
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del pedido"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/finalize [post]
func (h *DocumentHandler) Finalize(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.Finalize(c.Context(), companyID, userID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "pedido finalizado"})
}

// Cancel godoc
// @Summary      Cancelar un documento
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del documento"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/cancel [post]
func (h *DocumentHandler) Cancel(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.Cancel(c.Context(), companyID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "documento cancelado"})
}

func toDocumentDTO(d *entity.SalesDocument) dto.DocumentDTO {
	out := dto.DocumentDTO{
		ID:           d.ID,
		Number:       d.Number,
		Type:         d.Type,
		Status:       d.Status,
		CustomerName: d.CustomerName,
		CreatedAt:    d.CreatedAt,
	}
	for _, it := range d.Items {
		out.Items = append(out.Items, dto.DocumentItemDTO{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return out
}
