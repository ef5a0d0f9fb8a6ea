package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stockline/stockline-api/internal/application/analytics"
	"github.com/stockline/stockline-api/internal/application/dto"
	appinv "github.com/stockline/stockline-api/internal/application/inventory"
	"github.com/stockline/stockline-api/internal/domain/entity"
	"github.com/stockline/stockline-api/pkg/validator"
)

// InventoryHandler expone el ledger de movimientos, estadísticas,
// reconciliación y el kardex en PDF.
type InventoryHandler struct {
	recorder   *appinv.RecordMovementUseCase
	reconciler *appinv.ReconcileUseCase
	stats      *analytics.StatisticsUseCase
	pdf        appinv.KardexPDFGenerator
}

// NewInventoryHandler construye el handler. pdf puede ser nil si el kardex
// en PDF está deshabilitado.
func NewInventoryHandler(
	recorder *appinv.RecordMovementUseCase,
	reconciler *appinv.ReconcileUseCase,
	stats *analytics.StatisticsUseCase,
	pdf appinv.KardexPDFGenerator,
) *InventoryHandler {
	return &InventoryHandler{recorder: recorder, reconciler: reconciler, stats: stats, pdf: pdf}
}

// RegisterMovement godoc
// @Summary      Registrar un movimiento de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.Struct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validator.Message(errs)})
	}

	userID := GetUserID(c)
	movement, err := h.recorder.RecordMovement(c.Context(), appinv.MovementInput{
		UserID:            userID,
		ProductID:         in.ProductID,
		Type:              in.Type,
		Quantity:          in.Quantity,
		Date:              in.Date,
		Notes:             in.Notes,
		ReferenceDocument: in.ReferenceDocument,
	})
	if err != nil {
		return respondError(c, err)
	}
	h.stats.InvalidateCache(c.Context(), userID)
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(movement))
}

// ListMovements godoc
// @Summary      Listar movimientos del usuario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "Fecha inicial (RFC3339)"
// @Param        to      query  string  false  "Fecha final exclusiva (RFC3339)"
// @Param        limit   query  int     false  "Límite por página"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	page.DefaultPage()

	movements, err := h.recorder.ListMovements(c.Context(), GetUserID(c), from, to, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toMovementList(movements, page))
}

// GetMovement godoc
// @Summary      Obtener un movimiento
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [get]
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	movement, err := h.recorder.GetMovement(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMovementResponse(movement))
}

// UpdateMovement godoc
// @Summary      Actualizar metadatos de un movimiento
// @Description  Solo notas, documento de referencia y verificación. Cantidad,
// @Description  tipo y fecha son inmutables y se rechazan con 409.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del movimiento"
// @Param        body  body  dto.UpdateMovementRequest  true  "Metadatos"
// @Success      200   {object}  dto.MovementResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [put]
func (h *InventoryHandler) UpdateMovement(c *fiber.Ctx) error {
	var in dto.UpdateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	movement, err := h.recorder.UpdateMeta(c.Context(), GetUserID(c), c.Params("id"), appinv.MetaUpdate{
		Notes:             in.Notes,
		ReferenceDocument: in.ReferenceDocument,
		Verified:          in.Verified,
		Quantity:          in.Quantity,
		Type:              in.Type,
		Date:              in.Date,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMovementResponse(movement))
}

// ReverseMovement godoc
// @Summary      Reversar un movimiento
// @Description  El ledger es inmutable: en lugar de borrar, registra el
// @Description  movimiento compensatorio y lo devuelve.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento a reversar"
// @Success      200  {object}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [delete]
func (h *InventoryHandler) ReverseMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	reversal, err := h.recorder.Reverse(c.Context(), userID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	h.stats.InvalidateCache(c.Context(), userID)
	return c.JSON(dto.ToMovementResponse(reversal))
}

// ListProductMovements godoc
// @Summary      Kardex de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        limit   query  int     false  "Límite por página"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/movements [get]
func (h *InventoryHandler) ListProductMovements(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	page.DefaultPage()

	movements, err := h.recorder.ListProductMovements(c.Context(), GetUserID(c), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toMovementList(movements, page))
}

// KardexPDF godoc
// @Summary      Kardex de un producto en PDF
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/kardex [get]
func (h *InventoryHandler) KardexPDF(c *fiber.Ctx) error {
	if h.pdf == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "generación de PDF deshabilitada"})
	}

	productID := c.Params("id")
	movements, err := h.recorder.ListProductMovements(c.Context(), GetUserID(c), productID, 500, 0)
	if err != nil {
		return respondError(c, err)
	}

	title := "Kardex de inventario"
	if len(movements) > 0 && movements[0].ProductName != "" {
		title = fmt.Sprintf("Kardex — %s", movements[0].ProductName)
	}
	document, err := h.pdf.GenerateKardexPDF(c.Context(), title, movements)
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="kardex-%s.pdf"`, productID))
	return c.Send(document)
}

// Reconcile godoc
// @Summary      Reconciliar el stock de un producto contra su ledger
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ReconcileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/reconcile [post]
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	userID := GetUserID(c)
	result, err := h.reconciler.Reconcile(c.Context(), userID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if result.Drifted {
		h.stats.InvalidateCache(c.Context(), userID)
	}
	return c.JSON(dto.ReconcileResponse{
		ProductID:     result.ProductID,
		PreviousStock: result.PreviousStock,
		CurrentStock:  result.Balance,
		Movements:     result.Movements,
		Drifted:       result.Drifted,
		ReconciledAt:  result.ReconciledAt,
	})
}

// Statistics godoc
// @Summary      Reporte de estadísticas de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StatisticsReport
// @Router       /api/inventory/statistics [get]
func (h *InventoryHandler) Statistics(c *fiber.Ctx) error {
	report, err := h.stats.ComputeStatistics(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// StatisticsROI godoc
// @Summary      Sub-vista de ROI del reporte de estadísticas
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ROIStatsDTO
// @Router       /api/inventory/statistics/roi [get]
func (h *InventoryHandler) StatisticsROI(c *fiber.Ctx) error {
	report, err := h.stats.ComputeStatistics(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report.ROI)
}

// parseTimeQuery lee un query param RFC3339 opcional.
func parseTimeQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("parámetro %s inválido, se espera RFC3339", name)
	}
	return &t, nil
}

func toMovementList(movements []*entity.Movement, page dto.PageRequest) dto.MovementListResponse {
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.ToMovementResponse(m))
	}
	return dto.MovementListResponse{
		Movements: out,
		Page:      dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
}
