package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-suministros/internal/application/dto"
	"github.com/jhoicas/Inventario-suministros/internal/application/inventory"
	"github.com/jhoicas/Inventario-suministros/internal/domain/entity"
)

// InventoryHandler ingresos y salidas de stock (protegido). Toda mutación pasa por el Ledger.
type InventoryHandler struct {
	ledger  *inventory.Ledger
	queries *inventory.MovementQueries
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.Ledger, queries *inventory.MovementQueries) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, queries: queries}
}

// ── Ingresos ──────────────────────────────────────────────────────────────────

// CreateReceipt godoc
// @Summary      Registrar ingreso
// @Description  Suma la cantidad al stock. Indicar product_id o new_product (variante nueva).
// @Tags         receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReceiptRequest  true  "Ingreso"
// @Success      201   {object}  dto.ReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/receipts [post]
func (h *InventoryHandler) CreateReceipt(c *fiber.Ctx) error {
	var in dto.CreateReceiptRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	if (in.ProductID == "") == (in.NewProduct == nil) {
		return badParam(c, "indicar product_id o new_product")
	}
	occurredOn, err := parseDate(in.OccurredOn)
	if err != nil {
		return respondError(c, err)
	}
	input := inventory.ReceiptInput{
		UserID:      GetUserID(c),
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		OccurredOn:  occurredOn,
		Responsible: in.Responsible,
		Notes:       in.Notes,
	}
	if d := in.NewProduct; d != nil {
		input.NewProduct = &inventory.ProductDraft{
			Name:         d.Name,
			CategoryID:   d.CategoryID,
			Brand:        d.Brand,
			PrinterModel: d.PrinterModel,
			Color:        d.Color,
			Unit:         d.Unit,
			StockMinimum: d.StockMinimum,
		}
	}
	receipt, err := h.ledger.RecordReceipt(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toReceiptResponse(receipt))
}

// ListReceipts godoc
// @Summary      Listar ingresos
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Producto"
// @Param        from        query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {array}   dto.ReceiptResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/receipts [get]
func (h *InventoryHandler) ListReceipts(c *fiber.Ctx) error {
	filter, err := movementFilterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.queries.ListReceipts(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ReceiptResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toReceiptResponse(r))
	}
	return c.JSON(out)
}

// GetReceipt godoc
// @Summary      Obtener ingreso
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ingreso"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [get]
func (h *InventoryHandler) GetReceipt(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	r, err := h.queries.GetReceipt(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toReceiptResponse(r))
}

// UpdateReceipt godoc
// @Summary      Editar ingreso
// @Description  Ajusta el stock por la diferencia de cantidad; no puede dejarlo negativo.
// @Tags         receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ingreso"
// @Param        body  body  dto.UpdateReceiptRequest  true  "Nuevos valores"
// @Success      200   {object}  dto.ReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [put]
func (h *InventoryHandler) UpdateReceipt(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateReceiptRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	occurredOn, err := parseDate(in.OccurredOn)
	if err != nil {
		return respondError(c, err)
	}
	r, err := h.ledger.EditReceipt(c.UserContext(), id, inventory.ReceiptEdit{
		UserID:      GetUserID(c),
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		OccurredOn:  occurredOn,
		Responsible: in.Responsible,
		Notes:       in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toReceiptResponse(r))
}

// DeleteReceipt godoc
// @Summary      Eliminar ingreso
// @Description  Descuenta la cantidad del stock; rechazado si ya se entregó.
// @Tags         receipts
// @Security     Bearer
// @Param        id   path  string  true  "ID del ingreso"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [delete]
func (h *InventoryHandler) DeleteReceipt(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.ledger.DeleteReceipt(c.UserContext(), id, GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Salidas ───────────────────────────────────────────────────────────────────

// CreateIssue godoc
// @Summary      Registrar salida
// @Tags         issues
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateIssueRequest  true  "Salida"
// @Success      201   {object}  dto.IssueResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK o CONFLICT"
// @Router       /api/issues [post]
func (h *InventoryHandler) CreateIssue(c *fiber.Ctx) error {
	var in dto.CreateIssueRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	occurredOn, err := parseDate(in.OccurredOn)
	if err != nil {
		return respondError(c, err)
	}
	issue, err := h.ledger.RecordIssue(c.UserContext(), inventory.IssueInput{
		UserID:      GetUserID(c),
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		OccurredOn:  occurredOn,
		Destination: in.Destination,
		Responsible: in.Responsible,
		Notes:       in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toIssueResponse(issue))
}

// ListIssues godoc
// @Summary      Listar salidas
// @Tags         issues
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Producto"
// @Param        from        query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {array}   dto.IssueResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/issues [get]
func (h *InventoryHandler) ListIssues(c *fiber.Ctx) error {
	filter, err := movementFilterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.queries.ListIssues(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.IssueResponse, 0, len(list))
	for _, i := range list {
		out = append(out, toIssueResponse(i))
	}
	return c.JSON(out)
}

// GetIssue godoc
// @Summary      Obtener salida
// @Tags         issues
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la salida"
// @Success      200  {object}  dto.IssueResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/issues/{id} [get]
func (h *InventoryHandler) GetIssue(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	i, err := h.queries.GetIssue(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toIssueResponse(i))
}

// UpdateIssue godoc
// @Summary      Editar salida
// @Tags         issues
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la salida"
// @Param        body  body  dto.UpdateIssueRequest  true  "Nuevos valores"
// @Success      200   {object}  dto.IssueResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/issues/{id} [put]
func (h *InventoryHandler) UpdateIssue(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateIssueRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	occurredOn, err := parseDate(in.OccurredOn)
	if err != nil {
		return respondError(c, err)
	}
	i, err := h.ledger.EditIssue(c.UserContext(), id, inventory.IssueEdit{
		UserID:      GetUserID(c),
		Quantity:    in.Quantity,
		OccurredOn:  occurredOn,
		Destination: in.Destination,
		Responsible: in.Responsible,
		Notes:       in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toIssueResponse(i))
}

// DeleteIssue godoc
// @Summary      Eliminar salida
// @Description  Devuelve la cantidad al stock.
// @Tags         issues
// @Security     Bearer
// @Param        id   path  string  true  "ID de la salida"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/issues/{id} [delete]
func (h *InventoryHandler) DeleteIssue(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.ledger.DeleteIssue(c.UserContext(), id, GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── mapeo ─────────────────────────────────────────────────────────────────────

func toReceiptResponse(r *entity.Receipt) dto.ReceiptResponse {
	return dto.ReceiptResponse{
		ID:          r.ID,
		ProductID:   r.ProductID,
		ProductName: r.ProductName,
		Quantity:    r.Quantity,
		UnitPrice:   r.UnitPrice,
		Total:       r.Total,
		OccurredOn:  r.OccurredOn.Format(dto.DateLayout),
		Responsible: r.Responsible,
		Notes:       r.Notes,
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toIssueResponse(i *entity.Issue) dto.IssueResponse {
	return dto.IssueResponse{
		ID:          i.ID,
		ProductID:   i.ProductID,
		ProductName: i.ProductName,
		Quantity:    i.Quantity,
		OccurredOn:  i.OccurredOn.Format(dto.DateLayout),
		Destination: i.Destination,
		Responsible: i.Responsible,
		Notes:       i.Notes,
		CreatedBy:   i.CreatedBy,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}
