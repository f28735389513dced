package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fieldops-api/internal/application/dto"
	"github.com/jhoicas/fieldops-api/internal/application/stock"
	"github.com/jhoicas/fieldops-api/internal/domain"
	"github.com/jhoicas/fieldops-api/internal/domain/entity"
)

// StockHandler maneja las peticiones HTTP del ledger de stock y sus workflows
// (asignaciones, traslados, devoluciones, ajustes).
type StockHandler struct {
	ledgerUC *stock.LedgerUseCase
	opsUC    *stock.OpsUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(ledgerUC *stock.LedgerUseCase, opsUC *stock.OpsUseCase) *StockHandler {
	return &StockHandler{ledgerUC: ledgerUC, opsUC: opsUC}
}

// stockError mapea los errores de dominio de stock a HTTP.
func stockError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	}
	if errors.Is(err, domain.ErrDuplicate) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el registro ya existe"})
	}
	if errors.Is(err, domain.ErrInsufficientStock) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente en el scope"})
	}
	if errors.Is(err, domain.ErrConflict) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "la solicitud no está pendiente"})
	}
	if errors.Is(err, domain.ErrConcurrencyConflict) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENCY", Message: "conflicto de concurrencia, reintente"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// ── Saldos y ledger ───────────────────────────────────────────────────────────

// GetBalance godoc
// @Summary      Saldo actual de un scope
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        agent_id   query  string  true   "ID del agente"
// @Param        pack_id    query  string  true   "ID del pack"
// @Param        market_id  query  string  false  "ID del mercado (vacío = stock global del agente)"
// @Success      200  {object}  dto.BalanceResponse
// @Router       /api/stock/balance [get]
func (h *StockHandler) GetBalance(c *fiber.Ctx) error {
	scope := entity.MovementScope{
		AgentID:  c.Query("agent_id"),
		PackID:   c.Query("pack_id"),
		MarketID: c.Query("market_id"),
	}
	if scope.AgentID == "" || scope.PackID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "agent_id y pack_id son obligatorios"})
	}
	qty, err := h.ledgerUC.GetCurrentBalance(c.Context(), scope)
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(dto.BalanceResponse{
		AgentID:  scope.AgentID,
		PackID:   scope.PackID,
		MarketID: scope.MarketID,
		Quantity: qty,
	})
}

// ListLedger godoc
// @Summary      Histórico del ledger de un scope
// @Description  Entradas inmutables en orden cronológico descendente; cada una
//
//	trae el saldo resultante (balance_after) para auditoría.
//
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        agent_id   query  string  true   "ID del agente"
// @Param        pack_id    query  string  true   "ID del pack"
// @Param        market_id  query  string  false  "ID del mercado"
// @Param        from       query  string  false  "Desde (RFC3339)"
// @Param        to         query  string  false  "Hasta (RFC3339)"
// @Success      200  {array}  dto.LedgerEntryResponse
// @Router       /api/stock/ledger [get]
func (h *StockHandler) ListLedger(c *fiber.Ctx) error {
	scope := entity.MovementScope{
		AgentID:  c.Query("agent_id"),
		PackID:   c.Query("pack_id"),
		MarketID: c.Query("market_id"),
	}
	if scope.AgentID == "" || scope.PackID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "agent_id y pack_id son obligatorios"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	page.DefaultPage()

	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválida, formato RFC3339"})
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválida, formato RFC3339"})
		}
		to = &t
	}

	entries, err := h.ledgerUC.ListLedger(c.Context(), scope, from, to, page.Limit, page.Offset)
	if err != nil {
		return stockError(c, err)
	}
	out := make([]*dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toLedgerEntryResponse(e))
	}
	return c.JSON(out)
}

// AgentStock godoc
// @Summary      Snapshot de stock de un agente
// @Description  Todos los saldos no nulos del agente (pack x mercado).
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        agent_id  path  string  true  "ID del agente"
// @Success      200  {array}  dto.BalanceResponse
// @Router       /api/stock/agents/{agent_id} [get]
func (h *StockHandler) AgentStock(c *fiber.Ctx) error {
	balances, err := h.ledgerUC.AgentStock(c.Context(), c.Params("agent_id"))
	if err != nil {
		return stockError(c, err)
	}
	out := make([]*dto.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, &dto.BalanceResponse{
			AgentID:  b.AgentID,
			PackID:   b.PackID,
			MarketID: b.MarketID,
			Quantity: b.Quantity,
		})
	}
	return c.JSON(out)
}

// ── Asignaciones ──────────────────────────────────────────────────────────────

// CreateAllocation godoc
// @Summary      Asignar stock a un agente
// @Description  Crea la asignación y registra el movimiento "allocation" en la misma transacción.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAllocationRequest  true  "slip_number único, agent_id, pack_id, quantity > 0"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/allocations [post]
func (h *StockHandler) CreateAllocation(c *fiber.Ctx) error {
	var in dto.CreateAllocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	alloc, err := h.opsUC.CreateAllocation(c.Context(), GetUserID(c), in)
	if err != nil {
		return stockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(alloc)
}

// AllocationSlip godoc
// @Summary      Planilla de entrega en PDF
// @Tags         stock
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la asignación"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/allocations/{id}/slip [get]
func (h *StockHandler) AllocationSlip(c *fiber.Ctx) error {
	pdfBytes, err := h.opsUC.AllocationSlip(c.Context(), c.Params("id"))
	if err != nil {
		return stockError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `inline; filename="planilla.pdf"`)
	return c.Send(pdfBytes)
}

// ListAllocations godoc
// @Summary      Listar asignaciones de un agente
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        agent_id  query  string  true  "ID del agente"
// @Success      200  {array}  map[string]any
// @Router       /api/stock/allocations [get]
func (h *StockHandler) ListAllocations(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	page.DefaultPage()
	list, err := h.opsUC.ListAllocations(c.Context(), c.Query("agent_id"), page.Limit, page.Offset)
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(list)
}

// ── Traslados ─────────────────────────────────────────────────────────────────

// RequestTransfer godoc
// @Summary      Solicitar traslado de stock
// @Description  El agente autenticado solicita mover stock a otro agente o a un mercado. Queda pending.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "exactamente uno de to_agent_id / to_market_id"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/transfers [post]
func (h *StockHandler) RequestTransfer(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	transfer, err := h.opsUC.RequestTransfer(c.Context(), GetUserID(c), in)
	if err != nil {
		return stockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(transfer)
}

// ApproveTransfer godoc
// @Summary      Aprobar y ejecutar traslado
// @Description  Resta del origen y suma en el destino en una sola transacción; deja dos entradas en el ledger.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del traslado"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/transfers/{id}/approve [post]
func (h *StockHandler) ApproveTransfer(c *fiber.Ctx) error {
	if err := h.opsUC.ApproveTransfer(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return stockError(c, err)
	}
	return c.JSON(fiber.Map{"message": "traslado ejecutado"})
}

// RejectTransfer godoc
// @Summary      Rechazar traslado pendiente
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del traslado"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/transfers/{id}/reject [post]
func (h *StockHandler) RejectTransfer(c *fiber.Ctx) error {
	if err := h.opsUC.RejectTransfer(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return stockError(c, err)
	}
	return c.JSON(fiber.Map{"message": "traslado rechazado"})
}

// ListTransfers godoc
// @Summary      Listar traslados
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending|approved|rejected|completed (vacío = todos)"
// @Success      200  {array}  map[string]any
// @Router       /api/stock/transfers [get]
func (h *StockHandler) ListTransfers(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	page.DefaultPage()
	list, err := h.opsUC.ListTransfers(c.Context(), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(list)
}

// ── Devoluciones ──────────────────────────────────────────────────────────────

// FileReturn godoc
// @Summary      Presentar devolución
// @Description  El agente autenticado presenta una devolución (dañado, vencido, rechazado). Queda pending.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReturnRequest  true  "pack_id, quantity > 0, reason_code"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/returns [post]
func (h *StockHandler) FileReturn(c *fiber.Ctx) error {
	var in dto.CreateReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ret, err := h.opsUC.FileReturn(c.Context(), GetUserID(c), in)
	if err != nil {
		return stockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ret)
}

// ReceiveReturn godoc
// @Summary      Recibir devolución pendiente
// @Description  Registra el movimiento "return" y marca la devolución como received en la misma transacción.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la devolución"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/returns/{id}/receive [post]
func (h *StockHandler) ReceiveReturn(c *fiber.Ctx) error {
	if err := h.opsUC.ReceiveReturn(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return stockError(c, err)
	}
	return c.JSON(fiber.Map{"message": "devolución recibida"})
}

// RejectReturn godoc
// @Summary      Rechazar devolución pendiente
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la devolución"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/returns/{id}/reject [post]
func (h *StockHandler) RejectReturn(c *fiber.Ctx) error {
	if err := h.opsUC.RejectReturn(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return stockError(c, err)
	}
	return c.JSON(fiber.Map{"message": "devolución rechazada"})
}

// ListReturns godoc
// @Summary      Listar devoluciones
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending|received|rejected (vacío = todas)"
// @Success      200  {array}  map[string]any
// @Router       /api/stock/returns [get]
func (h *StockHandler) ListReturns(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	page.DefaultPage()
	list, err := h.opsUC.ListReturns(c.Context(), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(list)
}

// ── Ajustes ───────────────────────────────────────────────────────────────────

// CreateAdjustment godoc
// @Summary      Registrar ajuste de auditoría
// @Description  Ajuste con signo sobre el stock global del agente; se procesa de inmediato.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAdjustmentRequest  true  "agent_id, pack_id, quantity != 0, reason_code"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/adjustments [post]
func (h *StockHandler) CreateAdjustment(c *fiber.Ctx) error {
	var in dto.CreateAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	adj, err := h.opsUC.CreateAdjustment(c.Context(), GetUserID(c), in)
	if err != nil {
		return stockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(adj)
}

func toLedgerEntryResponse(e *entity.StockLedgerEntry) *dto.LedgerEntryResponse {
	return &dto.LedgerEntryResponse{
		ID:           e.ID,
		MovementType: e.MovementType,
		AgentID:      e.AgentID,
		MarketID:     e.MarketID,
		ProductID:    e.ProductID,
		PackID:       e.PackID,
		Quantity:     e.Quantity,
		BalanceAfter: e.BalanceAfter,
		SourceRef:    e.SourceRef,
		CreatedAt:    e.CreatedAt,
	}
}
