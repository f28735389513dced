package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fieldops-api/internal/application/dto"
	"github.com/jhoicas/fieldops-api/internal/application/pricing"
	"github.com/jhoicas/fieldops-api/internal/domain"
	"github.com/jhoicas/fieldops-api/internal/domain/entity"
)

// PricingHandler maneja las peticiones HTTP de la lista de precios.
type PricingHandler struct {
	uc *pricing.UseCase
}

// NewPricingHandler construye el handler.
func NewPricingHandler(uc *pricing.UseCase) *PricingHandler {
	return &PricingHandler{uc: uc}
}

// Create godoc
// @Summary      Crear entrada de lista de precios
// @Description  Rechaza ventanas activas solapadas para el mismo (pack, mercado).
// @Tags         pricing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePriceRequest  true  "pack_id, market_id, unit_price, effective_from (2006-01-02), effective_to opcional"
// @Success      201   {object}  dto.PriceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/prices [post]
func (h *PricingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePriceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entry, err := h.uc.CreatePrice(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos o fechas inválidos"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pack o mercado no encontrado"})
		}
		if errors.Is(err, domain.ErrPriceOverlap) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PRICE_OVERLAP", Message: "la ventana se solapa con otra entrada activa"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toPriceResponse(entry))
}

// Resolve godoc
// @Summary      Resolver precio vigente
// @Description  Devuelve el precio activo vigente en la fecha dada para el (pack, mercado).
// @Tags         pricing
// @Security     Bearer
// @Produce      json
// @Param        pack_id    query  string  true   "ID del pack"
// @Param        market_id  query  string  true   "ID del mercado"
// @Param        as_of      query  string  false  "Fecha 2006-01-02 (default hoy)"
// @Success      200  {object}  dto.PriceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prices/resolve [get]
func (h *PricingHandler) Resolve(c *fiber.Ctx) error {
	asOf := time.Now()
	if v := c.Query("as_of"); v != "" {
		t, err := time.Parse(pricing.DateLayout, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "as_of inválida, formato 2006-01-02"})
		}
		asOf = t
	}
	entry, err := h.uc.ResolvePrice(c.Context(), c.Query("pack_id"), c.Query("market_id"), asOf)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "pack_id y market_id son obligatorios"})
		}
		if errors.Is(err, domain.ErrNoPriceAvailable) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_PRICE", Message: "no hay precio vigente para la fecha"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toPriceResponse(entry))
}

// ListByPack godoc
// @Summary      Histórico de precios de un pack
// @Tags         pricing
// @Security     Bearer
// @Produce      json
// @Param        pack_id  path   string  true   "ID del pack"
// @Param        limit    query  int     false  "Máximo de resultados (default 20)"
// @Param        offset   query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.PriceResponse
// @Router       /api/prices/pack/{pack_id} [get]
func (h *PricingHandler) ListByPack(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	page.DefaultPage()
	entries, err := h.uc.ListByPack(c.Context(), c.Params("pack_id"), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]*dto.PriceResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toPriceResponse(e))
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar entrada de precio
// @Description  La entrada pasa a inactive; el histórico nunca se borra.
// @Tags         pricing
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la entrada"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prices/{id} [delete]
func (h *PricingHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "entrada no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "entrada desactivada"})
}

func toPriceResponse(e *entity.PriceListEntry) *dto.PriceResponse {
	resp := &dto.PriceResponse{
		ID:            e.ID,
		PackID:        e.PackID,
		MarketID:      e.MarketID,
		UnitPrice:     e.UnitPrice,
		TaxRate:       e.TaxRate,
		DiscountJSON:  e.DiscountPolicy,
		EffectiveFrom: e.EffectiveFrom.Format(pricing.DateLayout),
		Status:        e.Status,
		CreatedAt:     e.CreatedAt,
	}
	if e.EffectiveTo != nil {
		resp.EffectiveTo = e.EffectiveTo.Format(pricing.DateLayout)
	}
	return resp
}
