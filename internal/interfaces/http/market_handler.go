package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fieldops-api/internal/application/dto"
	"github.com/jhoicas/fieldops-api/internal/application/usecase"
	"github.com/jhoicas/fieldops-api/internal/domain"
)

// MarketHandler maneja las peticiones HTTP de mercados y puntos de venta.
type MarketHandler struct {
	uc *usecase.MarketUseCase
}

// NewMarketHandler construye el handler.
func NewMarketHandler(uc *usecase.MarketUseCase) *MarketHandler {
	return &MarketHandler{uc: uc}
}

// Create godoc
// @Summary      Crear mercado
// @Tags         markets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMarketRequest  true  "name, region, gps_lat/gps_long opcionales"
// @Success      201   {object}  dto.MarketResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/markets [post]
func (h *MarketHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMarketRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	market, err := h.uc.Create(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name y region son obligatorios"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(market)
}

// GetByID godoc
// @Summary      Obtener mercado por ID
// @Tags         markets
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del mercado"
// @Success      200  {object}  dto.MarketResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/markets/{id} [get]
func (h *MarketHandler) GetByID(c *fiber.Ctx) error {
	market, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if market == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "mercado no encontrado"})
	}
	return c.JSON(market)
}

// List godoc
// @Summary      Listar mercados
// @Tags         markets
// @Security     Bearer
// @Produce      json
// @Param        region  query  string  false  "Filtrar por región"
// @Param        limit   query  int     false  "Máximo de resultados (default 20)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.MarketResponse
// @Router       /api/markets [get]
func (h *MarketHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	page.DefaultPage()
	markets, err := h.uc.List(c.Query("region"), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(markets)
}

// AddOutlet godoc
// @Summary      Agregar punto de venta a un mercado
// @Tags         markets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del mercado"
// @Param        body  body  dto.CreateOutletRequest  true  "name, descriptor opcional"
// @Success      201   {object}  dto.OutletResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/markets/{id}/outlets [post]
func (h *MarketHandler) AddOutlet(c *fiber.Ctx) error {
	var in dto.CreateOutletRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	outlet, err := h.uc.AddOutlet(c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es obligatorio"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "mercado no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(outlet)
}

// ListOutlets godoc
// @Summary      Listar puntos de venta de un mercado
// @Tags         markets
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del mercado"
// @Success      200  {array}  dto.OutletResponse
// @Router       /api/markets/{id}/outlets [get]
func (h *MarketHandler) ListOutlets(c *fiber.Ctx) error {
	outlets, err := h.uc.ListOutlets(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(outlets)
}
