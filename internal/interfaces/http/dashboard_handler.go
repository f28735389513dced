package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fieldops-api/internal/application/dto"
	"github.com/jhoicas/fieldops-api/internal/application/usecase"
	"github.com/jhoicas/fieldops-api/internal/domain/entity"
)

// DashboardHandler expone los KPIs diarios de agente y el resumen global admin.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// AgentDashboard godoc
// @Summary      Dashboard diario del agente
// @Description  Un agente ve solo su propio tablero; admin y manager pueden consultar cualquier agente con ?agent_id.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        agent_id  query  string  false  "Solo admin/manager: agente a consultar"
// @Success      200  {object}  dto.AgentDashboardResponse
// @Router       /api/dashboard/agent [get]
func (h *DashboardHandler) AgentDashboard(c *fiber.Ctx) error {
	agentID := GetUserID(c)
	if requested := c.Query("agent_id"); requested != "" {
		role := GetRole(c)
		if role != entity.RoleAdmin && role != entity.RoleManager {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no puede consultar el dashboard de otro agente"})
		}
		agentID = requested
	}
	out, err := h.uc.AgentDashboard(c.Context(), agentID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// AdminDashboard godoc
// @Summary      Resumen operativo global
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AdminDashboardResponse
// @Router       /api/dashboard/admin [get]
func (h *DashboardHandler) AdminDashboard(c *fiber.Ctx) error {
	out, err := h.uc.AdminDashboard(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
