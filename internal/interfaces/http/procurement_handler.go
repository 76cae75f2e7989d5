package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Victorkib/kisheka-construction-sub011/internal/application/dto"
	"github.com/Victorkib/kisheka-construction-sub011/internal/application/procurement"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain"
)

// ProcurementHandler handles supplier price comparison and stock advisory.
type ProcurementHandler struct {
	comparatorUC *procurement.ComparatorUseCase
	advisorUC    *procurement.AdvisorUseCase
}

// NewProcurementHandler builds the procurement handler.
func NewProcurementHandler(comparatorUC *procurement.ComparatorUseCase, advisorUC *procurement.AdvisorUseCase) *ProcurementHandler {
	return &ProcurementHandler{comparatorUC: comparatorUC, advisorUC: advisorUC}
}

// ComparePrices godoc
// @Summary      Rank suppliers by historical prices for a set of materials
// @Description  Suppliers with no history for any requested material stay in the output unranked.
// @Tags         procurement
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PriceComparisonRequest  true  "materials with quantities"
// @Success      200   {object}  dto.PriceComparisonResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/procurement/price-comparison [post]
func (h *ProcurementHandler) ComparePrices(c *fiber.Ctx) error {
	var in dto.PriceComparisonRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.comparatorUC.Compare(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "at least one material with a positive quantity is required"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListStock godoc
// @Summary      List a project's stock with classification and reorder suggestions
// @Tags         procurement
// @Produce      json
// @Param        id   path     string  true  "project id"
// @Success      200  {array}  dto.StockStatusDTO
// @Router       /api/projects/{id}/stock [get]
func (h *ProcurementHandler) ListStock(c *fiber.Ctx) error {
	out, err := h.advisorUC.ListStock(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Replenishment godoc
// @Summary      List the stock items that need reordering
// @Description  Only DEPLETED and LOW items, most depleted first.
// @Tags         procurement
// @Produce      json
// @Param        id   path     string  true  "project id"
// @Success      200  {array}  dto.StockStatusDTO
// @Router       /api/projects/{id}/stock/replenishment [get]
func (h *ProcurementHandler) Replenishment(c *fiber.Ctx) error {
	out, err := h.advisorUC.ReplenishmentList(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
