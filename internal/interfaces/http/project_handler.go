package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/Victorkib/kisheka-construction-sub011/internal/application/dto"
	"github.com/Victorkib/kisheka-construction-sub011/internal/application/finance"
	"github.com/Victorkib/kisheka-construction-sub011/internal/application/project"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain"
)

// ProjectHandler handles projects, capital injections and capital reads.
type ProjectHandler struct {
	projectUC   *project.UseCase
	ledgerUC    *finance.LedgerUseCase
	validatorUC *finance.ValidatorUseCase
}

// NewProjectHandler builds the project handler.
func NewProjectHandler(projectUC *project.UseCase, ledgerUC *finance.LedgerUseCase, validatorUC *finance.ValidatorUseCase) *ProjectHandler {
	return &ProjectHandler{projectUC: projectUC, ledgerUC: ledgerUC, validatorUC: validatorUC}
}

// Create godoc
// @Summary      Create a project with its initial invested capital
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProjectRequest  true  "name, invested_capital"
// @Success      201   {object}  dto.ProjectResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.projectUC.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name is required and invested_capital may not be negative"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Success      200  {array}  dto.ProjectResponse
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	out, err := h.projectUC.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Param        id   path      string  true  "project id"
// @Success      200  {object}  dto.ProjectResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.projectUC.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "project not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// AddCapital godoc
// @Summary      Add invested capital to a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "project id"
// @Param        body  body  dto.AddCapitalRequest  true  "amount, notes"
// @Success      200   {object}  dto.ProjectResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/capital [post]
func (h *ProjectHandler) AddCapital(c *fiber.Ctx) error {
	var in dto.AddCapitalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.projectUC.AddCapital(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "amount must be positive"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "project not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetBalance godoc
// @Summary      Get a project's capital balance and classification
// @Tags         projects
// @Produce      json
// @Param        id   path      string  true  "project id"
// @Success      200  {object}  dto.BalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/balance [get]
func (h *ProjectHandler) GetBalance(c *fiber.Ctx) error {
	out, err := h.ledgerUC.GetBalance(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "project not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListExpenses godoc
// @Summary      List a project's expense ledger
// @Tags         projects
// @Produce      json
// @Param        id   path     string  true  "project id"
// @Success      200  {array}  dto.ExpenseResponse
// @Failure      404  {object} dto.ErrorResponse
// @Router       /api/projects/{id}/expenses [get]
func (h *ProjectHandler) ListExpenses(c *fiber.Ctx) error {
	out, err := h.ledgerUC.ListExpenses(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "project not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// SpendingCheck godoc
// @Summary      Evaluate a proposed spend against the project's capital
// @Description  Advisory only: the result classifies the spend and never blocks it.
// @Tags         projects
// @Produce      json
// @Param        id      path   string  true  "project id"
// @Param        amount  query  string  true  "proposed amount, e.g. 5000.00"
// @Success      200  {object}  dto.SpendingWarningDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/spending-check [get]
func (h *ProjectHandler) SpendingCheck(c *fiber.Ctx) error {
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "amount query parameter must be a decimal number"})
	}
	out, err := h.validatorUC.Evaluate(c.Context(), c.Params("id"), amount)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "amount may not be negative"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "project not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
