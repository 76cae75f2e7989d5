package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Victorkib/kisheka-construction-sub011/internal/application/approval"
	"github.com/Victorkib/kisheka-construction-sub011/internal/application/dto"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain"
)

// ApprovalHandler handles the spending request workflow: submit, approve,
// reject, payment, archive and the payment voucher.
type ApprovalHandler struct {
	workflowUC *approval.WorkflowUseCase
	voucherUC  *approval.VoucherUseCase
}

// NewApprovalHandler builds the approval handler.
func NewApprovalHandler(workflowUC *approval.WorkflowUseCase, voucherUC *approval.VoucherUseCase) *ApprovalHandler {
	return &ApprovalHandler{workflowUC: workflowUC, voucherUC: voucherUC}
}

// Submit godoc
// @Summary      Submit a spending request
// @Description  Creates the request in PENDING. The response carries an advisory capital warning; no capital is committed yet.
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitSpendingRequest  true  "project_id, kind, amount, description, supplier_name"
// @Success      201   {object}  dto.TransitionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/requests [post]
func (h *ApprovalHandler) Submit(c *fiber.Ctx) error {
	var in dto.SubmitSpendingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.workflowUC.Submit(c.Context(), GetUserID(c), in)
	if err != nil {
		return transitionError(c, err, "kind must be material_request or professional_fee and amount must be positive")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Get a spending request
// @Tags         requests
// @Produce      json
// @Param        id   path      string  true  "request id"
// @Success      200  {object}  dto.SpendingRequestResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requests/{id} [get]
func (h *ApprovalHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.workflowUC.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return transitionError(c, err, "")
	}
	return c.JSON(out)
}

// ListByProject godoc
// @Summary      List a project's spending requests
// @Tags         requests
// @Produce      json
// @Param        id      path   string  true   "project id"
// @Param        status  query  string  false  "filter by status (PENDING, APPROVED, REJECTED, PAID, ARCHIVED)"
// @Success      200  {array}  dto.SpendingRequestResponse
// @Router       /api/projects/{id}/requests [get]
func (h *ApprovalHandler) ListByProject(c *fiber.Ctx) error {
	out, err := h.workflowUC.ListByProject(c.Context(), c.Params("id"), c.Query("status"))
	if err != nil {
		return transitionError(c, err, "")
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Approve a pending spending request
// @Description  Atomically flips the status, records the expense, debits the project's used capital and appends the audit entry. The warning in the response describes the post-approval balance.
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        id    path  string              true   "request id"
// @Param        body  body  dto.ApproveRequest  false  "notes"
// @Success      200   {object}  dto.TransitionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/approve [post]
func (h *ApprovalHandler) Approve(c *fiber.Ctx) error {
	var in dto.ApproveRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
		}
	}
	out, err := h.workflowUC.Approve(c.Context(), c.Params("id"), GetUserID(c), in.Notes)
	if err != nil {
		return transitionError(c, err, "")
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Reject a pending spending request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "request id"
// @Param        body  body  dto.RejectRequest  true  "reason (required, non-blank)"
// @Success      200   {object}  dto.TransitionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/reject [post]
func (h *ApprovalHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.workflowUC.Reject(c.Context(), c.Params("id"), GetUserID(c), in.Reason)
	if err != nil {
		return transitionError(c, err, "a non-blank rejection reason is required")
	}
	return c.JSON(out)
}

// RecordPayment godoc
// @Summary      Record payment of an approved request
// @Description  Payment has no capital effect: the debit already happened at approval.
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "request id"
// @Param        body  body  dto.RecordPaymentRequest  true  "method, date, reference"
// @Success      200   {object}  dto.TransitionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/payment [post]
func (h *ApprovalHandler) RecordPayment(c *fiber.Ctx) error {
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.workflowUC.RecordPayment(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return transitionError(c, err, "payment method and date are required")
	}
	return c.JSON(out)
}

// Archive godoc
// @Summary      Archive an approved request without paying it
// @Tags         requests
// @Produce      json
// @Param        id   path      string  true  "request id"
// @Success      200  {object}  dto.TransitionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/archive [post]
func (h *ApprovalHandler) Archive(c *fiber.Ctx) error {
	out, err := h.workflowUC.Archive(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return transitionError(c, err, "")
	}
	return c.JSON(out)
}

// AuditTrail godoc
// @Summary      Get a request's audit trail
// @Tags         requests
// @Produce      json
// @Param        id   path     string  true  "request id"
// @Success      200  {array}  dto.AuditEntryResponse
// @Failure      404  {object} dto.ErrorResponse
// @Router       /api/requests/{id}/audit [get]
func (h *ApprovalHandler) AuditTrail(c *fiber.Ctx) error {
	out, err := h.workflowUC.AuditTrail(c.Context(), c.Params("id"))
	if err != nil {
		return transitionError(c, err, "")
	}
	return c.JSON(out)
}

// Voucher godoc
// @Summary      Download the payment voucher PDF
// @Description  Only PAID requests have a voucher.
// @Tags         requests
// @Produce      application/pdf
// @Param        id   path  string  true  "request id"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/voucher.pdf [get]
func (h *ApprovalHandler) Voucher(c *fiber.Ctx) error {
	pdfBytes, err := h.voucherUC.GenerateVoucher(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATUS", Message: "voucher is only available for paid requests"})
		}
		return transitionError(c, err, "")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="payment-voucher.pdf"`)
	return c.Send(pdfBytes)
}

// transitionError maps workflow errors onto HTTP responses.
func transitionError(c *fiber.Ctx, err error, validationMsg string) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		if validationMsg == "" {
			validationMsg = "invalid input"
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMsg})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "resource not found"})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "operation not allowed in the request's current status"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
