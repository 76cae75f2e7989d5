package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Victorkib/kisheka-construction-sub011/internal/application/approval"
	"github.com/Victorkib/kisheka-construction-sub011/internal/application/auth"
	"github.com/Victorkib/kisheka-construction-sub011/internal/application/finance"
	"github.com/Victorkib/kisheka-construction-sub011/internal/application/procurement"
	"github.com/Victorkib/kisheka-construction-sub011/internal/application/project"
	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ProjectUC    *project.UseCase
	LedgerUC     *finance.LedgerUseCase
	ValidatorUC  *finance.ValidatorUseCase
	WorkflowUC   *approval.WorkflowUseCase
	VoucherUC    *approval.VoucherUseCase
	ComparatorUC *procurement.ComparatorUseCase
	AdvisorUC    *procurement.AdvisorUseCase
	JWTSecret    string
}

// Router registers the API routes. Everything except auth requires a Bearer
// token; money-moving transitions additionally require an approver role.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Protected routes (Bearer token required)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Approver-only transitions: capital injections, approve/reject/payment/archive.
	approverOnly := RequireRole(entity.RoleAdmin, entity.RoleProjectManager)

	// Projects and capital
	projects := protected.Group("/projects")
	projectHandler := NewProjectHandler(deps.ProjectUC, deps.LedgerUC, deps.ValidatorUC)
	projects.Post("/", approverOnly, projectHandler.Create)
	projects.Get("/", projectHandler.List)
	projects.Get("/:id", projectHandler.GetByID)
	projects.Post("/:id/capital", approverOnly, projectHandler.AddCapital)
	projects.Get("/:id/balance", projectHandler.GetBalance)
	projects.Get("/:id/expenses", projectHandler.ListExpenses)
	projects.Get("/:id/spending-check", projectHandler.SpendingCheck)

	// Spending request workflow
	approvalHandler := NewApprovalHandler(deps.WorkflowUC, deps.VoucherUC)
	requests := protected.Group("/requests")
	requests.Post("/", approvalHandler.Submit)
	requests.Get("/:id", approvalHandler.GetByID)
	requests.Post("/:id/approve", approverOnly, approvalHandler.Approve)
	requests.Post("/:id/reject", approverOnly, approvalHandler.Reject)
	requests.Post("/:id/payment", approverOnly, approvalHandler.RecordPayment)
	requests.Post("/:id/archive", approverOnly, approvalHandler.Archive)
	requests.Get("/:id/audit", approvalHandler.AuditTrail)
	requests.Get("/:id/voucher.pdf", approvalHandler.Voucher)
	projects.Get("/:id/requests", approvalHandler.ListByProject)

	// Procurement: price comparison and stock advisory
	procurementHandler := NewProcurementHandler(deps.ComparatorUC, deps.AdvisorUC)
	procGroup := protected.Group("/procurement")
	procGroup.Post("/price-comparison", procurementHandler.ComparePrices)
	projects.Get("/:id/stock", procurementHandler.ListStock)
	projects.Get("/:id/stock/replenishment", procurementHandler.Replenishment)
}
