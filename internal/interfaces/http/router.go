package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mktfun/gps-rh-api/internal/application/auth"
	"github.com/mktfun/gps-rh-api/internal/application/enrollment"
	"github.com/mktfun/gps-rh-api/internal/application/importer"
	"github.com/mktfun/gps-rh-api/internal/application/pendencia"
	"github.com/mktfun/gps-rh-api/internal/application/usecase"
	"github.com/mktfun/gps-rh-api/internal/domain/entity"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	AuthUC            *auth.UseCase
	CompanyUC         *usecase.CompanyUseCase
	PlanUC            *usecase.PlanUseCase
	EmployeeUC        *usecase.EmployeeUseCase
	ImportSvc         *importer.Service
	EnrollmentUC      *enrollment.UseCase
	PendenciaUC       *pendencia.UseCase
	ImportConcurrency int
	JWTSecret         string
}

// Router registra as rotas da API. Só o login é público; todo o resto exige
// Bearer Token. RequireRole faz o corte grosso por rota; o gate fino por
// registro é do caso de uso.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Post("/auth/register", RequireRole(entity.RoleAdmin), authHandler.Register)

	// Empresas e filiais
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies := protected.Group("/companies")
	companies.Post("/", RequireRole(entity.RoleAdmin, entity.RoleCorretora), companyHandler.CreateCompany)
	companies.Get("/", companyHandler.ListCompanies)
	companies.Get("/:id", companyHandler.GetCompany)
	companies.Get("/:id/branches", companyHandler.ListBranches)

	branches := protected.Group("/branches")
	branches.Post("/", RequireRole(entity.RoleAdmin, entity.RoleCorretora), companyHandler.CreateBranch)

	// Importação em massa
	importHandler := NewImportHandler(deps.ImportSvc, deps.ImportConcurrency)
	branches.Post("/:id/import/validate", importHandler.Validate)
	branches.Post("/:id/import/commit", importHandler.Commit)

	// Funcionários
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	branches.Post("/:id/employees", employeeHandler.Create)
	branches.Get("/:id/employees", employeeHandler.ListByBranch)
	employees := protected.Group("/employees")
	employees.Get("/:id", employeeHandler.GetByID)

	// Ciclo de vida de matrícula
	enrollmentHandler := NewEnrollmentHandler(deps.EnrollmentUC)
	employees.Post("/:id/activation", RequireRole(entity.RoleAdmin, entity.RoleCorretora), enrollmentHandler.Activate)
	employees.Post("/:id/removal-request", RequireRole(entity.RoleAdmin, entity.RoleEmpresa), enrollmentHandler.RequestRemoval)
	employees.Post("/:id/removal-resolution", RequireRole(entity.RoleAdmin, entity.RoleCorretora), enrollmentHandler.ResolveRemoval)

	// Planos e matrículas
	planHandler := NewPlanHandler(deps.PlanUC)
	branches.Get("/:id/plans", planHandler.ListByBranch)
	plans := protected.Group("/plans")
	plans.Post("/", RequireRole(entity.RoleAdmin, entity.RoleCorretora), planHandler.Create)
	plans.Get("/:id", planHandler.GetByID)
	plans.Post("/:id/employees", RequireRole(entity.RoleAdmin, entity.RoleCorretora), enrollmentHandler.AddToPlan)
	plans.Put("/:id/employees/:employeeId/status", enrollmentHandler.UpdateMatriculationStatus)

	// Pendências
	pendenciaHandler := NewPendenciaHandler(deps.PendenciaUC)
	protected.Get("/pendencias", pendenciaHandler.List)
}
