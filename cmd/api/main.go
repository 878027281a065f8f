package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/mktfun/gps-rh-api/internal/application/auth"
	"github.com/mktfun/gps-rh-api/internal/application/enrollment"
	"github.com/mktfun/gps-rh-api/internal/application/importer"
	"github.com/mktfun/gps-rh-api/internal/application/pendencia"
	"github.com/mktfun/gps-rh-api/internal/application/usecase"
	"github.com/mktfun/gps-rh-api/internal/infrastructure/postgres"
	httpRouter "github.com/mktfun/gps-rh-api/internal/interfaces/http"
	"github.com/mktfun/gps-rh-api/pkg/br"
	"github.com/mktfun/gps-rh-api/pkg/config"
	"github.com/mktfun/gps-rh-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	planRepo := postgres.NewPlanRepository(pool)
	matriculationRepo := postgres.NewMatriculationRepository(pool)
	pendenciaRepo := postgres.NewPendenciaRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	bounds := salaryBounds(cfg.Import, log)

	validator := importer.NewValidator(bounds)
	committer := importer.NewCommitter(employeeRepo, log)
	importSvc := importer.NewService(branchRepo, employeeRepo, validator, committer, log)

	companyUC := usecase.NewCompanyUseCase(companyRepo, branchRepo, log)
	planUC := usecase.NewPlanUseCase(planRepo, branchRepo, log)
	employeeUC := usecase.NewEmployeeUseCase(employeeRepo, branchRepo, bounds, log)
	enrollmentUC := enrollment.NewUseCase(
		branchRepo, employeeRepo, planRepo, matriculationRepo, pendenciaRepo,
		txRunner, cfg.Import.SLADays, log,
	)
	pendenciaUC := pendencia.NewUseCase(pendenciaRepo, nil, log)
	authUC := auth.NewUseCase(userRepo, cfg.JWT, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // commits de lote podem demorar
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "GPS-RH API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:            authUC,
		CompanyUC:         companyUC,
		PlanUC:            planUC,
		EmployeeUC:        employeeUC,
		ImportSvc:         importSvc,
		EnrollmentUC:      enrollmentUC,
		PendenciaUC:       pendenciaUC,
		ImportConcurrency: cfg.Import.Concurrency,
		JWTSecret:         cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}

// salaryBounds monta a faixa de sanidade de salários a partir da config.
// Valores ilegíveis caem no padrão (R$ 100 a R$ 1.000.000) com aviso no log.
func salaryBounds(cfg config.ImportConfig, log *logger.Logger) br.CurrencyBounds {
	bounds := br.DefaultCurrencyBounds()
	if min, err := decimal.NewFromString(cfg.MinSalary); err == nil {
		bounds.Min = min
	} else {
		log.Warn().Str("valor", cfg.MinSalary).Msg("IMPORT_MIN_SALARY ilegível, usando padrão")
	}
	if max, err := decimal.NewFromString(cfg.MaxSalary); err == nil {
		bounds.Max = max
	} else {
		log.Warn().Str("valor", cfg.MaxSalary).Msg("IMPORT_MAX_SALARY ilegível, usando padrão")
	}
	return bounds
}
