package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"grupoandino/supplier-evaluator/internal/config"
	"grupoandino/supplier-evaluator/internal/handlers"
	"grupoandino/supplier-evaluator/internal/repositories"
	"grupoandino/supplier-evaluator/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	questionnaireRepo := repositories.NewQuestionnaireRepository(db)
	evalRepo := repositories.NewEvaluationRepository(db)
	subRepo := repositories.NewSubmissionRepository(db)
	supplierRepo := repositories.NewSupplierRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	configService := services.NewConfigurationService(questionnaireRepo)
	evalService := services.NewEvaluationService(evalRepo, subRepo, configService)
	subService := services.NewSubmissionService(evalRepo, subRepo, supplierRepo)
	auditService := services.NewAuditService(subRepo, configService, subService)
	log.Println("✅ Services initialized successfully")

	// Initialize handlers
	questionnaireHandler := handlers.NewQuestionnaireHandler(configService)
	evaluationHandler := handlers.NewEvaluationHandler(evalService, subService)
	submissionHandler := handlers.NewSubmissionHandler(subService)
	auditHandler := handlers.NewAuditHandler(auditService)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Supplier Evaluator API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Questionnaire configuration
	api.Get("/questionnaire", questionnaireHandler.HandleGet)
	api.Put("/questionnaire", questionnaireHandler.HandlePut)

	// Supplier evaluations
	api.Get("/evaluations/:supplierId", evaluationHandler.HandleGet)
	api.Get("/evaluations/:supplierId/can-edit", evaluationHandler.HandleCanEdit)
	api.Post("/evaluations/:supplierId/answers", evaluationHandler.HandleRecordAnswer)
	api.Patch("/evaluations/:supplierId/answers/:questionId/note", evaluationHandler.HandleRecordNote)
	api.Patch("/evaluations/:supplierId/answers/:questionId/evidence", evaluationHandler.HandleAttachEvidence)
	api.Post("/evaluations/:supplierId/submit", evaluationHandler.HandleSubmit)

	// Submissions and review
	api.Get("/suppliers/:supplierId/submissions", submissionHandler.HandleList)
	api.Post("/submissions/:id/approve", submissionHandler.HandleApprove)
	api.Post("/submissions/:id/reject", submissionHandler.HandleReject)
	api.Post("/submissions/:id/request-revision", submissionHandler.HandleRequestRevision)

	// Audit recalibration
	api.Get("/submissions/:id/audit", auditHandler.HandleGet)
	api.Post("/submissions/:id/audit", auditHandler.HandleSave)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Supplier Evaluator API",
			"version": "1.0.0",
			"endpoints": []string{
				"GET /api/v1/questionnaire",
				"PUT /api/v1/questionnaire",
				"GET /api/v1/evaluations/:supplierId",
				"POST /api/v1/evaluations/:supplierId/answers",
				"POST /api/v1/evaluations/:supplierId/submit",
				"GET /api/v1/suppliers/:supplierId/submissions",
				"POST /api/v1/submissions/:id/approve",
				"POST /api/v1/submissions/:id/reject",
				"POST /api/v1/submissions/:id/request-revision",
				"GET /api/v1/submissions/:id/audit",
				"POST /api/v1/submissions/:id/audit",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
