package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/telmahealth/mobile-gateway/internal/db"
	"github.com/telmahealth/mobile-gateway/internal/graph"
	"github.com/telmahealth/mobile-gateway/internal/handlers"
	"github.com/telmahealth/mobile-gateway/internal/logger"
	"github.com/telmahealth/mobile-gateway/internal/middleware"
	"github.com/telmahealth/mobile-gateway/internal/mobile"
	"github.com/telmahealth/mobile-gateway/internal/observability"
	"github.com/telmahealth/mobile-gateway/internal/repos"
	"github.com/telmahealth/mobile-gateway/internal/server"
	"github.com/telmahealth/mobile-gateway/internal/services"
	"github.com/telmahealth/mobile-gateway/internal/utils"
)

const serviceName = "mobile-gateway"

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	// Tracing
	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: serviceName,
		Environment: utils.GetEnv("ENVIRONMENT", "development", log),
		Version:     utils.GetEnv("SERVICE_VERSION", "", log),
	})
	if otelShutdown != nil {
		defer func() { _ = otelShutdown(ctx) }()
	}

	// Env
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos...")
	userRepo := repos.NewUserRepo(thePG, log)
	moduleConfigRepo := repos.NewModuleConfigurationRepo(thePG, log)
	controlRepo := repos.NewControlRepo(thePG, log)
	familyRepo := repos.NewFamilyRepo(thePG, log)
	insureeRepo := repos.NewInsureeRepo(thePG, log)
	policyRepo := repos.NewPolicyRepo(thePG, log)
	premiumRepo := repos.NewPremiumRepo(thePG, log)
	renewalRepo := repos.NewPolicyRenewalRepo(thePG, log)
	payerRepo := repos.NewPayerRepo(thePG, log)
	productRepo := repos.NewProductRepo(thePG, log)
	officerRepo := repos.NewOfficerRepo(thePG, log)

	// Module configuration: an unreachable store is fatal, a missing row
	// falls back to defaults.
	mobileCfg, err := mobile.LoadConfig(ctx, moduleConfigRepo, log)
	if err != nil {
		log.Error("Could not load mobile module configuration", "error", err)
		os.Exit(1)
	}

	// Services
	log.Info("Setting up services...")
	authService := services.NewAuthService(thePG, log, userRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)
	insureeService := services.NewInsureeService(thePG, log, insureeRepo)
	familyService := services.NewFamilyService(thePG, log, familyRepo, insureeRepo, insureeService)
	policyService := services.NewPolicyService(thePG, log, policyRepo)
	premiumService := services.NewPremiumService(thePG, log, premiumRepo, policyRepo, payerRepo)
	valueService := services.NewPolicyValueService(thePG, log, productRepo, insureeRepo)
	processService := services.NewPolicyProcessService(thePG, log, policyRepo, productRepo, familyRepo, officerRepo)

	enrollmentService := mobile.NewEnrollmentService(thePG, log, mobileCfg, familyService, insureeService, policyService, premiumService)
	renewalService := mobile.NewRenewalService(thePG, log, mobileCfg, renewalRepo, policyRepo, familyRepo, insureeRepo, payerRepo, valueService, processService, premiumService)

	// GraphQL schema
	schema, err := graph.NewSchema(graph.Deps{
		Log:               log,
		EnrollmentService: enrollmentService,
		RenewalService:    renewalService,
		ControlRepo:       controlRepo,
	})
	if err != nil {
		log.Error("Could not build GraphQL schema", "error", err)
		os.Exit(1)
	}

	// Handlers & middleware
	authHandler := handlers.NewAuthHandler(authService)
	graphqlHandler := handlers.NewGraphQLHandler(log, schema)
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		ServiceName:    serviceName,
		AuthHandler:    authHandler,
		GraphQLHandler: graphqlHandler,
		AuthMiddleware: authMiddleware,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
