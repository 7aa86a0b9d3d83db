package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/shakti-crm/shakti-backend/internal/config"
	"github.com/shakti-crm/shakti-backend/internal/logging"
	minioRepo "github.com/shakti-crm/shakti-backend/internal/repository/minio"
	"github.com/shakti-crm/shakti-backend/internal/repository/postgres"
	"github.com/shakti-crm/shakti-backend/internal/service"
	transport "github.com/shakti-crm/shakti-backend/internal/transport/http"
	"github.com/shakti-crm/shakti-backend/internal/transport/mail"
	"github.com/shakti-crm/shakti-backend/internal/util"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("logstash disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stderr, writer))
		}
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	minioClient, err := minioRepo.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
	if err != nil {
		log.Fatalf("minio: %v", err)
	}
	storage := minioRepo.NewStorage(minioClient)

	sessionTTL, err := time.ParseDuration(cfg.SessionTTL)
	if err != nil {
		log.Printf("invalid SESSION_TTL %q, using 12h", cfg.SessionTTL)
		sessionTTL = 12 * time.Hour
	}
	tokens := util.NewJWTManager(cfg.JWTSecret, sessionTTL)

	employeeRepo := postgres.NewEmployeeRepo(db)
	importRepo := postgres.NewEmployeeImportRepo(db)
	teamRepo := postgres.NewTeamRepo(db)
	productRepo := postgres.NewProductRepo(db)
	caseRepo := postgres.NewCaseRepo(db)
	callRepo := postgres.NewCallRepo(db)
	statsRepo := postgres.NewStatsRepo(db)

	authService := service.NewAuthService(employeeRepo, tokens)
	employeeService := service.NewEmployeeService(employeeRepo)

	importCfg := service.EmployeeImportServiceConfig{
		Bucket:       cfg.MinIOBucketImports,
		MaxRows:      cfg.ImportMaxRows,
		MaxFileBytes: cfg.ImportMaxFileBytes,
	}
	var importService *service.EmployeeImportService
	if cfg.SMTPHost != "" {
		mailer := mail.NewImportSummaryMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
		importService = service.NewEmployeeImportService(importRepo, employeeRepo, storage, mailer, importCfg)
	} else {
		importService = service.NewEmployeeImportService(importRepo, employeeRepo, storage, nil, importCfg)
	}
	teamService := service.NewTeamService(teamRepo, employeeRepo)
	productService := service.NewProductService(productRepo)
	caseService := service.NewCaseService(caseRepo, employeeRepo)
	callService := service.NewCallService(callRepo, caseRepo)
	dashboardService := service.NewDashboardService(statsRepo, teamRepo)

	e := transport.NewRouter(cfg.AllowOrigins)
	transport.RegisterSwagger(e)
	transport.RegisterAuth(e, authService)
	transport.RegisterEmployees(e, authService, employeeService)
	transport.RegisterEmployeeImports(e, authService, importService, cfg.ImportMaxFileBytes)
	transport.RegisterTeams(e, authService, teamService)
	transport.RegisterProducts(e, authService, productService)
	transport.RegisterCases(e, authService, caseService)
	transport.RegisterCalls(e, authService, callService)
	transport.RegisterDashboard(e, authService, dashboardService)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
