package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"dieselx/internal/config"
	"dieselx/internal/database"
	"dieselx/internal/middleware"
	"dieselx/internal/modules/auth"
	"dieselx/internal/modules/customers"
	"dieselx/internal/modules/dashboard"
	"dieselx/internal/modules/equipment"
	"dieselx/internal/modules/portal"
	"dieselx/internal/modules/tasks"
	"dieselx/internal/modules/templates"
	jwtsvc "dieselx/internal/pkg/jwt"
	"dieselx/internal/pkg/qr"
	"dieselx/internal/repository"
	"dieselx/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadRuntime()
	if err != nil {
		log.Fatal(err)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "dieselx.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrgRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	prestartRepo := repository.NewPrestartRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)
	portalStore := repository.NewPortalStore(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	files := storage.NewLocalStore(cfg.MediaBaseDir, cfg.MediaBaseURL)
	qrGen := qr.NewGenerator(cfg.AppURL)

	authService := auth.NewService(userRepo, orgRepo, j)
	authHandler := auth.NewHandler(authService)

	customerService := customers.NewService(customerRepo, equipmentRepo)
	customerHandler := customers.NewHandler(customerService)

	equipmentService := equipment.NewService(
		equipmentRepo,
		customerRepo,
		templateRepo,
		qrGen,
		files,
		cfg.QRCodeBucket,
	)
	equipmentHandler := equipment.NewHandler(equipmentService)

	taskService := tasks.NewService(taskRepo, equipmentRepo)
	taskHandler := tasks.NewHandler(taskService)

	templateService := templates.NewService(templateRepo)
	templateHandler := templates.NewHandler(templateService)

	portalService := portal.NewService(
		equipmentRepo,
		templateRepo,
		prestartRepo,
		portalStore,
		files,
		cfg.PrestartBucket,
		cfg.QRMediaBucket,
	)
	portalHandler := portal.NewHandler(portalService)

	dashboardService := dashboard.NewService(dashboardRepo)
	dashboardHandler := dashboard.NewHandler(dashboardService, dashboard.NewLiveFeed(dashboardService))

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	r.Static(cfg.MediaBaseURL, cfg.MediaBaseDir)

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1.Group("/auth"))
		portalHandler.RegisterRoutes(v1.Group("/portal"))

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected.Group("/auth"))
			customerHandler.RegisterRoutes(protected.Group("/customers"))
			equipmentHandler.RegisterRoutes(protected.Group("/equipment"))
			taskHandler.RegisterRoutes(protected.Group("/tasks"))
			templateHandler.RegisterRoutes(protected.Group("/templates"))
			dashboardHandler.RegisterRoutes(protected.Group("/dashboard"))
		}
	}

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
