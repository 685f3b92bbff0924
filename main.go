package main

import (
	"log"
	"os"
	"time"

	"backend_maquinaria/api"
	"backend_maquinaria/config"
	"backend_maquinaria/database"
	"backend_maquinaria/middleware"
	"backend_maquinaria/models"
	"backend_maquinaria/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// initDB intenta levantar la base de datos. Si no hay conexión, el panel
// arranca en modo demo con datos de muestra y sin guardar cambios.
func initDB() *gorm.DB {
	log.Println("🔧 Inicializando la base de datos...")

	if err := database.CreateDatabaseIfNotExists(); err != nil {
		log.Printf("⚠️  No se pudo crear la base de datos: %v", err)
		log.Println("⚠️  Arrancando en MODO DEMO: los cambios no se guardan")
		return nil
	}

	if err := database.ConnectDatabase(); err != nil {
		log.Printf("⚠️  No se pudo conectar a la base de datos: %v", err)
		log.Println("⚠️  Arrancando en MODO DEMO: los cambios no se guardan")
		return nil
	}

	db := database.GetDB()

	// El historial vive en services para no ciclar los imports
	if err := db.AutoMigrate(&services.ChangeHistory{}); err != nil {
		log.Printf("⚠️  No se pudo migrar el historial de cambios: %v", err)
	}

	if err := database.CreatePerformanceIndexes(db); err != nil {
		log.Printf("⚠️  No se pudieron crear los índices: %v", err)
	}

	log.Println("✅ Base de datos lista")
	return db
}

// seedAdmin garantiza que exista al menos una cuenta admin
func seedAdmin(db *gorm.DB) {
	if db == nil {
		return
	}

	var count int64
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}

	password := os.Getenv("ADMIN_INITIAL_PASSWORD")
	if password == "" {
		log.Println("⚠️  No hay cuenta admin y falta ADMIN_INITIAL_PASSWORD; omitiendo la siembra")
		return
	}

	admin := models.User{
		Username: "admin",
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := admin.SetPassword(password); err != nil {
		log.Printf("⚠️  No se pudo sembrar la cuenta admin: %v", err)
		return
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("⚠️  No se pudo sembrar la cuenta admin: %v", err)
		return
	}
	log.Println("✅ Cuenta admin inicial creada")
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("❌ Error en la configuración:", err)
	}
	cfg.LogConfig()

	db := initDB()
	demoMode := db == nil
	seedAdmin(db)

	if err := database.InitRedis(); err != nil {
		log.Printf("⚠️  Redis no disponible, el cache queda deshabilitado: %v", err)
	}

	logger := log.New(os.Stdout, "[maquinaria] ", log.LstdFlags)

	// Servicios
	repo := services.NewRepository(db)
	history := services.NewHistoryService(db, logger)
	cache := services.NewCacheService(database.GetRedis(), logger)
	exports := services.NewExportService(repo, os.TempDir())
	assistant := services.NewAssistantService(repo)

	var telegram *services.TelegramClient
	if cfg.Notifications.TelegramBotToken != "" {
		telegram, err = services.NewTelegramClient(cfg.Notifications)
		if err != nil {
			log.Printf("⚠️  Telegram no disponible, las alertas solo van al log: %v", err)
		}
	}
	alerts := services.NewAlertService(repo, telegram, logger)
	if !demoMode {
		if err := alerts.Start(cfg.Notifications.DailyScanSpec); err != nil {
			log.Printf("⚠️  No se pudo programar el barrido diario: %v", err)
		}
		defer alerts.Stop()
	}

	var importer *services.ImportService
	if !demoMode && cfg.HasDataAPI() {
		client := services.NewDataAPIClient(cfg.DataAPI, nil, logger)
		if client != nil {
			importer = services.NewImportService(db, client, logger)
			log.Println("✅ Integración con el backend de datos heredado habilitada")
		}
	}

	// Handlers
	equipmentAPI := api.NewEquipmentAPI(repo, history)
	maintenanceAPI := api.NewMaintenanceAPI(repo, history)
	documentAPI := api.NewDocumentAPI(repo, history)
	fuelAPI := api.NewFuelAPI(repo, history)
	filterAPI := api.NewFilterAPI(repo, history)
	operatorAPI := api.NewOperatorAPI(repo, history)

	// Las mutaciones descartan el resumen cacheado del panel
	equipmentAPI.Cache = cache
	maintenanceAPI.Cache = cache
	documentAPI.Cache = cache
	fuelAPI.Cache = cache
	operatorAPI.Cache = cache
	historyAPI := api.NewHistoryAPI(history)
	authAPI := api.NewAuthAPI(db, cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	userAPI := api.NewUserAPI(db, history)
	dashboardAPI := api.NewDashboardAPI(repo, cache)
	exportAPI := api.NewExportAPI(exports)
	assistantAPI := api.NewAssistantAPI(assistant, repo)
	alertAPI := api.NewAlertAPI(alerts, repo)
	integrationAPI := api.NewIntegrationAPI(importer)

	auth := middleware.NewAuthMiddleware(cfg.JWT.Secret, demoMode)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           time.Duration(cfg.CORS.MaxAge) * time.Second,
	}))

	r.GET("/health", dashboardAPI.GetHealth)
	r.POST("/api/auth/login", middleware.LoginRateLimit(), authAPI.Login)

	apiGroup := r.Group("/api")
	apiGroup.Use(auth.RequireAuth(), middleware.APIRateLimit())
	{
		apiGroup.GET("/auth/me", authAPI.GetCurrentUser)
		apiGroup.GET("/dashboard", dashboardAPI.GetDashboard)
		apiGroup.POST("/assistant", assistantAPI.Ask)

		equipos := apiGroup.Group("/equipos")
		{
			equipos.GET("", auth.RequirePermission(models.ResourceEquipment, models.ActionRead), equipmentAPI.GetEquipmentList)
			equipos.GET("/statistics", auth.RequirePermission(models.ResourceEquipment, models.ActionRead), equipmentAPI.GetEquipmentStatistics)
			equipos.GET("/:code", auth.RequirePermission(models.ResourceEquipment, models.ActionRead), equipmentAPI.GetEquipment)
			equipos.POST("", auth.RequirePermission(models.ResourceEquipment, models.ActionCreate), equipmentAPI.CreateEquipment)
			equipos.PUT("/:id", auth.RequirePermission(models.ResourceEquipment, models.ActionUpdate), equipmentAPI.UpdateEquipment)
			equipos.DELETE("/:id", auth.RequirePermission(models.ResourceEquipment, models.ActionDelete), equipmentAPI.DeleteEquipment)
			equipos.PUT("/horometro/:code", auth.RequirePermission(models.ResourceEquipment, models.ActionUpdate), equipmentAPI.UpdateHourMeter)
		}

		mantenimiento := apiGroup.Group("/mantenimiento")
		{
			mantenimiento.GET("", auth.RequirePermission(models.ResourceMaintenance, models.ActionRead), maintenanceAPI.GetMaintenanceBoard)
			mantenimiento.POST("", auth.RequirePermission(models.ResourceMaintenance, models.ActionCreate), maintenanceAPI.CreateMaintenance)
			mantenimiento.PUT("/:id", auth.RequirePermission(models.ResourceMaintenance, models.ActionUpdate), maintenanceAPI.UpdateMaintenance)
			mantenimiento.POST("/:code/servicio", auth.RequirePermission(models.ResourceMaintenance, models.ActionUpdate), maintenanceAPI.RegisterService)
		}

		documentos := apiGroup.Group("/documentos")
		{
			documentos.GET("", auth.RequirePermission(models.ResourceDocuments, models.ActionRead), documentAPI.GetDocumentBoard)
			documentos.POST("", auth.RequirePermission(models.ResourceDocuments, models.ActionCreate), documentAPI.CreateDocument)
			documentos.PUT("/:id", auth.RequirePermission(models.ResourceDocuments, models.ActionUpdate), documentAPI.UpdateDocument)
			documentos.DELETE("/:id", auth.RequirePermission(models.ResourceDocuments, models.ActionDelete), documentAPI.DeleteDocument)
			documentos.POST("/:id/renovar", auth.RequirePermission(models.ResourceDocuments, models.ActionUpdate), documentAPI.RenewDocument)
		}

		combustible := apiGroup.Group("/combustible")
		{
			combustible.GET("", auth.RequirePermission(models.ResourceFuel, models.ActionRead), fuelAPI.GetFuelMovements)
			combustible.GET("/resumen", auth.RequirePermission(models.ResourceFuel, models.ActionRead), fuelAPI.GetFuelSummary)
			combustible.POST("", auth.RequirePermission(models.ResourceFuel, models.ActionCreate), fuelAPI.CreateFuelMovement)
			combustible.DELETE("/:id", auth.RequirePermission(models.ResourceFuel, models.ActionDelete), fuelAPI.DeleteFuelMovement)
		}

		filtros := apiGroup.Group("/filtros")
		{
			filtros.GET("", auth.RequirePermission(models.ResourceFilters, models.ActionRead), filterAPI.GetFilterKits)
			filtros.GET("/compras", auth.RequirePermission(models.ResourceFilters, models.ActionRead), filterAPI.GetPurchaseList)
			filtros.PUT("/:code", auth.RequirePermission(models.ResourceFilters, models.ActionUpdate), filterAPI.UpsertFilterKit)
			filtros.DELETE("/:code", auth.RequirePermission(models.ResourceFilters, models.ActionDelete), filterAPI.DeleteFilterKit)
		}

		operadores := apiGroup.Group("/operadores")
		{
			operadores.GET("", auth.RequirePermission(models.ResourceOperators, models.ActionRead), operatorAPI.GetOperators)
			operadores.GET("/vencimientos", auth.RequirePermission(models.ResourceOperators, models.ActionRead), operatorAPI.GetOperatorExpiringDocuments)
			operadores.POST("", auth.RequirePermission(models.ResourceOperators, models.ActionCreate), operatorAPI.CreateOperator)
			operadores.PUT("/:id", auth.RequirePermission(models.ResourceOperators, models.ActionUpdate), operatorAPI.UpdateOperator)
			operadores.DELETE("/:id", auth.RequirePermission(models.ResourceOperators, models.ActionDelete), operatorAPI.DeleteOperator)
		}

		apiGroup.GET("/alertas", auth.RequirePermission(models.ResourceMaintenance, models.ActionRead), alertAPI.GetAlerts)
		apiGroup.POST("/alertas/escanear", auth.RequireRole(models.RoleAdmin), alertAPI.TriggerScan)

		apiGroup.GET("/historial", auth.RequirePermission(models.ResourceHistory, models.ActionRead), historyAPI.GetHistory)
		apiGroup.GET("/exportes/:dataset", auth.RequirePermission(models.ResourceExports, models.ActionRead), exportAPI.ExportDataset)

		usuarios := apiGroup.Group("/usuarios", auth.RequireRole(models.RoleAdmin))
		{
			usuarios.GET("", userAPI.GetUsers)
			usuarios.POST("", userAPI.CreateUser)
			usuarios.PUT("/:id", userAPI.UpdateUser)
			usuarios.DELETE("/:id", userAPI.DeleteUser)
		}

		apiGroup.POST("/integracion/importar", auth.RequireRole(models.RoleAdmin), integrationAPI.ImportLegacyData)
	}

	if demoMode {
		log.Println("🎭 Servidor en MODO DEMO con datos de muestra")
	}
	log.Printf("🚀 Servidor escuchando en el puerto %s", cfg.App.Port)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatal("❌ Error del servidor:", err)
	}
}
