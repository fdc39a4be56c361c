package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/marcisebestyen/ExamManager-sub001/docs"
	"github.com/marcisebestyen/ExamManager-sub001/internal/app/controllers"
	"github.com/marcisebestyen/ExamManager-sub001/internal/app/middleware"
	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/services/container"
	"github.com/marcisebestyen/ExamManager-sub001/internal/infrastructure/config"
)

// SetupRouter initializes and returns the configured router
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	serviceContainer := container.NewServiceContainer(db, cfg)
	middleware.InitAuthMiddleware(cfg, db)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes configures all API routes
func registerRoutes(r *gin.Engine, container *container.ServiceContainer) {
	api := r.Group("/api")
	registerPublicRoutes(api, container)
	registerAuthenticatedRoutes(api, container)
	registerAdminRoutes(api, container)
}

// registerPublicRoutes registers routes that need no token
func registerPublicRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	api.Use(middleware.IPRateLimiter(10, 20))

	healthController := controllers.NewHealthCheckController(container)
	api.GET("/ping", healthController.Ping)
	api.GET("/health", healthController.Ping)

	authGroup := api.Group("/auth")
	// Tight limit on credential endpoints.
	authGroup.Use(middleware.PathRateLimiter(5, 10))
	authGroup.POST("/login", controllers.HandleJWTFunc(container, "login"))
	authGroup.POST("/password-reset", controllers.HandleJWTFunc(container, "requestPasswordReset"))
	authGroup.POST("/password-reset/redeem", controllers.HandleJWTFunc(container, "redeemPasswordReset"))
}

// registerAuthenticatedRoutes registers routes for any authenticated operator
func registerAuthenticatedRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	auth := api.Group("/")
	auth.Use(middleware.Authentication())
	auth.Use(middleware.IPRateLimiter(30, 50))

	auth.POST("/auth/password-reset/revoke", controllers.HandleJWTFunc(container, "revokePasswordReset"))

	// Exams and their boards
	examGroup := auth.Group("/exams")
	{
		examGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleExamFunc(container, "getExams"))
		examGroup.GET("/deleted", controllers.HandleExamFunc(container, "getDeletedExams"))
		examGroup.GET("/:id", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleExamFunc(container, "getExam"))
		examGroup.POST("", controllers.HandleExamFunc(container, "createExam"))
		examGroup.PUT("/:id", controllers.HandleExamFunc(container, "updateExam"))
		examGroup.DELETE("/:id", controllers.HandleExamFunc(container, "deleteExam"))
		examGroup.POST("/:id/restore", controllers.HandleExamFunc(container, "restoreExam"))
		examGroup.GET("/:id/board", controllers.HandleExamFunc(container, "getBoard"))
		examGroup.POST("/:id/board", controllers.HandleExamFunc(container, "addBoardMember"))
		examGroup.DELETE("/:id/board/:examiner_id", controllers.HandleExamFunc(container, "removeBoardMember"))
	}

	// Examiners
	examinerGroup := auth.Group("/examiners")
	{
		examinerGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleExaminerFunc(container, "getExaminers"))
		examinerGroup.GET("/deleted", controllers.HandleExaminerFunc(container, "getDeletedExaminers"))
		examinerGroup.GET("/:id", controllers.HandleExaminerFunc(container, "getExaminer"))
		examinerGroup.POST("", controllers.HandleExaminerFunc(container, "createExaminer"))
		examinerGroup.PUT("/:id", controllers.HandleExaminerFunc(container, "updateExaminer"))
		examinerGroup.DELETE("/:id", controllers.HandleExaminerFunc(container, "deleteExaminer"))
		examinerGroup.POST("/:id/restore", controllers.HandleExaminerFunc(container, "restoreExaminer"))
	}

	// Lookup tables
	examTypeGroup := auth.Group("/exam-types")
	{
		examTypeGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleExamTypeFunc(container, "getExamTypes"))
		examTypeGroup.GET("/:id", controllers.HandleExamTypeFunc(container, "getExamType"))
		examTypeGroup.POST("", controllers.HandleExamTypeFunc(container, "createExamType"))
		examTypeGroup.PUT("/:id", controllers.HandleExamTypeFunc(container, "updateExamType"))
		examTypeGroup.DELETE("/:id", controllers.HandleExamTypeFunc(container, "deleteExamType"))
	}

	professionGroup := auth.Group("/professions")
	{
		professionGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleProfessionFunc(container, "getProfessions"))
		professionGroup.GET("/:id", controllers.HandleProfessionFunc(container, "getProfession"))
		professionGroup.POST("", controllers.HandleProfessionFunc(container, "createProfession"))
		professionGroup.PUT("/:id", controllers.HandleProfessionFunc(container, "updateProfession"))
		professionGroup.DELETE("/:id", controllers.HandleProfessionFunc(container, "deleteProfession"))
	}

	institutionGroup := auth.Group("/institutions")
	{
		institutionGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleInstitutionFunc(container, "getInstitutions"))
		institutionGroup.GET("/:id", controllers.HandleInstitutionFunc(container, "getInstitution"))
		institutionGroup.POST("", controllers.HandleInstitutionFunc(container, "createInstitution"))
		institutionGroup.PUT("/:id", controllers.HandleInstitutionFunc(container, "updateInstitution"))
		institutionGroup.DELETE("/:id", controllers.HandleInstitutionFunc(container, "deleteInstitution"))
	}

	// Spreadsheets and reports
	fileGroup := auth.Group("/files")
	{
		fileGroup.GET("/exams/export", controllers.HandleFileFunc(container, "exportExams"))
		fileGroup.GET("/exams/:id/report", controllers.HandleFileFunc(container, "examReport"))
		fileGroup.GET("/examiners/export", controllers.HandleFileFunc(container, "exportExaminers"))
		fileGroup.GET("/examiners/template", controllers.HandleFileFunc(container, "examinerTemplate"))
		fileGroup.GET("/examiners/roster", controllers.HandleFileFunc(container, "examinerRoster"))
		fileGroup.POST("/examiners/import", controllers.HandleFileFunc(container, "importExaminers"))
		fileGroup.GET("/history", controllers.HandleFileFunc(container, "getFileHistory"))
		fileGroup.GET("/history/:id/download", controllers.HandleFileFunc(container, "downloadFile"))
	}
}

// registerAdminRoutes registers routes restricted to the admin role
func registerAdminRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	admin := api.Group("/")
	admin.Use(middleware.AuthenticateAdmin())
	admin.Use(middleware.IPRateLimiter(30, 50))

	operatorGroup := admin.Group("/operators")
	{
		operatorGroup.GET("", controllers.HandleOperatorFunc(container, "getOperators"))
		operatorGroup.GET("/deleted", controllers.HandleOperatorFunc(container, "getDeletedOperators"))
		operatorGroup.GET("/:id", controllers.HandleOperatorFunc(container, "getOperator"))
		operatorGroup.POST("", controllers.HandleOperatorFunc(container, "createOperator"))
		operatorGroup.PUT("/:id", controllers.HandleOperatorFunc(container, "updateOperator"))
		operatorGroup.DELETE("/:id", controllers.HandleOperatorFunc(container, "deleteOperator"))
		operatorGroup.POST("/:id/restore", controllers.HandleOperatorFunc(container, "restoreOperator"))
	}

	backupGroup := admin.Group("/backups")
	{
		backupGroup.GET("", controllers.HandleBackupFunc(container, "getBackups"))
		backupGroup.POST("", controllers.HandleBackupFunc(container, "createBackup"))
		backupGroup.POST("/restore", controllers.HandleBackupFunc(container, "restoreBackup"))
	}
}
