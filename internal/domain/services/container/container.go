package container

import (
	"sync"

	"gorm.io/gorm"

	"github.com/marcisebestyen/ExamManager-sub001/internal/app/middleware"
	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/services"
	"github.com/marcisebestyen/ExamManager-sub001/internal/infrastructure/config"
	"github.com/marcisebestyen/ExamManager-sub001/pkg/logger"
)

// ServiceContainer wires every service once at startup and hands them out by
// name to the route layer.
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config

	jwtService           services.InterfaceJWTService
	redisService         services.InterfaceRedisService
	operatorService      services.InterfaceOperatorService
	examService          services.InterfaceExamService
	examinerService      services.InterfaceExaminerService
	examTypeService      services.InterfaceExamTypeService
	professionService    services.InterfaceProfessionService
	institutionService   services.InterfaceInstitutionService
	passwordResetService services.InterfacePasswordResetService
	excelService         services.InterfaceExcelService
	reportService        services.InterfaceReportService
	backupService        services.InterfaceBackupService
	fileHistoryService   services.InterfaceFileHistoryService

	mu sync.RWMutex
}

// NewServiceContainer creates the container and initializes all services
func NewServiceContainer(db *gorm.DB, cfg *config.Config) *ServiceContainer {
	if db == nil {
		panic("database connection is nil")
	}
	if cfg == nil {
		panic("configuration is nil")
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
	}
	container.initializeServices()
	return container
}

func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.jwtService = services.NewJWTService(c.config, c.db)

	c.redisService = services.NewRedisService(c.config)
	if err := c.redisService.Ping(); err != nil {
		logger.Warning("redis unreachable, response cache falls back to memory only: %v", err)
	} else {
		middleware.UseCacheStore(c.redisService)
	}

	c.operatorService = services.NewOperatorService(c.db, c.config)
	c.examService = services.NewExamService(c.db, c.config)
	c.examinerService = services.NewExaminerService(c.db, c.config)
	c.examTypeService = services.NewExamTypeService(c.db, c.config)
	c.professionService = services.NewProfessionService(c.db, c.config)
	c.institutionService = services.NewInstitutionService(c.db, c.config)
	c.passwordResetService = services.NewPasswordResetService(c.db, c.config)
	c.excelService = services.NewExcelService(c.db, c.config)
	c.reportService = services.NewReportService(c.db, c.config)
	c.backupService = services.NewBackupService(c.db, c.config)
	c.fileHistoryService = services.NewFileHistoryService(c.db, c.config)
}

// GetService returns the named service
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "operator":
		return c.operatorService
	case "exam":
		return c.examService
	case "examiner":
		return c.examinerService
	case "exam_type":
		return c.examTypeService
	case "profession":
		return c.professionService
	case "institution":
		return c.institutionService
	case "password_reset":
		return c.passwordResetService
	case "excel":
		return c.excelService
	case "report":
		return c.reportService
	case "backup":
		return c.backupService
	case "file_history":
		return c.fileHistoryService
	default:
		return nil
	}
}

// GetDB returns the shared database handle
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}
