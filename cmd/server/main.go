// @title           Exam Manager API
// @version         1.0
// @description     Administration service for vocational exam scheduling, exam boards and examiners

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT

// @BasePath  /api

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Enter the token with the `Bearer ` prefix
package main

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/marcisebestyen/ExamManager-sub001/internal/app/routes"
	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/models"
	"github.com/marcisebestyen/ExamManager-sub001/internal/infrastructure/config"
	"github.com/marcisebestyen/ExamManager-sub001/internal/infrastructure/database"
	Logger "github.com/marcisebestyen/ExamManager-sub001/pkg/logger"
)

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())

	if err := Logger.SetupLogger(); err != nil {
		fmt.Printf("failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil {
		Logger.Warning("no .env file loaded: %v", err)
	} else {
		Logger.Info("loaded .env file")
	}

	cfg := config.GetConfig()

	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		log.Fatalf("failed to create database connection pool: %v", err)
	}
	db := pool.GetDB()

	if cfg.DBMigrationMode == "drop" {
		log.Println("warning: running in drop mode, all tables will be dropped and recreated")
		if err := dropAndRecreateTables(db); err != nil {
			log.Fatalf("drop and recreate failed: %v", err)
		}
	} else {
		if err := autoMigrate(db); err != nil {
			log.Fatalf("auto migration failed: %v", err)
		}
	}

	ensureAdminExists(db, cfg)

	r := routes.SetupRouter(db, cfg)

	printSystemInfo(pool)

	port := cfg.ServerPort
	Logger.Info("server listening on http://0.0.0.0:%s", port)
	if err := r.Run("0.0.0.0:" + port); err != nil {
		Logger.Error("server failed: %v", err)
		os.Exit(1)
	}
}

// autoMigrate adds new tables and columns, never drops anything
func autoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Operator{},
		&models.ExamType{},
		&models.Profession{},
		&models.Institution{},
		&models.Examiner{},
		&models.Exam{},
		&models.ExamBoard{},
		&models.PasswordReset{},
		&models.BackupHistory{},
		&models.FileHistory{},
	)
	if err != nil {
		return err
	}

	fmt.Println("Database migration completed")
	return nil
}

// dropAndRecreateTables drops all tables and rebuilds them from the models
func dropAndRecreateTables(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get DB connection: %w", err)
	}

	if _, err = sqlDB.Exec("SET FOREIGN_KEY_CHECKS = 0"); err != nil {
		log.Printf("failed to disable foreign key checks: %v", err)
	}
	defer sqlDB.Exec("SET FOREIGN_KEY_CHECKS = 1")

	tables := []string{
		"exam_boards", "exams", "examiners", "exam_types", "professions",
		"institutions", "password_resets", "backup_histories", "file_histories",
		"operators",
	}

	for _, table := range tables {
		log.Printf("dropping table: %s", table)
		if _, err := sqlDB.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
			log.Printf("failed to drop table %s: %v", table, err)
		}
	}

	return autoMigrate(db)
}

// ensureAdminExists seeds a default admin account on first start
func ensureAdminExists(db *gorm.DB, cfg *config.Config) {
	var count int64
	db.Model(&models.Operator{}).Where("role = ?", models.RoleAdmin).Count(&count)

	if count == 0 {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.DefaultAdminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("failed to hash default admin password: %v", err)
		}

		admin := models.Operator{
			UserName: "admin",
			Password: string(hashedPassword),
			Name:     "System Administrator",
			Role:     models.RoleAdmin,
		}

		if err := db.Create(&admin).Error; err != nil {
			log.Fatalf("failed to create default admin: %v", err)
		}

		log.Println("created default admin account")
	}
}

// printSystemInfo logs connection pool and runtime stats at startup
func printSystemInfo(pool *database.ConnectionPool) {
	if stats, err := pool.Stats(); err == nil {
		log.Printf("database connection pool: %+v", stats)
	}

	log.Printf("CPU cores: %d", runtime.NumCPU())
	log.Printf("goroutines: %d", runtime.NumGoroutine())

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	log.Printf("memory: Alloc=%v MiB, TotalAlloc=%v MiB, Sys=%v MiB",
		m.Alloc/1024/1024, m.TotalAlloc/1024/1024, m.Sys/1024/1024)

	log.Printf("started at: %s", time.Now().Format(time.RFC3339))
}
