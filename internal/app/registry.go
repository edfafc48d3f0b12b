package app

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mohammed4122002/workflow-pro-backend/internal/access"
	"github.com/mohammed4122002/workflow-pro-backend/internal/attendance"
	"github.com/mohammed4122002/workflow-pro-backend/internal/auth"
	"github.com/mohammed4122002/workflow-pro-backend/internal/financial"
	"github.com/mohammed4122002/workflow-pro-backend/internal/insight"
	"github.com/mohammed4122002/workflow-pro-backend/internal/leave"
	"github.com/mohammed4122002/workflow-pro-backend/internal/messaging/kafka"
	"github.com/mohammed4122002/workflow-pro-backend/internal/report"
	"github.com/mohammed4122002/workflow-pro-backend/internal/task"
	"github.com/mohammed4122002/workflow-pro-backend/internal/user"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	secret := []byte(os.Getenv("JWT_SECRET"))
	if len(secret) == 0 {
		return fmt.Errorf("JWT_SECRET is required")
	}

	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	taskRepo := task.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	financialRepo := financial.NewRepository(gormDB)
	reportRepo := report.NewRepository(gormDB)
	insightRepo := insight.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Access Control Core ---
	enforcer, err := access.NewEnforcer()
	if err != nil {
		return err
	}
	evaluator := access.NewEvaluator(enforcer, logger)

	// --- Services ---
	userService := user.NewService(userRepo)
	taskService := task.NewService(db, taskRepo, userService, outboxRepo)
	leaveService := leave.NewService(db, leaveRepo, outboxRepo)
	attendanceService := attendance.NewService(db, attendanceRepo)
	financialService := financial.NewService(db, financialRepo, userService)
	reportService := report.NewService(reportRepo)
	authService := auth.NewService(userRepo, secret)

	generator := insight.NewGenerator(insight.GeneratorConfig{
		BaseURL: os.Getenv("OPENAI_BASE_URL"),
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		Model:   os.Getenv("OPENAI_MODEL"),
		Timeout: 60 * time.Second,
	})
	insightService := insight.NewService(insightRepo, generator, rdb)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, logger)
	userHandler := user.NewHandler(userService, logger)
	taskHandler := task.NewHandler(taskService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	attendanceHandler := attendance.NewHandler(attendanceService, logger)
	financialHandler := financial.NewHandler(financialService, logger)
	reportHandler := report.NewHandler(reportService, logger)
	insightHandler := insight.NewHandler(insightService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, secret, userService, logger)
		user.RegisterRoutes(api, userHandler, secret, userService, evaluator, logger)
		task.RegisterRoutes(api, taskHandler, secret, userService, evaluator, rdb, logger)
		leave.RegisterRoutes(api, leaveHandler, secret, userService, evaluator, rdb, logger)
		attendance.RegisterRoutes(api, attendanceHandler, secret, userService, evaluator, rdb, logger)
		financial.RegisterRoutes(api, financialHandler, secret, userService, evaluator, rdb, logger)
		report.RegisterRoutes(api, reportHandler, secret, userService, evaluator, rdb, logger)
		insight.RegisterRoutes(api, insightHandler, secret, userService, evaluator, logger)
	}

	return nil
}
