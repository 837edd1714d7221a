package main

import (
	"log"

	"github.com/learnhub/learnhub/internal/course"
	infra "github.com/learnhub/learnhub/internal/infrastructure"
	"github.com/learnhub/learnhub/internal/infrastructure/driver"
	"github.com/learnhub/learnhub/internal/infrastructure/logging"
	"github.com/learnhub/learnhub/internal/infrastructure/uuid"
	ihttp "github.com/learnhub/learnhub/internal/interfaces/http"
	"github.com/learnhub/learnhub/internal/progress"
	"github.com/learnhub/learnhub/internal/stats"
	"github.com/learnhub/learnhub/internal/user"
	"go.uber.org/zap"
)

func main() {
	log.SetFlags(log.Lshortfile | log.Ldate | log.Ltime)
	option, err := infra.InitConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.NewLogger(&logging.Config{
		FilePath: option.Logging.FilePath,
		Level:    option.Logging.Level,
		AppID:    option.AppID,
		Env:      option.Env,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %s\n", err)
	}
	logger = logger.With(
		zap.String("service.id", option.AppID),
	)
	defer logger.Sync()

	dbConn, err := driver.GetDBConnection(&driver.DBConfig{
		User:     option.Database.User,
		Password: option.Database.Password,
		MaxConn:  option.Database.MaxConn,
		Protocol: option.Database.Protocol,
		Driver:   option.Database.Driver,
		Host:     option.Database.Host,
		Port:     option.Database.Port,
		Query:    option.Database.Query,
		Schema:   option.Database.Schema,
	})
	if err != nil {
		log.Fatalf("Failed to create DB connection: %s\n", err)
	}
	logger.Debug("Create db connection instance", zap.String("db.driver", option.Database.Driver),
		zap.String("db.schema", option.Database.Schema),
		zap.String("db.host", option.Database.Host),
	)

	rdb := driver.NewRedisClient(option.KVStore.Host, option.KVStore.Port, option.KVStore.Password)

	UUIDGenerator := uuid.NewNanoIDGenerator(option.Security.IDLength)
	UserRepo := user.NewUserRepository(dbConn, UUIDGenerator)
	UserUseCase := user.NewUserUseCase(UserRepo)

	ProgressRepo := progress.NewProgressRepository(dbConn, UUIDGenerator)
	ProgressUseCase := progress.NewProgressUseCase(ProgressRepo)

	CourseRepo := course.NewCourseRepository(dbConn)
	CourseUseCase := course.NewCourseUseCase(CourseRepo, ProgressRepo)

	StatsRepo := stats.NewStatsRepository(dbConn)
	StatsUseCase := stats.NewStatsUseCase(StatsRepo)

	ihttp.Serve(dbConn, rdb, option, UserUseCase, UserRepo, ProgressUseCase, CourseUseCase, StatsUseCase, logger)
}
