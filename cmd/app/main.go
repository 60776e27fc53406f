package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fulfillment/cmd"
	httpserver "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/vendorrepo"
	"fulfillment/internal/jobs"
)

func main() {
	configs := getConfigs()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	gormDB := mustConnectDB(configs, logger)

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := jobs.NewJobManager(app.CreateGetOverdueProductionOrdersQueryHandler(), logger)
	if err = jobManager.StartAll(); err != nil {
		logger.Fatal("Failed to start background jobs", zap.Error(err))
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:                goDotEnvVariable("HTTP_PORT"),
		DBHost:                  goDotEnvVariable("DB_HOST"),
		DBPort:                  goDotEnvVariable("DB_PORT"),
		DBUser:                  goDotEnvVariable("DB_USER"),
		DBPassword:              goDotEnvVariable("DB_PASSWORD"),
		DBName:                  goDotEnvVariable("DB_NAME"),
		DBSslMode:               goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:               goDotEnvVariable("KAFKA_HOST"),
		KafkaEventsTopic:        goDotEnvVariable("KAFKA_EVENTS_TOPIC"),
		KafkaNotificationsTopic: goDotEnvVariable("KAFKA_NOTIFICATIONS_TOPIC"),
		VendorIntakeURL:         goDotEnvVariable("VENDOR_INTAKE_URL"),
		AttributionURL:          goDotEnvVariable("ATTRIBUTION_URL"),
		PickupLocation:          goDotEnvVariable("PICKUP_LOCATION"),
		PickupInstructions:      goDotEnvVariable("PICKUP_INSTRUCTIONS"),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config, logger *zap.Logger) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost,
		configs.DBPort,
		configs.DBUser,
		configs.DBPassword,
		configs.DBName,
		configs.DBSslMode,
	)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.StatusHistoryDTO{},
		&vendorrepo.VendorDTO{},
	)
	if err != nil {
		logger.Fatal("Failed to migrate database schema", zap.Error(err))
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	server := httpserver.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateTransitionOrderCommandHandler(),
		app.CreateProcessPaymentCommandHandler(),
		app.CreateAssignVendorCommandHandler(),
		app.CreateMarkShippedCommandHandler(),
		app.CreateMarkPickedUpCommandHandler(),
		app.CreatePutOnHoldCommandHandler(),
		app.CreateResumeFromHoldCommandHandler(),
		app.CreateGetOrderHistoryQueryHandler(),
		app.CreateGetOrdersByStatusQueryHandler(),
		app.CreateGetOverdueProductionOrdersQueryHandler(),
	)

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
