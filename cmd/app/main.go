package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"portal/cmd"
	httpin "portal/internal/adapters/in/http"
	"portal/internal/adapters/out/kafka"
	"portal/internal/adapters/out/postgres/notificationrepo"
	"portal/internal/adapters/out/postgres/orderrepo"
	"portal/internal/core/ports"
	"portal/internal/jobs"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)
	publisher := createPublisher(configs)

	root, err := cmd.NewCompositionRoot(configs, gormDB, publisher)
	if err != nil {
		log.Fatalf("Failed to assemble application: %v", err)
	}

	jobManager := jobs.NewJobManager(
		root.CreatePurgeReadNotificationsCommandHandler(),
		root.CreateRemindPendingSuggestionsCommandHandler(),
		slog.Default(),
	)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:               goDotEnvVariable("HTTP_PORT"),
		DBHost:                 goDotEnvVariable("DB_HOST"),
		DBPort:                 goDotEnvVariable("DB_PORT"),
		DBUser:                 goDotEnvVariable("DB_USER"),
		DBPassword:             goDotEnvVariable("DB_PASSWORD"),
		DBName:                 goDotEnvVariable("DB_NAME"),
		DBSslMode:              goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:              goDotEnvVariable("KAFKA_HOST"),
		KafkaOrderChangedTopic: goDotEnvVariable("KAFKA_ORDER_CHANGED_TOPIC"),
		AdminUserID:            goDotEnvVariable("ADMIN_USER_ID"),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.ItemImageDTO{},
		&notificationrepo.NotificationDTO{},
		&notificationrepo.CounterDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

// createPublisher connects the Kafka event publisher, or installs the no-op
// publisher when no broker is configured.
func createPublisher(configs cmd.Config) ports.OrderEventPublisher {
	if configs.KafkaHost == "" {
		slog.Warn("KAFKA_HOST not set, order change events will not be published")
		return kafka.NoOpOrderChangedPublisher{}
	}

	publisher, err := kafka.NewOrderChangedPublisher(
		[]string{configs.KafkaHost}, configs.KafkaOrderChangedTopic)
	if err != nil {
		log.Fatalf("Failed to create Kafka publisher: %v", err)
	}

	return publisher
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(httpin.Handlers{
		CreateOrder:         root.CreateCreateOrderCommandHandler(),
		SuggestDeliveryDate: root.CreateSuggestDeliveryDateCommandHandler(),
		AcceptDeliveryDate:  root.CreateAcceptDeliveryDateCommandHandler(),
		ForceDeliveryDate:   root.CreateForceDeliveryDateCommandHandler(),
		CancelOrder:         root.CreateCancelOrderCommandHandler(),
		SetOrderLock:        root.CreateSetOrderLockCommandHandler(),
		CompleteOrder:       root.CreateCompleteOrderCommandHandler(),
		DeleteOrder:         root.CreateDeleteOrderCommandHandler(),
		RestoreOrder:        root.CreateRestoreOrderCommandHandler(),
		AddOrderItem:        root.CreateAddOrderItemCommandHandler(),
		UpdateOrderItem:     root.CreateUpdateOrderItemCommandHandler(),
		RemoveOrderItem:     root.CreateRemoveOrderItemCommandHandler(),
		MarkRead:            root.CreateMarkNotificationsReadCommandHandler(),
		GetOrder:            root.CreateGetOrderQueryHandler(),
		GetCustomerOrders:   root.CreateGetCustomerOrdersQueryHandler(),
		GetAdminOrders:      root.CreateGetAdminOrdersQueryHandler(),
		GetNotifications:    root.CreateGetNotificationsQueryHandler(),
	})
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
