package api

import (
	"github.com/WinterOat/vault_service/config"
	"github.com/WinterOat/vault_service/infra/queue"
	"github.com/WinterOat/vault_service/internal/api/rest/handlers"
	"github.com/WinterOat/vault_service/internal/domain"
	"github.com/WinterOat/vault_service/internal/helper"
	"github.com/WinterOat/vault_service/internal/repository"
	"github.com/WinterOat/vault_service/internal/services"
	"github.com/WinterOat/vault_service/internal/watch"
	"github.com/WinterOat/vault_service/internal/worker"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const writeWorkers = 4

func StartServer(cfg config.Config) {
	app := fiber.New()

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("database connection error")
	}
	logrus.Info("database connected")

	// ---------- MIGRATION (guarded by advisory lock) ----------
	const migrateLockID int64 = 20260311

	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		logrus.WithError(err).Fatal("migration lock error")
	}
	defer func() {
		_ = db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
	}()

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.BankProfile{},
		&domain.MasterSecret{},
		&domain.GateAudit{},
	); err != nil {
		logrus.WithError(err).Fatal("migration error")
	}
	logrus.Info("migration successful")

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)

	dispatcher := worker.NewDispatcher(writeWorkers)
	dispatcher.Start()
	defer dispatcher.Stop()

	hub := watch.NewHub()
	authHelper := helper.SetupAuth(cfg.AccessSecret)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	secretRepo := repository.NewSecretRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// ---------- Services ----------
	userSvc := services.NewUserService(userRepo, authHelper)
	profileSvc := services.NewProfileService(profileRepo, dispatcher, hub, kafkaProducer, cfg.BiometricAvailable)
	gateSvc := services.NewGateService(secretRepo, profileRepo, auditRepo, dispatcher, authHelper, cfg.BiometricAvailable)

	// ---------- Consumer ----------
	if cfg.KafkaBroker != "" && cfg.KafkaGroupID != "" {
		purgeConsumer := queue.NewKafkaConsumer(
			cfg.KafkaBroker,
			cfg.KafkaTopic,
			cfg.KafkaGroupID,
			services.NewPurgeHandler(profileSvc),
		)
		go purgeConsumer.Listen()
	}

	// ---------- Handlers ----------
	userHandler := handlers.NewUserHandler(userSvc, authHelper)
	userHandler.SetupRoutes(app)

	vaultHandler := handlers.NewVaultHandler(profileSvc, gateSvc)
	vaultHandler.SetupRoutes(app, authHelper)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	addr := cfg.ServerPort
	logrus.Info("listening on ", addr)
	logrus.Fatal(app.Listen(addr))
}
