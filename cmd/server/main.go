package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"photobooking/internal/config"
	"photobooking/internal/database"
	"photobooking/internal/handler"
	"photobooking/internal/payment"
	"photobooking/internal/queue"
	"photobooking/internal/repository"
	"photobooking/internal/router"
	queue_publisher "photobooking/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil disables the listing cache
	if rdb == nil {
		log.Println("redis unavailable, listing cache disabled")
	}

	users := repository.NewUserRepo(db)
	classes := repository.NewClassRepo(db)
	selections := repository.NewSelectionRepo(db)
	payments := repository.NewPaymentRepo(db)

	gateway := payment.NewMidtransGateway(cfg.PaymentServerKey, cfg.PaymentProduction)
	coordinator := &payment.Coordinator{
		DB:         db,
		Classes:    classes,
		Selections: selections,
		Payments:   payments,
		Currency:   cfg.PaymentCurrency,
	}

	h := router.Handlers{
		Auth:       handler.NewAuthHandler(cfg, users),
		Users:      handler.NewUserHandler(users),
		Classes:    handler.NewClassHandler(classes),
		Selections: handler.NewSelectionHandler(selections),
		Payments: &handler.PaymentHandler{
			Gateway:     gateway,
			Coordinator: coordinator,
			Payments:    payments,
			Publish:     queue_publisher.PublishEnrollmentConfirmed,
		},
	}

	e := echo.New()
	router.RegisterRoutes(e, cfg, db, users, rdb, h)

	// Background consumer recording confirmed enrollments; it reconnects on
	// its own and never takes the API down.
	go func() {
		if err := queue.StartEnrollmentConsumer(); err != nil {
			log.Printf("enrollment consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
