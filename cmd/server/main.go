package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"storefront-order-service/internal/config"
	httpctrl "storefront-order-service/internal/controllers/http"
	"storefront-order-service/internal/infra"
	mmysql "storefront-order-service/internal/infra/mysql"
	"storefront-order-service/internal/infra/rabbitmq"
	mysqlrepo "storefront-order-service/internal/repository/mysql"
	"storefront-order-service/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := mmysql.NewMySQL(cfg)
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	txm := mysqlrepo.NewTxManager(db)
	cartRepo := mysqlrepo.NewCartRepository(db)
	orderRepo := mysqlrepo.NewOrderRepository(db)
	feedbackRepo := mysqlrepo.NewFeedbackRepository(db)

	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisHost + ":" + cfg.RedisPort,
		DB:           0,
		PoolSize:     50,
		MinIdleConns: 5,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})

	catalog := infra.NewCatalogClient(cfg.CatalogURL, 2*time.Second)
	cachedCatalog := infra.NewCachedCatalogClient(catalog, redisClient)

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
	if err != nil {
		log.Fatalf("failed to init publisher: %v", err)
	}
	defer publisher.Close()

	pricing := services.PricingConfig{
		PlatformFee: cfg.PlatformFee,
		DeliveryFee: cfg.DeliveryFee,
		TaxRate:     cfg.TaxRate,
	}

	// Cart adds read through the cache for display prices; checkout talks
	// to the live catalog so price-at-purchase is never stale.
	cartSvc := services.NewCartService(cartRepo, cachedCatalog)
	checkoutSvc := services.NewCheckoutService(txm, cartRepo, orderRepo, catalog, publisher, pricing)
	statusSvc := services.NewStatusService(txm, orderRepo, publisher)
	feedbackSvc := services.NewFeedbackService(txm, orderRepo, feedbackRepo)
	querySvc := services.NewOrderQueryService(orderRepo)

	handler := httpctrl.NewHandler(cartSvc, checkoutSvc, statusSvc, feedbackSvc, querySvc)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpctrl.CorrelationID())

	handler.RegisterRoutes(r)

	log.Printf("Starting storefront order service on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
