package main

import (
	"context"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"invoiceflow/auth"
	"invoiceflow/cache"
	"invoiceflow/config"
	"invoiceflow/customer"
	"invoiceflow/dashboard"
	"invoiceflow/db"
	"invoiceflow/invoice"
	"invoiceflow/logger"
	"invoiceflow/revenue"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("bootstrap config: %v", err)
	}

	zlog, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("bootstrap logger: %v", err)
	}
	defer zlog.Sync()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("bootstrap database pool", zap.Error(err))
	}
	defer pool.Close()

	var listings cache.Store = cache.NewMemory()
	var denylist auth.Denylist = auth.NewMemoryDenylist()
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		listings = cache.NewRedisWithClient(client, "")
		denylist = auth.NewRedisDenylist(client)
	}

	invoiceService := invoice.NewService(invoice.NewRepository(pool), listings, zlog)
	sessionService := auth.NewService(auth.NewRepository(pool), denylist, cfg.JWTSecret)
	customerService := customer.NewService(customer.NewRepository(pool))
	revenueService := revenue.NewService(revenue.NewRepository(pool))
	dashService := dashboard.NewService(invoiceService, customerService, revenueService)

	server := &Server{
		invoiceService:  invoiceService,
		sessionService:  sessionService,
		customerService: customerService,
		dashService:     dashService,
		listings:        listings,
		log:             zlog,
	}

	zlog.Info("listening", zap.String("addr", cfg.HTTPAddr))
	if err := http.ListenAndServe(cfg.HTTPAddr, server.routes()); err != nil {
		zlog.Fatal("serve", zap.Error(err))
	}
}
