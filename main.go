package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	apihttp "crossborder-cloud/internal/api/http"
	"crossborder-cloud/internal/collab"
	"crossborder-cloud/internal/consistency"
	customsapp "crossborder-cloud/internal/customs/application"
	customsrepo "crossborder-cloud/internal/customs/infrastructure/sqlstore"
	logisticsapp "crossborder-cloud/internal/logistics/application"
	logisticsrepo "crossborder-cloud/internal/logistics/infrastructure/sqlstore"
	"crossborder-cloud/internal/observability/metrics"
	ordersrepo "crossborder-cloud/internal/orders/infrastructure/sqlstore"
	"crossborder-cloud/internal/random"
	settlementapp "crossborder-cloud/internal/settlement/application"
	settlementrepo "crossborder-cloud/internal/settlement/infrastructure/sqlstore"
	"crossborder-cloud/internal/store"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	collabCfg, err := collab.LoadConfig()
	if err != nil {
		logger.Fatalf("collab config error: %v", err)
	}

	st, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("store open error: %v", err)
	}
	defer st.Close()

	ctx := context.Background()
	rng := random.New(cfg.RandomSeed)
	clock := systemClock{}

	if err := st.EnsureSchema(ctx); err != nil {
		logger.Fatalf("schema error: %v", err)
	}
	if err := st.Seed(ctx, cfg.SeedOrders, rng, clock); err != nil {
		logger.Fatalf("seed error: %v", err)
	}

	metrics.Init(st.DB, logger)

	orderRepo := ordersrepo.NewOrderRepository(st.DB)
	settlementService, err := settlementapp.NewService(
		settlementrepo.NewSettlementRepository(st.DB),
		settlementrepo.NewPaymentMethodReader(st.DB),
		rng,
	)
	if err != nil {
		logger.Fatalf("settlement service error: %v", err)
	}
	customsService, err := customsapp.NewService(customsrepo.NewDeclarationRepository(st.DB), rng, clock)
	if err != nil {
		logger.Fatalf("customs service error: %v", err)
	}
	logisticsService, err := logisticsapp.NewService(logisticsrepo.NewShipmentRepository(st.DB), rng, clock)
	if err != nil {
		logger.Fatalf("logistics service error: %v", err)
	}

	engine, err := collab.NewEngine(collabCfg, orderRepo, settlementService, customsService, logisticsService, logger)
	if err != nil {
		logger.Fatalf("collab engine error: %v", err)
	}
	if err := engine.Start(ctx); err != nil {
		logger.Fatalf("collab engine start error: %v", err)
	}

	checker, err := consistency.NewChecker(st.DB, clock, logger)
	if err != nil {
		logger.Fatalf("consistency checker error: %v", err)
	}
	scheduler, err := consistency.NewScheduler(checker, collabCfg.ConsistencyInterval, logger)
	if err != nil {
		logger.Fatalf("consistency scheduler error: %v", err)
	}
	scheduler.Start(ctx)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/pipeline", apihttp.NewPipelineHandler(st.DB, engine))
	mux.Handle("/api/v1/orders", apihttp.NewOrdersHandler(orderRepo))
	mux.Handle("/api/v1/audit-logs", apihttp.NewAuditLogsHandler(st.DB))
	mux.Handle("/api/v1/quality-scan", apihttp.NewQualityScanHandler(checker))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: apihttp.LoggingMiddleware(mux, logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	DatabaseURL string
	HTTPAddr    string
	SeedOrders  int
	RandomSeed  int64
}

func loadConfig() config {
	return config{
		DatabaseURL: getenvDefault("DATABASE_URL", "file:crossborder.db?_busy_timeout=5000"),
		HTTPAddr:    getenvDefault("HTTP_ADDR", ":8080"),
		SeedOrders:  getenvIntDefault("SEED_ORDERS", 200),
		RandomSeed:  getenvInt64Default("RANDOM_SEED", 0),
	}
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvIntDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvInt64Default(key string, fallback int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }
