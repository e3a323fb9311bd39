// Package app wires the shop service from its configuration.
package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/musicshop/internal/catalog"
	"github.com/abgdnv/musicshop/internal/config"
	"github.com/abgdnv/musicshop/internal/roster"
	"github.com/abgdnv/musicshop/internal/service"
	"github.com/abgdnv/musicshop/internal/store"
	"github.com/abgdnv/musicshop/internal/transport/rest"
	"github.com/abgdnv/musicshop/pkg/messaging"
	"github.com/abgdnv/musicshop/pkg/server"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName identifies the shop in traces, metrics and gRPC health checks.
const ServiceName = "musicshop"

type Dependencies struct {
	ShopService   service.ShopService
	RosterService service.RosterService
	Health        *health.Server
	Metrics       http.Handler
	MetricsPath   string
	Logger        *slog.Logger
}

// LoadData reads the catalog and roster data files.
func LoadData(cfg config.DataConfig) (*catalog.Catalog, *roster.Roster, error) {
	cat, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	staff, err := roster.Load(cfg.Roster)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load roster: %w", err)
	}
	return cat, staff, nil
}

// NewSaleStore returns the PostgreSQL ledger when a pool is given and the in-memory one otherwise.
func NewSaleStore(dbPool *pgxpool.Pool) store.SaleStore {
	if dbPool == nil {
		return store.NewMemoryStore()
	}
	return store.NewPgStore(dbPool)
}

// SetupDependencies builds the services. metrics may be nil when the scrape endpoint is disabled.
func SetupDependencies(cat *catalog.Catalog, staff *roster.Roster, sales store.SaleStore, publisher messaging.Publisher,
	metrics http.Handler, metricsPath string, logger *slog.Logger) *Dependencies {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	return &Dependencies{
		ShopService:   service.NewService(cat, sales, publisher, logger),
		RosterService: service.NewStaff(staff),
		Health:        hs,
		Metrics:       metrics,
		MetricsPath:   metricsPath,
		Logger:        logger,
	}
}

// SetupHttpHandler initializes the router and routes of the shop.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return server.Traced(mux, ServiceName)
}

// wireRoutes sets up the HTTP routes of the shop.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	handler := rest.NewHandler(deps.ShopService, deps.RosterService, deps.Logger)
	handler.RegisterRoutes(mux)
	if deps.Metrics != nil {
		mux.Method(http.MethodGet, deps.MetricsPath, deps.Metrics)
	}
}

// SetupHttpServer creates and configures the HTTP server of the shop.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	return server.NewHTTPServer(cfg.HTTPServer, SetupHttpHandler(deps))
}

// SetupGrpcServer initializes the gRPC server, which serves the standard health service.
func SetupGrpcServer(deps *Dependencies, reflectionEnabled bool) *grpc.Server {
	return server.NewGRPCServer(reflectionEnabled, server.HealthRegistration(deps.Health))
}
