// Package e2e runs the shop against a PostgreSQL container.
// The real application handler is served by an httptest.Server and the sale
// ledger is truncated before every test.
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/abgdnv/musicshop/internal/app"
	"github.com/abgdnv/musicshop/internal/catalog"
	"github.com/abgdnv/musicshop/internal/config"
	"github.com/abgdnv/musicshop/internal/roster"
	"github.com/abgdnv/musicshop/internal/service"
	"github.com/abgdnv/musicshop/pkg/bootstrap"
	"github.com/abgdnv/musicshop/pkg/messaging"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// skipE2ETests is the environment variable that can be set to skip E2E tests.
const skipE2ETests = "SHOP_SKIP_INTEGRATION_TESTS"

const apiURL = "/api/v1"

// ShopE2ESuite is a test suite for end-to-end tests of the shop.
type ShopE2ESuite struct {
	suite.Suite
	pgContainer *postgres.PostgresContainer
	dbPool      *pgxpool.Pool
	catalog     *catalog.Catalog
	roster      *roster.Roster
	server      *httptest.Server
	httpClient  *http.Client
	logger      *slog.Logger
	ctx         context.Context
}

func (s *ShopE2ESuite) SetupSuite() {
	s.ctx = context.Background()
	var err error
	s.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	// 1. Start a PostgreSQL container and wait until it accepts connections.
	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:17.5-alpine",
		postgres.WithDatabase("shop_db"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort("5432/tcp"),
		),
	)
	require.NoError(s.T(), err, "Failed to run PostgreSQL container")

	connStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "Failed to get connection string from container")

	// 2. Connect and apply migrations.
	s.dbPool, err = bootstrap.NewDbPool(s.ctx, connStr, 30*time.Second)
	require.NoError(s.T(), err, "Failed to connect to PostgreSQL")
	wd, _ := os.Getwd()
	err = bootstrap.Migrate("file://"+filepath.Join(wd, "..", "..", "..", "migrations"), connStr)
	require.NoError(s.T(), err, "Failed to apply migrations")

	// 3. Load the shipped data and start the application.
	s.catalog, s.roster, err = app.LoadData(config.DataConfig{
		Catalog: filepath.Join(wd, "..", "..", "..", "configs", "catalog.yaml"),
		Roster:  filepath.Join(wd, "..", "..", "..", "configs", "roster.yaml"),
	})
	require.NoError(s.T(), err, "Failed to load shop data")

	s.server = httptest.NewServer(s.newHandler())
	s.httpClient = s.server.Client()
	s.logger.Info("E2E test server started", "url", s.server.URL)
}

func (s *ShopE2ESuite) newHandler() http.Handler {
	deps := app.SetupDependencies(s.catalog, s.roster, app.NewSaleStore(s.dbPool), messaging.NopPublisher{}, nil, "", s.logger)
	return app.SetupHttpHandler(deps)
}

func (s *ShopE2ESuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(s.ctx); err != nil {
			s.logger.Warn("Failed to terminate E2E PostgreSQL container", "error", err)
		}
	}
}

// SetupTest empties the sale ledger.
func (s *ShopE2ESuite) SetupTest() {
	_, err := s.dbPool.Exec(s.ctx, "TRUNCATE TABLE sales CASCADE")
	require.NoError(s.T(), err, "Failed to truncate sales table")
}

func TestShopE2E(t *testing.T) {
	if os.Getenv(skipE2ETests) == "1" {
		t.Skip("Skipping integration tests based on " + skipE2ETests + " env var")
	}
	suite.Run(t, new(ShopE2ESuite))
}

// do sends a JSON request and decodes the response into out when it is not nil.
func (s *ShopE2ESuite) do(baseURL, method, path string, payload any, out any) int {
	s.T().Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(s.T(), err)
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(s.ctx, method, baseURL+apiURL+path, body)
	require.NoError(s.T(), err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer func() { _ = resp.Body.Close() }()
	if out != nil && resp.StatusCode < http.StatusBadRequest {
		require.NoError(s.T(), json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (s *ShopE2ESuite) openSession(name string) service.CustomerDto {
	s.T().Helper()
	var customer service.CustomerDto
	status := s.do(s.server.URL, http.MethodPost, "/customers", service.CustomerCreateDto{Name: name}, &customer)
	require.Equal(s.T(), http.StatusCreated, status)
	return customer
}

func (s *ShopE2ESuite) addToCart(customer service.CustomerDto, productID string) int {
	s.T().Helper()
	return s.do(s.server.URL, http.MethodPost, "/customers/"+customer.ID.String()+"/cart/items",
		service.AddItemDto{ProductID: productID, Quantity: 1}, nil)
}

func (s *ShopE2ESuite) TestCheckout_PersistsSale() {
	// given
	customer := s.openSession("Kim Deal")
	s.Require().Equal(http.StatusOK, s.addToCart(customer, "queen-greatest-hits"))
	s.Require().Equal(http.StatusOK, s.addToCart(customer, "michael-jackson-thriller"))

	// when
	var sale service.SaleDto
	status := s.do(s.server.URL, http.MethodPost, "/customers/"+customer.ID.String()+"/checkout", nil, &sale)

	// then
	s.Require().Equal(http.StatusCreated, status)
	s.Equal("54.98", sale.Total.StringFixed(2))
	s.Equal(2, sale.Count)

	var count int
	err := s.dbPool.QueryRow(s.ctx, "SELECT count(*) FROM sale_items WHERE sale_id = $1", sale.ID).Scan(&count)
	s.Require().NoError(err)
	s.Equal(2, count)

	// a fresh instance on the same database still finds the sale
	restarted := httptest.NewServer(s.newHandler())
	defer restarted.Close()
	var found service.SaleDto
	status = s.do(restarted.URL, http.MethodGet, "/sales/"+sale.ID.String(), nil, &found)
	s.Require().Equal(http.StatusOK, status)
	s.Equal(sale.ID, found.ID)
	s.Require().Len(found.Items, 2)
	s.Equal("queen-greatest-hits", found.Items[0].ID)
	s.True(sale.Total.Equal(found.Total))
	s.Equal("Kim Deal", found.CustomerName)

	var history []service.SaleDto
	status = s.do(restarted.URL, http.MethodGet, "/customers/"+customer.ID.String()+"/sales", nil, &history)
	s.Require().Equal(http.StatusOK, status)
	s.Require().Len(history, 1)
	s.Equal(sale.ID, history[0].ID)
}

func (s *ShopE2ESuite) TestCheckout_RejectedSaleIsNotStored() {
	// given
	customer := s.openSession("Thurston Moore")
	for _, id := range []string{"queen-greatest-hits", "michael-jackson-thriller", "joni-mitchell-blue", "nirvana-in-utero"} {
		s.Require().Equal(http.StatusOK, s.addToCart(customer, id))
	}

	// when
	status := s.do(s.server.URL, http.MethodPost, "/customers/"+customer.ID.String()+"/checkout", nil, nil)

	// then
	s.Equal(http.StatusConflict, status)
	var count int
	err := s.dbPool.QueryRow(s.ctx, "SELECT count(*) FROM sales").Scan(&count)
	s.Require().NoError(err)
	s.Zero(count)
}

func (s *ShopE2ESuite) TestFindSales_Paging() {
	// given
	customer := s.openSession("Lee Ranaldo")
	for _, id := range []string{"queen-greatest-hits", "michael-jackson-thriller", "joni-mitchell-blue"} {
		s.Require().Equal(http.StatusOK, s.addToCart(customer, id))
		s.Require().Equal(http.StatusCreated, s.do(s.server.URL, http.MethodPost, "/customers/"+customer.ID.String()+"/checkout", nil, nil))
	}

	// when
	var page []service.SaleDto
	status := s.do(s.server.URL, http.MethodGet, "/customers/"+customer.ID.String()+"/sales?offset=1&limit=1", nil, &page)

	// then
	s.Require().Equal(http.StatusOK, status)
	s.Require().Len(page, 1)
	s.Equal("michael-jackson-thriller", page[0].Items[0].ID)
}
