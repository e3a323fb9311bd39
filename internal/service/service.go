// Package service provides the shop and roster use cases served over HTTP.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/abgdnv/musicshop/internal/catalog"
	shoperrors "github.com/abgdnv/musicshop/internal/errors"
	"github.com/abgdnv/musicshop/internal/shop"
	"github.com/abgdnv/musicshop/internal/store"
	"github.com/abgdnv/musicshop/pkg/messaging"
	"github.com/abgdnv/musicshop/pkg/messaging/events"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
)

// ShopService defines the catalog, cart and checkout operations.
type ShopService interface {
	// ListProducts returns the catalog items matching q in catalog order.
	// Returns ErrInvalidFilter for an unknown kind or genre.
	ListProducts(ctx context.Context, q ProductQuery) ([]ProductDto, error)

	// FindProduct returns a single catalog item.
	// Returns ErrProductNotFound if the catalog has no item with the given ID.
	FindProduct(ctx context.Context, id string) (*ProductDto, error)

	// OpenSession creates a customer with an empty cart.
	OpenSession(ctx context.Context, dto CustomerCreateDto) (*CustomerDto, error)

	// FindCustomer returns the customer with its cart and purchase history.
	// Returns ErrCustomerNotFound for an unknown session.
	FindCustomer(ctx context.Context, id uuid.UUID) (*CustomerDto, error)

	FindCart(ctx context.Context, customerID uuid.UUID) (*CartDto, error)

	// AddToCart adds the requested quantity of a catalog item to the cart.
	// Either every copy is added or the cart is left unchanged.
	AddToCart(ctx context.Context, customerID uuid.UUID, item AddItemDto) (*CartDto, error)

	// RemoveFromCart removes one copy of a product from the cart.
	// Returns ErrItemNotFound if the cart does not hold it.
	RemoveFromCart(ctx context.Context, customerID uuid.UUID, productID string) (*CartDto, error)

	ClearCart(ctx context.Context, customerID uuid.UUID) (*CartDto, error)

	// Checkout moves the cart into the purchase history and records one sale.
	Checkout(ctx context.Context, customerID uuid.UUID) (*SaleDto, error)

	// ReturnItem removes one purchased copy of a product, freeing a purchase slot.
	// Returns ErrItemNotFound if the customer never bought it.
	ReturnItem(ctx context.Context, customerID uuid.UUID, productID string) (*CustomerDto, error)

	FindPurchases(ctx context.Context, customerID uuid.UUID) ([]ProductDto, error)

	// FindSales returns a page of the customer's recorded sales, oldest first.
	// It reads the sale ledger only, so sales outlive the session that made them.
	FindSales(ctx context.Context, customerID uuid.UUID, offset, limit int32) ([]SaleDto, error)

	// FindSale returns a recorded sale.
	// Returns ErrSaleNotFound if no sale exists with the given ID.
	FindSale(ctx context.Context, id uuid.UUID) (*SaleDto, error)
}

// session guards one customer. The domain types are not safe for concurrent use,
// so every operation on the customer holds mu.
type session struct {
	mu       sync.Mutex
	customer *shop.Customer
}

// Service implements ShopService.
type Service struct {
	catalog   *catalog.Catalog
	sales     store.SaleStore
	publisher messaging.Publisher
	logger    *slog.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*session

	newID func() uuid.UUID
	now   func() time.Time

	salesCounter    metric.Int64Counter
	rejectedCounter metric.Int64Counter
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces the time source used to stamp sales.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithIDGenerator replaces the generator of customer and sale IDs.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(s *Service) {
		s.newID = newID
	}
}

// NewService creates a new instance of ShopService over the given catalog and sale ledger.
func NewService(cat *catalog.Catalog, sales store.SaleStore, publisher messaging.Publisher, logger *slog.Logger, opts ...Option) *Service {
	meter := otel.Meter("shop-service")
	salesCounter, err := meter.Int64Counter("shop.sales.recorded", metric.WithDescription("Total number of recorded sales"))
	if err != nil {
		panic(fmt.Sprintf("failed to create shop.sales.recorded counter: %v", err))
	}
	rejectedCounter, err := meter.Int64Counter("shop.checkout.rejected", metric.WithDescription("Total number of rejected checkouts"))
	if err != nil {
		panic(fmt.Sprintf("failed to create shop.checkout.rejected counter: %v", err))
	}
	s := &Service{
		catalog:         cat,
		sales:           sales,
		publisher:       publisher,
		logger:          logger.With("component", "service"),
		sessions:        make(map[uuid.UUID]*session),
		newID:           uuid.New,
		now:             time.Now,
		salesCounter:    salesCounter,
		rejectedCounter: rejectedCounter,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) ListProducts(_ context.Context, q ProductQuery) ([]ProductDto, error) {
	query := catalog.Query{Artist: q.Artist}
	if q.Kind != "" {
		kind, err := shop.ParseKind(q.Kind)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shoperrors.ErrInvalidFilter, err)
		}
		query.Kind = kind
	}
	if q.Genre != "" {
		genre, err := shop.ParseGenre(q.Genre)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shoperrors.ErrInvalidFilter, err)
		}
		query.Genre = genre
	}
	return toProductDtos(s.catalog.Filter(query)), nil
}

func (s *Service) FindProduct(_ context.Context, id string) (*ProductDto, error) {
	p, err := s.product(id)
	if err != nil {
		return nil, err
	}
	dto := toProductDto(p)
	return &dto, nil
}

func (s *Service) OpenSession(ctx context.Context, dto CustomerCreateDto) (*CustomerDto, error) {
	id := s.newID()
	sess := &session{customer: shop.NewCustomer(id.String(), dto.Name)}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Session opened", "customer_id", id)
	return toCustomerDto(id, sess.customer), nil
}

func (s *Service) FindCustomer(_ context.Context, id uuid.UUID) (*CustomerDto, error) {
	var dto *CustomerDto
	err := s.withCustomer(id, func(c *shop.Customer) error {
		dto = toCustomerDto(id, c)
		return nil
	})
	return dto, err
}

func (s *Service) FindCart(_ context.Context, customerID uuid.UUID) (*CartDto, error) {
	return s.cartOperation(customerID, func(*shop.Cart) error { return nil })
}

func (s *Service) AddToCart(ctx context.Context, customerID uuid.UUID, item AddItemDto) (*CartDto, error) {
	p, err := s.product(item.ProductID)
	if err != nil {
		return nil, err
	}
	qty := item.Quantity
	if qty == 0 {
		qty = 1
	}
	return s.cartOperation(customerID, func(cart *shop.Cart) error {
		if err := cart.AddItems(p, qty); err != nil {
			s.logger.WarnContext(ctx, "Item not added to cart", "product_id", p.ID, "quantity", qty, "error", err)
			return err
		}
		return nil
	})
}

func (s *Service) RemoveFromCart(_ context.Context, customerID uuid.UUID, productID string) (*CartDto, error) {
	p, err := s.product(productID)
	if err != nil {
		return nil, err
	}
	return s.cartOperation(customerID, func(cart *shop.Cart) error {
		if !cart.RemoveItem(p) {
			return fmt.Errorf("product %s is not in the cart: %w", productID, shoperrors.ErrItemNotFound)
		}
		return nil
	})
}

func (s *Service) ClearCart(_ context.Context, customerID uuid.UUID) (*CartDto, error) {
	return s.cartOperation(customerID, func(cart *shop.Cart) error {
		cart.Clear()
		return nil
	})
}

// Checkout runs the domain checkout under the customer lock and records the sale.
// If the sale cannot be stored the transfer is undone and ErrTransactionFailed is returned.
func (s *Service) Checkout(ctx context.Context, customerID uuid.UUID) (*SaleDto, error) {
	var sale shop.Sale
	err := s.withCustomer(customerID, func(c *shop.Customer) error {
		var err error
		sale, err = c.Checkout(s.newID().String(), s.now())
		if err != nil {
			s.rejectedCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", rejectReason(err))))
			s.logger.WarnContext(ctx, "Checkout rejected", "error", err)
			return err
		}
		if err := s.sales.Save(ctx, sale); err != nil {
			undoCheckout(c, sale)
			s.logger.ErrorContext(ctx, "Failed to record sale, checkout undone", "sale_id", sale.ID(), "error", err)
			return fmt.Errorf("%w: %w", shoperrors.ErrTransactionFailed, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.salesCounter.Add(ctx, 1)
	s.logger.InfoContext(ctx, "Sale recorded", "sale_id", sale.ID(), "items", sale.Len(), "total", sale.Total().StringFixed(2))
	s.publishSale(ctx, customerID, sale)

	return toSaleDto(sale)
}

func (s *Service) ReturnItem(ctx context.Context, customerID uuid.UUID, productID string) (*CustomerDto, error) {
	p, err := s.product(productID)
	if err != nil {
		return nil, err
	}
	var dto *CustomerDto
	err = s.withCustomer(customerID, func(c *shop.Customer) error {
		if !c.ReturnItem(p) {
			return fmt.Errorf("product %s was not purchased: %w", productID, shoperrors.ErrItemNotFound)
		}
		dto = toCustomerDto(customerID, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Item returned", "product_id", productID)
	return dto, nil
}

func (s *Service) FindPurchases(_ context.Context, customerID uuid.UUID) ([]ProductDto, error) {
	var list []ProductDto
	err := s.withCustomer(customerID, func(c *shop.Customer) error {
		list = toProductDtos(c.Purchases())
		return nil
	})
	return list, err
}

func (s *Service) FindSales(ctx context.Context, customerID uuid.UUID, offset, limit int32) ([]SaleDto, error) {
	sales, err := s.sales.FindByCustomer(ctx, customerID, offset, limit)
	if err != nil {
		return nil, err
	}
	list := make([]SaleDto, 0, len(sales))
	for _, sale := range sales {
		dto, err := toSaleDto(sale)
		if err != nil {
			return nil, err
		}
		list = append(list, *dto)
	}
	return list, nil
}

func (s *Service) FindSale(ctx context.Context, id uuid.UUID) (*SaleDto, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSaleDto(sale)
}

// publishSale emits a SaleRecordedEvent. A failure is logged and does not affect the sale.
func (s *Service) publishSale(ctx context.Context, customerID uuid.UUID, sale shop.Sale) {
	saleID, _ := uuid.Parse(sale.ID())
	items := make([]events.SaleItem, 0, sale.Len())
	for _, p := range sale.Items() {
		items = append(items, events.SaleItem{
			ProductID: p.ID,
			Kind:      string(p.Kind),
			Name:      p.Name,
			Artist:    p.Artist,
			Price:     p.Price,
		})
	}
	carrier := make(propagation.MapCarrier)
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	event := events.SaleRecordedEvent{
		Carrier:      carrier,
		SaleID:       saleID,
		CustomerID:   customerID,
		CustomerName: sale.Customer().Name,
		Items:        items,
		Total:        sale.Total(),
		CreatedAt:    sale.Timestamp(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish SaleRecordedEvent", "sale_id", sale.ID(), "error", err)
	}
}

func (s *Service) product(id string) (shop.Product, error) {
	p, ok := s.catalog.ByID(id)
	if !ok {
		return shop.Product{}, fmt.Errorf("product %s: %w", id, shoperrors.ErrProductNotFound)
	}
	return p, nil
}

func (s *Service) session(id uuid.UUID) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("customer %s: %w", id, shoperrors.ErrCustomerNotFound)
	}
	return sess, nil
}

// withCustomer runs fn while holding the customer's lock.
func (s *Service) withCustomer(id uuid.UUID, fn func(c *shop.Customer) error) error {
	sess, err := s.session(id)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess.customer)
}

// cartOperation applies fn to the customer's cart and returns the resulting cart.
func (s *Service) cartOperation(customerID uuid.UUID, fn func(cart *shop.Cart) error) (*CartDto, error) {
	var dto CartDto
	err := s.withCustomer(customerID, func(c *shop.Customer) error {
		if err := fn(c.Cart()); err != nil {
			return err
		}
		dto = toCartDto(c.Cart())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

// undoCheckout returns the sold items to the cart and removes them from the purchase history.
func undoCheckout(c *shop.Customer, sale shop.Sale) {
	for _, p := range sale.Items() {
		c.ReturnItem(p)
		_ = c.Cart().AddItem(p)
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, shop.ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, shop.ErrPurchaseLimitExceeded):
		return "purchase_limit"
	default:
		return "other"
	}
}
