// Package loyalty is the client SDK for the CW food-ordering and
// loyalty platform: a multi-tenant in-memory cart plus the catalog,
// account and ordering surfaces of the customer API.
package loyalty

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/cwmarketing/loyalty-go/internal/account"
	"github.com/cwmarketing/loyalty-go/internal/cart"
	"github.com/cwmarketing/loyalty-go/internal/catalog"
	"github.com/cwmarketing/loyalty-go/internal/localstore"
	"github.com/cwmarketing/loyalty-go/internal/media"
	"github.com/cwmarketing/loyalty-go/internal/orders"
	"github.com/cwmarketing/loyalty-go/internal/transport"
	"github.com/cwmarketing/loyalty-go/pkg/cache"
	"github.com/cwmarketing/loyalty-go/pkg/config"
	"github.com/cwmarketing/loyalty-go/pkg/logger"
	"github.com/cwmarketing/loyalty-go/pkg/metrics"
	"github.com/cwmarketing/loyalty-go/pkg/models"
	"github.com/cwmarketing/loyalty-go/pkg/money"
)

// CartObserver receives cart change notifications. See Subscribe.
type CartObserver = cart.Observer

// NopCartObserver may be embedded to implement only part of
// CartObserver.
type NopCartObserver = cart.NopObserver

// Subscription is a cart observer registration handle.
type Subscription = cart.Subscription

// MenuFilter scopes category and product listings.
type MenuFilter = catalog.MenuFilter

// Client is an explicitly constructed SDK instance. Each Client owns
// its cart state, session store and transport; there is no package
// singleton.
type Client struct {
	cfg  *config.Config
	logg *logger.Logger

	api     *transport.Client
	cart    *cart.Store
	local   *localstore.Store
	cache   *cache.Client
	catalog *catalog.Service
	account *account.Service
	orders  *orders.Service
	media   *media.Service
}

// Option adjusts Client construction.
type Option func(*options)

type options struct {
	logg       *logger.Logger
	registerer metricsRegisterer
	noLocal    bool
}

type metricsRegisterer = metrics.Registerer

// WithLogger substitutes the default logger.
func WithLogger(logg *logger.Logger) Option {
	return func(o *options) { o.logg = logg }
}

// WithMetrics registers API metrics on the given registerer.
func WithMetrics(reg metricsRegisterer) Option {
	return func(o *options) { o.registerer = reg }
}

// WithoutLocalStore disables on-disk session persistence.
func WithoutLocalStore() Option {
	return func(o *options) { o.noLocal = true }
}

// New builds a Client from the given config. A previously persisted
// session token, when present, re-arms authentication immediately.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Client, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logg := o.logg
	if logg == nil {
		logg = logger.New(logger.Options{
			ServiceName: cfg.App.ServiceName,
			Level:       logger.ParseLevel(cfg.App.LogLevel),
			WarnStack:   cfg.App.LogWarnStack,
		})
	}

	api, err := transport.New(cfg.API, logg, metrics.NewAPIMetrics(o.registerer))
	if err != nil {
		return nil, err
	}

	cacheClient, err := cache.New(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}

	var local *localstore.Store
	if !o.noLocal {
		local, err = localstore.Open(cfg.LocalStore, logg)
		if err != nil {
			return nil, err
		}
	}

	c := &Client{
		cfg:   cfg,
		logg:  logg,
		api:   api,
		cart:  cart.NewStore(logg),
		local: local,
		cache: cacheClient,
	}
	c.catalog = catalog.New(api, logg)
	c.orders = orders.New(api, cfg.API, logg)
	c.media = media.New(api, cacheClient, logg)

	var session account.SessionStore
	if local != nil {
		session = local
	}
	c.account = account.New(api, session, logg)

	if local != nil {
		if token, err := local.Token(); err == nil {
			c.account.Resume(token)
		} else if !errors.Is(err, localstore.ErrNoSession) {
			logg.Warn(ctx, "stored session unavailable")
		}
	}
	return c, nil
}

// Close releases the local store and cache connections.
func (c *Client) Close() error {
	var first error
	if c.local != nil {
		if err := c.local.Close(); err != nil {
			first = err
		}
	}
	if err := c.cache.Close(); err != nil && first == nil {
		first = err
	}
	return first
}

// Cart surface.

// SetCartObserver installs the primary observer, notified before any
// subscribers.
func (c *Client) SetCartObserver(o CartObserver) { c.cart.SetPrimaryObserver(o) }

// Subscribe registers an additional cart observer. Cancel the returned
// subscription to stop notifications.
func (c *Client) Subscribe(o CartObserver) *Subscription { return c.cart.Subscribe(o) }

// Cart returns the lines of a concept's cart in insertion order.
func (c *Client) Cart(conceptID string) []models.Product { return c.cart.Lines(conceptID) }

// CartTotal returns the current total of a concept's cart.
func (c *Client) CartTotal(conceptID string) float32 { return c.cart.Total(conceptID) }

// CartTotalDisplay renders the cart total rounded for display, with an
// optional currency symbol.
func (c *Client) CartTotalDisplay(conceptID, currency string) string {
	return money.FormatWithCurrency(c.cart.Total(conceptID), currency)
}

// AddToCart puts amount units of the product with the chosen modifiers
// into its concept's cart, merging equal selections.
func (c *Client) AddToCart(product models.Product, modifiers []models.Modifier, amount float32) {
	c.cart.Add(product, modifiers, amount)
}

// RemoveFromCart takes amount units of the matching line out of the
// cart, deleting the line when the quantity is exhausted.
func (c *Client) RemoveFromCart(product models.Product, modifiers []models.Modifier, amount float32) {
	c.cart.Remove(product, modifiers, amount)
}

// RemoveEntirely deletes the matching line regardless of quantity.
func (c *Client) RemoveEntirely(product models.Product) { c.cart.RemoveEntire(product) }

// WipeCart empties a single concept's cart.
func (c *Client) WipeCart(conceptID string) { c.cart.Wipe(conceptID) }

// Catalog surface.

// GetConcepts fetches the storefront list, (re)initializes the cart
// partitions and refreshes the local concept cache.
func (c *Client) GetConcepts(ctx context.Context, page int64) ([]models.Concept, error) {
	concepts, err := c.catalog.Concepts(ctx, page)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(concepts))
	for _, concept := range concepts {
		ids = append(ids, concept.ID)
	}
	c.cart.InitConcepts(ids)

	if c.local != nil {
		if err := c.local.RefreshConcepts(concepts); err != nil {
			c.logg.Warn(ctx, "concept cache refresh failed")
		}
	}
	return concepts, nil
}

// CachedConcepts returns the locally cached concepts for offline start.
func (c *Client) CachedConcepts() ([]models.Concept, error) {
	if c.local == nil {
		return nil, nil
	}
	return c.local.Concepts()
}

func (c *Client) GetTerminals(ctx context.Context, page int64) ([]models.Terminal, error) {
	return c.catalog.Terminals(ctx, page)
}

func (c *Client) GetCategories(ctx context.Context, filter catalog.MenuFilter) ([]models.Category, error) {
	return c.catalog.Categories(ctx, filter)
}

func (c *Client) GetProducts(ctx context.Context, filter catalog.MenuFilter) ([]models.Product, error) {
	return c.catalog.Products(ctx, filter)
}

func (c *Client) GetFeatured(ctx context.Context, conceptID string, page int64) ([]models.Product, error) {
	return c.catalog.Featured(ctx, conceptID, page)
}

// GetMenu assembles the storefront menu, serving a cached copy when the
// shared cache holds one.
func (c *Client) GetMenu(ctx context.Context, filter catalog.MenuFilter) (*models.Menu, error) {
	key := c.cache.MenuKey(filter.ConceptID, filter.TerminalID)
	if data, err := c.cache.Get(ctx, key); err == nil {
		var menu models.Menu
		if err := json.Unmarshal(data, &menu); err == nil {
			return &menu, nil
		}
	}

	menu, err := c.catalog.Menu(ctx, filter)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(menu); err == nil {
		if err := c.cache.Set(ctx, key, data); err != nil {
			c.logg.Warn(ctx, "menu cache write failed")
		}
	}
	return menu, nil
}

func (c *Client) GetPaymentTypes(ctx context.Context, conceptID string) ([]models.PaymentType, error) {
	return c.catalog.PaymentTypes(ctx, conceptID)
}

func (c *Client) GetDeliveryTypes(ctx context.Context, conceptID string) ([]models.DeliveryType, error) {
	return c.catalog.DeliveryTypes(ctx, conceptID)
}

func (c *Client) GetStories(ctx context.Context, conceptID string, page int64) ([]models.Story, error) {
	return c.catalog.Stories(ctx, conceptID, page)
}

func (c *Client) GetContents(ctx context.Context, conceptID string, page int64) ([]models.Content, error) {
	return c.catalog.Contents(ctx, conceptID, page)
}

func (c *Client) GetNotifications(ctx context.Context, page int64) ([]models.Notification, error) {
	return c.catalog.Notifications(ctx, page)
}

// Account surface.

func (c *Client) RequestCode(ctx context.Context, phone string) (*models.CodeResponse, error) {
	return c.account.RequestCode(ctx, phone)
}

func (c *Client) Auth(ctx context.Context, phone, code string) (*models.AuthResponse, error) {
	return c.account.Auth(ctx, phone, code)
}

func (c *Client) Signup(ctx context.Context, req models.SignupRequest) (*models.SignupResponse, error) {
	return c.account.Signup(ctx, req)
}

func (c *Client) GetProfile(ctx context.Context) (*models.Profile, error) {
	return c.account.Profile(ctx)
}

// CachedProfile returns the locally stored profile snapshot.
func (c *Client) CachedProfile() (*models.Profile, error) {
	if c.local == nil {
		return nil, localstore.ErrNoSession
	}
	return c.local.Profile()
}

// SignOut drops the stored session and disarms the transport.
func (c *Client) SignOut() error {
	c.account.Resume("")
	if c.local == nil {
		return nil
	}
	return c.local.Reset()
}

func (c *Client) GetFavorites(ctx context.Context, conceptID string, page int64) ([]models.Product, error) {
	return c.account.Favorites(ctx, conceptID, page)
}

func (c *Client) AddFavorite(ctx context.Context, product models.Product) error {
	return c.account.AddFavorite(ctx, product)
}

func (c *Client) DeleteFavorite(ctx context.Context, product models.Product) error {
	return c.account.DeleteFavorite(ctx, product)
}

// CheckPromocode resolves a promocode against the concept's current
// cart lines.
func (c *Client) CheckPromocode(ctx context.Context, code, conceptID string) (*models.Promocode, error) {
	return c.account.CheckPromocode(ctx, code, conceptID, c.cart.Lines(conceptID))
}

// Address book (local).

func (c *Client) Addresses() ([]models.Address, error) {
	if c.local == nil {
		return nil, nil
	}
	return c.local.Addresses()
}

func (c *Client) SaveAddress(address models.Address) (models.Address, error) {
	if c.local == nil {
		return address, nil
	}
	return c.local.SaveAddress(address)
}

func (c *Client) DeleteAddress(id uuid.UUID) error {
	if c.local == nil {
		return nil
	}
	return c.local.DeleteAddress(id)
}

// Orders surface.

func (c *Client) GetOrders(ctx context.Context, page int64) ([]models.UserOrder, error) {
	return c.orders.History(ctx, page)
}

func (c *Client) GetOrderByID(ctx context.Context, id string) (*models.UserOrder, error) {
	return c.orders.ByID(ctx, id)
}

// SendOrder submits an order. When the order carries no products the
// concept's cart lines are used.
func (c *Client) SendOrder(ctx context.Context, order models.Order) (*models.OrderResponse, error) {
	if len(order.Products) == 0 {
		order.Products = c.cart.Lines(order.Concept.ID)
	}
	return c.orders.Send(ctx, order)
}

// Media surface.

func (c *Client) GetImage(ctx context.Context, image *models.Image) ([]byte, error) {
	return c.media.Image(ctx, image)
}
