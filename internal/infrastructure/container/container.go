// Package container provides dependency injection for the application.
package container

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/reglet-dev/stitch/internal/application/ports"
	"github.com/reglet-dev/stitch/internal/application/services"
	"github.com/reglet-dev/stitch/internal/domain/entities"
	domainservices "github.com/reglet-dev/stitch/internal/domain/services"
	"github.com/reglet-dev/stitch/internal/domain/values"
	"github.com/reglet-dev/stitch/internal/infrastructure/cart"
	"github.com/reglet-dev/stitch/internal/infrastructure/config"
	"github.com/reglet-dev/stitch/internal/infrastructure/events"
	"github.com/reglet-dev/stitch/internal/infrastructure/filesystem"
	"github.com/reglet-dev/stitch/internal/infrastructure/money"
	"github.com/reglet-dev/stitch/internal/infrastructure/persistence/memory"
	"github.com/reglet-dev/stitch/internal/infrastructure/system"
	"github.com/reglet-dev/stitch/internal/infrastructure/validation"
)

// Container holds all application dependencies.
type Container struct {
	systemCfg *system.Config
	loaded    *config.LoadedCatalog
	mapper    *domainservices.PreviewMapper
	money     *money.Formatter
	bus       *events.Bus
	storage   ports.SessionStorage
	snapshots *services.SnapshotStore
	cart      ports.CartService
	dryRun    *memory.Cart
	logger    *slog.Logger
	session   values.SessionID
}

// Options configure the container.
type Options struct {
	Logger           *slog.Logger
	SystemConfigPath string
	CatalogPath      string
	// Session selects a persistent session. Empty means a throwaway in-memory session.
	Session string
	// CartURL overrides cart.base_url from the system config.
	CartURL string
	// DryRun replaces the remote cart with an in-memory one.
	DryRun bool
}

// New creates a new dependency injection container.
func New(opts Options) (*Container, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	configPath := opts.SystemConfigPath
	if configPath == "" {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			configPath = filepath.Join(homeDir, ".stitch", "config.yaml")
		}
	}
	systemCfg, err := system.NewConfigLoader().Load(configPath)
	if err != nil {
		opts.Logger.Debug("failed to load system config, using defaults", "error", err)
		systemCfg = system.DefaultConfig()
	}

	validator, err := validation.NewSchemaValidator()
	if err != nil {
		return nil, err
	}

	loaded, err := config.NewCatalogLoader(validator).LoadCatalog(opts.CatalogPath)
	if err != nil {
		return nil, err
	}

	formatter, err := money.NewFormatter(systemCfg.Pricing.Currency, systemCfg.Pricing.Locale)
	if err != nil {
		return nil, err
	}

	session, storage, err := newSessionStorage(opts.Session, systemCfg.Storage)
	if err != nil {
		return nil, err
	}

	c := &Container{
		systemCfg: systemCfg,
		loaded:    loaded,
		mapper:    domainservices.NewPreviewMapper(systemCfg.Preview.Mapping),
		money:     formatter,
		bus:       events.NewBus(opts.Logger),
		storage:   storage,
		snapshots: services.NewSnapshotStore(storage, validator, opts.Logger),
		logger:    opts.Logger,
		session:   session,
	}

	if err := c.wireCart(opts); err != nil {
		return nil, err
	}

	opts.Logger.Debug("container ready",
		"catalog", loaded.Catalog.Metadata().Name,
		"session", session.String(),
		"dry_run", c.dryRun != nil)
	return c, nil
}

func newSessionStorage(raw string, cfg system.StorageConfig) (values.SessionID, ports.SessionStorage, error) {
	if raw == "" {
		session := values.NewSessionID()
		return session, memory.NewSessionStorage(session, cfg.QuotaBytes), nil
	}
	session, err := values.ParseSessionID(raw)
	if err != nil {
		return values.SessionID{}, nil, fmt.Errorf("invalid session %q: %w", raw, err)
	}
	dir := cfg.Dir
	if dir == "" {
		dir = filesystem.DefaultDir()
	}
	return session, filesystem.NewSessionStorage(dir, session, cfg.QuotaBytes), nil
}

func (c *Container) wireCart(opts Options) error {
	baseURL := opts.CartURL
	if baseURL == "" {
		baseURL = c.systemCfg.Cart.BaseURL
	}
	if opts.DryRun || baseURL == "" {
		c.dryRun = memory.NewCart(uuid.NewString())
		c.cart = c.dryRun
		return nil
	}

	timeout, err := c.systemCfg.Cart.CartTimeout()
	if err != nil {
		return err
	}
	client, err := cart.NewClient(baseURL, cart.WithTimeout(timeout), cart.WithLogger(c.logger))
	if err != nil {
		return err
	}
	c.cart = client
	return nil
}

// BasePrice returns the personalization surcharge. A catalog-level base_price
// wins over the system config.
func (c *Container) BasePrice() values.Money {
	if c.loaded.BasePrice != nil {
		return *c.loaded.BasePrice
	}
	return c.systemCfg.Pricing.BasePrice
}

// Configurator bundles the services of one mounted configurator instance.
type Configurator struct {
	Store      *services.ConfigurationStore
	Composer   *services.CartComposer
	Purchase   *services.PurchaseFlow
	Disclosure *services.DisclosureSync
}

// ConfiguratorOptions are the UI collaborators of an instance.
type ConfiguratorOptions struct {
	Quantity ports.QuantitySource
	Preview  ports.PreviewRenderer
	Submit   ports.SubmitControl
	// OnDisclosure is called when the disclosure panel opens or closes.
	OnDisclosure func(open bool)
	Subject      entities.Subject
	Mode         values.Mode
}

// NewConfigurator wires a store and its cart services for one instance.
func (c *Container) NewConfigurator(opts ConfiguratorOptions) (*Configurator, error) {
	store, err := services.NewConfigurationStore(services.StoreOptions{
		Catalog:   c.loaded.Catalog,
		Mapper:    c.mapper,
		Snapshots: c.snapshots,
		Events:    c.bus,
		Preview:   opts.Preview,
		Submit:    opts.Submit,
		Logger:    c.logger,
		Instance: entities.Instance{
			Subject:   opts.Subject,
			Mode:      opts.Mode,
			BasePrice: c.BasePrice(),
		},
	})
	if err != nil {
		return nil, err
	}

	composer := services.NewCartComposer(store, c.cart, opts.Quantity, c.bus, opts.Submit, c.logger)
	disclosure := services.NewDisclosureSync(store, opts.OnDisclosure, c.logger)
	disclosure.Attach()

	return &Configurator{
		Store:      store,
		Composer:   composer,
		Purchase:   services.NewPurchaseFlow(composer, c.cart, opts.Quantity, c.bus, opts.Submit, c.logger),
		Disclosure: disclosure,
	}, nil
}

// Catalog returns the loaded catalog.
func (c *Container) Catalog() *entities.Catalog {
	return c.loaded.Catalog
}

// Money returns the display formatter for amounts.
func (c *Container) Money() *money.Formatter {
	return c.money
}

// Events returns the event bus.
func (c *Container) Events() *events.Bus {
	return c.bus
}

// Session returns the session the storage is keyed by.
func (c *Container) Session() values.SessionID {
	return c.session
}

// DryRunCart returns the in-memory cart, or nil when a remote cart is used.
func (c *Container) DryRunCart() *memory.Cart {
	return c.dryRun
}

// SystemConfig returns the system configuration.
func (c *Container) SystemConfig() *system.Config {
	return c.systemCfg
}

// Logger returns the configured logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}
