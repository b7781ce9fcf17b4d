// Package eros assembles the Eros client SDK: one Client wires the session
// store, the authenticated transport and every domain service from a single
// configuration. Shells that need finer control can build the pieces from
// the subpackages directly.
package eros

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/eros-saude/eros-go/appointment"
	"github.com/eros-saude/eros-go/auth"
	"github.com/eros-saude/eros-go/booking"
	"github.com/eros-saude/eros-go/config"
	"github.com/eros-saude/eros-go/payment"
	"github.com/eros-saude/eros-go/provider"
	"github.com/eros-saude/eros-go/session"
	"github.com/eros-saude/eros-go/supportlink"
	"github.com/eros-saude/eros-go/transport"
	"github.com/eros-saude/eros-go/treatment"
	"github.com/eros-saude/eros-go/wellbeing"
)

// Client bundles the SDK's services over one session and transport.
type Client struct {
	cfg   *config.Config
	log   zerolog.Logger
	store session.Store
	api   *transport.Client

	Auth         *auth.Service
	Providers    *provider.Service
	Appointments *appointment.Service
	Payments     *payment.Service
	Treatments   *treatment.Service
	SupportLink  *supportlink.Service
	Wellbeing    *wellbeing.Journal
}

// Option configures the assembled Client.
type Option func(*options)

type options struct {
	store  session.Store
	logger *zerolog.Logger
	onAuth func()
}

// WithStore replaces the file-backed session store, e.g. with a MemStore.
func WithStore(s session.Store) Option {
	return func(o *options) { o.store = s }
}

// WithLogger replaces the default stderr logger.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.logger = &log }
}

// WithAuthFailureHook registers the callback fired after an authorization
// failure has cleared the session.
func WithAuthFailureHook(fn func()) Option {
	return func(o *options) { o.onAuth = fn }
}

// New builds a Client from cfg.
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	log := newLogger(cfg.LogLevel)
	if o.logger != nil {
		log = *o.logger
	}

	store := o.store
	if store == nil {
		fs, err := session.NewFileStore(cfg.StorageDir)
		if err != nil {
			return nil, fmt.Errorf("open session store: %w", err)
		}
		store = fs
	}

	tOpts := []transport.Option{
		transport.WithTimeout(cfg.RequestTimeout),
		transport.WithLogger(log),
	}
	if cfg.RateLimitRPS > 0 {
		tOpts = append(tOpts, transport.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}
	if o.onAuth != nil {
		tOpts = append(tOpts, transport.WithAuthFailureHook(o.onAuth))
	}
	api := transport.NewClient(cfg.APIBaseURL, store, tOpts...)

	journal, err := wellbeing.NewJournal(cfg.StorageDir, log)
	if err != nil {
		return nil, fmt.Errorf("open wellbeing journal: %w", err)
	}

	return &Client{
		cfg:   cfg,
		log:   log,
		store: store,
		api:   api,

		Auth:         auth.NewService(auth.NewGatewayHTTP(api), store, log),
		Providers:    provider.NewService(provider.NewGatewayHTTP(api), log),
		Appointments: appointment.NewService(appointment.NewGatewayHTTP(api), log),
		Payments:     payment.NewService(payment.NewGatewayHTTP(api), log),
		Treatments:   treatment.NewService(treatment.NewGatewayHTTP(api), log),
		SupportLink:  supportlink.NewService(supportlink.NewGatewayHTTP(api), log),
		Wellbeing:    journal,
	}, nil
}

// Store exposes the session store, e.g. for TokenExpired checks on startup.
func (c *Client) Store() session.Store { return c.store }

// NewBooking starts a booking workflow with the configured fee and
// processor delays.
func (c *Client) NewBooking() *booking.Workflow {
	return booking.New(c.Appointments, c.Payments,
		booking.WithAmount(c.cfg.ConsultationFee),
		booking.WithCardDelay(c.cfg.CardAuthDelay),
		booking.WithPixDelay(c.cfg.PixConfirmDelay),
		booking.WithLogger(c.log),
	)
}

// NewRedemption starts a support-network onboarding flow bound to this
// client's session store.
func (c *Client) NewRedemption() *supportlink.Redemption {
	return supportlink.NewRedemption(supportlink.NewGatewayHTTP(c.api), c.store, c.log)
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}
