package analytics

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/opsvix-api/config"
)

// ReadOnlyScope is the OAuth scope needed to run reports
const ReadOnlyScope = "https://www.googleapis.com/auth/analytics.readonly"

// ErrNotConfigured means the property id or service account credentials
// are missing or unusable. It is distinct from a failed query.
var ErrNotConfigured = errors.New("GA4 Analytics is not configured")

// Provider hands out the process-wide GA4 client. The client is built on
// first use and the outcome, success or failure, is kept for the lifetime
// of the process.
type Provider struct {
	once   sync.Once
	build  func() (*Client, error)
	client *Client
	err    error
}

// NewProvider creates a provider that builds its client from cfg on first use
func NewProvider(cfg config.AnalyticsConfig, logger hclog.Logger) *Provider {
	logger = logger.Named("analytics")
	return &Provider{
		build: func() (*Client, error) {
			client, err := newClientFromConfig(cfg)
			if err != nil {
				logger.Warn("analytics disabled", "error", err)
				return nil, err
			}
			logger.Info("analytics client initialized", "property", cfg.PropertyID)
			return client, nil
		},
	}
}

// NewProviderFromClient wraps an existing client
func NewProviderFromClient(client *Client) *Provider {
	return &Provider{
		build: func() (*Client, error) { return client, nil },
	}
}

// Client returns the shared client, or an error wrapping ErrNotConfigured
func (p *Provider) Client() (*Client, error) {
	p.once.Do(func() {
		p.client, p.err = p.build()
		if p.err != nil && !errors.Is(p.err, ErrNotConfigured) {
			p.err = fmt.Errorf("%w: %w", ErrNotConfigured, p.err)
		}
	})
	return p.client, p.err
}

func newClientFromConfig(cfg config.AnalyticsConfig) (*Client, error) {
	if cfg.PropertyID == "" {
		return nil, fmt.Errorf("%w: GA4_PROPERTY_ID is not set", ErrNotConfigured)
	}

	data, err := os.ReadFile(cfg.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read credentials file: %v", ErrNotConfigured, err)
	}

	// token refreshes outlive any single request
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, cleanhttp.DefaultPooledClient())

	creds, err := google.CredentialsFromJSON(ctx, data, ReadOnlyScope)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid credentials: %v", ErrNotConfigured, err)
	}

	client, err := NewClient(ctx, oauth2.NewClient(ctx, creds.TokenSource), cfg.APIURL, cfg.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotConfigured, err)
	}
	return client, nil
}
