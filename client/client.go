// Package client adapts net/http responses and Yelp credentials to apierr.
package client

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/bodrovis/yelpex/apierr"
	"go.uber.org/zap"
)

// Client holds the credentials of one Yelp application and the validator
// its responses go through. Credentials can be set once.
type Client struct {
	mu         sync.RWMutex
	keys       Keys
	configured bool

	validator *apierr.Validator
	log       *zap.Logger
}

type Option func(*Client) error

// WithKeys configures the client at construction time.
func WithKeys(k Keys) Option {
	return func(c *Client) error {
		return c.Configure(k)
	}
}

// WithValidator replaces the shared default validator.
func WithValidator(v *apierr.Validator) Option {
	return func(c *Client) error {
		if v == nil {
			return errors.New("validator must not be nil")
		}
		c.validator = v
		return nil
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) error {
		if l == nil {
			return errors.New("logger must not be nil")
		}
		c.log = l
		return nil
	}
}

func NewClient(opts ...Option) (*Client, error) {
	c := &Client{log: zap.NewNop()}
	for _, o := range opts {
		if o == nil {
			continue
		}
		if err := o(c); err != nil {
			return nil, fmt.Errorf("new client: %w", err)
		}
	}
	if c.validator == nil {
		c.validator = apierr.Default()
	}
	return c, nil
}

// Configure stores k. It fails with MissingAPIKeys for incomplete keys and
// with AlreadyConfigured when the client already has keys.
func (c *Client) Configure(k Keys) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.configured {
		return apierr.New(apierr.KindAlreadyConfigured, "")
	}
	if err := k.Validate(); err != nil {
		return err
	}
	c.keys = k
	c.configured = true
	c.log.Debug("yelp client configured")
	return nil
}

func (c *Client) Configured() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.configured
}

func (c *Client) Keys() Keys {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.keys
}

// Check runs resp through the client's validator.
func (c *Client) Check(resp *http.Response) error {
	raw, err := FromHTTP(resp)
	if err != nil {
		return err
	}
	return c.validator.Validate(raw)
}
