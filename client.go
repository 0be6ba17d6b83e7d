package jecnasupl

import (
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"github.com/patrickmn/go-cache"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"

	"github.com/Stevekk11/JecnaSupl/types"
)

var (
	ErrInvalidEndpoint    = eris.New("endpoint does not look like a jecnarozvrh url")
	ErrInvalidClassSymbol = eris.New("class symbol must be at least 2 characters")
)

// Client fetches the substitution bulletin for one class. All decoding
// lives in the types package; the client only does the HTTP round trip,
// retries and caching.
type Client struct {
	Endpoint    string
	ClassSymbol string

	httpClient *resty.Client
	cache      *cache.Cache
}

// NewClient validates the collaborator contract: the endpoint must
// contain "jecnarozvrh" and the class symbol must be non-blank with at
// least 2 characters.
func NewClient(endpoint string, classSymbol string) (*Client, error) {
	return newClient(endpoint, classSymbol, 5*time.Minute)
}

func newClient(endpoint string, classSymbol string, cacheTTL time.Duration) (*Client, error) {
	if !strings.Contains(endpoint, "jecnarozvrh") {
		return nil, ErrInvalidEndpoint
	}
	if len(strings.TrimSpace(classSymbol)) < 2 {
		return nil, ErrInvalidClassSymbol
	}
	return &Client{
		Endpoint:    endpoint,
		ClassSymbol: classSymbol,
		httpClient:  resty.New(),
		cache:       cache.New(cacheTTL, 2*cacheTTL),
	}, nil
}

// FetchSchedule downloads and parses the bulletin. Parsed schedules are
// cached per class for the configured TTL, so frequent callers don't
// hammer the school server.
func (c *Client) FetchSchedule() (types.ScheduleWithAbsences, error) {
	if cached, ok := c.cache.Get(c.ClassSymbol); ok {
		return cached.(types.ScheduleWithAbsences), nil
	}

	body, err := c.FetchRaw()
	if err != nil {
		return types.ScheduleWithAbsences{}, err
	}

	schedule, err := types.ParseSchedule(body)
	if err != nil {
		log.Error().Err(err).Timestamp().
			Str("class", c.ClassSymbol).
			Msg("error parsing substitution bulletin")
		return types.ScheduleWithAbsences{}, eris.Wrap(err, "parsing substitution bulletin")
	}

	c.cache.Set(c.ClassSymbol, schedule, cache.DefaultExpiration)
	return schedule, nil
}

// FetchRaw downloads the bulletin body without parsing it.
func (c *Client) FetchRaw() (string, error) {
	var resp *resty.Response

	err := backoff.Retry(func() error {
		var err error
		resp, err = c.httpClient.R().SetQueryParam(
			"class", c.ClassSymbol,
		).Get(c.Endpoint)

		if err != nil {
			return err
		}
		if resp.IsError() {
			return eris.Errorf("status code non 200, body: %s", resp.String())
		}
		return nil
	}, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 4))

	if err != nil {
		log.Error().Err(err).Timestamp().
			Str("endpoint", c.Endpoint).
			Msg("error fetching substitution bulletin")
		return "", eris.Wrap(err, "fetching substitution bulletin")
	}

	return resp.String(), nil
}

// InvalidateCache drops the cached schedule so the next fetch hits the
// server again.
func (c *Client) InvalidateCache() {
	c.cache.Delete(c.ClassSymbol)
}
