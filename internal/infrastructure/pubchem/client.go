package pubchem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"VirtualScreening/internal/domain"
	"VirtualScreening/internal/ports"
)

const (
	DefaultBaseURL   = "https://pubchem.ncbi.nlm.nih.gov/rest/pug"
	DefaultUserAgent = "StudentPortfolioProject/1.0"
	DefaultTimeout   = 10 * time.Second

	requestedProperties = "MolecularWeight,IsomericSMILES"
)

// smilesFields is the lookup order for the structural encoding. The service
// has renamed these fields over time, so older names are kept as fallbacks.
var smilesFields = []string{"IsomericSMILES", "CanonicalSMILES", "SMILES"}

// ErrNoProperties is returned when the reply carries an empty property table.
var ErrNoProperties = errors.New("pubchem: no properties in reply")

// StatusError reports a non-200 reply.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("pubchem: HTTP %d for %s", e.StatusCode, e.URL)
}

// Options configures the client. Zero values fall back to the defaults above.
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client resolves compound names through the PUG REST property endpoint.
type Client struct {
	client    *http.Client
	baseURL   string
	userAgent string
	logger    *slog.Logger
}

var _ ports.PropertyFetcher = (*Client)(nil)

// NewClient wires an HTTP client; a nil client gets one with the configured timeout.
func NewClient(client *http.Client, opts Options, logger *slog.Logger) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	return &Client{
		client:    client,
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		userAgent: opts.UserAgent,
		logger:    logger,
	}
}

type propertyReply struct {
	PropertyTable struct {
		Properties []map[string]json.RawMessage `json:"Properties"`
	} `json:"PropertyTable"`
}

// Fetch performs a single GET for the compound. It never retries.
func (c *Client) Fetch(ctx context.Context, name string) (domain.Properties, error) {
	endpoint := c.propertyURL(name)
	c.debug("request properties", "compound", name, "url", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Properties{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.Properties{}, fmt.Errorf("request properties: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Properties{}, &StatusError{StatusCode: resp.StatusCode, URL: endpoint}
	}

	var reply propertyReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return domain.Properties{}, fmt.Errorf("decode properties: %w", err)
	}
	if len(reply.PropertyTable.Properties) == 0 {
		return domain.Properties{}, ErrNoProperties
	}

	return extract(reply.PropertyTable.Properties[0])
}

func (c *Client) propertyURL(name string) string {
	return fmt.Sprintf("%s/compound/name/%s/property/%s/JSON",
		c.baseURL, url.PathEscape(name), requestedProperties)
}

func extract(entry map[string]json.RawMessage) (domain.Properties, error) {
	var props domain.Properties

	for _, field := range smilesFields {
		raw, ok := entry[field]
		if !ok {
			continue
		}
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			return domain.Properties{}, fmt.Errorf("decode %s: %w", field, err)
		}
		if value = strings.TrimSpace(value); value != "" {
			props.SMILES = &value
			break
		}
	}

	if raw, ok := entry["MolecularWeight"]; ok {
		mw, err := parseWeight(raw)
		if err != nil {
			return domain.Properties{}, err
		}
		props.MolecularWeight = mw
	}

	return props, nil
}

// parseWeight accepts both a JSON number and a numeric string.
func parseWeight(raw json.RawMessage) (*float64, error) {
	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		return &number, nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return nil, fmt.Errorf("decode MolecularWeight: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	number, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return nil, fmt.Errorf("parse MolecularWeight %q: %w", text, err)
	}
	return &number, nil
}

func (c *Client) debug(msg string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
