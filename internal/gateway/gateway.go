package gateway

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/studiowebux/foodboard/internal/types"
	"golang.org/x/sync/singleflight"
)

const (
	foodsPath = "/foods"

	// maxErrorBody caps how much of an error response is kept
	maxErrorBody = 512
)

// Gateway is the catalog backend
type Gateway interface {
	List(ctx context.Context) ([]types.FoodRecord, error)
	Create(ctx context.Context, input types.FoodInput) (types.FoodRecord, error)
	Update(ctx context.Context, id string, record types.FoodRecord) (types.FoodRecord, error)
	Delete(ctx context.Context, id string) error
}

// Options configures an HTTPGateway
type Options struct {
	BaseURL string
	Timeout time.Duration
	TLS     *types.TLSConfig
	Logger  zerolog.Logger

	// Client replaces the built client entirely (tests)
	Client *http.Client
}

// HTTPGateway talks to a REST backend exposing /foods
type HTTPGateway struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
	lists   singleflight.Group
}

var _ Gateway = (*HTTPGateway)(nil)

// New creates a gateway for the given base URL
func New(opts Options) (*HTTPGateway, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", opts.BaseURL, err)
	}

	client := opts.Client
	if client == nil {
		var err error
		client, err = buildHTTPClient(opts.TLS, opts.Timeout)
		if err != nil {
			return nil, fmt.Errorf("failed to configure HTTP client: %w", err)
		}
	}

	return &HTTPGateway{
		baseURL: base,
		client:  client,
		logger:  opts.Logger.With().Str("component", "gateway").Logger(),
	}, nil
}

// BaseURL returns the normalized base URL
func (g *HTTPGateway) BaseURL() string {
	return g.baseURL
}

// List fetches every food. Concurrent calls share one request; each caller
// waits on its own ctx while the shared request is bounded by the client timeout.
func (g *HTTPGateway) List(ctx context.Context) ([]types.FoodRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}

	shared := context.WithoutCancel(ctx)
	ch := g.lists.DoChan("list", func() (any, error) {
		var records []types.FoodRecord
		if err := g.do(shared, "list", http.MethodGet, foodsPath, nil, &records); err != nil {
			return nil, err
		}
		if records == nil {
			records = []types.FoodRecord{}
		}
		return records, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("list foods: %w", ctx.Err())
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}

	// Callers sharing a flight must not share the backing array
	sharedRecords := res.Val.([]types.FoodRecord)
	records := make([]types.FoodRecord, len(sharedRecords))
	copy(records, sharedRecords)
	return records, nil
}

// Create posts a new food. Availability is forced to true.
func (g *HTTPGateway) Create(ctx context.Context, input types.FoodInput) (types.FoodRecord, error) {
	body, err := input.CreatePayload()
	if err != nil {
		return types.FoodRecord{}, fmt.Errorf("failed to marshal food: %w", err)
	}

	var created types.FoodRecord
	if err := g.do(ctx, "create", http.MethodPost, foodsPath, body, &created); err != nil {
		return types.FoodRecord{}, err
	}
	return created, nil
}

// Update replaces the food with the given id
func (g *HTTPGateway) Update(ctx context.Context, id string, record types.FoodRecord) (types.FoodRecord, error) {
	body, err := json.Marshal(record)
	if err != nil {
		return types.FoodRecord{}, fmt.Errorf("failed to marshal food: %w", err)
	}

	var updated types.FoodRecord
	if err := g.do(ctx, "update", http.MethodPut, foodPath(id), body, &updated); err != nil {
		return types.FoodRecord{}, err
	}
	return updated, nil
}

// Delete removes the food with the given id. Any 2xx is success.
func (g *HTTPGateway) Delete(ctx context.Context, id string) error {
	return g.do(ctx, "delete", http.MethodDelete, foodPath(id), nil, nil)
}

func foodPath(id string) string {
	return foodsPath + "/" + url.PathEscape(id)
}

// do sends one request and decodes a JSON response into out when non-nil
func (g *HTTPGateway) do(ctx context.Context, op, method, path string, body []byte, out any) error {
	fullURL := g.baseURL + path
	startTime := time.Now()

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return &TransportError{Op: op, Method: method, URL: fullURL, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	duration := time.Since(startTime)
	if err != nil {
		g.logger.Warn().Err(err).Str("op", op).Str("method", method).Str("url", fullURL).Dur("duration", duration).Msg("request failed")
		return &TransportError{Op: op, Method: method, URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Method: method, URL: fullURL, Status: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	g.logger.Debug().Str("op", op).Str("method", method).Str("url", fullURL).Int("status", resp.StatusCode).Dur("duration", duration).Msg("request completed")

	if !IsSuccessStatus(resp.StatusCode) {
		te := &TransportError{
			Op:     op,
			Method: method,
			URL:    fullURL,
			Status: resp.StatusCode,
			Body:   truncate(strings.TrimSpace(string(respBody)), maxErrorBody),
			Err:    fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
		g.logger.Warn().Str("op", op).Int("status", resp.StatusCode).Str("url", fullURL).Msg("backend rejected request")
		return te
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &TransportError{Op: op, Method: method, URL: fullURL, Status: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// buildHTTPClient creates an HTTP client with optional TLS/mTLS configuration
func buildHTTPClient(tlsConfig *types.TLSConfig, timeout time.Duration) (*http.Client, error) {
	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}

	if tlsConfig != nil {
		tlsCfg := &tls.Config{
			InsecureSkipVerify: tlsConfig.InsecureSkipVerify,
		}

		// Load client certificate if provided (for mTLS)
		if tlsConfig.CertFile != "" && tlsConfig.KeyFile != "" {
			cert, err := tls.LoadX509KeyPair(tlsConfig.CertFile, tlsConfig.KeyFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load client certificate: %w", err)
			}
			tlsCfg.Certificates = []tls.Certificate{cert}
		}

		// Load CA certificate if provided (for server verification)
		if tlsConfig.CAFile != "" {
			caCert, err := os.ReadFile(tlsConfig.CAFile)
			if err != nil {
				return nil, fmt.Errorf("failed to read CA certificate: %w", err)
			}
			caCertPool := x509.NewCertPool()
			if !caCertPool.AppendCertsFromPEM(caCert) {
				return nil, fmt.Errorf("failed to parse CA certificate")
			}
			tlsCfg.RootCAs = caCertPool
		}

		transport.TLSClientConfig = tlsCfg
	}

	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}, nil
}
