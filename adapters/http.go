package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/brettbedarf/vfsh"
	"github.com/brettbedarf/vfsh/internal/util"
	"github.com/hashicorp/go-retryablehttp"
)

// HTTPOptions tune the retrying client shared by every HTTP adapter.
// Zero wait bounds keep the client defaults.
type HTTPOptions struct {
	Timeout      time.Duration // Whole request timeout per attempt; 0 means none
	Retries      int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// HTTPProvider implements [vfsh.AdapterProvider] for http(s) seed URLs
type HTTPProvider struct {
	client *retryablehttp.Client
}

func NewHTTPProvider(opts HTTPOptions) *HTTPProvider {
	client := retryablehttp.NewClient()
	client.RetryMax = opts.Retries
	if opts.RetryWaitMin > 0 {
		client.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		client.RetryWaitMax = opts.RetryWaitMax
	}
	client.HTTPClient.Timeout = opts.Timeout
	// hand the last response back so status failures read the same with or without retries
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.Logger = leveledLogger{util.GetLogger("HTTPAdapter")}

	return &HTTPProvider{client: client}
}

func (p *HTTPProvider) NewAdapter(src string) (vfsh.SeedAdapter, error) {
	u, err := validateURL(src)
	if err != nil {
		return nil, err
	}
	return &HTTPAdapter{client: p.client, url: u}, nil
}

// validateURL accepts absolute http(s) URLs with a host and no user info
func validateURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty URL")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if u.Scheme != HTTPAdapterType && u.Scheme != HTTPSAdapterType {
		return "", fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("URL %q has no host", raw)
	}
	if u.User != nil {
		return "", fmt.Errorf("URL must not contain user info")
	}
	return u.String(), nil
}

// HTTPAdapter implements [vfsh.SeedAdapter] for a remote seed
type HTTPAdapter struct {
	client *retryablehttp.Client
	url    string
}

func (h *HTTPAdapter) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.5")

	resp, err := h.client.Do(req)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, fmt.Errorf("failed to fetch seed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to fetch seed %s: %s", h.url, resp.Status)
	}

	return resp.Body, nil
}

func (h *HTTPAdapter) Source() string {
	return h.url
}

// leveledLogger routes retryablehttp's logging into zerolog
type leveledLogger struct {
	logger util.Logger
}

func (l leveledLogger) Error(msg string, keysAndValues ...any) {
	l.logger.Error().Fields(keysAndValues).Msg(msg)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...any) {
	l.logger.Warn().Fields(keysAndValues).Msg(msg)
}

func (l leveledLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Info().Fields(keysAndValues).Msg(msg)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...any) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

var _ retryablehttp.LeveledLogger = leveledLogger{}
