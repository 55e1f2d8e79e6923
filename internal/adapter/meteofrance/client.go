package meteofrance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/marine-bulletin-etl/internal/config"
	"github.com/couchcryptid/marine-bulletin-etl/internal/domain"
	"github.com/couchcryptid/marine-bulletin-etl/internal/observability"
)

const (
	// Any marine page works; it only serves to obtain a session cookie.
	defaultLandingURL = "https://meteofrance.com/meteo-marine/penmarc-h-anse-de-l-aiguillon/BMSCOTE-01-04"
	defaultReportURL  = "https://rpcache-aa.meteofrance.com/internet2018client/2.0/report"

	maxBodyBytes = 8 << 20
	opCookie     = "cookie"
)

var (
	errEmptyBody    = errors.New("empty response body")
	errBodyTooLarge = fmt.Errorf("response body exceeds %d bytes", maxBodyBytes)
)

// Client fetches BMS and BMR bulletins from the Météo-France content cache.
// It implements pipeline.Fetcher.
type Client struct {
	httpClient *http.Client
	landingURL string
	reportURL  string
	region     uint8
	zone       uint8
	wantBMR    bool
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// Option customizes a Client.
type Option func(*Client)

// WithEndpoints points the client at another landing page and report endpoint.
func WithEndpoints(landingURL, reportURL string) Option {
	return func(c *Client) {
		c.landingURL = landingURL
		c.reportURL = reportURL
	}
}

// NewClient creates a client for the configured region and zone. Every request
// is bounded by cfg.RequestTimeout.
func NewClient(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		landingURL: defaultLandingURL,
		reportURL:  defaultReportURL,
		region:     cfg.Region,
		zone:       cfg.Zone,
		wantBMR:    cfg.WantBMR,
		logger:     logger,
		metrics:    metrics,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch obtains a session token and downloads the BMS report, followed by the
// BMR report when it is wanted. The BMS report is always first. Any failure
// aborts the whole fetch.
func (c *Client) Fetch(ctx context.Context) ([]domain.Report, error) {
	cookie, err := c.sessionCookie(ctx)
	if err != nil {
		return nil, err
	}

	token, err := domain.DecodeSessionToken(cookie)
	if err != nil {
		c.logger.Error("failed to derive token", "error", err)
		return nil, fmt.Errorf("derive token: %w", err)
	}
	c.logger.Info("session token obtained")

	bms, err := c.fetchReport(ctx, domain.KindBMS, token)
	if err != nil {
		return nil, err
	}
	reports := []domain.Report{bms}

	if c.wantBMR {
		bmr, err := c.fetchReport(ctx, domain.KindBMR, token)
		if err != nil {
			return nil, err
		}
		reports = append(reports, bmr)
	}
	return reports, nil
}

// ReportURL builds the report endpoint URL for a kind.
func (c *Client) ReportURL(kind domain.ReportKind) string {
	params := url.Values{
		"domain":         {domain.ReportDomain(kind, c.region, c.zone)},
		"report_type":    {"marine"},
		"report_subtype": {string(kind) + "_cote_fr"},
		"format":         {kind.Format()},
	}
	return c.reportURL + "?" + params.Encode()
}

// sessionCookie requests the landing page and returns the Set-Cookie header
// carrying the session, or the first Set-Cookie header if none does.
func (c *Client) sessionCookie(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, opCookie, c.landingURL, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
	c.metrics.FetchRequests.WithLabelValues(opCookie, "success").Inc()

	cookies := resp.Header.Values("Set-Cookie")
	if len(cookies) == 0 {
		c.logger.Error("failed to get session cookie", "error", domain.ErrNoCookieHeader)
		return "", domain.ErrNoCookieHeader
	}
	for _, cookie := range cookies {
		if domain.HasSessionMarker(cookie) {
			return cookie, nil
		}
	}
	return cookies[0], nil
}

func (c *Client) fetchReport(ctx context.Context, kind domain.ReportKind, token string) (domain.Report, error) {
	op := string(kind)
	u := c.ReportURL(kind)

	// An empty token still yields an Authorization header.
	resp, err := c.do(ctx, op, u, &token)
	if err != nil {
		return domain.Report{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return domain.Report{}, c.fail(op, &domain.FetchError{Op: op, URL: u, Err: fmt.Errorf("read body: %w", err)})
	}
	if len(body) > maxBodyBytes {
		return domain.Report{}, c.fail(op, &domain.FetchError{Op: op, URL: u, StatusCode: resp.StatusCode, Err: errBodyTooLarge})
	}
	if len(body) == 0 {
		return domain.Report{}, c.fail(op, &domain.FetchError{Op: op, URL: u, StatusCode: resp.StatusCode, Err: errEmptyBody})
	}

	c.metrics.FetchRequests.WithLabelValues(op, "success").Inc()
	c.logger.Info("report fetched", "kind", kind, "status", resp.StatusCode, "bytes", len(body))
	return domain.Report{Kind: kind, Body: body, URL: u}, nil
}

// do issues a GET, with a bearer Authorization header when token is non-nil.
// Non-2xx responses are returned as *domain.FetchError with the body closed.
func (c *Client) do(ctx context.Context, op, u string, token *string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &domain.FetchError{Op: op, URL: u, Err: fmt.Errorf("create request: %w", err)}
	}
	if token != nil {
		req.Header.Set("Authorization", "Bearer "+*token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.FetchDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, c.fail(op, &domain.FetchError{Op: op, URL: u, Err: err})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, c.fail(op, &domain.FetchError{
			Op:         op,
			URL:        u,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status: %s", strings.TrimSpace(string(snippet))),
		})
	}

	return resp, nil
}

func (c *Client) fail(op string, err *domain.FetchError) error {
	c.metrics.FetchRequests.WithLabelValues(op, "error").Inc()
	c.logger.Error("request failed", "request", op, "url", err.URL, "status", err.StatusCode, "error", err.Err)
	return err
}
