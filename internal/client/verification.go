// Package client holds HTTP clients for upstream services.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/darwin-elegiga/backend-theme/internal/cache"
	"github.com/darwin-elegiga/backend-theme/pkg/httpclient"
)

// ErrCodeNotFound indicates the verification API does not know the code.
var ErrCodeNotFound = errors.New("access code not found")

// codeCacheTTL bounds how long a code→brand mapping is reused without
// consulting the verification API again.
const codeCacheTTL = 15 * time.Minute

// verificationResponse is the subset of the verification API payload needed
// to map a code to a brand.
type verificationResponse struct {
	CustomerName string `json:"customerName"`
}

// VerificationClient resolves access codes to brand identifiers through the
// external verification API. Resolved mappings are cached in memory; the
// upstream is slow and codes map to the same brand for their whole lifetime.
type VerificationClient struct {
	http    *httpclient.CircuitBreakerClient
	baseURL string
	cache   cache.Cache[string]
	logger  *slog.Logger
}

// NewVerificationClient creates a client for the verification API at baseURL.
func NewVerificationClient(baseURL string, logger *slog.Logger) *VerificationClient {
	hc := httpclient.New(httpclient.DefaultConfig())
	cb := httpclient.NewCircuitBreakerClient(hc, httpclient.DefaultCircuitBreakerConfig("verification-api"), logger)

	return &VerificationClient{
		http:    cb,
		baseURL: strings.TrimRight(baseURL, "/"),
		cache:   cache.NewMemory[string](codeCacheTTL),
		logger:  logger,
	}
}

// ResolveCode maps an access code to a brand identifier. The brand ID is the
// lowercased customer name reported by the verification API. Returns
// ErrCodeNotFound when the upstream does not recognize the code.
func (c *VerificationClient) ResolveCode(ctx context.Context, code string) (string, error) {
	return c.cache.GetOrCompute(ctx, code, func(ctx context.Context) (string, error) {
		return c.fetch(ctx, code)
	})
}

func (c *VerificationClient) fetch(ctx context.Context, code string) (string, error) {
	resp, err := c.http.Get(ctx, c.baseURL+"/"+code)
	if err != nil {
		return "", fmt.Errorf("verification api: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", ErrCodeNotFound
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("verification api: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("verification api: read response: %w", err)
	}

	var vr verificationResponse
	if err := json.Unmarshal(body, &vr); err != nil {
		return "", fmt.Errorf("verification api: decode response: %w", err)
	}
	if vr.CustomerName == "" {
		return "", ErrCodeNotFound
	}

	brandID := strings.ToLower(vr.CustomerName)
	c.logger.DebugContext(ctx, "access code resolved",
		slog.String("code", code),
		slog.String("brand_id", brandID),
	)
	return brandID, nil
}
