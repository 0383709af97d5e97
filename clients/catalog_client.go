package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/gebrayel/ecommerce-simulator/cache"
	"github.com/gebrayel/ecommerce-simulator/circuitbreaker"
	"github.com/gebrayel/ecommerce-simulator/models"
)

const productCacheTTL = 5 * time.Minute

// CatalogClient resolves product snapshots from the catalog service,
// with a short-lived redis cache in front. The cache only shortens the
// snapshot-refresh window; cart lines still capture whatever the client
// returns at add time.
type CatalogClient struct {
	baseURL string
	http    *http.Client
	breaker *circuitbreaker.CircuitBreaker
	redis   *redis.Client
	logger  *zap.Logger
}

func NewCatalogClient(baseURL string, rdb *redis.Client, logger *zap.Logger) *CatalogClient {
	return &CatalogClient{
		baseURL: baseURL,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   5 * time.Second,
		},
		breaker: circuitbreaker.New(5, 30*time.Second),
		redis:   rdb,
		logger:  logger,
	}
}

// FindByID returns (nil, nil) when the catalog answers 404.
func (c *CatalogClient) FindByID(ctx context.Context, productID int64) (*models.ProductSnapshot, error) {
	if c.redis != nil {
		if data, err := cache.GetProductSnapshot(ctx, c.redis, productID); err == nil {
			var snapshot models.ProductSnapshot
			if err := json.Unmarshal(data, &snapshot); err == nil {
				return &snapshot, nil
			}
		}
	}

	var snapshot *models.ProductSnapshot
	err := c.breaker.Execute(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet,
			fmt.Sprintf("%s/products/%d", c.baseURL, productID), nil)
		if err != nil {
			return err
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusOK:
			var body models.ProductSnapshot
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				return fmt.Errorf("failed to decode product response: %w", err)
			}
			snapshot = &body
			return nil
		case http.StatusNotFound:
			return nil
		default:
			return fmt.Errorf("catalog service returned status %d", resp.StatusCode)
		}
	})
	if err != nil {
		c.logger.Error("Product lookup failed", zap.Int64("product_id", productID), zap.Error(err))
		return nil, err
	}

	if snapshot != nil && c.redis != nil {
		if err := cache.SetProductSnapshot(ctx, c.redis, productID, snapshot, productCacheTTL); err != nil {
			c.logger.Warn("Failed to cache product snapshot", zap.Int64("product_id", productID), zap.Error(err))
		}
	}
	return snapshot, nil
}
