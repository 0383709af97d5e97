package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/gebrayel/ecommerce-simulator/circuitbreaker"
	"github.com/gebrayel/ecommerce-simulator/models"
)

// UserClient resolves user contact snapshots from the users service.
type UserClient struct {
	baseURL string
	http    *http.Client
	breaker *circuitbreaker.CircuitBreaker
	logger  *zap.Logger
}

func NewUserClient(baseURL string, logger *zap.Logger) *UserClient {
	return &UserClient{
		baseURL: baseURL,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   5 * time.Second,
		},
		breaker: circuitbreaker.New(5, 30*time.Second),
		logger:  logger,
	}
}

// FindByID returns (nil, nil) when the users service answers 404.
func (c *UserClient) FindByID(ctx context.Context, userID int64) (*models.UserSnapshot, error) {
	var snapshot *models.UserSnapshot

	err := c.breaker.Execute(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet,
			fmt.Sprintf("%s/users/%d", c.baseURL, userID), nil)
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
			var body models.UserSnapshot
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				return fmt.Errorf("failed to decode user response: %w", err)
			}
			snapshot = &body
			return nil
		case http.StatusNotFound:
			return nil
		default:
			return fmt.Errorf("users service returned status %d", resp.StatusCode)
		}
	})
	if err != nil {
		c.logger.Error("User lookup failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	return snapshot, nil
}
