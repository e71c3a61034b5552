package health

import (
	"context"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/config"
	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/balance"
)

const version = "1.0.0"

type Endpoints struct {
	// StripeBackend defaults to the live API backend.
	StripeBackend stripe.Backend
}

func NewHealthHandler(cfg *config.Config, endpoints *Endpoints) (*health.Health, error) {

	backend := endpoints.StripeBackend
	if backend == nil {
		backend = stripe.GetBackend(stripe.APIBackend)
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    cfg.Otel.ServiceName,
			Version: version,
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "database",
				Timeout:   3 * time.Second,
				SkipOnErr: false,
				Check: postgres.New(postgres.Config{
					DSN: cfg.Database.GetDSN(),
				}),
			},
			health.Config{
				Name:      "redis",
				Timeout:   2 * time.Second,
				SkipOnErr: false,
				Check: healthRedis.New(
					healthRedis.Config{
						DSN: cfg.RedisConnect.GetDSN(),
					},
				),
			},
			health.Config{
				// cash on delivery still works without stripe
				Name:      "stripe",
				Timeout:   5 * time.Second,
				SkipOnErr: true,
				Check:     StripeCheck(&balance.Client{B: backend, Key: cfg.Stripe.APIKey}),
			},
		),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

// StripeCheck reads the account balance as a reachability probe.
func StripeCheck(client *balance.Client) health.CheckFunc {
	return func(ctx context.Context) error {

		if client.Key == "" {
			return fmt.Errorf("stripe api key is not configured")
		}

		params := &stripe.BalanceParams{}
		params.Context = ctx

		if _, err := client.Get(params); err != nil {
			return fmt.Errorf("failed to connect to stripe: %w", err)
		}

		return nil
	}
}
