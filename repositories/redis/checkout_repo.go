package redis

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"fmt"
	"time"

	// Local Packages
	models "quick-sale/models"

	// External Packages
	"github.com/redis/go-redis/v9"
)

// CheckoutIndex remembers a checkout a submission already created so a
// retried submission after a failed save reuses it instead of opening a
// second processor-side checkout with no local record. Keys are chosen
// by the caller and include the draft values the checkout was created
// for; a stale entry simply ages out with the TTL.
type CheckoutIndex struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCheckoutIndex(client *redis.Client) *CheckoutIndex {
	return &CheckoutIndex{client: client, ttl: 24 * time.Hour}
}

func indexKey(key string) string {
	return fmt.Sprintf("checkout:draft:%s", key)
}

func (r *CheckoutIndex) Remember(ctx context.Context, key string, checkout models.Checkout) error {
	jsonData, err := json.Marshal(checkout)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, indexKey(key), jsonData, r.ttl).Err()
}

// Recall returns the remembered checkout for a key, or nil when none is
// outstanding.
func (r *CheckoutIndex) Recall(ctx context.Context, key string) (*models.Checkout, error) {
	raw, err := r.client.Get(ctx, indexKey(key)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var checkout models.Checkout
	if err := json.Unmarshal(raw, &checkout); err != nil {
		return nil, err
	}
	return &checkout, nil
}

func (r *CheckoutIndex) Forget(ctx context.Context, key string) error {
	return r.client.Del(ctx, indexKey(key)).Err()
}
