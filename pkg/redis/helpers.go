package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redisclient "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pradeepit93/srienippagam-menu/pkg/catalog"
	"github.com/pradeepit93/srienippagam-menu/pkg/global"
	"github.com/pradeepit93/srienippagam-menu/pkg/models"
)

// maxUpdateRetries bounds optimistic retries when another request for the
// same session changes the cart between WATCH and EXEC.
const maxUpdateRetries = 10

var ErrConcurrentUpdate = errors.New("cart changed concurrently, retries exhausted")

// CartStore keeps session carts as JSON under cart:{sessionID} with a sliding TTL.
type CartStore struct {
	client *redisclient.Client
	ttl    time.Duration
}

func NewCartStore(client *redisclient.Client, ttl time.Duration) *CartStore {
	return &CartStore{client: client, ttl: ttl}
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

// Load retrieves a cart by session ID. A missing key yields an empty cart.
func (s *CartStore) Load(ctx context.Context, sessionID string) (*models.Cart, error) {
	return loadCart(ctx, s.client, sessionID)
}

// Update runs fn against the current cart inside WATCH/MULTI so two requests
// for one session never overwrite each other's lines.
func (s *CartStore) Update(ctx context.Context, sessionID string, fn func(*models.Cart) error) error {
	key := cartKey(sessionID)

	txf := func(tx *redisclient.Tx) error {
		cart, err := loadCart(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		if err := fn(cart); err != nil {
			return err
		}

		cartJSON, err := json.Marshal(cart)
		if err != nil {
			return fmt.Errorf("failed to marshal cart %s: %w", sessionID, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redisclient.Pipeliner) error {
			pipe.Set(ctx, key, cartJSON, s.ttl)
			return nil
		})
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redisclient.TxFailedErr) {
			global.Logger.Debug("Cart update conflict, retrying",
				zap.String("session_id", sessionID), zap.Int("attempt", i+1))
			continue
		}
		return err
	}
	return ErrConcurrentUpdate
}

// Delete removes the cart key.
func (s *CartStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, cartKey(sessionID)).Err()
}

// getter is satisfied by both the client and a WATCH transaction.
type getter interface {
	Get(ctx context.Context, key string) *redisclient.StringCmd
}

func loadCart(ctx context.Context, c getter, sessionID string) (*models.Cart, error) {
	cartJSON, err := c.Get(ctx, cartKey(sessionID)).Bytes()
	if errors.Is(err, redisclient.Nil) {
		return &models.Cart{SessionID: sessionID}, nil
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal(cartJSON, &cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart %s: %w", sessionID, err)
	}
	cart.SessionID = sessionID
	return &cart, nil
}

// CachedSource serves the catalog from Redis when a fresh copy is there and
// falls back to Inner otherwise. Cache failures never fail a fetch.
type CachedSource struct {
	Inner  catalog.Source
	Client *redisclient.Client
	TTL    time.Duration
	Key    string
}

const defaultCatalogKey = "catalog:products"

func (s CachedSource) key() string {
	if s.Key == "" {
		return defaultCatalogKey
	}
	return s.Key
}

func (s CachedSource) Fetch(ctx context.Context) ([]models.Product, error) {
	if products, ok := s.cached(ctx); ok {
		return products, nil
	}

	products, err := s.Inner.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	if productsJSON, err := json.Marshal(products); err == nil {
		if err := s.Client.Set(ctx, s.key(), productsJSON, s.TTL).Err(); err != nil {
			global.Logger.Warn("Failed to cache catalog", zap.Error(err))
		}
	}
	return products, nil
}

// Invalidate drops the cached catalog so the next Fetch reaches Inner.
func (s CachedSource) Invalidate(ctx context.Context) error {
	return s.Client.Del(ctx, s.key()).Err()
}

func (s CachedSource) cached(ctx context.Context) ([]models.Product, bool) {
	productsJSON, err := s.Client.Get(ctx, s.key()).Bytes()
	if err != nil {
		if !errors.Is(err, redisclient.Nil) {
			global.Logger.Warn("Catalog cache unavailable", zap.Error(err))
		}
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal(productsJSON, &products); err != nil || len(products) == 0 {
		return nil, false
	}
	global.Logger.Debug("Catalog served from cache", zap.Int("products", len(products)))
	return products, true
}
