package redis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisclient "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pradeepit93/srienippagam-menu/pkg/cart"
	"github.com/pradeepit93/srienippagam-menu/pkg/catalog"
	"github.com/pradeepit93/srienippagam-menu/pkg/models"
)

// setupTestRedis starts a miniredis instance and a client pointed at it.
func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redisclient.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redisclient.NewClient(&redisclient.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

var laddu = models.Product{ID: 1, Name: "Boondi Laddu", Category: "Sweets", Price: 100}

func addLaddu(quantity int) func(*models.Cart) error {
	return func(m *models.Cart) error {
		c := cart.FromModel(m)
		if _, err := c.AddToCart(laddu, cart.AddOptions{Quantity: quantity}); err != nil {
			return err
		}
		*m = *c.Model()
		return nil
	}
}

// stoppedRedisAddr returns an address where nothing is listening.
func stoppedRedisAddr(t *testing.T) string {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()
	return addr
}

func TestNewClient(t *testing.T) {
	mr, _ := setupTestRedis(t)

	client, err := NewClient(context.Background(), mr.Addr(), "")
	require.NoError(t, err)
	client.Close()

	_, err = NewClient(context.Background(), stoppedRedisAddr(t), "")
	assert.Error(t, err)
}

func TestCartStore_LoadMissingIsEmpty(t *testing.T) {
	_, client := setupTestRedis(t)
	store := NewCartStore(client, time.Hour)

	c, err := store.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", c.SessionID)
	assert.Empty(t, c.Lines)
}

func TestCartStore_UpdatePersistsWithTTL(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewCartStore(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Update(ctx, "s1", addLaddu(2)))
	require.NoError(t, store.Update(ctx, "s1", addLaddu(1)))

	c, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 3, c.Lines[0].Quantity)
	assert.Equal(t, time.Hour, mr.TTL("cart:s1"))

	mr.FastForward(2 * time.Hour)
	c, err = store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, c.Lines)
}

func TestCartStore_FailedUpdateSavesNothing(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewCartStore(client, time.Hour)

	err := store.Update(context.Background(), "s1", func(*models.Cart) error {
		return errors.New("rejected")
	})
	assert.Error(t, err)
	assert.False(t, mr.Exists("cart:s1"))
}

func TestCartStore_ConcurrentUpdatesDoNotLoseLines(t *testing.T) {
	_, client := setupTestRedis(t)
	store := NewCartStore(client, time.Hour)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- store.Update(ctx, "s1", addLaddu(1))
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrConcurrentUpdate)
		}
	}

	c, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, succeeded, c.Lines[0].Quantity)
}

func TestCartStore_Delete(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewCartStore(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Update(ctx, "s1", addLaddu(1)))
	require.NoError(t, store.Delete(ctx, "s1"))
	assert.False(t, mr.Exists("cart:s1"))
}

type countingSource struct {
	calls int
	err   error
}

func (s *countingSource) Fetch(context.Context) ([]models.Product, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []models.Product{laddu}, nil
}

func TestCachedSource_ServesFromCache(t *testing.T) {
	mr, client := setupTestRedis(t)
	inner := &countingSource{}
	src := CachedSource{Inner: inner, Client: client, TTL: time.Minute}
	ctx := context.Background()

	first, err := src.Fetch(ctx)
	require.NoError(t, err)
	second, err := src.Fetch(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls)
	assert.True(t, mr.Exists(defaultCatalogKey))

	require.NoError(t, src.Invalidate(ctx))
	_, err = src.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedSource_FallsBackWhenRedisDown(t *testing.T) {
	client := redisclient.NewClient(&redisclient.Options{Addr: stoppedRedisAddr(t), MaxRetries: -1})
	defer client.Close()
	inner := &countingSource{}
	src := CachedSource{Inner: inner, Client: client, TTL: time.Minute}

	products, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestCachedSource_RefreshThroughService(t *testing.T) {
	_, client := setupTestRedis(t)
	inner := &countingSource{}
	svc := catalog.NewService(CachedSource{Inner: inner, Client: client, TTL: time.Minute}, time.Second)
	ctx := context.Background()

	require.NoError(t, svc.Reload(ctx))
	require.NoError(t, svc.Reload(ctx))
	assert.Equal(t, 1, inner.calls)

	require.NoError(t, svc.Refresh(ctx))
	assert.Equal(t, 2, inner.calls)
}
