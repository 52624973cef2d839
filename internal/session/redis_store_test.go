package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YottademTech/ecommerce-mini-app/internal/cart"
	"github.com/YottademTech/ecommerce-mini-app/internal/checkout"
)

// setupTestRedis creates a miniredis server and returns a RedisStore instance
func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := NewRedisStore(client, 30*time.Minute)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return store, mr, cleanup
}

func TestRedisStore_Get(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	sess := New("sess-1")
	sess.Cart = cart.Cart{Lines: []cart.Line{{ItemID: "taco", Quantity: 3}}}
	sess.Draft.SetComment("extra salsa")

	data, _ := json.Marshal(sess)
	mr.Set(sessionKey("sess-1"), string(data))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", got.ID)
	assert.Equal(t, 3, got.Cart.Quantity("taco"))
	assert.Equal(t, "extra salsa", got.Draft.Comment)
}

func TestRedisStore_GetMissing(t *testing.T) {
	store, _, cleanup := setupTestRedis(t)
	defer cleanup()

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStore_PutRoundTrip(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	sess := New("sess-1")
	sess.Draft.SetPayment(checkout.Payment{
		Method:      checkout.MethodMomo,
		MomoNetwork: checkout.MomoMTN,
		MomoNumber:  "244123456",
	})
	require.NoError(t, store.Put(ctx, sess))

	// TTL is the base plus jitter.
	ttl := mr.TTL(sessionKey("sess-1"))
	assert.GreaterOrEqual(t, ttl, 30*time.Minute)
	assert.LessOrEqual(t, ttl, 31*time.Minute)

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.NotNil(t, got.Draft.Payment)
	assert.Equal(t, checkout.MomoMTN, got.Draft.Payment.MomoNetwork)
}

func TestRedisStore_Delete(t *testing.T) {
	store, _, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.Put(ctx, New("sess-1")))
	require.NoError(t, store.Delete(ctx, "sess-1"))

	_, err := store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStore_CorruptValue(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	mr.Set(sessionKey("sess-1"), "{not json")

	_, err := store.Get(context.Background(), "sess-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionNotFound)
}
