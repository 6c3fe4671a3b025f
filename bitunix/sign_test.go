package bitunix

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalQueryEmpty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", CanonicalQuery(nil))
	assert.Equal(t, "", CanonicalQuery(map[string]any{}))
}

func TestCanonicalQuerySortsByKey(t *testing.T) {
	t.Parallel()

	got := CanonicalQuery(map[string]any{
		"symbol": "BTCUSDT",
		"limit":  50,
		"skip":   0,
	})
	assert.Equal(t, "limit50skip0symbolBTCUSDT", got)
}

func TestCanonicalQueryInsertionOrderIrrelevant(t *testing.T) {
	t.Parallel()

	a := map[string]any{}
	a["b"] = 2
	a["a"] = 1
	a["c"] = 3

	b := map[string]any{}
	b["c"] = 3
	b["a"] = 1
	b["b"] = 2

	assert.Equal(t, CanonicalQuery(a), CanonicalQuery(b))
	assert.Equal(t, "a1b2c3", CanonicalQuery(a))
}

func TestCanonicalQueryNilValue(t *testing.T) {
	t.Parallel()

	got := CanonicalQuery(map[string]any{"a": nil, "b": 1})
	assert.Equal(t, "ab1", got)
}

func TestCanonicalBody(t *testing.T) {
	t.Parallel()

	// Read requests always sign an empty body, even when one is supplied.
	got, err := CanonicalBody(http.MethodGet, map[string]any{"x": 1})
	assert.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = CanonicalBody(http.MethodPost, nil)
	assert.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = CanonicalBody(http.MethodPost, map[string]any{"symbol": "BTCUSDT"})
	assert.NoError(t, err)
	assert.Equal(t, `{"symbol":"BTCUSDT"}`, got)
}

func TestSignKnownVectors(t *testing.T) {
	t.Parallel()

	const (
		key   = "demo-key"
		sec   = "demo-secret"
		nonce = "3f2a9b1c0d4e5f60718293a4b5c6d7e8"
		ts    = "1700000000000"
		query = "limit50skip0"
	)

	assert.Equal(t,
		"3593f01774ebadf7508db4d5c13c9f35446d6b41fca75ab5aa5c3bbef743b69e",
		Sign(key, sec, nonce, ts, query, ""),
	)
	assert.Equal(t,
		"71d14feefc3727f93d527840f2cecb22f2069d8fac4ab728db8ee2393a22fc5e",
		Sign(key, sec, nonce, ts, query, `{"symbol":"BTCUSDT"}`),
	)
}

func TestSignDeterministicAndSensitive(t *testing.T) {
	t.Parallel()

	base := Sign("k", "s", "n", "1", "q", "b")
	assert.Equal(t, base, Sign("k", "s", "n", "1", "q", "b"))
	assert.Len(t, base, 64)

	// Any single-input mutation must change the signature.
	assert.NotEqual(t, base, Sign("K", "s", "n", "1", "q", "b"))
	assert.NotEqual(t, base, Sign("k", "S", "n", "1", "q", "b"))
	assert.NotEqual(t, base, Sign("k", "s", "N", "1", "q", "b"))
	assert.NotEqual(t, base, Sign("k", "s", "n", "2", "q", "b"))
	assert.NotEqual(t, base, Sign("k", "s", "n", "1", "Q", "b"))
	assert.NotEqual(t, base, Sign("k", "s", "n", "1", "q", "B"))
}
