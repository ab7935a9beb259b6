package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShiblySohaib/wfmarket/internal/domain/models"
	"github.com/ShiblySohaib/wfmarket/internal/service/ratelimit"
	xlogger "github.com/ShiblySohaib/wfmarket/pkg/logger"
)

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	return l
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	fetcher := New(baseURL, 5*time.Second, ratelimit.New(100, time.Second), testLogger(t))
	return fetcher.(*Client)
}

const ordersBody = `{
	"payload": {
		"orders": [
			{"order_type": "buy", "platinum": 45, "quantity": 2, "mod_rank": 3,
			 "user": {"ingame_name": "BuyerA", "reputation": 12, "status": "ingame"}},
			{"order_type": "buy", "platinum": 60, "quantity": 1,
			 "user": {"ingame_name": "Sleeper", "reputation": 3, "status": "offline"}},
			{"order_type": "sell", "platinum": 90, "quantity": 1,
			 "user": {"ingame_name": "Seller", "reputation": 40, "status": "ingame"}},
			{"order_type": "buy", "platinum": 80, "quantity": 1,
			 "user": {"ingame_name": "BuyerB", "reputation": 7, "status": "ingame"}},
			{"order_type": "buy", "platinum": 30, "quantity": 4,
			 "user": {"reputation": 0, "status": "ingame"}}
		]
	}
}`

func TestFetchOrdersFiltersAndSorts(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(ordersBody))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	out := c.FetchOrders(context.Background(), "Abating Link")

	assert.Equal(t, "/items/abating_link/orders", gotPath)
	require.Equal(t, models.OutcomeSuccess, out.Status)
	assert.Equal(t, "Abating Link", out.Item)
	assert.Empty(t, out.Err)

	// Only in-game buy orders survive, highest platinum first.
	require.Len(t, out.Orders, 3)
	assert.Equal(t, []int{80, 45, 30}, []int{out.Orders[0].Platinum, out.Orders[1].Platinum, out.Orders[2].Platinum})
	assert.Equal(t, "BuyerB", out.Orders[0].Buyer)
	assert.Equal(t, 3, out.Orders[1].Rank)
	assert.Equal(t, "Unknown", out.Orders[2].Buyer)
}

func TestFetchOrdersRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	out := newTestClient(t, srv.URL).FetchOrders(context.Background(), "Serration")

	assert.Equal(t, models.OutcomeRateLimited, out.Status)
	assert.Empty(t, out.Orders)
	assert.Empty(t, out.Err)
}

func TestFetchOrdersHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	out := newTestClient(t, srv.URL).FetchOrders(context.Background(), "Serration")

	assert.Equal(t, models.OutcomeFailed, out.Status)
	assert.Equal(t, "HTTP 500", out.Err)
}

func TestFetchOrdersTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	out := newTestClient(t, srv.URL).FetchOrders(context.Background(), "Serration")

	assert.Equal(t, models.OutcomeFailed, out.Status)
	assert.NotEmpty(t, out.Err)
}

func TestFetchOrdersMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"payload": [`))
	}))
	defer srv.Close()

	out := newTestClient(t, srv.URL).FetchOrders(context.Background(), "Serration")

	assert.Equal(t, models.OutcomeFailed, out.Status)
	assert.Contains(t, out.Err, "decode response")
}

func TestFetchOrdersRespectsRateLimiter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"payload": {"orders": []}}`))
	}))
	defer srv.Close()

	fetcher := New(srv.URL, 5*time.Second, ratelimit.New(2, 100*time.Millisecond), testLogger(t))

	start := time.Now()
	for i := 0; i < 5; i++ {
		out := fetcher.FetchOrders(context.Background(), "Serration")
		require.Equal(t, models.OutcomeSuccess, out.Status)
	}
	// 5 calls at 2 per 100ms cross the window boundary at least twice.
	assert.GreaterOrEqual(t, time.Since(start), 200*time.Millisecond)
}
