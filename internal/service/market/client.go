package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/ShiblySohaib/wfmarket/internal/domain/models"
	drepo "github.com/ShiblySohaib/wfmarket/internal/domain/repository"
	"github.com/ShiblySohaib/wfmarket/internal/service/ratelimit"
	xhttp "github.com/ShiblySohaib/wfmarket/pkg/http"
	xlogger "github.com/ShiblySohaib/wfmarket/pkg/logger"
)

// Client fetches buy orders for single items from the market API, gated by a
// shared rate limiter.
type Client struct {
	baseURL string
	http    *xhttp.Client
	limiter *ratelimit.Limiter
	logger  *xlogger.Logger
}

// New creates an OrderFetcher against baseURL (e.g. "https://api.warframe.market/v1").
func New(baseURL string, timeout time.Duration, limiter *ratelimit.Limiter, logger *xlogger.Logger) drepo.OrderFetcher {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
		limiter: limiter,
		logger:  logger,
	}
}

type upstreamUser struct {
	IngameName string `json:"ingame_name"`
	Reputation int    `json:"reputation"`
	Status     string `json:"status"`
}

type upstreamOrder struct {
	OrderType string       `json:"order_type"`
	Platinum  int          `json:"platinum"`
	Quantity  int          `json:"quantity"`
	ModRank   int          `json:"mod_rank"`
	User      upstreamUser `json:"user"`
}

type ordersResponse struct {
	Payload struct {
		Orders []upstreamOrder `json:"orders"`
	} `json:"payload"`
}

// FetchOrders performs exactly one rate-limited call for one item and
// classifies the outcome. Transport failures and non-200/429 statuses are
// terminal failures for this pass; 429 is a retry signal, not a failure.
func (c *Client) FetchOrders(ctx context.Context, itemName string) models.FetchOutcome {
	url := fmt.Sprintf("%s/items/%s/orders", c.baseURL, ItemSlug(itemName))

	if err := c.limiter.Acquire(ctx); err != nil {
		return c.failed(itemName, err.Error())
	}

	resp, err := c.http.SendRequest(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    url,
	})
	if err != nil {
		return c.failed(itemName, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		c.logger.Warn("rate limited, will retry", xlogger.String("item", itemName))
		return models.FetchOutcome{Item: itemName, Status: models.OutcomeRateLimited}
	}
	if resp.StatusCode != http.StatusOK {
		return c.failed(itemName, fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	var body ordersResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return c.failed(itemName, fmt.Sprintf("decode response: %v", err))
	}

	// Keep buy orders from users who are currently in game.
	orders := make([]models.MarketOrder, 0, len(body.Payload.Orders))
	for _, o := range body.Payload.Orders {
		if o.OrderType != "buy" || o.User.Status != "ingame" {
			continue
		}
		buyer := o.User.IngameName
		if buyer == "" {
			buyer = "Unknown"
		}
		orders = append(orders, models.MarketOrder{
			Buyer:      buyer,
			Platinum:   o.Platinum,
			Quantity:   o.Quantity,
			Rank:       o.ModRank,
			Reputation: o.User.Reputation,
			UserStatus: o.User.Status,
		})
	}

	sort.Slice(orders, func(i, j int) bool { return orders[i].Platinum > orders[j].Platinum })

	return models.FetchOutcome{Item: itemName, Status: models.OutcomeSuccess, Orders: orders}
}

func (c *Client) failed(itemName, reason string) models.FetchOutcome {
	c.logger.Error("fetch failed permanently",
		xlogger.String("item", itemName),
		xlogger.String("reason", reason),
	)
	return models.FetchOutcome{Item: itemName, Status: models.OutcomeFailed, Err: reason}
}
