package polygon

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"TrendGuard/internal/domain/models"
	drepo "TrendGuard/internal/domain/repository"
	"TrendGuard/internal/service/ratelimit"
	xhttp "TrendGuard/pkg/http"
	"TrendGuard/pkg/util"
)

// Client implements a BarSource backed by the Polygon.io daily aggregates API.
// It requires an API credential; without one every fetch fails softly so the
// orchestrator can fall through to the next source.
type Client struct {
	apiKey  string
	baseURL string
	pad     int

	client  *xhttp.Client
	limiter *ratelimit.Limiter
	rlCap   float64
	rlRate  float64
}

// New creates a new Polygon BarSource.
func New(apiKey, baseURL string, timeout time.Duration, padDays int, limiter *ratelimit.Limiter, capacity, refillPerSec float64) drepo.BarSource {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		pad:     padDays,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
		limiter: limiter,
		rlCap:   capacity,
		rlRate:  refillPerSec,
	}
}

func (c *Client) Name() string { return "polygon" }

// Ready reports whether an API credential is configured.
func (c *Client) Ready() bool { return c.apiKey != "" }

// Ticker rewrites crypto pairs with a -USD suffix into Polygon crypto
// notation (X:BTCUSD). Anything else passes through as an equity ticker.
func Ticker(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if base, ok := strings.CutSuffix(s, "-USD"); ok && base != "" {
		return "X:" + base + "USD"
	}
	return s
}

type aggBar struct {
	T int64   `json:"t"` // ms
	O float64 `json:"o"`
	H float64 `json:"h"`
	L float64 `json:"l"`
	C float64 `json:"c"`
	V float64 `json:"v"`
}

type aggsResponse struct {
	Status       string   `json:"status"`
	ResultsCount int      `json:"resultsCount"`
	Results      []aggBar `json:"results"`
}

// DailyBars fetches the daily-bar window for symbol. All provider and
// network problems come back as errors, never as panics.
func (c *Client) DailyBars(ctx context.Context, symbol string, days int) ([]models.Bar, error) {
	if !c.Ready() {
		return nil, fmt.Errorf("polygon: api key not configured")
	}
	if c.limiter != nil && !c.limiter.Allow("polygon", c.rlCap, c.rlRate) {
		return nil, fmt.Errorf("polygon: rate limited")
	}

	from, to := util.DayWindow(time.Now(), days, c.pad)
	u := fmt.Sprintf("%s/v2/aggs/ticker/%s/range/1/day/%s/%s", c.baseURL, Ticker(symbol), from, to)

	var ar aggsResponse
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    u,
		QueryParams: map[string][]string{
			"adjusted": {"true"},
			"sort":     {"asc"},
			"limit":    {"120"},
			"apiKey":   {c.apiKey},
		},
	}, &ar)
	if err != nil {
		return nil, fmt.Errorf("polygon aggs: %w", err)
	}
	if len(ar.Results) == 0 {
		return nil, fmt.Errorf("polygon: no bars for %s", symbol)
	}

	bars := make([]models.Bar, 0, len(ar.Results))
	for _, b := range ar.Results {
		bars = append(bars, models.Bar{
			Date:   util.DayOf(time.UnixMilli(b.T)),
			Open:   b.O,
			High:   b.H,
			Low:    b.L,
			Close:  b.C,
			Volume: b.V,
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}
