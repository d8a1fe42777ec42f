package coingecko

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"TrendGuard/internal/domain/models"
	drepo "TrendGuard/internal/domain/repository"
	"TrendGuard/internal/service/ratelimit"
	xhttp "TrendGuard/pkg/http"
	"TrendGuard/pkg/util"
)

// coinIDs resolves stripped symbols of the common majors to CoinGecko
// canonical ids. Symbols not listed here fall back to the lowercased
// stripped symbol as a best-effort guess.
var coinIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"BNB":   "binancecoin",
	"SOL":   "solana",
	"XRP":   "ripple",
	"ADA":   "cardano",
	"DOGE":  "dogecoin",
	"DOT":   "polkadot",
	"AVAX":  "avalanche-2",
	"MATIC": "matic-network",
	"LINK":  "chainlink",
	"LTC":   "litecoin",
	"TRX":   "tron",
	"SHIB":  "shiba-inu",
	"UNI":   "uniswap",
	"ATOM":  "cosmos",
	"XLM":   "stellar",
	"XMR":   "monero",
}

// CoinID strips any quote-currency suffix and separators from symbol and
// resolves it through the majors table.
func CoinID(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	for _, suf := range []string{"-USD", "/USD", "-USDT", "/USDT"} {
		if base, ok := strings.CutSuffix(s, suf); ok {
			s = base
			break
		}
	}
	s = strings.NewReplacer("-", "", "/", "").Replace(s)
	if id, ok := coinIDs[s]; ok {
		return id
	}
	return strings.ToLower(s)
}

// KnownSymbols lists the symbols in the majors table, for the symbols API.
func KnownSymbols() map[string]string {
	out := make(map[string]string, len(coinIDs))
	for k, v := range coinIDs {
		out[k] = v
	}
	return out
}

// Client implements a BarSource backed by the CoinGecko market-chart API.
// No credential required. CoinGecko reports close and volume only; OHLC is
// synthesized from neighbouring closes and is an approximation, not a true
// intraday range.
type Client struct {
	baseURL string
	quote   string

	client  *xhttp.Client
	limiter *ratelimit.Limiter
	rlCap   float64
	rlRate  float64
}

// New creates a new CoinGecko BarSource.
func New(baseURL, quoteCurrency string, timeout time.Duration, limiter *ratelimit.Limiter, capacity, refillPerSec float64) drepo.BarSource {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		quote:   quoteCurrency,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
		limiter: limiter,
		rlCap:   capacity,
		rlRate:  refillPerSec,
	}
}

func (c *Client) Name() string { return "coingecko" }

func (c *Client) Ready() bool { return true }

type chartResponse struct {
	Prices       [][]float64 `json:"prices"`
	TotalVolumes [][]float64 `json:"total_volumes"`
}

// DailyBars fetches a daily close/volume history and synthesizes OHLC:
// open[i] = close[i-1] (close[i] for the first row), high = max(open, close),
// low = min(open, close).
func (c *Client) DailyBars(ctx context.Context, symbol string, days int) ([]models.Bar, error) {
	if c.limiter != nil && !c.limiter.Allow("coingecko", c.rlCap, c.rlRate) {
		return nil, fmt.Errorf("coingecko: rate limited")
	}

	id := CoinID(symbol)
	u := fmt.Sprintf("%s/api/v3/coins/%s/market_chart", c.baseURL, id)

	var cr chartResponse
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    u,
		QueryParams: map[string][]string{
			"vs_currency": {c.quote},
			"days":        {strconv.Itoa(days)},
			"interval":    {"daily"},
		},
	}, &cr)
	if err != nil {
		return nil, fmt.Errorf("coingecko market_chart %s: %w", id, err)
	}
	if len(cr.Prices) < 2 {
		return nil, fmt.Errorf("coingecko: insufficient history for %s", id)
	}

	bars := make([]models.Bar, 0, len(cr.Prices))
	prevClose := 0.0
	for i, p := range cr.Prices {
		if len(p) < 2 {
			continue
		}
		close := p[1]
		open := close
		if i > 0 {
			open = prevClose
		}
		volume := 0.0
		if i < len(cr.TotalVolumes) && len(cr.TotalVolumes[i]) >= 2 {
			volume = cr.TotalVolumes[i][1]
		}
		bars = append(bars, models.Bar{
			Date:   util.DayOf(time.UnixMilli(int64(p[0]))),
			Open:   open,
			High:   max(open, close),
			Low:    min(open, close),
			Close:  close,
			Volume: volume,
		})
		prevClose = close
	}
	if len(bars) < 2 {
		return nil, fmt.Errorf("coingecko: insufficient history for %s", id)
	}
	return bars, nil
}
