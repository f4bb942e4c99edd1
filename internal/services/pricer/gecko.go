package pricer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/coinpulse/coinpulse/internal/domain"
	"github.com/coinpulse/coinpulse/internal/services/portfolio"
	"github.com/coinpulse/coinpulse/pkg/cache"
	"github.com/coinpulse/coinpulse/pkg/retrier"
)

const (
	defaultHTTPTimeout = 15 * time.Second
	quoteCacheTTL      = 1 * time.Minute
	seriesCacheTTL     = 5 * time.Minute
	vsCurrency         = "usd"
)

// GeckoPricer fetches quotes and market charts from a CoinGecko-compatible
// REST API. Responses are cached so overlapping refreshes don't hammer the
// provider's rate limits.
type GeckoPricer struct {
	baseURL     string
	httpClient  *http.Client
	retrier     *retrier.Retrier
	quoteCache  *cache.TTL[map[string]domain.Quote]
	seriesCache *cache.TTL[seriesData]
	logger      *zap.Logger
}

type seriesData struct {
	prices  domain.PriceSeries
	volumes []float64
}

// NewGeckoPricer creates a pricer against baseURL (e.g.
// https://api.coingecko.com).
func NewGeckoPricer(baseURL string, logger *zap.Logger) *GeckoPricer {
	return &GeckoPricer{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: defaultHTTPTimeout},
		retrier:     retrier.New(retrier.WithBaseDelay(time.Second)),
		quoteCache:  cache.NewTTL[map[string]domain.Quote](quoteCacheTTL, nil),
		seriesCache: cache.NewTTL[seriesData](seriesCacheTTL, nil),
		logger:      logger,
	}
}

// Quotes fetches current price and 24h change for the given symbols.
func (p *GeckoPricer) Quotes(ctx context.Context, symbols []string) (map[string]domain.Quote, error) {
	if len(symbols) == 0 {
		return map[string]domain.Quote{}, nil
	}

	ids := make([]string, len(symbols))
	idToSymbol := make(map[string]string, len(symbols))
	for i, symbol := range symbols {
		id := portfolio.CanonicalID(symbol)
		ids[i] = id
		idToSymbol[id] = symbol
	}

	key := strings.Join(ids, ",")
	return p.quoteCache.GetOrFetch(ctx, key, func(ctx context.Context) (map[string]domain.Quote, error) {
		endpoint := fmt.Sprintf("%s/api/v3/simple/price?ids=%s&vs_currencies=%s&include_24hr_change=true",
			p.baseURL, url.QueryEscape(key), vsCurrency)

		var raw map[string]map[string]float64
		if err := p.getJSON(ctx, endpoint, &raw); err != nil {
			return nil, errors.Wrap(err, "fetch quotes")
		}

		quotes := make(map[string]domain.Quote, len(raw))
		for id, fields := range raw {
			symbol, ok := idToSymbol[id]
			if !ok {
				continue
			}
			price, ok := fields[vsCurrency]
			if !ok {
				p.logger.Warn("quote missing price field", zap.String("id", id))
				continue
			}
			quotes[symbol] = domain.Quote{
				Price:     decimal.NewFromFloat(price),
				Change24h: fields[vsCurrency+"_24h_change"],
			}
		}
		return quotes, nil
	})
}

type marketChart struct {
	Prices       [][2]float64 `json:"prices"`
	TotalVolumes [][2]float64 `json:"total_volumes"`
}

// Series fetches the market chart for symbol over the given number of days.
func (p *GeckoPricer) Series(ctx context.Context, symbol string, days int) (domain.PriceSeries, []float64, error) {
	key := fmt.Sprintf("%s:%d", symbol, days)
	data, err := p.seriesCache.GetOrFetch(ctx, key, func(ctx context.Context) (seriesData, error) {
		endpoint := fmt.Sprintf("%s/api/v3/coins/%s/market_chart?vs_currency=%s&days=%d",
			p.baseURL, url.PathEscape(portfolio.CanonicalID(symbol)), vsCurrency, days)

		var chart marketChart
		if err := p.getJSON(ctx, endpoint, &chart); err != nil {
			return seriesData{}, errors.Wrapf(err, "fetch market chart for %s", symbol)
		}

		series, err := domain.SeriesFromPairs(chart.Prices)
		if err != nil {
			return seriesData{}, errors.Wrapf(err, "provider returned malformed series for %s", symbol)
		}

		volumes := make([]float64, len(chart.TotalVolumes))
		for i, pair := range chart.TotalVolumes {
			volumes[i] = pair[1]
		}
		return seriesData{prices: series, volumes: volumes}, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return data.prices, data.volumes, nil
}

func (p *GeckoPricer) getJSON(ctx context.Context, endpoint string, out any) error {
	return p.retrier.Do(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return errors.Wrap(err, "build request")
		}
		req.Header.Set("Accept", "application/json")

		resp, err := p.httpClient.Do(req)
		if err != nil {
			return errors.Wrap(err, "send request")
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return errors.Wrap(err, "read response")
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("provider returned status %d: %s", resp.StatusCode, string(body))
		}

		return errors.Wrap(json.Unmarshal(body, out), "decode response")
	})
}
