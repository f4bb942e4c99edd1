// Package config loads engine configuration from a YAML file or CLI flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/coinpulse/coinpulse/internal/domain"
)

const (
	defaultRefreshInterval = 5 * time.Minute
	defaultSeriesDays      = 30
	defaultProviderBaseURL = "https://api.coingecko.com"
	defaultListenAddr      = ":8080"
)

// Config engine configuration.
type Config struct {
	Holdings        domain.Holdings
	RefreshInterval time.Duration
	SeriesDays      int
	ProviderBaseURL string
	ListenAddr      string
	SnapshotDir     string
	Simulate        bool
	LLMAPIURL       string
	LLMModel        string
	// LLMAPIKey is read from the LLM_API_KEY environment variable, never
	// from the config file.
	LLMAPIKey string
}

type holdingTmp struct {
	Symbol        string `yaml:"symbol"`
	Quantity      string `yaml:"quantity"`
	PurchasePrice string `yaml:"purchase_price,omitempty"`
}

type configTmp struct {
	Holdings        []holdingTmp  `yaml:"holdings"`
	RefreshInterval time.Duration `yaml:"refresh_interval,omitempty"`
	SeriesDays      int           `yaml:"series_days,omitempty"`
	ProviderBaseURL string        `yaml:"provider_base_url,omitempty"`
	ListenAddr      string        `yaml:"listen_addr,omitempty"`
	SnapshotDir     string        `yaml:"snapshot_dir,omitempty"`
	Simulate        bool          `yaml:"simulate,omitempty"`
	LLMAPIURL       string        `yaml:"llm_api_url,omitempty"`
	LLMModel        string        `yaml:"llm_model,omitempty"`
}

// Get loads configuration from --config when provided, otherwise from CLI
// flags.
func Get() (Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	holdingsFlag := flag.String("holdings", "BTC:0.5", "comma-separated holdings, example: BTC:0.5,ETH:2")
	refreshFlag := flag.Duration("refreshinterval", defaultRefreshInterval, "price refresh interval")
	listenFlag := flag.String("listen", defaultListenAddr, "dashboard listen address")
	simulateFlag := flag.Bool("simulate", false, "use simulated price feed instead of the provider")
	flag.Parse()

	if *configPath != "" {
		return getYaml(*configPath)
	}

	holdings, err := ParseHoldings(*holdingsFlag)
	if err != nil {
		return Config{}, fmt.Errorf("invalid --holdings provided, --holdings=%s: %w", *holdingsFlag, err)
	}

	return Config{
		Holdings:        holdings,
		RefreshInterval: *refreshFlag,
		SeriesDays:      defaultSeriesDays,
		ProviderBaseURL: defaultProviderBaseURL,
		ListenAddr:      *listenFlag,
		Simulate:        *simulateFlag,
		LLMAPIKey:       os.Getenv("LLM_API_KEY"),
	}, nil
}

// ParseHoldings parses the compact SYMBOL:QUANTITY[,SYMBOL:QUANTITY...]
// flag format.
func ParseHoldings(raw string) (domain.Holdings, error) {
	var holdings domain.Holdings
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.SplitN(part, ":", 2)
		if len(fields) != 2 {
			return nil, fmt.Errorf("expected SYMBOL:QUANTITY, got %q", part)
		}
		quantity, err := decimal.NewFromString(fields[1])
		if err != nil {
			return nil, fmt.Errorf("invalid quantity in %q: %w", part, err)
		}
		if quantity.IsNegative() {
			return nil, fmt.Errorf("negative quantity in %q", part)
		}
		holdings = holdings.Add(domain.Holding{
			Symbol:   strings.ToUpper(fields[0]),
			Quantity: quantity,
		})
	}
	if len(holdings) == 0 {
		return nil, fmt.Errorf("no holdings provided")
	}
	return holdings, nil
}

func getYaml(path string) (Config, error) {
	var tmp configTmp

	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return Config{}, err
	}

	cfg := Config{
		RefreshInterval: tmp.RefreshInterval,
		SeriesDays:      tmp.SeriesDays,
		ProviderBaseURL: tmp.ProviderBaseURL,
		ListenAddr:      tmp.ListenAddr,
		SnapshotDir:     tmp.SnapshotDir,
		Simulate:        tmp.Simulate,
		LLMAPIURL:       tmp.LLMAPIURL,
		LLMModel:        tmp.LLMModel,
		LLMAPIKey:       os.Getenv("LLM_API_KEY"),
	}
	if cfg.RefreshInterval == 0 {
		cfg.RefreshInterval = defaultRefreshInterval
	}
	if cfg.SeriesDays == 0 {
		cfg.SeriesDays = defaultSeriesDays
	}
	if cfg.ProviderBaseURL == "" {
		cfg.ProviderBaseURL = defaultProviderBaseURL
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = defaultListenAddr
	}

	for _, h := range tmp.Holdings {
		quantity, err := decimal.NewFromString(h.Quantity)
		if err != nil {
			return Config{}, fmt.Errorf("incorrect 'quantity' param for %s in yaml config: %w", h.Symbol, err)
		}
		if quantity.IsNegative() {
			return Config{}, fmt.Errorf("negative 'quantity' param for %s in yaml config", h.Symbol)
		}

		purchasePrice := decimal.Zero
		if h.PurchasePrice != "" {
			purchasePrice, err = decimal.NewFromString(h.PurchasePrice)
			if err != nil {
				return Config{}, fmt.Errorf("incorrect 'purchase_price' param for %s in yaml config: %w", h.Symbol, err)
			}
		}

		cfg.Holdings = cfg.Holdings.Add(domain.Holding{
			Symbol:        strings.ToUpper(h.Symbol),
			Quantity:      quantity,
			PurchasePrice: purchasePrice,
		})
	}
	if len(cfg.Holdings) == 0 {
		return Config{}, fmt.Errorf("yaml config contains no holdings")
	}

	return cfg, nil
}
