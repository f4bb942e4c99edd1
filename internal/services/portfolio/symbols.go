package portfolio

import "strings"

// canonicalIDs maps ticker symbols to the provider's canonical asset ids.
var canonicalIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"USDT":  "tether",
	"USDC":  "usd-coin",
	"BNB":   "binancecoin",
	"SOL":   "solana",
	"XRP":   "ripple",
	"ADA":   "cardano",
	"DOGE":  "dogecoin",
	"DOT":   "polkadot",
	"MATIC": "matic-network",
	"AVAX":  "avalanche-2",
	"LINK":  "chainlink",
	"LTC":   "litecoin",
	"UNI":   "uniswap",
	"ATOM":  "cosmos",
	"XLM":   "stellar",
	"TRX":   "tron",
}

// CanonicalID resolves a ticker symbol to the provider asset id. Unknown
// symbols fall back to the lowercased ticker; the provider rejects ids it
// does not know, so no error is raised here.
func CanonicalID(symbol string) string {
	if id, ok := canonicalIDs[strings.ToUpper(symbol)]; ok {
		return id
	}
	return strings.ToLower(symbol)
}
