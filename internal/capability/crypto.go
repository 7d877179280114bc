package capability

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/madadgar-ai/madadgar/internal/logging"
	"github.com/madadgar-ai/madadgar/internal/tool"
)

const coinGeckoURL = "https://api.coingecko.com/api/v3/simple/price"

// cryptoAliases maps common ticker symbols to CoinGecko IDs.
var cryptoAliases = map[string]string{
	"btc": "bitcoin",
	"eth": "ethereum",
	"sol": "solana",
}

// Crypto fetches current cryptocurrency prices from CoinGecko.
type Crypto struct {
	baseURL string
	client  *http.Client
	log     *logging.Logger
}

// NewCrypto creates the crypto price capability.
func NewCrypto(log *logging.Logger) *Crypto {
	return &Crypto{
		baseURL: coinGeckoURL,
		client:  newHTTPClient(),
		log:     log.Sub("capability.crypto"),
	}
}

// Spec returns the tool contract for the coordinator.
func (c *Crypto) Spec() *tool.Spec {
	return &tool.Spec{
		Name:        "crypto_price",
		Description: "Get the current price of a cryptocurrency in USD, GBP and EUR, with the 24h change.",
		Params: []tool.Param{
			{Name: "crypto", Type: tool.TypeString, Description: "Cryptocurrency name or symbol, e.g. 'bitcoin' or 'btc'", Default: "bitcoin"},
		},
		Handler: c.invoke,
	}
}

func (c *Crypto) invoke(ctx context.Context, args tool.Args) tool.Result {
	name := strings.ToLower(args.String("crypto"))
	id := name
	if mapped, ok := cryptoAliases[name]; ok {
		id = mapped
	}

	q := url.Values{}
	q.Set("ids", id)
	q.Set("vs_currencies", "usd,gbp,eur")
	q.Set("include_24hr_change", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return tool.Fail("An error occurred while fetching the cryptocurrency price.", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return tool.Fail("An error occurred while fetching the cryptocurrency price.", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return tool.Failf("Could not find cryptocurrency '%s'. Please check the name or symbol and try again.", name)
	default:
		return tool.Failf("Failed to get cryptocurrency price. Status code: %d", resp.StatusCode)
	}

	var data map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return tool.Fail("An error occurred while fetching the cryptocurrency price.", err)
	}

	prices, ok := data[id]
	if !ok {
		return tool.Failf("Could not find price data for %s. Please check the cryptocurrency name or symbol.", name)
	}

	payload := fmt.Sprintf("Current %s Prices:\n• USD: $%.2f\n• GBP: £%.2f\n• EUR: €%.2f\n24h Change: %+.2f%%",
		strings.ToUpper(id), prices["usd"], prices["gbp"], prices["eur"], prices["usd_24h_change"])
	return tool.OK(payload)
}
