// Package capability implements the assistant's tools: weather, email,
// news, translation, crypto prices, health info, and motivational
// quotes. Every handler follows the same contract — validate arguments,
// make exactly one upstream call, classify failures into user-facing
// messages, and format success payloads with a fixed field order.
package capability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/madadgar-ai/madadgar/internal/config"
	"github.com/madadgar-ai/madadgar/internal/logging"
	"github.com/madadgar-ai/madadgar/internal/tool"
)

// RegisterAll constructs every capability from the process config and
// registers it. Called once at startup; a duplicate name is a
// programming error and is returned as-is.
func RegisterAll(reg *tool.Registry, cfg *config.Config, log *logging.Logger) error {
	specs := []*tool.Spec{
		NewWeather(cfg.Weather, log).Spec(),
		NewEmail(cfg.Email, log).Spec(),
		NewNews(cfg.News, log).Spec(),
		NewTranslator(log).Spec(),
		NewCrypto(log).Spec(),
		NewHealth(log).Spec(),
		NewQuotes(log).Spec(),
	}
	for _, s := range specs {
		if err := reg.Register(s); err != nil {
			return err
		}
	}
	return nil
}

// newHTTPClient is the shared client constructor for upstream calls.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 15 * time.Second}
}

// formatNumber renders a float without a trailing ".0": 18 stays "18",
// 3.1 stays "3.1". Payload formatting depends on this.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
