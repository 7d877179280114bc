package capability

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/madadgar-ai/madadgar/internal/logging"
	"github.com/madadgar-ai/madadgar/internal/tool"
)

const zenQuotesURL = "https://zenquotes.io/api/quotes"

// maxQuotes is how many quotes one invocation returns.
const maxQuotes = 3

// Quotes fetches motivational quotes from ZenQuotes.
type Quotes struct {
	baseURL string
	client  *http.Client
	log     *logging.Logger
}

// NewQuotes creates the motivation capability.
func NewQuotes(log *logging.Logger) *Quotes {
	return &Quotes{
		baseURL: zenQuotesURL,
		client:  newHTTPClient(),
		log:     log.Sub("capability.quotes"),
	}
}

// Spec returns the tool contract for the coordinator.
func (q *Quotes) Spec() *tool.Spec {
	return &tool.Spec{
		Name:        "get_motivation",
		Description: "Get a few motivational quotes to inspire or encourage the user.",
		Params:      nil,
		Handler:     q.invoke,
	}
}

type zenQuote struct {
	Quote  string `json:"q"`
	Author string `json:"a"`
}

func (q *Quotes) invoke(ctx context.Context, _ tool.Args) tool.Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, q.baseURL, nil)
	if err != nil {
		return tool.Fail("An error occurred while fetching quotes.", err)
	}

	resp, err := q.client.Do(req)
	if err != nil {
		return tool.Fail("An error occurred while fetching quotes.", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return tool.Failf("Failed to fetch quotes. Status code: %d", resp.StatusCode)
	}

	var quotes []zenQuote
	if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil {
		return tool.Fail("An error occurred while fetching quotes.", err)
	}
	if len(quotes) == 0 {
		return tool.OK("No quotes found.")
	}
	if len(quotes) > maxQuotes {
		quotes = quotes[:maxQuotes]
	}

	formatted := make([]string, 0, len(quotes))
	for _, quote := range quotes {
		author := quote.Author
		if author == "" {
			author = "Unknown"
		}
		formatted = append(formatted, fmt.Sprintf("Quote: \"%s\"\nAuthor: %s", quote.Quote, author))
	}
	return tool.OK(strings.Join(formatted, "\n\n---\n\n"))
}
