package capability

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/madadgar-ai/madadgar/internal/config"
	"github.com/madadgar-ai/madadgar/internal/logging"
	"github.com/madadgar-ai/madadgar/internal/tool"
)

const newsDataURL = "https://newsdata.io/api/1/latest"

// maxArticles caps how many articles one invocation returns. Upstream
// ordering (relevance/recency) is preserved.
const maxArticles = 5

// News fetches latest headlines from NewsData.io.
type News struct {
	apiKey  string
	baseURL string
	client  *http.Client
	log     *logging.Logger
}

// NewNews creates the news capability.
func NewNews(cfg config.NewsConfig, log *logging.Logger) *News {
	return &News{
		apiKey:  cfg.APIKey,
		baseURL: newsDataURL,
		client:  newHTTPClient(),
		log:     log.Sub("capability.news"),
	}
}

// Spec returns the tool contract for the coordinator.
func (n *News) Spec() *tool.Spec {
	return &tool.Spec{
		Name:        "news",
		Description: "Get the latest news articles, optionally filtered by a search query or a category such as 'technology' or 'sports'.",
		Params: []tool.Param{
			{Name: "query", Type: tool.TypeString, Description: "Search query for specific topics"},
			{Name: "category", Type: tool.TypeString, Description: "News category filter"},
		},
		Handler: n.invoke,
	}
}

type newsDataResponse struct {
	Results []newsArticle `json:"results"`
}

type newsArticle struct {
	Title       string `json:"title"`
	SourceID    string `json:"source_id"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

func (n *News) invoke(ctx context.Context, args tool.Args) tool.Result {
	if n.apiKey == "" {
		return tool.Failf("News service is not configured. Please check the NEWS_API_KEY environment variable.")
	}

	q := url.Values{}
	q.Set("apikey", n.apiKey)
	q.Set("language", "en")
	if v := args.String("query"); v != "" {
		q.Set("q", v)
	}
	if v := args.String("category"); v != "" {
		q.Set("category", v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return tool.Fail("An error occurred while fetching news.", err)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return tool.Fail("An error occurred while fetching news.", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return tool.Failf("News service authentication failed. Please check the API key.")
	default:
		return tool.Failf("Failed to fetch news. Status code: %d", resp.StatusCode)
	}

	var data newsDataResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return tool.Fail("An error occurred while fetching news.", err)
	}

	if len(data.Results) == 0 {
		return tool.OK("No news articles found for the given criteria.")
	}

	articles := data.Results
	if len(articles) > maxArticles {
		articles = articles[:maxArticles]
	}

	var b strings.Builder
	b.WriteString("Here are the latest news articles:\n\n")
	for i, a := range articles {
		description := a.Description
		if description == "" {
			description = "No description available"
		}
		link := a.Link
		if link == "" {
			link = "No link available"
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, a.Title)
		fmt.Fprintf(&b, "   Source: %s\n", a.SourceID)
		fmt.Fprintf(&b, "   Description: %s\n", description)
		fmt.Fprintf(&b, "   Link: %s\n\n", link)
	}
	return tool.OK(b.String())
}
