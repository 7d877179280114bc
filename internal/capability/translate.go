package capability

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/madadgar-ai/madadgar/internal/logging"
	"github.com/madadgar-ai/madadgar/internal/tool"
)

const translateURL = "https://translate.googleapis.com/translate_a/single"

// Translator translates text via the public Google Translate endpoint.
// The source language is auto-detected; the target defaults to Urdu.
type Translator struct {
	baseURL string
	client  *http.Client
	log     *logging.Logger
}

// NewTranslator creates the translation capability.
func NewTranslator(log *logging.Logger) *Translator {
	return &Translator{
		baseURL: translateURL,
		client:  newHTTPClient(),
		log:     log.Sub("capability.translate"),
	}
}

// Spec returns the tool contract for the coordinator.
func (t *Translator) Spec() *tool.Spec {
	return &tool.Spec{
		Name:        "translate_text",
		Description: "Translate text into a target language. The source language is detected automatically.",
		Params: []tool.Param{
			{Name: "text", Type: tool.TypeString, Description: "The text to translate", Required: true},
			{Name: "target_language", Type: tool.TypeString, Description: "ISO language code of the target language, e.g. 'es' or 'ur'", Default: "ur"},
		},
		Handler: t.invoke,
	}
}

func (t *Translator) invoke(ctx context.Context, args tool.Args) tool.Result {
	text := args.String("text")
	target := args.String("target_language")

	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", "auto")
	q.Set("tl", target)
	q.Set("dt", "t")
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return tool.Fail("Translation failed. Please try again.", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return tool.Fail("Translation failed. Please try again.", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return tool.Failf("Translation failed. Status code: %d", resp.StatusCode)
	}

	translated, err := parseTranslation(resp.Body)
	if err != nil {
		return tool.Fail("Translation failed. The translation service returned an unexpected response.", err)
	}

	payload := fmt.Sprintf("Original: %s\nTranslation: %s", text, translated)
	return tool.OK(payload)
}

// parseTranslation decodes the gtx response shape: a nested array whose
// first element lists translated segments, each segment an array whose
// first item is the translated text.
func parseTranslation(body io.Reader) (string, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return "", err
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("empty translation response")
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(raw[0], &segments); err != nil {
		return "", err
	}

	var b strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		var part string
		if err := json.Unmarshal(seg[0], &part); err != nil {
			continue
		}
		b.WriteString(part)
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("no translated segments in response")
	}
	return b.String(), nil
}
