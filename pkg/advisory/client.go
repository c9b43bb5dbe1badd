package advisory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// FallbackMessage is shown when the advisory service cannot be reached.
// Advisory failures never block saving or printing an invoice.
const FallbackMessage = "Unable to check interactions. Please verify API Key is configured."

// Result is the outcome of an advisory request. It is a value, not an
// error: an unreachable advisory service is a degraded answer, not a
// failure of the invoicing flow.
type Result struct {
	Text        string `json:"text,omitempty"`
	Unavailable bool   `json:"unavailable"`
	Reason      string `json:"reason,omitempty"`
}

// OK wraps advisory text in a successful Result.
func OK(text string) Result {
	return Result{Text: text}
}

// Unavailable wraps a failure reason in a degraded Result.
func Unavailable(reason string) Result {
	return Result{Unavailable: true, Reason: reason}
}

// Config holds the advisory client settings.
type Config struct {
	APIKey   string
	Model    string
	Endpoint string
}

// Client calls an external text-generation API to screen a medicine
// list for drug interactions.
type Client struct {
	cfg  Config
	http *retryablehttp.Client
}

// NewClient creates an advisory client. Requests are not retried: the
// caller treats any failure as a degraded answer and moves on.
func NewClient(cfg Config) *Client {
	hc := retryablehttp.NewClient()
	hc.RetryMax = 0
	hc.Logger = nil
	hc.HTTPClient.Timeout = 15 * time.Second
	return &Client{cfg: cfg, http: hc}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// CheckInteractions asks the advisory model to screen the given
// medicine names. Fewer than two names returns guidance text rather
// than calling out.
func (c *Client) CheckInteractions(ctx context.Context, medicineNames []string) Result {
	if len(medicineNames) < 2 {
		return OK("Add at least two medicines to check for interactions.")
	}

	prompt := fmt.Sprintf(
		"Analyze the following list of medicines for potential drug interactions or contraindications: %s.\n\n"+
			"Return a concise summary (max 3 sentences) suitable for a pharmacist to review quickly. "+
			"If there are no major interactions, state that clearly. Focus on safety.",
		strings.Join(medicineNames, ", "),
	)

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return Unavailable(FallbackMessage)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.cfg.Endpoint, c.cfg.Model, c.cfg.APIKey)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Unavailable(FallbackMessage)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("Advisory API error: %v", err)
		return Unavailable(FallbackMessage)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Advisory API returned status %d", resp.StatusCode)
		return Unavailable(FallbackMessage)
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Unavailable(FallbackMessage)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return OK("No analysis returned.")
	}
	return OK(parsed.Candidates[0].Content.Parts[0].Text)
}
