package bottles

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	spoonacularDefaultBaseURL = "https://api.spoonacular.com"
	spoonacularDefaultTimeout = 5 * time.Second
	spoonacularMaxResults     = 3
)

// SpoonacularConfig holds configuration for the Spoonacular wine API.
type SpoonacularConfig struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client // Optional (tests)
}

// SpoonacularClient queries the Spoonacular wine recommendation endpoint.
type SpoonacularClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

type spoonacularResponse struct {
	RecommendedWines []struct {
		Title         string  `json:"title"`
		Description   string  `json:"description"`
		Price         string  `json:"price"`
		AverageRating float64 `json:"averageRating"`
		ImageURL      string  `json:"imageUrl"`
		Link          string  `json:"link"`
	} `json:"recommendedWines"`
	TotalFound int `json:"totalFound"`
}

// NewSpoonacularClient creates a client. A client without an API key answers
// every query with an empty result.
func NewSpoonacularClient(cfg SpoonacularConfig) *SpoonacularClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = spoonacularDefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = spoonacularDefaultTimeout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &SpoonacularClient{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  cfg.HTTPClient,
	}
}

// Enabled reports whether an API key is configured.
func (c *SpoonacularClient) Enabled() bool {
	return c.apiKey != ""
}

// Recommend returns up to three bottles of varietal priced at or below maxPrice.
func (c *SpoonacularClient) Recommend(ctx context.Context, varietal string, maxPrice int) ([]Suggestion, error) {
	if !c.Enabled() {
		return nil, nil
	}

	params := url.Values{}
	params.Set("wine", strings.ToLower(varietal))
	params.Set("maxPrice", strconv.Itoa(maxPrice))
	params.Set("number", strconv.Itoa(spoonacularMaxResults))
	params.Set("apiKey", c.apiKey)
	endpoint := c.baseURL + "/food/wine/recommendation?" + params.Encode()

	var body []byte
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("failed to create request: %w", err))
			}
			resp, err := c.client.Do(req)
			if err != nil {
				return fmt.Errorf("spoonacular request failed: %w", err)
			}
			defer resp.Body.Close()

			data, err := io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("failed to read response: %w", err)
			}
			if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
				return fmt.Errorf("spoonacular error (status %d)", resp.StatusCode)
			}
			if resp.StatusCode != http.StatusOK {
				return retry.Unrecoverable(fmt.Errorf("spoonacular error (status %d): %s", resp.StatusCode, string(data)))
			}
			body = data
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(2),
		retry.Delay(200*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}

	var parsed spoonacularResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	wines := parsed.RecommendedWines
	if len(wines) > spoonacularMaxResults {
		wines = wines[:spoonacularMaxResults]
	}
	out := make([]Suggestion, 0, len(wines))
	for _, w := range wines {
		name := w.Title
		if name == "" {
			name = "Unknown"
		}
		price := w.Price
		if price == "" {
			price = "N/A"
		}
		out = append(out, Suggestion{
			Name:        name,
			Price:       price,
			Description: w.Description,
			Rating:      normalizeRating(w.AverageRating),
			ImageURL:    w.ImageURL,
			Link:        w.Link,
		})
	}
	return out, nil
}

// normalizeRating maps Spoonacular's 0-1 average rating onto the 0-5 scale.
func normalizeRating(r float64) float64 {
	switch {
	case r <= 0:
		return 0
	case r <= 1:
		return float64(int(r*50+0.5)) / 10
	case r > 5:
		return 5
	default:
		return r
	}
}
