package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

/************************************************
/**** MARK: EXA SEARCH MODES ****/
/************************************************/
const EXA_SEARCH_MODE_FAST = "fast"
const EXA_SEARCH_MODE_NEURAL = "neural"

// SearchResult é um item devolvido pela API do Exa, já no formato interno.
type SearchResult struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Author        string  `json:"author,omitempty"`
	Content       string  `json:"content,omitempty"`
	Score         float64 `json:"score,omitempty"`
	PublishedDate int64   `json:"published_date,omitempty"` // epoch millis
	Image         string  `json:"image,omitempty"`
	Favicon       string  `json:"favicon,omitempty"`
}

// ExaSearch calls the Exa search API and returns the normalized result list.
// Qualquer status não-2xx é erro duro: o chamador decide como degradar.
func ExaSearch(ctx context.Context, query, mode string, maxResults int) ([]SearchResult, error) {
	apiKey := strings.TrimSpace(os.Getenv("EXA_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("EXA_API_KEY not set")
	}
	baseURL := getenv("EXA_BASE_URL", "https://api.exa.ai")

	if mode != EXA_SEARCH_MODE_FAST && mode != EXA_SEARCH_MODE_NEURAL {
		mode = EXA_SEARCH_MODE_FAST
	}
	if maxResults <= 0 {
		maxResults = 4
	}

	reqBody := map[string]any{
		"query":      query,
		"type":       mode,
		"numResults": maxResults,
		"contents": map[string]any{
			"text": map[string]any{
				"includeHtmlTags": true,
			},
		},
	}

	b, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		baseURL+"/search",
		bytes.NewReader(b),
	)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", apiKey)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("exa error %d: %s", resp.StatusCode, string(body))
	}

	var parsed struct {
		Results []struct {
			ID            string  `json:"id"`
			Title         string  `json:"title"`
			URL           string  `json:"url"`
			Author        string  `json:"author"`
			Text          string  `json:"text"`
			Score         float64 `json:"score"`
			PublishedDate int64   `json:"publishedDate"`
			Image         string  `json:"image"`
			Favicon       string  `json:"favicon"`
		} `json:"results"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(parsed.Results))
	for i, item := range parsed.Results {
		id := item.ID
		if id == "" {
			id = fmt.Sprintf("%d", i)
		}
		title := item.Title
		if title == "" {
			title = "Untitled"
		}
		results = append(results, SearchResult{
			ID:            id,
			Title:         title,
			URL:           item.URL,
			Author:        item.Author,
			Content:       item.Text,
			Score:         item.Score,
			PublishedDate: item.PublishedDate,
			Image:         item.Image,
			Favicon:       item.Favicon,
		})
	}

	return results, nil
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
