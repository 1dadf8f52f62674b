package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"prospekt-backend/internal/models"

	"github.com/go-resty/resty/v2"
)

// Candidate is one product extracted from a prospekt image, already validated
// at this boundary: Name is non-empty and Price is a parsed, non-negative
// number. Nothing malformed gets past this package into the catalog.
type Candidate struct {
	Name          string
	Price         float64
	OriginalPrice *float64
	Unit          *string
	PricePerUnit  *string
	Category      string
}

// Client talks to an OpenAI-compatible chat-completions endpoint with vision
// support to read product offers out of prospekt page images.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	client  *resty.Client
}

func New(apiKey, baseURL, model string) *Client {
	client := resty.New()
	client.SetTimeout(60 * time.Second)

	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  client,
	}
}

func systemPrompt() string {
	return fmt.Sprintf(`Du bist ein Experte für die Extraktion von Produktinformationen aus deutschen Supermarkt-Prospekten.
Extrahiere alle Produkte mit folgenden Informationen im JSON-Format:
- name: Produktname
- price: Preis als Zahl (nur der Aktionspreis)
- original_price: Originalpreis falls vorhanden (als Zahl)
- unit: Einheit (z.B. "kg", "Stück", "Packung", "Liter")
- price_per_unit: Preis pro Einheit falls angegeben
- category: Eine der folgenden Kategorien: %s

Antworte NUR mit einem JSON-Array der Produkte, keine zusätzlichen Erklärungen.`,
		`"`+strings.Join(models.Categories, `", "`)+`"`)
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Extract sends the image to the model and returns the validated candidates.
// Callers treat any error as "no products"; ingestion never crashes a request.
func (c *Client) Extract(ctx context.Context, imageBase64, supermarketName string) ([]Candidate, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("extractor API key not configured")
	}

	body := chatRequest{
		Model:     c.model,
		MaxTokens: 4096,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt()},
			{Role: "user", Content: []map[string]any{
				{"type": "text", "text": fmt.Sprintf("Extrahiere alle Produkte und Preise aus diesem %s Prospekt-Bild. Antworte nur mit dem JSON-Array.", supermarketName)},
				{"type": "image_url", "image_url": map[string]string{"url": "data:image/jpeg;base64," + imageBase64}},
			}},
		},
	}

	var parsed chatResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&parsed).
		Post(c.baseURL + "/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("extraction request: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("extraction request: status %d", resp.StatusCode())
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("extraction request: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("extraction request: empty response")
	}

	return ParseCandidates(parsed.Choices[0].Message.Content), nil
}

var jsonArrayRe = regexp.MustCompile(`(?s)\[.*\]`)

type rawCandidate struct {
	Name          string  `json:"name"`
	Price         any     `json:"price"`
	OriginalPrice any     `json:"original_price"`
	Unit          *string `json:"unit"`
	PricePerUnit  *string `json:"price_per_unit"`
	Category      string  `json:"category"`
}

// ParseCandidates recovers the first JSON array from the model's reply and
// validates each entry. Candidates with a missing name or a price that is not
// a non-negative number are dropped, not laundered into the catalog.
func ParseCandidates(content string) []Candidate {
	match := jsonArrayRe.FindString(content)
	if match == "" {
		return nil
	}

	var raw []rawCandidate
	if err := json.Unmarshal([]byte(match), &raw); err != nil {
		log.Printf("[Extract] Failed to parse model output: %v", err)
		return nil
	}

	candidates := make([]Candidate, 0, len(raw))
	for _, r := range raw {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			continue
		}
		price, ok := parsePrice(r.Price)
		if !ok || price < 0 {
			log.Printf("[Extract] Rejecting %q: invalid price %v", name, r.Price)
			continue
		}
		cand := Candidate{
			Name:         name,
			Price:        price,
			Unit:         r.Unit,
			PricePerUnit: r.PricePerUnit,
			Category:     validCategory(r.Category),
		}
		if op, ok := parsePrice(r.OriginalPrice); ok && op >= 0 {
			cand.OriginalPrice = &op
		}
		candidates = append(candidates, cand)
	}
	return candidates
}

// parsePrice accepts numbers and numeric strings; German prospekts write
// decimals with a comma.
func parsePrice(v any) (float64, bool) {
	switch p := v.(type) {
	case float64:
		return p, true
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(p, ",", "."))
		s = strings.TrimSuffix(s, "€")
		s = strings.TrimSpace(s)
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func validCategory(c string) string {
	for _, known := range models.Categories {
		if c == known {
			return c
		}
	}
	return "Sonstiges"
}
