package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/where2buy/backend/internal/domain"
)

// fenceReplacer strips markdown code fences the model adds despite instructions
var fenceReplacer = strings.NewReplacer("```json", "", "```", "")

// Extractor turns free text into categorised shopping items via a generative-text model
type Extractor struct {
	generator domain.TextGenerator
}

// NewExtractor creates a new extractor
func NewExtractor(generator domain.TextGenerator) *Extractor {
	return &Extractor{generator: generator}
}

// Extract returns the items found in text, in the order the model listed them.
func (e *Extractor) Extract(ctx context.Context, text string) ([]domain.ExtractedItem, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is required", domain.ErrValidation)
	}

	raw, err := e.generator.Generate(ctx, buildExtractionPrompt(text))
	if err != nil {
		return nil, err
	}

	items, err := parseExtraction(raw)
	if err != nil {
		slog.ErrorContext(ctx, "[EXTRACT] failed to use model output", "error", err, "raw", raw)
		return nil, err
	}

	slog.InfoContext(ctx, "[EXTRACT] items extracted", "count", len(items))
	return items, nil
}

func buildExtractionPrompt(text string) string {
	names := make([]string, len(domain.Categories))
	for i, c := range domain.Categories {
		names[i] = string(c)
	}

	return fmt.Sprintf(`Extract individual shopping items from this list: %q.
For each item, return an object with:
  "query": the item name as a short product search phrase
  "category": exactly one of %s
Return ONLY a JSON array of these objects, for example [{"query":"Milk","category":"grocery"}].
Do not wrap the output in markdown or add any other text.`, text, strings.Join(names, ", "))
}

// rawItem holds the fields read from one array element
type rawItem struct {
	Query    string `json:"query"`
	Category string `json:"category"`
}

// parseExtraction cleans and decodes the model's text into items
func parseExtraction(raw string) ([]domain.ExtractedItem, error) {
	cleaned := strings.TrimSpace(fenceReplacer.Replace(raw))
	if cleaned == "" {
		cleaned = "[]"
	}

	var decoded any
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}

	elems, ok := decoded.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: model output is not an array", domain.ErrNoItems)
	}

	items := make([]domain.ExtractedItem, 0, len(elems))
	for _, elem := range elems {
		item, ok := sanitizeItem(elem)
		if !ok {
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, domain.ErrNoItems
	}
	return items, nil
}

// sanitizeItem converts one array element into an item.
// Bare strings are accepted as uncategorised items.
func sanitizeItem(elem any) (domain.ExtractedItem, bool) {
	var ri rawItem
	switch v := elem.(type) {
	case string:
		ri.Query = v
	case map[string]any:
		if q, ok := v["query"].(string); ok {
			ri.Query = q
		}
		if c, ok := v["category"].(string); ok {
			ri.Category = c
		}
	default:
		return domain.ExtractedItem{}, false
	}

	query := CleanQuery(ri.Query)
	if query == "" {
		return domain.ExtractedItem{}, false
	}

	return domain.ExtractedItem{
		Query:    query,
		Category: domain.ParseCategory(ri.Category),
	}, true
}
