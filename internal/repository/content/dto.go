package content

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/greenbasket/catalogd/internal/domain/content"
)

// JSON-serializable rows for the nested hash fields.

type bundleRow struct {
	Name       string   `json:"name"`
	ProductIDs []string `json:"product_ids"`
	Discount   float64  `json:"discount"`
	Benefit    string   `json:"benefit"`
}

type tipRow struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Category string `json:"category"`
}

type factRow struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// topicToHash converts a domain Topic to a map for HSET. Nested content
// goes into JSON-encoded fields; flat attributes stay plain.
func topicToHash(t content.Topic) (map[string]string, error) {
	namesJSON, err := json.Marshal(t.Names())
	if err != nil {
		return nil, fmt.Errorf("marshal names: %w", err)
	}

	bundles := make([]bundleRow, 0, len(t.Bundles()))
	for _, b := range t.Bundles() {
		bundles = append(bundles, bundleRow{
			Name: b.Name, ProductIDs: b.ProductIDs, Discount: b.Discount, Benefit: b.Benefit,
		})
	}
	bundlesJSON, err := json.Marshal(bundles)
	if err != nil {
		return nil, fmt.Errorf("marshal bundles: %w", err)
	}

	tips := make([]tipRow, 0, len(t.Tips()))
	for _, tip := range t.Tips() {
		tips = append(tips, tipRow{Title: tip.Title, Body: tip.Body, Category: tip.Category})
	}
	tipsJSON, err := json.Marshal(tips)
	if err != nil {
		return nil, fmt.Errorf("marshal tips: %w", err)
	}

	facts := make([]factRow, 0, len(t.Facts()))
	for _, f := range t.Facts() {
		facts = append(facts, factRow{Text: f.Text, Source: f.Source})
	}
	factsJSON, err := json.Marshal(facts)
	if err != nil {
		return nil, fmt.Errorf("marshal facts: %w", err)
	}

	return map[string]string{
		"code":          t.Code(),
		"names_json":    string(namesJSON),
		"display_order": strconv.Itoa(t.DisplayOrder()),
		"is_active":     formatFlag(t.Active()),
		"product_ids":   strings.Join(t.ProductIDs(), ","),
		"bundles_json":  string(bundlesJSON),
		"tips_json":     string(tipsJSON),
		"facts_json":    string(factsJSON),
	}, nil
}

// topicFromHash hydrates a domain Topic from an HGETALL result map.
func topicFromHash(m map[string]string) (content.Topic, error) {
	var names map[string]string
	if s := m["names_json"]; s != "" {
		if err := json.Unmarshal([]byte(s), &names); err != nil {
			return content.Topic{}, fmt.Errorf("unmarshal names: %w", err)
		}
	}

	var bundleRows []bundleRow
	if s := m["bundles_json"]; s != "" {
		if err := json.Unmarshal([]byte(s), &bundleRows); err != nil {
			return content.Topic{}, fmt.Errorf("unmarshal bundles: %w", err)
		}
	}
	bundles := make([]content.Bundle, 0, len(bundleRows))
	for _, b := range bundleRows {
		bundles = append(bundles, content.Bundle{
			Name: b.Name, ProductIDs: b.ProductIDs, Discount: b.Discount, Benefit: b.Benefit,
		})
	}

	var tipRows []tipRow
	if s := m["tips_json"]; s != "" {
		if err := json.Unmarshal([]byte(s), &tipRows); err != nil {
			return content.Topic{}, fmt.Errorf("unmarshal tips: %w", err)
		}
	}
	tips := make([]content.Tip, 0, len(tipRows))
	for _, t := range tipRows {
		tips = append(tips, content.Tip{Title: t.Title, Body: t.Body, Category: t.Category})
	}

	var factRows []factRow
	if s := m["facts_json"]; s != "" {
		if err := json.Unmarshal([]byte(s), &factRows); err != nil {
			return content.Topic{}, fmt.Errorf("unmarshal facts: %w", err)
		}
	}
	facts := make([]content.Fact, 0, len(factRows))
	for _, f := range factRows {
		facts = append(facts, content.Fact{Text: f.Text, Source: f.Source})
	}

	displayOrder, _ := strconv.Atoi(m["display_order"])

	var productIDs []string
	for _, id := range strings.Split(m["product_ids"], ",") {
		if id = strings.TrimSpace(id); id != "" {
			productIDs = append(productIDs, id)
		}
	}

	return content.New(
		m["code"], names, displayOrder, m["is_active"] == "1",
		productIDs, bundles, tips, facts,
	), nil
}

func formatFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
