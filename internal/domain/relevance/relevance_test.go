package relevance

import (
	"testing"
	"time"

	"github.com/greenbasket/catalogd/internal/domain/product"
)

func hitProduct(id string, createdAt time.Time) product.Summary {
	return product.New(id, "p-"+id, "p-"+id, "cat", "",
		1, 0, nil, 0, 0, 0, 0, true, false, nil, nil, nil, createdAt)
}

func TestWeights_DescendingOrder(t *testing.T) {
	ws := Weights()
	if len(ws) != 6 {
		t.Fatalf("len = %d, want 6", len(ws))
	}
	for i := 1; i < len(ws); i++ {
		if ws[i].Weight > ws[i-1].Weight {
			t.Errorf("weights not descending at %d: %v", i, ws)
		}
	}
	if ws[0].Field != FieldName || ws[0].Weight != 10 {
		t.Errorf("heaviest field = %+v, want name/10", ws[0])
	}
}

func TestWeights_CopyIsIsolated(t *testing.T) {
	ws := Weights()
	ws[0].Weight = 999
	if weightOf(FieldName) != 10 {
		t.Error("mutating the returned slice changed the policy")
	}
}

func TestWeightOf(t *testing.T) {
	tests := []struct {
		field string
		want  float64
	}{
		{FieldName, 10},
		{FieldKeywords, 8},
		{FieldTags, 5},
		{FieldIngredients, 3},
		{FieldShortDesc, 3},
		{FieldDetailedDesc, 1},
		{"unknown", 0},
	}
	for _, tt := range tests {
		if got := weightOf(tt.field); got != tt.want {
			t.Errorf("weightOf(%q) = %f, want %f", tt.field, got, tt.want)
		}
	}
}

func TestOrder_ScoreDescending(t *testing.T) {
	now := time.Unix(1700000000, 0)
	hits := []Hit{
		{Product: hitProduct("low", now), Score: 1},
		{Product: hitProduct("high", now), Score: 9},
		{Product: hitProduct("mid", now), Score: 5},
	}
	Order(hits)
	want := []string{"high", "mid", "low"}
	for i, id := range want {
		if hits[i].Product.ID() != id {
			t.Errorf("position %d = %s, want %s", i, hits[i].Product.ID(), id)
		}
	}
}

func TestOrder_TieBreaks(t *testing.T) {
	older := time.Unix(1600000000, 0)
	newer := time.Unix(1700000000, 0)
	hits := []Hit{
		{Product: hitProduct("b", newer), Score: 5},
		{Product: hitProduct("old", older), Score: 5},
		{Product: hitProduct("a", newer), Score: 5},
	}
	Order(hits)
	// Equal scores: newer first, then id ascending.
	want := []string{"a", "b", "old"}
	for i, id := range want {
		if hits[i].Product.ID() != id {
			t.Errorf("position %d = %s, want %s", i, hits[i].Product.ID(), id)
		}
	}
}

func TestOrder_DropsNothing(t *testing.T) {
	hits := []Hit{
		{Product: hitProduct("a", time.Unix(0, 0)), Score: 0},
		{Product: hitProduct("b", time.Unix(0, 0)), Score: -1},
	}
	Order(hits)
	if len(hits) != 2 {
		t.Errorf("len = %d, want 2", len(hits))
	}
}
