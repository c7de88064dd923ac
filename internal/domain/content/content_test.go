package content

import "testing"

func TestName_LanguageFallback(t *testing.T) {
	topic := New("eyes", map[string]string{"en": "Eye Health", "ka": "თვალები"},
		1, true, nil, nil, nil, nil)

	if got := topic.Name("ka"); got != "თვალები" {
		t.Errorf("Name(ka) = %q", got)
	}
	if got := topic.Name("fr"); got != "Eye Health" {
		t.Errorf("Name(fr) = %q, want english fallback", got)
	}
}

func TestName_AnyTranslationFallback(t *testing.T) {
	topic := New("eyes", map[string]string{"ka": "თვალები"}, 1, true, nil, nil, nil, nil)
	if got := topic.Name("fr"); got != "თვალები" {
		t.Errorf("Name(fr) = %q, want the single available translation", got)
	}
}

func TestName_FallbackIsDeterministic(t *testing.T) {
	// No requested or default language: the smallest language code wins,
	// regardless of map iteration order.
	topic := New("eyes", map[string]string{"ru": "Глаза", "ka": "თვალები", "de": "Augen"},
		1, true, nil, nil, nil, nil)
	for i := 0; i < 20; i++ {
		if got := topic.Name("fr"); got != "Augen" {
			t.Fatalf("Name(fr) = %q, want the de translation every call", got)
		}
	}
}

func TestName_CodeFallback(t *testing.T) {
	topic := New("eyes", nil, 1, true, nil, nil, nil, nil)
	if got := topic.Name("en"); got != "eyes" {
		t.Errorf("Name(en) = %q, want code fallback", got)
	}
}

func TestTopic_Getters(t *testing.T) {
	topic := New("sleep", map[string]string{"en": "Sleep"}, 3, false,
		[]string{"p1", "p2"},
		[]Bundle{{Name: "Night kit", ProductIDs: []string{"p1"}, Discount: 10, Benefit: "rest"}},
		[]Tip{{Title: "Wind down", Body: "No screens late.", Category: "habit"}},
		[]Fact{{Text: "Adults need 7-9 hours.", Source: "NIH"}},
	)
	if topic.Code() != "sleep" || topic.DisplayOrder() != 3 || topic.Active() {
		t.Errorf("header getters: %q %d %v", topic.Code(), topic.DisplayOrder(), topic.Active())
	}
	if len(topic.ProductIDs()) != 2 || topic.ProductIDs()[0] != "p1" {
		t.Errorf("ProductIDs() = %v", topic.ProductIDs())
	}
	if len(topic.Bundles()) != 1 || topic.Bundles()[0].Discount != 10 {
		t.Errorf("Bundles() = %v", topic.Bundles())
	}
	if len(topic.Tips()) != 1 || topic.Tips()[0].Category != "habit" {
		t.Errorf("Tips() = %v", topic.Tips())
	}
	if len(topic.Facts()) != 1 || topic.Facts()[0].Source != "NIH" {
		t.Errorf("Facts() = %v", topic.Facts())
	}
}
