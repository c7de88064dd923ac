package content

// DefaultLanguage is the fallback when a translation is missing.
const DefaultLanguage = "en"

// Bundle is a curated product set attached to a topic.
type Bundle struct {
	Name       string
	ProductIDs []string
	Discount   float64
	Benefit    string
}

// Tip is a short health tip attached to a topic.
type Tip struct {
	Title    string
	Body     string
	Category string
}

// Fact is a "did you know" snippet attached to a topic.
type Fact struct {
	Text   string
	Source string
}

// Topic is externally curated supplementary content keyed by a body-part /
// topic code: base product recommendations plus bundles, tips, and facts.
type Topic struct {
	code         string
	names        map[string]string // language code -> display name
	displayOrder int
	active       bool
	productIDs   []string
	bundles      []Bundle
	tips         []Tip
	facts        []Fact
}

// New creates a topic.
func New(
	code string, names map[string]string, displayOrder int, active bool,
	productIDs []string, bundles []Bundle, tips []Tip, facts []Fact,
) Topic {
	return Topic{
		code: code, names: names, displayOrder: displayOrder, active: active,
		productIDs: productIDs, bundles: bundles, tips: tips, facts: facts,
	}
}

// Code returns the topic code.
func (t *Topic) Code() string { return t.code }

// Name returns the display name for a language, falling back to the
// default language, then to the translation with the lexicographically
// smallest language code so the pick is stable across calls.
func (t *Topic) Name(lang string) string {
	if n, ok := t.names[lang]; ok {
		return n
	}
	if n, ok := t.names[DefaultLanguage]; ok {
		return n
	}
	first := ""
	for l := range t.names {
		if first == "" || l < first {
			first = l
		}
	}
	if first != "" {
		return t.names[first]
	}
	return t.code
}

// Names returns all display-name translations keyed by language code.
func (t *Topic) Names() map[string]string { return t.names }

// DisplayOrder returns the position in topic listings.
func (t *Topic) DisplayOrder() int { return t.displayOrder }

// Active reports whether the topic is visible.
func (t *Topic) Active() bool { return t.active }

// ProductIDs returns the base recommended product ids, in curated order.
func (t *Topic) ProductIDs() []string { return t.productIDs }

// Bundles returns the topic's bundles.
func (t *Topic) Bundles() []Bundle { return t.bundles }

// Tips returns the topic's health tips.
func (t *Topic) Tips() []Tip { return t.tips }

// Facts returns the topic's facts.
func (t *Topic) Facts() []Fact { return t.facts }
