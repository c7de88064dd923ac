package chi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/greenbasket/catalogd/internal/domain/catalog/page"
	"github.com/greenbasket/catalogd/internal/domain/content"
	"github.com/greenbasket/catalogd/internal/domain/product"
	"github.com/greenbasket/catalogd/internal/domain/profile"
	"github.com/greenbasket/catalogd/internal/domain/rank"
	recommenduc "github.com/greenbasket/catalogd/internal/usecase/recommend"
)

// errorCode identifies a machine-readable error class in responses.
type errorCode string

const (
	codeBadRequest       errorCode = "bad_request"
	codeUnauthorized     errorCode = "unauthorized"
	codeValidationFailed errorCode = "validation_failed"
	codeProductNotFound  errorCode = "product_not_found"
	codeNotFound         errorCode = "not_found"
	codeStoreUnavailable errorCode = "store_unavailable"
	codeInternalError    errorCode = "internal_error"
)

type errorDTO struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

type productDTO struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	Category    string         `json:"category"`
	CategorySub string         `json:"category_sub,omitempty"`
	Price       float64        `json:"price"`
	SalePrice   float64        `json:"sale_price,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Rating      float64        `json:"rating"`
	RatingCount int            `json:"rating_count"`
	Purchased   int            `json:"purchased"`
	Featured    bool           `json:"featured,omitempty"`
	HealthTags  []string       `json:"health_tags,omitempty"`
	DietaryTags []string       `json:"dietary_tags,omitempty"`
	AgeBracket  *ageBracketDTO `json:"age_bracket,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

type ageBracketDTO struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type productListDTO struct {
	Items []productDTO `json:"items"`
}

type pageDTO struct {
	Items      []productDTO `json:"items"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalItems int          `json:"total_items"`
	TotalPages int          `json:"total_pages"`
}

type profileDTO struct {
	Age                 *int     `json:"age,omitempty"`
	HealthConditions    []string `json:"health_conditions,omitempty"`
	DietaryPreferences  []string `json:"dietary_preferences,omitempty"`
	PurchasedCategories []string `json:"purchased_categories,omitempty"`
}

type rankRequestDTO struct {
	Candidates []string    `json:"candidates"`
	Profile    *profileDTO `json:"profile,omitempty"`
	Topic      string      `json:"topic,omitempty"`
}

type factorsDTO struct {
	Age      float64 `json:"age"`
	Health   float64 `json:"health"`
	Dietary  float64 `json:"dietary"`
	Purchase float64 `json:"purchase"`
}

type scoredDTO struct {
	Product   productDTO `json:"product"`
	BaseRank  int        `json:"base_rank"`
	Factors   factorsDTO `json:"factors"`
	Composite float64    `json:"composite"`
}

type rankResponseDTO struct {
	Items []scoredDTO `json:"items"`
}

type topicDTO struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
}

type topicListDTO struct {
	Items []topicDTO `json:"items"`
}

type bundleDTO struct {
	Name       string   `json:"name"`
	ProductIDs []string `json:"product_ids"`
	Discount   float64  `json:"discount,omitempty"`
	Benefit    string   `json:"benefit,omitempty"`
}

type tipDTO struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Category string `json:"category,omitempty"`
}

type factDTO struct {
	Text   string `json:"text"`
	Source string `json:"source,omitempty"`
}

type recommendationDTO struct {
	Topic   topicDTO    `json:"topic"`
	Items   []scoredDTO `json:"items"`
	Bundles []bundleDTO `json:"bundles,omitempty"`
	Tips    []tipDTO    `json:"tips,omitempty"`
	Facts   []factDTO   `json:"facts,omitempty"`
}

type healthDTO struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// --- domain to DTO ---

func productToDTO(p *product.Summary) productDTO {
	dto := productDTO{
		ID:          p.ID(),
		Name:        p.Name(),
		Slug:        p.Slug(),
		Category:    p.CategoryMain(),
		CategorySub: p.CategorySub(),
		Price:       p.Price(),
		SalePrice:   p.SalePrice(),
		Tags:        p.Tags(),
		Rating:      p.RatingAvg(),
		RatingCount: p.RatingCount(),
		Purchased:   p.Purchased(),
		Featured:    p.Featured(),
		HealthTags:  p.HealthTags(),
		DietaryTags: p.DietaryTags(),
		CreatedAt:   p.CreatedAt(),
	}
	if b := p.AgeBracket(); b != nil {
		dto.AgeBracket = &ageBracketDTO{Min: b.Min, Max: b.Max}
	}
	return dto
}

func pageToDTO(pg page.Page) pageDTO {
	items := make([]productDTO, len(pg.Items))
	for i := range pg.Items {
		items[i] = productToDTO(&pg.Items[i])
	}
	return pageDTO{
		Items:      items,
		Page:       pg.Number,
		PageSize:   pg.Size,
		TotalItems: pg.TotalItems,
		TotalPages: pg.TotalPages,
	}
}

func scoredToDTO(s *rank.Scored) scoredDTO {
	return scoredDTO{
		Product:  productToDTO(&s.Product),
		BaseRank: s.BaseRank,
		Factors: factorsDTO{
			Age:      s.Factors.Age,
			Health:   s.Factors.Health,
			Dietary:  s.Factors.Dietary,
			Purchase: s.Factors.Purchase,
		},
		Composite: s.Composite,
	}
}

func rankResponseFromScored(scored []rank.Scored) rankResponseDTO {
	items := make([]scoredDTO, len(scored))
	for i := range scored {
		items[i] = scoredToDTO(&scored[i])
	}
	return rankResponseDTO{Items: items}
}

func topicToDTO(t *content.Topic, lang string) topicDTO {
	return topicDTO{
		Code:         t.Code(),
		Name:         t.Name(lang),
		DisplayOrder: t.DisplayOrder(),
	}
}

func recommendationToDTO(rec *recommenduc.Recommendation) recommendationDTO {
	items := make([]scoredDTO, len(rec.Ranked))
	for i := range rec.Ranked {
		items[i] = scoredToDTO(&rec.Ranked[i])
	}

	bundles := make([]bundleDTO, len(rec.Bundles))
	for i, b := range rec.Bundles {
		bundles[i] = bundleDTO{
			Name: b.Name, ProductIDs: b.ProductIDs, Discount: b.Discount, Benefit: b.Benefit,
		}
	}

	tips := make([]tipDTO, len(rec.Tips))
	for i, t := range rec.Tips {
		tips[i] = tipDTO{Title: t.Title, Body: t.Body, Category: t.Category}
	}

	facts := make([]factDTO, len(rec.Facts))
	for i, f := range rec.Facts {
		facts[i] = factDTO{Text: f.Text, Source: f.Source}
	}

	return recommendationDTO{
		Topic:   topicDTO{Code: rec.TopicCode, Name: rec.TopicName},
		Items:   items,
		Bundles: bundles,
		Tips:    tips,
		Facts:   facts,
	}
}

// --- DTO and query to domain ---

func profileFromDTO(dto *profileDTO) profile.Profile {
	if dto == nil {
		return profile.New(-1, nil, nil, nil)
	}
	age := -1
	if dto.Age != nil && *dto.Age >= 0 {
		age = *dto.Age
	}
	return profile.New(age, dto.HealthConditions, dto.DietaryPreferences, dto.PurchasedCategories)
}

// profileFromQuery builds a profile from optional GET parameters: age,
// conditions, diets, purchased (comma-separated lists).
func profileFromQuery(r *http.Request) profile.Profile {
	age := queryInt(r, "age", -1)
	return profile.New(
		age,
		queryList(r, "conditions"),
		queryList(r, "diets"),
		queryList(r, "purchased"),
	)
}

// queryList collects values of a repeatable parameter, splitting each on
// commas.
func queryList(r *http.Request, name string) []string {
	var out []string
	for _, raw := range r.URL.Query()[name] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func queryInt(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func queryFloat(r *http.Request, name string) (float64, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
