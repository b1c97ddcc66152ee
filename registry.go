package fragset

import "strings"

// Negative type names. Declared as constants because the classifier and the
// storage router key behavior off them.
const (
	TypeErrorPage    = "error_page"
	TypeAuthRequired = "auth_required"
	TypeEmptyShell   = "empty_shell"
)

// negativePriority is the fixed Phase 1 screening order: most common category
// first, so that when several categories' patterns incidentally co-occur the
// fragment lands in the likelier one.
var negativePriority = []string{TypeAuthRequired, TypeEmptyShell, TypeErrorPage}

// Ensure Registry implements SchemaRegistry at compile time.
var _ SchemaRegistry = (*Registry)(nil)

// Registry is the built-in immutable schema registry.
type Registry struct {
	schemas map[string]*Schema
	order   []string
}

// NewRegistry returns a registry populated with the built-in positive and
// negative schemas.
func NewRegistry() *Registry {
	r := &Registry{schemas: make(map[string]*Schema)}
	for i := range builtinSchemas {
		s := builtinSchemas[i]
		r.schemas[s.TypeName] = &s
		r.order = append(r.order, s.TypeName)
	}
	return r
}

// Get returns the schema for a type name.
func (r *Registry) Get(typeName string) (*Schema, error) {
	s, ok := r.schemas[typeName]
	if !ok {
		return nil, Errorf(ENOTFOUND, "unknown fragment type: %s (valid types: %s)",
			typeName, strings.Join(r.order, ", "))
	}
	return s, nil
}

// ValidationPatterns returns a copy of the pattern list for a type name.
func (r *Registry) ValidationPatterns(typeName string) ([]string, error) {
	s, err := r.Get(typeName)
	if err != nil {
		return nil, err
	}
	patterns := make([]string, len(s.ValidationPatterns))
	copy(patterns, s.ValidationPatterns)
	return patterns, nil
}

// TypeNames returns all registered type names in registration order.
func (r *Registry) TypeNames() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// NegativeTypes returns the negative type names in screening priority order.
func (r *Registry) NegativeTypes() []string {
	names := make([]string, len(negativePriority))
	copy(names, negativePriority)
	return names
}

// builtinSchemas defines the fragment categories the pipeline collects.
// Pattern lists are config data; keep them as plain strings.
var builtinSchemas = []Schema{
	{
		TypeName: "product",
		Kind:     KindPositive,
		ValidationPatterns: []string{
			`\$\d+\.?\d*`,                 // price
			`\d+\.?\d*\s*(USD|EUR|GBP)`,   // price with currency
			`rating:\s*\d+(\.\d+)?`,       // rating
			`\d+(\.\d+)?\s*star`,          // star rating
			`★+`,                          // star symbols
		},
		AnnotationTemplate: map[string]any{
			"type":  "product",
			"name":  "TODO: Extract product name",
			"brand": "TODO: Extract brand (or null)",
			"price": map[string]any{
				"current":  0.0,
				"original": nil,
				"currency": "USD",
			},
			"rating": map[string]any{
				"score":        0.0,
				"review_count": 0,
			},
			"description":  "TODO: Extract description",
			"availability": "in_stock",
			"image_url":    "TODO: Extract image URL (or null)",
		},
	},
	{
		TypeName: "recipe",
		Kind:     KindPositive,
		ValidationPatterns: []string{
			`\d+\s*(cup|tablespoon|teaspoon|ounce|pound|gram|ml|tsp|tbsp|oz|lb|g)`, // ingredient measurements
			`\d+/\d+`,                      // fractions
			`\d+\s*(large|medium|small|whole)`, // counts
			`(preheat|mix|stir|cook|bake|add|combine|heat|blend|whisk|pour|chop|slice|dice)`, // cooking verbs
			`\d+\s*(min|minute|hour|hr)s?`, // timing
			`(serves?|yield|makes?)\s*:?\s*\d+`, // servings
		},
		AnnotationTemplate: map[string]any{
			"type":         "recipe",
			"name":         "TODO: Extract recipe name",
			"description":  "TODO: Extract description (or null)",
			"author":       "TODO: Extract author (or null)",
			"prep_time":    "TODO: e.g., '15 min'",
			"cook_time":    "TODO: e.g., '30 min' (or null)",
			"total_time":   "TODO: e.g., '45 min' (or null)",
			"servings":     "TODO: e.g., '4 servings'",
			"ingredients":  []any{"TODO: Ingredient 1", "TODO: Ingredient 2"},
			"instructions": []any{"TODO: Step 1", "TODO: Step 2"},
			"rating":       nil,
		},
	},
	{
		TypeName: "event",
		Kind:     KindPositive,
		AnnotationTemplate: map[string]any{
			"type":           "event",
			"title":          "TODO: Extract event title",
			"datetime":       "TODO: e.g., 'Tue, Dec 16 · 6:00 PM SST'",
			"location":       "TODO: Extract location (or 'Online')",
			"venue_name":     "TODO: Extract venue name (or null)",
			"price":          "TODO: e.g., 'Free', '$25', or null",
			"organizer":      "TODO: Extract organizer (or null)",
			"attendee_count": nil,
			"description":    "TODO: Extract description (or null)",
			"event_type":     "TODO: 'online' or 'in_person' (or null)",
		},
	},
	{
		TypeName: "pricing_table",
		Kind:     KindPositive,
		AnnotationTemplate: map[string]any{
			"type": "pricing_table",
			"plans": []any{
				map[string]any{
					"name":           "TODO: Plan 1 name (e.g., 'Basic')",
					"price":          "TODO: e.g., 'Free', '$10/month'",
					"price_amount":   nil,
					"currency":       "USD",
					"billing_period": "TODO: 'month', 'year', or 'one_time'",
					"features":       []any{"TODO: Feature 1", "TODO: Feature 2"},
					"description":    "TODO: Plan description (or null)",
				},
				map[string]any{
					"name":           "TODO: Plan 2 name (e.g., 'Pro')",
					"price":          "TODO: e.g., '$29/month'",
					"price_amount":   29.0,
					"currency":       "USD",
					"billing_period": "month",
					"features":       []any{"TODO: Feature 1", "TODO: Feature 2"},
					"description":    "TODO: Plan description (or null)",
				},
			},
		},
	},
	{
		TypeName: "job_posting",
		Kind:     KindPositive,
		AnnotationTemplate: map[string]any{
			"type":            "job_posting",
			"title":           "TODO: Extract job title",
			"company":         "TODO: Extract company name",
			"location":        "TODO: e.g., 'Remote', 'San Francisco, CA'",
			"department":      "TODO: Extract department (or null)",
			"posted_date":     "TODO: e.g., '4 days ago', '2025-12-15'",
			"employment_type": "TODO: e.g., 'Full-time' (or null)",
			"description":     "TODO: Extract job description snippet (or null)",
		},
	},
	{
		TypeName: "person",
		Kind:     KindPositive,
		AnnotationTemplate: map[string]any{
			"type":      "person",
			"name":      "TODO: Extract person name",
			"title":     "TODO: Extract title/role (or null)",
			"bio":       "TODO: Extract bio (or null)",
			"email":     "TODO: Extract email (or null)",
			"phone":     "TODO: Extract phone (or null)",
			"linkedin":  "TODO: Extract LinkedIn URL (or null)",
			"image_url": "TODO: Extract profile image URL (or null)",
		},
	},
	{
		TypeName: TypeAuthRequired,
		Kind:     KindNegative,
		ValidationPatterns: []string{
			`(please\s+)?(log|sign)\s?in\s+to\s+(continue|view|read|access)`,
			`type=["']password["']`,
			`forgot\s+(your\s+)?password`,
			`create\s+(an?\s+|your\s+)?(free\s+)?account`,
			`don'?t\s+have\s+an\s+account`,
			`continue\s+with\s+(google|facebook|apple|github)`,
			`(username|e-?mail)\s+(and|or)\s+password`,
			`remember\s+me`,
			`subscribe\s+to\s+(read|continue|unlock)`,
			`(members?|subscribers?)\s+only`,
			`authentication\s+required`,
		},
		AnnotationTemplate: map[string]any{
			"type":              TypeAuthRequired,
			"message":           "TODO: Extract auth required message",
			"description":       "TODO: Extract description (e.g., 'Please log in to view this content')",
			"content_available": false,
		},
	},
	{
		TypeName: TypeEmptyShell,
		Kind:     KindNegative,
		ValidationPatterns: []string{
			`id=["'](root|app|__next|___gatsby)["']`,
			`(you\s+need\s+to\s+)?enable\s+javascript`,
			`javascript\s+is\s+(required|disabled)`,
			`__NEXT_DATA__|__NUXT__|__INITIAL_STATE__`,
			`data-reactroot|data-react-helmet|_reactRoot`,
			`ng-app|ng-version`,
			`data-v-app|data-server-rendered`,
			`loading\s*(\.\.\.|…)`,
			`please\s+wait`,
			`<div[^>]*>\s*</div>\s*</body>`,
		},
		AnnotationTemplate: map[string]any{
			"type":              TypeEmptyShell,
			"framework":         "TODO: Identify framework (react, vue, angular) or null",
			"content_available": false,
			"reason":            "client_side_rendering",
		},
	},
	{
		TypeName: TypeErrorPage,
		Kind:     KindNegative,
		ValidationPatterns: []string{
			`\b(404|410)\b`,
			`\b(500|502|503)\b`,
			`page\s+(was\s+)?not\s+found`,
			`(page|content)\s+(you('re| are)?\s+looking\s+for\s+)?(does\s?n'?t|cannot\s+be|could\s+not\s+be)\s+(exist|found)`,
			`internal\s+server\s+error`,
			`bad\s+gateway|service\s+unavailable`,
			`access\s+denied|forbidden`,
			`something\s+went\s+wrong`,
			`(sorry|oops)`,
			`(return|go\s+back)\s+to\s+(the\s+)?home\s?page`,
			`error\s+(code|occurred)`,
		},
		AnnotationTemplate: map[string]any{
			"type":        TypeErrorPage,
			"error_code":  "TODO: Extract error code (e.g., 404, 500)",
			"message":     "TODO: Extract error message",
			"description": "TODO: Extract error description",
		},
	},
}
