package temple

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
	maxSearchTokens    = 10
)

// stopWords are dropped from free-text search input before matching.
var stopWords = map[string]struct{}{
	"and": {}, "or": {}, "the": {}, "a": {}, "an": {},
	"of": {}, "in": {}, "at": {}, "to": {}, "for": {},
}

// searchFields is the fixed set of textual expressions a free-text token
// may match against.
var searchFields = []string{
	"name",
	"subdomain",
	"domain",
	"address",
	"city",
	"state_province",
	"country",
	"postal_code",
	"religion",
	"tradition",
	"denomination",
	"sect",
	"size_category",
	"array_to_string(languages, ',')",
	"array_to_string(tags, ',')",
}

// Facets are the optional discovery filters. List facets match when the
// tenant's scalar field equals any listed value (case-insensitive);
// Languages and Tags match on non-empty array intersection. Range bounds
// are inclusive and applied only when set.
type Facets struct {
	Religions      []string
	Traditions     []string
	Denominations  []string
	Sects          []string
	Countries      []string
	States         []string
	Cities         []string
	SizeCategories []string
	Languages      []string
	Tags           []string

	MinAttendance *int
	MaxAttendance *int
	FoundedAfter  *int
	FoundedBefore *int
}

// SearchQuery describes one discovery search over the tenant catalog.
type SearchQuery struct {
	Term   string
	Facets Facets
	Limit  int
	Offset int

	// IncludeInactive lifts the default active-only filter. Never set
	// from public input.
	IncludeInactive bool
}

// normalize clamps pagination to the allowed window.
func (q *SearchQuery) normalize() {
	if q.Limit < 1 {
		q.Limit = defaultSearchLimit
	}
	if q.Limit > maxSearchLimit {
		q.Limit = maxSearchLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
}

// tokenize splits lowercased free-text input on non-letter/non-digit
// boundaries and drops stop-words. Unicode-aware so non-Latin temple
// names tokenize correctly.
func tokenize(term string) []string {
	fields := strings.FieldsFunc(term, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, stop := stopWords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// predicateBuilder accumulates typed WHERE conditions and a parallel
// parameter list. Values are always bound, never interpolated, and the
// resulting predicate set feeds both the count query and the data query
// so total and page stay consistent within one call.
type predicateBuilder struct {
	conds []string
	args  []any
}

// bind appends a parameter and returns its positional placeholder.
func (b *predicateBuilder) bind(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *predicateBuilder) cond(c string) {
	b.conds = append(b.conds, c)
}

// tokenCond adds one token's OR-across-fields substring condition.
func (b *predicateBuilder) tokenCond(token string) {
	placeholder := b.bind("%" + token + "%")
	parts := make([]string, 0, len(searchFields))
	for _, field := range searchFields {
		parts = append(parts, fmt.Sprintf("LOWER(%s) LIKE %s", field, placeholder))
	}
	b.cond("(" + strings.Join(parts, " OR ") + ")")
}

// scalarFacetCond adds a case-insensitive equality-any condition.
func (b *predicateBuilder) scalarFacetCond(column string, values []string) {
	if len(values) == 0 {
		return
	}
	b.cond(fmt.Sprintf("LOWER(%s) = ANY(%s)", column, b.bind(lowerAll(values))))
}

// arrayFacetCond adds a case-insensitive array intersection condition.
func (b *predicateBuilder) arrayFacetCond(column string, values []string) {
	if len(values) == 0 {
		return
	}
	b.cond(fmt.Sprintf(
		"EXISTS (SELECT 1 FROM unnest(%s) AS elem WHERE LOWER(elem) = ANY(%s))",
		column, b.bind(lowerAll(values))))
}

func (b *predicateBuilder) rangeCond(column, op string, bound *int) {
	if bound == nil {
		return
	}
	b.cond(fmt.Sprintf("%s %s %s", column, op, b.bind(*bound)))
}

// where assembles the WHERE predicate and bound arguments for q.
// Returns an empty clause when nothing filters.
func (q SearchQuery) where() (string, []any) {
	b := &predicateBuilder{}

	if !q.IncludeInactive {
		b.cond("is_active = TRUE")
	}

	term := strings.ToLower(strings.TrimSpace(q.Term))
	if term != "" {
		tokens := tokenize(term)
		if len(tokens) > maxSearchTokens {
			tokens = tokens[:maxSearchTokens]
		}
		if len(tokens) > 0 {
			// Tokens AND together; each token may match any field.
			for _, token := range tokens {
				b.tokenCond(token)
			}
		} else {
			// Input was all stop-words or punctuation; fall back to a
			// single substring match on the raw trimmed input.
			b.tokenCond(term)
		}
	}

	b.scalarFacetCond("religion", q.Facets.Religions)
	b.scalarFacetCond("tradition", q.Facets.Traditions)
	b.scalarFacetCond("denomination", q.Facets.Denominations)
	b.scalarFacetCond("sect", q.Facets.Sects)
	b.scalarFacetCond("country", q.Facets.Countries)
	b.scalarFacetCond("state_province", q.Facets.States)
	b.scalarFacetCond("city", q.Facets.Cities)
	b.scalarFacetCond("size_category", q.Facets.SizeCategories)
	b.arrayFacetCond("languages", q.Facets.Languages)
	b.arrayFacetCond("tags", q.Facets.Tags)

	b.rangeCond("average_weekly_attendance", ">=", q.Facets.MinAttendance)
	b.rangeCond("average_weekly_attendance", "<=", q.Facets.MaxAttendance)
	b.rangeCond("founded_year", ">=", q.Facets.FoundedAfter)
	b.rangeCond("founded_year", "<=", q.Facets.FoundedBefore)

	if len(b.conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(b.conds, " AND "), b.args
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(strings.TrimSpace(v))
	}
	return out
}
