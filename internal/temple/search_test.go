package temple

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	t.Run("splits on punctuation and whitespace", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{"zen", "center", "portland"}, tokenize("zen-center, portland"))
	})

	t.Run("drops stop words", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{"temple", "light"}, tokenize("the temple of light"))
	})

	t.Run("keeps unicode letters", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{"浅草寺", "tokyo"}, tokenize("浅草寺 tokyo"))
	})

	t.Run("empty for all punctuation", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, tokenize("---,,,!!!"))
	})
}

func TestSearchQueryNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", 0, 0, defaultSearchLimit, 0},
		{"negative limit", -5, 0, defaultSearchLimit, 0},
		{"over max limit", 500, 0, maxSearchLimit, 0},
		{"max limit kept", 100, 0, 100, 0},
		{"negative offset reset", 20, -3, 20, 0},
		{"valid passthrough", 50, 40, 50, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			q := SearchQuery{Limit: tt.limit, Offset: tt.offset}
			q.normalize()
			assert.Equal(t, tt.wantLimit, q.Limit)
			assert.Equal(t, tt.wantOffset, q.Offset)
		})
	}
}

func TestSearchQueryWhere(t *testing.T) {
	t.Parallel()

	t.Run("active only by default", func(t *testing.T) {
		t.Parallel()

		clause, args := SearchQuery{}.where()
		assert.Equal(t, " WHERE is_active = TRUE", clause)
		assert.Empty(t, args)
	})

	t.Run("empty when inactive included and no filters", func(t *testing.T) {
		t.Parallel()

		clause, args := SearchQuery{IncludeInactive: true}.where()
		assert.Empty(t, clause)
		assert.Empty(t, args)
	})

	t.Run("one condition per token, AND-ed", func(t *testing.T) {
		t.Parallel()

		clause, args := SearchQuery{Term: "zen garden", IncludeInactive: true}.where()
		require.Len(t, args, 2)
		assert.Equal(t, "%zen%", args[0])
		assert.Equal(t, "%garden%", args[1])
		assert.Equal(t, 1, strings.Count(clause, ") AND ("))
		assert.Contains(t, clause, "LOWER(name) LIKE $1")
		assert.Contains(t, clause, "LOWER(array_to_string(tags, ',')) LIKE $2")
	})

	t.Run("term is lowercased before binding", func(t *testing.T) {
		t.Parallel()

		_, args := SearchQuery{Term: "ZEN", IncludeInactive: true}.where()
		require.Len(t, args, 1)
		assert.Equal(t, "%zen%", args[0])
	})

	t.Run("token cap", func(t *testing.T) {
		t.Parallel()

		_, args := SearchQuery{
			Term:            "one two three four five six seven eight nine ten eleven twelve",
			IncludeInactive: true,
		}.where()
		assert.Len(t, args, maxSearchTokens)
	})

	t.Run("all stop words fall back to raw term", func(t *testing.T) {
		t.Parallel()

		clause, args := SearchQuery{Term: "of the and", IncludeInactive: true}.where()
		require.Len(t, args, 1)
		assert.Equal(t, "%of the and%", args[0])
		assert.Contains(t, clause, "LOWER(name) LIKE $1")
	})

	t.Run("scalar facet equality any", func(t *testing.T) {
		t.Parallel()

		clause, args := SearchQuery{
			Facets:          Facets{Religions: []string{"Buddhism", " Shinto "}},
			IncludeInactive: true,
		}.where()
		assert.Contains(t, clause, "LOWER(religion) = ANY($1)")
		require.Len(t, args, 1)
		assert.Equal(t, []string{"buddhism", "shinto"}, args[0])
	})

	t.Run("array facet uses unnest intersection", func(t *testing.T) {
		t.Parallel()

		clause, args := SearchQuery{
			Facets:          Facets{Languages: []string{"JA", "en"}},
			IncludeInactive: true,
		}.where()
		assert.Contains(t, clause, "EXISTS (SELECT 1 FROM unnest(languages) AS elem WHERE LOWER(elem) = ANY($1))")
		require.Len(t, args, 1)
		assert.Equal(t, []string{"ja", "en"}, args[0])
	})

	t.Run("inclusive ranges", func(t *testing.T) {
		t.Parallel()

		minAtt, maxAtt := 50, 500
		after, before := 1900, 2000
		clause, args := SearchQuery{
			Facets: Facets{
				MinAttendance: &minAtt,
				MaxAttendance: &maxAtt,
				FoundedAfter:  &after,
				FoundedBefore: &before,
			},
			IncludeInactive: true,
		}.where()
		assert.Contains(t, clause, "average_weekly_attendance >= $1")
		assert.Contains(t, clause, "average_weekly_attendance <= $2")
		assert.Contains(t, clause, "founded_year >= $3")
		assert.Contains(t, clause, "founded_year <= $4")
		assert.Equal(t, []any{50, 500, 1900, 2000}, args)
	})

	t.Run("filters combine with AND", func(t *testing.T) {
		t.Parallel()

		clause, args := SearchQuery{
			Term:   "zen",
			Facets: Facets{Countries: []string{"japan"}},
		}.where()
		require.Len(t, args, 2)
		assert.True(t, strings.HasPrefix(clause, " WHERE is_active = TRUE AND "))
		assert.Contains(t, clause, "LOWER(country) = ANY($2)")
	})
}
