package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name string
	Tag  string
}

func matchItem(it item, field Field, q string) bool {
	switch field {
	case "name":
		return Contains(it.Name, q)
	case "tag":
		return Contains(it.Tag, q)
	case FieldAll:
		return Contains(it.Name, q) || Contains(it.Tag, q)
	}
	return false
}

var items = []item{
	{Name: "Dune", Tag: "scifi"},
	{Name: "Emma", Tag: "classic"},
	{Name: "Dracula", Tag: "horror"},
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		field Field
		want  []string
	}{
		{"empty query returns all", "", FieldAll, []string{"Dune", "Emma", "Dracula"}},
		{"whitespace query returns all", "   ", "name", []string{"Dune", "Emma", "Dracula"}},
		{"case insensitive", "DU", "name", []string{"Dune"}},
		{"substring keeps order", "d", "name", []string{"Dune", "Dracula"}},
		{"all matches any field", "class", FieldAll, []string{"Emma"}},
		{"empty field means all", "horror", "", []string{"Dracula"}},
		{"field restricts match", "horror", "name", []string{}},
		{"unknown field matches nothing", "dune", "isbn", []string{}},
		{"query is trimmed", "  emma ", "name", []string{"Emma"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(items, tt.query, tt.field, matchItem)
			names := make([]string, 0, len(got))
			for _, it := range got {
				names = append(names, it.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestParseField(t *testing.T) {
	allowed := []Field{FieldAll, "name", "tag"}

	f, err := ParseField("", allowed)
	require.NoError(t, err)
	assert.Equal(t, FieldAll, f)

	f, err = ParseField("Name", allowed)
	require.NoError(t, err)
	assert.Equal(t, Field("name"), f)

	_, err = ParseField("isbn", allowed)
	assert.Error(t, err)
}
