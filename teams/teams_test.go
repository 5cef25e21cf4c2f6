package teams

import (
	"testing"

	"hoopstats/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Knicks", "new york knicks"},
		{"knicks", "new york knicks"},
		{"  Sixers ", "philadelphia 76ers"},
		{"Trail Blazers", "portland trail blazers"},
		{"New York Knicks", "new york knicks"},
		{"LAL", "los angeles lakers"},
		{"Seattle SuperSonics", "seattle supersonics"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, Resolve(tt.raw), tt.want)
		})
	}
}

func TestResolveIdempotent(t *testing.T) {
	inputs := []string{"Knicks", "wolves", "Golden State Warriors", "unknown team", "OKC"}
	for raw := range aliases {
		inputs = append(inputs, raw)
	}
	for _, raw := range inputs {
		once := Resolve(raw)
		assert.Equal(t, Resolve(once), once)
	}
}

func TestEveryAliasIsCanonical(t *testing.T) {
	for alias, c := range aliases {
		if !IsCanonical(c) {
			t.Errorf("alias %q points at non-canonical %q", alias, c)
		}
		if IsCanonical(alias) {
			t.Errorf("alias %q shadows a canonical name", alias)
		}
	}
}

func TestDisplayNames(t *testing.T) {
	names := DisplayNames()
	assert.Equal(t, len(names), 30)
	assert.Equal(t, names[0], "Atlanta Hawks")
	assert.Equal(t, names[len(names)-1], "Washington Wizards")
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, Display("new york knicks"), "New York Knicks")
	assert.Equal(t, Display("knicks"), "New York Knicks")
	assert.Equal(t, Display("Nowhere Nine"), "Nowhere Nine")
}
