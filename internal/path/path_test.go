package path

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPath_String(t *testing.T) {
	tests := []struct {
		name string
		p    Path
		want string
	}{
		{"root", Root(), "root"},
		{"single key", Root().Child("a"), "root.a"},
		{"single index", Root().Index(0), "root[0]"},
		{"mixed", Root().Child("users").Index(2).Child("name"), "root.users[2].name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.String())
		})
	}
}

func TestPath_ExtensionDoesNotAlias(t *testing.T) {
	base := Root().Child("a")
	left := base.Child("b")
	right := base.Child("c")

	// Extending the same base twice must not clobber either branch; the
	// renderer builds sibling paths exactly this way while recursing.
	assert.Equal(t, "root.a.b", left.String())
	assert.Equal(t, "root.a.c", right.String())
}

func TestParse_RoundTrip(t *testing.T) {
	tests := []string{
		"root",
		"root.a",
		"root[3]",
		"root.users[0].name",
		"root.b[1][2]",
	}
	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			p, err := Parse(s)
			require.NoError(t, err)
			assert.Equal(t, s, p.String())
		})
	}
}

func TestParse_AcceptsBareForm(t *testing.T) {
	p, err := Parse("a.b[1]")
	require.NoError(t, err)
	assert.Equal(t, "root.a.b[1]", p.String())
}

func TestParse_KeyStartingWithRootIsNotStripped(t *testing.T) {
	p, err := Parse("rooted.thing")
	require.NoError(t, err)
	require.Len(t, p, 2)
	assert.Equal(t, "rooted", p[0].Key())
}

func TestParse_Steps(t *testing.T) {
	p, err := Parse("root.users[2].name")
	require.NoError(t, err)
	require.Len(t, p, 3)
	assert.Equal(t, "users", p[0].Key())
	assert.True(t, p[1].IsIndex())
	assert.Equal(t, 2, p[1].Index())
	assert.Equal(t, "name", p[2].Key())
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{
		"root[",
		"root[x]",
		"root[-1]",
		"root..a",
	}
	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			_, err := Parse(s)
			assert.Error(t, err)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	p, err := Parse("  ")
	require.NoError(t, err)
	assert.Len(t, p, 0)
}

func TestPath_Equal(t *testing.T) {
	a := Root().Child("x").Index(1)
	b := Root().Child("x").Index(1)
	c := Root().Child("x").Index(2)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(Root()))
}
