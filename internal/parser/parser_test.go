package parser

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonedit/internal/errors"
	"github.com/mcncl/jsonedit/internal/models"
)

func TestParse_SimpleObject(t *testing.T) {
	jsonStr := `{"name": "John Doe", "age": 30, "isStudent": false, "city": null}`
	v, err := Parse(strings.NewReader(jsonStr))
	require.NoError(t, err)

	require.Equal(t, models.Mapping, v.Kind())
	assert.Equal(t, "John Doe", v.Key("name").Str())
	assert.Equal(t, json.Number("30"), v.Key("age").Num())
	assert.False(t, v.Key("isStudent").Bool())
	assert.Equal(t, models.Unsupported, v.Key("city").Kind())
	assert.Equal(t, []string{"name", "age", "isStudent", "city"}, v.Keys())
}

func TestParse_SimpleArray(t *testing.T) {
	v, err := Parse(strings.NewReader(`[1, "test", true, null, 3.14]`))
	require.NoError(t, err)

	require.Equal(t, models.Sequence, v.Kind())
	require.Equal(t, 5, v.Len())
	assert.Equal(t, json.Number("1"), v.At(0).Num())
	assert.Equal(t, "test", v.At(1).Str())
	assert.True(t, v.At(2).Bool())
	assert.Equal(t, models.Unsupported, v.At(3).Kind())
	assert.Equal(t, json.Number("3.14"), v.At(4).Num())
}

func TestParse_TopLevelScalars(t *testing.T) {
	tests := []struct {
		input string
		kind  models.Kind
	}{
		{`"hello"`, models.String},
		{`42`, models.Number},
		{`true`, models.Boolean},
		{`null`, models.Unsupported},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := ParseString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, v.Kind())
		})
	}
}

func TestParse_InvalidJSONCarriesDiagnostic(t *testing.T) {
	_, err := ParseString(`{invalid`)
	require.Error(t, err)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrorTypeParsing, appErr.Type)
	// The stdlib decoder's diagnostic must survive verbatim.
	assert.Contains(t, appErr.Message, "offset")
	assert.Contains(t, appErr.Message, "invalid character")
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := ParseString("   ")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrEmptyInput)
}

func TestParse_TrailingData(t *testing.T) {
	_, err := ParseString(`{"a": 1} {"b": 2}`)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrMultipleJSON)
}

func TestParse_TrailingWhitespaceIsFine(t *testing.T) {
	v, err := ParseString("{\"a\": 1}\n\n  ")
	require.NoError(t, err)
	assert.Equal(t, models.Mapping, v.Kind())
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"ok": true}`), 0644))

	v, err := ParseFile(file)
	require.NoError(t, err)
	assert.True(t, v.Key("ok").Bool())
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrFileNotFound)
}

func TestParseFile_Empty(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	_, err := ParseFile(file)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrFileEmpty)
}

func TestSerialize_RoundTrip(t *testing.T) {
	inputs := []string{
		`{"a": 1, "b": [true, "x"], "c": {"d": null}}`,
		`[[1, 2], [3, [4, 5]]]`,
		`"just a string"`,
		`0.30000000000000004`,
		`{"unicode": "héllo ⌘", "esc": "line\nbreak"}`,
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			v, err := ParseString(input)
			require.NoError(t, err)

			out, err := Serialize(v, Options{})
			require.NoError(t, err)

			again, err := ParseString(out)
			require.NoError(t, err)
			assert.True(t, v.Equal(again), "serialize(parse(%q)) = %q did not parse back equal", input, out)
		})
	}
}

func TestSerialize_IndentAndOrder(t *testing.T) {
	v, err := ParseString(`{"b": 1, "a": 2}`)
	require.NoError(t, err)

	out, err := Serialize(v, Options{Indent: 4})
	require.NoError(t, err)
	assert.Contains(t, out, "\n    \"b\": 1")
	// Display order wins by default.
	assert.Less(t, strings.Index(out, `"b"`), strings.Index(out, `"a"`))
}

func TestSerialize_SortKeys(t *testing.T) {
	v, err := ParseString(`{"b": 1, "a": 2}`)
	require.NoError(t, err)

	out, err := Serialize(v, Options{SortKeys: true})
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, `"a"`), strings.Index(out, `"b"`))
}

func TestSerialize_ZeroIndentIsCompact(t *testing.T) {
	v, err := ParseString(`{"b": 1, "a": [true, null]}`)
	require.NoError(t, err)

	out, err := Serialize(v, Options{Indent: 0})
	require.NoError(t, err)
	assert.Equal(t, `{"b":1,"a":[true,null]}`, out)
}

func TestSerialize_NilValue(t *testing.T) {
	_, err := Serialize(nil, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNoDocument)
}
