package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, raw string) Object {
	t.Helper()
	obj, ok, err := Decode([]byte(raw))
	require.NoError(t, err)
	require.True(t, ok)
	return obj
}

func TestDecode_NonObject(t *testing.T) {
	for _, raw := range []string{`123`, `"text"`, `[1,2]`, `null`, `true`} {
		obj, ok, err := Decode([]byte(raw))
		require.NoError(t, err, raw)
		assert.False(t, ok, raw)
		assert.Nil(t, obj, raw)
	}
}

func TestDecode_Malformed(t *testing.T) {
	for _, raw := range []string{`NOT-JSON`, `{"ggId":`, `{"a":1} {"b":2}`, ``} {
		_, _, err := Decode([]byte(raw))
		assert.Error(t, err, raw)
	}
}

func TestDecode_KeepsNumbersExact(t *testing.T) {
	obj := mustDecode(t, `{"ardaId":9007199254740993}`)
	id, ok := obj.String(KeyArdaID)
	require.True(t, ok)
	assert.Equal(t, "9007199254740993", id)
}

func TestHasIdentity(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{`{"ggId":"abc"}`, true},
		{`{"ardaId":123}`, true},
		{`{"ggId":"","ardaId":7}`, true},
		{`{"name":"X"}`, false},
		{`{"ggId":"","ardaId":0}`, false},
		{`{"ggId":null}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, mustDecode(t, tt.raw).HasIdentity())
		})
	}
}

func TestIdentity_PrefersGGID(t *testing.T) {
	assert.Equal(t, "gg", mustDecode(t, `{"ggId":"gg","ardaId":5}`).Identity())
	assert.Equal(t, "123", mustDecode(t, `{"ardaId":123}`).Identity())
}

func TestIdentity_PlaceholderIsFresh(t *testing.T) {
	obj := mustDecode(t, `{"name":"X"}`)
	first, second := obj.Identity(), obj.Identity()
	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}

func TestStringOr_FallsThroughKeys(t *testing.T) {
	obj := mustDecode(t, `{"headline":"","professionalHeadline":"Dev","location":"Lima"}`)
	assert.Equal(t, "Dev", obj.StringOr("No headline", "headline", "professionalHeadline"))
	assert.Equal(t, "Lima", obj.StringOr("Unknown location", "locationName", "location"))
	assert.Equal(t, "Unknown", obj.StringOr("Unknown", "name"))
}

func TestScalarAccessors(t *testing.T) {
	obj := mustDecode(t, `{"completion":0.75,"verified":false,"list":[1],"nested":{"a":"b"},"text":"x"}`)

	require.NotNil(t, obj.Float("completion"))
	assert.InDelta(t, 0.75, *obj.Float("completion"), 1e-9)
	assert.Nil(t, obj.Float("text"))

	require.NotNil(t, obj.Bool("verified"))
	assert.False(t, *obj.Bool("verified"))
	assert.Nil(t, obj.Bool("missing"))

	assert.Len(t, obj.Array("list"), 1)
	assert.Nil(t, obj.Array("text"))
	assert.Equal(t, []any{}, obj.Values("missing"))

	assert.Equal(t, "b", obj.Object("nested").StringOr("", "a"))
	assert.Empty(t, obj.Object("text"))
}

func TestObjects_PreservesPositions(t *testing.T) {
	obj := mustDecode(t, `{"items":[{"a":"1"},"junk",{"a":"2"}]}`)
	items := obj.Objects("items")
	require.Len(t, items, 3)
	assert.Equal(t, "1", items[0].StringOr("", "a"))
	assert.Empty(t, items[1])
	assert.Equal(t, "2", items[2].StringOr("", "a"))
}

func TestFlag(t *testing.T) {
	obj := mustDecode(t, `{"current":false,"isCurrent":true}`)
	assert.True(t, obj.Flag("current", "isCurrent"))
	assert.False(t, obj.Flag("current"))
}
