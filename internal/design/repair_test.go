package design

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wellFormed = `{"frames":[{"name":"Home","width":1440,"height":900,"background":"#FFF7ED"}]}`

func TestRepair_WellFormedInput(t *testing.T) {
	t.Run("returns the exact structure unchanged", func(t *testing.T) {
		got, err := Repair(wellFormed)
		require.NoError(t, err)

		var want map[string]any
		require.NoError(t, json.Unmarshal([]byte(wellFormed), &want))
		assert.Equal(t, want, got)
	})

	t.Run("idempotent across the whole pipeline", func(t *testing.T) {
		first, err := Repair(wellFormed)
		require.NoError(t, err)

		again, err := Repair(wellFormed)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	})
}

func TestRepair_MarkdownFences(t *testing.T) {
	t.Run("fence with language tag", func(t *testing.T) {
		got, err := Repair("```json\n" + wellFormed + "\n```")
		require.NoError(t, err)

		want, err := Repair(wellFormed)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("fence without language tag", func(t *testing.T) {
		_, err := Repair("```\n" + wellFormed + "\n```")
		assert.NoError(t, err)
	})
}

func TestRepair_Comments(t *testing.T) {
	input := `{
		// page frames below
		"frames": [
			{"name": "Home", "width": 1440, "height": 900} /* only one for now */
		]
	}`
	got, err := Repair(input)
	require.NoError(t, err)
	frames := got["frames"].([]any)
	assert.Len(t, frames, 1)
}

func TestRepair_TrailingCommas(t *testing.T) {
	input := `{"frames":[{"name":"Home","width":1440,"height":900,},]}`
	got, err := Repair(input)
	require.NoError(t, err)
	assert.Contains(t, got, "frames")
}

func TestRepair_UnquotedKeys(t *testing.T) {
	input := `{frames: [{name: "Home", width: 1440, height: 900}]}`
	got, err := Repair(input)
	require.NoError(t, err)

	frames := got["frames"].([]any)
	first := frames[0].(map[string]any)
	assert.Equal(t, "Home", first["name"])
}

func TestRepair_SingleQuotedStrings(t *testing.T) {
	input := `{'frames': [{'name': 'Home', 'width': 1440, 'height': 900}]}`
	got, err := Repair(input)
	require.NoError(t, err)
	assert.Contains(t, got, "frames")
}

func TestRepair_BareHexColors(t *testing.T) {
	input := `{"frames":[{"name":"Home","width":1440,"height":900,"background": #FFF7ED}]}`
	got, err := Repair(input)
	require.NoError(t, err)

	frames := got["frames"].([]any)
	first := frames[0].(map[string]any)
	assert.Equal(t, "#FFF7ED", first["background"])
}

func TestRepair_MissingCommaBetweenObjects(t *testing.T) {
	input := `{"frames":[{"name":"A","width":1,"height":2} {"name":"B","width":3,"height":4}]}`
	got, err := Repair(input)
	require.NoError(t, err)

	frames := got["frames"].([]any)
	require.Len(t, frames, 2)
	assert.Equal(t, "B", frames[1].(map[string]any)["name"])
}

func TestRepair_EmbeddedObjectInProse(t *testing.T) {
	input := "Sure! Here is the layout you asked for:\n\n" + wellFormed + "\n\nLet me know if you want changes."
	got, err := Repair(input)
	require.NoError(t, err)

	want, err := Repair(wellFormed)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRepair_Unrecoverable(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"truncated mid object", `{"frames":[{"name":"A","width":1,`},
		{"plain prose", "I could not generate a layout for that request."},
		{"empty string", ""},
		{"object without frames", `{"answer": 42}`},
		{"empty frames array", `{"frames": []}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Repair(tc.input)
			assert.ErrorIs(t, err, ErrUnrecoverable)
		})
	}
}

// --- per-fixup passes ---

func TestStripFences(t *testing.T) {
	assert.Equal(t, "\n{}\n", stripFences("```json\n{}\n```"))
	assert.Equal(t, "\n{}\n", stripFences("```\n{}\n```"))
}

func TestStripComments(t *testing.T) {
	t.Run("line comment removed to end of line", func(t *testing.T) {
		got := stripComments("{\n// comment with } brace\n\"a\": 1}")
		assert.NotContains(t, got, "comment")
		assert.Contains(t, got, `"a": 1`)
	})

	t.Run("block comment removed", func(t *testing.T) {
		got := stripComments(`{"a": /* inline */ 1}`)
		assert.Equal(t, `{"a":  1}`, got)
	})

	t.Run("url inside string survives", func(t *testing.T) {
		input := `{"link": "https://example.com/path"}`
		assert.Equal(t, input, stripComments(input))
	})
}

func TestInsertMissingCommas(t *testing.T) {
	assert.Equal(t, `[{"a":1},{"b":2}]`, insertMissingCommas(`[{"a":1} {"b":2}]`))
	assert.Equal(t, `[[1],[2]]`, insertMissingCommas(`[[1] [2]]`))
}

func TestStripTrailingCommas(t *testing.T) {
	assert.Equal(t, `{"a":[1,2]}`, stripTrailingCommas(`{"a":[1,2,],}`))
}

func TestQuoteBareKeys(t *testing.T) {
	assert.Equal(t, `{"name": "x", "width": 1}`, quoteBareKeys(`{name: "x", width: 1}`))
}

func TestNormalizeQuotes(t *testing.T) {
	assert.Equal(t, `{"name": "x"}`, normalizeQuotes(`{'name': 'x'}`))
}

func TestQuoteHexTokens(t *testing.T) {
	t.Run("six digit", func(t *testing.T) {
		assert.Equal(t, `{"background": "#FFF7ED"}`, quoteHexTokens(`{"background": #FFF7ED}`))
	})
	t.Run("three digit", func(t *testing.T) {
		assert.Equal(t, `{"color": "#abc",`, quoteHexTokens(`{"color": #abc,`))
	})
	t.Run("already quoted untouched", func(t *testing.T) {
		input := `{"background": "#FFF7ED"}`
		assert.Equal(t, input, quoteHexTokens(input))
	})
}

func TestExtractObject(t *testing.T) {
	t.Run("balanced span", func(t *testing.T) {
		assert.Equal(t, `{"a": {"b": 1}}`, extractObject(`noise {"a": {"b": 1}} trailer`))
	})
	t.Run("braces in strings ignored", func(t *testing.T) {
		assert.Equal(t, `{"a": "}"}`, extractObject(`{"a": "}"} rest`))
	})
	t.Run("unbalanced returns empty", func(t *testing.T) {
		assert.Equal(t, "", extractObject(`{"a": 1`))
	})
	t.Run("no object returns empty", func(t *testing.T) {
		assert.Equal(t, "", extractObject("no json here"))
	})
}
