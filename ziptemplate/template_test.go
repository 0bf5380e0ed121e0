package ziptemplate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/byte4ever/ziptemplates/ziptemplate"
)

func TestParse_splits_statics_and_placeholders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		text         string
		statics      []string
		placeholders []string
	}{
		{
			name:         "empty template",
			text:         "",
			statics:      []string{""},
			placeholders: []string{""},
		},
		{
			name:         "static only",
			text:         "static text only",
			statics:      []string{"static text only"},
			placeholders: []string{""},
		},
		{
			name:         "three adjacent placeholders",
			text:         "{{a}},{{b}},{{c}}",
			statics:      []string{"", ",", ",", ""},
			placeholders: []string{"a", "b", "c", ""},
		},
		{
			name:         "keys are trimmed",
			text:         "Hi, {{  user.name.first\t}}!",
			statics:      []string{"Hi, ", "!"},
			placeholders: []string{"user.name.first", ""},
		},
		{
			name:         "empty placeholder",
			text:         "x{{}}y{{   }}z",
			statics:      []string{"x", "y", "z"},
			placeholders: []string{"", "", ""},
		},
		{
			name:         "unterminated marker",
			text:         "abc {{x",
			statics:      []string{"abc {{x"},
			placeholders: []string{""},
		},
		{
			name:         "unterminated marker after placeholder",
			text:         "{{x}} and {{y",
			statics:      []string{"", " and {{y"},
			placeholders: []string{"x", ""},
		},
		{
			name:         "first close marker wins",
			text:         "{{a{{b}}",
			statics:      []string{"", ""},
			placeholders: []string{"a{{b", ""},
		},
		{
			name:         "stray close marker is static",
			text:         "a }} b {{ c }}",
			statics:      []string{"a }} b ", ""},
			placeholders: []string{"c", ""},
		},
		{
			name:         "triple brace keeps extra brace in key",
			text:         "{{{k}}}",
			statics:      []string{"", "}"},
			placeholders: []string{"{k", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tp := ziptemplate.Parse(tt.text)

			assert.Equal(t, tt.statics, tp.Statics())
			assert.Equal(t, tt.placeholders, tp.Placeholders())
			assert.Equal(t, len(tt.statics), tp.StaticPartsCount())
		})
	}
}

func TestParse_counts_match_placeholder_occurrences(t *testing.T) {
	t.Parallel()

	for k := range 6 {
		text := strings.Repeat("text {{key}} ", k)

		tp := ziptemplate.Parse(text)

		assert.Len(t, tp.Statics(), k+1)
		assert.Len(t, tp.Placeholders(), k+1)
		assert.Equal(t, "", tp.Placeholders()[k])
	}
}

func TestParseTags_custom_markers(t *testing.T) {
	t.Parallel()

	tp := ziptemplate.ParseTags("Hello <%name%>! {{kept}}", "<%", "%>")

	assert.Equal(t, []string{"Hello ", "! {{kept}}"}, tp.Statics())
	assert.Equal(t, []string{"name", ""}, tp.Placeholders())
}

func TestParseTags_empty_tags_use_defaults(t *testing.T) {
	t.Parallel()

	tp := ziptemplate.ParseTags("a{{b}}c", "", "")

	assert.Equal(t, []string{"a", "c"}, tp.Statics())
	assert.Equal(t, []string{"b", ""}, tp.Placeholders())
}

func TestKeys_excludes_sentinel(t *testing.T) {
	t.Parallel()

	tp := ziptemplate.Parse("{{a}}-{{b}}-{{a}}")

	assert.Equal(t, []string{"a", "b", "a"}, tp.Keys())
	assert.Empty(t, ziptemplate.Parse("plain").Keys())
}

func TestStatics_returns_copy(t *testing.T) {
	t.Parallel()

	tp := ziptemplate.Parse("Hello, {{name}}!")

	statics := tp.Statics()
	statics[0] = "Bye, "

	placeholders := tp.Placeholders()
	placeholders[0] = "other"

	assert.Equal(
		t,
		"Hello, Sam!",
		tp.Render(map[string]string{"name": "Sam"}),
	)
}

func FuzzParse(f *testing.F) {
	f.Add("Hello {{name}}!")
	f.Add("{{a}}{{b}}")
	f.Add("no tags here")
	f.Add("{{")
	f.Add("}}")
	f.Add("{{}}")
	f.Add("{{a{{b}}")
	f.Add("")

	f.Fuzz(func(t *testing.T, text string) {
		tp := ziptemplate.Parse(text)

		statics := tp.Statics()
		placeholders := tp.Placeholders()

		if len(statics) != len(placeholders) {
			t.Fatalf(
				"statics/placeholders mismatch: %d != %d",
				len(statics), len(placeholders),
			)
		}

		if placeholders[len(placeholders)-1] != "" {
			t.Fatalf("missing sentinel: %q", placeholders)
		}

		if tp.Render(nil) != tp.RenderPositional(nil) {
			t.Fatalf("render strategies disagree on %q", text)
		}

		if !strings.Contains(text, ziptemplate.OpenTag) &&
			tp.Render(nil) != text {
			t.Fatalf("static template changed: %q", text)
		}
	})
}
