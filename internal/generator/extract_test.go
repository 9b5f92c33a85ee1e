package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantHTML  string
		wantCSS   string
		wantJS    string
		wantShape Shape
	}{
		{
			name:      "fenced html only",
			raw:       "Sure! ```html\n<div>x</div>\n```",
			wantHTML:  "<div>x</div>",
			wantShape: ShapeFencedPartial,
		},
		{
			name: "fenced html css and js",
			raw: "Here you go.\n```html\n<main>hi</main>\n```\n" +
				"```css\nbody { margin: 0; }\n```\n" +
				"```js\nconsole.log('hi');\n```\nEnjoy!",
			wantHTML:  "<main>hi</main>",
			wantCSS:   "body { margin: 0; }",
			wantJS:    "console.log('hi');",
			wantShape: ShapeFencedAll,
		},
		{
			name:      "javascript label normalized",
			raw:       "```html\n<p>a</p>\n```\n```javascript\nalert(1)\n```",
			wantHTML:  "<p>a</p>",
			wantJS:    "alert(1)",
			wantShape: ShapeFencedPartial,
		},
		{
			name:      "raw document with doctype",
			raw:       "<!DOCTYPE html>\n<html><body>whole page</body></html>",
			wantHTML:  "<!DOCTYPE html>\n<html><body>whole page</body></html>",
			wantShape: ShapeRawDocument,
		},
		{
			name:      "bare html tags only",
			raw:       "<html></html>",
			wantHTML:  "<html></html>",
			wantShape: ShapeRawDocument,
		},
		{
			name:      "prose fallback",
			raw:       "I could not produce a site this time.",
			wantHTML:  "I could not produce a site this time.",
			wantShape: ShapeRawFallback,
		},
		{
			name:      "empty string",
			raw:       "",
			wantHTML:  "",
			wantShape: ShapeRawFallback,
		},
		{
			name:      "unterminated fence falls through",
			raw:       "```html\n<div>never closed",
			wantHTML:  "```html\n<div>never closed",
			wantShape: ShapeRawFallback,
		},
		{
			name:      "first html fence wins",
			raw:       "```html\n<p>one</p>\n```\n```html\n<p>two</p>\n```",
			wantHTML:  "<p>one</p>",
			wantShape: ShapeFencedPartial,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.raw)
			assert.Equal(t, tt.wantHTML, got.HTML)
			assert.Equal(t, tt.wantCSS, got.CSS)
			assert.Equal(t, tt.wantJS, got.JS)
			assert.Equal(t, tt.wantShape, got.Shape)
		})
	}
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "Here is your site.",
		Summary("Here is your site.\n```html\n<div></div>\n```"))

	// Code-only replies get the fixed sentence.
	assert.Equal(t, "Updated the website from your instructions.",
		Summary("```html\n<div></div>\n```"))

	long := ""
	for i := 0; i < 40; i++ {
		long += "very long sentence "
	}
	got := Summary(long)
	assert.LessOrEqual(t, len(got), 304)
	assert.Contains(t, got, "...")
}
