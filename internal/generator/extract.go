package generator

import (
	"regexp"
	"strings"
)

// Shape tags how a raw model reply was interpreted. The model's output
// format is not guaranteed, so the interpretation is recorded as a
// closed set of outcomes instead of ad hoc string scanning.
type Shape string

const (
	// ShapeFencedAll: html, css and js all arrived in labeled fences.
	ShapeFencedAll Shape = "fenced_all"
	// ShapeFencedPartial: an html fence was found, css and/or js were not.
	ShapeFencedPartial Shape = "fenced_partial"
	// ShapeRawDocument: no html fence, but the reply itself is a document.
	ShapeRawDocument Shape = "raw_document"
	// ShapeRawFallback: nothing recognizable; the reply is used verbatim.
	ShapeRawFallback Shape = "raw_fallback"
)

// Extraction is the separable site source recovered from one reply.
// CSS and JS default to empty strings when absent.
type Extraction struct {
	HTML  string
	CSS   string
	JS    string
	Shape Shape
}

var fenceRe = regexp.MustCompile("(?s)```([a-zA-Z]*)[ \t]*\r?\n(.*?)```")

// Extract parses a raw model reply into html/css/js. It never rejects
// input: a wrongly classified fragment costs a cosmetic preview glitch,
// a rejected reply would cost the whole turn. Priority order:
//
//  1. fenced blocks labeled html/css/javascript, each taken independently
//  2. no html fence but the reply contains a document root marker —
//     the entire reply becomes the html
//  3. neither — the reply is html verbatim
func Extract(raw string) Extraction {
	blocks := map[string]string{}
	for _, m := range fenceRe.FindAllStringSubmatch(raw, -1) {
		lang := strings.ToLower(m[1])
		switch lang {
		case "javascript":
			lang = "js"
		case "htm":
			lang = "html"
		}
		if lang != "html" && lang != "css" && lang != "js" {
			continue
		}
		// First block of each language wins.
		if _, seen := blocks[lang]; !seen {
			blocks[lang] = strings.TrimSpace(m[2])
		}
	}

	ext := Extraction{CSS: blocks["css"], JS: blocks["js"]}

	if html, ok := blocks["html"]; ok {
		ext.HTML = html
		if ext.CSS != "" && ext.JS != "" {
			ext.Shape = ShapeFencedAll
		} else {
			ext.Shape = ShapeFencedPartial
		}
		return ext
	}

	lower := strings.ToLower(raw)
	if strings.Contains(lower, "<!doctype html") || strings.Contains(lower, "<html") {
		ext.HTML = raw
		ext.Shape = ShapeRawDocument
		return ext
	}

	ext.HTML = raw
	ext.Shape = ShapeRawFallback
	return ext
}

// Summary returns the prose surrounding any code fences, for the
// assistant's transcript turn. Code-only replies get a fixed sentence.
func Summary(raw string) string {
	prose := strings.TrimSpace(fenceRe.ReplaceAllString(raw, ""))
	if prose == "" {
		return "Updated the website from your instructions."
	}
	if len(prose) > 300 {
		prose = prose[:300] + "..."
	}
	return prose
}
