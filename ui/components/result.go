package components

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/Rorical/ezframe/internal/models"
	"github.com/Rorical/ezframe/ui/styles"
)

// RenderResult draws the shared decode state. Advanced mode shows the raw
// JSON of the result instead of the tree.
func RenderResult(t styles.Theme, snap models.DecodeSnapshot, advanced bool, loadingDots int, width int) string {
	var body string
	switch {
	case snap.HasError():
		body = styles.ErrorStyle(t).Render("Error: " + snap.Error)
	case snap.HasResult():
		if advanced {
			body = RenderJSON(snap.Result)
		} else {
			body = RenderTree(t, snap.Result)
		}
	case snap.IsPending():
		body = styles.PendingStyle(t).Render("Decoding" + strings.Repeat(".", loadingDots))
	default:
		body = styles.MutedStyle(t).Render("Nothing decoded yet")
	}

	title := "Result"
	if snap.Frame != "" {
		title += " · " + snap.Frame
	}
	if snap.IsPending() && (snap.HasResult() || snap.HasError()) {
		title += " (updating)"
	}

	return styles.TitleStyle(t).Render(title) + "\n" +
		styles.PanelStyle(t, width).Render(strings.TrimRight(body, "\n"))
}

// RenderJSON pretty-prints v with two space indentation.
func RenderJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

// RenderTree draws a decoded value as an indented key/value tree. Object
// keys are sorted.
func RenderTree(t styles.Theme, v any) string {
	var b strings.Builder
	writeTree(&b, t, v, 0)
	return b.String()
}

func writeTree(b *strings.Builder, t styles.Theme, v any, depth int) {
	keyStyle := styles.KeyStyle(t)
	valueStyle := styles.ValueStyle(t)
	pad := strings.Repeat("  ", depth)

	switch node := v.(type) {
	case map[string]any:
		if len(node) == 0 {
			b.WriteString(pad + valueStyle.Render("{}") + "\n")
			return
		}
		keys := make([]string, 0, len(node))
		for k := range node {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			writeEntry(b, t, pad+keyStyle.Render(k), node[k], depth)
		}
	case []any:
		if len(node) == 0 {
			b.WriteString(pad + valueStyle.Render("[]") + "\n")
			return
		}
		for i, item := range node {
			writeEntry(b, t, pad+keyStyle.Render(fmt.Sprintf("[%d]", i)), item, depth)
		}
	default:
		b.WriteString(pad + valueStyle.Render(scalar(node)) + "\n")
	}
}

func writeEntry(b *strings.Builder, t styles.Theme, label string, v any, depth int) {
	switch v.(type) {
	case map[string]any, []any:
		b.WriteString(label + ":\n")
		writeTree(b, t, v, depth+1)
	default:
		b.WriteString(label + ": " + styles.ValueStyle(t).Render(scalar(v)) + "\n")
	}
}

func scalar(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprint(v)
}
