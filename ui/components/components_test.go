package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Rorical/ezframe/internal/models"
	"github.com/Rorical/ezframe/ui/styles"
)

func TestRenderTreeSortsKeysAndNests(t *testing.T) {
	out := RenderTree(styles.Light(), map[string]any{
		"type":    "status",
		"channel": 3.0,
		"flags":   []any{true, nil},
	})

	assert.Contains(t, out, "channel: 3")
	assert.Contains(t, out, "type: status")
	assert.Contains(t, out, "flags:\n")
	assert.Contains(t, out, "  [0]: true")
	assert.Contains(t, out, "  [1]: null")
	assert.Less(t, strings.Index(out, "channel"), strings.Index(out, "flags"))
	assert.Less(t, strings.Index(out, "flags"), strings.Index(out, "type"))
}

func TestRenderTreeScalarAndEmpty(t *testing.T) {
	assert.Equal(t, "42\n", RenderTree(styles.Light(), 42.0))
	assert.Equal(t, "{}\n", RenderTree(styles.Light(), map[string]any{}))
}

func TestRenderResultStates(t *testing.T) {
	theme := styles.Dark()

	idle := RenderResult(theme, models.DecodeSnapshot{}, false, 0, 80)
	assert.Contains(t, idle, "Nothing decoded yet")

	pending := RenderResult(theme, models.DecodeSnapshot{Phase: models.PhasePending, InFlight: 1}, false, 2, 80)
	assert.Contains(t, pending, "Decoding..")

	failed := RenderResult(theme, models.DecodeSnapshot{Phase: models.PhaseFailed, Error: "bad frame", Frame: "<ZZ>"}, false, 0, 80)
	assert.Contains(t, failed, "Error: bad frame")
	assert.Contains(t, failed, "<ZZ>")

	ok := models.DecodeSnapshot{Phase: models.PhaseSucceeded, Result: map[string]any{"id": 7.0}}
	assert.Contains(t, RenderResult(theme, ok, false, 0, 80), "id: 7")
	assert.Contains(t, RenderResult(theme, ok, true, 0, 80), `"id": 7`)

	ok.InFlight = 1
	assert.Contains(t, RenderResult(theme, ok, false, 0, 80), "(updating)")
}

func TestRenderFrames(t *testing.T) {
	theme := styles.Light()

	assert.Contains(t, RenderFrames(theme, models.FrameSelection{Selected: -1}), "No frames yet")

	out := RenderFrames(theme, models.FrameSelection{Frames: []string{"<A1>", "<B2>"}, Selected: 1})
	assert.Contains(t, out, "Frames (2)")
	assert.Contains(t, out, "1  <A1>")
	assert.Contains(t, out, "2  <B2>")
}

func TestRenderAbout(t *testing.T) {
	out := RenderAbout(styles.Dark(), models.Preferences{AdvancedMode: true}, 100)
	assert.Contains(t, out, "(not set)")
	assert.Contains(t, out, "Advanced mode: on")
	assert.Contains(t, out, "Theme:         dark")
}

func TestRenderStatusDots(t *testing.T) {
	assert.Contains(t, RenderStatus(styles.Light(), "Decoding", true, 3, 40), "Decoding...")
	assert.NotContains(t, RenderStatus(styles.Light(), "Ready", false, 3, 40), "Ready.")
}

func TestForMode(t *testing.T) {
	assert.Equal(t, "dark", styles.ForMode(true).Name)
	assert.Equal(t, "light", styles.ForMode(false).Name)
}
