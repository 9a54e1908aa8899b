package scenario

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleScenario() *Scenario {
	s := New("Onboarding", "intro")
	s.Description = "First day walkthrough"
	s.Settings.AutoAdvance = true
	s.Settings.TransitionDuration = 800
	s.Slides = append(s.Slides,
		Slide{
			ID:    "facts",
			Type:  TypeStats,
			Order: 1,
			Background: &Background{
				Type:    BackgroundImage,
				URL:     "https://cdn.example.com/office.jpg",
				Overlay: "rgba(0,0,0,0.5)",
			},
			Content: &StatsContent{Title: "In numbers", Stats: []Stat{
				{ID: "st1", Value: 120, Label: "Employees", Suffix: "+"},
				{ID: "st2", Value: 4.9, Label: "Rating", Color: "#f59e0b"},
			}},
		},
		Slide{
			ID:       "stage",
			Type:     TypeScenario,
			Order:    2,
			Duration: Float(12),
			Audio:    &Audio{URL: "narration.mp3", Autoplay: true},
			Subtitles: []Subtitle{
				{Start: 0, End: 5, Text: "A"},
				{Start: 5, End: 10, Text: "B"},
			},
			Content: &StageContent{Elements: []Element{
				{ID: "e1", Type: ElementText, Content: "Welcome", Position: &Position{X: 10, Y: 20}},
				{ID: "e2", Type: ElementIcon, Content: "🚀", TimingStart: Float(2), TimingEnd: Float(6),
					Animation: &Animation{Type: "fade", Delay: 0.2, Duration: 0.6}},
			}},
		},
		Slide{
			ID:    "future",
			Type:  "hologram",
			Order: 3,
			Content: &Unsupported{Tag: "hologram", Fields: map[string]any{
				"beam": map[string]any{"power": 3.0, "colors": []any{"red", "blue"}},
			}},
		},
	)
	return s
}

func TestExportImportRoundTrip(t *testing.T) {
	orig := sampleScenario()

	data, err := Marshal(orig)
	require.NoError(t, err)

	back, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, orig, back)

	again, err := Marshal(back)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
}

func TestMarshalFlattensVariantPayload(t *testing.T) {
	data, err := Marshal(sampleScenario())
	require.NoError(t, err)

	var tree map[string]any
	require.NoError(t, json.Unmarshal(data, &tree))
	slides := tree["slides"].([]any)
	stats := slides[1].(map[string]any)

	assert.Equal(t, "stats", stats["type"])
	assert.Equal(t, "In numbers", stats["title"])
	assert.Len(t, stats["stats"], 2)

	future := slides[3].(map[string]any)
	assert.Equal(t, "hologram", future["type"])
	assert.Contains(t, future, "beam")
}

func TestUnmarshalRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"version": "1.0",`},
		{"empty slides", `{"version":"1.0","title":"t","slides":[]}`},
		{"missing slides", `{"version":"1.0","title":"t"}`},
		{"slide without id", `{"version":"1.0","title":"t","slides":[{"type":"title","order":0}]}`},
		{"slides not array", `{"version":"1.0","title":"t","slides":{}}`},
		{"bad version", `{"version":"banana","title":"t","slides":[{"id":"a","type":"title","order":0}]}`},
		{"duplicate ids", `{"version":"1.0","title":"t","slides":[{"id":"a","type":"title","order":0},{"id":"a","type":"title","order":1}]}`},
		{"trailing data", `{"version":"1.0","title":"t","slides":[{"id":"a","type":"title","order":0}]} {}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Unmarshal([]byte(tt.data))
			require.ErrorIs(t, err, ErrInvalidDocument)
			assert.Nil(t, s)
		})
	}
}

func TestUnmarshalRejectsFutureMajor(t *testing.T) {
	_, err := Unmarshal([]byte(`{"version":"2.1","title":"t","slides":[{"id":"a","type":"title","order":0}]}`))
	require.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestUnmarshalToleratesMalformedPayload(t *testing.T) {
	data := `{"version":"1.0","title":"t","slides":[
		{"id":"a","type":"stats","order":0},
		{"id":"b","type":"stats","order":1,"stats":"oops"}
	]}`

	s, err := Unmarshal([]byte(data))
	require.NoError(t, err)

	missing, ok := s.Slides[0].Content.(*StatsContent)
	require.True(t, ok)
	assert.Empty(t, missing.Stats)

	broken, ok := s.Slides[1].Content.(*Unsupported)
	require.True(t, ok)
	assert.Equal(t, TypeStats, broken.Tag)
	assert.Equal(t, "oops", broken.Fields["stats"])
}

func TestYAMLRoundTrip(t *testing.T) {
	orig := sampleScenario()

	data, err := MarshalYAML(orig)
	require.NoError(t, err)
	t.Logf("yaml:\n%s", data)

	back, err := UnmarshalYAML(data)
	require.NoError(t, err)
	assert.Equal(t, orig, back)
}

func TestDecodeSniffsFormat(t *testing.T) {
	orig := sampleScenario()

	js, err := MarshalIndent(orig)
	require.NoError(t, err)
	fromJSON, err := Decode(js)
	require.NoError(t, err)
	assert.Equal(t, orig, fromJSON)

	ys, err := MarshalYAML(orig)
	require.NoError(t, err)
	fromYAML, err := Decode(ys)
	require.NoError(t, err)
	assert.Equal(t, orig, fromYAML)

	_, err = Decode([]byte("   "))
	require.ErrorIs(t, err, ErrInvalidDocument)
	_, err = Decode([]byte("- just\n- a list\n"))
	require.ErrorIs(t, err, ErrInvalidDocument)
}
