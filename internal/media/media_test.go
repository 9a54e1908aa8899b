package media

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/slideplay/internal/clock"
	"github.com/ivlev/slideplay/internal/scenario"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestActiveSubtitle(t *testing.T) {
	subs := []scenario.Subtitle{{Start: 0, End: 5, Text: "A"}, {Start: 5, End: 10, Text: "B"}}

	tests := []struct {
		at   float64
		want string
	}{
		{0, "A"},
		{4.9, "A"},
		{5.0, "B"},
		{7, "B"},
		{10, "B"},
		{11, ""},
		{-1, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ActiveSubtitle(subs, tt.at), "t=%v", tt.at)
	}

	assert.Empty(t, ActiveSubtitle(nil, 3))
}

func TestActiveSubtitleOverlapFirstWins(t *testing.T) {
	subs := []scenario.Subtitle{{Start: 0, End: 6, Text: "first"}, {Start: 4, End: 8, Text: "second"}}

	assert.Equal(t, "first", ActiveSubtitle(subs, 5))
	assert.Equal(t, "second", ActiveSubtitle(subs, 7))
	assert.Equal(t, [][2]int{{0, 1}}, Overlaps(subs))

	touching := []scenario.Subtitle{{Start: 0, End: 5}, {Start: 5, End: 10}}
	assert.Empty(t, Overlaps(touching))
}

func TestActiveSubtitleAtWindowEnd(t *testing.T) {
	tests := []struct {
		name string
		subs []scenario.Subtitle
		want string
	}{
		{"adjacent", []scenario.Subtitle{{Start: 0, End: 5, Text: "A"}, {Start: 5, End: 10, Text: "B"}}, "B"},
		{"overlap keeps first", []scenario.Subtitle{{Start: 0, End: 5, Text: "A"}, {Start: 2, End: 8, Text: "B"}}, "A"},
		{"later adjacent wins", []scenario.Subtitle{{Start: 0, End: 5, Text: "A"}, {Start: 2, End: 8, Text: "B"}, {Start: 5, End: 9, Text: "C"}}, "C"},
		{"earlier start ignored", []scenario.Subtitle{{Start: 2, End: 8, Text: "B"}, {Start: 0, End: 5, Text: "A"}}, "B"},
		{"only window", []scenario.Subtitle{{Start: 0, End: 5, Text: "A"}}, "A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ActiveSubtitle(tt.subs, 5))
		})
	}
}

func TestNaturalLength(t *testing.T) {
	assert.Zero(t, NaturalLength(nil))
	assert.Equal(t, 12.0, NaturalLength(&scenario.Slide{Duration: scenario.Float(12)}))
	assert.Equal(t, 9.0, NaturalLength(&scenario.Slide{
		Subtitles: []scenario.Subtitle{{Start: 0, End: 4}},
		Content: &scenario.StageContent{Elements: []scenario.Element{
			{ID: "a", TimingStart: scenario.Float(1), TimingEnd: scenario.Float(9)},
			{ID: "b", TimingStart: scenario.Float(7)},
		}},
	}))
}

func TestSimulatedTransportRunsToEnd(t *testing.T) {
	clk := clock.NewFake(epoch)
	tr := NewSimulated(clk, SimulatedOptions{Duration: 1, Interval: 250 * time.Millisecond})

	var events []Event
	var times []float64
	tr.Subscribe(func(ev Event, at float64) {
		events = append(events, ev)
		times = append(times, at)
	})

	require.NoError(t, tr.Play())
	clk.Advance(2 * time.Second)

	assert.Equal(t, []Event{EventPlay, EventTimeUpdate, EventTimeUpdate, EventTimeUpdate, EventTimeUpdate, EventEnded}, events)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1, 1}, times)
	assert.False(t, tr.Playing())
	assert.Zero(t, clk.Pending())
}

func TestSimulatedTransportPauseAndClose(t *testing.T) {
	clk := clock.NewFake(epoch)
	tr := NewSimulated(clk, SimulatedOptions{Duration: 10, Interval: time.Second})

	updates := 0
	unsubscribe := tr.Subscribe(func(ev Event, _ float64) {
		if ev == EventTimeUpdate {
			updates++
		}
	})

	require.NoError(t, tr.Play())
	require.NoError(t, tr.Play())
	clk.Advance(2 * time.Second)
	tr.Pause()
	tr.Pause()
	clk.Advance(5 * time.Second)
	assert.Equal(t, 2, updates)
	assert.Equal(t, 2.0, tr.CurrentTime())

	unsubscribe()
	require.NoError(t, tr.Play())
	clk.Advance(time.Second)
	assert.Equal(t, 2, updates)

	tr.Close()
	assert.Zero(t, clk.Pending())
	assert.ErrorIs(t, tr.Play(), ErrClosed)
}

func TestSimulatedTransportBlocked(t *testing.T) {
	tr := NewSimulated(clock.NewFake(epoch), SimulatedOptions{Duration: 3, BlockAutoplay: true})
	assert.ErrorIs(t, tr.Play(), ErrAutoplayBlocked)
	tr.Unblock()
	assert.NoError(t, tr.Play())
}

func TestSimulatedTransportLoops(t *testing.T) {
	clk := clock.NewFake(epoch)
	tr := NewSimulated(clk, SimulatedOptions{Duration: 1, Interval: 500 * time.Millisecond, Loop: true})
	ended := false
	tr.Subscribe(func(ev Event, _ float64) {
		if ev == EventEnded {
			ended = true
		}
	})

	require.NoError(t, tr.Play())
	clk.Advance(3 * time.Second)
	assert.False(t, ended)
	assert.True(t, tr.Playing())
}

func narratedSlide() *scenario.Slide {
	return &scenario.Slide{
		ID:    "s1",
		Type:  scenario.TypeScenario,
		Audio: &scenario.Audio{URL: "voice.mp3", Autoplay: true},
		Subtitles: []scenario.Subtitle{
			{Start: 0, End: 5, Text: "A"},
			{Start: 5, End: 10, Text: "B"},
		},
		Content: &scenario.StageContent{},
	}
}

func TestSynchronizerFollowsTransport(t *testing.T) {
	clk := clock.NewFake(epoch)
	var subtitles []string
	ended := 0
	s := NewSynchronizer(Options{
		Transports: Simulator{Clock: clk, Interval: time.Second, AudioDuration: func(string) float64 { return 11 }}.Factory(),
		OnSubtitle: func(text string) { subtitles = append(subtitles, text) },
		OnEnded:    func() { ended++ },
	})

	s.Mount(narratedSlide(), true)
	assert.True(t, s.IsPlaying())
	assert.Equal(t, "A", s.ActiveSubtitle())
	assert.Equal(t, 11.0, s.Duration())

	clk.Advance(5 * time.Second)
	assert.Equal(t, 5.0, s.CurrentTime())
	assert.Equal(t, "B", s.ActiveSubtitle())

	clk.Advance(10 * time.Second)
	assert.Equal(t, []string{"B", ""}, subtitles)
	assert.Equal(t, 1, ended)
	assert.False(t, s.IsPlaying())

	s.Play()
	clk.Advance(20 * time.Second)
	assert.Equal(t, 2, ended)
}

func TestSynchronizerSwallowsBlockedAutoplay(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s := NewSynchronizer(Options{
		Transports: Simulator{Clock: clock.NewFake(epoch), BlockAutoplay: true}.Factory(),
		Logger:     logger,
	})

	s.Mount(narratedSlide(), true)
	assert.False(t, s.IsPlaying())
	assert.Contains(t, logs.String(), "playback refused")

	silent := &scenario.Slide{ID: "quiet", Duration: scenario.Float(3), Content: &scenario.TitleContent{}}
	s.Mount(silent, true)
	assert.True(t, s.IsPlaying())
}

func TestSynchronizerTogglesAreIdempotent(t *testing.T) {
	tr := &countingTransport{}
	s := NewSynchronizer(Options{Transports: func(*scenario.Slide) Transport { return tr }})
	s.Mount(narratedSlide(), false)

	s.Pause()
	assert.Zero(t, tr.pauses)

	s.Play()
	s.Play()
	assert.Equal(t, 1, tr.plays)

	s.Pause()
	s.Pause()
	assert.Equal(t, 1, tr.pauses)

	mutes := tr.mutes
	s.SetMuted(true)
	s.SetMuted(true)
	assert.Equal(t, mutes+1, tr.mutes)
	s.ToggleMute()
	assert.False(t, s.IsMuted())
}

func TestSynchronizerEndedOncePerRun(t *testing.T) {
	tr := &countingTransport{}
	ended := 0
	s := NewSynchronizer(Options{
		Transports: func(*scenario.Slide) Transport { return tr },
		OnEnded:    func() { ended++ },
	})
	s.Mount(narratedSlide(), true)

	tr.fire(EventEnded, 10)
	tr.fire(EventEnded, 10)
	assert.Equal(t, 1, ended)
}

func TestSynchronizerUnmountDetaches(t *testing.T) {
	tr := &countingTransport{}
	updates := 0
	s := NewSynchronizer(Options{
		Transports:   func(*scenario.Slide) Transport { return tr },
		OnTimeUpdate: func(float64) { updates++ },
	})
	s.Mount(narratedSlide(), true)
	tr.fire(EventTimeUpdate, 1)
	require.Equal(t, 1, updates)

	s.Unmount()
	assert.True(t, tr.closed)
	assert.Empty(t, tr.listeners)
	assert.False(t, s.IsPlaying())
}

type countingTransport struct {
	plays, pauses, mutes int
	closed               bool
	listeners            map[int]Listener
	next                 int
}

func (c *countingTransport) Play() error          { c.plays++; return nil }
func (c *countingTransport) Pause()               { c.pauses++ }
func (c *countingTransport) SetMuted(bool)        { c.mutes++ }
func (c *countingTransport) CurrentTime() float64 { return 0 }
func (c *countingTransport) Duration() float64    { return 10 }
func (c *countingTransport) Close()               { c.closed = true }

func (c *countingTransport) Subscribe(l Listener) func() {
	if c.listeners == nil {
		c.listeners = map[int]Listener{}
	}
	c.next++
	id := c.next
	c.listeners[id] = l
	return func() { delete(c.listeners, id) }
}

func (c *countingTransport) fire(ev Event, t float64) {
	for _, l := range c.listeners {
		l(ev, t)
	}
}
