package render

import (
	"strings"

	"github.com/ivlev/slideplay/internal/scenario"
)

// DefaultAnimationDuration applies when an animation omits its duration (seconds).
const DefaultAnimationDuration = 0.6

// slideDistance is how far slide-* entrances travel, in percent of the surface.
const slideDistance = 8.0

// Pose is a block's presentation at one instant.
type Pose struct {
	Opacity float64 `json:"opacity"`
	OffsetX float64 `json:"offsetX"` // percent of surface width
	OffsetY float64 `json:"offsetY"` // percent of surface height
	Scale   float64 `json:"scale"`
}

// Rest is the pose of a block with no pending entrance.
var Rest = Pose{Opacity: 1, Scale: 1}

type keyframe struct {
	at   float64 // 0..1 of the animation
	pose Pose
}

var entrances = map[string][]keyframe{
	"fade":        {{0, Pose{Scale: 1}}, {1, Rest}},
	"slide-up":    {{0, Pose{OffsetY: slideDistance, Scale: 1}}, {1, Rest}},
	"slide-down":  {{0, Pose{OffsetY: -slideDistance, Scale: 1}}, {1, Rest}},
	"slide-left":  {{0, Pose{OffsetX: slideDistance, Scale: 1}}, {1, Rest}},
	"slide-right": {{0, Pose{OffsetX: -slideDistance, Scale: 1}}, {1, Rest}},
	"zoom":        {{0, Pose{Scale: 0.8}}, {1, Rest}},
	"bounce": {
		{0, Pose{OffsetY: -slideDistance, Scale: 1}},
		{0.5, Pose{Opacity: 1, OffsetY: 2, Scale: 1}},
		{0.75, Pose{Opacity: 1, OffsetY: -1, Scale: 1}},
		{1, Rest},
	},
}

// Progress is the eased completion (0..1) of anim, sinceAppear seconds after its
// block first appeared.
func Progress(anim *scenario.Animation, sinceAppear float64) float64 {
	if anim == nil {
		return 1
	}
	d := anim.Duration
	if d <= 0 {
		d = DefaultAnimationDuration
	}
	t := (sinceAppear - anim.Delay) / d
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	return easeInOutCubic(t)
}

// PoseAt is the presentation of a block sinceAppear seconds after it first appeared.
// Unknown animation types render at rest.
func PoseAt(anim *scenario.Animation, sinceAppear float64) Pose {
	if anim == nil {
		return Rest
	}
	frames, ok := entrances[strings.ToLower(anim.Type)]
	if !ok {
		return Rest
	}
	d := anim.Duration
	if d <= 0 {
		d = DefaultAnimationDuration
	}
	return interpolate(frames, (sinceAppear-anim.Delay)/d)
}

// interpolate walks keyframes like a camera path: clamp outside the range, ease
// inside a segment.
func interpolate(frames []keyframe, t float64) Pose {
	if t <= frames[0].at {
		return frames[0].pose
	}
	last := frames[len(frames)-1]
	if t >= last.at {
		return last.pose
	}

	prev, next := frames[0], last
	for i := 0; i < len(frames)-1; i++ {
		if t >= frames[i].at && t < frames[i+1].at {
			prev, next = frames[i], frames[i+1]
			break
		}
	}
	span := next.at - prev.at
	if span == 0 {
		span = 0.001
	}
	k := easeInOutCubic((t - prev.at) / span)
	return Pose{
		Opacity: lerp(prev.pose.Opacity, next.pose.Opacity, k),
		OffsetX: lerp(prev.pose.OffsetX, next.pose.OffsetX, k),
		OffsetY: lerp(prev.pose.OffsetY, next.pose.OffsetY, k),
		Scale:   lerp(prev.pose.Scale, next.pose.Scale, k),
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - pow(-2*t+2, 3)/2
}

func pow(x float64, n int) float64 {
	result := 1.0
	for i := 0; i < n; i++ {
		result *= x
	}
	return result
}
