package media

import "github.com/ivlev/slideplay/internal/scenario"

// ActiveSubtitle returns the subtitle text shown at time t (seconds), or "" when no
// window contains t. Both window bounds are inclusive and the first window in list
// order wins, except that a window touched only at its end yields to a later window
// starting exactly at t: with [0,5] "A" and [5,10] "B", t=5 shows "B", while with
// [0,5] "A" and [2,8] "B" it shows "A".
//
// Overlapping windows are otherwise not disambiguated; see Overlaps.
func ActiveSubtitle(subs []scenario.Subtitle, t float64) string {
	for i, sub := range subs {
		if t < sub.Start || t > sub.End {
			continue
		}
		if t == sub.End && sub.Start < sub.End {
			for _, next := range subs[i+1:] {
				if next.Start == t {
					return next.Text
				}
			}
		}
		return sub.Text
	}
	return ""
}

// Overlaps returns index pairs of subtitle windows whose interiors overlap, for editors
// to flag as likely authoring mistakes.
func Overlaps(subs []scenario.Subtitle) [][2]int {
	var out [][2]int
	for i := range subs {
		for j := i + 1; j < len(subs); j++ {
			if subs[i].Start < subs[j].End && subs[j].Start < subs[i].End {
				out = append(out, [2]int{i, j})
			}
		}
	}
	return out
}
