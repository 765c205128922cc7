// Package progress derives completion percentages for modules and roadmaps.
package progress

import "math"

// ModuleProgress returns the completed share of a module's topics as a whole
// percentage. A module without topics is 0% complete.
func ModuleProgress(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	if completed > total {
		completed = total
	}
	return math.Round(100 * float64(completed) / float64(total))
}

// OverallProgress is the arithmetic mean of the module percentages, 0 when
// there are no modules.
func OverallProgress(modules []float64) float64 {
	if len(modules) == 0 {
		return 0
	}
	var sum float64
	for _, p := range modules {
		sum += p
	}
	return sum / float64(len(modules))
}

func Contains(topics []string, topic string) bool {
	for _, t := range topics {
		if t == topic {
			return true
		}
	}
	return false
}

// MarkCompleted adds topic to completed if it is one of topics and not yet
// there. It reports whether the set changed; completed is never modified in
// place.
func MarkCompleted(topics, completed []string, topic string) ([]string, bool) {
	if !Contains(topics, topic) || Contains(completed, topic) {
		return completed, false
	}
	next := make([]string, 0, len(completed)+1)
	next = append(next, completed...)
	next = append(next, topic)
	return next, true
}

// CountCompleted counts the entries of completed that are real topics, so
// stray entries can never push a module past 100%.
func CountCompleted(topics, completed []string) int {
	n := 0
	for _, c := range completed {
		if Contains(topics, c) {
			n++
		}
	}
	return n
}
