package stats

import "strings"

// Jaccard returns |intersection| / |union| of two tag sets. Tags are
// compared case-insensitively after trimming whitespace; duplicates within
// one set count once. An empty union yields 0.
func Jaccard(a, b []string) float64 {
	setA := normalizeSet(a)
	setB := normalizeSet(b)

	union := len(setA)
	intersection := 0
	for tag := range setB {
		if _, ok := setA[tag]; ok {
			intersection++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func normalizeSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		set[tag] = struct{}{}
	}
	return set
}
