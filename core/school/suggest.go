package school

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

var (
	suggestMinRatio = .6
	suggestMax      = 3
)

// Suggest returns up to 3 names of the given kind that look like name,
// best match first. It is meant for "did you mean" hints after a failed lookup.
func (r *Registry) Suggest(kind, name string) []string {
	var names []string
	switch kind {
	case KindStudent:
		for _, s := range r.students {
			names = append(names, s.name)
		}
	case KindInstructor:
		for _, i := range r.instructors {
			names = append(names, i.name)
		}
	case KindCourse:
		for _, c := range r.courses {
			names = append(names, c.name)
		}
	}
	return closeMatches(name, names)
}

func closeMatches(word string, candidates []string) []string {
	type scored struct {
		name  string
		ratio float64
	}

	lword := strings.Split(strings.ToLower(word), "")
	matches := make([]scored, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, cand := range candidates {
		if word == "" || seen[cand] {
			continue
		}
		seen[cand] = true
		m := difflib.NewMatcher(lword, strings.Split(strings.ToLower(cand), ""))
		if m.QuickRatio() < suggestMinRatio {
			continue
		}
		if ratio := m.Ratio(); ratio >= suggestMinRatio {
			matches = append(matches, scored{name: cand, ratio: ratio})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].ratio > matches[j].ratio })

	out := make([]string, 0, suggestMax)
	for _, m := range matches {
		if len(out) == suggestMax {
			break
		}
		out = append(out, m.name)
	}
	return out
}
