package tui

import (
	"sort"
	"strings"
)

// fuzzyMatchScore reports whether query is a subsequence of label and how
// good the match is. Matches at the start of the label, runs of consecutive
// matched characters and exact matches all score higher.
func fuzzyMatchScore(label, query string) (bool, int) {
	if query == "" {
		return true, 0
	}
	ll := strings.ToLower(label)
	lq := strings.ToLower(query)

	matchIdx := make([]int, 0, len(lq))
	start := 0
	for _, r := range lq {
		idx := strings.IndexRune(ll[start:], r)
		if idx < 0 {
			return false, 0
		}
		matchIdx = append(matchIdx, start+idx)
		start += idx + 1
	}

	score := len(lq)
	if matchIdx[0] == 0 {
		score += 10
	}
	for i := 1; i < len(matchIdx); i++ {
		if matchIdx[i] == matchIdx[i-1]+1 {
			score += 3
		}
	}
	if strings.EqualFold(strings.TrimSpace(label), strings.TrimSpace(query)) {
		score += 20
	}
	return true, score
}

// suggest ranks candidate lines against the partial input. Verbs come from
// the command vocabulary, history from the journal, newest first. Duplicates
// keep their first position.
func suggest(input string, verbs, history []string, max int) []string {
	type scored struct {
		label string
		score int
	}
	seen := make(map[string]bool)
	var matches []scored
	consider := func(label string) {
		if label == "" || seen[label] {
			return
		}
		seen[label] = true
		if ok, score := fuzzyMatchScore(label, input); ok {
			matches = append(matches, scored{label, score})
		}
	}
	for _, h := range history {
		consider(h)
	}
	for _, v := range verbs {
		consider(v)
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	if len(matches) > max {
		matches = matches[:max]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.label
	}
	return out
}
