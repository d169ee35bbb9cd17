package catalog

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultChecklistSize is how many topics Checklist extracts when callers
// have no preference.
const DefaultChecklistSize = 6

var wordPattern = regexp.MustCompile(`[a-zA-Z]{4,}`)

// checklistStopwords are filler words excluded from topic extraction.
var checklistStopwords = map[string]bool{
	"this": true, "that": true, "with": true, "from": true, "they": true,
	"have": true, "will": true, "your": true, "about": true, "what": true,
	"when": true, "where": true, "which": true, "would": true, "there": true,
	"their": true, "them": true, "because": true, "into": true, "while": true,
	"these": true, "those": true, "only": true, "also": true, "very": true,
}

// Checklist extracts the k most frequent non-stopword terms of a transcript
// as a topic checklist. Ties resolve by first appearance in the text, so the
// output is deterministic.
func Checklist(transcript string, k int) []string {
	if k <= 0 {
		k = DefaultChecklistSize
	}

	counts := make(map[string]int)
	var order []string
	for _, w := range wordPattern.FindAllString(strings.ToLower(transcript), -1) {
		if checklistStopwords[w] {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	// order holds words by first appearance; a stable sort on count keeps
	// that as the tie-break.
	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] > counts[order[b]]
	})

	if len(order) > k {
		order = order[:k]
	}
	return order
}
