// Package spelling suggests the closest known card title for a misspelled
// word. Candidates are gathered from a trigram index and ranked by edit
// distance.
package spelling

import (
	"github.com/agnivade/levenshtein"

	"github.com/roach88/cardsearch/internal/textnorm"
)

// Suggester is an immutable title index. It is safe for concurrent use.
type Suggester struct {
	titles []string
	grams  map[string][]int
}

// New indexes titles. Their order breaks ties between equally close
// suggestions: the earlier title wins.
func New(titles []string) *Suggester {
	s := &Suggester{
		titles: make([]string, len(titles)),
		grams:  map[string][]int{},
	}
	for i, title := range titles {
		folded := textnorm.Name(title)
		s.titles[i] = folded
		for _, g := range trigrams(folded) {
			ids := s.grams[g]
			if len(ids) == 0 || ids[len(ids)-1] != i {
				s.grams[g] = append(ids, i)
			}
		}
	}
	return s
}

// Suggest returns the index of the title closest to word and true, or false
// when no title is close enough to be a plausible correction.
func (s *Suggester) Suggest(word string) (int, bool) {
	w := textnorm.Name(word)
	if w == "" {
		return 0, false
	}

	candidates := map[int]struct{}{}
	for _, g := range trigrams(w) {
		for _, id := range s.grams[g] {
			candidates[id] = struct{}{}
		}
	}

	best, bestDist := -1, maxDistance(w)+1
	for id := range candidates {
		d := levenshtein.ComputeDistance(w, s.titles[id])
		if d < bestDist || (d == bestDist && id < best) {
			best, bestDist = id, d
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// maxDistance is the largest edit distance still accepted as a correction.
func maxDistance(word string) int {
	n := len([]rune(word))
	if n <= 4 {
		return 1
	}
	return n / 3
}

// trigrams returns the padded character trigrams of s.
func trigrams(s string) []string {
	r := []rune("  " + s + " ")
	out := make([]string, 0, len(r))
	for i := 0; i+3 <= len(r); i++ {
		out = append(out, string(r[i:i+3]))
	}
	return out
}
