package ladder

import (
	"slices"

	"crosswarped.com/ladder/pkg/primitives"
)

// searchNode is one discovered word. parent indexes the search arena; the root has parent -1.
type searchNode struct {
	word   string
	parent int
}

// search holds the state of a single breadth-first query. It is never shared between queries.
type search struct {
	lexicon *primitives.Lexicon
	target  string

	nodes   []searchNode
	visited map[string]struct{}
	queue   []int
	head    int
}

func newSearch(lexicon *primitives.Lexicon, target string) *search {
	return &search{
		lexicon: lexicon,
		target:  target,
		visited: make(map[string]struct{}),
	}
}

// discover marks word visited, records it under parent and enqueues it. It reports whether word
// is the target; the target is recognised here, before it is ever dequeued.
func (s *search) discover(word string, parent int) (int, bool) {
	s.visited[word] = struct{}{}
	h := len(s.nodes)
	s.nodes = append(s.nodes, searchNode{word: word, parent: parent})
	if word == s.target {
		return h, true
	}
	s.queue = append(s.queue, h)
	return h, false
}

// run explores from start in FIFO order and returns the handle of the target node.
//
// Edges are unweighted, so the first discovery of the target is along a shortest path.
func (s *search) run(start string) (int, bool) {
	if h, found := s.discover(start, -1); found {
		return h, true
	}
	for s.head < len(s.queue) {
		cur := s.queue[s.head]
		s.head++

		// Words missing from the lexicon have no neighbors: a dead end.
		for next := range s.lexicon.Neighbors(s.nodes[cur].word) {
			if _, seen := s.visited[next]; seen {
				continue
			}
			if h, found := s.discover(next, cur); found {
				return h, true
			}
		}
	}
	return -1, false
}

// pathTo follows parent handles back to the root and returns the words root first.
func (s *search) pathTo(h int) []string {
	var words []string
	for ; h >= 0; h = s.nodes[h].parent {
		words = append(words, s.nodes[h].word)
	}
	slices.Reverse(words)
	return words
}
