package ladder

import (
	"fmt"
	"slices"
	"strings"
)

// Path is the result of a ladder query: the words from start to end inclusive. The zero Path
// means no path exists.
type Path struct {
	words []string
}

func NewPath(words []string) Path {
	return Path{
		words: words,
	}
}

// Found reports whether the query reached its target.
func (p Path) Found() bool {
	return len(p.words) > 0
}

func (p Path) Words() []string {
	return slices.Clone(p.words)
}

func (p Path) Len() int {
	return len(p.words)
}

// Steps is the number of single-letter changes along the path.
func (p Path) Steps() int {
	return max(len(p.words)-1, 0)
}

func (p Path) Start() string {
	if !p.Found() {
		return ""
	}
	return p.words[0]
}

func (p Path) End() string {
	if !p.Found() {
		return ""
	}
	return p.words[len(p.words)-1]
}

func (p Path) Repr() string {
	if !p.Found() {
		return "(no path)"
	}
	return strings.Join(p.words, " -> ")
}

func (p Path) DebugString() string {
	return fmt.Sprintf("Path{steps: %d, words: %v}", p.Steps(), p.words)
}
