package primitives

import "fmt"

// Trie is a prefix tree over lowercase ASCII words, used for O(length) membership tests while
// compiling a lexicon.
type Trie struct {
	root trieNode
	size int
}

type trieNode struct {
	children [NumLetters]*trieNode
	terminal bool
}

// Add inserts word. It reports whether the word was new.
func (t *Trie) Add(word string) (bool, error) {
	cur := &t.root
	for _, r := range word {
		if !IsLetter(r) {
			return false, fmt.Errorf("rune %q is not lowercase ASCII", r)
		}
		if cur.children[r-minChar] == nil {
			cur.children[r-minChar] = &trieNode{}
		}
		cur = cur.children[r-minChar]
	}
	if cur.terminal {
		return false, nil
	}
	cur.terminal = true
	t.size++
	return true, nil
}

// Contains reports whether word was added.
func (t *Trie) Contains(word string) bool {
	cur := &t.root
	for _, r := range word {
		if !IsLetter(r) {
			return false
		}
		if cur = cur.children[r-minChar]; cur == nil {
			return false
		}
	}
	return cur.terminal
}

func (t *Trie) Len() int {
	return t.size
}
