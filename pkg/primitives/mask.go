package primitives

import (
	"fmt"
	"iter"
	"math/bits"
)

const (
	minChar = 'a'
	maxChar = 'z'

	// NumLetters is the size of the alphabet a Mask can describe.
	NumLetters = int(maxChar-minChar) + 1

	// MaxMask has every meaningful bit set. The upper 6 bits of a 32-bit mask are reserved and
	// always zero.
	MaxMask Mask = 1<<NumLetters - 1
)

// Mask is a substitution mask: the set of letters that, placed into the blanked slot of a
// wildcard pattern, spell a word in the dictionary.
//
// Letters are laid out in reverse alphabetical order from the least significant bit, so bit 0 is
// 'z' and bit 25 is 'a'.
type Mask uint32

// BitFor returns the bit position used for the letter at the given alphabet index (0 for 'a').
func BitFor(letterIndex int) uint {
	return uint(NumLetters - 1 - letterIndex)
}

// LetterAt is the inverse of BitFor.
func LetterAt(bit uint) rune {
	return maxChar - rune(bit)
}

// IsLetter reports whether r can be stored in a Mask.
func IsLetter(r rune) bool {
	return r >= minChar && r <= maxChar
}

// MaskOf returns a mask holding the given letters.
func MaskOf(letters ...rune) (Mask, error) {
	var m Mask
	for _, r := range letters {
		var err error
		if m, err = m.Add(r); err != nil {
			return 0, err
		}
	}
	return m, nil
}

// Add returns a copy of m that also contains r.
func (m Mask) Add(r rune) (Mask, error) {
	if !IsLetter(r) {
		return m, fmt.Errorf("character %c is out of range", r)
	}
	return m | 1<<BitFor(int(r-minChar)), nil
}

// Contains checks if a letter is in the mask.
func (m Mask) Contains(r rune) bool {
	if !IsLetter(r) {
		return false
	}
	return m&(1<<BitFor(int(r-minChar))) != 0
}

// Count returns the number of letters in the mask.
func (m Mask) Count() int {
	return bits.OnesCount32(uint32(m & MaxMask))
}

// IsEmpty reports whether no substitution is possible.
func (m Mask) IsEmpty() bool {
	return m&MaxMask == 0
}

// Valid reports whether only the 26 meaningful bits are used.
func (m Mask) Valid() bool {
	return m&^MaxMask == 0
}

// Letters decodes the mask, scanning from the lowest bit upward. The order is therefore
// reverse alphabetical and always the same for a given mask.
func (m Mask) Letters() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		b := uint32(m & MaxMask)
		for b != 0 {
			tz := bits.TrailingZeros32(b)
			if !yield(LetterAt(uint(tz))) {
				return
			}
			b &= b - 1
		}
	}
}

func (m Mask) String() string {
	letters := make([]rune, 0, m.Count())
	for r := range m.Letters() {
		letters = append(letters, r)
	}
	return fmt.Sprintf("Mask(%s)", string(letters))
}
