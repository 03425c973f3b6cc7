package primitives

import (
	"slices"
	"testing"
)

func TestBitFor(t *testing.T) {
	tests := []struct {
		name   string
		letter rune
		want   uint
	}{
		{"a is the highest bit", 'a', 25},
		{"b", 'b', 24},
		{"m", 'm', 13},
		{"z is the lowest bit", 'z', 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BitFor(int(tt.letter - 'a')); got != tt.want {
				t.Errorf("BitFor(%c) = %d, want %d", tt.letter, got, tt.want)
			}
			if got := LetterAt(tt.want); got != tt.letter {
				t.Errorf("LetterAt(%d) = %c, want %c", tt.want, got, tt.letter)
			}
		})
	}
}

func TestMask_Add(t *testing.T) {
	var m Mask

	tests := []struct {
		name      string
		char      rune
		wantErr   bool
		wantCount int
	}{
		{"add 'a'", 'a', false, 1},
		{"add 'b'", 'b', false, 2},
		{"add 'z'", 'z', false, 3},
		{"add 'a' again", 'a', false, 3}, // should not increase count
		{"add out of range low", 'A', true, 3},
		{"add out of range high", '~', true, 3},
		{"add wildcard", Wildcard, true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			m, err = m.Add(tt.char)
			if (err != nil) != tt.wantErr {
				t.Errorf("Add() error = %v, wantErr %v", err, tt.wantErr)
			}
			if m.Count() != tt.wantCount {
				t.Errorf("count = %d, want %d", m.Count(), tt.wantCount)
			}
		})
	}

	if m != 1<<25|1<<24|1 {
		t.Errorf("mask = %026b, want a, b and z bits", uint32(m))
	}
}

func TestMask_Contains(t *testing.T) {
	m, err := MaskOf('a', 'c')
	if err != nil {
		t.Fatalf("MaskOf() error = %v", err)
	}

	tests := []struct {
		name string
		char rune
		want bool
	}{
		{"contains 'a'", 'a', true},
		{"contains 'b'", 'b', false},
		{"contains 'c'", 'c', true},
		{"contains out of range", '`', false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Contains(tt.char); got != tt.want {
				t.Errorf("Contains() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMask_Letters(t *testing.T) {
	tests := []struct {
		name string
		mask Mask
		want []rune
	}{
		{"empty", 0, nil},
		{"only z", 1, []rune{'z'}},
		{"only a", 1 << 25, []rune{'a'}},
		{"reverse alphabetical", 1<<25 | 1<<13 | 1<<2, []rune{'x', 'm', 'a'}},
		{"full", MaxMask, []rune("zyxwvutsrqponmlkjihgfedcba")},
		{"reserved bits ignored", 1<<30 | 1, []rune{'z'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(tt.mask.Letters())
			if !slices.Equal(got, tt.want) {
				t.Errorf("Letters() = %q, want %q", string(got), string(tt.want))
			}
		})
	}
}

func TestMask_RoundTrip(t *testing.T) {
	// Every subset built from letters decodes back to exactly those letters.
	for _, letters := range []string{"", "a", "z", "cold", "abcdefghijklmnopqrstuvwxyz", "qjx"} {
		m, err := MaskOf([]rune(letters)...)
		if err != nil {
			t.Fatalf("MaskOf(%q) error = %v", letters, err)
		}
		if m.Count() != len(letters) {
			t.Errorf("MaskOf(%q).Count() = %d", letters, m.Count())
		}
		for r := 'a'; r <= 'z'; r++ {
			want := slices.Contains([]rune(letters), r)
			if got := slices.Contains(slices.Collect(m.Letters()), r); got != want {
				t.Errorf("MaskOf(%q) decodes %c = %v, want %v", letters, r, got, want)
			}
		}
	}
}

func TestMask_Valid(t *testing.T) {
	if !MaxMask.Valid() {
		t.Error("MaxMask.Valid() = false, want true")
	}
	if Mask(1 << 26).Valid() {
		t.Error("Mask(1<<26).Valid() = true, want false")
	}
	if !Mask(0).IsEmpty() {
		t.Error("Mask(0).IsEmpty() = false, want true")
	}
	if MaxMask.Count() != NumLetters {
		t.Errorf("MaxMask.Count() = %d, want %d", MaxMask.Count(), NumLetters)
	}
}
