package domain

// WinningLength is the sequence length at which the device declares victory
const WinningLength = 100

// Sequence is the append-only list of colors shown by the device so far
type Sequence struct {
	colors []Color
}

// Append adds the newly observed color at the end
func (s *Sequence) Append(c Color) error {
	if !c.Valid() {
		return ErrUnknownColor
	}
	if s.Complete() {
		return ErrSequenceComplete
	}
	s.colors = append(s.colors, c)
	return nil
}

// Len returns the number of colors learned
func (s *Sequence) Len() int {
	return len(s.colors)
}

// At returns the i-th color in insertion order
func (s *Sequence) At(i int) Color {
	return s.colors[i]
}

// Colors returns a copy of the sequence
func (s *Sequence) Colors() []Color {
	out := make([]Color, len(s.colors))
	copy(out, s.colors)
	return out
}

// Complete reports whether the winning length has been reached
func (s *Sequence) Complete() bool {
	return len(s.colors) >= WinningLength
}
