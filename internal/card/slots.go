package card

// SlotState holds one mode index per character position plus the
// cycle-all cursor. It is not safe for concurrent use; FlashCard guards it.
type SlotState struct {
	modeCount int
	modes     []int
	cursor    int
}

// NewSlotState creates an empty slot vector cycling through modeCount modes
func NewSlotState(modeCount int) *SlotState {
	if modeCount < 1 {
		modeCount = 1
	}
	return &SlotState{modeCount: modeCount}
}

// Reset replaces the vector with length zeros and rewinds the cursor
func (s *SlotState) Reset(length int) {
	if length < 0 {
		length = 0
	}
	s.modes = make([]int, length)
	s.cursor = 0
}

// CycleOne advances the mode of slot index by one, wrapping. Out of range
// indexes are ignored.
func (s *SlotState) CycleOne(index int) bool {
	if index < 0 || index >= len(s.modes) {
		return false
	}
	s.modes[index] = (s.modes[index] + 1) % s.modeCount
	return true
}

// CycleAll sets every slot to mode
func (s *SlotState) CycleAll(mode int) {
	mode = s.clamp(mode)
	for i := range s.modes {
		s.modes[i] = mode
	}
}

// AdvanceCursor moves the cycle-all cursor one step past the furthest mode
// currently shown (the cursor itself or any slot), stores it and returns it.
func (s *SlotState) AdvanceCursor() int {
	base := s.cursor
	for _, m := range s.modes {
		if m > base {
			base = m
		}
	}
	s.cursor = (base + 1) % s.modeCount
	return s.cursor
}

// Len returns the number of slots
func (s *SlotState) Len() int {
	return len(s.modes)
}

// Mode returns the mode index of slot index, or 0 when out of range
func (s *SlotState) Mode(index int) int {
	if index < 0 || index >= len(s.modes) {
		return 0
	}
	return s.modes[index]
}

// Modes returns a copy of the mode vector
func (s *SlotState) Modes() []int {
	return append([]int(nil), s.modes...)
}

// Cursor returns the cycle-all cursor
func (s *SlotState) Cursor() int {
	return s.cursor
}

// ModeCount returns the number of modes cycled through
func (s *SlotState) ModeCount() int {
	return s.modeCount
}

func (s *SlotState) clamp(mode int) int {
	mode %= s.modeCount
	if mode < 0 {
		mode += s.modeCount
	}
	return mode
}
