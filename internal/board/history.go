package board

// MaxPlies is the capacity of the history stack: the longest game a
// position can record.
const MaxPlies = 1024

// state is the part of a position that move application cannot recompute
// on the way back.
type state struct {
	hash           uint64
	castlingRights CastlingRights
	enPassant      Square
	halfMoveClock  int
}

// history is a fixed-capacity stack of states, one per move made.
type history struct {
	states [MaxPlies]state
	size   int
}

func (h *history) push(s state) {
	if h.size == MaxPlies {
		panic("board: history overflow")
	}
	h.states[h.size] = s
	h.size++
}

func (h *history) pop() state {
	if h.size == 0 {
		panic("board: history underflow")
	}
	h.size--
	return h.states[h.size]
}
