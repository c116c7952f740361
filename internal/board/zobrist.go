package board

import "sync"

// DefaultZobristSeed seeds the process-wide table.
const DefaultZobristSeed uint64 = 0x98F107A2BEEF1234

// Zobrist holds the random keys used to hash positions.
// A table is immutable once built and may be shared by any number of
// positions and goroutines. Hashes are only comparable between positions
// that share a table.
type Zobrist struct {
	pieces     [NumPieces][NumSquares]uint64
	castling   [16]uint64 // castling[m] is the XOR of the single-flag keys in m
	enPassant  [NumSquares]uint64
	sideToMove uint64 // XOR when black to move
}

var (
	defaultZobrist     *Zobrist
	defaultZobristOnce sync.Once
)

// DefaultZobrist returns the process-wide table, building it on first use.
func DefaultZobrist() *Zobrist {
	defaultZobristOnce.Do(func() {
		defaultZobrist = NewZobrist(DefaultZobristSeed)
	})
	return defaultZobrist
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	if seed == 0 {
		seed = DefaultZobristSeed
	}
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

// NewZobrist builds a table from the given seed. Equal seeds give equal tables.
func NewZobrist(seed uint64) *Zobrist {
	rng := newPRNG(seed)
	z := &Zobrist{}

	// Piece keys, including the off-board encodings so any index is safe.
	for p := range z.pieces {
		for sq := range z.pieces[p] {
			z.pieces[p][sq] = rng.next()
		}
	}

	// Single-flag castling keys, combinations by XOR
	for _, cr := range []CastlingRights{WhiteKingSideCastle, WhiteQueenSideCastle, BlackKingSideCastle, BlackQueenSideCastle} {
		z.castling[cr] = rng.next()
	}
	for m := 1; m < len(z.castling); m++ {
		low := m & -m
		if m != low {
			z.castling[m] = z.castling[low] ^ z.castling[m^low]
		}
	}

	for sq := range z.enPassant {
		z.enPassant[sq] = rng.next()
	}

	z.sideToMove = rng.next()

	return z
}

// Piece returns the key for a piece on a square.
func (z *Zobrist) Piece(p Piece, sq Square) uint64 {
	return z.pieces[p][sq]
}

// Castling returns the key for a set of castling rights.
func (z *Zobrist) Castling(cr CastlingRights) uint64 {
	return z.castling[cr&AllCastling]
}

// EnPassant returns the key for an en passant square.
func (z *Zobrist) EnPassant(sq Square) uint64 {
	return z.enPassant[sq]
}

// SideToMove returns the key toggled when black is to move.
func (z *Zobrist) SideToMove() uint64 {
	return z.sideToMove
}
