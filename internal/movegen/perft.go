package movegen

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/chesscore/internal/board"
)

// Options controls a perft run.
type Options struct {
	// Validate checks the position after every MakeMove and UndoMove:
	// internal consistency, agreement with the generator's own board and
	// exact restoration on undo. Validation disables the cache.
	Validate bool

	// Cache, if set, stores subtree counts by hash and depth.
	Cache *Cache
}

// walker plays moves on a position and on the generator's board in
// lockstep, so generation never needs a FEN round trip below the root.
type walker struct {
	ctx  context.Context
	pos  *board.Position
	db   dragontoothmg.Board
	opts Options
}

func newWalker(ctx context.Context, pos *board.Position, opts Options) *walker {
	if opts.Validate {
		opts.Cache = nil
	}
	return &walker{ctx: ctx, pos: pos, db: NewBoard(pos), opts: opts}
}

// Perft counts the leaf nodes of the legal move tree to the given depth.
// The position is restored before returning.
func Perft(pos *board.Position, depth int) (uint64, error) {
	return PerftWithOptions(context.Background(), pos, depth, Options{})
}

// PerftWithOptions is Perft with validation, caching and cancellation.
func PerftWithOptions(ctx context.Context, pos *board.Position, depth int, opts Options) (uint64, error) {
	return newWalker(ctx, pos, opts).perft(depth)
}

func (w *walker) perft(depth int) (uint64, error) {
	if depth == 0 {
		return 1, nil
	}

	moves := w.db.GenerateLegalMoves()
	if depth == 1 && !w.opts.Validate {
		return uint64(len(moves)), nil
	}

	if depth > 2 {
		if err := w.ctx.Err(); err != nil {
			return 0, err
		}
	}

	hash := w.pos.Hash()
	if w.opts.Cache != nil && depth > 1 {
		if nodes, ok := w.opts.Cache.Probe(hash, depth); ok {
			return nodes, nil
		}
	}

	var nodes uint64
	for _, dm := range moves {
		n, err := w.child(dm, depth-1)
		if err != nil {
			return 0, err
		}
		nodes += n
	}

	if w.opts.Cache != nil && depth > 1 {
		w.opts.Cache.Store(hash, depth, nodes)
	}
	return nodes, nil
}

// child plays one move, counts its subtree and takes it back.
func (w *walker) child(dm dragontoothmg.Move, depth int) (uint64, error) {
	m, err := Convert(w.pos, dm)
	if err != nil {
		return 0, err
	}

	var before string
	var beforeHash uint64
	if w.opts.Validate {
		before, beforeHash = w.pos.ToFEN(), w.pos.Hash()
	}

	unapply := w.db.Apply(dm)
	w.pos.MakeMove(m)

	if w.opts.Validate {
		if err := w.check(m); err != nil {
			return 0, err
		}
	}

	nodes, err := w.perft(depth)

	w.pos.UndoMove(m)
	unapply()

	if err != nil {
		return 0, err
	}

	if w.opts.Validate {
		if err := w.pos.Validate(); err != nil {
			return 0, fmt.Errorf("after undo %v: %w", m, err)
		}
		if fen := w.pos.ToFEN(); fen != before || w.pos.Hash() != beforeHash {
			return 0, fmt.Errorf("undo %v: got %s (%016x), want %s (%016x)", m, fen, w.pos.Hash(), before, beforeHash)
		}
	}
	return nodes, nil
}

// check compares the position after a move with the generator's board.
func (w *walker) check(m board.Move) error {
	if err := w.pos.Validate(); err != nil {
		return fmt.Errorf("after %v: %w", m, err)
	}

	// Placement and side to move must agree; the generator may write
	// en passant and clocks differently.
	got := strings.Fields(w.pos.ToFEN())
	want := strings.Fields(w.db.ToFen())
	if len(want) < 2 || got[0] != want[0] || got[1] != want[1] {
		return fmt.Errorf("after %v: position %s, generator %s", m, strings.Join(got, " "), w.db.ToFen())
	}
	return nil
}

// DivideEntry is the subtree count below one root move.
type DivideEntry struct {
	Move  board.Move
	Nodes uint64
}

// Divide returns the perft count below each legal root move, sorted by
// coordinate notation.
func Divide(pos *board.Position, depth int) ([]DivideEntry, error) {
	if depth < 1 {
		return nil, fmt.Errorf("divide depth must be at least 1, got %d", depth)
	}

	w := newWalker(context.Background(), pos, Options{})
	var entries []DivideEntry
	for _, dm := range w.db.GenerateLegalMoves() {
		m, err := Convert(pos, dm)
		if err != nil {
			return nil, err
		}
		nodes, err := w.child(dm, depth-1)
		if err != nil {
			return nil, err
		}
		entries = append(entries, DivideEntry{Move: m, Nodes: nodes})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Move.String() < entries[j].Move.String()
	})
	return entries, nil
}

// ParallelPerft splits the tree at the root and counts each subtree on its
// own copy of the position. At most workers subtrees run at once; a
// non-positive value means one per root move. The first error or the
// cancellation of ctx stops the run.
func ParallelPerft(ctx context.Context, pos *board.Position, depth, workers int, opts Options) (uint64, error) {
	if depth < 2 {
		return PerftWithOptions(ctx, pos, depth, opts)
	}

	moves, err := LegalMoves(pos)
	if err != nil {
		return 0, err
	}

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	var total atomic.Uint64
	for _, m := range moves {
		m := m // per-iteration copy (go directive lowered from 1.24 to 1.21)
		g.Go(func() error {
			child := pos.Copy()
			child.MakeMove(m)

			nodes, err := PerftWithOptions(ctx, child, depth-1, opts)
			if err != nil {
				return fmt.Errorf("subtree %v: %w", m, err)
			}
			total.Add(nodes)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}
	return total.Load(), nil
}
