// Package uci implements a line-oriented console speaking the position
// setup subset of the Universal Chess Interface, plus debug commands for
// inspecting the board core.
package uci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/movegen"
	"github.com/hailam/chesscore/internal/storage"
)

// Default option values
const (
	defaultThreads   = 1
	defaultPerftHash = 16 // MB
	maxThreads       = 64
	maxPerftHash     = 4096
)

// UCI is the console state: the current position, the moves played from
// the last setup and the console options.
type UCI struct {
	out      io.Writer
	position *board.Position

	// Moves applied since the last position command, for undo
	moves []board.Move

	// Optional position archive
	archive *storage.Archive

	threads int
	cache   *movegen.Cache
}

// New creates a console that writes its replies to out.
func New(out io.Writer) *UCI {
	return &UCI{
		out:      out,
		position: board.NewPosition(),
		threads:  defaultThreads,
		cache:    movegen.NewCache(defaultPerftHash),
	}
}

// SetArchive enables the archive command.
func (u *UCI) SetArchive(a *storage.Archive) {
	u.archive = a
}

// Position returns the current position.
func (u *UCI) Position() *board.Position {
	return u.position
}

// Run reads commands from in until quit or end of input.
func (u *UCI) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		if !u.Execute(scanner.Text()) {
			return nil
		}
	}

	return scanner.Err()
}

// Execute runs one command line. It returns false once quit is received.
func (u *UCI) Execute(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}

	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "uci":
		u.handleUCI()
	case "isready":
		u.println("readyok")
	case "ucinewgame":
		u.handleNewGame()
	case "position":
		if board.DebugMoveValidation {
			u.printf("info string DEBUG: position %s\n", strings.Join(args, " "))
		}
		u.handlePosition(args)
	case "setoption":
		u.handleSetOption(args)
	case "quit":
		return false
	// Debug commands
	case "d":
		u.handleDisplay()
	case "moves":
		u.handleMoves()
	case "perft":
		u.handlePerft(args)
	case "undo":
		u.handleUndo()
	case "draw":
		u.handleDraw()
	case "archive":
		u.handleArchive(args)
	default:
		u.printf("info string Unknown command: %s\n", cmd)
	}

	return true
}

func (u *UCI) printf(format string, args ...any) {
	fmt.Fprintf(u.out, format, args...)
}

func (u *UCI) println(args ...any) {
	fmt.Fprintln(u.out, args...)
}

// handleUCI responds to the "uci" command.
func (u *UCI) handleUCI() {
	u.println("id name ChessCore")
	u.println("id author ChessCore Team")
	u.println()
	u.printf("option name Threads type spin default %d min 1 max %d\n", defaultThreads, maxThreads)
	u.printf("option name PerftHash type spin default %d min 1 max %d\n", defaultPerftHash, maxPerftHash)
	u.println("option name Debug type check default false")
	u.println("uciok")
}

// handleNewGame resets the console for a new game.
func (u *UCI) handleNewGame() {
	u.position = board.NewPosition()
	u.moves = nil
	u.cache.Clear()
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
//
// On any error the previous position is kept.
func (u *UCI) handlePosition(args []string) {
	pos, moves, err := parsePosition(args)
	if err != nil {
		u.printf("info string %v\n", err)
		return
	}
	u.position = pos
	u.moves = moves

	// Debug: log position state after setup
	if board.DebugMoveValidation {
		u.printf("info string DEBUG: After position setup - hash=%016x inCheck=%v\n",
			pos.Hash(), pos.IsCheck())
	}
}

func parsePosition(args []string) (*board.Position, []board.Move, error) {
	if len(args) == 0 {
		return nil, nil, errors.New("position needs startpos or fen")
	}

	// Find "moves" keyword
	moveStart := len(args)
	for i, arg := range args {
		if arg == "moves" {
			moveStart = i
			break
		}
	}

	var pos *board.Position
	switch args[0] {
	case "startpos":
		pos = board.NewPosition()
	case "fen":
		var err error
		pos, err = board.ParseFEN(strings.Join(args[1:moveStart], " "))
		if err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, fmt.Errorf("unknown position type: %s", args[0])
	}

	// Apply moves
	var moves []board.Move
	if moveStart < len(args) {
		for _, moveStr := range args[moveStart+1:] {
			if pos.Ply() >= board.MaxPlies {
				return nil, nil, fmt.Errorf("too many moves: at most %d", board.MaxPlies)
			}
			m, err := movegen.FindMove(pos, moveStr)
			if err != nil {
				return nil, nil, err
			}
			pos.MakeMove(m)
			moves = append(moves, m)
		}
	}

	return pos, moves, nil
}

// handleSetOption parses "setoption name <name> [value <value>]".
func (u *UCI) handleSetOption(args []string) {
	var name, value string
	readingName := false
	readingValue := false

	for _, arg := range args {
		switch arg {
		case "name":
			readingName = true
			readingValue = false
		case "value":
			readingName = false
			readingValue = true
		default:
			if readingName {
				if name != "" {
					name += " "
				}
				name += arg
			} else if readingValue {
				if value != "" {
					value += " "
				}
				value += arg
			}
		}
	}

	// Handle options
	switch strings.ToLower(name) {
	case "threads":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > maxThreads {
			u.printf("info string Invalid Threads value: %s\n", value)
			return
		}
		u.threads = n
	case "perfthash":
		mb, err := strconv.Atoi(value)
		if err != nil || mb < 1 || mb > maxPerftHash {
			u.printf("info string Invalid PerftHash value: %s\n", value)
			return
		}
		u.cache = movegen.NewCache(mb)
	case "debug":
		enabled := strings.ToLower(value) == "true"
		board.DebugMoveValidation = enabled
		if enabled {
			u.println("info string Debug mode enabled")
		}
	default:
		u.printf("info string Unknown option: %s\n", name)
	}
}

// handleDisplay prints the board and the derived state.
func (u *UCI) handleDisplay() {
	pos := u.position
	u.println(pos.String())
	u.printf("Fen: %s\n", pos.ToFEN())

	us := pos.SideToMove()
	var checkers []string
	if ksq := pos.KingSquare(us); ksq != board.NoSquare {
		for _, sq := range pos.Attackers(ksq, us.Other()).Squares() {
			checkers = append(checkers, sq.String())
		}
	}
	u.printf("Checkers: %s\n", strings.Join(checkers, " "))
}

// handleMoves lists the legal moves in coordinate and algebraic notation.
func (u *UCI) handleMoves() {
	moves, err := movegen.LegalMoves(u.position)
	if err != nil {
		u.printf("info string %v\n", err)
		return
	}

	var parts []string
	for _, m := range moves {
		san, err := movegen.ToSAN(u.position, m)
		if err != nil {
			u.printf("info string %v\n", err)
			return
		}
		parts = append(parts, m.String()+" ("+san+")")
	}
	u.printf("Legal moves (%d): %s\n", len(moves), strings.Join(parts, " "))
}

// handlePerft runs a perft test.
// Formats:
//   - perft <depth>            per-move breakdown and total
//   - perft <depth> validate   total with full consistency checks
func (u *UCI) handlePerft(args []string) {
	depth := 5
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil || d < 1 {
			u.printf("info string Invalid perft depth: %s\n", args[0])
			return
		}
		depth = d
	}
	validate := len(args) > 1 && args[1] == "validate"

	start := time.Now()

	var nodes uint64
	var err error
	switch {
	case validate:
		nodes, err = movegen.PerftWithOptions(context.Background(), u.position, depth, movegen.Options{Validate: true})
	case u.threads > 1:
		nodes, err = movegen.ParallelPerft(context.Background(), u.position, depth, u.threads, movegen.Options{Cache: u.cache})
	default:
		var entries []movegen.DivideEntry
		entries, err = movegen.Divide(u.position, depth)
		for _, e := range entries {
			u.printf("%s: %d\n", e.Move, e.Nodes)
			nodes += e.Nodes
		}
		u.println()
	}
	if err != nil {
		u.printf("info string perft failed: %v\n", err)
		return
	}

	elapsed := time.Since(start)

	u.printf("Nodes: %d\n", nodes)
	u.printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		nps := float64(nodes) / elapsed.Seconds()
		u.printf("NPS: %.0f\n", nps)
	}
}

// handleUndo takes back the last move played since the position command.
func (u *UCI) handleUndo() {
	if len(u.moves) == 0 {
		u.println("info string Nothing to undo")
		return
	}
	m := u.moves[len(u.moves)-1]
	u.moves = u.moves[:len(u.moves)-1]
	u.position.UndoMove(m)
	u.printf("info string Undid %s\n", m)
}

// handleDraw reports the game status and the draw counters.
func (u *UCI) handleDraw() {
	pos := u.position
	u.printf("Status: %s\n", movegen.GameStatus(pos))
	u.printf("Repetitions: %d\n", pos.Repetitions())
	u.printf("Half-move clock: %d\n", pos.HalfMoveClock())
	u.printf("Insufficient material: %v\n", pos.HasInsufficientMaterial())
}

// handleArchive records or looks up the current position.
// Formats:
//   - archive          record the position
//   - archive lookup   show the archived entry
func (u *UCI) handleArchive(args []string) {
	if u.archive == nil {
		u.println("info string No archive open")
		return
	}

	var entry *storage.Entry
	var err error
	if len(args) > 0 && args[0] == "lookup" {
		entry, err = u.archive.Lookup(u.position)
	} else {
		entry, err = u.archive.Record(u.position)
	}
	if errors.Is(err, storage.ErrNotFound) {
		u.printf("info string Position %016x not archived\n", u.position.Hash())
		return
	}
	if err != nil {
		u.printf("info string Archive error: %v\n", err)
		return
	}

	u.printf("info string Archived %016x visits %d fen %s\n", entry.Hash, entry.Visits, entry.FEN)
}
