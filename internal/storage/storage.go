package storage

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/movegen"
)

// Key prefixes
const (
	prefixPosition = "pos:"
	prefixGame     = "game:"
)

// ErrNotFound is returned when the archive holds no entry for a key.
var ErrNotFound = errors.New("storage: not found")

// Entry is the archived record of one position.
type Entry struct {
	Hash      uint64    `json:"hash"`
	FEN       string    `json:"fen"`
	Visits    int       `json:"visits"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
}

// Game is a move sequence played from a starting position.
type Game struct {
	Name     string    `json:"name"`
	StartFEN string    `json:"start_fen"`
	Moves    []string  `json:"moves"`
	Result   string    `json:"result,omitempty"`
	Saved    time.Time `json:"saved"`
}

// Archive wraps BadgerDB for persistent storage of positions and games.
// Hashes are only meaningful for positions built with the same Zobrist
// table; every tool in this module uses board.DefaultZobrist.
type Archive struct {
	db *badger.DB
}

// Open opens (or creates) the archive in dir. An empty dir selects the
// platform data directory.
func Open(dir string) (*Archive, error) {
	if dir == "" {
		var err error
		dir, err = GetDatabaseDir()
		if err != nil {
			return nil, err
		}
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	return open(opts)
}

// OpenInMemory opens an archive that lives only as long as the process.
func OpenInMemory() (*Archive, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	return open(opts)
}

func open(opts badger.Options) (*Archive, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	return &Archive{db: db}, nil
}

// Close closes the database
func (a *Archive) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func positionKey(hash uint64) []byte {
	key := make([]byte, len(prefixPosition)+8)
	copy(key, prefixPosition)
	binary.BigEndian.PutUint64(key[len(prefixPosition):], hash)
	return key
}

// Record stores the position, or counts another visit if its hash is
// already archived, and returns the updated entry.
func (a *Archive) Record(pos *board.Position) (*Entry, error) {
	now := time.Now()
	key := positionKey(pos.Hash())
	var entry Entry

	err := a.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
			entry = Entry{Hash: pos.Hash(), FirstSeen: now}
		case err != nil:
			return err
		default:
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			}); err != nil {
				return err
			}
		}

		entry.FEN = pos.ToFEN()
		entry.Visits++
		entry.LastSeen = now

		data, err := json.Marshal(&entry)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return nil, fmt.Errorf("record %016x: %w", pos.Hash(), err)
	}

	return &entry, nil
}

// Get returns the entry archived under a hash.
func (a *Archive) Get(hash uint64) (*Entry, error) {
	var entry Entry

	err := a.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(positionKey(hash))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// Lookup returns the entry for the position's current hash.
func (a *Archive) Lookup(pos *board.Position) (*Entry, error) {
	return a.Get(pos.Hash())
}

// Positions returns every archived position entry in hash order.
func (a *Archive) Positions() ([]Entry, error) {
	var entries []Entry

	err := a.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(prefixPosition)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var entry Entry
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			}); err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		return nil
	})

	return entries, err
}

// SaveGame stores a game under its name, replacing any game of that name.
func (a *Archive) SaveGame(game *Game) error {
	if game.Name == "" {
		return errors.New("storage: game needs a name")
	}
	game.Saved = time.Now()

	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	return a.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(prefixGame+game.Name), data)
	})
}

// LoadGame loads a game by name.
func (a *Archive) LoadGame(name string) (*Game, error) {
	var game Game

	err := a.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(prefixGame + name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &game)
		})
	})
	if err != nil {
		return nil, err
	}

	return &game, nil
}

// Replay rebuilds the final position of a game, recording every position
// along the way. Every move must be legal; positions before an illegal
// move stay recorded.
func (a *Archive) Replay(game *Game) (*board.Position, error) {
	pos, err := board.ParseFEN(game.StartFEN)
	if err != nil {
		return nil, err
	}
	if _, err := a.Record(pos); err != nil {
		return nil, err
	}

	for _, s := range game.Moves {
		if pos.Ply() >= board.MaxPlies {
			return nil, fmt.Errorf("game %s: more than %d moves", game.Name, board.MaxPlies)
		}
		m, err := movegen.FindMove(pos, s)
		if err != nil {
			return nil, fmt.Errorf("game %s: %w", game.Name, err)
		}
		pos.MakeMove(m)
		if _, err := a.Record(pos); err != nil {
			return nil, err
		}
	}

	return pos, nil
}
