// Command chesscore runs the board-core console and one-shot tools:
//
//	chesscore [console] [-db dir]
//	chesscore perft -fen <fen> -depth <n> [-workers <n>] [-validate]
//	chesscore fen -fen <fen>
//	chesscore diagram -fen <fen> -out <file.svg|file.png> [-size <px>] [-flip]
//	chesscore archive [-db dir] -fen <fen> [-moves "e2e4 e7e5"]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/diagram"
	"github.com/hailam/chesscore/internal/movegen"
	"github.com/hailam/chesscore/internal/storage"
	"github.com/hailam/chesscore/internal/uci"
)

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")

func main() {
	flag.Usage = usage
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	args := flag.Args()
	cmd := "console"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "console":
		err = runConsole(args)
	case "perft":
		err = runPerft(args)
	case "fen":
		err = runFEN(args)
	case "diagram":
		err = runDiagram(args)
	case "archive":
		err = runArchive(args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Printf("%s: %v", cmd, err)
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: chesscore [-cpuprofile file] [console|perft|fen|diagram|archive] [flags]\n")
	flag.PrintDefaults()
}

// dbFlag registers the archive directory flag, defaulting to CHESSCORE_DB.
func dbFlag(fs *flag.FlagSet) *string {
	return fs.String("db", os.Getenv("CHESSCORE_DB"), "archive directory (default: platform data dir)")
}

func runConsole(args []string) error {
	fs := flag.NewFlagSet("console", flag.ExitOnError)
	db := dbFlag(fs)
	noArchive := fs.Bool("no-archive", false, "run without the position archive")
	fs.Parse(args)

	protocol := uci.New(os.Stdout)

	if !*noArchive {
		archive, err := storage.Open(*db)
		if err != nil {
			log.Printf("Warning: archive not opened: %v", err)
		} else {
			defer archive.Close()
			protocol.SetArchive(archive)
		}
	}

	return protocol.Run(os.Stdin)
}

func runPerft(args []string) error {
	fs := flag.NewFlagSet("perft", flag.ExitOnError)
	fen := fs.String("fen", board.StartFEN, "position to count from")
	depth := fs.Int("depth", 5, "perft depth")
	workers := fs.Int("workers", runtime.NumCPU(), "parallel workers (1 disables parallelism)")
	hashMB := fs.Int("hash", 64, "perft cache size in MB (0 disables the cache)")
	validate := fs.Bool("validate", false, "check every node for consistency (slow)")
	fs.Parse(args)

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		return err
	}

	opts := movegen.Options{Validate: *validate}
	if *hashMB > 0 {
		opts.Cache = movegen.NewCache(*hashMB)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	var nodes uint64
	if *workers > 1 {
		nodes, err = movegen.ParallelPerft(ctx, pos, *depth, *workers, opts)
	} else {
		nodes, err = movegen.PerftWithOptions(ctx, pos, *depth, opts)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Nodes: %d\n", nodes)
	fmt.Printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		fmt.Printf("NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}
	if opts.Cache != nil {
		fmt.Printf("Cache hit rate: %.1f%%\n", opts.Cache.HitRate())
	}
	return nil
}

func runFEN(args []string) error {
	fs := flag.NewFlagSet("fen", flag.ExitOnError)
	fen := fs.String("fen", board.StartFEN, "position to inspect")
	fs.Parse(args)

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		return err
	}

	fmt.Print(pos.String())
	fmt.Printf("Fen: %s\n", pos.ToFEN())
	fmt.Printf("In check: %v\n", pos.IsCheck())
	fmt.Printf("Status: %s\n", movegen.GameStatus(pos))
	if err := pos.Validate(); err != nil {
		return fmt.Errorf("inconsistent position: %w", err)
	}
	return nil
}

func runDiagram(args []string) error {
	fs := flag.NewFlagSet("diagram", flag.ExitOnError)
	fen := fs.String("fen", board.StartFEN, "position to draw")
	out := fs.String("out", "board.svg", "output file (.svg or .png)")
	size := fs.Int("size", diagram.DefaultSize, "board size in pixels")
	flip := fs.Bool("flip", false, "draw from black's side")
	fs.Parse(args)

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		return err
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	opts := diagram.Options{Size: *size, Flip: *flip, Coordinates: true}
	switch strings.ToLower(filepath.Ext(*out)) {
	case ".png":
		err = diagram.WritePNG(f, pos, opts)
	default:
		err = diagram.WriteSVG(f, pos, opts)
	}
	if err != nil {
		return err
	}

	log.Printf("Diagram written to %s", *out)
	return f.Close()
}

func runArchive(args []string) error {
	fs := flag.NewFlagSet("archive", flag.ExitOnError)
	db := dbFlag(fs)
	fen := fs.String("fen", board.StartFEN, "starting position")
	moves := fs.String("moves", "", "space-separated coordinate moves to play and record")
	list := fs.Bool("list", false, "list archived positions instead of recording")
	fs.Parse(args)

	archive, err := storage.Open(*db)
	if err != nil {
		return err
	}
	defer archive.Close()

	if *list {
		entries, err := archive.Positions()
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Printf("%016x %4d %s\n", e.Hash, e.Visits, e.FEN)
		}
		return nil
	}

	game := &storage.Game{StartFEN: *fen, Moves: strings.Fields(*moves)}
	pos, err := archive.Replay(game)
	if err != nil {
		return err
	}

	entry, err := archive.Lookup(pos)
	if err != nil {
		return err
	}
	fmt.Printf("%016x visits %d fen %s\n", entry.Hash, entry.Visits, entry.FEN)
	return nil
}
