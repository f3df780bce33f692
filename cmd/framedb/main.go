package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bietkhonhungvandi212/frame-db/internal/storage/buffer"
	"github.com/bietkhonhungvandi212/frame-db/internal/storage/file"
	util "github.com/bietkhonhungvandi212/frame-db/internal/utils"
)

func main() {
	opts := util.DefaultOptions()
	flag.StringVar(&opts.Path, "file", "framedb.dat", "page file to inspect")
	flag.IntVar(&opts.BufferPoolSize, "frames", opts.BufferPoolSize, "buffer pool capacity")
	flag.StringVar(&opts.Strategy, "strategy", opts.Strategy, "replacement strategy (fifo|lru)")
	dumpPath := flag.String("dump", "framedb-snapshot.msgpack", "snapshot dump target")
	flag.Parse()

	strategy, err := parseStrategy(opts.Strategy)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// First run against a fresh path: create the page file.
	if _, err := os.Stat(opts.Path); errors.Is(err, os.ErrNotExist) {
		if err := file.Create(opts.Path); err != nil {
			fmt.Fprintf(os.Stderr, "create %s: %v\n", opts.Path, err)
			os.Exit(1)
		}
	}

	pool, err := buffer.NewPool(opts.Path, opts.BufferPoolSize, strategy, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open pool: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(NewModel(pool, opts.Path, *dumpPath), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "inspector: %v\n", err)
		os.Exit(1)
	}
}

func parseStrategy(name string) (buffer.Strategy, error) {
	switch strings.ToLower(name) {
	case "fifo":
		return buffer.FIFO, nil
	case "lru":
		return buffer.LRU, nil
	default:
		return 0, fmt.Errorf("strategy %q: %w", name, util.ErrStrategyNotSupported)
	}
}
