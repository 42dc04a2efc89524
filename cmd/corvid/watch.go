package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

const defaultDebounce = 125 * time.Millisecond

func newWatchCmd(d *driver) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-parse a file whenever it changes",
		Long: `Parse FILE, then parse it again after every write until interrupted.

Bursts of writes within the debounce interval trigger a single re-parse.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return d.runWatch(cmd.Context(), args[0], interval)
		},
	}

	cmd.Flags().DurationVar(&interval, "debounce", defaultDebounce, "quiet period before re-parsing")

	return cmd
}

func (d *driver) runWatch(ctx context.Context, filename string, interval time.Duration) error {
	reparse := func() {
		fmt.Fprintf(d.stdout, "--- %s\n", filename)
		// Failures are rendered and the watch keeps going.
		_ = d.runParse(filename)
	}

	reparse()
	return watchFile(ctx, filename, interval, d.logger, reparse)
}

// watchFile calls fn after every debounced write to path until ctx is done.
// The parent directory is watched so editors that replace the file on save
// are still seen.
func watchFile(ctx context.Context, path string, interval time.Duration, logger *log.Logger, fn func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating new fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("adding dir to watch: %w", err)
	}

	debounceEvents(ctx, interval, watcher, logger, func(ev fsnotify.Event) {
		if evAbs, err := filepath.Abs(ev.Name); err == nil && evAbs == abs {
			fn()
		}
	})
	return nil
}

// debounceEvents runs fn once per file after interval has passed without a
// further create or write to it.
func debounceEvents(ctx context.Context, interval time.Duration, watcher *fsnotify.Watcher, logger *log.Logger, fn func(event fsnotify.Event)) {
	var mu sync.Mutex
	timers := make(map[string]*time.Timer)

	has := func(ev fsnotify.Event, op fsnotify.Op) bool {
		return ev.Op&op == op
	}

	defer func() {
		mu.Lock()
		defer mu.Unlock()
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Printf("file watch error: %v", err)
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !has(ev, fsnotify.Create) && !has(ev, fsnotify.Write) {
				continue
			}
			mu.Lock()
			t, ok := timers[ev.Name]
			if !ok {
				t = time.AfterFunc(math.MaxInt64, func() {
					fn(ev)
					mu.Lock()
					defer mu.Unlock()
					delete(timers, ev.Name)
				})
				t.Stop()
				timers[ev.Name] = t
			}
			mu.Unlock()
			t.Reset(interval)
		case <-ctx.Done():
			return
		}
	}
}
