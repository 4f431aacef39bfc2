package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joseph-ayodele/visiting-cards/internal/app"
	"github.com/joseph-ayodele/visiting-cards/internal/async"
	"github.com/joseph-ayodele/visiting-cards/internal/entity"
	"github.com/joseph-ayodele/visiting-cards/internal/ingest"
	"github.com/joseph-ayodele/visiting-cards/internal/pipeline"
)

// ExtractCmd runs the field extractor on text only.
type ExtractCmd struct {
	File string `help:"Read OCR text from this file instead of stdin." short:"f" type:"existingfile"`
	Text string `arg:"" optional:"" help:"OCR text; reads stdin when omitted."`
}

func (c *ExtractCmd) Run(g *Globals) error {
	text := c.Text
	switch {
	case c.File != "":
		b, err := os.ReadFile(c.File)
		if err != nil {
			return err
		}
		text = string(b)
	case text == "":
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		text = string(b)
	}
	g.logger()
	fe, err := app.NewExtractor(g.config().Extract)
	if err != nil {
		return err
	}
	return writeJSON(os.Stdout, fe.Extract(text))
}

// ScanCmd processes card files and directories.
type ScanCmd struct {
	Paths      []string      `arg:"" help:"Card images, text files or directories." type:"existingpath"`
	Preview    bool          `help:"Show extracted fields without storing them."`
	ShowText   bool          `help:"Print the recognized text."`
	Force      bool          `help:"Process files even if already stored."`
	SkipHidden bool          `help:"Skip hidden files and directories." default:"true" negatable:""`
	Workers    int           `help:"Parallel OCR workers for directories (0 = QUEUE_WORKERS)." default:"0"`
	Timeout    time.Duration `help:"Per-file timeout (0 = PROCESS_TIMEOUT)." default:"0"`
}

func (c *ScanCmd) Run(g *Globals, ctx context.Context) error {
	cfg := g.config()
	a, logger, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	var files []string
	for _, p := range c.Paths {
		st, err := os.Stat(p)
		if err != nil {
			return err
		}
		if !st.IsDir() {
			files = append(files, p)
			continue
		}
		found, _, failed, err := ingest.ScanDirectory(p, c.SkipHidden)
		if err != nil {
			return err
		}
		for _, f := range failed {
			logger.Warn("unreadable path skipped", "path", f.Path, "error", f.Err)
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "no card files found")
		return nil
	}

	workers := c.Workers
	if workers <= 0 {
		workers = cfg.Queue.Workers
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = cfg.Queue.ProcessTimeout
	}

	var (
		mu       sync.Mutex
		failures int
	)
	q := async.NewProcessorQueue(a.Processor, logger,
		async.WithWorkers(workers),
		async.WithQueueSize(len(files)),
		async.WithProcessTimeout(timeout),
		async.WithResultHook(func(job async.Job, res pipeline.Result, err error) {
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures++
				fmt.Fprintf(os.Stdout, "✗ %s: %v\n", job.Path, err)
				return
			}
			printScan(os.Stdout, res, c.ShowText)
		}),
	)
	for _, f := range files {
		if err := q.Enqueue(ctx, async.Job{Path: f, Force: c.Force, Preview: c.Preview}); err != nil {
			break
		}
	}
	q.Shutdown(context.Background())

	if failures > 0 {
		return fmt.Errorf("%d of %d cards failed", failures, len(files))
	}
	return nil
}

// AddCmd stores a contact typed in by hand.
type AddCmd struct {
	Name        string `help:"Full name." required:""`
	Email       string `help:"Email address."`
	Phone       string `help:"Phone number."`
	Company     string `help:"Company name."`
	Designation string `help:"Job title."`
	Address     string `help:"Postal address."`
}

func (c *AddCmd) Run(g *Globals, ctx context.Context) error {
	a, _, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	card, err := a.Service.Save(ctx, entity.ContactRecord{
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		Company:     c.Company,
		Designation: c.Designation,
		Address:     c.Address,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "saved %s (%s)\n", card.Name, card.ID)
	return nil
}

// ListCmd prints stored contacts.
type ListCmd struct {
	JSON bool `help:"Print JSON instead of a table."`
}

func (c *ListCmd) Run(g *Globals, ctx context.Context) error {
	a, _, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	cards, err := a.Service.List(ctx)
	if err != nil {
		return err
	}
	if c.JSON {
		if cards == nil {
			cards = []*entity.Card{}
		}
		return writeJSON(os.Stdout, cards)
	}
	printCards(os.Stdout, cards, isTerminal(os.Stdout))
	return nil
}

// DeleteCmd removes contacts by exact name.
type DeleteCmd struct {
	Name string `arg:"" help:"Exact name of the contact(s) to delete."`
}

func (c *DeleteCmd) Run(g *Globals, ctx context.Context) error {
	a, _, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := a.Service.DeleteByName(ctx, c.Name)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "deleted %d record(s) for %q\n", n, strings.TrimSpace(c.Name))
	return nil
}

// ExportCmd writes an XLSX workbook.
type ExportCmd struct {
	Out string `help:"Output XLSX path." short:"o" default:"visiting_cards.xlsx" type:"path"`
}

func (c *ExportCmd) Run(g *Globals, ctx context.Context) error {
	a, _, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	b, err := a.Service.Export(ctx)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(c.Out); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(c.Out, b, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "wrote %s (%d bytes)\n", c.Out, len(b))
	return nil
}

// WatchCmd stores new cards as they are dropped into directories.
type WatchCmd struct {
	Dirs       []string      `arg:"" help:"Directories to watch (recursive)." type:"existingdir"`
	Existing   bool          `help:"Also process files already present."`
	Debounce   time.Duration `help:"Coalesce bursts of file events." default:"500ms"`
	SkipHidden bool          `help:"Skip hidden files and directories." default:"true" negatable:""`
	ShowText   bool          `help:"Print the recognized text."`
}

func (c *WatchCmd) Run(g *Globals, ctx context.Context) error {
	cfg := g.config()
	a, logger, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	var mu sync.Mutex
	q := async.NewProcessorQueue(a.Processor, logger,
		async.WithWorkers(cfg.Queue.Workers),
		async.WithQueueSize(cfg.Queue.Size),
		async.WithProcessTimeout(cfg.Queue.ProcessTimeout),
		async.WithResultHook(func(job async.Job, res pipeline.Result, err error) {
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				fmt.Fprintf(os.Stdout, "✗ %s: %v\n", job.Path, err)
				return
			}
			printScan(os.Stdout, res, c.ShowText)
		}),
	)
	defer q.Shutdown(context.Background())

	events, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       c.Dirs,
		SkipHidden:  c.SkipHidden,
		InitialScan: c.Existing,
		Debounce:    c.Debounce,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "watching %s (ctrl-c to stop)\n", strings.Join(c.Dirs, ", "))

	for {
		select {
		case p, ok := <-events:
			if !ok {
				return nil
			}
			if err := q.Enqueue(ctx, async.Job{Path: p}); err != nil {
				logger.Warn("enqueue failed", "path", p, "error", err)
			}
		case err, ok := <-errs:
			if ok && err != nil {
				logger.Error("watch error", "error", err)
			}
		}
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
