package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"bookban-guard/internal/config"
	"bookban-guard/internal/core/service"
	"bookban-guard/internal/dump"
	"bookban-guard/internal/scan"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

type options struct {
	in       string
	out      string
	budget   int
	item     string
	dryRun   bool
	logLevel string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	var opts options
	flag.StringVar(&opts.in, "in", "", "Dump document to check (.yaml, .yml or .json)")
	flag.StringVar(&opts.out, "out", "", "Write the pruned document here")
	flag.IntVar(&opts.budget, "budget", cfg.Budget, "Byte budget per container tree")
	flag.StringVar(&opts.item, "item", "", "Check only the container item at RANGE:SLOT")
	flag.BoolVar(&opts.dryRun, "dry-run", false, "Report sizes without removing anything")
	flag.StringVar(&opts.logLevel, "log-level", cfg.LogLevel, "Log level")
	flag.Parse()

	cfg.Budget = opts.budget
	cfg.LogLevel = opts.logLevel
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if opts.in == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger := cfg.Logger("bookscan")
	if err := run(opts, cfg.Budget, logger, os.Stdout); err != nil {
		logger.Error("bookscan failed", "error", err)
		os.Exit(1)
	}
}

// stdoutNotifier prints notifications the way a player would see them.
type stdoutNotifier struct {
	w io.Writer
}

func (n stdoutNotifier) Notify(subject uuid.UUID, message string) {
	fmt.Fprintf(n.w, "[%s] %s\n", subject, message)
}

func run(opts options, budget int, logger hclog.Logger, stdout io.Writer) error {
	data, err := os.ReadFile(opts.in)
	if err != nil {
		return err
	}
	format := dump.DetectFormat(opts.in)
	doc, err := dump.Parse(data, format)
	if err != nil {
		return err
	}
	tree, err := dump.Build(doc)
	if err != nil {
		return err
	}

	if opts.dryRun {
		res, err := scan.Scan(tree.Root)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "total_bytes=%d books=%d views=%d budget=%d over=%t\n",
			res.TotalCost, len(res.Candidates), len(res.Touched), budget, res.TotalCost >= budget)
		return nil
	}

	checker := service.New(stdoutNotifier{w: stdout},
		service.WithBudget(budget),
		service.WithLogger(logger.Named("checker")),
	)

	var removed int
	if opts.item != "" {
		r, slot, err := parseItemRef(opts.item)
		if err != nil {
			return err
		}
		removed, err = checker.CheckItem(tree.Subject, tree.Item(r, slot), nil)
		if err != nil {
			return err
		}
	} else {
		removed, err = checker.CheckInventory(tree.Subject, tree.Root)
		if err != nil {
			return err
		}
	}
	fmt.Fprintf(stdout, "removed=%d\n", removed)

	if opts.out == "" {
		return nil
	}
	pruned, err := dump.Capture(tree)
	if err != nil {
		return err
	}
	b, err := dump.Marshal(pruned, dump.DetectFormat(opts.out))
	if err != nil {
		return err
	}
	return os.WriteFile(opts.out, b, 0o644)
}

func parseItemRef(s string) (int, int, error) {
	rs, ss, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("item %q: want RANGE:SLOT", s)
	}
	r, err := strconv.Atoi(rs)
	if err != nil {
		return 0, 0, fmt.Errorf("item %q: range: %w", s, err)
	}
	slot, err := strconv.Atoi(ss)
	if err != nil {
		return 0, 0, fmt.Errorf("item %q: slot: %w", s, err)
	}
	return r, slot, nil
}
