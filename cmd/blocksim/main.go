// Command blocksim mines and appends a simulated chain of blocks and, with
// --menu, serves an interactive query menu once the run completes (at
// once, when the data directory already holds the target height).
package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	"github.com/ledgerforge/blocksim/internal/config"
	"github.com/ledgerforge/blocksim/internal/logging"
	"github.com/ledgerforge/blocksim/internal/metrics"
	"github.com/ledgerforge/blocksim/internal/numeric"
	"github.com/ledgerforge/blocksim/internal/simulate"
	"github.com/ledgerforge/blocksim/internal/store"
)

func main() {
	app := &cli.App{
		Name:  "blocksim",
		Usage: "mine and query a simulated append-only block chain",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "data-dir", Usage: "directory holding blockchain.bin"},
			&cli.StringFlag{Name: "config", Usage: "path to a TOML config file"},
			&cli.StringFlag{Name: "seed", Usage: "PRNG seed, decimal or 0x-hex"},
			&cli.UintFlag{Name: "total-blocks", Usage: "number of blocks the run should reach"},
			&cli.StringFlag{Name: "metrics-addr", Usage: "address to serve /metrics on, e.g. :9090"},
			&cli.BoolFlag{Name: "menu", Usage: "drop into the interactive query menu after the run"},
			&cli.BoolFlag{Name: "text-dump", Usage: "write a text dump of the chain after the run"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "blocksim:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if v := c.String("data-dir"); v != "" {
		cfg.DataDir = v
	}
	if v := c.String("seed"); v != "" {
		seed, ok := numeric.ParseUint64(v)
		if !ok {
			return fmt.Errorf("blocksim: invalid --seed %q", v)
		}
		cfg.Seed = uint32(seed)
	}
	if c.IsSet("total-blocks") {
		cfg.TotalBlocks = uint32(c.Uint("total-blocks"))
	}
	if v := c.String("metrics-addr"); v != "" {
		cfg.MetricsAddr = v
	}
	cfg.TextDump = cfg.TextDump || c.Bool("text-dump")

	logger := logging.New()
	defer logger.Sync()

	reg := prometheus.NewRegistry()
	mtr := metrics.New(reg)
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				logger.Error("metrics server stopped", "err", err)
			}
		}()
		logger.Info("metrics listening", "addr", cfg.MetricsAddr)
	}

	e, err := store.Open(cfg.DataDir, store.Options{Logger: logger, Metrics: mtr, LogFileName: cfg.LogFileName})
	if err != nil {
		return err
	}
	defer e.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	progress := func(n, total uint32) {
		if n%1000 == 0 || n == total {
			logger.Info("mining progress", "block", n, "total", total)
		}
	}
	if err := simulate.Run(ctx, e, logger, cfg.Seed, cfg.TotalBlocks, progress); err != nil {
		return err
	}

	if cfg.TextDump {
		dumpPath := cfg.DataDir + "/dump.txt"
		if err := e.WriteTextDump(dumpPath); err != nil {
			return err
		}
		logger.Info("text dump written", "path", dumpPath)
	}

	if c.Bool("menu") {
		return menu(e, os.Stdin, os.Stdout)
	}
	return nil
}

// menu implements the interactive query loop: one letter per analytical
// query, plus the hash-table histogram and exit.
func menu(e *store.Engine, in *os.File, out *os.File) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\n(A) richest  (B) top miners  (C) max-tx blocks  (D) min-tx blocks\n"+
			"(E) mean value  (F) block by number  (G) first by miner  (H) top by tx count\n"+
			"(I) find by nonce  (J) nonce histogram  (Q) quit\n> ")
		if !scanner.Scan() {
			return nil
		}
		choice := strings.ToUpper(strings.TrimSpace(scanner.Text()))
		if choice == "" {
			continue
		}
		if choice == "Q" {
			return nil
		}
		if err := dispatch(e, choice, scanner, out); err != nil {
			fmt.Fprintln(out, "error:", err)
		}
	}
}

func dispatch(e *store.Engine, choice string, scanner *bufio.Scanner, out *os.File) error {
	switch choice {
	case "A":
		max, addrs := e.RichestAddresses()
		fmt.Fprintf(out, "max balance %d, addresses %v\n", max, addrs)
	case "B":
		max, addrs := e.TopMiners()
		fmt.Fprintf(out, "max mined %d, addresses %v\n", max, addrs)
	case "C":
		recs, err := e.MaxTxBlocks()
		if err != nil {
			return err
		}
		for _, rec := range recs {
			store.FormatBlock(out, rec)
		}
	case "D":
		recs, err := e.MinTxBlocks()
		if err != nil {
			return err
		}
		for _, rec := range recs {
			store.FormatBlock(out, rec)
		}
	case "E":
		fmt.Fprintf(out, "mean value per block: %.2f\n", e.MeanValuePerBlock())
	case "F":
		n, err := promptUint(out, scanner, "block number: ")
		if err != nil {
			return err
		}
		rec, err := e.BlockByNumber(uint32(n))
		if err != nil {
			return err
		}
		store.FormatBlock(out, rec)
	case "G":
		addr, err := promptUint(out, scanner, "miner address (0-255): ")
		if err != nil {
			return err
		}
		n, err := promptUint(out, scanner, "how many: ")
		if err != nil {
			return err
		}
		recs, err := e.FirstBlocksByMiner(byte(addr), int(n))
		if err != nil {
			return err
		}
		for _, rec := range recs {
			store.FormatBlock(out, rec)
		}
	case "H":
		n, err := promptUint(out, scanner, "how many: ")
		if err != nil {
			return err
		}
		recs, err := e.TopByTxCount(int(n))
		if err != nil {
			return err
		}
		for _, rec := range recs {
			store.FormatBlock(out, rec)
		}
	case "I":
		nonce, err := promptUint(out, scanner, "nonce: ")
		if err != nil {
			return err
		}
		recs, err := e.FindByNonce(uint32(nonce))
		if err != nil {
			return err
		}
		for _, rec := range recs {
			store.FormatBlock(out, rec)
		}
	case "J":
		hist := e.NonceIndexHistogram()
		var used, maxChain int
		for _, n := range hist {
			if n > 0 {
				used++
			}
			if n > maxChain {
				maxChain = n
			}
		}
		fmt.Fprintf(out, "buckets used: %d/%d, longest chain: %d\n", used, len(hist), maxChain)
	default:
		fmt.Fprintln(out, "unknown option:", choice)
	}
	return nil
}

func promptUint(out *os.File, scanner *bufio.Scanner, prompt string) (uint64, error) {
	fmt.Fprint(out, prompt)
	if !scanner.Scan() {
		return 0, fmt.Errorf("blocksim: no input")
	}
	return strconv.ParseUint(strings.TrimSpace(scanner.Text()), 10, 64)
}
