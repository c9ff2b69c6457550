// Command blockstat is a read-only inspector over an existing blocksim
// data directory: one subcommand per analytical query, meant for
// scripting against a chain a blocksim run already produced.
package main

import (
	"fmt"
	"os"

	"github.com/c2h5oh/datasize"
	"github.com/spf13/cobra"

	"github.com/ledgerforge/blocksim/internal/logging"
	"github.com/ledgerforge/blocksim/internal/numeric"
	"github.com/ledgerforge/blocksim/internal/store"
)

var dataDir string

func main() {
	root := &cobra.Command{
		Use:   "blockstat",
		Short: "inspect a blocksim data directory",
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", ".", "directory holding blockchain.bin")

	root.AddCommand(
		statsCmd(),
		blockCmd(),
		richestCmd(),
		topMinersCmd(),
		minerCmd(),
		meanCmd(),
		maxTxCmd(),
		minTxCmd(),
		topTxCmd(),
		nonceCmd(),
		histogramCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "blockstat:", err)
		os.Exit(1)
	}
}

// withEngine opens the data directory read-mostly for the lifetime of a
// single subcommand invocation and closes it afterward; blockstat never
// appends, so an Engine is just the cheapest way to replay the existing
// indices.
func withEngine(fn func(e *store.Engine) error) error {
	e, err := store.Open(dataDir, store.Options{Logger: logging.Nop()})
	if err != nil {
		return err
	}
	defer e.Close()
	return fn(e)
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "chain height and on-disk log size",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(func(e *store.Engine) error {
				info, err := os.Stat(e.LogPath())
				if err != nil {
					return err
				}
				size := datasize.ByteSize(info.Size())
				fmt.Printf("blocks: %d\nlog size: %s\n", e.TotalBlocks(), size.HumanReadable())
				return nil
			})
		},
	}
}

func blockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "block <number>",
		Short: "print a single block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, ok := numeric.ParseUint64(args[0])
			if !ok {
				return fmt.Errorf("blockstat: invalid block number %q", args[0])
			}
			return withEngine(func(e *store.Engine) error {
				rec, err := e.BlockByNumber(uint32(n))
				if err != nil {
					return err
				}
				store.FormatBlock(os.Stdout, rec)
				return nil
			})
		},
	}
}

func richestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "richest",
		Short: "addresses holding the maximum balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(func(e *store.Engine) error {
				max, addrs := e.RichestAddresses()
				fmt.Printf("max balance: %d\naddresses: %v\n", max, addrs)
				return nil
			})
		},
	}
}

func topMinersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "topminers",
		Short: "addresses holding the maximum mined-block count",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(func(e *store.Engine) error {
				max, addrs := e.TopMiners()
				fmt.Printf("max mined: %d\naddresses: %v\n", max, addrs)
				return nil
			})
		},
	}
}

func minerCmd() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "miner <address>",
		Short: "first blocks mined by an address, in chronological order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, ok := numeric.ParseUint64(args[0])
			if !ok || addr > 255 {
				return fmt.Errorf("blockstat: invalid miner address %q", args[0])
			}
			return withEngine(func(e *store.Engine) error {
				recs, err := e.FirstBlocksByMiner(byte(addr), n)
				if err != nil {
					return err
				}
				for _, rec := range recs {
					store.FormatBlock(os.Stdout, rec)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&n, "limit", 10, "maximum number of blocks to print")
	return cmd
}

func meanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mean",
		Short: "mean transferred value per block",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(func(e *store.Engine) error {
				fmt.Printf("%.2f\n", e.MeanValuePerBlock())
				return nil
			})
		},
	}
}

func maxTxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "maxtx",
		Short: "blocks holding the running maximum applied transaction count",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(func(e *store.Engine) error {
				recs, err := e.MaxTxBlocks()
				if err != nil {
					return err
				}
				for _, rec := range recs {
					store.FormatBlock(os.Stdout, rec)
				}
				return nil
			})
		},
	}
}

func minTxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mintx",
		Short: "blocks holding the running minimum applied transaction count",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(func(e *store.Engine) error {
				recs, err := e.MinTxBlocks()
				if err != nil {
					return err
				}
				for _, rec := range recs {
					store.FormatBlock(os.Stdout, rec)
				}
				return nil
			})
		},
	}
}

func topTxCmd() *cobra.Command {
	var n int
	// page, when positive, makes toptx report how many pages of that size
	// the result spans (numeric.CeilDiv); every block is still printed in
	// one go, with no break between pages.
	var page int
	cmd := &cobra.Command{
		Use:   "toptx",
		Short: "first n blocks bucket-sorted by applied transaction count",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(func(e *store.Engine) error {
				recs, err := e.TopByTxCount(n)
				if err != nil {
					return err
				}
				if page <= 0 {
					for _, rec := range recs {
						store.FormatBlock(os.Stdout, rec)
					}
					return nil
				}
				pages := numeric.CeilDiv(len(recs), page)
				fmt.Printf("%d blocks across %d page(s) of %d\n", len(recs), pages, page)
				for _, rec := range recs {
					store.FormatBlock(os.Stdout, rec)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&n, "limit", 10, "how many blocks to rank")
	cmd.Flags().IntVar(&page, "page-size", 0, "report pagination for this page size (0 disables)")
	return cmd
}

func nonceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nonce <value>",
		Short: "every block mined with the given nonce",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nonce, ok := numeric.ParseUint64(args[0])
			if !ok {
				return fmt.Errorf("blockstat: invalid nonce %q", args[0])
			}
			return withEngine(func(e *store.Engine) error {
				recs, err := e.FindByNonce(uint32(nonce))
				if err != nil {
					return err
				}
				for _, rec := range recs {
					store.FormatBlock(os.Stdout, rec)
				}
				return nil
			})
		},
	}
}

func histogramCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "histogram",
		Short: "nonce-index bucket occupancy report",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(func(e *store.Engine) error {
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
				fmt.Printf("buckets: %d\nused: %d\nlongest chain: %d\n", len(hist), used, maxChain)
				return nil
			})
		},
	}
}
