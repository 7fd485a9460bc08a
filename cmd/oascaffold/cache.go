package main

import (
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/CliForge/oascaffold/pkg/cache"
	"github.com/CliForge/oascaffold/pkg/output"
)

// cacheInfo is the result of cache stats.
type cacheInfo struct {
	Dir string `json:"dir" yaml:"dir"`
	cache.Stats `yaml:",inline"`
}

func (i cacheInfo) Header() []string {
	return []string{"DIR", "ENTRIES", "SIZE"}
}

func (i cacheInfo) Rows() [][]string {
	return [][]string{{i.Dir, strconv.Itoa(i.Entries), strconv.FormatInt(i.Size, 10)}}
}

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the spec download cache",
		Long: `Manage the cache of OpenAPI documents downloaded by "oascaffold new".

Available subcommands:
  stats  - Show the number and size of cached documents
  prune  - Remove cached documents`,
	}

	cmd.AddCommand(newCacheStatsCmd())
	cmd.AddCommand(newCachePruneCmd())

	return cmd
}

// openCache resolves the configuration and opens the spec cache.
func openCache(cmd *cobra.Command) (*app, *cache.SpecCache, error) {
	dir, err := projectDir(nil)
	if err != nil {
		return nil, nil, err
	}
	a, err := setup(cmd, dir)
	if err != nil {
		return nil, nil, err
	}
	c, err := cache.New(a.loader.CacheDir(a.cfg))
	if err != nil {
		return nil, nil, err
	}
	return a, c, nil
}

func newCacheStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, c, err := openCache(cmd)
			if err != nil {
				return err
			}
			stats, err := c.Stats(cmd.Context())
			if err != nil {
				return err
			}
			return output.NewManager().Format(a.out, cacheInfo{Dir: c.Dir, Stats: *stats}, a.cfg.Output.Format)
		},
	}

	cmd.Flags().StringP("format", "f", "table", "output format: table, json, yaml")

	return cmd
}

func newCachePruneCmd() *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove cached documents",
		Long: `Remove cached documents. By default every entry is removed; with
--older-than only entries fetched before that age are.`,
		Example: `  oascaffold cache prune
  oascaffold cache prune --older-than 168h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, c, err := openCache(cmd)
			if err != nil {
				return err
			}
			n, err := c.Prune(cmd.Context(), olderThan)
			if err != nil {
				return err
			}
			a.log.Debug("cache pruned", a.log.Args("dir", c.Dir, "removed", n))
			pterm.Success.WithWriter(a.out).Printfln("Removed %d cached specs", n)
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 0, "only remove entries older than this")

	return cmd
}
