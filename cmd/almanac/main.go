package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/henderiw/rangemap/pkg/almanac"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

func main() {
	err := newRootCmd().ExecuteContext(context.Background())
	klog.Flush()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:          "almanac [input]",
		Short:        "Find the lowest location number for the almanac seeds",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, cmd)
			if err != nil {
				return err
			}
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			ctx := klog.NewContext(cmd.Context(), klog.NewKlogr())
			return run(ctx, cfg, in, cmd.OutOrStdout())
		},
	}
	cmd.Flags().String("config", "", "config file")
	cmd.Flags().Int("workers", runtime.NumCPU(), "maximum number of seed ranges mapped in parallel")
	cmd.Flags().Bool("parallel", false, "map every seed range on its own worker")
	cmd.Flags().StringP("output", "o", outputText, "output format, one of: text, yaml")

	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	cmd.PersistentFlags().AddGoFlagSet(klogFlags)
	return cmd
}

type result struct {
	LowestLocation      uint64 `yaml:"lowestLocation"`
	LowestRangeLocation uint64 `yaml:"lowestRangeLocation"`
}

func run(ctx context.Context, cfg config, in io.Reader, out io.Writer) error {
	log := klog.FromContext(ctx)

	a, err := almanac.Parse(in)
	if err != nil {
		return fmt.Errorf("parse almanac: %w", err)
	}
	log.V(2).Info("parsed almanac", "seeds", len(a.Seeds()), "maps", a.Chain().Len())

	var res result
	res.LowestLocation, err = a.LowestLocation()
	if err != nil {
		return err
	}
	if cfg.Parallel {
		res.LowestRangeLocation, err = a.LowestRangeLocationParallel(ctx, cfg.Workers)
	} else {
		res.LowestRangeLocation, err = a.LowestRangeLocation()
	}
	if err != nil {
		return err
	}

	switch cfg.Output {
	case outputYAML:
		enc := yaml.NewEncoder(out)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	default:
		fmt.Fprintf(out, "Min location number as individual seeds: %d\n", res.LowestLocation)
		fmt.Fprintf(out, "Min location number as ranges of seeds: %d\n", res.LowestRangeLocation)
		return nil
	}
}
