package main

import (
	"fmt"
	"os"

	"fpminer/fp_config"
	"fpminer/rock-share/base/config"
	"fpminer/rock-share/base/logger"
	"fpminer/utils/rule_writer"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// Version 编译时通过 -ldflags "-X main.Version=..." 注入
var Version = "dev"

var (
	configFile string
	mineFlags  MineRequest

	rootCmd = &cobra.Command{
		Use:           "fpminer",
		Short:         "parallel FP-growth association rule miner",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initialize()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	mineCmd = &cobra.Command{
		Use:   "mine",
		Short: "mine association rules from a transaction file",
		Example: "  fpminer mine --input tx.csv --output rules.csv --min-support 0.05 --min-confidence 0.3\n" +
			"  fpminer mine --input tx.csv --output - --format table --filter \"lift > 1.5\"",
		RunE: runMine,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "serve mining requests over http",
		RunE: func(cmd *cobra.Command, args []string) error {
			address := ":" + config.All.Server.HttpPort
			logger.Infof("listening on %s", address)
			return newRouter().Run(address)
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "print the version",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "fpminer", Version)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file, ./config/config.yml when empty")

	f := mineCmd.Flags()
	f.StringVarP(&mineFlags.Path, "input", "i", "", "transaction file, one comma separated transaction per line")
	f.StringVarP(&mineFlags.Output, "output", "o", "", "rule output file, - for stdout; written under the result dir when empty")
	f.Float64Var(&mineFlags.Support, "min-support", fp_config.MinSupport, "minimum item-set support, in range (0,1]")
	f.Uint32Var(&mineFlags.Count, "min-count", 0, "minimum item-set count, overrides --min-support when set")
	f.Float64Var(&mineFlags.Confidence, "min-confidence", fp_config.MinConfidence, "minimum rule confidence, in range [0,1]")
	f.Float64Var(&mineFlags.Lift, "min-lift", fp_config.MinLift, "minimum rule lift, non-negative")
	f.IntVarP(&mineFlags.Workers, "workers", "w", fp_config.Workers, "mining goroutines, 0 for one per cpu, 1 for sequential")
	f.StringVarP(&mineFlags.Format, "format", "f", fp_config.FormatCsv, "output format: csv, yaml or table")
	f.StringVar(&mineFlags.Filter, "filter", "", "rule filter expression over support, confidence, lift, count, antecedent_size, consequent_size")
	f.StringVar(&mineFlags.Dot, "dot", "", "write the initial fp-tree as graphviz dot to this file")
	f.BoolVar(&mineFlags.PrintTree, "print-tree", false, "print the initial fp-tree")
	_ = mineCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(mineCmd, serveCmd, versionCmd)
}

func initialize() error {
	all, err := config.InitConfig(configFile)
	if err != nil {
		return err
	}
	l := all.Logger
	return logger.InitLogger(l.Level, "fpminer", l.Path, l.MaxAge, l.RotationTime, l.RotationSize, all.Server.SentryDsn)
}

// runMine 命令行没显式给出的参数用配置文件里的值
func runMine(cmd *cobra.Command, args []string) error {
	request := mineFlags
	mining := config.All.Mining
	f := cmd.Flags()
	if !f.Changed("min-support") {
		request.Support = mining.MinSupport
	}
	if !f.Changed("min-count") {
		request.Count = mining.MinCount
	}
	if !f.Changed("min-confidence") {
		request.Confidence = mining.MinConfidence
	}
	if !f.Changed("min-lift") {
		request.Lift = mining.MinLift
	}
	if !f.Changed("workers") {
		request.Workers = mining.Workers
	}
	if !f.Changed("format") && mining.Format != "" {
		request.Format = mining.Format
	}
	if !f.Changed("filter") {
		request.Filter = mining.Filter
	}

	out := cmd.OutOrStdout()
	rule_writer.OptionTable(cmd.ErrOrStderr(),
		[]string{"input", "output", "min support", "min count", "min confidence", "min lift", "workers", "format", "filter"},
		[]interface{}{request.Path, request.Output, request.Support, request.Count, request.Confidence, request.Lift, request.Workers, request.Format, request.Filter},
	).Render()

	response, err := DigRules(uuid.NewString(), &request, config.All.Server.ResultDir, out)
	if err != nil {
		return err
	}
	if request.Output != "-" {
		fmt.Fprintf(out, "%d rules from %d frequent item-sets written to %s in %dms\n",
			response.RuleSize, response.ItemSets, response.ResultPath, response.SpentTime)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Errorf("%v", err)
		logger.Sync()
		os.Exit(1)
	}
}
