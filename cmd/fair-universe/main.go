// Command fair-universe works with the HEP challenge dataset: it prints the
// canonical event schema, validates dataset files against it, generates
// synthetic toy datasets, and splits reference data into competition bundles.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Ragansu/fair-universe/pkg/bundle"
	"github.com/Ragansu/fair-universe/pkg/event"
	"github.com/Ragansu/fair-universe/pkg/gen"
	"github.com/Ragansu/fair-universe/pkg/schema"
	"github.com/Ragansu/fair-universe/pkg/split"
	"github.com/Ragansu/fair-universe/pkg/validate"
)

var (
	verbose bool
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "fair-universe",
	Short: "Toolkit for the HEP challenge dataset",
	Long: `fair-universe works with the HEP challenge dataset.

It prints the canonical 33-column event schema, validates dataset files
against it (field set, value domains, undefined-value sentinels), generates
synthetic signal/background toy datasets with parametric systematics, and
splits labelled reference data into competition bundle directories.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the canonical event schema",
	Long: `Prints the 33 columns of an event record: name, kind, group, the jet
multiplicity below which the value is undefined, and the physical meaning.`,
	RunE: runSchema,
}

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a dataset CSV against the event schema",
	Long: `Streams a dataset CSV and checks every row against the canonical schema:
exact column set and order, parseable values, PRI_jet_num and Label domains,
positive weights, unique event ids, and the undefined-value sentinel rules
keyed on jet multiplicity.

Exits non-zero when the file does not match the schema.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic toy dataset bundle",
	Long: `Draws a paired nominal/biased toy dataset from a settings document and
writes it as a competition bundle: the nominal set as train, the biased set
as test, plus the settings under settings/.

Example:
  fair-universe generate --settings settings.json --out ./toy_bundle`,
	RunE: runGenerate,
}

var splitCmd = &cobra.Command{
	Use:   "split [file]",
	Short: "Split a reference dataset into a train/test bundle",
	Long: `Reads a labelled, weighted reference CSV, separates the metadata columns
(EventId, Weight, Label) from the 30 feature columns, reports the per-class
weight sums, and writes a train/test competition bundle.`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

var (
	validateMaxIssues int
	validateStats     bool

	generateSettings string
	generateOut      string
	generateCompress bool
	generateIndex    int
	generateStats    bool

	splitOut       string
	splitTestRatio float64
	splitSeed      int64
	splitCompress  bool
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	validateCmd.Flags().IntVar(&validateMaxIssues, "max-issues", validate.DefaultMaxIssues, "maximum issues to print")
	validateCmd.Flags().BoolVar(&validateStats, "stats", false, "print per-column summaries")

	generateCmd.Flags().StringVar(&generateSettings, "settings", "", "settings document (.json, .yaml)")
	generateCmd.Flags().StringVar(&generateOut, "out", "", "output bundle directory")
	generateCmd.Flags().BoolVar(&generateCompress, "compress", false, "zstd-compress data files")
	generateCmd.Flags().IntVar(&generateIndex, "file-index", -1, "number the bundle files (train_<i>.csv)")
	generateCmd.Flags().BoolVar(&generateStats, "stats", false, "print per-column summaries of the generated sets")
	_ = generateCmd.MarkFlagRequired("settings")
	_ = generateCmd.MarkFlagRequired("out")

	splitCmd.Flags().StringVar(&splitOut, "out", "", "output bundle directory")
	splitCmd.Flags().Float64Var(&splitTestRatio, "test-ratio", 0.3, "fraction of events held out as test")
	splitCmd.Flags().Int64Var(&splitSeed, "seed", gen.DefaultSeed, "shuffle seed")
	splitCmd.Flags().BoolVar(&splitCompress, "compress", false, "zstd-compress data files")
	_ = splitCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(schemaCmd, validateCmd, generateCmd, splitCmd)
}

func runSchema(cmd *cobra.Command, args []string) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tGROUP\tDEFINED\tDESCRIPTION")
	for _, f := range schema.Fields() {
		defined := "always"
		switch {
		case f.Optional:
			defined = "may be undefined"
		case f.MinJets > 0:
			defined = fmt.Sprintf(">= %d jets", f.MinJets)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", f.Name, f.Kind, f.Group, defined, f.Doc)
	}
	return tw.Flush()
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	logger.Debug("Validating dataset", zap.String("path", path))

	v := &validate.Validator{MaxIssues: validateMaxIssues}
	rep, err := v.File(path)
	if err != nil {
		return err
	}

	for _, is := range rep.Issues {
		fmt.Println(is)
	}
	if rep.TotalIssues > len(rep.Issues) {
		fmt.Printf("... and %d more issues\n", rep.TotalIssues-len(rep.Issues))
	}

	fmt.Printf("rows: %d, invalid: %d, issues: %d\n", rep.Rows, rep.InvalidRows, rep.TotalIssues)
	fmt.Printf("sum of weights: %g (signal %g, background %g)\n",
		rep.Weights.Total, rep.Weights.Signal, rep.Weights.Background)

	if validateStats {
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "COLUMN\tDEFINED\tUNDEFINED\tMIN\tMAX\tMEAN\tSTD")
		for _, name := range schema.Names() {
			run, ok := rep.Columns[name]
			if !ok {
				continue
			}
			fmt.Fprintf(tw, "%s\t%d\t%d\t%g\t%g\t%g\t%g\n",
				name, run.Defined(), run.Undefined, run.Min(), run.Max(), run.Mean(), run.Std())
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if !rep.OK() {
		return fmt.Errorf("%s does not match the schema", path)
	}
	logger.Info("Dataset valid", zap.String("path", path), zap.Int("rows", rep.Rows))
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	settings, err := gen.LoadSettings(generateSettings)
	if err != nil {
		return err
	}
	logger.Debug("Settings loaded",
		zap.Int("events", settings.TotalEvents),
		zap.Float64("p_b", settings.PB),
		zap.Int("systematics", len(settings.Systematics)))

	generator, err := gen.New(settings)
	if err != nil {
		return err
	}
	ds, err := generator.Generate()
	if err != nil {
		return err
	}
	logger.Info("Dataset generated",
		zap.Int("nominal", ds.Nominal.Len()),
		zap.Int("biased", ds.Biased.Len()))

	w := &bundle.Writer{Dir: generateOut, FileIndex: generateIndex, Compress: generateCompress}
	if err := w.WriteDataset(ds); err != nil {
		return err
	}
	fmt.Printf("wrote %d train and %d test events to %s\n", ds.Nominal.Len(), ds.Biased.Len(), generateOut)

	if generateStats {
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "SET\tCOLUMN\tMEAN\tSTD\tMIN\tMAX\tMEDIAN")
		for _, part := range []struct {
			name string
			set  gen.Set
		}{{"train", ds.Nominal}, {"test", ds.Biased}} {
			for j, s := range part.set.Describe() {
				fmt.Fprintf(tw, "%s\tx%d\t%g\t%g\t%g\t%g\t%g\n", part.name, j+1, s.Mean, s.Std, s.Min, s.Max, s.Median)
			}
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func runSplit(cmd *cobra.Command, args []string) error {
	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	events, err := event.ReadAll(f)
	f.Close()
	if err != nil {
		return err
	}
	logger.Debug("Reference data loaded", zap.String("path", path), zap.Int("events", len(events)))

	X := make([][]float64, len(events))
	labels := make([]int, len(events))
	weights := make([]float64, len(events))
	for i, e := range events {
		X[i] = e.Features()
		labels[i] = e.Label
		weights[i] = e.Weight
	}

	res, err := split.TrainTestSplit(X, labels, weights, splitTestRatio, splitSeed)
	if err != nil {
		return err
	}

	total := res.TrainWeights
	total.Add(res.TestWeights)
	fmt.Printf("sum of weights: %g\n", total.Total)
	fmt.Printf("sum of signal: %g\n", total.Signal)
	fmt.Printf("sum of background: %g\n", total.Background)
	fmt.Printf("signal weight fraction: train %g, test %g\n",
		split.SignalFraction(res.LabelsTrain, res.WeightsTrain),
		split.SignalFraction(res.LabelsTest, res.WeightsTest))

	header := schema.FeatureNames()
	w := &bundle.Writer{Dir: splitOut, FileIndex: -1, Compress: splitCompress}
	if err := w.WriteTrain(bundle.Part{Header: header, X: res.XTrain, Labels: res.LabelsTrain, Weights: res.WeightsTrain}); err != nil {
		return err
	}
	if err := w.WriteTest(bundle.Part{Header: header, X: res.XTest, Labels: res.LabelsTest, Weights: res.WeightsTest}); err != nil {
		return err
	}
	fmt.Printf("wrote %d train and %d test events to %s\n", len(res.LabelsTrain), len(res.LabelsTest), splitOut)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
