package cmd

import (
	"github.com/rguerillot/CrossAnnotate/internal/crossann"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// annotateCmd is for merging two tables on their sequence columns.
var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Run:   crossann.AnnotateCmd,
	Short: "Merge two tables on bidirectional best hits between their sequence columns",
	Long: `Merge two tables on bidirectional best hits between their sequence columns

"crossannotate annotate" joins a curated annotation table (t1) against an
unannotated table (t2) without a shared identifier. Each table's sequence
column is classified as DNA or protein, both sets are aligned against one
another with DIAMOND (in both directions), and only pairs of rows that are
each other's top hit are merged. Columns from t1 can be copied onto the
matched t2 rows with --passthrough`,
	SuggestionsMinimumDistance: 3,
}

// set flags
func init() {
	annotateCmd.Flags().String("t1", "", "path to the first table (annotation source)")
	annotateCmd.Flags().String("t2", "", "path to the second table (annotation target)")
	annotateCmd.Flags().String("i1", "", "identifier column in t1 (default: first column)")
	annotateCmd.Flags().String("i2", "", "identifier column in t2 (default: first column)")
	annotateCmd.Flags().String("s1", "", "sequence column in t1")
	annotateCmd.Flags().String("s2", "", "sequence column in t2")
	annotateCmd.Flags().StringP("passthrough", "p", "", "comma-separated t1 columns to copy to the output, or '*' for all")
	annotateCmd.Flags().Bool("keep-seqs", false, "keep t1's sequence column when using '--passthrough *'")
	annotateCmd.Flags().IntP("threads", "j", 4, "thread count passed to the aligner")
	annotateCmd.Flags().Float64("evalue", 1e-10, "max hit e-value (see 'diamond help')")
	annotateCmd.Flags().Float64("identity", 90, "min hit %-identity")
	annotateCmd.Flags().Float64("cover", 90, "min hit query coverage percentage")
	annotateCmd.Flags().StringP("out", "o", "ortho_results.csv", "output table path")

	annotateCmd.MarkFlagRequired("t1")
	annotateCmd.MarkFlagRequired("t2")
	annotateCmd.MarkFlagRequired("s1")
	annotateCmd.MarkFlagRequired("s2")

	viper.BindPFlag("aligner.threads", annotateCmd.Flags().Lookup("threads"))
	viper.BindPFlag("aligner.evalue", annotateCmd.Flags().Lookup("evalue"))
	viper.BindPFlag("aligner.identity", annotateCmd.Flags().Lookup("identity"))
	viper.BindPFlag("aligner.cover", annotateCmd.Flags().Lookup("cover"))

	RootCmd.AddCommand(annotateCmd)
}
