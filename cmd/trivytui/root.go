package trivytui

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagImageName string

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the trivy-tui CLI.
var rootCmd = &cobra.Command{
	Use:           "trivy-tui --image-name <ref>",
	Short:         "Browse trivy vulnerability findings in your terminal",
	Long:          "trivy-tui scans a container image with trivy and shows the findings as a navigable table with a detail view per vulnerability.",
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runView(cmd.Context(), flagImageName)
	},
}

// Execute runs the trivy-tui CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&flagImageName, "image-name", "i", "", "container image reference to scan")
	_ = rootCmd.MarkFlagRequired("image-name")
}
