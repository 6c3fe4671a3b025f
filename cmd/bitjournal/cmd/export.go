package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/bitjournal/service"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the user's journal as CSV",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var exportOut string

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	if err := requireUser(); err != nil {
		return err
	}

	svc, done, err := openService()
	if err != nil {
		return err
	}
	defer done()

	out := os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	n, err := svc.Export(out, userID)
	if err != nil {
		return fmt.Errorf("%s", service.UserMessage(err))
	}

	if exportOut != "" {
		fmt.Printf("Exported %d trades to %s\n", n, exportOut)
	}
	return nil
}
