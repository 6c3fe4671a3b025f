package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/bitjournal/service"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch recent fills from Bitunix and merge them into the journal",
	Long: `Fetch the user's recent trade history from Bitunix and insert it into
the local journal. Already-journaled trades are skipped, so syncing
overlapping ranges repeatedly is safe.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

var (
	syncSymbol string
	syncLimit  int
)

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().StringVarP(&syncSymbol, "symbol", "s", "", "restrict the fetch to one symbol (e.g. BTCUSDT)")
	syncCmd.Flags().IntVarP(&syncLimit, "limit", "l", 0, "trades to fetch, clamped to [1,100] (default 50)")
}

func runSync(cmd *cobra.Command, args []string) error {
	if err := requireUser(); err != nil {
		return err
	}

	svc, done, err := openService()
	if err != nil {
		return err
	}
	defer done()

	res, err := svc.Sync(context.Background(), userID, syncSymbol, syncLimit)
	if err != nil {
		return fmt.Errorf("%s", service.UserMessage(err))
	}

	fmt.Println(service.FormatSync(res))
	return nil
}
