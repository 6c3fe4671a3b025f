package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/bitjournal/service"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Show a page of the user's journal",
	Args:  cobra.NoArgs,
	RunE:  runView,
}

var noteCmd = &cobra.Command{
	Use:   "note <trade-id> <text...>",
	Short: "Attach a note to one journaled trade",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runNote,
}

var (
	viewSymbol string
	viewDays   int
	viewPage   int
)

func init() {
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(noteCmd)

	viewCmd.Flags().StringVarP(&viewSymbol, "symbol", "s", "", "only show trades for this symbol")
	viewCmd.Flags().IntVar(&viewDays, "days", 7, "day window to show, clamped to >= 1")
	viewCmd.Flags().IntVarP(&viewPage, "page", "p", 1, "page number, clamped to >= 1")
}

func runView(cmd *cobra.Command, args []string) error {
	if err := requireUser(); err != nil {
		return err
	}

	svc, done, err := openService()
	if err != nil {
		return err
	}
	defer done()

	page, err := svc.View(userID, viewSymbol, viewDays, viewPage)
	if err != nil {
		return fmt.Errorf("%s", service.UserMessage(err))
	}

	fmt.Println(service.FormatPage(page))
	return nil
}

func runNote(cmd *cobra.Command, args []string) error {
	if err := requireUser(); err != nil {
		return err
	}

	svc, done, err := openService()
	if err != nil {
		return err
	}
	defer done()

	tradeID := args[0]
	note := strings.Join(args[1:], " ")

	ok, err := svc.Annotate(userID, tradeID, note)
	if err != nil {
		return fmt.Errorf("%s", service.UserMessage(err))
	}
	if !ok {
		fmt.Printf("No trade %s in your journal — sync first?\n", tradeID)
		return nil
	}

	fmt.Printf("Note saved on trade %s.\n", tradeID)
	return nil
}
