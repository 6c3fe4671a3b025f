package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/bitjournal/service"
)

var registerCmd = &cobra.Command{
	Use:   "register <api-key> <api-secret>",
	Short: "Register or update Bitunix API keys for a user",
	Long: `Store (or replace) the Bitunix API key pair for --user.

Keys are kept in the local journal database and read on every
authenticated request. Read-only API keys are recommended.`,
	Args: cobra.ExactArgs(2),
	RunE: runRegister,
}

var revokeCmd = &cobra.Command{
	Use:   "revoke",
	Short: "Delete the stored Bitunix API keys for a user",
	Args:  cobra.NoArgs,
	RunE:  runRevoke,
}

func init() {
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(revokeCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	if err := requireUser(); err != nil {
		return err
	}

	svc, done, err := openService()
	if err != nil {
		return err
	}
	defer done()

	if err := svc.Register(userID, args[0], args[1]); err != nil {
		return fmt.Errorf("%s", service.UserMessage(err))
	}

	fmt.Println("Keys registered. Run `bitjournal sync` to pull your trades.")
	return nil
}

func runRevoke(cmd *cobra.Command, args []string) error {
	if err := requireUser(); err != nil {
		return err
	}

	svc, done, err := openService()
	if err != nil {
		return err
	}
	defer done()

	if err := svc.Revoke(userID); err != nil {
		return fmt.Errorf("%s", service.UserMessage(err))
	}

	fmt.Println("Keys deleted. Register again to resume syncing; journaled trades are kept.")
	return nil
}
