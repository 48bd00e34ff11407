package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jskinn96/signup/accounts"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List stored accounts",
	RunE:  runAccounts,
}

func runAccounts(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	store, err := accounts.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck

	list, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(stdout(cmd), "No accounts yet.")
		return nil
	}

	w := tabwriter.NewWriter(stdout(cmd), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tNICKNAME\tEMAIL\tCREATED")
	for _, a := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.ID, a.Username, a.Nickname, a.Email, a.CreatedAt.Format(time.DateTime))
	}
	return w.Flush()
}
