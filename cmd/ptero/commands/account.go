package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/ptero/pkg/ptero"
)

// NewPowerCommand creates the power command.
func NewPowerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "power IDENTIFIER SIGNAL",
		Short: "Send a power signal to a server",
		Long:  "Send start, stop, restart or kill to a server through the client API",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			signal := ptero.PowerSignal(strings.ToLower(args[1]))
			if !signal.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidPowerState, args[1])
			}

			return withClient(cmd, func(ctx context.Context, client ptero.Client) error {
				resp := client.Account().Server().Power(ctx, args[0], signal)

				return renderAction(cmd, resp, fmt.Sprintf("Sent %s to %s", signal, args[0]))
			})
		},
	}
}

// NewCommandCommand creates the command command, which writes to a server
// console.
func NewCommandCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "command IDENTIFIER COMMAND...",
		Short: "Run a console command on a server",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			line := strings.Join(args[1:], " ")

			return withClient(cmd, func(ctx context.Context, client ptero.Client) error {
				return renderAction(cmd, client.Account().Server().Command(ctx, args[0], line), "Command sent")
			})
		},
	}
}

// NewBackupsCommand creates the backups command group.
func NewBackupsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "backups",
		Aliases: []string{"backup"},
		Short:   "Manage server backups",
	}

	list := &cobra.Command{
		Use:   "list IDENTIFIER",
		Short: "List backups",
		Args:  cobra.ExactArgs(1),
	}
	flags := addListFlags(list)
	list.RunE = func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, client ptero.Client) error {
			return flags.run(ctx, cmd, client.Account().Backups().List(args[0]), "uuid", "name", "bytes", "is_successful", "is_locked", "created_at")
		})
	}

	var (
		name    string
		ignored []string
	)

	create := &cobra.Command{
		Use:   "create IDENTIFIER",
		Short: "Start a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client ptero.Client) error {
				return renderItem(cmd, client.Account().Backups().Create(ctx, args[0], name, ignored))
			})
		},
	}
	create.Flags().StringVar(&name, "name", "", "backup name")
	create.Flags().StringArrayVar(&ignored, "ignore", nil, "path to leave out (repeatable)")

	remove := &cobra.Command{
		Use:   "delete IDENTIFIER BACKUP_UUID",
		Short: "Delete a backup",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client ptero.Client) error {
				return renderAction(cmd, client.Account().Backups().Delete(ctx, args[0], args[1]), "Backup deleted")
			})
		},
	}

	cmd.AddCommand(list, create, remove)

	return cmd
}

// NewDatabasesCommand creates the databases command group.
func NewDatabasesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "databases",
		Aliases: []string{"database", "db"},
		Short:   "Inspect server databases",
	}

	list := &cobra.Command{
		Use:   "list IDENTIFIER",
		Short: "List databases",
		Args:  cobra.ExactArgs(1),
	}
	flags := addListFlags(list)
	list.RunE = func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, client ptero.Client) error {
			return flags.run(ctx, cmd, client.Account().Databases().List(args[0]), "id", "name", "username", "connections_from")
		})
	}

	cmd.AddCommand(list)

	return cmd
}

// NewSubusersCommand creates the subusers command group.
func NewSubusersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subusers",
		Aliases: []string{"subuser"},
		Short:   "Inspect server subusers",
	}

	list := &cobra.Command{
		Use:   "list IDENTIFIER",
		Short: "List subusers",
		Args:  cobra.ExactArgs(1),
	}
	flags := addListFlags(list)
	list.RunE = func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, client ptero.Client) error {
			return flags.run(ctx, cmd, client.Account().Subusers().List(args[0]), "uuid", "username", "email", "2fa_enabled")
		})
	}

	cmd.AddCommand(list)

	return cmd
}
