package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/ptero/pkg/ptero"
)

var serverColumns = []string{"id", "identifier", "name", "node", "suspended"}

// NewServersCommand creates the servers command group.
func NewServersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "servers",
		Aliases: []string{"server", "s"},
		Short:   "Manage servers",
		Long:    "List, create and administer servers through the application API",
	}

	cmd.AddCommand(newServersListCommand())
	cmd.AddCommand(newServersGetCommand())
	cmd.AddCommand(newServersCreateCommand())
	cmd.AddCommand(newServerActionCommand("suspend", "Suspend a server", "Server suspended", ptero.ServersClient.Suspend))
	cmd.AddCommand(newServerActionCommand("unsuspend", "Unsuspend a server", "Server unsuspended", ptero.ServersClient.Unsuspend))
	cmd.AddCommand(newServerActionCommand("reinstall", "Reinstall a server", "Reinstall started", ptero.ServersClient.Reinstall))
	cmd.AddCommand(newServersDeleteCommand())

	return cmd
}

func newServersListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List servers",
		Args:  cobra.NoArgs,
	}

	flags := addListFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return withClient(cmd, func(ctx context.Context, client ptero.Client) error {
			return flags.run(ctx, cmd, client.Application().Servers().List(), serverColumns...)
		})
	}

	return cmd
}

func newServersGetCommand() *cobra.Command {
	var (
		include  []string
		external bool
		byUUID   bool
	)

	cmd := &cobra.Command{
		Use:   "get SERVER",
		Short: "Show a server",
		Long:  "Show a server by id, or by external id or uuid with the matching flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client ptero.Client) error {
				servers := client.Application().Servers()

				switch {
				case byUUID:
					return renderItem(cmd, servers.GetByUUID(ctx, args[0]))
				case external:
					return renderItem(cmd, servers.External(args[0]).Include(toAny(include)...).Send(ctx))
				}

				id, err := parseID(args[0], "server")
				if err != nil {
					return err
				}

				return renderItem(cmd, servers.Get(id).Include(toAny(include)...).Send(ctx))
			})
		},
	}

	cmd.Flags().StringSliceVar(&include, "include", nil, "relationships to include")
	cmd.Flags().BoolVar(&external, "external", false, "treat SERVER as an external id")
	cmd.Flags().BoolVar(&byUUID, "uuid", false, "treat SERVER as a uuid")
	cmd.MarkFlagsMutuallyExclusive("external", "uuid")

	return cmd
}

func newServersCreateCommand() *cobra.Command {
	var (
		name, image, startup, description string
		user, egg, allocation             int
		memory, disk, cpu, swap           int
		databases, backups                int
		locations                         []int
		env                               []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a server",
		Long:  "Create a server on an explicit allocation (--allocation) or let the panel deploy it (--location)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params := ptero.NewCreateServerParams(name, user, egg, image, startup)
			params.Limits.Memory = memory
			params.Limits.Disk = disk
			params.Limits.CPU = cpu
			params.Limits.Swap = swap
			params.FeatureLimits.Databases = databases
			params.FeatureLimits.Backups = backups

			if description != "" {
				params.Description = ptero.Ptr(description)
			}

			variables, err := parseKeyValues(env)
			if err != nil {
				return err
			}

			for _, key := range sortedKeys(variables) {
				params.SetEnv(key, variables[key])
			}

			if len(locations) > 0 {
				params.UseDeploy(locations, false)
			} else if allocation > 0 {
				params.UseAllocation(allocation)
			}

			return withClient(cmd, func(ctx context.Context, client ptero.Client) error {
				resp, err := client.Application().Servers().Create(ctx, params)
				if err != nil {
					return err
				}

				return renderItem(cmd, resp)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "server name")
	cmd.Flags().IntVar(&user, "user", 0, "owner user id")
	cmd.Flags().IntVar(&egg, "egg", 0, "egg id")
	cmd.Flags().StringVar(&image, "docker-image", "", "docker image")
	cmd.Flags().StringVar(&startup, "startup", "", "startup command")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringArrayVarP(&env, "env", "e", nil, "environment variable as KEY=VALUE (repeatable)")
	cmd.Flags().IntVar(&allocation, "allocation", 0, "default allocation id")
	cmd.Flags().IntSliceVar(&locations, "location", nil, "deploy to these location ids")
	cmd.Flags().IntVar(&memory, "memory", 0, "memory limit in MiB")
	cmd.Flags().IntVar(&disk, "disk", 0, "disk limit in MiB")
	cmd.Flags().IntVar(&cpu, "cpu", 0, "cpu limit in percent")
	cmd.Flags().IntVar(&swap, "swap", 0, "swap in MiB")
	cmd.Flags().IntVar(&databases, "databases", 0, "database limit")
	cmd.Flags().IntVar(&backups, "backups", 0, "backup limit")

	return cmd
}

type serverAction func(ptero.ServersClient, context.Context, int) *ptero.ActionResponse

func newServerActionCommand(use, short, success string, action serverAction) *cobra.Command {
	return &cobra.Command{
		Use:   use + " SERVER_ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "server")
			if err != nil {
				return err
			}

			return withClient(cmd, func(ctx context.Context, client ptero.Client) error {
				return renderAction(cmd, action(client.Application().Servers(), ctx, id), success)
			})
		},
	}
}

func newServersDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete SERVER_ID",
		Short: "Delete a server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "server")
			if err != nil {
				return err
			}

			return withClient(cmd, func(ctx context.Context, client ptero.Client) error {
				servers := client.Application().Servers()
				if force {
					return renderAction(cmd, servers.ForceDelete(ctx, id), fmt.Sprintf("Server %d force deleted", id))
				}

				return renderAction(cmd, servers.Delete(ctx, id), fmt.Sprintf("Server %d deleted", id))
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "force delete even if the node is unreachable")

	return cmd
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, value := range values {
		out[i] = value
	}

	return out
}
