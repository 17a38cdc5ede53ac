package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/ptero/pkg/ptero"
)

// NewNodesCommand creates the nodes command group.
func NewNodesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "nodes",
		Aliases: []string{"node"},
		Short:   "Inspect nodes",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List nodes",
		Args:  cobra.NoArgs,
	}
	flags := addListFlags(list)
	list.RunE = func(cmd *cobra.Command, _ []string) error {
		return withClient(cmd, func(ctx context.Context, client ptero.Client) error {
			return flags.run(ctx, cmd, client.Application().Nodes().List(), "id", "name", "fqdn", "location_id", "maintenance_mode")
		})
	}

	cmd.AddCommand(list)
	cmd.AddCommand(newGetByIDCommand("node", func(client ptero.Client, id int) ptero.Query[*ptero.ItemResponse] {
		return client.Application().Nodes().Get(id)
	}))
	cmd.AddCommand(&cobra.Command{
		Use:   "configuration NODE_ID",
		Short: "Show the Wings configuration of a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "node")
			if err != nil {
				return err
			}

			return withClient(cmd, func(ctx context.Context, client ptero.Client) error {
				return renderItem(cmd, client.Application().Nodes().Configuration(ctx, id))
			})
		},
	})

	return cmd
}

// NewUsersCommand creates the users command group.
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Inspect panel users",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
	}
	flags := addListFlags(list)
	list.RunE = func(cmd *cobra.Command, _ []string) error {
		return withClient(cmd, func(ctx context.Context, client ptero.Client) error {
			return flags.run(ctx, cmd, client.Application().Users().List(), "id", "username", "email", "root_admin")
		})
	}

	cmd.AddCommand(list)
	cmd.AddCommand(newGetByIDCommand("user", func(client ptero.Client, id int) ptero.Query[*ptero.ItemResponse] {
		return client.Application().Users().Get(id)
	}))

	return cmd
}

// NewLocationsCommand creates the locations command group.
func NewLocationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "locations",
		Aliases: []string{"location"},
		Short:   "Inspect locations",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List locations",
		Args:  cobra.NoArgs,
	}
	flags := addListFlags(list)
	list.RunE = func(cmd *cobra.Command, _ []string) error {
		return withClient(cmd, func(ctx context.Context, client ptero.Client) error {
			return flags.run(ctx, cmd, client.Application().Locations().List(), "id", "short", "long")
		})
	}

	cmd.AddCommand(list)

	return cmd
}

// NewNestsCommand creates the nests command group.
func NewNestsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "nests",
		Aliases: []string{"nest"},
		Short:   "Inspect nests",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List nests",
		Args:  cobra.NoArgs,
	}
	flags := addListFlags(list)
	list.RunE = func(cmd *cobra.Command, _ []string) error {
		return withClient(cmd, func(ctx context.Context, client ptero.Client) error {
			return flags.run(ctx, cmd, client.Application().Nests().List(), "id", "name", "author")
		})
	}

	cmd.AddCommand(list)

	return cmd
}

// NewEggsCommand creates the eggs command group.
func NewEggsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "eggs",
		Aliases: []string{"egg"},
		Short:   "Inspect the eggs of a nest",
	}

	list := &cobra.Command{
		Use:   "list NEST_ID",
		Short: "List the eggs of a nest",
		Args:  cobra.ExactArgs(1),
	}
	flags := addListFlags(list)
	list.RunE = func(cmd *cobra.Command, args []string) error {
		nestID, err := parseID(args[0], "nest")
		if err != nil {
			return err
		}

		return withClient(cmd, func(ctx context.Context, client ptero.Client) error {
			return flags.run(ctx, cmd, client.Application().Eggs().List(nestID), "id", "name", "docker_image")
		})
	}

	cmd.AddCommand(list)

	return cmd
}

func newGetByIDCommand(what string, query func(ptero.Client, int) ptero.Query[*ptero.ItemResponse]) *cobra.Command {
	var include []string

	cmd := &cobra.Command{
		Use:   "get ID",
		Short: "Show a " + what,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], what)
			if err != nil {
				return err
			}

			return withClient(cmd, func(ctx context.Context, client ptero.Client) error {
				return renderItem(cmd, query(client, id).Include(toAny(include)...).Send(ctx))
			})
		},
	}

	cmd.Flags().StringSliceVar(&include, "include", nil, "relationships to include")

	return cmd
}
