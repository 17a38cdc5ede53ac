package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/ptero/internal/constants"
	"github.com/fivetwenty-io/ptero/pkg/ptero"
)

// NewFilesCommand creates the files command group.
func NewFilesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "files",
		Aliases: []string{"file", "f"},
		Short:   "Manage server files",
	}

	cmd.AddCommand(newFilesListCommand())
	cmd.AddCommand(newFilesCatCommand())
	cmd.AddCommand(newFilesWriteCommand())
	cmd.AddCommand(newFilesUploadCommand())
	cmd.AddCommand(newFilesMkdirCommand())
	cmd.AddCommand(newFilesRemoveCommand())

	return cmd
}

func newFilesListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls IDENTIFIER [DIRECTORY]",
		Short: "List a directory",
		Args:  cobra.RangeArgs(1, 2),
	}

	flags := addListFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		directory := constants.DefaultUploadDirectory
		if len(args) == 2 {
			directory = args[1]
		}

		return withClient(cmd, func(ctx context.Context, client ptero.Client) error {
			return flags.run(ctx, cmd, client.Account().Files().List(args[0], directory), "name", "size", "mode", "is_file", "modified_at")
		})
	}

	return cmd
}

func newFilesCatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cat IDENTIFIER PATH",
		Short: "Print a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client ptero.Client) error {
				resp := client.Account().Files().Read(ctx, args[0], args[1])
				if !resp.OK {
					return failure(resp.Response)
				}

				_, err := io.WriteString(cmd.OutOrStdout(), resp.Raw)

				return err
			})
		},
	}
}

func newFilesWriteCommand() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "write IDENTIFIER PATH",
		Short: "Write a file from a local file or stdin",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				contents []byte
				err      error
			)

			if source != "" {
				contents, err = os.ReadFile(source) // #nosec G304 -- path given by the user
			} else {
				contents, err = io.ReadAll(cmd.InOrStdin())
			}

			if err != nil {
				return fmt.Errorf("reading contents: %w", err)
			}

			return withClient(cmd, func(ctx context.Context, client ptero.Client) error {
				resp := client.Account().Files().Write(ctx, args[0], args[1], string(contents))

				return renderAction(cmd, resp, "Wrote "+args[1])
			})
		},
	}

	cmd.Flags().StringVarP(&source, "from-file", "f", "", "local file to send instead of stdin")

	return cmd
}

func newFilesUploadCommand() *cobra.Command {
	var (
		directory string
		verify    bool
	)

	cmd := &cobra.Command{
		Use:   "upload IDENTIFIER LOCAL_FILE...",
		Short: "Upload local files",
		Long:  "Upload one or more local files, one signed URL per file",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client ptero.Client) error {
				builder := client.Account().Files().NewUpload(args[0]).Dir(directory)
				for _, local := range args[1:] {
					builder = builder.AddFile(local, "", "")
				}

				if !verify {
					return renderAction(cmd, builder.Send(ctx, ""), fmt.Sprintf("Uploaded %d file(s) to %s", builder.Count(), builder.Directory()))
				}

				resp, verification := builder.SendAndVerify(ctx, "")
				if !resp.OK && len(verification.Missing) > 0 {
					return fmt.Errorf("%w: missing after upload: %v", ErrRequestFailed, verification.Missing)
				}

				return renderAction(cmd, resp, fmt.Sprintf("Uploaded and verified %d file(s)", builder.Count()))
			})
		},
	}

	cmd.Flags().StringVarP(&directory, "dir", "d", constants.DefaultUploadDirectory, "remote directory")
	cmd.Flags().BoolVar(&verify, "verify", false, "list the directory afterwards and check every file arrived")

	return cmd
}

func newFilesMkdirCommand() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "mkdir IDENTIFIER NAME",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client ptero.Client) error {
				return renderAction(cmd, client.Account().Files().CreateFolder(ctx, args[0], root, args[1]), "Created "+args[1])
			})
		},
	}

	cmd.Flags().StringVar(&root, "root", constants.DefaultUploadDirectory, "parent directory")

	return cmd
}

func newFilesRemoveCommand() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "rm IDENTIFIER FILE...",
		Short: "Delete files or folders",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client ptero.Client) error {
				resp := client.Account().Files().Delete(ctx, args[0], root, args[1:])

				return renderAction(cmd, resp, fmt.Sprintf("Deleted %d item(s)", len(args)-1))
			})
		},
	}

	cmd.Flags().StringVar(&root, "root", constants.DefaultUploadDirectory, "directory the names are relative to")

	return cmd
}
