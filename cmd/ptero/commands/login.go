package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/ptero/internal/constants"
	"github.com/fivetwenty-io/ptero/pkg/ptero"
	"github.com/fivetwenty-io/ptero/pkg/pteroclient"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var noVerify bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store panel credentials",
		Long:  "Validate an API key against the panel and save it with the panel URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(cmd.InOrStdin())
			panelURL := viper.GetString("url")

			// A saved token is replaced, so only an explicit --token skips the prompt.
			token := ""
			if flag := cmd.Flags().Lookup("token"); flag != nil && flag.Changed {
				token = flag.Value.String()
			}

			if panelURL == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Panel URL: ")
				panelURL = readLine(reader)
			}

			normalized, err := pteroclient.NormalizeBaseURL(panelURL)
			if err != nil {
				return fmt.Errorf("invalid panel URL: %w", err)
			}

			if token == "" {
				fmt.Fprint(cmd.OutOrStdout(), "API key: ")

				token, err = readSecret(cmd.InOrStdin(), reader)
				if err != nil {
					return fmt.Errorf("failed to read API key: %w", err)
				}

				fmt.Fprintln(cmd.OutOrStdout())
			}

			if err := ptero.ValidateToken(token); err != nil {
				return err
			}

			if !noVerify {
				if err := verifyToken(cmd.Context(), normalized, token); err != nil {
					return err
				}
			}

			config := loadConfig()
			config.URL = normalized
			config.Token = token

			if err := saveConfig(config); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			viper.Set("url", normalized)
			viper.Set("token", token)

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s with a %s key\n", normalized, keyKind(token))

			return nil
		},
	}

	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "save without calling the panel")

	return cmd
}

// verifyToken makes one cheap request the key's API allows.
func verifyToken(ctx context.Context, baseURL, token string) error {
	client, err := pteroclient.New(&ptero.Config{BaseURL: baseURL, Token: token, UserAgent: userAgent})
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}

	var resp *ptero.ListResponse
	if strings.HasPrefix(token, constants.ApplicationTokenPrefix) {
		resp = client.Application().Locations().List().PerPage(1).Send(ctx)
	} else {
		resp = client.Account().Servers().PerPage(1).Send(ctx)
	}

	if !resp.OK {
		return failure(resp.Response)
	}

	return nil
}

func keyKind(token string) string {
	if strings.HasPrefix(token, constants.ApplicationTokenPrefix) {
		return "application"
	}

	return "client"
}

func readLine(reader *bufio.Reader) string {
	line, _ := reader.ReadString('\n')

	return strings.TrimSpace(line)
}

// readSecret reads without echo when input is a terminal.
func readSecret(in io.Reader, reader *bufio.Reader) (string, error) {
	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		secret, err := term.ReadPassword(int(file.Fd()))
		if err != nil {
			return "", err
		}

		return strings.TrimSpace(string(secret)), nil
	}

	return readLine(reader), nil
}
