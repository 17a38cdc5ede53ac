package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/ptero/internal/constants"
	"github.com/fivetwenty-io/ptero/pkg/ptero"
	"github.com/fivetwenty-io/ptero/pkg/pteroclient"
)

// Static errors for err113 compliance.
var (
	ErrRequestFailed     = errors.New("request failed")
	ErrInvalidID         = errors.New("invalid id")
	ErrInvalidKeyValue   = errors.New("expected key=value")
	ErrInvalidPowerState = errors.New("signal must be one of start, stop, restart, kill")
	ErrUnknownConfigKey  = errors.New("unknown config key")
)

const userAgent = "ptero-cli"

// createClient builds a client from the resolved flags, environment and
// config file.
func createClient() (ptero.Client, error) {
	baseURL := viper.GetString("url")
	if baseURL == "" {
		return nil, constants.ErrNoBaseURL
	}

	token := viper.GetString("token")
	if token == "" {
		return nil, constants.ErrNoToken
	}

	config := &ptero.Config{
		BaseURL:   baseURL,
		Token:     token,
		Timeout:   viper.GetDuration("timeout"),
		RetryMax:  viper.GetInt("retries"),
		UserAgent: userAgent,
	}

	if viper.GetBool("verbose") {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		config.Logger = ptero.NewZerologLogger(logger)
		config.Debug = true
		config.RequestInterceptors = []ptero.RequestInterceptor{ptero.RequestIDInterceptor()}
	}

	cache, err := createCache()
	if err != nil {
		return nil, err
	}

	config.Cache = cache

	client, err := pteroclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// createCache returns nil unless a cache type is configured.
func createCache() (ptero.Cache, error) {
	cacheType := viper.GetString("cache")
	if cacheType == "" {
		return nil, nil //nolint:nilnil // no cache configured
	}

	config := ptero.CacheConfig{Type: ptero.CacheType(cacheType)}
	if config.Type == ptero.CacheTypeNATS {
		config.NATS = &ptero.NATSCacheConfig{URL: viper.GetString("nats_url")}
	}

	cache, err := ptero.NewCacheFromConfig(config)
	if err != nil {
		return nil, fmt.Errorf("creating cache: %w", err)
	}

	return cache, nil
}

func outputFormat() (string, error) {
	format := strings.ToLower(viper.GetString("output"))

	switch format {
	case "", constants.FormatTable:
		return constants.FormatTable, nil
	case constants.FormatJSON, constants.FormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %s", constants.ErrInvalidFormat, format)
	}
}

// failure turns a non-OK envelope into an error carrying its explanation.
func failure(resp *ptero.Response) error {
	return fmt.Errorf("%w: %s", ErrRequestFailed, resp.Explain())
}

func encode(out io.Writer, format string, value any) error {
	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")

		return encoder.Encode(value)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(out)
		defer encoder.Close()

		return encoder.Encode(value)
	}

	return nil
}

// renderItem prints a single resource as property/value rows.
func renderItem(cmd *cobra.Command, resp *ptero.ItemResponse) error {
	if !resp.OK {
		return failure(resp.Response)
	}

	format, err := outputFormat()
	if err != nil {
		return err
	}

	if format != constants.FormatTable {
		return encode(cmd.OutOrStdout(), format, resp.Data)
	}

	attributes := resp.Attributes()
	keys := make([]string, 0, len(attributes))

	for key := range attributes {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("Property", "Value")

	for _, key := range keys {
		_ = table.Append(key, formatValue(attributes[key]))
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// renderList prints the given attribute columns of every item.
func renderList(cmd *cobra.Command, resp *ptero.ListResponse, columns ...string) error {
	if !resp.OK {
		return failure(resp.Response)
	}

	format, err := outputFormat()
	if err != nil {
		return err
	}

	if format != constants.FormatTable {
		return encode(cmd.OutOrStdout(), format, resp.Data)
	}

	header := make([]any, len(columns))
	for i, column := range columns {
		header[i] = strings.ToUpper(strings.ReplaceAll(column, "_", " "))
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header(header...)

	for _, attributes := range resp.ItemAttributes() {
		row := make([]string, len(columns))
		for i, column := range columns {
			row[i] = formatValue(attributes[column])
		}

		_ = table.Append(row)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	if total := resp.TotalPages(); total > 1 {
		fmt.Fprintf(cmd.OutOrStdout(), "Page %d of %d (%d total)\n", resp.CurrentPage(), total, resp.Total())
	}

	return nil
}

// renderAction prints the panel's message, or success when it sent none.
func renderAction(cmd *cobra.Command, resp *ptero.ActionResponse, success string) error {
	if !resp.OK {
		return failure(resp.Response)
	}

	format, err := outputFormat()
	if err != nil {
		return err
	}

	if format != constants.FormatTable {
		return encode(cmd.OutOrStdout(), format, map[string]any{"ok": true, "status": resp.Status, "message": messageOr(resp, success)})
	}

	fmt.Fprintln(cmd.OutOrStdout(), messageOr(resp, success))

	return nil
}

func messageOr(resp *ptero.ActionResponse, fallback string) string {
	if resp.Message != "" {
		return resp.Message
	}

	return fallback
}

func formatValue(value any) string {
	switch typed := value.(type) {
	case nil:
		return constants.NotAvailable
	case map[string]any, []any:
		encoded, err := json.Marshal(typed)
		if err != nil {
			return constants.NotAvailable
		}

		return string(encoded)
	default:
		return cast.ToString(typed)
	}
}

// listFlags are shared by every list command.
type listFlags struct {
	all      bool
	page     int
	perPage  int
	include  []string
	filters  []string
	sortedBy string
}

func addListFlags(cmd *cobra.Command) *listFlags {
	flags := &listFlags{}

	cmd.Flags().BoolVar(&flags.all, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&flags.page, "page", 0, "page number")
	cmd.Flags().IntVar(&flags.perPage, "per-page", 0, "results per page")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "relationships to include")
	cmd.Flags().StringArrayVar(&flags.filters, "filter", nil, "filter as field=value (repeatable)")
	cmd.Flags().StringVar(&flags.sortedBy, "sort", "", "sort field, prefix with - for descending")

	return flags
}

func (f *listFlags) apply(query ptero.ListQuery) (ptero.ListQuery, error) {
	if len(f.include) > 0 {
		query = query.Include(toAny(f.include)...)
	}

	filters, err := parseKeyValues(f.filters)
	if err != nil {
		return query, err
	}

	for _, field := range sortedKeys(filters) {
		query = query.Filter(field, filters[field])
	}

	if f.sortedBy != "" {
		query = query.Sort(strings.TrimPrefix(f.sortedBy, "-"), strings.HasPrefix(f.sortedBy, "-"))
	}

	if f.page > 0 {
		query = query.Page(f.page)
	}

	if f.perPage > 0 {
		query = query.PerPage(f.perPage)
	}

	if f.all {
		query = query.AllPages()
	}

	return query, nil
}

func (f *listFlags) run(ctx context.Context, cmd *cobra.Command, query ptero.ListQuery, columns ...string) error {
	query, err := f.apply(query)
	if err != nil {
		return err
	}

	return renderList(cmd, query.Send(ctx), columns...)
}

func parseKeyValues(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidKeyValue, pair)
		}

		values[key] = value
	}

	return values, nil
}

func sortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	return keys
}

func parseID(raw, what string) (int, error) {
	id, err := cast.ToIntE(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w for %s: %q", ErrInvalidID, what, raw)
	}

	return id, nil
}

// withClient resolves the client and runs fn with the command's context.
func withClient(cmd *cobra.Command, fn func(ctx context.Context, client ptero.Client) error) error {
	client, err := createClient()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return fn(ctx, client)
}
