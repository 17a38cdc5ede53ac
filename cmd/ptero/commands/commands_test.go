package commands

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/ptero/internal/constants"
	"github.com/fivetwenty-io/ptero/pkg/ptero"
)

func TestNewRootCommand(t *testing.T) {
	resetViper(t)

	cmd := NewRootCommand("1.2.3", "abc", "today")
	assert.Equal(t, "ptero", cmd.Use)

	for _, name := range []string{
		"version", "config", "login", "servers", "nodes", "users", "locations", "nests",
		"eggs", "power", "command", "files", "backups", "databases", "subusers",
	} {
		assert.NotNil(t, findSubcommand(cmd, name), "missing %s", name)
	}

	for _, flag := range []string{"config", "env-file", "url", "token", "output", "timeout", "retries", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "missing --%s", flag)
	}

	servers := findSubcommand(cmd, "servers")
	for _, name := range []string{"list", "get", "create", "suspend", "unsuspend", "reinstall", "delete"} {
		assert.NotNil(t, findSubcommand(servers, name), "missing servers %s", name)
	}

	files := findSubcommand(cmd, "files")
	for _, name := range []string{"ls", "cat", "write", "upload", "mkdir", "rm"} {
		assert.NotNil(t, findSubcommand(files, name), "missing files %s", name)
	}
}

func TestRootCommand_EnvFileAndVersion(t *testing.T) {
	resetViper(t)

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PTERO_CLI_TEST_MARKER=loaded\n"), 0o600))

	t.Cleanup(func() { _ = os.Unsetenv("PTERO_CLI_TEST_MARKER") })

	out, err := execute(t, NewRootCommand("1.2.3", "abc", "today"),
		"version", "--config", filepath.Join(dir, "config.yml"), "--env-file", envFile, "-o", "json")
	require.NoError(t, err)

	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "1.2.3", info["version"])
	assert.Equal(t, "abc", info["commit"])
	assert.Equal(t, "loaded", os.Getenv("PTERO_CLI_TEST_MARKER"))
	assert.Equal(t, "loaded", viper.GetString("cli_test_marker"), "PTERO_ env vars reach viper")
}

func TestRootCommand_MissingEnvFile(t *testing.T) {
	resetViper(t)

	_, err := execute(t, NewRootCommand("dev", "none", "unknown"),
		"version", "--config", filepath.Join(t.TempDir(), "config.yml"), "--env-file", "/does/not/exist.env")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading /does/not/exist.env")
}

func TestServersList(t *testing.T) {
	panel := setupPanel(t, reply(http.StatusOK, listBody(
		map[string]any{"id": 1, "identifier": "1a2b3c4d", "name": "lobby", "node": 2, "suspended": false},
	)))

	out, err := execute(t, NewServersCommand(),
		"list", "--filter", "name=lobby", "--sort", "-id", "--include", "node,egg", "--per-page", "5", "--page", "2")
	require.NoError(t, err)

	request := panel.Last(t)
	assert.Equal(t, http.MethodGet, request.Method)
	assert.Equal(t, "/api/application/servers", request.Path)
	assert.Equal(t, []string{"lobby"}, request.Query["filter[name]"])
	assert.Equal(t, []string{"-id"}, request.Query["sort"])
	assert.Equal(t, []string{"node,egg"}, request.Query["include"])
	assert.Equal(t, []string{"5"}, request.Query["per_page"])
	assert.Equal(t, []string{"2"}, request.Query["page"])
	assert.Contains(t, out, `"lobby"`)
}

func TestServersList_Table(t *testing.T) {
	setupPanel(t, reply(http.StatusOK, listBody(
		map[string]any{"id": 7, "identifier": "deadbeef", "name": "survival", "node": 1, "suspended": true},
	)))
	viper.Set("output", "table")

	out, err := execute(t, NewServersCommand(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "IDENTIFIER")
	assert.Contains(t, out, "survival")
	assert.Contains(t, out, "deadbeef")
}

func TestServersList_InvalidFilter(t *testing.T) {
	panel := setupPanel(t, reply(http.StatusOK, listBody()))

	_, err := execute(t, NewServersCommand(), "list", "--filter", "lobby")
	require.ErrorIs(t, err, ErrInvalidKeyValue)
	assert.Empty(t, panel.Requests())
}

func TestServersGet(t *testing.T) {
	panel := setupPanel(t, reply(http.StatusOK, map[string]any{
		"object": "server", "attributes": map[string]any{"id": 3, "name": "lobby"},
	}))

	out, err := execute(t, NewServersCommand(), "get", "3", "--include", "allocations")
	require.NoError(t, err)
	assert.Equal(t, "/api/application/servers/3", panel.Last(t).Path)
	assert.Equal(t, []string{"allocations"}, panel.Last(t).Query["include"])
	assert.Contains(t, out, `"lobby"`)

	_, err = execute(t, NewServersCommand(), "get", "ext-1", "--external")
	require.NoError(t, err)
	assert.Equal(t, "/api/application/servers/external/ext-1", panel.Last(t).Path)

	_, err = execute(t, NewServersCommand(), "get", "abc")
	require.ErrorIs(t, err, ErrInvalidID)
}

func TestServersCreate(t *testing.T) {
	panel := setupPanel(t, reply(http.StatusCreated, map[string]any{
		"object": "server", "attributes": map[string]any{"id": 9, "name": "new"},
	}))

	_, err := execute(t, NewServersCommand(), "create",
		"--name", "new", "--user", "1", "--egg", "5", "--docker-image", "ghcr.io/img:java", "--startup", "java -jar server.jar",
		"--memory", "1024", "--disk", "2048", "--allocation", "12", "-e", "EULA=true", "-e", "VERSION=latest")
	require.NoError(t, err)

	request := panel.Last(t)
	assert.Equal(t, http.MethodPost, request.Method)
	assert.Equal(t, "/api/application/servers", request.Path)

	var body map[string]any
	require.NoError(t, json.Unmarshal(request.Body, &body))
	assert.Equal(t, "new", body["name"])
	assert.Equal(t, map[string]any{"EULA": "true", "VERSION": "latest"}, body["environment"])
	assert.InDelta(t, 12, body["allocation"].(map[string]any)["default"], 0)
	assert.InDelta(t, 1024, body["limits"].(map[string]any)["memory"], 0)
}

func TestServersCreate_InvalidParams(t *testing.T) {
	panel := setupPanel(t, reply(http.StatusCreated, nil))

	_, err := execute(t, NewServersCommand(), "create", "--name", "incomplete")
	require.ErrorIs(t, err, ptero.ErrInvalidParams)
	assert.Empty(t, panel.Requests())
}

func TestServerActions(t *testing.T) {
	panel := setupPanel(t, reply(http.StatusNoContent, nil))
	viper.Set("output", "table")

	tests := []struct {
		args   []string
		method string
		path   string
		output string
	}{
		{[]string{"suspend", "4"}, http.MethodPost, "/api/application/servers/4/suspend", "Server suspended"},
		{[]string{"unsuspend", "4"}, http.MethodPost, "/api/application/servers/4/unsuspend", "Server unsuspended"},
		{[]string{"reinstall", "4"}, http.MethodPost, "/api/application/servers/4/reinstall", "Reinstall started"},
		{[]string{"delete", "4"}, http.MethodDelete, "/api/application/servers/4", "Server 4 deleted"},
		{[]string{"delete", "4", "--force"}, http.MethodDelete, "/api/application/servers/4/force", "Server 4 force deleted"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := execute(t, NewServersCommand(), tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.method, panel.Last(t).Method)
			assert.Equal(t, tt.path, panel.Last(t).Path)
			assert.Equal(t, tt.output+"\n", out)
		})
	}
}

func TestFailureExplainsResponse(t *testing.T) {
	setupPanel(t, reply(http.StatusNotFound, map[string]any{
		"errors": []any{map[string]any{
			"code": "NotFoundHttpException", "status": "404", "detail": "The requested resource could not be found on the server.",
		}},
	}))

	_, err := execute(t, NewNodesCommand(), "get", "99")
	require.ErrorIs(t, err, ErrRequestFailed)
	assert.Contains(t, err.Error(), "NotFoundHttpException")
	assert.Contains(t, err.Error(), "could not be found")
}

func TestApplicationReadCommands(t *testing.T) {
	panel := setupPanel(t, reply(http.StatusOK, listBody(map[string]any{"id": 1})))

	tests := []struct {
		name string
		run  func() (string, error)
		path string
	}{
		{"nodes list", func() (string, error) { return execute(t, NewNodesCommand(), "list") }, "/api/application/nodes"},
		{"nodes configuration", func() (string, error) { return execute(t, NewNodesCommand(), "configuration", "2") }, "/api/application/nodes/2/configuration"},
		{"users list", func() (string, error) { return execute(t, NewUsersCommand(), "list") }, "/api/application/users"},
		{"users get", func() (string, error) { return execute(t, NewUsersCommand(), "get", "5") }, "/api/application/users/5"},
		{"locations list", func() (string, error) { return execute(t, NewLocationsCommand(), "list") }, "/api/application/locations"},
		{"nests list", func() (string, error) { return execute(t, NewNestsCommand(), "list") }, "/api/application/nests"},
		{"eggs list", func() (string, error) { return execute(t, NewEggsCommand(), "list", "3") }, "/api/application/nests/3/eggs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.run()
			require.NoError(t, err)
			assert.Equal(t, http.MethodGet, panel.Last(t).Method)
			assert.Equal(t, tt.path, panel.Last(t).Path)
		})
	}
}

func TestPowerCommand(t *testing.T) {
	panel := setupPanel(t, reply(http.StatusNoContent, nil))
	viper.Set("token", "ptlc_clitest")

	_, err := execute(t, NewPowerCommand(), "1a2b3c4d", "RESTART")
	require.NoError(t, err)

	request := panel.Last(t)
	assert.Equal(t, "/api/client/servers/1a2b3c4d/power", request.Path)
	assert.JSONEq(t, `{"signal":"restart"}`, string(request.Body))

	_, err = execute(t, NewPowerCommand(), "1a2b3c4d", "reboot")
	require.ErrorIs(t, err, ErrInvalidPowerState)
	assert.Len(t, panel.Requests(), 1)
}

func TestCommandCommand(t *testing.T) {
	panel := setupPanel(t, reply(http.StatusNoContent, nil))
	viper.Set("token", "ptlc_clitest")

	_, err := execute(t, NewCommandCommand(), "1a2b3c4d", "say", "hello", "world")
	require.NoError(t, err)
	assert.Equal(t, "/api/client/servers/1a2b3c4d/command", panel.Last(t).Path)
	assert.JSONEq(t, `{"command":"say hello world"}`, string(panel.Last(t).Body))
}

func TestFilesCommands(t *testing.T) {
	panel := setupPanel(t, func(writer http.ResponseWriter, request *http.Request) {
		if strings.HasSuffix(request.URL.Path, "/files/contents") {
			writer.Header().Set("Content-Type", "text/plain")
			_, _ = writer.Write([]byte("motd=Hello\n"))

			return
		}

		reply(http.StatusNoContent, nil)(writer, request)
	})
	viper.Set("token", "ptlc_clitest")

	out, err := execute(t, NewFilesCommand(), "cat", "1a2b3c4d", "server.properties")
	require.NoError(t, err)
	assert.Equal(t, "motd=Hello\n", out)
	assert.Equal(t, []string{"/server.properties"}, panel.Last(t).Query["file"])

	cmd := NewFilesCommand()
	cmd.SetIn(strings.NewReader("eula=true"))

	_, err = execute(t, cmd, "write", "1a2b3c4d", "/eula.txt")
	require.NoError(t, err)
	assert.Equal(t, "/api/client/servers/1a2b3c4d/files/write", panel.Last(t).Path)
	assert.Equal(t, "eula=true", string(panel.Last(t).Body))

	_, err = execute(t, NewFilesCommand(), "mkdir", "1a2b3c4d", "plugins", "--root", "/data")
	require.NoError(t, err)
	assert.JSONEq(t, `{"root":"/data","name":"plugins"}`, string(panel.Last(t).Body))

	_, err = execute(t, NewFilesCommand(), "rm", "1a2b3c4d", "a.txt", "b.txt")
	require.NoError(t, err)
	assert.Equal(t, "/api/client/servers/1a2b3c4d/files/delete", panel.Last(t).Path)
	assert.JSONEq(t, `{"root":"/","files":["a.txt","b.txt"]}`, string(panel.Last(t).Body))
}

func TestAccountListCommands(t *testing.T) {
	panel := setupPanel(t, reply(http.StatusOK, listBody(map[string]any{"name": "x"})))
	viper.Set("token", "ptlc_clitest")

	tests := []struct {
		name string
		run  func() (string, error)
		path string
	}{
		{"files ls", func() (string, error) { return execute(t, NewFilesCommand(), "ls", "1a2b3c4d", "/plugins") }, "/api/client/servers/1a2b3c4d/files/list"},
		{"backups list", func() (string, error) { return execute(t, NewBackupsCommand(), "list", "1a2b3c4d") }, "/api/client/servers/1a2b3c4d/backups"},
		{"databases list", func() (string, error) { return execute(t, NewDatabasesCommand(), "list", "1a2b3c4d") }, "/api/client/servers/1a2b3c4d/databases"},
		{"subusers list", func() (string, error) { return execute(t, NewSubusersCommand(), "list", "1a2b3c4d") }, "/api/client/servers/1a2b3c4d/users"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.run()
			require.NoError(t, err)
			assert.Equal(t, tt.path, panel.Last(t).Path)
		})
	}

	assert.Equal(t, []string{"/plugins"}, panel.Requests()[0].Query["directory"])
}

func TestBackupsCreateAndDelete(t *testing.T) {
	panel := setupPanel(t, reply(http.StatusOK, map[string]any{"object": "backup", "attributes": map[string]any{"uuid": "b-1"}}))
	viper.Set("token", "ptlc_clitest")

	_, err := execute(t, NewBackupsCommand(), "create", "1a2b3c4d", "--name", "nightly", "--ignore", "logs", "--ignore", "cache")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"nightly","ignored":"logs\ncache"}`, string(panel.Last(t).Body))

	_, err = execute(t, NewBackupsCommand(), "delete", "1a2b3c4d", "b-1")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, panel.Last(t).Method)
	assert.Equal(t, "/api/client/servers/1a2b3c4d/backups/b-1", panel.Last(t).Path)
}

func TestFilesUpload(t *testing.T) {
	var signed string

	panel := setupPanel(t, func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/api/client/servers/1a2b3c4d/files/upload":
			reply(http.StatusOK, map[string]any{"object": "signed_url", "attributes": map[string]any{"url": signed}})(writer, request)
		case "/upload/file":
			writer.WriteHeader(http.StatusOK)
		default:
			writer.WriteHeader(http.StatusNotFound)
		}
	})
	signed = panel.URL + "/upload/file?token=signed"
	viper.Set("token", "ptlc_clitest")
	viper.Set("output", "table")

	local := filepath.Join(t.TempDir(), "motd.txt")
	require.NoError(t, os.WriteFile(local, []byte("hello"), 0o600))

	out, err := execute(t, NewFilesCommand(), "upload", "1a2b3c4d", local, "--dir", "/config")
	require.NoError(t, err)
	assert.Equal(t, "Uploaded 1 file(s) to /config\n", out)

	upload := panel.Last(t)
	assert.Equal(t, "/upload/file", upload.Path)
	assert.Equal(t, []string{"/config"}, upload.Query["directory"])
	assert.Contains(t, string(upload.Body), `filename="motd.txt"`)
}

func TestConfigCommands(t *testing.T) {
	resetViper(t)

	configFile := filepath.Join(t.TempDir(), "config.yml")
	viper.SetConfigFile(configFile)

	_, err := execute(t, NewConfigCommand(), "set", "url", "https://panel.example.com")
	require.NoError(t, err)
	_, err = execute(t, NewConfigCommand(), "set", "token", "ptlc_secret")
	require.NoError(t, err)

	data, err := os.ReadFile(configFile)
	require.NoError(t, err)

	var saved Config
	require.NoError(t, yaml.Unmarshal(data, &saved))
	assert.Equal(t, "https://panel.example.com", saved.URL)
	assert.Equal(t, "ptlc_secret", saved.Token)

	viper.Set("output", "json")

	out, err := execute(t, NewConfigCommand(), "show")
	require.NoError(t, err)
	assert.Contains(t, out, constants.MaskedSecret)
	assert.NotContains(t, out, "ptlc_secret")

	_, err = execute(t, NewConfigCommand(), "unset", "token")
	require.NoError(t, err)
	assert.Empty(t, viper.GetString("token"))

	_, err = execute(t, NewConfigCommand(), "set", "colour", "blue")
	require.ErrorIs(t, err, ErrUnknownConfigKey)

	_, err = execute(t, NewConfigCommand(), "set", "retries", "many")
	require.Error(t, err)
}

func TestLoginCommand(t *testing.T) {
	panel := setupPanel(t, reply(http.StatusOK, listBody()))
	viper.Set("token", "")
	viper.Set("output", "table")

	configFile := filepath.Join(t.TempDir(), "config.yml")
	viper.SetConfigFile(configFile)

	cmd := NewLoginCommand()
	cmd.SetIn(strings.NewReader("ptlc_fromprompt\n"))

	out, err := execute(t, cmd)
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in to "+panel.URL+" with a client key")
	assert.Equal(t, "/api/client", panel.Last(t).Path, "client keys are checked against the account API")

	data, err := os.ReadFile(configFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ptlc_fromprompt")
}

func TestLoginCommand_RejectsBadKey(t *testing.T) {
	panel := setupPanel(t, reply(http.StatusOK, listBody()))
	viper.Set("token", "")
	viper.SetConfigFile(filepath.Join(t.TempDir(), "config.yml"))

	cmd := NewLoginCommand()
	cmd.SetIn(strings.NewReader("not-a-key\n"))

	_, err := execute(t, cmd)
	require.ErrorIs(t, err, ptero.ErrInvalidTokenPrefix)
	assert.Empty(t, panel.Requests())
}

func TestCreateClient(t *testing.T) {
	resetViper(t)

	_, err := createClient()
	require.ErrorIs(t, err, constants.ErrNoBaseURL)

	viper.Set("url", "panel.example.com")

	_, err = createClient()
	require.ErrorIs(t, err, constants.ErrNoToken)

	viper.Set("token", "pacc_abc")
	viper.Set("cache", "memory")

	client, err := createClient()
	require.NoError(t, err)
	assert.Equal(t, "https://panel.example.com", client.BaseURL())

	viper.Set("cache", "redis")

	_, err = createClient()
	require.ErrorIs(t, err, ptero.ErrUnsupportedCacheType)
}

func TestHelpers(t *testing.T) {
	resetViper(t)

	values, err := parseKeyValues([]string{"a=1", "b=x=y", "c="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "x=y", "c": ""}, values)

	_, err = parseKeyValues([]string{"=1"})
	require.ErrorIs(t, err, ErrInvalidKeyValue)

	id, err := parseID("42", "node")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	for _, raw := range []string{"0", "-1", "x"} {
		_, err = parseID(raw, "node")
		require.ErrorIs(t, err, ErrInvalidID, raw)
	}

	assert.Equal(t, constants.NotAvailable, formatValue(nil))
	assert.Equal(t, "3", formatValue(float64(3)))
	assert.Equal(t, "true", formatValue(true))
	assert.Equal(t, `{"a":1}`, formatValue(map[string]any{"a": 1}))

	viper.Set("output", "XML")

	_, err = outputFormat()
	require.ErrorIs(t, err, constants.ErrInvalidFormat)

	viper.Set("output", "YAML")

	format, err := outputFormat()
	require.NoError(t, err)
	assert.Equal(t, constants.FormatYAML, format)
}
