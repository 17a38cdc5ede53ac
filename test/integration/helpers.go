//go:build integration

package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/fivetwenty-io/ptero/pkg/ptero"
	"github.com/fivetwenty-io/ptero/pkg/pteroclient"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	PanelURL       string
	ApplicationKey string
	ClientKey      string
	ServerID       string
	PteroPath      string
	Verbose        bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		PanelURL:       os.Getenv("PTERO_URL"),
		ApplicationKey: os.Getenv("PTERO_APPLICATION_KEY"),
		ClientKey:      os.Getenv("PTERO_CLIENT_KEY"),
		ServerID:       os.Getenv("PTERO_SERVER_IDENTIFIER"),
		PteroPath:      getPteroPath(),
		Verbose:        os.Getenv("PTERO_VERBOSE") == "true",
	}
}

func getPteroPath() string {
	if path := os.Getenv("PTERO_BINARY_PATH"); path != "" {
		return path
	}

	for _, candidate := range []string{"../../ptero", "./ptero", "../ptero"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "ptero"
}

// SkipIfMissingPanel skips the test when no panel or application key is set.
func (config *TestConfig) SkipIfMissingPanel(t *testing.T) {
	t.Helper()

	if config.PanelURL == "" || config.ApplicationKey == "" {
		t.Skip("PTERO_URL or PTERO_APPLICATION_KEY not set, skipping integration test")
	}
}

// SkipIfMissingServer skips the test when no client key and server are set.
func (config *TestConfig) SkipIfMissingServer(t *testing.T) {
	t.Helper()

	if config.PanelURL == "" || config.ClientKey == "" || config.ServerID == "" {
		t.Skip("PTERO_URL, PTERO_CLIENT_KEY or PTERO_SERVER_IDENTIFIER not set, skipping integration test")
	}
}

// SkipIfMissingBinary skips the test when the ptero binary cannot be found.
func (config *TestConfig) SkipIfMissingBinary(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath(config.PteroPath); err != nil {
		t.Skipf("ptero binary not found at %s, skipping integration test", config.PteroPath)
	}
}

// ApplicationClient connects with the application key.
func (config *TestConfig) ApplicationClient() (ptero.Client, error) {
	return pteroclient.NewWithToken(config.PanelURL, config.ApplicationKey)
}

// AccountClient connects with the client key.
func (config *TestConfig) AccountClient() (ptero.Client, error) {
	return pteroclient.NewWithToken(config.PanelURL, config.ClientKey)
}

// CommandRunner runs the ptero binary against the configured panel.
type CommandRunner struct {
	config *TestConfig
	token  string
	t      *testing.T
}

// NewCommandRunner creates a runner that authenticates with token.
func NewCommandRunner(config *TestConfig, token string, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		token:  token,
		t:      t,
	}
}

// Run executes a ptero command and returns its output.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	return runner.RunWithInput("", args...)
}

// RunWithInput executes a ptero command with stdin input.
func (runner *CommandRunner) RunWithInput(input string, args ...string) (stdout, stderr string, err error) {
	cmd := exec.Command(runner.config.PteroPath, args...)
	cmd.Env = append(os.Environ(),
		"PTERO_URL="+runner.config.PanelURL,
		"PTERO_TOKEN="+runner.token,
	)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	cmd.Stdin = strings.NewReader(input)

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.PteroPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// GenerateTestName creates a unique test resource name.
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().Unix())
}

// WaitForCondition waits for a condition to be met with timeout.
func WaitForCondition(t *testing.T, condition func() bool, timeout time.Duration, message string) {
	t.Helper()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	timeoutChan := time.After(timeout)

	for {
		select {
		case <-ticker.C:
			if condition() {
				return
			}
		case <-timeoutChan:
			t.Fatalf("Timeout waiting for condition: %s", message)
		}
	}
}
