package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"kubedash/internal/kube"
	"kubedash/internal/tui/controller"
)

// isolate points the user and project configuration lookups at empty
// temporary directories.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestSetVersion(t *testing.T) {
	testVersion := "1.2.3-test"
	SetVersion(testVersion)

	if rootCmd.Version != testVersion {
		t.Errorf("Expected version to be %s, got %s", testVersion, rootCmd.Version)
	}
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "kubedash" {
		t.Errorf("Expected Use to be 'kubedash', got %s", rootCmd.Use)
	}
	if rootCmd.Short == "" || rootCmd.Long == "" {
		t.Error("Expected descriptions to be set")
	}
	if !rootCmd.SilenceUsage {
		t.Error("Expected SilenceUsage to be true")
	}

	for _, name := range []string{"context", "namespace", "debug", "log-file", "split"} {
		if rootCmd.Flags().Lookup(name) == nil {
			t.Errorf("Expected flag --%s", name)
		}
	}
	for _, name := range []string{"config", "kubeconfig"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected persistent flag --%s", name)
		}
	}
}

func TestSubcommands(t *testing.T) {
	found := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		found[cmd.Name()] = true
	}
	for _, expected := range []string{"version", "config"} {
		if !found[expected] {
			t.Errorf("Expected subcommand %s to be registered", expected)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	SetVersion("1.0.0")
	var buf bytes.Buffer
	cmd := newVersionCmd()
	cmd.SetOut(&buf)
	cmd.Run(cmd, nil)

	if got := buf.String(); got != "kubedash version 1.0.0\n" {
		t.Errorf("Unexpected version output %q", got)
	}
}

func TestVersionTemplate(t *testing.T) {
	testCmd := &cobra.Command{Use: "test", Version: "1.0.0"}
	testCmd.SetVersionTemplate(`{{printf "kubedash version %s\n" .Version}}`)

	var buf bytes.Buffer
	testCmd.SetOut(&buf)
	testCmd.SetArgs([]string{"--version"})
	if err := testCmd.Execute(); err != nil {
		t.Fatalf("Error executing version command: %v", err)
	}
	if got := buf.String(); got != "kubedash version 1.0.0\n" {
		t.Errorf("Expected version output, got %q", got)
	}
}

func TestLoadConfigFlags(t *testing.T) {
	isolate(t)

	cfg, err := loadConfig(rootFlags{
		kubeconfig: "/tmp/kc",
		context:    "prod",
		namespaces: []string{"a", "b"},
		debug:      true,
		logFile:    "/tmp/kubedash.log",
		split:      "horizontal",
	})
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Kube.Kubeconfig != "/tmp/kc" || cfg.Kube.Context != "prod" {
		t.Errorf("kube flags not applied: %+v", cfg.Kube)
	}
	if strings.Join(cfg.Kube.Namespaces, ",") != "a,b" {
		t.Errorf("namespaces not applied: %v", cfg.Kube.Namespaces)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.File != "/tmp/kubedash.log" {
		t.Errorf("logging flags not applied: %+v", cfg.Logging)
	}
	if cfg.UI.Split != "horizontal" {
		t.Errorf("split not applied: %q", cfg.UI.Split)
	}

	if _, err := loadConfig(rootFlags{split: "diagonal"}); err == nil {
		t.Error("Expected an invalid split to be rejected")
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "extra.yaml")
	if err := os.WriteFile(path, []byte("kube:\n  pollInterval: 5s\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(rootFlags{configPath: path})
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Kube.PollInterval != 5*time.Second {
		t.Errorf("Expected poll interval from file, got %v", cfg.Kube.PollInterval)
	}
}

func TestRunDashboard(t *testing.T) {
	isolate(t)
	origClient, origRun := newClient, runProgram
	t.Cleanup(func() { newClient, runProgram = origClient, origRun })

	newClient = func(kubeconfig, context string) (*kube.Client, error) {
		return nil, errors.New("no kubeconfig")
	}
	if err := runDashboard(rootFlags{}); err == nil || err.Error() != "no kubeconfig" {
		t.Errorf("Expected the client error, got %v", err)
	}

	newClient = func(kubeconfig, context string) (*kube.Client, error) {
		if context != "prod" {
			t.Errorf("Expected context prod, got %q", context)
		}
		return testClient(), nil
	}
	var ran *controller.AppModel
	runProgram = func(m *controller.AppModel) error {
		ran = m
		return nil
	}
	logFile := filepath.Join(t.TempDir(), "kubedash.log")
	if err := runDashboard(rootFlags{context: "prod", logFile: logFile}); err != nil {
		t.Fatalf("runDashboard failed: %v", err)
	}
	if ran == nil {
		t.Fatal("Expected the program to run")
	}
	if _, err := os.Stat(logFile); err != nil {
		t.Errorf("Expected the log file to be created: %v", err)
	}
}

func TestConfigCommand(t *testing.T) {
	isolate(t)
	var buf bytes.Buffer
	cmd := newConfigCmd()
	cmd.SetOut(&buf)
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("config command failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"split: vertical", "level: info", "tickInterval: 200ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}
