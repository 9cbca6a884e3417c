package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"kubedash/internal/config"
	"kubedash/internal/kube"
	"kubedash/internal/tui/controller"
	"kubedash/pkg/logging"
)

// rootFlags holds the command line overrides of the configuration.
type rootFlags struct {
	kubeconfig string
	context    string
	namespaces []string
	configPath string
	debug      bool
	logFile    string
	split      string
}

var flags rootFlags

// runProgram is mockable so the command can be tested without a terminal.
var runProgram = controller.Run

// newClient is mockable so the command can be tested without a cluster.
var newClient = kube.NewClient

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kubedash",
	Short: "Terminal dashboard for Kubernetes clusters",
	Long: `kubedash shows pods, container logs, config maps and secrets, events,
API resources and raw manifests of a Kubernetes cluster in a tabbed,
multi-pane terminal UI.

Press h or ? inside the dashboard for key bindings.`,
	Args: cobra.NoArgs,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// that are not about usage (e.g. an unreachable kubeconfig).
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(flags)
	},
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "kubedash version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd())

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "path to an additional configuration file")
	pf.StringVar(&flags.kubeconfig, "kubeconfig", "", "path to the kubeconfig file")

	f := rootCmd.Flags()
	f.StringVar(&flags.context, "context", "", "kubeconfig context to use")
	f.StringSliceVarP(&flags.namespaces, "namespace", "n", nil, "namespaces to show (repeatable)")
	f.BoolVar(&flags.debug, "debug", false, "log at debug level")
	f.StringVar(&flags.logFile, "log-file", "", "write the application log to this file")
	f.StringVar(&flags.split, "split", "", "initial split direction: horizontal or vertical")
}

// loadConfig loads the layered configuration and applies the flags on top.
func loadConfig(fl rootFlags) (config.Config, error) {
	cfg, err := config.LoadConfig(fl.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if fl.kubeconfig != "" {
		cfg.Kube.Kubeconfig = fl.kubeconfig
	}
	if fl.context != "" {
		cfg.Kube.Context = fl.context
	}
	if len(fl.namespaces) > 0 {
		cfg.Kube.Namespaces = fl.namespaces
	}
	if fl.debug {
		cfg.Logging.Level = "debug"
	}
	if fl.logFile != "" {
		cfg.Logging.File = fl.logFile
	}
	if fl.split != "" {
		cfg.UI.Split = fl.split
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runDashboard(fl rootFlags) error {
	cfg, err := loadConfig(fl)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	var out io.Writer = io.Discard
	if cfg.Logging.File != "" {
		file, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer file.Close()
		out = file
	}
	logChannel := logging.InitForTUI(level, out)
	defer logging.CloseTUIChannel()

	client, err := newClient(cfg.Kube.Kubeconfig, cfg.Kube.Context)
	if err != nil {
		return err
	}
	logging.Info("CLI", "Starting dashboard for context %s", client.Context())

	m, err := controller.NewAppModel(controller.Options{
		Config:     cfg,
		Kubeconfig: cfg.Kube.Kubeconfig,
		Client:     client,
		Namespaces: cfg.Kube.Namespaces,
		LogChannel: logChannel,
	})
	if err != nil {
		return err
	}
	return runProgram(m)
}
