package config

import "time"

const (
	DefaultTickInterval = 200 * time.Millisecond
	DefaultPollInterval = time.Second
	DefaultLogTailLines = 1000
)

// GetDefaultConfig returns the built-in configuration every layer is merged
// onto.
func GetDefaultConfig() Config {
	return Config{
		UI: UISettings{
			TickInterval: DefaultTickInterval,
			Split:        "vertical",
		},
		Kube: KubeSettings{
			PollInterval: DefaultPollInterval,
			LogTailLines: DefaultLogTailLines,
		},
		Logging: LoggingSettings{
			Level: "info",
		},
	}
}
