package config

import "time"

// Config represents the application configuration.
type Config struct {
	// Root is the directory holding the generator scripts; relative paths
	// elsewhere in the file resolve against it.
	Root            string           `yaml:"root,omitempty"`
	Fixture         FixtureConfig    `yaml:"fixture"`
	Implementations []Implementation `yaml:"implementations"`
	Compare         CompareConfig    `yaml:"compare"`
	Report          ReportConfig     `yaml:"report"`
	Workspace       WorkspaceConfig  `yaml:"workspace"`
	History         HistoryConfig    `yaml:"history"`
	Metrics         MetricsConfig    `yaml:"metrics"`
	Notify          NotifyConfig     `yaml:"notify"`
	Watch           WatchConfig      `yaml:"watch"`
}

// FixtureConfig controls the sample gallery bootstrapper.
type FixtureConfig struct {
	Dir       string `yaml:"dir"`
	ImageTool string `yaml:"image_tool,omitempty"` // empty: magick, then convert
	Width     int    `yaml:"width,omitempty"`
	Height    int    `yaml:"height,omitempty"`
}

// Implementation is one generator under test.
type Implementation struct {
	Name    string   `yaml:"name"`
	Command string   `yaml:"command"`
	Script  string   `yaml:"script,omitempty"` // resolved against Root and passed as first argument
	Args    []string `yaml:"args,omitempty"`
	SiteDir string   `yaml:"site_dir,omitempty"`
}

// CompareConfig tunes the output comparator.
type CompareConfig struct {
	TolerancePercent int      `yaml:"tolerance_percent"`
	HTMLExtensions   []string `yaml:"html_extensions,omitempty"`
	ImageExtensions  []string `yaml:"image_extensions,omitempty"`
}

// ReportFormat selects the stdout report rendering.
type ReportFormat string

const (
	ReportFormatText     ReportFormat = "text"
	ReportFormatJSON     ReportFormat = "json"
	ReportFormatMarkdown ReportFormat = "markdown"
)

// ReportConfig controls report output.
type ReportConfig struct {
	Format   ReportFormat `yaml:"format"`
	HTMLPath string       `yaml:"html_path,omitempty"`
	// Strict treats image size differences as failures.
	Strict bool `yaml:"strict,omitempty"`
}

// WorkspaceConfig controls where generator outputs are captured.
type WorkspaceConfig struct {
	BaseDir string `yaml:"base_dir,omitempty"` // empty: os.TempDir()
}

// HistoryConfig enables the SQLite run history.
type HistoryConfig struct {
	Path string `yaml:"path,omitempty"`
}

// MetricsConfig enables the Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// NotifyConfig enables NATS run notifications.
type NotifyConfig struct {
	NATSURL string        `yaml:"nats_url,omitempty"`
	Subject string        `yaml:"subject,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
	// Retries is the number of extra publish attempts; zero disables retries.
	Retries int    `yaml:"retries,omitempty"`
	Backoff string `yaml:"backoff,omitempty"` // fixed|linear|exponential
}

// Enabled reports whether a NATS URL is configured.
func (n NotifyConfig) Enabled() bool { return n.NATSURL != "" }

// WatchConfig controls the watch command.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce,omitempty"`
	Interval time.Duration `yaml:"interval,omitempty"` // zero disables periodic checks
}
