package config

import "time"

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config)
	Domain() string
}

// FixtureDefaultApplier handles fixture defaults.
type FixtureDefaultApplier struct{}

func (FixtureDefaultApplier) Domain() string { return "fixture" }

func (FixtureDefaultApplier) ApplyDefaults(cfg *Config) {
	if cfg.Fixture.Dir == "" {
		cfg.Fixture.Dir = "test_gallery"
	}
	if cfg.Fixture.Width <= 0 {
		cfg.Fixture.Width = 800
	}
	if cfg.Fixture.Height <= 0 {
		cfg.Fixture.Height = 600
	}
}

// ImplementationDefaultApplier installs the shell/python pair when none is configured.
type ImplementationDefaultApplier struct{}

func (ImplementationDefaultApplier) Domain() string { return "implementations" }

func (ImplementationDefaultApplier) ApplyDefaults(cfg *Config) {
	if len(cfg.Implementations) == 0 {
		cfg.Implementations = DefaultImplementations()
	}
	for i := range cfg.Implementations {
		if cfg.Implementations[i].SiteDir == "" {
			cfg.Implementations[i].SiteDir = "_site"
		}
	}
}

// DefaultImplementations returns the shell implementation followed by the
// scripted port, both in draft mode.
func DefaultImplementations() []Implementation {
	return []Implementation{
		{Name: "shell", Command: "bash", Script: "expose.sh", Args: []string{"-d"}, SiteDir: "_site"},
		{Name: "python", Command: "python3", Script: "expose.py", Args: []string{"-d"}, SiteDir: "_site"},
	}
}

// CompareDefaultApplier handles comparator defaults.
type CompareDefaultApplier struct{}

func (CompareDefaultApplier) Domain() string { return "compare" }

func (CompareDefaultApplier) ApplyDefaults(cfg *Config) {
	if cfg.Compare.TolerancePercent == 0 {
		cfg.Compare.TolerancePercent = 5
	}
	if len(cfg.Compare.HTMLExtensions) == 0 {
		cfg.Compare.HTMLExtensions = []string{".html", ".htm"}
	}
	if len(cfg.Compare.ImageExtensions) == 0 {
		cfg.Compare.ImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif"}
	}
}

// OutputDefaultApplier handles report, notify and watch defaults.
type OutputDefaultApplier struct{}

func (OutputDefaultApplier) Domain() string { return "output" }

func (OutputDefaultApplier) ApplyDefaults(cfg *Config) {
	if cfg.Report.Format == "" {
		cfg.Report.Format = ReportFormatText
	}
	if cfg.Notify.Subject == "" {
		cfg.Notify.Subject = "exposeparity.runs"
	}
	if cfg.Notify.Timeout <= 0 {
		cfg.Notify.Timeout = 5 * time.Second
	}
	if cfg.Watch.Debounce <= 0 {
		cfg.Watch.Debounce = 2 * time.Second
	}
}

// defaultAppliers lists the domain appliers in application order.
func defaultAppliers() []DefaultApplier {
	return []DefaultApplier{
		FixtureDefaultApplier{},
		ImplementationDefaultApplier{},
		CompareDefaultApplier{},
		OutputDefaultApplier{},
	}
}

// ApplyDefaults fills unset fields in every domain.
func ApplyDefaults(cfg *Config) {
	for _, applier := range defaultAppliers() {
		applier.ApplyDefaults(cfg)
	}
}

// Default returns a fully defaulted configuration rooted at root.
func Default(root string) *Config {
	cfg := &Config{Root: root}
	ApplyDefaults(cfg)
	return cfg
}
