package config

import (
	"fmt"
	"strings"

	perrors "git.home.luguber.info/inful/exposeparity/internal/errors"
)

// Validate checks the configuration after defaults were applied.
func (c *Config) Validate() error {
	if len(c.Implementations) != 2 {
		return perrors.ValidationFailed("implementations",
			fmt.Sprintf("exactly two implementations are compared, got %d", len(c.Implementations)))
	}

	seen := make(map[string]bool)
	for i, impl := range c.Implementations {
		field := fmt.Sprintf("implementations[%d]", i)
		if strings.TrimSpace(impl.Name) == "" {
			return perrors.ValidationFailed(field+".name", "must not be empty")
		}
		if seen[impl.Name] {
			return perrors.ValidationFailed(field+".name", "duplicate implementation name "+impl.Name)
		}
		seen[impl.Name] = true
		if strings.ContainsAny(impl.Name, `/\`) {
			return perrors.ValidationFailed(field+".name", "must not contain path separators")
		}
		if strings.TrimSpace(impl.Command) == "" {
			return perrors.ValidationFailed(field+".command", "must not be empty")
		}
	}

	if c.Compare.TolerancePercent < 0 || c.Compare.TolerancePercent > 100 {
		return perrors.ValidationFailed("compare.tolerance_percent", "must be between 0 and 100")
	}
	for _, ext := range append(append([]string{}, c.Compare.HTMLExtensions...), c.Compare.ImageExtensions...) {
		if !strings.HasPrefix(ext, ".") {
			return perrors.ValidationFailed("compare", "extension must start with a dot: "+ext)
		}
	}

	switch c.Report.Format {
	case ReportFormatText, ReportFormatJSON, ReportFormatMarkdown:
	default:
		return perrors.ValidationFailed("report.format", "unknown format "+string(c.Report.Format))
	}

	if c.Notify.Retries < 0 {
		return perrors.ValidationFailed("notify.retries", "must not be negative")
	}
	switch c.Notify.Backoff {
	case "", "fixed", "linear", "exponential":
	default:
		return perrors.ValidationFailed("notify.backoff", "must be fixed, linear or exponential")
	}

	if c.Watch.Interval < 0 {
		return perrors.ValidationFailed("watch.interval", "must not be negative")
	}
	return nil
}
