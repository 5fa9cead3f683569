package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID          = "run_id"
	KeyStage          = "stage"
	KeyDurationMS     = "duration_ms"
	KeyImplementation = "implementation"
	KeyPath           = "path"
	KeyFile           = "file"
	KeyGallery        = "gallery"
	KeyCheck          = "check"
	KeyStatus         = "status"
	KeyExitCode       = "exit_code"
	KeyCount          = "count"
	KeyTool           = "tool"
	KeySubject        = "subject"
	KeyError          = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr          { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr        { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr    { return slog.Float64(KeyDurationMS, ms) }
func Implementation(n string) slog.Attr  { return slog.String(KeyImplementation, n) }
func Path(p string) slog.Attr            { return slog.String(KeyPath, p) }
func File(f string) slog.Attr            { return slog.String(KeyFile, f) }
func Gallery(g string) slog.Attr         { return slog.String(KeyGallery, g) }
func Check(kind string) slog.Attr        { return slog.String(KeyCheck, kind) }
func Status(s string) slog.Attr          { return slog.String(KeyStatus, s) }
func ExitCode(code int) slog.Attr        { return slog.Int(KeyExitCode, code) }
func Count(n int) slog.Attr              { return slog.Int(KeyCount, n) }
func Tool(name string) slog.Attr         { return slog.String(KeyTool, name) }
func Subject(s string) slog.Attr         { return slog.String(KeySubject, s) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
