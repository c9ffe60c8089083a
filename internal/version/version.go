package version

// Set at build time with -ldflags "-X Ironforge/internal/version.Version=...".
var (
	Version   = "0.3.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)
