// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Format Selection - these keys govern which transcoding variants are resolved into stream descriptors.
const (
	FormatsRequested = "formats.requested"
)

// Network Behavior - these keys tune outbound request retry and pagination parameters.
const (
	NetworkRetries        = "network.retries"
	NetworkPageLimit      = "network.page_limit"
	NetworkDownloadProbes = "network.download_probes"
)

// Search Interaction - these keys define the behavior of search discovery.
const (
	SearchLimit                = "search.limit"
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// History Tracking - these keys configure the persistence of resolution state.
const (
	HistorySaveOnResolve = "history.save_on_resolve"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern application behavior outside the core engine.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
	IconsVariant    = "icons.variant"
)
