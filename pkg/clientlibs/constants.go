package clientlibs

// Exit codes for semantic error classification.
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error
//   - 3+: Application-specific errors
const (
	ExitSuccess       = 0  // Build completed (diagnostics may still be present)
	ExitGeneralError  = 1  // Unknown or unclassified error
	ExitUsageError    = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic         = 3  // Internal panic (unexpected crash)
	ExitConfigError   = 10 // Invalid configuration
	ExitRootNotFound  = 11 // Source root missing or not a directory
	ExitDegradedBuild = 12 // Build finished with diagnostics and --strict was set
)

// Defaults used when nothing is configured.
const (
	DefaultRoot          = "./"
	DefaultClientLibPath = "./clientlibs/"
	DefaultFullSuffix    = ""
	DefaultMinSuffix     = "-min"
	DefaultWriteRetries  = 3

	// LineBreak terminates every member in a concatenated bundle.
	LineBreak = "\r\n"

	// ManifestBase is the first line of css.txt / js.txt.
	ManifestBase = "#base=."
)

// Artifact file names inside each library folder.
const (
	ContentXMLFile     = ".content.xml"
	StyleBundleFile    = "styles.css"
	ScriptBundleFile   = "classes.js"
	StyleManifestFile  = "css.txt"
	ScriptManifestFile = "js.txt"
	IncludesFile       = "includes.txt"
	DependsFile        = "depends.txt"
)

// IgnoredPathSegment excludes installed packages from scanning.
const IgnoredPathSegment = "node_modules"
