package codec

// The stable tag grammar of the configuration surface.
const (
	// TagImport resolves a scalar dotted path to a registered symbol.
	TagImport = "!import"
	// TagImportPrefix resolves the suffix path and invokes it with the
	// mapping body as keyword arguments.
	TagImportPrefix = "!import:"
	// TagFuncPrefix evaluates the scalar body as an expression-backed
	// callable named by the suffix.
	TagFuncPrefix = "!func:"
	// TagNodes builds a node collection from a mapping of name to
	// properties. TagNodesAlias is the lowercase spelling accepted for
	// compatibility and emitted by the writer.
	TagNodes      = "!Nodes"
	TagNodesAlias = "!nodes"
	// TagGraphPrefix builds a graph named by the suffix.
	TagGraphPrefix = "!Graph:"
	// TagExperimentPrefix builds an experiment named by the suffix.
	TagExperimentPrefix = "!Experiment:"
	// TagGroupPrefix builds an experiment group named by the suffix.
	TagGroupPrefix = "!ExperimentGroup:"
)
