package api

// NodeSummary is the listing form of a catalog node.
type NodeSummary struct {
	ID          string `json:"id" yaml:"id"`
	Kind        string `json:"kind" yaml:"kind"`
	Subkind     string `json:"subkind,omitempty" yaml:"subkind,omitempty"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Price       string `json:"price,omitempty" yaml:"price,omitempty"`
	Children    int    `json:"children" yaml:"children"`
}

// Fragments is the JSON form of a rendered node.
type Fragments struct {
	ID       string `json:"id"`
	Found    bool   `json:"found"`
	Strategy string `json:"strategy,omitempty"`
	Banner   string `json:"banner"`
	Body     string `json:"body"`
	Explore  string `json:"explore"`
}

// FileReport is the outcome of injecting one target document.
type FileReport struct {
	Path        string   `json:"path" yaml:"path"`
	Status      string   `json:"status" yaml:"status"`
	Blocks      int      `json:"blocks" yaml:"blocks"`
	Warnings    []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Unresolved  []string `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`
	Fingerprint string   `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
	Error       string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// SyncSummary tallies a batch run.
type SyncSummary struct {
	Files     []FileReport `json:"files" yaml:"files"`
	Updated   int          `json:"updated" yaml:"updated"`
	Unchanged int          `json:"unchanged" yaml:"unchanged"`
	Skipped   int          `json:"skipped" yaml:"skipped"`
	Failed    int          `json:"failed" yaml:"failed"`
}
