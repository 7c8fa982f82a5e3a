package model

// Path represents a file system path.
type Path string

// PlanFormat selects how a plan run renders its results.
type PlanFormat string

// Available PlanFormat values.
const (
	FormatTable PlanFormat = "table"
	FormatYAML  PlanFormat = "yaml"
)

// Verdict says what the engine would do with one reference at run time.
type Verdict string

const (
	// VerdictPatch is a registered seam the default policy doubles.
	VerdictPatch Verdict = "patch"
	// VerdictBuiltinSeam is a builtin seam, doubled only when included
	// (the identity seam is included by default).
	VerdictBuiltinSeam Verdict = "builtin-seam"
	// VerdictErrorValue is a sentinel error binding, left real by default.
	VerdictErrorValue Verdict = "error-value"
	// VerdictReceiver travels through the synthesized receiver double.
	VerdictReceiver Verdict = "receiver"
	// VerdictDirectFunc is a direct reference to a package function; not
	// rebindable until bound to a var seam.
	VerdictDirectFunc Verdict = "direct-func"
	// VerdictConstant covers consts, which are not addressable and never
	// rebindable.
	VerdictConstant Verdict = "constant"
	// VerdictType is a type name used in an expression.
	VerdictType Verdict = "type"
	// VerdictLanguageBuiltin covers len, append and friends.
	VerdictLanguageBuiltin Verdict = "language-builtin"
	// VerdictCrossPackage is a selector rooted at an import, outside the
	// one-level analysis horizon.
	VerdictCrossPackage Verdict = "cross-package"
	// VerdictUnresolved means nothing known declares the name.
	VerdictUnresolved Verdict = "unresolved"
)

// PlannedReference is one free-variable reference with the planner's verdict.
type PlannedReference struct {
	Name    string  `yaml:"name"`
	Sel     string  `yaml:"sel,omitempty"`
	Line    int     `yaml:"line"`
	Verdict Verdict `yaml:"verdict"`
	Reason  string  `yaml:"reason,omitempty"`
}

// FunctionPlan is the isolation plan for a single function or method.
type FunctionPlan struct {
	Function     string             `yaml:"function"`
	Receiver     string             `yaml:"receiver,omitempty"`
	ReceiverKind string             `yaml:"receiverKind"`
	File         string             `yaml:"file"`
	Line         int                `yaml:"line"`
	Params       []string           `yaml:"params,omitempty"`
	Refs         []PlannedReference `yaml:"refs,omitempty"`
}

// FilePlan groups function plans per source file, with the file fingerprint
// used for incremental re-planning.
type FilePlan struct {
	File      Path           `yaml:"file"`
	Hash      string         `yaml:"hash"`
	Functions []FunctionPlan `yaml:"functions"`
}

// PackagePlan is the persisted unit: every scanned file of one package.
type PackagePlan struct {
	Dir        Path       `yaml:"dir"`
	ImportPath string     `yaml:"importPath"`
	Files      []FilePlan `yaml:"files"`
}

// Functions flattens the per-file plans in file order.
func (p PackagePlan) Functions() []FunctionPlan {
	var out []FunctionPlan
	for _, f := range p.Files {
		out = append(out, f.Functions...)
	}

	return out
}

// Coverage summarizes how isolatable a plan is.
type Coverage struct {
	Patchable int
	Total     int
}

// Score returns patchable/total in [0,1]; zero-reference plans score 1.
func (c Coverage) Score() float64 {
	if c.Total == 0 {
		return 1
	}

	return float64(c.Patchable) / float64(c.Total)
}
