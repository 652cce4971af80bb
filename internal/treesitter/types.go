package treesitter

// FunctionDef is a function or method definition extracted from a syntax tree.
// Methods are qualified as "ClassName.method" in Name so they line up with
// the stable-ID scheme (file_stem:name) without a separate Class edge kind.
type FunctionDef struct {
	Name       string
	FilePath   string
	StartLine  int
	EndLine    int
	Parameters []string
	IsExported bool
	IsAsync    bool
	Decorators []string
}

// CallSite is a syntactic call expression. CalleeName is whatever text the
// grammar yields for the callee. No member-access or dynamic-dispatch
// resolution is attempted here or later: the graph builder matches this
// text verbatim against function names.
type CallSite struct {
	CalleeName        string
	FilePath          string
	Line              int
	EnclosingFunction string // "" for a module-level call
}

// ImportStmt is a single import/from-import statement.
type ImportStmt struct {
	ImportedNames   []string
	SourceModule    string
	FilePath        string
	Line            int
	IsDefaultImport bool
}

// ExportStmt is a single export declaration or re-export clause.
type ExportStmt struct {
	ExportedNames   []string
	FilePath        string
	Line            int
	IsDefaultExport bool
}

// ParseResult holds everything extracted from one file, plus any non-fatal
// parse errors encountered along the way. A failed parse still returns a
// ParseResult with whatever was recovered — parsing never aborts the build.
type ParseResult struct {
	FilePath  string
	Language  string
	Functions []FunctionDef
	Calls     []CallSite
	Imports   []ImportStmt
	Exports   []ExportStmt
	Errors    []string
}
