package treesitter

import sitter "github.com/tree-sitter/go-tree-sitter"

// LanguageExtractor produces language-neutral records from one language's
// syntax tree. Each method performs its own tree walk; the orchestrator-level
// caller (ParseFile) invokes all four per file.
type LanguageExtractor interface {
	ExtractFunctions(root *sitter.Node, code []byte, filePath string) []FunctionDef
	ExtractCalls(root *sitter.Node, code []byte, filePath string) []CallSite
	ExtractImports(root *sitter.Node, code []byte, filePath string) []ImportStmt
	ExtractExports(root *sitter.Node, code []byte, filePath string) []ExportStmt
}

var extractors = map[string]LanguageExtractor{
	"python":     &PythonExtractor{},
	"javascript": &JavaScriptExtractor{},
	"jsx":        &JavaScriptExtractor{},
	"typescript": &TypeScriptExtractor{},
	"tsx":        &TypeScriptExtractor{},
}

func extractorFor(lang string) LanguageExtractor {
	return extractors[lang]
}
