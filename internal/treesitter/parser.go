package treesitter

import (
	"fmt"
	"os"
	"path/filepath"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// LanguageParser wraps a tree-sitter parser with a language-specific grammar.
// Always call Close() to prevent CGO memory leaks.
type LanguageParser struct {
	parser   *sitter.Parser
	language *sitter.Language
	langName string
}

// NewLanguageParser creates a parser for the given language tag. Supported:
// python, javascript, jsx, typescript, tsx.
func NewLanguageParser(lang string) (*LanguageParser, error) {
	parser := sitter.NewParser()
	if parser == nil {
		return nil, fmt.Errorf("failed to create tree-sitter parser")
	}

	var language *sitter.Language
	switch lang {
	case "javascript", "jsx":
		language = sitter.NewLanguage(tree_sitter_javascript.Language())
	case "typescript":
		language = sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	case "tsx":
		language = sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())
	case "python":
		language = sitter.NewLanguage(tree_sitter_python.Language())
	default:
		parser.Close()
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}

	if err := parser.SetLanguage(language); err != nil {
		parser.Close()
		return nil, fmt.Errorf("failed to set language %s: %w", lang, err)
	}

	return &LanguageParser{parser: parser, language: language, langName: lang}, nil
}

// Close releases parser resources.
func (lp *LanguageParser) Close() {
	if lp.parser != nil {
		lp.parser.Close()
	}
}

// Parse parses source code and returns the syntax tree. Caller must call
// tree.Close() when done.
func (lp *LanguageParser) Parse(code []byte) (*sitter.Tree, error) {
	tree := lp.parser.Parse(code, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse code")
	}
	return tree, nil
}

// languageExtensions maps recognized source extensions to language tags,
// matching the discovery extension table exactly.
var languageExtensions = map[string]string{
	".py":  "python",
	".js":  "javascript",
	".jsx": "jsx",
	".ts":  "typescript",
	".tsx": "tsx",
}

// DetectLanguage returns the language tag for a file extension, or "" if
// unrecognized.
func DetectLanguage(filePath string) string {
	return languageExtensions[filepath.Ext(filePath)]
}

// ParseFile parses a single file and extracts functions, call sites, imports
// and exports. It never fails fatally: a parse problem is appended to the
// result's Errors and the affected subtree contributes empty record streams.
func ParseFile(filePath string) (*ParseResult, error) {
	lang := DetectLanguage(filePath)
	if lang == "" {
		return &ParseResult{FilePath: filePath, Errors: []string{"unsupported file type: " + filePath}}, nil
	}

	code, err := os.ReadFile(filePath)
	if err != nil {
		return &ParseResult{FilePath: filePath, Language: lang, Errors: []string{fmt.Sprintf("failed to read file: %v", err)}}, nil
	}

	lp, err := NewLanguageParser(lang)
	if err != nil {
		return &ParseResult{FilePath: filePath, Language: lang, Errors: []string{fmt.Sprintf("failed to create parser: %v", err)}}, nil
	}
	defer lp.Close()

	tree, err := lp.Parse(code)
	if err != nil {
		return &ParseResult{FilePath: filePath, Language: lang, Errors: []string{fmt.Sprintf("failed to parse: %v", err)}}, nil
	}
	defer tree.Close()

	extractor := extractorFor(lang)
	if extractor == nil {
		return &ParseResult{FilePath: filePath, Language: lang, Errors: []string{"no extractor for language: " + lang}}, nil
	}

	root := tree.RootNode()
	result := &ParseResult{
		FilePath:  filePath,
		Language:  lang,
		Functions: extractor.ExtractFunctions(root, code, filePath),
		Calls:     extractor.ExtractCalls(root, code, filePath),
		Imports:   extractor.ExtractImports(root, code, filePath),
		Exports:   extractor.ExtractExports(root, code, filePath),
	}
	if root.HasError() {
		result.Errors = append(result.Errors, "syntax error recovered during parse")
	}
	return result, nil
}
