package treesitter

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// JavaScriptExtractor implements LanguageExtractor for JavaScript and JSX
// syntax trees. TypeScriptExtractor embeds this and reuses it unchanged,
// since the TS grammar is a superset for the node kinds used here.
type JavaScriptExtractor struct{}

// ExtractFunctions walks function_declaration, arrow_function/
// function_expression (named via their variable_declarator or
// assignment_expression parent), and method_definition nodes.
func (JavaScriptExtractor) ExtractFunctions(root *sitter.Node, code []byte, filePath string) []FunctionDef {
	var funcs []FunctionDef

	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}

		switch node.Kind() {
		case "function_declaration":
			if nameNode := node.ChildByFieldName("name"); nameNode != nil {
				funcs = append(funcs, FunctionDef{
					Name:       getNodeText(nameNode, code),
					FilePath:   filePath,
					StartLine:  line(node),
					EndLine:    int(node.EndPosition().Row) + 1,
					Parameters: jsParamNames(node.ChildByFieldName("parameters"), code),
					IsExported: hasExportAncestor(node),
					IsAsync:    hasAsyncModifier(node),
				})
			}

		case "arrow_function", "function_expression":
			name := jsFunctionName(node, code)
			if name != "<anonymous>" {
				funcs = append(funcs, FunctionDef{
					Name:       name,
					FilePath:   filePath,
					StartLine:  line(node),
					EndLine:    int(node.EndPosition().Row) + 1,
					Parameters: jsParamNames(node.ChildByFieldName("parameters"), code),
					IsExported: hasExportAncestor(node),
					IsAsync:    hasAsyncModifier(node),
				})
			}

		case "method_definition":
			if nameNode := node.ChildByFieldName("name"); nameNode != nil {
				className := findParentClassName(node, code)
				fullName := getNodeText(nameNode, code)
				if className != "" {
					fullName = className + "." + fullName
				}
				funcs = append(funcs, FunctionDef{
					Name:       fullName,
					FilePath:   filePath,
					StartLine:  line(node),
					EndLine:    int(node.EndPosition().Row) + 1,
					Parameters: jsParamNames(node.ChildByFieldName("parameters"), code),
					IsExported: hasExportAncestor(node),
					IsAsync:    hasAsyncModifier(node),
				})
			}
		}

		for i := uint(0); i < node.ChildCount(); i++ {
			walk(node.Child(i))
		}
	}

	walk(root)
	return funcs
}

// ExtractCalls walks call_expression nodes, recording the syntactic callee
// text exactly as it appears (no member-access resolution).
func (JavaScriptExtractor) ExtractCalls(root *sitter.Node, code []byte, filePath string) []CallSite {
	var calls []CallSite

	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}
		if node.Kind() == "call_expression" {
			if fn := node.ChildByFieldName("function"); fn != nil {
				calls = append(calls, CallSite{
					CalleeName:        getNodeText(fn, code),
					FilePath:          filePath,
					Line:              line(node),
					EnclosingFunction: jsEnclosingFunctionName(node, code),
				})
			}
		}
		for i := uint(0); i < node.ChildCount(); i++ {
			walk(node.Child(i))
		}
	}

	walk(root)
	return calls
}

// ExtractImports walks import_statement nodes, covering default imports,
// namespace imports, and named-import specifiers (with aliasing).
func (JavaScriptExtractor) ExtractImports(root *sitter.Node, code []byte, filePath string) []ImportStmt {
	var imports []ImportStmt

	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}
		if node.Kind() == "import_statement" {
			source := ""
			if sourceNode := node.ChildByFieldName("source"); sourceNode != nil {
				source = strings.Trim(getNodeText(sourceNode, code), "\"'`")
			}

			var names []string
			isDefault := false
			for i := uint(0); i < node.ChildCount(); i++ {
				clause := node.Child(i)
				if clause.Kind() != "import_clause" {
					continue
				}
				for j := uint(0); j < clause.ChildCount(); j++ {
					ic := clause.Child(j)
					switch ic.Kind() {
					case "identifier":
						names = append(names, getNodeText(ic, code))
						isDefault = true
					case "namespace_import":
						names = append(names, getNodeText(ic, code))
					case "named_imports":
						for k := uint(0); k < ic.ChildCount(); k++ {
							spec := ic.Child(k)
							if spec.Kind() != "import_specifier" {
								continue
							}
							if alias := spec.ChildByFieldName("alias"); alias != nil {
								names = append(names, getNodeText(alias, code))
							} else if n := spec.ChildByFieldName("name"); n != nil {
								names = append(names, getNodeText(n, code))
							}
						}
					}
				}
			}

			imports = append(imports, ImportStmt{
				ImportedNames:   names,
				SourceModule:    source,
				FilePath:        filePath,
				Line:            line(node),
				IsDefaultImport: isDefault,
			})
		}
		for i := uint(0); i < node.ChildCount(); i++ {
			walk(node.Child(i))
		}
	}

	walk(root)
	return imports
}

// ExtractExports walks export_statement nodes: named re-export clauses,
// "export function/const X", and default exports.
func (JavaScriptExtractor) ExtractExports(root *sitter.Node, code []byte, filePath string) []ExportStmt {
	var exports []ExportStmt

	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}
		if node.Kind() == "export_statement" {
			isDefault := false
			var names []string

			for i := uint(0); i < node.ChildCount(); i++ {
				c := node.Child(i)
				switch c.Kind() {
				case "default":
					isDefault = true
				case "export_clause":
					for j := uint(0); j < c.ChildCount(); j++ {
						spec := c.Child(j)
						if spec.Kind() != "export_specifier" {
							continue
						}
						if alias := spec.ChildByFieldName("alias"); alias != nil {
							names = append(names, getNodeText(alias, code))
						} else if n := spec.ChildByFieldName("name"); n != nil {
							names = append(names, getNodeText(n, code))
						}
					}
				case "function_declaration", "class_declaration":
					if n := c.ChildByFieldName("name"); n != nil {
						names = append(names, getNodeText(n, code))
					}
				case "lexical_declaration", "variable_declaration":
					for j := uint(0); j < c.ChildCount(); j++ {
						decl := c.Child(j)
						if decl.Kind() == "variable_declarator" {
							if n := decl.ChildByFieldName("name"); n != nil {
								names = append(names, getNodeText(n, code))
							}
						}
					}
				}
			}

			if isDefault && len(names) == 0 {
				names = []string{"default"}
			}
			if len(names) > 0 {
				exports = append(exports, ExportStmt{
					ExportedNames:   names,
					FilePath:        filePath,
					Line:            line(node),
					IsDefaultExport: isDefault,
				})
			}
		}
		for i := uint(0); i < node.ChildCount(); i++ {
			walk(node.Child(i))
		}
	}

	walk(root)
	return exports
}
