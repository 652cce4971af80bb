package treesitter

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// PythonExtractor implements LanguageExtractor for Python syntax trees.
type PythonExtractor struct{}

// ExtractFunctions walks function_definition nodes, qualifying methods as
// Class.method and unwrapping decorated_definition wrappers to collect
// decorators onto the function they annotate.
func (PythonExtractor) ExtractFunctions(root *sitter.Node, code []byte, filePath string) []FunctionDef {
	var funcs []FunctionDef

	var walk func(node *sitter.Node, pendingDecorators []string)
	walk = func(node *sitter.Node, pendingDecorators []string) {
		if node == nil {
			return
		}

		switch node.Kind() {
		case "decorated_definition":
			var decorators []string
			for i := uint(0); i < node.ChildCount(); i++ {
				if c := node.Child(i); c.Kind() == "decorator" {
					decorators = append(decorators, nodeTextTrimmed(c, code, "@"))
				}
			}
			walk(node.ChildByFieldName("definition"), decorators)
			return

		case "function_definition":
			nameNode := node.ChildByFieldName("name")
			if nameNode != nil {
				funcs = append(funcs, FunctionDef{
					Name:       pythonFunctionName(node, code),
					FilePath:   filePath,
					StartLine:  line(node),
					EndLine:    int(node.EndPosition().Row) + 1,
					Parameters: pythonParamNames(node.ChildByFieldName("parameters"), code),
					IsExported: node.Parent() != nil && node.Parent().Kind() == "module",
					IsAsync:    hasAsyncModifier(node),
					Decorators: pendingDecorators,
				})
			}
		}

		for i := uint(0); i < node.ChildCount(); i++ {
			walk(node.Child(i), nil)
		}
	}

	walk(root, nil)
	return funcs
}

// ExtractCalls walks "call" nodes, recording the syntactic callee text and
// the nearest enclosing function.
func (PythonExtractor) ExtractCalls(root *sitter.Node, code []byte, filePath string) []CallSite {
	var calls []CallSite

	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}
		if node.Kind() == "call" {
			if fn := node.ChildByFieldName("function"); fn != nil {
				calls = append(calls, CallSite{
					CalleeName:        getNodeText(fn, code),
					FilePath:          filePath,
					Line:              line(node),
					EnclosingFunction: pythonEnclosingFunctionName(node, code),
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

// ExtractImports walks import_statement and import_from_statement nodes.
func (PythonExtractor) ExtractImports(root *sitter.Node, code []byte, filePath string) []ImportStmt {
	var imports []ImportStmt

	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}

		switch node.Kind() {
		case "import_statement":
			var names []string
			var source string
			for i := uint(0); i < node.ChildCount(); i++ {
				c := node.Child(i)
				switch c.Kind() {
				case "dotted_name":
					names = append(names, getNodeText(c, code))
					if source == "" {
						source = getNodeText(c, code)
					}
				case "aliased_import":
					nameNode := c.ChildByFieldName("name")
					aliasNode := c.ChildByFieldName("alias")
					if nameNode != nil && source == "" {
						source = getNodeText(nameNode, code)
					}
					if aliasNode != nil {
						names = append(names, getNodeText(aliasNode, code))
					} else if nameNode != nil {
						names = append(names, getNodeText(nameNode, code))
					}
				}
			}
			if len(names) > 0 {
				imports = append(imports, ImportStmt{ImportedNames: names, SourceModule: source, FilePath: filePath, Line: line(node)})
			}

		case "import_from_statement":
			moduleNode := node.ChildByFieldName("module_name")
			source := ""
			if moduleNode != nil {
				source = getNodeText(moduleNode, code)
			}
			var names []string
			for i := uint(0); i < node.ChildCount(); i++ {
				c := node.Child(i)
				if c == moduleNode {
					continue
				}
				switch c.Kind() {
				case "dotted_name", "identifier":
					names = append(names, getNodeText(c, code))
				case "aliased_import":
					if aliasNode := c.ChildByFieldName("alias"); aliasNode != nil {
						names = append(names, getNodeText(aliasNode, code))
					} else if nameNode := c.ChildByFieldName("name"); nameNode != nil {
						names = append(names, getNodeText(nameNode, code))
					}
				}
			}
			if len(names) > 0 {
				imports = append(imports, ImportStmt{ImportedNames: names, SourceModule: source, FilePath: filePath, Line: line(node)})
			}
		}

		for i := uint(0); i < node.ChildCount(); i++ {
			walk(node.Child(i))
		}
	}

	walk(root)
	return imports
}

// ExtractExports always returns nil for Python: the language has no export
// declaration syntax, and __all__ analysis is out of scope (§4.2).
func (PythonExtractor) ExtractExports(root *sitter.Node, code []byte, filePath string) []ExportStmt {
	return nil
}

func nodeTextTrimmed(node *sitter.Node, code []byte, cutset string) string {
	text := getNodeText(node, code)
	for len(text) > 0 && text[0] == cutset[0] {
		text = text[1:]
	}
	return text
}
