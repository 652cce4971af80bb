package treesitter

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// getNodeText extracts text from a node using byte offsets.
func getNodeText(node *sitter.Node, code []byte) string {
	if node == nil {
		return ""
	}
	start := node.StartByte()
	end := node.EndByte()
	if int(end) > len(code) {
		end = uint(len(code))
	}
	return string(code[start:end])
}

func line(node *sitter.Node) int {
	return int(node.StartPosition().Row) + 1
}

// findParentClassName traverses up to find the containing class name for
// JS/TS-family nodes.
func findParentClassName(node *sitter.Node, code []byte) string {
	current := node.Parent()
	for current != nil {
		if current.Kind() == "class_declaration" {
			nameNode := current.ChildByFieldName("name")
			if nameNode != nil {
				return getNodeText(nameNode, code)
			}
		}
		current = current.Parent()
	}
	return ""
}

// findPythonParentClassName traverses up to find the containing class name
// for a Python method.
func findPythonParentClassName(node *sitter.Node, code []byte) string {
	current := node.Parent()
	for current != nil {
		if current.Kind() == "class_definition" {
			nameNode := current.ChildByFieldName("name")
			if nameNode != nil {
				return getNodeText(nameNode, code)
			}
		}
		current = current.Parent()
	}
	return ""
}

// hasExportAncestor reports whether any ancestor of node, up to the root, is
// an export_statement. Used for the JS/TS is_exported rule.
func hasExportAncestor(node *sitter.Node) bool {
	current := node.Parent()
	for current != nil {
		if current.Kind() == "export_statement" {
			return true
		}
		current = current.Parent()
	}
	return false
}

// hasAsyncModifier reports whether node carries a direct "async" token child,
// true for both Python and JS/TS function-like nodes.
func hasAsyncModifier(node *sitter.Node) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		if node.Child(i).Kind() == "async" {
			return true
		}
	}
	return false
}

// pythonFunctionName returns the qualified name (Class.method, or bare name
// for a module-level function) of a python function_definition node.
func pythonFunctionName(node *sitter.Node, code []byte) string {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return ""
	}
	name := getNodeText(nameNode, code)
	if class := findPythonParentClassName(node, code); class != "" {
		return class + "." + name
	}
	return name
}

// pythonEnclosingFunctionName walks up from node to the nearest enclosing
// function_definition and returns its qualified name, or "" if node is at
// module level.
func pythonEnclosingFunctionName(node *sitter.Node, code []byte) string {
	current := node.Parent()
	for current != nil {
		if current.Kind() == "function_definition" {
			return pythonFunctionName(current, code)
		}
		current = current.Parent()
	}
	return ""
}

// pythonParamNames extracts ordered parameter identifiers from a Python
// "parameters" node, stripping defaults, type annotations, and splat markers
// down to the bound name.
func pythonParamNames(paramsNode *sitter.Node, code []byte) []string {
	if paramsNode == nil {
		return nil
	}
	var names []string
	for i := uint(0); i < paramsNode.ChildCount(); i++ {
		c := paramsNode.Child(i)
		switch c.Kind() {
		case "identifier":
			names = append(names, getNodeText(c, code))
		case "default_parameter", "typed_default_parameter":
			if n := c.ChildByFieldName("name"); n != nil {
				names = append(names, getNodeText(n, code))
			}
		case "typed_parameter":
			if c.ChildCount() > 0 {
				names = append(names, strings.TrimLeft(getNodeText(c.Child(0), code), "*"))
			}
		case "list_splat_pattern", "dictionary_splat_pattern":
			names = append(names, strings.TrimLeft(getNodeText(c, code), "*"))
		}
	}
	return names
}

// jsFunctionLikeKinds are the node kinds considered "a function" when
// searching for the nearest enclosing function of a call site.
var jsFunctionLikeKinds = map[string]bool{
	"function_declaration": true,
	"arrow_function":       true,
	"function_expression":  true,
	"method_definition":    true,
}

// jsFunctionName derives the display name of a JS/TS function-like node the
// same way ExtractFunctions does, so enclosing-function lookups agree with
// definition names.
func jsFunctionName(node *sitter.Node, code []byte) string {
	switch node.Kind() {
	case "function_declaration":
		if n := node.ChildByFieldName("name"); n != nil {
			return getNodeText(n, code)
		}
		return "<anonymous>"
	case "method_definition":
		name := ""
		if n := node.ChildByFieldName("name"); n != nil {
			name = getNodeText(n, code)
		}
		if class := findParentClassName(node, code); class != "" {
			return class + "." + name
		}
		return name
	case "arrow_function", "function_expression":
		parent := node.Parent()
		if parent == nil {
			return "<anonymous>"
		}
		switch parent.Kind() {
		case "variable_declarator":
			if n := parent.ChildByFieldName("name"); n != nil {
				return getNodeText(n, code)
			}
		case "assignment_expression":
			if n := parent.ChildByFieldName("left"); n != nil {
				return getNodeText(n, code)
			}
		case "pair":
			if n := parent.ChildByFieldName("key"); n != nil {
				return getNodeText(n, code)
			}
		}
		return "<anonymous>"
	}
	return ""
}

// jsEnclosingFunctionName walks up from node to the nearest function-like
// ancestor and returns its display name, or "" if node is at module level.
func jsEnclosingFunctionName(node *sitter.Node, code []byte) string {
	current := node.Parent()
	for current != nil {
		if jsFunctionLikeKinds[current.Kind()] {
			return jsFunctionName(current, code)
		}
		current = current.Parent()
	}
	return ""
}

// jsParamNames extracts ordered parameter identifiers from a JS/TS
// "formal_parameters" node, unwrapping TS-typed and destructured/rest/default
// parameters down to their bound name text.
func jsParamNames(paramsNode *sitter.Node, code []byte) []string {
	if paramsNode == nil {
		return nil
	}
	var names []string
	for i := uint(0); i < paramsNode.ChildCount(); i++ {
		c := paramsNode.Child(i)
		switch c.Kind() {
		case "identifier":
			names = append(names, getNodeText(c, code))
		case "required_parameter", "optional_parameter":
			if pat := c.ChildByFieldName("pattern"); pat != nil {
				names = append(names, getNodeText(pat, code))
			}
		case "assignment_pattern":
			if left := c.ChildByFieldName("left"); left != nil {
				names = append(names, getNodeText(left, code))
			}
		case "rest_pattern", "object_pattern", "array_pattern":
			names = append(names, getNodeText(c, code))
		}
	}
	return names
}
