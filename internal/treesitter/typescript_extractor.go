package treesitter

// TypeScriptExtractor implements LanguageExtractor for TypeScript and TSX
// syntax trees. The TS grammar is a superset of the JS grammar for every
// node kind touched by JavaScriptExtractor (function_declaration,
// arrow_function, method_definition, import_statement, export_statement),
// so TypeScript reuses that logic unchanged rather than re-deriving it.
// Type annotations (return_type, typed_parameter, interface_declaration,
// type_alias_declaration) are syntax this extractor walks past without
// recording — the system is syntactic only, no type awareness (Non-goals).
type TypeScriptExtractor struct {
	JavaScriptExtractor
}
