package extractor

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// Python extracts structural documentation from Python source files.
// One instance is safe for concurrent use: each Extract call creates its
// own parser, so files can be processed in parallel with no shared state.
type Python struct {
	language *sitter.Language
}

// NewPython creates a new Python extractor.
func NewPython() *Python {
	return &Python{
		language: sitter.NewLanguage(python.Language()),
	}
}

// Extract parses source into a Module. Parse failures never return an
// error: they produce a Module carrying only the path and an error record,
// so one malformed file cannot take down the rest of the run.
func (p *Python) Extract(path string, source []byte) *Module {
	module := &Module{
		Path:      path,
		Imports:   []ImportEntity{},
		Classes:   []ClassEntity{},
		Functions: []FunctionEntity{},
		Constants: []ConstantEntity{},
	}

	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(p.language)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return failedModule(path, KindParseError, "failed to parse file", 0, 0)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		msg := "invalid syntax"
		line, col := 0, 0
		if errNode := firstErrorNode(root); errNode != nil {
			if errNode.IsMissing() {
				msg = "invalid syntax: missing " + errNode.Kind()
			}
			line = lineOf(errNode)
			col = int(errNode.StartPosition().Column) + 1
		}
		return failedModule(path, KindParseError, msg, line, col)
	}

	// Comments (shebang, coding line, license header) are named extras in
	// the grammar, so "first statement" tracking has to skip them or a
	// leading comment would hide the module docstring.
	sawStatement := false
	for i := 0; i < int(root.NamedChildCount()); i++ {
		stmt := root.NamedChild(uint(i))
		if stmt.Kind() == "comment" {
			continue
		}
		firstStatement := !sawStatement
		sawStatement = true

		switch stmt.Kind() {
		case "expression_statement":
			if firstStatement {
				if doc, ok := docstringOf(stmt, source); ok {
					module.ModuleDocstring = &doc
					continue
				}
			}
			p.extractConstant(stmt, source, module)
		case "import_statement":
			p.extractImport(stmt, source, module)
		case "import_from_statement", "future_import_statement":
			p.extractFromImport(stmt, source, module)
		case "function_definition":
			fn := p.extractFunction(stmt, source, nil, false)
			module.Functions = append(module.Functions, fn)
		case "class_definition":
			module.Classes = append(module.Classes, p.extractClass(stmt, source, nil))
		case "decorated_definition":
			decorators, def := p.splitDecorated(stmt, source)
			if def == nil {
				continue
			}
			switch def.Kind() {
			case "function_definition":
				fn := p.extractFunction(def, source, decorators, false)
				module.Functions = append(module.Functions, fn)
			case "class_definition":
				module.Classes = append(module.Classes, p.extractClass(def, source, decorators))
			}
		}
	}

	return module
}

// failedModule builds a Module that records only the path and the failure.
func failedModule(path, kind, message string, line, column int) *Module {
	return &Module{
		Path: path,
		Error: &ExtractError{
			Kind:    kind,
			Message: message,
			Line:    line,
			Column:  column,
		},
	}
}

// FailedModule records a recoverable per-file failure (for example an
// unreadable file) in artifact form without invoking the parser.
func FailedModule(path, kind, message string) *Module {
	return failedModule(path, kind, message, 0, 0)
}

// extractImport handles "import a.b, c as d".
func (p *Python) extractImport(stmt *sitter.Node, source []byte, module *Module) {
	for i := 0; i < int(stmt.NamedChildCount()); i++ {
		child := stmt.NamedChild(uint(i))
		switch child.Kind() {
		case "dotted_name":
			module.Imports = append(module.Imports, ImportEntity{
				Type:   "import",
				Module: nodeText(child, source),
			})
		case "aliased_import":
			name := nodeText(child.ChildByFieldName("name"), source)
			alias := nodeText(child.ChildByFieldName("alias"), source)
			module.Imports = append(module.Imports, ImportEntity{
				Type:   "import",
				Module: name,
				Alias:  &alias,
			})
		}
	}
}

// extractFromImport handles "from a.b import c as d, e".
func (p *Python) extractFromImport(stmt *sitter.Node, source []byte, module *Module) {
	moduleNode := stmt.ChildByFieldName("module_name")
	moduleName := nodeText(moduleNode, source)
	// future_import_statement spells __future__ as a keyword token, not a
	// module_name field.
	if stmt.Kind() == "future_import_statement" {
		moduleName = "__future__"
	}

	for i := 0; i < int(stmt.NamedChildCount()); i++ {
		child := stmt.NamedChild(uint(i))
		if moduleNode != nil && child.Id() == moduleNode.Id() {
			continue
		}
		switch child.Kind() {
		case "dotted_name", "identifier":
			name := nodeText(child, source)
			module.Imports = append(module.Imports, ImportEntity{
				Type:   "from_import",
				Module: moduleName,
				Name:   &name,
			})
		case "aliased_import":
			name := nodeText(child.ChildByFieldName("name"), source)
			alias := nodeText(child.ChildByFieldName("alias"), source)
			module.Imports = append(module.Imports, ImportEntity{
				Type:   "from_import",
				Module: moduleName,
				Name:   &name,
				Alias:  &alias,
			})
		case "wildcard_import":
			name := "*"
			module.Imports = append(module.Imports, ImportEntity{
				Type:   "from_import",
				Module: moduleName,
				Name:   &name,
			})
		}
	}
}

// extractConstant records a top-level ALL_CAPS assignment.
func (p *Python) extractConstant(stmt *sitter.Node, source []byte, module *Module) {
	for i := 0; i < int(stmt.NamedChildCount()); i++ {
		assign := stmt.NamedChild(uint(i))
		if assign.Kind() != "assignment" {
			continue
		}

		left := assign.ChildByFieldName("left")
		if left == nil || left.Kind() != "identifier" {
			continue
		}
		name := nodeText(left, source)
		if !isConstantName(name) {
			continue
		}

		module.Constants = append(module.Constants, ConstantEntity{
			Name:       name,
			Value:      valueRepr(assign.ChildByFieldName("right"), source),
			LineNumber: lineOf(assign),
		})
	}
}

// valueRepr renders an assigned value: literal source text when statically
// determinable, a placeholder marker otherwise.
func valueRepr(node *sitter.Node, source []byte) string {
	if node == nil {
		return "..."
	}
	switch node.Kind() {
	case "string", "concatenated_string", "integer", "float", "true", "false", "none", "identifier", "attribute":
		return nodeText(node, source)
	case "unary_operator":
		return nodeText(node, source)
	case "list":
		return "[...]"
	case "dictionary", "set":
		return "{...}"
	case "tuple":
		return "(...)"
	default:
		return "..."
	}
}

// splitDecorated separates a decorated_definition into decorator names and
// the wrapped definition node.
func (p *Python) splitDecorated(stmt *sitter.Node, source []byte) ([]string, *sitter.Node) {
	var decorators []string
	for i := 0; i < int(stmt.NamedChildCount()); i++ {
		child := stmt.NamedChild(uint(i))
		if child.Kind() == "decorator" {
			decorators = append(decorators, decoratorName(child, source))
		}
	}
	return decorators, stmt.ChildByFieldName("definition")
}

// decoratorName renders a decorator without the "@" and without call
// arguments: "@app.route('/x')" becomes "app.route".
func decoratorName(node *sitter.Node, source []byte) string {
	expr := node.NamedChild(0)
	if expr == nil {
		return strings.TrimPrefix(nodeText(node, source), "@")
	}
	if expr.Kind() == "call" {
		if fn := expr.ChildByFieldName("function"); fn != nil {
			return nodeText(fn, source)
		}
	}
	return nodeText(expr, source)
}

// extractClass extracts a top-level class definition, recursing one level
// into its body. Nested classes are recorded as properties by name only so
// deeply nested trees cannot blow up artifact size.
func (p *Python) extractClass(node *sitter.Node, source []byte, decorators []string) ClassEntity {
	class := ClassEntity{
		Name:       nodeText(node.ChildByFieldName("name"), source),
		LineNumber: lineOf(node),
		Bases:      []string{},
		Decorators: []string{},
		Methods:    []FunctionEntity{},
		Properties: []PropertyEntity{},
	}
	class.Decorators = append(class.Decorators, decorators...)

	if supers := node.ChildByFieldName("superclasses"); supers != nil {
		for i := 0; i < int(supers.NamedChildCount()); i++ {
			class.Bases = append(class.Bases, nodeText(supers.NamedChild(uint(i)), source))
		}
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return class
	}

	if doc, ok := firstStatementDocstring(body, source); ok {
		class.Docstring = &doc
	}

	for i := 0; i < int(body.NamedChildCount()); i++ {
		stmt := body.NamedChild(uint(i))

		var memberDecorators []string
		member := stmt
		if stmt.Kind() == "decorated_definition" {
			memberDecorators, member = p.splitDecorated(stmt, source)
			if member == nil {
				continue
			}
		}

		switch member.Kind() {
		case "function_definition":
			method := p.extractFunction(member, source, memberDecorators, true)
			class.Methods = append(class.Methods, method)
			if method.IsProperty {
				class.Properties = append(class.Properties, PropertyEntity{
					Name:       method.Name,
					Docstring:  method.Docstring,
					LineNumber: method.LineNumber,
					Type:       "property",
				})
			}
		case "class_definition":
			class.Properties = append(class.Properties, PropertyEntity{
				Name:       nodeText(member.ChildByFieldName("name"), source),
				LineNumber: lineOf(member),
				Type:       "class",
			})
		}
	}

	return class
}

// extractFunction extracts a function or method definition.
func (p *Python) extractFunction(node *sitter.Node, source []byte, decorators []string, isMethod bool) FunctionEntity {
	fn := FunctionEntity{
		Name:       nodeText(node.ChildByFieldName("name"), source),
		LineNumber: lineOf(node),
		Parameters: []Parameter{},
		Decorators: []string{},
		IsAsync:    node.Child(0) != nil && node.Child(0).Kind() == "async",
		IsMethod:   isMethod,
	}
	fn.Decorators = append(fn.Decorators, decorators...)

	for _, dec := range decorators {
		switch {
		case dec == "staticmethod":
			fn.IsStatic = true
		case dec == "classmethod":
			fn.IsClassmethod = true
		case dec == "property" || strings.HasSuffix(dec, ".property"):
			fn.IsProperty = true
		}
	}

	if params := node.ChildByFieldName("parameters"); params != nil {
		fn.Parameters = extractParameters(params, source)
	}

	if ret := node.ChildByFieldName("return_type"); ret != nil {
		text := nodeText(ret, source)
		fn.Returns = &text
	}

	if body := node.ChildByFieldName("body"); body != nil {
		if doc, ok := firstStatementDocstring(body, source); ok {
			fn.Docstring = &doc
		}
	}

	return fn
}

// extractParameters walks a parameters node collecting name, annotation and
// default in declaration order.
func extractParameters(params *sitter.Node, source []byte) []Parameter {
	out := []Parameter{}

	for i := 0; i < int(params.NamedChildCount()); i++ {
		child := params.NamedChild(uint(i))

		switch child.Kind() {
		case "identifier":
			out = append(out, Parameter{Name: nodeText(child, source)})
		case "typed_parameter":
			param := Parameter{Name: nodeText(child.NamedChild(0), source)}
			if t := child.ChildByFieldName("type"); t != nil {
				text := nodeText(t, source)
				param.Annotation = &text
			}
			out = append(out, param)
		case "default_parameter":
			param := Parameter{Name: nodeText(child.ChildByFieldName("name"), source)}
			if v := child.ChildByFieldName("value"); v != nil {
				text := nodeText(v, source)
				param.Default = &text
			}
			out = append(out, param)
		case "typed_default_parameter":
			param := Parameter{Name: nodeText(child.ChildByFieldName("name"), source)}
			if t := child.ChildByFieldName("type"); t != nil {
				text := nodeText(t, source)
				param.Annotation = &text
			}
			if v := child.ChildByFieldName("value"); v != nil {
				text := nodeText(v, source)
				param.Default = &text
			}
			out = append(out, param)
		case "list_splat_pattern", "dictionary_splat_pattern":
			// Text already carries the * / ** marker.
			out = append(out, Parameter{Name: nodeText(child, source)})
		}
	}

	return out
}

// docstringOf returns the docstring when stmt is a bare string expression.
func docstringOf(stmt *sitter.Node, source []byte) (string, bool) {
	if stmt.Kind() != "expression_statement" || stmt.NamedChildCount() != 1 {
		return "", false
	}
	raw, ok := stringLiteralText(stmt.NamedChild(0), source)
	if !ok {
		return "", false
	}
	return cleanDocstring(raw), true
}

// firstStatementDocstring returns the docstring of a block, taken from its
// first statement when that statement is a bare string literal. Leading
// comment nodes are not statements and are skipped.
func firstStatementDocstring(body *sitter.Node, source []byte) (string, bool) {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		stmt := body.NamedChild(uint(i))
		if stmt.Kind() == "comment" {
			continue
		}
		return docstringOf(stmt, source)
	}
	return "", false
}
