package extractor

import (
	"encoding/json"
	"fmt"
)

// Module is the structural documentation extracted from one source file.
// Field order matches the artifact schema; artifacts are diffed in version
// control, so the order must not change between releases.
type Module struct {
	Path            string           `json:"path"`
	ModuleDocstring *string          `json:"module_docstring"`
	Imports         []ImportEntity   `json:"imports"`
	Classes         []ClassEntity    `json:"classes"`
	Functions       []FunctionEntity `json:"functions"`
	Constants       []ConstantEntity `json:"constants"`
	Error           *ExtractError    `json:"error,omitempty"`
}

// MarshalJSON ensures a failed Module serializes to only path and error.
// A partial class/function listing next to an error would imply structural
// completeness the parser cannot vouch for.
func (m *Module) MarshalJSON() ([]byte, error) {
	if m.Error != nil {
		return json.Marshal(struct {
			Path  string        `json:"path"`
			Error *ExtractError `json:"error"`
		}{m.Path, m.Error})
	}
	type plain Module
	return json.Marshal((*plain)(m))
}

// ImportEntity describes one imported name. Plain imports carry module and
// alias; from-imports additionally carry the imported name.
type ImportEntity struct {
	Type   string  `json:"type"` // "import" or "from_import"
	Module string  `json:"module"`
	Name   *string `json:"name,omitempty"`
	Alias  *string `json:"alias"`
}

// ClassEntity describes a top-level class definition.
type ClassEntity struct {
	Name       string           `json:"name"`
	Docstring  *string          `json:"docstring"`
	LineNumber int              `json:"line_number"`
	Bases      []string         `json:"bases"`
	Decorators []string         `json:"decorators"`
	Methods    []FunctionEntity `json:"methods"`
	Properties []PropertyEntity `json:"properties"`
}

// PropertyEntity is an attribute descriptor inside a class body: either a
// @property method or a nested class recorded by name only.
type PropertyEntity struct {
	Name       string  `json:"name"`
	Docstring  *string `json:"docstring"`
	LineNumber int     `json:"line_number"`
	Type       string  `json:"type"` // "property" or "class"
}

// FunctionEntity describes a function or method definition.
type FunctionEntity struct {
	Name          string      `json:"name"`
	Docstring     *string     `json:"docstring"`
	LineNumber    int         `json:"line_number"`
	Parameters    []Parameter `json:"parameters"`
	Decorators    []string    `json:"decorators"`
	Returns       *string     `json:"returns"`
	IsAsync       bool        `json:"is_async"`
	IsMethod      bool        `json:"is_method"`
	IsStatic      bool        `json:"is_static"`
	IsClassmethod bool        `json:"is_classmethod"`
	IsProperty    bool        `json:"is_property"`
}

// Parameter describes one function parameter.
type Parameter struct {
	Name       string  `json:"name"`
	Annotation *string `json:"annotation"`
	Default    *string `json:"default"`
}

// ConstantEntity describes a top-level ALL_CAPS assignment.
type ConstantEntity struct {
	Name       string `json:"name"`
	Value      string `json:"value"`
	LineNumber int    `json:"line_number"`
}

// Error kinds recorded in a failed Module.
const (
	KindParseError = "ParseError"
	KindIOError    = "IOError"
)

// ExtractError is a recoverable per-file failure recorded in the Module
// artifact instead of aborting the run.
type ExtractError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

func (e *ExtractError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at %d:%d: %s", e.Kind, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}
