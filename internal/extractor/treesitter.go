package extractor

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// nodeText extracts the text content of a tree-sitter node.
func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// lineOf returns the 1-based line number a node starts on.
func lineOf(node *sitter.Node) int {
	return int(node.StartPosition().Row) + 1
}

// walkTree recursively walks a tree-sitter tree and calls the visitor for
// each node. Returning false from the visitor stops descent into that node.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkTree(node.Child(uint(i)), visitor)
	}
}

// firstErrorNode finds the first ERROR or MISSING node in pre-order, or nil
// when the tree is clean.
func firstErrorNode(root *sitter.Node) *sitter.Node {
	var found *sitter.Node
	walkTree(root, func(n *sitter.Node) bool {
		if found != nil {
			return false
		}
		if n.IsError() || n.IsMissing() {
			found = n
			return false
		}
		// Only descend into subtrees that actually contain the error.
		return n.HasError()
	})
	return found
}

// stringLiteralText returns the content of a "string" node without its
// quote delimiters or prefix, or false when the node is not a plain string.
// Escape sequences are separate named nodes interleaved with the content
// and are kept as written in the source.
func stringLiteralText(node *sitter.Node, source []byte) (string, bool) {
	if node == nil || node.Kind() != "string" {
		return "", false
	}

	var sb strings.Builder
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(uint(i))
		switch child.Kind() {
		case "string_content", "escape_sequence":
			sb.WriteString(nodeText(child, source))
		}
	}
	return sb.String(), true
}

// cleanDocstring normalizes a docstring the way Python's inspect.cleandoc
// does: the first line keeps no leading whitespace, the common indentation
// of the remaining lines is removed, and surrounding blank lines go away.
func cleanDocstring(raw string) string {
	lines := strings.Split(raw, "\n")

	minIndent := -1
	for _, line := range lines[1:] {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(trimmed)
		if minIndent < 0 || indent < minIndent {
			minIndent = indent
		}
	}

	cleaned := make([]string, 0, len(lines))
	cleaned = append(cleaned, strings.TrimLeft(lines[0], " \t"))
	for _, line := range lines[1:] {
		if minIndent > 0 && len(line) >= minIndent {
			line = line[minIndent:]
		}
		cleaned = append(cleaned, strings.TrimRight(line, " \t"))
	}

	for len(cleaned) > 0 && cleaned[0] == "" {
		cleaned = cleaned[1:]
	}
	for len(cleaned) > 0 && cleaned[len(cleaned)-1] == "" {
		cleaned = cleaned[:len(cleaned)-1]
	}

	return strings.Join(cleaned, "\n")
}

// isConstantName checks if a name follows Python constant naming convention
// (ALL_CAPS).
func isConstantName(name string) bool {
	if len(name) == 0 {
		return false
	}
	hasUpper := false
	for _, ch := range name {
		if ch >= 'a' && ch <= 'z' {
			return false
		}
		if ch >= 'A' && ch <= 'Z' {
			hasUpper = true
		}
	}
	return hasUpper
}
