package main

import "gopkg.in/yaml.v3"

type Range struct {
	startLine int
	endLine   int
}

func (r Range) StartLine() int {
	return r.startLine
}

type Metadata struct {
	path string
	rng  Range
}

func (m Metadata) Path() string {
	return m.path
}

func (m Metadata) Range() Range {
	return m.rng
}

func RangeFromNode(node *yaml.Node) Range {
	return Range{
		startLine: node.Line,
		endLine:   calculateEndLine(node),
	}
}

func calculateEndLine(node *yaml.Node) int {
	for len(node.Content) > 0 {
		node = node.Content[len(node.Content)-1]
	}
	return node.Line
}
