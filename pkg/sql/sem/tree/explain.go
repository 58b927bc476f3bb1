// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// ExplainKind classifies the nodes of an Explainer.
type ExplainKind string

// The node kinds.
const (
	KindLiteral        ExplainKind = "LITERAL"
	KindField          ExplainKind = "FIELD"
	KindParameter      ExplainKind = "PARAMETER"
	KindFunction       ExplainKind = "FUNCTION"
	KindBinaryOperator ExplainKind = "BINARY_OPERATOR"
)

// ExplainContext controls what an Explainer includes.
type ExplainContext struct {
	// Verbose adds the evaluation properties of every node.
	Verbose bool
}

// Attr is a named attribute of an Explainer node.
type Attr struct {
	Key   string
	Value string
}

// Explainer is the structured description of an expression tree.
type Explainer struct {
	Kind     ExplainKind
	Name     string
	Attrs    []Attr
	Children []Explainer
}

func newExplainer(ctx ExplainContext, kind ExplainKind, name string, e Expression) Explainer {
	ex := Explainer{Kind: kind, Name: name}
	ex.Attrs = append(ex.Attrs, Attr{Key: "type", Value: e.ValueType().String()})
	if ctx.Verbose {
		ex.Attrs = append(ex.Attrs,
			Attr{Key: "constant", Value: strconv.FormatBool(e.IsConstant())},
			Attr{Key: "needs_row", Value: strconv.FormatBool(e.NeedsRow())},
			Attr{Key: "needs_bindings", Value: strconv.FormatBool(e.NeedsBindings())},
			Attr{Key: "null_contaminating", Value: strconv.FormatBool(e.NullIsContaminating())},
		)
	}
	return ex
}

// Attr returns the value of the attribute with the given key.
func (e Explainer) Attr(key string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// String renders the tree with one node per line, children indented.
func (e Explainer) String() string {
	var b strings.Builder
	e.format(&b, 0)
	return b.String()
}

func (e Explainer) format(b *strings.Builder, depth int) {
	fmt.Fprintf(b, "%s%s %s", strings.Repeat("  ", depth), e.Kind, e.Name)
	if len(e.Attrs) > 0 {
		b.WriteString(" [")
		for i, a := range e.Attrs {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(b, "%s=%s", a.Key, a.Value)
		}
		b.WriteByte(']')
	}
	b.WriteByte('\n')
	for _, c := range e.Children {
		c.format(b, depth+1)
	}
}

func scalarNode(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

// MarshalYAML implements yaml.Marshaler. Attributes keep their order.
func (e Explainer) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	n.Content = append(n.Content,
		scalarNode("kind"), scalarNode(string(e.Kind)),
		scalarNode("name"), scalarNode(e.Name))
	if len(e.Attrs) > 0 {
		attrs := &yaml.Node{Kind: yaml.MappingNode}
		for _, a := range e.Attrs {
			attrs.Content = append(attrs.Content, scalarNode(a.Key), scalarNode(a.Value))
		}
		n.Content = append(n.Content, scalarNode("attrs"), attrs)
	}
	if len(e.Children) > 0 {
		children := &yaml.Node{Kind: yaml.SequenceNode}
		for _, c := range e.Children {
			cn, err := c.MarshalYAML()
			if err != nil {
				return nil, err
			}
			children.Content = append(children.Content, cn.(*yaml.Node))
		}
		n.Content = append(n.Content, scalarNode("children"), children)
	}
	return n, nil
}

// YAML renders the tree as a YAML document.
func (e Explainer) YAML() (string, error) {
	out, err := yaml.Marshal(e)
	if err != nil {
		return "", errors.Wrap(err, "rendering explain output")
	}
	return string(out), nil
}
