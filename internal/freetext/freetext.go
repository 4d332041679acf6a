// Package freetext turns loosely typed description fields into renderable blocks.
package freetext

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind identifies the shape of a rendered Block.
type Kind int

const (
	None Kind = iota
	Paragraph
	List
)

func (k Kind) String() string {
	switch k {
	case Paragraph:
		return "paragraph"
	case List:
		return "list"
	default:
		return "none"
	}
}

// Block is the normalized form of a description field.
type Block struct {
	Kind  Kind
	Text  string
	Items []string
}

// Empty reports whether the block renders nothing.
func (b Block) Empty() bool {
	switch b.Kind {
	case Paragraph:
		return b.Text == ""
	case List:
		return len(b.Items) == 0
	default:
		return true
	}
}

func (b Block) IsList() bool { return b.Kind == List }

// Value holds a field that is either absent, a single string or a list of strings.
type Value struct {
	set   bool
	list  bool
	text  string
	items []string
}

// String builds a Value from a single string.
func String(s string) Value { return Value{set: true, text: s} }

// Strings builds a Value from a list of strings.
func Strings(items ...string) Value {
	return Value{set: true, list: true, items: append([]string(nil), items...)}
}

// IsZero reports whether the field was absent.
func (v Value) IsZero() bool { return !v.set }

// UnmarshalJSON accepts a string or an array of strings. Anything else leaves
// the value absent instead of failing the whole document.
func (v *Value) UnmarshalJSON(data []byte) error {
	*v = Value{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		*v = String(s)
	case '[':
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return nil
		}
		*v = Strings(items...)
	}
	return nil
}

// MarshalJSON writes the value back in the shape it was read.
func (v Value) MarshalJSON() ([]byte, error) {
	switch {
	case !v.set:
		return []byte("null"), nil
	case v.list:
		if v.items == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.items)
	default:
		return json.Marshal(v.text)
	}
}

const strTag = "!!str"

// UnmarshalYAML mirrors UnmarshalJSON for YAML documents: only string
// scalars and sequences of string scalars are kept, so 5, true or [x, 1]
// leave the value absent.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	*v = Value{}
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() != strTag {
			return nil
		}
		*v = String(node.Value)
	case yaml.SequenceNode:
		items := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode || item.ShortTag() != strTag {
				return nil
			}
			items = append(items, item.Value)
		}
		*v = Strings(items...)
	}
	return nil
}

// Or returns v when present, otherwise fallback.
func (v Value) Or(fallback Value) Value {
	if v.set {
		return v
	}
	return fallback
}

var delimiters = regexp.MustCompile(`(?m)\r?\n|•|\s-\s|^-\s*`)

// Render normalizes v into a Block.
func Render(v Value) Block {
	if !v.set {
		return Block{Kind: None}
	}
	if v.list {
		return Block{Kind: List, Items: append([]string(nil), v.items...)}
	}
	return RenderString(v.text)
}

// RenderString splits s on newlines, bullets and hyphen separators. It only
// produces a List when at least two non-empty items remain.
func RenderString(s string) Block {
	text := strings.TrimSpace(s)
	var parts []string
	for _, part := range delimiters.Split(text, -1) {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) > 1 {
		return Block{Kind: List, Items: parts}
	}
	return Block{Kind: Paragraph, Text: text}
}
