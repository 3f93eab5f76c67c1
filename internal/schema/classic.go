package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ClassicType tags a legacy button-tree node.
type ClassicType string

const (
	ClassicButtonType ClassicType = "button"
	ClassicTextType   ClassicType = "text"
	ClassicListType   ClassicType = "list"
)

// ClassicButton links to a redirect target, or is inert without one.
type ClassicButton struct {
	Target string `yaml:"target"`
	Text   string `yaml:"text"`
}

// ClassicText is a caption, optionally styled as a footer.
type ClassicText struct {
	Footer bool   `yaml:"footer"`
	Text   string `yaml:"text"`
}

// ClassicList is an expandable button with nested buttons and texts.
type ClassicList struct {
	ID      string        `yaml:"id"`
	Text    string        `yaml:"text"`
	Content []ClassicNode `yaml:"content"`
}

// ClassicNode is one node of the legacy tree. Exactly one of Button, Text or
// List is set, matching Type.
type ClassicNode struct {
	Type   ClassicType
	Button *ClassicButton
	Text   *ClassicText
	List   *ClassicList
}

// UnmarshalYAML dispatches on the "type" key. Lists cannot nest.
func (n *ClassicNode) UnmarshalYAML(value *yaml.Node) error {
	var head struct {
		Type ClassicType `yaml:"type"`
	}
	if err := value.Decode(&head); err != nil {
		return err
	}
	switch head.Type {
	case ClassicButtonType:
		var b ClassicButton
		if err := value.Decode(&b); err != nil {
			return err
		}
		*n = ClassicNode{Type: head.Type, Button: &b}
	case ClassicTextType:
		var t ClassicText
		if err := value.Decode(&t); err != nil {
			return err
		}
		*n = ClassicNode{Type: head.Type, Text: &t}
	case ClassicListType:
		var l ClassicList
		if err := value.Decode(&l); err != nil {
			return err
		}
		for _, sub := range l.Content {
			if sub.Type == ClassicListType {
				return fmt.Errorf("line %d: list %q cannot contain another list", value.Line, l.ID)
			}
		}
		*n = ClassicNode{Type: head.Type, List: &l}
	default:
		return fmt.Errorf("line %d: unknown legacy node type %q", value.Line, head.Type)
	}
	return nil
}
