package main

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Node is a schema-less view of an element used by the decode command: any
// attributes, any children, and the element's own character data.
type Node struct {
	Name     string            `json:"name"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Text     string            `json:"text,omitempty"`
	Children []Node            `json:"children,omitempty"`
}

type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []xmlNode  `xml:",any"`
}

// UnmarshalXML decodes any element into a Node tree. Whitespace-only text is
// dropped.
func (n *Node) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var raw xmlNode
	if err := d.DecodeElement(&raw, &start); err != nil {
		return err
	}
	*n = raw.node()
	return nil
}

func (x xmlNode) node() Node {
	n := Node{Name: x.XMLName.Local, Text: strings.TrimSpace(x.Text)}
	if len(x.Attrs) > 0 {
		n.Attrs = make(map[string]string, len(x.Attrs))
		for _, a := range x.Attrs {
			n.Attrs[a.Name.Local] = a.Value
		}
	}
	for _, child := range x.Children {
		n.Children = append(n.Children, child.node())
	}
	return n
}

// requireAttr returns a check that fails for nodes without attribute name.
func requireAttr(name string) func(Node) error {
	return func(n Node) error {
		if _, ok := n.Attrs[name]; !ok {
			return fmt.Errorf("<%s> has no %q attribute", n.Name, name)
		}
		return nil
	}
}
