package nodes

import (
	"fmt"
	"math"
	"net"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultType = "tcp"
	DefaultName = "Unnamed"

	keyName   = "name"
	keyType   = "type"
	keyServer = "server"
	keyPort   = "port"
	keyMerge  = "<<"

	nullTag = "!!null"
)

// Field is one key of a node record with its undecoded value.
type Field struct {
	Key   string
	Value *yaml.Node
}

// ProxyNode is one proxy configuration entry.  The few fields needed for probing are
// decoded into typed fields; the record itself is kept as the parsed mapping, scalar text
// and tags included, and written back out from that.
type ProxyNode struct {
	Name   string
	Type   string
	Server string
	// Port is 0 when the record has no port, or one that isn't an integer in 1-65535.
	Port int

	fields *yaml.Node
}

// NewProxyNode builds a node from a mapping node.  The node is copied: aliases are
// expanded and source positions dropped, so the record stands alone outside its document.
func NewProxyNode(mapping *yaml.Node) *ProxyNode {
	node := &ProxyNode{
		Name:   DefaultName,
		Type:   DefaultType,
		fields: detach(mapping),
	}
	lookup := func(key string) string {
		value, ok := findKey(node.fields, key)
		if !ok {
			return ""
		}
		return scalarString(value)
	}
	if s := lookup(keyName); s != "" {
		node.Name = s
	}
	if s := lookup(keyType); s != "" {
		node.Type = s
	}
	node.Server = strings.TrimSpace(lookup(keyServer))
	node.Port = parsePort(lookup(keyPort))
	return node
}

// ParseProxyNode decodes a single mapping document into a node.
func ParseProxyNode(doc []byte) (*ProxyNode, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(doc, &root); err != nil {
		return nil, errors.Wrapf(err, "unable to unmarshal yaml")
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return nil, errors.Errorf("proxy node must be a mapping")
	}
	return NewProxyNode(root.Content[0]), nil
}

// Fields returns the complete record, in document order.
func (n *ProxyNode) Fields() *yaml.Node {
	return n.fields
}

// Extra returns the pass-through attributes: every field other than name, type, server and port.
func (n *ProxyNode) Extra() []Field {
	var extra []Field
	if n.fields == nil {
		return extra
	}
	for i := 0; i+1 < len(n.fields.Content); i += 2 {
		key := n.fields.Content[i].Value
		switch key {
		case keyName, keyType, keyServer, keyPort:
			continue
		}
		extra = append(extra, Field{Key: key, Value: n.fields.Content[i+1]})
	}
	return extra
}

// Get returns the source text of a scalar field.
func (n *ProxyNode) Get(key string) (string, bool) {
	value, ok := findKey(n.fields, key)
	if !ok || value.Kind != yaml.ScalarNode {
		return "", false
	}
	return value.Value, true
}

// HasEndpoint reports whether the node names a server and a valid port, i.e. whether it can be probed at all.
func (n *ProxyNode) HasEndpoint() bool {
	return n.Server != "" && n.Port > 0
}

func (n *ProxyNode) Address() string {
	return net.JoinHostPort(n.Server, strconv.Itoa(n.Port))
}

func (n *ProxyNode) String() string {
	return fmt.Sprintf("%s (%s) %s", n.Name, n.Type, n.Address())
}

func (n *ProxyNode) MarshalYAML() (interface{}, error) {
	return n.Fields(), nil
}

func (n *ProxyNode) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.AliasNode && value.Alias != nil {
		value = value.Alias
	}
	if value.Kind != yaml.MappingNode {
		return errors.Errorf("line %d: proxy node must be a mapping, found %s", value.Line, value.ShortTag())
	}
	*n = *NewProxyNode(value)
	return nil
}

// findKey looks key up in a mapping, falling back to merged ("<<") mappings.
func findKey(mapping *yaml.Node, key string) (*yaml.Node, bool) {
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return nil, false
	}
	var merges []*yaml.Node
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		k, v := mapping.Content[i], mapping.Content[i+1]
		if k.Value == key {
			return v, true
		}
		if k.Value == keyMerge {
			merges = append(merges, v)
		}
	}
	for _, merge := range merges {
		candidates := []*yaml.Node{merge}
		if merge.Kind == yaml.SequenceNode {
			candidates = merge.Content
		}
		for _, candidate := range candidates {
			if v, ok := findKey(candidate, key); ok {
				return v, true
			}
		}
	}
	return nil, false
}

func detach(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		return detach(n.Alias)
	}
	c := *n
	c.Line, c.Column = 0, 0
	c.Anchor = ""
	if n.Content != nil {
		c.Content = make([]*yaml.Node, len(n.Content))
		for i, child := range n.Content {
			c.Content[i] = detach(child)
		}
	}
	return &c
}

func scalarString(value *yaml.Node) string {
	if value.Kind != yaml.ScalarNode || value.ShortTag() == nullTag {
		return ""
	}
	return value.Value
}

func parsePort(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	port, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(text, 64)
		if ferr != nil || f != math.Trunc(f) || f < 1 || f > math.MaxUint16 {
			return 0
		}
		port = int64(f)
	}
	if port < 1 || port > math.MaxUint16 {
		return 0
	}
	return int(port)
}
