package fetch

import (
	"github.com/mattfenwick/proxysieve/pkg/nodes"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const proxiesKey = "proxies"

// Extract decodes body as a configuration document and returns the nodes under its
// top-level "proxies" key, in document order.  A body that doesn't decode, or has no
// usable proxies list, is a DecodeFailure attributed to the source at index.
func Extract(body string, index int) ([]*nodes.ProxyNode, error) {
	decodeFailure := func(err error) error {
		return &SourceError{Kind: DecodeFailure, Index: index, Err: err}
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(body), &doc); err != nil {
		return nil, decodeFailure(errors.Wrapf(err, "unable to unmarshal yaml"))
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, decodeFailure(errors.Errorf("empty document"))
	}
	root := resolveAlias(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, decodeFailure(errors.Errorf("document is %s, not a mapping", root.ShortTag()))
	}

	var value *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == proxiesKey {
			value = resolveAlias(root.Content[i+1])
			break
		}
	}
	if value == nil {
		return nil, decodeFailure(errors.Errorf("no %s key found", proxiesKey))
	}
	if value.Kind != yaml.SequenceNode {
		return nil, decodeFailure(errors.Errorf("%s is %s, not a list", proxiesKey, value.ShortTag()))
	}
	if len(value.Content) == 0 {
		return nil, decodeFailure(errors.Errorf("%s list is empty", proxiesKey))
	}

	var proxies []*nodes.ProxyNode
	for i, entry := range value.Content {
		entry = resolveAlias(entry)
		if entry.Kind != yaml.MappingNode {
			log.Warnf("source %d: skipping %s entry %d (line %d) of type %s", index, proxiesKey, i, entry.Line, entry.ShortTag())
			continue
		}
		proxies = append(proxies, nodes.NewProxyNode(entry))
	}
	log.Debugf("source %d: extracted %d of %d %s entries", index, len(proxies), len(value.Content), proxiesKey)
	return proxies, nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}
