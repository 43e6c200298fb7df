package nodes

import (
	"bytes"

	"github.com/mattfenwick/proxysieve/pkg/utils"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Collection is an ordered list of nodes.  Identical nodes are not deduplicated.
type Collection struct {
	Proxies []*ProxyNode `yaml:"proxies"`
}

func NewCollection(proxies ...*ProxyNode) *Collection {
	if proxies == nil {
		proxies = []*ProxyNode{}
	}
	return &Collection{Proxies: proxies}
}

func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Proxies)
}

func (c *Collection) Append(proxies ...*ProxyNode) {
	c.Proxies = append(c.Proxies, proxies...)
}

// Encode serializes the collection as a document with a single top-level "proxies" key.
// Each node is written from its source record, so field order and scalar text are preserved.
func Encode(c *Collection) ([]byte, error) {
	doc := NewCollection()
	if c != nil {
		doc.Proxies = append(doc.Proxies, c.Proxies...)
	}
	buf := &bytes.Buffer{}
	encoder := yaml.NewEncoder(buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return nil, errors.Wrapf(err, "unable to marshal yaml")
	}
	if err := encoder.Close(); err != nil {
		return nil, errors.Wrapf(err, "unable to marshal yaml")
	}
	return buf.Bytes(), nil
}

func Decode(bs []byte) (*Collection, error) {
	var c Collection
	if err := yaml.Unmarshal(bs, &c); err != nil {
		return nil, errors.Wrapf(err, "unable to unmarshal yaml")
	}
	proxies := []*ProxyNode{}
	for _, p := range c.Proxies {
		if p != nil {
			proxies = append(proxies, p)
		}
	}
	return &Collection{Proxies: proxies}, nil
}

func WriteFile(path string, c *Collection) error {
	contents, err := Encode(c)
	if err != nil {
		return err
	}
	log.Debugf("writing %d proxies to %s", c.Len(), path)
	return utils.WriteFile(path, contents, 0644)
}

func ReadFile(path string) (*Collection, error) {
	contents, err := utils.ReadFileBytes(path)
	if err != nil {
		return nil, err
	}
	c, err := Decode(contents)
	if err != nil {
		return nil, errors.WithMessagef(err, "unable to read proxies from %s", path)
	}
	log.Debugf("read %d proxies from %s", c.Len(), path)
	return c, nil
}
