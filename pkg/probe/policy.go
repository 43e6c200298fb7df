package probe

import "strings"

// Policy maps a protocol tag to whether a plain TCP connect says anything about the node.
// Tags are compared case-insensitively; tags missing from the table are probeable.
type Policy map[string]bool

// DefaultPolicy lists the protocols carried over UDP or QUIC, which a TCP connect can't validate.
func DefaultPolicy() Policy {
	return Policy{
		"hysteria":  false,
		"hysteria2": false,
		"hy2":       false,
		"tuic":      false,
		"wireguard": false,
		"juicity":   false,
	}
}

func (p Policy) IsProbeable(protocol string) bool {
	probeable, ok := p[strings.ToLower(strings.TrimSpace(protocol))]
	return !ok || probeable
}

// With returns a copy of the policy with protocol set.
func (p Policy) With(protocol string, probeable bool) Policy {
	out := Policy{}
	for k, v := range p {
		out[k] = v
	}
	out[strings.ToLower(protocol)] = probeable
	return out
}
