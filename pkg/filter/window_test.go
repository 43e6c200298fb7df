package filter

import (
	"fmt"

	"github.com/mattfenwick/proxysieve/pkg/nodes"
	"github.com/mattfenwick/proxysieve/pkg/probe"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func reachable(latencyMs float64) *probe.Result {
	return &probe.Result{Reachable: true, LatencyMs: &latencyMs, Samples: []float64{latencyMs}, Attempts: 3}
}

func unreachable() *probe.Result {
	return &probe.Result{Attempts: 3}
}

func collectionOf(count int) *nodes.Collection {
	c := nodes.NewCollection()
	for i := 0; i < count; i++ {
		node, err := nodes.ParseProxyNode([]byte(fmt.Sprintf("{name: n%d, server: 10.0.0.%d, port: 443}", i, i)))
		Expect(err).To(Succeed())
		c.Append(node)
	}
	return c
}

func names(c *nodes.Collection) []string {
	var out []string
	for _, p := range c.Proxies {
		out = append(out, p.Name)
	}
	return out
}

func RunWindowTests() {
	Describe("Window", func() {
		window := Window{MinMs: 1, MaxMs: 30}

		It("should be inclusive at both ends", func() {
			Expect(window.Accepts(reachable(1))).To(BeTrue())
			Expect(window.Accepts(reachable(30))).To(BeTrue())
			Expect(window.Accepts(reachable(0.9))).To(BeFalse())
			Expect(window.Accepts(reachable(30.1))).To(BeFalse())
			Expect(window.Accepts(unreachable())).To(BeFalse())
			Expect(window.Accepts(&probe.Result{Skipped: probe.SkipProtocol})).To(BeFalse())
			Expect(window.Accepts(nil)).To(BeFalse())
		})

		It("should default to [1, 30]", func() {
			Expect(DefaultWindow()).To(Equal(window))
		})

		It("should validate its bounds", func() {
			Expect(window.Validate()).To(Succeed())
			Expect(Window{MinMs: 10, MaxMs: 10}.Validate()).To(Succeed())
			Expect(Window{MinMs: 31, MaxMs: 30}.Validate()).ToNot(Succeed())
			Expect(Window{MinMs: -1, MaxMs: 30}.Validate()).ToNot(Succeed())
		})

		It("should keep matching nodes in input order", func() {
			c := collectionOf(6)
			results := []*probe.Result{
				reachable(29), unreachable(), reachable(1), reachable(30.1), reachable(0.9), reachable(5),
			}
			Expect(names(window.Keep(c, results))).To(Equal([]string{"n0", "n2", "n5"}))
			Expect(c.Len()).To(Equal(6))
		})

		It("should give the same answer every time", func() {
			c := collectionOf(4)
			results := []*probe.Result{reachable(10), unreachable(), reachable(31), reachable(30)}
			first := window.Keep(c, results)
			second := window.Keep(c, results)
			Expect(second).To(Equal(first))
			Expect(names(first)).To(Equal([]string{"n0", "n3"}))
		})

		It("should drop nodes that have no result", func() {
			c := collectionOf(3)
			Expect(names(window.Keep(c, []*probe.Result{reachable(2)}))).To(Equal([]string{"n0"}))
			Expect(window.Keep(c, nil).Len()).To(Equal(0))
		})

		It("should keep nothing from a nil collection", func() {
			kept := window.Keep(nil, []*probe.Result{reachable(2)})
			Expect(kept.Len()).To(Equal(0))
			Expect(kept.Proxies).ToNot(BeNil())
		})
	})
}
