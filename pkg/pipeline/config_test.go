package pipeline

import (
	ginkgo "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func RunConfigTests() {
	ginkgo.Describe("Config", func() {
		ginkgo.It("should have valid defaults", func() {
			config := DefaultConfig()
			Expect(config.Validate()).To(Succeed())
			Expect(config.FetchWorkers).To(Equal(10))
			Expect(config.ProbeWorkers).To(Equal(10))
			Expect(config.ProbeAttempts).To(Equal(3))
			Expect(config.MinLatencyMs).To(Equal(1.0))
			Expect(config.MaxLatencyMs).To(Equal(30.0))
		})

		ginkgo.It("should reject bad values", func() {
			for _, mutate := range []func(*Config){
				func(c *Config) { c.OutputPath = "" },
				func(c *Config) { c.FetchWorkers = 0 },
				func(c *Config) { c.ProbeWorkers = -1 },
				func(c *Config) { c.ProbeAttempts = 0 },
				func(c *Config) { c.ProbeTimeout = 0 },
				func(c *Config) { c.FetchRate = -2 },
				func(c *Config) { c.MinLatencyMs, c.MaxLatencyMs = 50, 10 },
			} {
				config := DefaultConfig()
				mutate(config)
				Expect(config.Validate()).ToNot(Succeed())
				_, err := NewPipeline(config)
				Expect(err).To(HaveOccurred())
			}
		})
	})
}
