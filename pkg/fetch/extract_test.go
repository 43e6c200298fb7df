package fetch

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func expectDecodeFailure(err error, index int) {
	Expect(err).To(HaveOccurred())
	sourceErr, ok := err.(*SourceError)
	Expect(ok).To(BeTrue())
	Expect(sourceErr.Kind).To(Equal(DecodeFailure))
	Expect(sourceErr.Index).To(Equal(index))
}

func RunExtractTests() {
	Describe("Extract", func() {
		It("should extract proxies in document order", func() {
			proxies, err := Extract(`
port: 7890
mode: rule
proxies:
  - {name: b, type: trojan, server: b.example.com, port: 443, password: x, sni: b.example.com}
  - {name: a, type: ss, server: a.example.com, port: 8388, cipher: aes-128-gcm, password: y}
proxy-groups: []
`, 3)
			Expect(err).To(Succeed())
			Expect(proxies).To(HaveLen(2))
			Expect(proxies[0].Name).To(Equal("b"))
			Expect(proxies[1].Name).To(Equal("a"))
			sni, ok := proxies[0].Get("sni")
			Expect(ok).To(BeTrue())
			Expect(sni).To(Equal("b.example.com"))
		})

		It("should skip entries that aren't mappings", func() {
			proxies, err := Extract("proxies:\n- just a string\n- {name: ok, server: s, port: 1}\n- 42\n", 0)
			Expect(err).To(Succeed())
			Expect(proxies).To(HaveLen(1))
			Expect(proxies[0].Name).To(Equal("ok"))
		})

		It("should expand aliased entries", func() {
			proxies, err := Extract(`
base: &base {name: shared, type: ss, server: s.example.com, port: 8388, password: 0800}
proxies:
  - *base
  - {<<: *base, name: override}
`, 0)
			Expect(err).To(Succeed())
			Expect(proxies).To(HaveLen(2))
			Expect(proxies[0].Name).To(Equal("shared"))
			Expect(proxies[0].Address()).To(Equal("s.example.com:8388"))
			Expect(proxies[1].Name).To(Equal("override"))
			Expect(proxies[1].Port).To(Equal(8388))
			password, ok := proxies[0].Get("password")
			Expect(ok).To(BeTrue())
			Expect(password).To(Equal("0800"))
		})

		It("should report malformed documents", func() {
			_, err := Extract("proxies: [unterminated", 1)
			expectDecodeFailure(err, 1)
		})

		It("should report documents that aren't mappings", func() {
			_, err := Extract("c3M6Ly9ZV1Z6TFRFeU9DMW5ZMjA2Y0dGemMzZHZjbVE9QDEuMi4zLjQ6ODM4OA==", 2)
			expectDecodeFailure(err, 2)
			_, err = Extract("- a\n- b\n", 2)
			expectDecodeFailure(err, 2)
		})

		It("should report a missing, empty or mistyped proxies key", func() {
			for _, body := range []string{"", "mode: rule\n", "proxies: []\n", "proxies:\n", "proxies: {a: b}\n"} {
				_, err := Extract(body, 4)
				expectDecodeFailure(err, 4)
			}
		})
	})
}
