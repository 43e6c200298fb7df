package nodes

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const sampleDoc = `proxies:
- name: "香港 01"
  type: vmess
  server: hk.example.com
  port: 443
  uuid: 7c3b0d1e-0000-4000-8000-000000000000
  alterId: 0
  ws-opts:
    path: /ray
    headers:
      Host: cdn.example.com
- type: ss
  server: 10.0.0.2
  port: "8388"
  cipher: aes-256-gcm
  password: secret
- name: no-port
  server: 10.0.0.3
`

func RunCollectionTests() {
	Describe("Collection", func() {
		It("should round trip through a file", func() {
			original, err := Decode([]byte(sampleDoc))
			Expect(err).To(Succeed())
			Expect(original.Len()).To(Equal(3))

			path := filepath.Join(GinkgoT().TempDir(), "sub", "merged.yaml")
			Expect(WriteFile(path, original)).To(Succeed())

			reread, err := ReadFile(path)
			Expect(err).To(Succeed())
			Expect(reread).To(Equal(original))
		})

		It("should write fields in insertion order, not alphabetically", func() {
			original, err := Decode([]byte(sampleDoc))
			Expect(err).To(Succeed())
			bytes, err := Encode(original)
			Expect(err).To(Succeed())
			out := string(bytes)
			Expect(strings.Index(out, "  type: vmess")).To(BeNumerically("<", strings.Index(out, "  server: hk.example.com")))
			Expect(strings.Index(out, "  server: hk.example.com")).To(BeNumerically("<", strings.Index(out, "  port: 443")))
			Expect(strings.Index(out, "  port: 443")).To(BeNumerically("<", strings.Index(out, "  uuid:")))
			Expect(out).To(ContainSubstring("  - type: ss\n    server: 10.0.0.2\n    port: \"8388\"\n"))
		})

		It("should write scalars exactly as they were read", func() {
			source := `proxies:
  - name: reality
    type: vless
    server: r.example.com
    port: 443
    password: 08
    short-id: 0800
    alterId: 0123
    tls: yes
    sni: 1_000
    uuid: "0800"
    note: 'single'
    ws-opts: {path: /ray, max-early-data: 02048}
`
			c, err := Decode([]byte(source))
			Expect(err).To(Succeed())
			bytes, err := Encode(c)
			Expect(err).To(Succeed())
			Expect(string(bytes)).To(Equal(source))
		})

		It("should not inject defaults into the written record", func() {
			original, err := Decode([]byte(sampleDoc))
			Expect(err).To(Succeed())
			Expect(original.Proxies[1].Name).To(Equal(DefaultName))
			bytes, err := Encode(NewCollection(original.Proxies[1]))
			Expect(err).To(Succeed())
			Expect(string(bytes)).ToNot(ContainSubstring(DefaultName))
		})

		It("should write an empty list", func() {
			bytes, err := Encode(NewCollection())
			Expect(err).To(Succeed())
			Expect(string(bytes)).To(Equal("proxies: []\n"))

			bytes, err = Encode(nil)
			Expect(err).To(Succeed())
			Expect(string(bytes)).To(Equal("proxies: []\n"))
		})

		It("should read an empty document as an empty collection", func() {
			c, err := Decode([]byte(""))
			Expect(err).To(Succeed())
			Expect(c.Proxies).ToNot(BeNil())
			Expect(c.Len()).To(Equal(0))
		})

		It("should fail to read a missing file", func() {
			_, err := ReadFile(filepath.Join(GinkgoT().TempDir(), "missing.yaml"))
			Expect(err).To(HaveOccurred())
		})

		It("should fail to write into a path that is a file", func() {
			dir := GinkgoT().TempDir()
			blocker := filepath.Join(dir, "blocker")
			Expect(os.WriteFile(blocker, []byte("x"), 0644)).To(Succeed())
			Expect(WriteFile(filepath.Join(blocker, "out.yaml"), NewCollection())).ToNot(Succeed())
		})
	})
}
