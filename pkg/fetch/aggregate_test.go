package fetch

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func RunAggregateTests() {
	Describe("Aggregate", func() {
		doc := func(names ...string) string {
			body := "proxies:\n"
			for _, name := range names {
				body += "- {name: " + name + ", server: 10.0.0.1, port: 443}\n"
			}
			return body
		}
		names := func(results []*FetchResult) []string {
			collection, _ := Aggregate(results)
			var out []string
			for _, p := range collection.Proxies {
				out = append(out, p.Name)
			}
			return out
		}

		It("should merge by source index then document order, skipping failures", func() {
			unavailable := &SourceError{Kind: SourceUnavailable, Index: 1, URL: "u1", Err: errors.New("connection refused")}
			results := []*FetchResult{
				{Index: 0, URL: "u0", Body: doc("a1", "a2")},
				{Index: 1, URL: "u1", Err: unavailable},
				{Index: 2, URL: "u2", Body: "not: [valid"},
				{Index: 3, URL: "u3", Body: doc("d1")},
				{Index: 4, URL: "u4", Body: doc("a1")},
			}
			collection, failures := Aggregate(results)
			Expect(collection.Len()).To(Equal(4))
			Expect(names(results)).To(Equal([]string{"a1", "a2", "d1", "a1"}))

			Expect(failures).To(HaveLen(2))
			Expect(failures[0]).To(Equal(unavailable))
			decodeErr, ok := failures[1].(*SourceError)
			Expect(ok).To(BeTrue())
			Expect(decodeErr.Kind).To(Equal(DecodeFailure))
			Expect(decodeErr.URL).To(Equal("u2"))
		})

		It("should produce the same order however completion was interleaved", func() {
			results := []*FetchResult{
				{Index: 0, URL: "u0", Body: doc("x")},
				{Index: 1, URL: "u1", Body: doc("y", "z")},
			}
			Expect(names(results)).To(Equal([]string{"x", "y", "z"}))
			Expect(names(results)).To(Equal(names(results)))
		})

		It("should return an empty collection when nothing succeeds", func() {
			collection, failures := Aggregate([]*FetchResult{{Index: 0, Body: ""}})
			Expect(collection.Len()).To(Equal(0))
			Expect(collection.Proxies).ToNot(BeNil())
			Expect(failures).To(HaveLen(1))
		})
	})
}
