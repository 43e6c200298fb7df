package fetch

import (
	"github.com/mattfenwick/proxysieve/pkg/nodes"
	log "github.com/sirupsen/logrus"
)

// Aggregate merges the nodes of every successful fetch into one collection, ordered by
// source index and then by position within each document.  It runs after all fetches
// have finished, so it is the only writer of the collection.  The returned errors are the
// per-source failures, in source order.
func Aggregate(results []*FetchResult) (*nodes.Collection, []error) {
	collection := nodes.NewCollection()
	var failures []error
	for _, result := range results {
		if result == nil {
			continue
		}
		if !result.IsSuccess() {
			failures = append(failures, result.Err)
			continue
		}
		proxies, err := Extract(result.Body, result.Index)
		if err != nil {
			if sourceErr, ok := err.(*SourceError); ok {
				sourceErr.URL = result.URL
			}
			log.Warnf("no proxies taken from source: %v", err)
			failures = append(failures, err)
			continue
		}
		log.Infof("source %d (%s): %d proxies", result.Index, result.URL, len(proxies))
		collection.Append(proxies...)
	}
	log.Infof("aggregated %d proxies from %d sources (%d failed)", collection.Len(), len(results), len(failures))
	return collection, failures
}
