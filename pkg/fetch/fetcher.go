package fetch

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mattfenwick/proxysieve/pkg/metrics"
	"github.com/mattfenwick/proxysieve/pkg/utils"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	DefaultWorkers = 10
	DefaultTimeout = 30 * time.Second
)

// FetchResult is the outcome of fetching one source: either Body or Err is set.
type FetchResult struct {
	Index int
	URL   string
	Body  string
	Err   error
}

func (r *FetchResult) IsSuccess() bool {
	return r.Err == nil
}

type fetchJob struct {
	Index int
	URL   string
}

type Fetcher struct {
	Client  *resty.Client
	Workers int
	// Limiter throttles request starts across all workers; nil means unlimited.
	Limiter *rate.Limiter
	Metrics *metrics.Metrics
}

// NewFetcher builds a Fetcher.  ratePerSecond <= 0 disables throttling.
func NewFetcher(timeout time.Duration, workers int, ratePerSecond float64) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}
	var limiter *rate.Limiter
	if ratePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(ratePerSecond), 1)
	}
	return &Fetcher{
		Client:  utils.NewRestyClient(timeout),
		Workers: workers,
		Limiter: limiter,
	}
}

// FetchAll fetches every url with at most f.Workers requests in flight (at least one).  The
// returned slice is indexed by each url's position in urls, whatever order the fetches
// complete in.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) []*FetchResult {
	workers := f.Workers
	if workers < 1 {
		workers = 1
	}
	size := len(urls)
	jobsChan := make(chan *fetchJob, size)
	resultsChan := make(chan *FetchResult, size)
	for i := 0; i < workers; i++ {
		go f.worker(ctx, jobsChan, resultsChan)
	}
	for i, url := range urls {
		jobsChan <- &fetchJob{Index: i, URL: url}
	}
	close(jobsChan)

	results := make([]*FetchResult, size)
	for i := 0; i < size; i++ {
		result := <-resultsChan
		results[result.Index] = result
	}
	return results
}

// worker fetches until the jobs channel is closed.  Failures are reported as results, never
// returned or panicked, so one bad source can't affect the others.
func (f *Fetcher) worker(ctx context.Context, jobs <-chan *fetchJob, results chan<- *FetchResult) {
	for job := range jobs {
		results <- f.fetch(ctx, job)
	}
}

func (f *Fetcher) fetch(ctx context.Context, job *fetchJob) *FetchResult {
	result := &FetchResult{Index: job.Index, URL: job.URL}
	log.Infof("fetching source %d: %s", job.Index, job.URL)

	body, err := f.get(ctx, job.URL)
	if err != nil {
		log.Warnf("unable to fetch source %d (%s): %v", job.Index, job.URL, err)
		result.Err = &SourceError{Kind: SourceUnavailable, Index: job.Index, URL: job.URL, Err: err}
		f.Metrics.RecordFetch("unavailable")
		return result
	}

	log.Infof("fetched source %d (%s): %d bytes", job.Index, job.URL, len(body))
	result.Body = body
	f.Metrics.RecordFetch("success")
	return result
}

func (f *Fetcher) get(ctx context.Context, url string) (body string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panic while fetching %s: %v", url, r)
		}
	}()
	if err := ctx.Err(); err != nil {
		return "", errors.Wrapf(err, "not fetching %s", url)
	}
	if f.Limiter != nil {
		if err := f.Limiter.Wait(ctx); err != nil {
			return "", errors.Wrapf(err, "rate limiter wait for %s", url)
		}
	}
	return utils.IssueGet(ctx, f.Client, url)
}
