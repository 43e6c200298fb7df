package utils

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const userAgent = "proxysieve"

func NewRestyClient(timeout time.Duration) *resty.Client {
	return resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", userAgent)
}

// IssueGet fetches url and returns its body.  Transport errors and non-2xx responses are both errors.
func IssueGet(ctx context.Context, restyClient *resty.Client, url string) (string, error) {
	log.Debugf("issuing GET to %s", url)
	resp, err := restyClient.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", errors.Wrapf(err, "unable to issue GET to %s", url)
	}

	respBody, statusCode := resp.String(), resp.StatusCode()
	log.Debugf("response code %d from GET to %s", statusCode, url)
	log.Tracef("response body: %s", respBody)

	if !resp.IsSuccess() {
		return "", errors.Errorf("bad status code for GET to %s: %d", url, statusCode)
	}
	return respBody, nil
}
