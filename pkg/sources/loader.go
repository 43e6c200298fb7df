package sources

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// LoadURLs reads every list file in order and returns the source URLs they contain.
// A file that can't be opened is logged and skipped; the combined error for all skipped
// files is returned alongside the URLs that were read, and is never fatal.
func LoadURLs(paths []string) ([]string, error) {
	var urls []string
	var errs error
	for _, path := range paths {
		fileURLs, err := loadFile(path)
		if err != nil {
			log.Warnf("skipping source list: %v", err)
			errs = multierr.Append(errs, err)
			continue
		}
		log.Debugf("read %d source urls from %s", len(fileURLs), path)
		urls = append(urls, fileURLs...)
	}
	log.Infof("loaded %d source urls from %d list files", len(urls), len(paths))
	return urls, errs
}

func loadFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open source list %s", path)
	}
	defer file.Close()
	urls, err := ParseURLs(file)
	return urls, errors.WithMessagef(err, "unable to read source list %s", path)
}

// ParseURLs returns one url per line, ignoring blank lines and lines starting with '#'.
func ParseURLs(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, errors.Wrapf(scanner.Err(), "unable to scan lines")
}
