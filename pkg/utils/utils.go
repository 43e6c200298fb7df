package utils

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func DoOrDie(err error) {
	if err != nil {
		log.Fatalf("%+v", err)
	}
}

func JsonString(obj interface{}) string {
	bytes, err := json.MarshalIndent(obj, "", "  ")
	DoOrDie(errors.Wrapf(err, "unable to marshal json"))
	return string(bytes)
}

// WriteFile writes contents to filename, creating any missing parent directories
func WriteFile(filename string, contents []byte, perm os.FileMode) error {
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "unable to create directory %s", dir)
		}
	}
	return errors.Wrapf(os.WriteFile(filename, contents, perm), "unable to write file %s", filename)
}

// ReadFileBytes wraps calls to os.ReadFile, ensuring that errors are wrapped in a stack trace
func ReadFileBytes(filename string) ([]byte, error) {
	bytes, err := os.ReadFile(filename)
	return bytes, errors.Wrapf(err, "unable to read file %s", filename)
}
