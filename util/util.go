// Package util reads and writes the files around a portal run: its yaml config and its log.
package util

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// OpenLog appends to the log at path.
// The terminal belongs to the UI, so a log that cannot be opened is discarded after one warning.
func OpenLog(path string, mode os.FileMode) (file io.Writer) {

	var err error
	file, err = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %s\n", err.Error())
		file = io.Discard
	}

	return
}

// CloseLog closes a log from OpenLog, doing nothing for the discard fallback.
func CloseLog(file io.Writer) {

	closer, ok := file.(io.Closer)
	if ok {
		closer.Close()
	}
}

// LoadConfig decodes the portal config at path into cfg.
// Keys cfg does not declare are an error, catching misspelt settings.
// An empty file leaves cfg as is.
func LoadConfig(cfg any, path string) (err error) {

	data, err := os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read config %s", path)
		return
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err = dec.Decode(cfg)
	if errors.Is(err, io.EOF) {
		return nil
	}
	err = errors.Wrapf(err, "bad config in %s", path)
	return
}

// SampleConfig seeds path with the sample config, keeping any config already there.
func SampleConfig(data []byte, path string, mode os.FileMode) (err error) {

	_, err = os.Stat(path)
	if err == nil {
		return
	}

	err = os.WriteFile(path, data, mode)
	err = errors.Wrapf(err, "failed to write sample config %s", path)
	return
}
