// Package config contains the code to load the homelocator settings
package config

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/lyraproj/homelocator/api"
	"github.com/lyraproj/homelocator/locator"
	"gopkg.in/yaml.v3"
)

// FileName is the default file name for the settings file.
const FileName = `homelocator.yaml`

// Settings are the values that can be given in a settings file.
type Settings struct {
	// RelativePath is applied to the anchor directory
	RelativePath string `yaml:"relative_path,omitempty"`

	// Separators are the candidate archive content separators, tried in order
	Separators []string `yaml:"separators,omitempty"`

	// Deployment is the name of a locator.Deployment
	Deployment string `yaml:"deployment,omitempty"`

	// LogLevel is an hclog level name
	LogLevel string `yaml:"log_level,omitempty"`
}

// Load reads Settings from the file at the given path. Keys that are not known are rejected.
func Load(path string) (*Settings, error) {
	return load(path, false)
}

// LoadDefault reads Settings from the FileName in the given directory. The default settings
// are returned when no such file exists.
func LoadDefault(dir string) (*Settings, error) {
	return load(filepath.Join(dir, FileName), true)
}

func load(path string, optional bool) (*Settings, error) {
	s := &Settings{
		RelativePath: os.Getenv(`HOMELOCATOR_RELATIVE_PATH`),
		Deployment:   os.Getenv(`HOMELOCATOR_DEPLOYMENT`),
	}
	content, err := ioutil.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf(`unable to read settings: %w`, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err = dec.Decode(s); err != nil && err != io.EOF {
		return nil, fmt.Errorf(`file '%s' does not contain valid settings: %w`, path, err)
	}
	return s, nil
}

// LocatorConfig returns the locator.Config that corresponds to the receiver. The given modules
// are used as reference modules.
func (s *Settings) LocatorConfig(logger hclog.Logger, modules ...api.Module) (locator.Config, error) {
	d, err := locator.ParseDeployment(s.Deployment)
	if err != nil {
		return locator.Config{}, err
	}
	return locator.Config{
		Modules:      modules,
		RelativePath: s.RelativePath,
		Resolver:     &locator.RuntimeResolver{Deployment: d},
		Separators:   s.Separators,
		Logger:       logger,
	}, nil
}

// String returns the YAML representation of the settings
func (s *Settings) String() string {
	bs, err := yaml.Marshal(s)
	if err != nil {
		return err.Error()
	}
	return string(bs)
}
