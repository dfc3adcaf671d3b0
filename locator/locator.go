// Package locator finds the directory that an application has been installed in by looking at
// where its own code was loaded from.
//
// Basic usage:
//
//	l, err := locator.New(locator.Config{RelativePath: `..`})
//	if err == nil {
//		home, err = l.Location()
//	}
//
// The location is the parent directory of the binary that the code has been linked into or,
// when running from a source tree, the root of that tree. The relative path, if given, is
// applied to that directory.
package locator

import (
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/lyraproj/homelocator/api"
	"github.com/lyraproj/issue/issue"
)

// Self is the module of this package. It is used as the reference module when no other module
// is given.
var Self = api.NewModule(`locator/locator`)

// Config contains everything needed to create a Locator. All fields are optional.
type Config struct {
	// Modules are the reference modules. Only the first one is used. Defaults to Self.
	Modules []api.Module

	// RelativePath is applied to the anchor directory. An empty string means no relative path.
	RelativePath string

	// Resolver finds the URI of the reference module. Defaults to a RuntimeResolver.
	Resolver api.ResourceResolver

	// Separators are the candidate archive content separators. Defaults to api.DefaultSeparators.
	Separators []string

	// Logger receives trace output of successful resolution steps.
	Logger hclog.Logger
}

// Locator computes the location of the directory where its reference module has been
// installed. A Locator is not safe for concurrent use when its relative path is changed.
type Locator struct {
	modules      []api.Module
	relativePath *string
	resolver     api.ResourceResolver
	separators   []string
	logger       hclog.Logger
}

// New creates a Locator from the given Config. An error is returned if the relative path of
// the Config is absolute.
func New(cfg Config) (*Locator, error) {
	l := &Locator{
		modules:    cfg.Modules,
		resolver:   cfg.Resolver,
		separators: cfg.Separators,
		logger:     cfg.Logger,
	}
	if l.resolver == nil {
		l.resolver = &RuntimeResolver{}
	}
	if len(l.separators) == 0 {
		l.separators = api.DefaultSeparators
	}
	if l.logger == nil {
		l.logger = hclog.Default().Named(`homelocator`)
	}
	if cfg.RelativePath != `` {
		if err := l.SetRelativePath(cfg.RelativePath); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// HomeLocation returns the location of the first given module, or Self when no module is
// given, with the relative path applied. An empty relative path means that the anchor
// directory itself is returned.
func HomeLocation(relativePath string, modules ...api.Module) (string, error) {
	l, err := New(Config{Modules: modules, RelativePath: relativePath})
	if err != nil {
		return ``, err
	}
	return l.Location()
}

// RelativePath returns the relative path exactly as it was set
func (l *Locator) RelativePath() (string, error) {
	if l.relativePath == nil {
		return ``, api.Error(api.RelativePathNotSet, nil)
	}
	return *l.relativePath, nil
}

// SetRelativePath sets the path that is applied to the anchor directory. The path must be
// relative.
func (l *Locator) SetRelativePath(relativePath string) error {
	if relativePath == `` {
		return api.Error(api.MissingArgument, issue.H{`name`: `relativePath`})
	}
	if filepath.IsAbs(relativePath) {
		return api.Error(api.AbsoluteRelativePath, issue.H{`name`: `relativePath`, `path`: relativePath})
	}
	l.relativePath = &relativePath
	return nil
}

// UnsetRelativePath removes the relative path so that Location returns the anchor directory
func (l *Locator) UnsetRelativePath() {
	l.relativePath = nil
}

// Module returns the reference module
func (l *Locator) Module() api.Module {
	if len(l.modules) > 0 {
		return l.modules[0]
	}
	return Self
}

// Location returns the absolute and canonical path of the directory that the reference module
// was installed in with the relative path, if any, applied. The location is computed anew on
// each call.
func (l *Locator) Location() (string, error) {
	m := l.Module()
	if m.Name == `` {
		return ``, api.Error(api.MissingArgument, issue.H{`name`: `module`})
	}
	anchor, err := l.anchor(m)
	if err != nil {
		return ``, err
	}
	location, err := applyRelativePath(anchor, l.relativePath)
	if err != nil {
		return ``, err
	}
	if location, err = canonicalDirectory(location); err != nil {
		return ``, err
	}
	l.logger.Debug(`location resolved`, `module`, m.Name, `location`, location)
	return location, nil
}

func (l *Locator) anchor(m api.Module) (string, error) {
	resource := m.ResourcePath()
	u, err := l.resolver.ResolveModule(m)
	if err != nil {
		if api.KindOf(err) != api.KindUnknown {
			return ``, err
		}
		return ``, api.Error(api.FilesystemFailure, issue.H{`path`: resource, `detail`: err.Error()})
	}
	if u == nil {
		// Only possible when the resolver doesn't know about the module
		return ``, api.Error(api.ModuleNotFound, issue.H{`resource`: resource})
	}

	var anchor string
	switch u.Scheme {
	case api.SchemeArchive:
		anchor, err = archiveAnchor(u, l.separators)
	case api.SchemeLoose:
		anchor, err = directoryAnchor(u, resource)
	default:
		err = api.Error(api.MalformedURI, issue.H{`uri`: u.String(), `detail`: `unsupported scheme '` + u.Scheme + `'`})
	}
	if err == nil {
		l.logger.Trace(`anchor located`, `module`, m.Name, `uri`, u.String(), `anchor`, anchor)
	}
	return anchor, err
}
