package api

import (
	"fmt"
	"net/url"
	"path"
	"runtime"
	"strings"
)

// SourceSuffix is the suffix of the file that defines a Module
const SourceSuffix = `.go`

// SchemeArchive is the URI scheme used when a Module is bundled into an archive, e.g. a binary
const SchemeArchive = `archive`

// SchemeLoose is the URI scheme used when a Module is present as a loose file below a base directory
const SchemeLoose = `file`

// DefaultSeparators are the candidate markers that separate the archive file from the path of the
// resource within the archive in an archive URI. They are tried in order.
var DefaultSeparators = []string{`!`, `$`}

// Module identifies the unit of code whose deployment location anchors a search.
type Module struct {
	// Name is the canonical name of the unit relative to the root of its Go module, without
	// the source suffix, e.g. "locator/locator" for the file locator.go in package directory
	// locator.
	Name string

	// Source is the source file of the unit as recorded by the runtime when the Module was
	// created. It is empty when unknown and not absolute when the binary was built with -trimpath.
	Source string
}

// NewModule returns a Module with the given canonical name whose Source is the file of the
// caller.
func NewModule(name string) Module {
	_, file, _, _ := runtime.Caller(1)
	return Module{Name: name, Source: file}
}

// ResourcePath returns the slash separated path of the file that defines the module, relative
// to the base directory or archive root that it was loaded from.
func (m Module) ResourcePath() string {
	n := strings.Replace(m.Name, `\`, `/`, -1)
	n = strings.TrimPrefix(path.Clean(`/`+n), `/`)
	return n + SourceSuffix
}

func (m Module) String() string {
	return fmt.Sprintf("module{name:%s, source:%s}", m.Name, m.Source)
}

// A ResourceResolver knows where modules were loaded from.
type ResourceResolver interface {
	// ResolveModule returns the URI of the resource that defines the given module. The URI
	// has either the SchemeArchive or the SchemeLoose scheme. A nil URI and a nil error is
	// returned when the resource cannot be found.
	ResolveModule(m Module) (*url.URL, error)
}

// ResourceResolverFunc adapts an ordinary function to a ResourceResolver
type ResourceResolverFunc func(m Module) (*url.URL, error)

// ResolveModule calls f(m)
func (f ResourceResolverFunc) ResolveModule(m Module) (*url.URL, error) {
	return f(m)
}
