package locator

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/lyraproj/homelocator/api"
	"github.com/lyraproj/issue/issue"
)

// Deployment tells a RuntimeResolver how the code of a module is deployed
type Deployment string

const (
	// DeploymentAuto selects DeploymentLoose when running a binary built by "go run" or
	// "go test" and the source file of the module is present, and DeploymentArchive otherwise.
	DeploymentAuto = Deployment(`auto`)

	// DeploymentArchive means that the module is linked into the running executable
	DeploymentArchive = Deployment(`archive`)

	// DeploymentLoose means that the module is present as a source file below a base directory
	DeploymentLoose = Deployment(`loose`)
)

// ParseDeployment returns the Deployment with the given name. An empty name yields
// DeploymentAuto.
func ParseDeployment(name string) (Deployment, error) {
	switch d := Deployment(strings.ToLower(name)); d {
	case ``:
		return DeploymentAuto, nil
	case DeploymentAuto, DeploymentArchive, DeploymentLoose:
		return d, nil
	}
	return ``, api.Error(api.UnknownDeployment, issue.H{`name`: name})
}

// RuntimeResolver is the api.ResourceResolver that describes where modules of the running
// process were loaded from.
type RuntimeResolver struct {
	Deployment Deployment

	// Executable returns the path of the running executable. Defaults to os.Executable.
	Executable func() (string, error)
}

// ResolveModule returns an archive URI pointing into the running executable or a loose URI
// pointing to the source file of the module.
func (r *RuntimeResolver) ResolveModule(m api.Module) (*url.URL, error) {
	switch r.Deployment {
	case DeploymentLoose:
		return looseURI(m), nil
	case DeploymentArchive:
		exe, err := r.executable()
		if err != nil {
			return nil, err
		}
		return archiveURI(exe, m), nil
	case ``, DeploymentAuto:
		exe, err := r.executable()
		if err != nil {
			return nil, err
		}
		if isTransientBuild(exe) {
			if u := looseURI(m); u != nil {
				return u, nil
			}
		}
		return archiveURI(exe, m), nil
	}
	return nil, api.Error(api.UnknownDeployment, issue.H{`name`: string(r.Deployment)})
}

func (r *RuntimeResolver) executable() (string, error) {
	exeFunc := r.Executable
	if exeFunc == nil {
		exeFunc = os.Executable
	}
	exe, err := exeFunc()
	if err == nil {
		exe, err = filepath.EvalSymlinks(exe)
	}
	if err != nil {
		return ``, api.Error(api.FilesystemFailure, issue.H{`path`: `executable`, `detail`: err.Error()})
	}
	return exe, nil
}

// isTransientBuild returns true when the executable lives in a work directory created by
// "go run" or "go test"
func isTransientBuild(exe string) bool {
	for _, e := range strings.Split(filepath.ToSlash(filepath.Dir(exe)), `/`) {
		if strings.HasPrefix(e, `go-build`) {
			return true
		}
	}
	return false
}

func looseURI(m api.Module) *url.URL {
	src := m.Source
	if !filepath.IsAbs(src) {
		return nil
	}
	if _, err := os.Stat(src); err != nil {
		return nil
	}
	p := toURIPath(src)
	if !strings.HasSuffix(p, `/`+m.ResourcePath()) {
		return nil
	}
	return &url.URL{Scheme: api.SchemeLoose, Path: p}
}

// separatorEscaper escapes the archive content separators that url.URL.EscapedPath leaves as is.
var separatorEscaper = strings.NewReplacer(`!`, `%21`, `$`, `%24`)

func archiveURI(exe string, m api.Module) *url.URL {
	file := separatorEscaper.Replace((&url.URL{Path: toURIPath(exe)}).EscapedPath())
	return &url.URL{Scheme: api.SchemeArchive, Opaque: filePrefix + file + `!/` + m.ResourcePath()}
}
