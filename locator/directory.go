package locator

import (
	"net/url"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/lyraproj/homelocator/api"
	"github.com/lyraproj/issue/issue"
)

// directoryAnchor returns the base directory of a loose resource by removing the resource
// path from the end of the URI path.
func directoryAnchor(u *url.URL, resource string) (string, error) {
	p := u.Path
	if !strings.HasSuffix(p, `/`+resource) {
		return ``, api.Error(api.MalformedURI, issue.H{`uri`: u.String(), `detail`: `path does not end with '` + resource + `'`})
	}
	return fromURIPath(strings.TrimSuffix(p, resource)), nil
}

// fromURIPath converts the slash separated path of a file URI to a file system path. On
// windows, the leading slash in front of a volume name is dropped.
func fromURIPath(p string) string {
	if runtime.GOOS == `windows` && len(p) > 2 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}
	return filepath.FromSlash(p)
}

// toURIPath is the inverse of fromURIPath
func toURIPath(p string) string {
	p = filepath.ToSlash(p)
	if !strings.HasPrefix(p, `/`) {
		p = `/` + p
	}
	return p
}
