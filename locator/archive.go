package locator

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/lyraproj/homelocator/api"
	"github.com/lyraproj/issue/issue"
)

const filePrefix = `file:`

// archiveAnchor returns the parent directory of the archive file that is embedded in the
// scheme specific part of the given URI, i.e. "file:/repo/lib/app!/locator/locator.go"
// yields "/repo/lib". The last occurrence of the first separator found is where the archive
// path ends.
func archiveAnchor(u *url.URL, separators []string) (string, error) {
	ssp := u.Opaque
	if ssp == `` {
		ssp = u.Path
	}
	archive := ssp
	for _, sep := range separators {
		if sep == `` {
			continue
		}
		if i := strings.LastIndex(ssp, sep); i >= 0 {
			archive = ssp[:i]
			break
		}
	}
	p, err := archiveFile(archive)
	if err != nil {
		return ``, api.Error(api.MalformedURI, issue.H{`uri`: u.String(), `detail`: err.Error()})
	}
	if p == `` {
		return ``, api.Error(api.MalformedURI, issue.H{`uri`: u.String(), `detail`: `no archive path`})
	}
	return filepath.Dir(p), nil
}

func archiveFile(s string) (string, error) {
	if strings.HasPrefix(s, filePrefix) {
		fu, err := url.Parse(s)
		if err != nil {
			return ``, err
		}
		return fromURIPath(fu.Path), nil
	}
	p, err := url.PathUnescape(s)
	if err != nil {
		return ``, err
	}
	return fromURIPath(p), nil
}
