package main

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/lyraproj/homelocator/cli"
	"github.com/lyraproj/homelocator/config"
	"github.com/lyraproj/homelocator/locator"
	"github.com/stretchr/testify/require"
)

func TestLocation(t *testing.T) {
	root := sourceRoot(t)
	rec := get(t, `/location`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, cli.Result{Location: root}, result(t, rec))
}

func TestLocation_relative(t *testing.T) {
	root := sourceRoot(t)
	rec := get(t, `/location?relative=homeserver`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, cli.Result{Location: filepath.Join(root, `homeserver`)}, result(t, rec))
}

func TestLocation_nonExistingDirectory(t *testing.T) {
	sourceRoot(t)
	rec := get(t, `/location?relative=`+url.QueryEscape(`../garble`))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, message(t, rec), `non-existing directory`)
}

func TestLocation_absolutePath(t *testing.T) {
	abs, err := filepath.Abs(`.`)
	require.NoError(t, err)
	rec := get(t, `/location?relative=`+url.QueryEscape(abs))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, message(t, rec), `must be a relative path`)
}

func TestGlob(t *testing.T) {
	root := sourceRoot(t)
	rec := get(t, `/glob?pattern=`+url.QueryEscape(`homeserver/*_test.go`))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, cli.Result{Location: root, Matches: []string{`homeserver/rest_test.go`}}, result(t, rec))
}

func TestGlob_relative(t *testing.T) {
	root := sourceRoot(t)
	rec := get(t, `/glob?relative=homeserver&pattern=`+url.QueryEscape(`rest*.go`))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, cli.Result{
		Location: filepath.Join(root, `homeserver`),
		Matches:  []string{`rest.go`, `rest_test.go`}}, result(t, rec))
}

func TestGlob_missingPattern(t *testing.T) {
	rec := get(t, `/glob`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, message(t, rec), `missing required parameter 'pattern'`)
}

func TestMakeTLSconfig_noCertificate(t *testing.T) {
	sslCert, sslKey = ``, ``
	cfg, err := makeTLSconfig()
	require.NoError(t, err)
	require.Nil(t, cfg)
}

func TestLoadCertPool_invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), `ca.pem`)
	require.NoError(t, ioutil.WriteFile(path, []byte(`not a certificate`), 0644))
	_, err := loadCertPool(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), `failed to load certificate`)
}

func get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := newServer(&config.Settings{Deployment: `loose`}, hclog.Default())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func result(t *testing.T, rec *httptest.ResponseRecorder) cli.Result {
	t.Helper()
	var r cli.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r))
	return r
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var m map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m[`message`]
}

func sourceRoot(t *testing.T) string {
	t.Helper()
	if !filepath.IsAbs(locator.Self.Source) {
		t.Skip(`source paths are trimmed`)
	}
	wd, err := os.Getwd()
	require.NoError(t, err)
	root, err := filepath.EvalSymlinks(filepath.Dir(wd))
	require.NoError(t, err)
	return root
}
