package cli

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/lyraproj/homelocator/api"
	"github.com/lyraproj/homelocator/locator"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLocate_sourceRoot(t *testing.T) {
	root := sourceRoot(t)
	result, err := ExecuteLocate(`--deployment`, `loose`)
	require.NoError(t, err)
	require.Equal(t, root+"\n", string(result))
}

func TestLocate_relativePath(t *testing.T) {
	root := sourceRoot(t)
	result, err := ExecuteLocate(`--deployment`, `loose`, `cli`)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, `cli`)+"\n", string(result))
}

func TestLocate_json(t *testing.T) {
	root := sourceRoot(t)
	result, err := ExecuteLocate(`--deployment`, `loose`, `--render-as`, `json`)
	require.NoError(t, err)
	var r Result
	require.NoError(t, json.Unmarshal(result, &r))
	require.Equal(t, Result{Location: root}, r)
}

func TestLocate_yaml(t *testing.T) {
	root := sourceRoot(t)
	result, err := ExecuteLocate(`--deployment`, `loose`, `--render-as`, `yaml`)
	require.NoError(t, err)
	var r Result
	require.NoError(t, yaml.Unmarshal(result, &r))
	require.Equal(t, Result{Location: root}, r)
}

func TestLocate_glob(t *testing.T) {
	sourceRoot(t)
	result, err := ExecuteLocate(`--deployment`, `loose`, `--glob`, `*.mod`, `--glob`, `cli/home*_test.go`)
	require.NoError(t, err)
	require.Equal(t, "go.mod\ncli/homelocator_test.go\n", string(result))
}

func TestLocate_settingsFile(t *testing.T) {
	root := sourceRoot(t)
	path := filepath.Join(t.TempDir(), `settings.yaml`)
	require.NoError(t, ioutil.WriteFile(path, []byte("relative_path: locator\ndeployment: loose\n"), 0644))
	result, err := ExecuteLocate(`--config`, path)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, `locator`)+"\n", string(result))
}

func TestLocate_missingSettingsFile(t *testing.T) {
	_, err := ExecuteLocate(`--config`, filepath.Join(t.TempDir(), `settings.yaml`))
	require.Error(t, err)
	require.Contains(t, err.Error(), `unable to read settings`)
}

func TestLocate_settingsFileWithUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), `settings.yaml`)
	require.NoError(t, ioutil.WriteFile(path, []byte("relativ_path: locator\n"), 0644))
	_, err := ExecuteLocate(`--config`, path)
	require.Error(t, err)
	require.Contains(t, err.Error(), `relativ_path`)
}

func TestLocate_argumentOverridesSettingsFile(t *testing.T) {
	root := sourceRoot(t)
	path := filepath.Join(t.TempDir(), `settings.yaml`)
	require.NoError(t, ioutil.WriteFile(path, []byte("relative_path: locator\ndeployment: archive\n"), 0644))
	result, err := ExecuteLocate(`--config`, path, `--deployment`, `loose`, `api`)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, `api`)+"\n", string(result))
}

func TestLocate_nonExistingDirectory(t *testing.T) {
	sourceRoot(t)
	_, err := ExecuteLocate(`--deployment`, `loose`, `../garble`)
	require.Error(t, err)
	require.Equal(t, api.KindInvalidArgument, api.KindOf(err))
	require.Contains(t, err.Error(), `non-existing directory`)
}

func TestLocate_absolutePath(t *testing.T) {
	abs, err := filepath.Abs(`.`)
	require.NoError(t, err)
	_, err = ExecuteLocate(abs)
	require.Error(t, err)
	require.Contains(t, err.Error(), `must be a relative path`)
}

func TestLocate_unknownDeployment(t *testing.T) {
	_, err := ExecuteLocate(`--deployment`, `jar`)
	require.Error(t, err)
	require.Contains(t, err.Error(), `Unknown deployment 'jar'`)
}

func TestLocate_unknownRendering(t *testing.T) {
	sourceRoot(t)
	_, err := ExecuteLocate(`--deployment`, `loose`, `--render-as`, `binary`)
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown rendering 'binary'`)
}

func TestLocate_tooManyArguments(t *testing.T) {
	_, err := ExecuteLocate(`a`, `b`)
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	require.Equal(t, `-dirty`, Version())
}

// sourceRoot returns the canonical root of this source tree, which is where the locator module
// is loaded from when deployed loose.
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
