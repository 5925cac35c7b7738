package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picotools/cli/internal/errs"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, s.All())
	assert.Equal(t, "", s.SDKPath())

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "loading must not create the file")
}

func TestSetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	s, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(KeySDK, "/opt/pico-sdk"))

	again, err := Load(path)
	require.NoError(t, err)
	v, ok := again.Get(KeySDK)
	require.True(t, ok)
	assert.Equal(t, "/opt/pico-sdk", v)
}

func TestSetIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	for i := 0; i < 2; i++ {
		s, err := Load(path)
		require.NoError(t, err)
		require.NoError(t, s.Set(KeySDK, "/opt/pico-sdk"))
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "pico-sdk: /opt/pico-sdk\n", string(data))
}

func TestSetPreservesOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("editor: vim\npico-sdk: /old/sdk\n"), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(KeySDK, "/new/sdk"))

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Key: "editor", Value: "vim"},
		{Key: KeySDK, Value: "/new/sdk", Comment: knownKeys[KeySDK]},
	}, again.All())
}

func TestLoadMalformedIsConfigReadError(t *testing.T) {
	tests := map[string]string{
		"not yaml":    "pico-sdk: [unterminated\n",
		"not mapping": "- a\n- b\n",
		"nested":      "pico-sdk:\n  path: /opt/sdk\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))

			_, err := Load(path)
			require.Error(t, err)
			assert.Equal(t, errs.KindConfigRead, errs.KindOf(err))
		})
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, s.All())
}

func TestPathHonoursEnv(t *testing.T) {
	want := filepath.Join(t.TempDir(), "custom.yaml")
	t.Setenv(envPath, want)

	got, err := Path()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPathDefaultsToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv(envPath, "")
	t.Setenv("HOME", home)

	got, err := Path()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, FileName), got)
}

func TestSetKeepsHandEditedValuesVerbatim(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	orig := "retries: 3\nverbose: true\nratio: 1.10\nnothing: null\n"
	require.NoError(t, os.WriteFile(path, []byte(orig), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(KeySDK, "/opt/sdk"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, orig+"pico-sdk: /opt/sdk\n", string(data))

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Key: "nothing", Value: nil},
		{Key: KeySDK, Value: "/opt/sdk", Comment: knownKeys[KeySDK]},
		{Key: "ratio", Value: 1.1},
		{Key: "retries", Value: 3},
		{Key: "verbose", Value: true},
	}, again.All())

	v, ok := again.Get("nothing")
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestSetReplacesExistingKeyInPlace(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("pico-sdk: /old\neditor: vim\n"), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(KeySDK, "/new"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "pico-sdk: /new\neditor: vim\n", string(data))
}
