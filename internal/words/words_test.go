package words

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	got := Normalize([]string{
		"  Apple ",
		"",
		"# comment",
		"apple",
		"naïve",
		"two words",
		"Pear",
	})
	assert.Equal(t, []string{"Apple", "Pear"}, got)
}

func TestRead(t *testing.T) {
	got, err := Read(strings.NewReader("otter\n\n# skip\nRAVEN\notter\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"otter", "RAVEN"}, got)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "bank.txt")
	require.NoError(t, os.WriteFile(path, []byte("comet\nmeteor\n"), 0o644))
	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"comet", "meteor"}, got)

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("# nothing\n"), 0o644))
	_, err = ReadFile(empty)
	assert.Error(t, err)

	_, err = ReadFile(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestInitEmbedded(t *testing.T) {
	require.NoError(t, Init(""))
	assert.Greater(t, Stats(), 100)
	for _, w := range Bank() {
		assert.True(t, isAlpha(w), w)
	}
}

func TestLoad(t *testing.T) {
	embedded, err := Load("")
	require.NoError(t, err)
	assert.Len(t, embedded, 174)

	path := filepath.Join(t.TempDir(), "bank.txt")
	require.NoError(t, os.WriteFile(path, []byte("alpha\nbeta\n"), 0o644))
	custom, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, custom)
}
