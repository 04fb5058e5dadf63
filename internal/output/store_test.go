package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_WriteJSON(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root)
	assert.Equal(t, root, s.Root())

	require.NoError(t, s.WriteJSON("2020/01/index.json", map[string]any{"url": "https://x/?a=1&b=<2>"}))

	data, err := os.ReadFile(filepath.Join(root, "2020", "01", "index.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"url\": \"https://x/?a=1&b=<2>\"\n}", string(data))
	assert.Equal(t, 1, s.Written())
	assert.Equal(t, 0, s.Unchanged())
}

func TestStore_SkipsUnchanged(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root)
	path := filepath.Join(root, "years.json")

	require.NoError(t, s.WriteJSON("years.json", []string{"2019"}))
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))

	require.NoError(t, s.WriteJSON("years.json", []string{"2019"}))
	assert.Equal(t, 1, s.Written())
	assert.Equal(t, 1, s.Unchanged())
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old) || info.ModTime().Before(old.Add(time.Second)))

	require.NoError(t, s.WriteJSON("years.json", []string{"2019", "2020"}))
	assert.Equal(t, 2, s.Written())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[\n  \"2019\",\n  \"2020\"\n]", string(data))
}

func TestStore_RewritesLateByteChange(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "big.json")
	data := []byte(strings.Repeat("a", 64*1024) + "b")

	s := NewStore(root)
	require.NoError(t, s.WriteFile("big.json", data))

	onDisk := append([]byte(nil), data...)
	onDisk[len(onDisk)-1] = 'c'
	require.NoError(t, os.WriteFile(path, onDisk, 0644))

	require.NoError(t, s.WriteFile("big.json", data))
	assert.Equal(t, 2, s.Written())
	assert.Equal(t, 0, s.Unchanged())
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.NoError(t, s.WriteFile("big.json", data))
	assert.Equal(t, 1, s.Unchanged())
}

func TestSameContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	assert.False(t, sameContent(path, []byte("x")))

	require.NoError(t, os.WriteFile(path, []byte("abc"), 0644))
	assert.True(t, sameContent(path, []byte("abc")))
	assert.False(t, sameContent(path, []byte("abd")))
	assert.False(t, sameContent(path, []byte("abcd")))
}

func TestEncodeJSON_Error(t *testing.T) {
	_, err := EncodeJSON(make(chan int))
	assert.Error(t, err)

	s := NewStore(t.TempDir())
	assert.Error(t, s.WriteJSON("bad.json", func() {}))
}
