package fsys

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocal(t *testing.T) (*Local, string) {
	t.Helper()
	root := t.TempDir()
	l, err := NewLocal(root)
	require.NoError(t, err)
	return l, root
}

func TestNewLocal(t *testing.T) {
	_, err := NewLocal("")
	require.Error(t, err)

	l, root := newTestLocal(t)
	abs, err := filepath.Abs(root)
	require.NoError(t, err)
	assert.Equal(t, abs, l.Root())
}

func TestLocal_ReadDir(t *testing.T) {
	l, root := newTestLocal(t)

	require.NoError(t, os.WriteFile(filepath.Join(root, "b.txt"), []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.Symlink(filepath.Join(root, "a.txt"), filepath.Join(root, "link")))

	entries, err := l.ReadDir("")
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Name: "a.txt", Kind: KindFile},
		{Name: "b.txt", Kind: KindFile},
		{Name: "link", Kind: KindOther},
		{Name: "sub", Kind: KindDir},
	}, entries)

	_, err = l.ReadDir("missing")
	require.Error(t, err)
}

func TestLocal_ReadRange(t *testing.T) {
	l, root := newTestLocal(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "data.bin"), []byte("0123456789"), 0o644))

	data, err := l.ReadRange("data.bin", 3, 7)
	require.NoError(t, err)
	assert.Equal(t, []byte("3456"), data)

	// чтение за концом файла дает короткий результат без ошибки
	data, err = l.ReadRange("data.bin", 8, 20)
	require.NoError(t, err)
	assert.Equal(t, []byte("89"), data)

	_, err = l.ReadRange("data.bin", 5, 2)
	require.Error(t, err)

	_, err = l.ReadRange("../escape", 0, 1)
	require.Error(t, err)
}

func TestLocal_WriteAt_PreservesOtherRegions(t *testing.T) {
	l, root := newTestLocal(t)

	// запись второго блока раньше первого: файл создается с дыркой
	require.NoError(t, l.WriteAt("nested/dir/file.bin", 5, []byte("world")))
	require.NoError(t, l.WriteAt("nested/dir/file.bin", 0, []byte("hello")))

	content, err := os.ReadFile(filepath.Join(root, "nested", "dir", "file.bin"))
	require.NoError(t, err)
	assert.Equal(t, []byte("helloworld"), content)

	require.NoError(t, l.WriteAt("nested/dir/file.bin", 2, []byte("LL")))
	content, err = os.ReadFile(filepath.Join(root, "nested", "dir", "file.bin"))
	require.NoError(t, err)
	assert.Equal(t, []byte("heLLoworld"), content)
}

func TestLocal_Truncate(t *testing.T) {
	l, root := newTestLocal(t)
	path := filepath.Join(root, "old.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale content"), 0o644))

	require.NoError(t, l.Truncate("old.txt"))
	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(0), st.Size())

	// отсутствующий файл создается пустым
	require.NoError(t, l.Truncate("new/empty.txt"))
	st, err = os.Stat(filepath.Join(root, "new", "empty.txt"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), st.Size())
}

func TestLocal_StatAndModTime(t *testing.T) {
	l, _ := newTestLocal(t)
	require.NoError(t, l.WriteAt("f.txt", 0, []byte("abc")))
	require.NoError(t, l.MkdirAll("d/e"))

	modified := time.UnixMilli(1700000000000)
	require.NoError(t, l.SetModTime("f.txt", modified))

	info, err := l.Stat("f.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(3), info.Size)
	assert.False(t, info.IsDir)
	assert.Equal(t, modified.UnixMilli(), info.ModTime.UnixMilli())

	info, err = l.Stat("d/e")
	require.NoError(t, err)
	assert.True(t, info.IsDir)

	_, err = l.Stat("nope")
	require.Error(t, err)
}
