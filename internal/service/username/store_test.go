package username

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamosanhaeiyuudesu-sketch/mybot/internal/storage"
)

type countingStorage struct {
	*storage.Memory
	reads int
}

func (c *countingStorage) GetItem(key string) (string, bool, error) {
	c.reads++
	return c.Memory.GetItem(key)
}

func TestSaveAndReload(t *testing.T) {
	ls := storage.NewMemory()
	store := New(ls)
	store.EnsureLoaded()

	require.NoError(t, store.SaveUserName("  山田 花子 \n"))
	assert.Equal(t, "山田 花子", store.UserName())

	raw, ok, err := ls.GetItem(StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "山田 花子", raw, "stored raw, not JSON encoded")

	reloaded := New(ls)
	reloaded.EnsureLoaded()
	assert.Equal(t, "山田 花子", reloaded.UserName())
}

func TestSaveEmptyClearsName(t *testing.T) {
	ls := storage.NewMemory()
	store := New(ls)
	require.NoError(t, store.SaveUserName("taro"))
	require.NoError(t, store.SaveUserName("   "))

	assert.Equal(t, "", store.UserName())
	raw, _, err := ls.GetItem(StorageKey)
	require.NoError(t, err)
	assert.Equal(t, "", raw)
}

func TestEnsureLoadedIgnoresBlankStoredValue(t *testing.T) {
	ls := storage.NewMemory()
	require.NoError(t, ls.SetItem(StorageKey, "   "))

	store := New(ls)
	store.EnsureLoaded()

	assert.True(t, store.Loaded())
	assert.Equal(t, "", store.UserName())
}

func TestEnsureLoadedTrimsStoredValue(t *testing.T) {
	ls := storage.NewMemory()
	require.NoError(t, ls.SetItem(StorageKey, " hana "))

	store := New(ls)
	store.EnsureLoaded()

	assert.Equal(t, "hana", store.UserName())
}

func TestEnsureLoadedReadsOnce(t *testing.T) {
	ls := &countingStorage{Memory: storage.NewMemory()}
	store := New(ls)

	store.EnsureLoaded()
	store.EnsureLoaded()

	assert.Equal(t, 1, ls.reads)
}

func TestWithoutStorage(t *testing.T) {
	store := New(nil)
	store.EnsureLoaded()
	assert.False(t, store.Loaded())

	require.NoError(t, store.SaveUserName(" ken "))
	assert.Equal(t, "ken", store.UserName())
}
