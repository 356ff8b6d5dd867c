package cache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCachesObject(t *testing.T) {
	calls := 0
	loader := func(key string) (any, error) {
		calls++
		return "built:" + key, nil
	}
	obj, err := Load("test-key-1", loader)
	require.NoError(t, err)
	assert.Equal(t, "built:test-key-1", obj)

	obj, err = Load("test-key-1", loader)
	require.NoError(t, err)
	assert.Equal(t, "built:test-key-1", obj)
	assert.Equal(t, 1, calls)
}

func TestLoadError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Load("test-key-err", func(key string) (any, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	// A failed load is not cached.
	obj, err := Load("test-key-err", func(key string) (any, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, obj)
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]byte("some corpus text"))
	b := Fingerprint([]byte("some corpus text"))
	c := Fingerprint([]byte("different corpus text"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEmpty(t, a)
}
