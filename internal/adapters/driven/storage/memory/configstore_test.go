package memory

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.Empty(t, store.Keys())
	assert.Empty(t, store.Path())
	assert.NoError(t, store.Load())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("pipeline.workers", 4))
	require.NoError(t, store.Set("pipeline.workers", 8))

	val, ok := store.Get("pipeline.workers")
	assert.True(t, ok)
	assert.Equal(t, 8, val)

	_, ok = store.Get("nonexistent")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()

	_ = store.Set("string", "memory")
	_ = store.Set("int", 42)
	_ = store.Set("int64", int64(43))
	_ = store.Set("float", 2.5)
	_ = store.Set("duration", 3*time.Second)
	_ = store.Set("duration_string", "250ms")
	_ = store.Set("bad_duration", "later")

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string", store.GetString("string"), "memory"},
		{"string wrong type", store.GetString("int"), ""},
		{"int", store.GetInt("int"), 42},
		{"int from int64", store.GetInt("int64"), 43},
		{"int from float truncates", store.GetInt("float"), 2},
		{"int wrong type", store.GetInt("string"), 0},
		{"float", store.GetFloat("float"), 2.5},
		{"float from int", store.GetFloat("int"), 42.0},
		{"float missing", store.GetFloat("missing"), 0.0},
		{"duration", store.GetDuration("duration"), 3 * time.Second},
		{"duration string", store.GetDuration("duration_string"), 250 * time.Millisecond},
		{"duration unparseable", store.GetDuration("bad_duration"), time.Duration(0)},
		{"duration wrong type", store.GetDuration("int"), time.Duration(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_Keys_Sorted(t *testing.T) {
	store := NewConfigStore()

	_ = store.Set("ocr.dpi", 300)
	_ = store.Set("audit.backend", "memory")
	_ = store.Set("pipeline.workers", 2)

	assert.Equal(t, []string{"audit.backend", "ocr.dpi", "pipeline.workers"}, store.Keys())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "key-" + string(rune('a'+id%10))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.GetFloat(key)
			_ = store.Keys()
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Keys(), 10)
}
