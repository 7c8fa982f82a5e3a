package pkg

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpool(t *testing.T) {
	t.Run("NewSpool", func(t *testing.T) {
		spool, err := NewSpool[int]()
		require.NoError(t, err)
		require.NotNil(t, spool)
		require.Contains(t, spool.Path(), "/tmp/stunt-spool")
		defer spool.Close()
	})

	t.Run("Append and Get", func(t *testing.T) {
		spool, err := NewSpool[string]()
		require.NoError(t, err)
		defer spool.Close()

		err = spool.Append("first")
		require.NoError(t, err)

		err = spool.Append("second")
		require.NoError(t, err)

		val1, err := spool.Get(0)
		require.NoError(t, err)
		require.Equal(t, "first", val1)

		val2, err := spool.Get(1)
		require.NoError(t, err)
		require.Equal(t, "second", val2)

		val3, err := spool.Get(3)
		require.Error(t, err)
		require.Equal(t, "", val3)
	})

	t.Run("Len returns correct count", func(t *testing.T) {
		spool, err := NewSpool[int]()
		require.NoError(t, err)
		defer spool.Close()

		require.Equal(t, uint64(0), spool.Len())

		spool.Append(1)
		require.Equal(t, uint64(1), spool.Len())

		spool.Append(2)
		spool.Append(3)
		require.Equal(t, uint64(3), spool.Len())
	})

	t.Run("AppendBatch adds multiple items", func(t *testing.T) {
		spool, err := NewSpool[int]()
		require.NoError(t, err)
		defer spool.Close()

		items := []int{10, 20, 30, 40, 50}
		err = spool.AppendBatch(items)
		require.NoError(t, err)

		require.Equal(t, uint64(5), spool.Len())

		val, err := spool.Get(0)
		require.NoError(t, err)
		require.Equal(t, 10, val)

		val, err = spool.Get(4)
		require.NoError(t, err)
		require.Equal(t, 50, val)
	})

	t.Run("Range iterates all items in order", func(t *testing.T) {
		spool, err := NewSpool[int]()
		require.NoError(t, err)
		defer spool.Close()

		expected := []int{100, 200, 300}
		for _, v := range expected {
			spool.Append(v)
		}

		var collected []int
		err = spool.Range(func(index uint64, item int) error {
			collected = append(collected, item)
			return nil
		})

		require.NoError(t, err)
		require.Equal(t, expected, collected)
	})

	t.Run("Range callback error stops iteration", func(t *testing.T) {
		spool, err := NewSpool[int]()
		require.NoError(t, err)
		defer spool.Close()

		spool.Append(1)
		spool.Append(2)
		spool.Append(3)

		count := 0
		rangeErr := spool.Range(func(index uint64, item int) error {
			count++
			if index == 1 {
				return errors.New("stop at index 1")
			}
			return nil
		})

		require.Error(t, rangeErr)
		require.Equal(t, 2, count)
	})

	t.Run("Close closes file and keeps data readable", func(t *testing.T) {
		spool, err := NewSpool[int]()
		require.NoError(t, err)

		spool.Append(1)
		err = spool.Close()
		require.NoError(t, err)

		val, err := spool.Get(0)
		require.NoError(t, err)
		require.Equal(t, 1, val)
	})

	t.Run("struct items survive the round trip", func(t *testing.T) {
		type entry struct {
			File  string
			Count int
		}

		spool, err := NewSpool[entry]()
		require.NoError(t, err)
		defer spool.Close()

		first := entry{File: "render.go", Count: 4}
		second := entry{File: "journal.go", Count: 9}

		spool.Append(first)
		spool.Append(second)

		got, err := spool.Get(0)
		require.NoError(t, err)
		require.Equal(t, first, got)

		got, err = spool.Get(1)
		require.NoError(t, err)
		require.Equal(t, second, got)
	})
}

func TestSpoolEdgeCases(t *testing.T) {
	t.Run("empty spool range returns no items", func(t *testing.T) {
		spool, err := NewSpool[int]()
		require.NoError(t, err)
		defer spool.Close()

		count := 0
		err = spool.Range(func(index uint64, item int) error {
			count++
			return nil
		})

		require.NoError(t, err)
		require.Equal(t, 0, count)
	})

	t.Run("get on empty spool returns error", func(t *testing.T) {
		spool, err := NewSpool[int]()
		require.NoError(t, err)
		defer spool.Close()

		_, err = spool.Get(0)
		require.Error(t, err)
	})

	t.Run("zero values round trip", func(t *testing.T) {
		spool, err := NewSpool[int]()
		require.NoError(t, err)
		defer spool.Close()

		err = spool.Append(0)
		require.NoError(t, err)

		val, err := spool.Get(0)
		require.NoError(t, err)
		require.Equal(t, 0, val)
	})

	t.Run("large numbers round trip", func(t *testing.T) {
		spool, err := NewSpool[int64]()
		require.NoError(t, err)
		defer spool.Close()

		large := int64(math.MaxInt64)
		spool.Append(large)

		val, _ := spool.Get(0)
		require.Equal(t, large, val)
	})

	t.Run("get beyond last item fails", func(t *testing.T) {
		spool, err := NewSpool[int]()
		require.NoError(t, err)
		defer spool.Close()

		spool.Append(1)
		spool.Append(2)

		_, err = spool.Get(2)
		require.Error(t, err)

		_, err = spool.Get(1000)
		require.Error(t, err)
	})

	t.Run("append batch then individual append", func(t *testing.T) {
		spool, err := NewSpool[int]()
		require.NoError(t, err)
		defer spool.Close()

		spool.AppendBatch([]int{1, 2, 3})
		spool.Append(4)

		require.Equal(t, uint64(4), spool.Len())

		v3, _ := spool.Get(3)
		require.Equal(t, 4, v3)
	})
}

// BenchmarkSpoolAppend measures the performance of appending items.
func BenchmarkSpoolAppend(b *testing.B) {
	spool, err := NewSpool[int]()
	if err != nil {
		b.Fatalf("failed to create spool: %v", err)
	}
	defer spool.Close()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = spool.Append(i)
	}
}

// BenchmarkSpoolRange measures the performance of iterating all items.
func BenchmarkSpoolRange(b *testing.B) {
	spool, err := NewSpool[int]()
	if err != nil {
		b.Fatalf("failed to create spool: %v", err)
	}
	defer spool.Close()

	for i := 0; i < 1000; i++ {
		_ = spool.Append(i)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = spool.Range(func(index uint64, item int) error {
			return nil
		})
	}
}

// FuzzSpoolAppendGet fuzzes append and get operations with integers.
func FuzzSpoolAppendGet(f *testing.F) {
	f.Add(int64(0))
	f.Add(int64(1))
	f.Add(int64(-1))
	f.Add(int64(999))

	f.Fuzz(func(t *testing.T, data int64) {
		spool, err := NewSpool[int64]()
		if err != nil {
			t.Skipf("setup failed: %v", err)
		}
		defer spool.Close()

		err = spool.Append(data)
		if err != nil {
			t.Fatalf("append failed: %v", err)
		}

		val, err := spool.Get(0)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}

		if val != data {
			t.Fatalf("value mismatch: expected %d, got %d", data, val)
		}

		_, err = spool.Get(1)
		if err == nil {
			t.Fatal("expected error for out of bounds get")
		}
	})
}
