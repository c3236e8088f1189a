//go:build unit

package memstore_test

import (
	"errors"
	"sync"
	"testing"

	"shareit/internal/infra/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	id  int64
	key string
}

func TestNextIDConcurrent(t *testing.T) {
	s := memstore.New[*record]()

	const workers = 64
	ids := make(chan int64, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- s.NextID()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "id %d handed out twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers)
}

func TestPutAndGet(t *testing.T) {
	s := memstore.New[*record]()

	id := s.NextID()
	require.NoError(t, s.Put(id, &record{id: id}))

	got, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, id, got.id)

	_, ok = s.Get(id + 1)
	assert.False(t, ok)

	s.Delete(id)
	_, ok = s.Get(id)
	assert.False(t, ok)
}

func TestUniqueIndex(t *testing.T) {
	s := memstore.NewIndexed(func(r *record) string { return r.key })

	a := s.NextID()
	require.NoError(t, s.Put(a, &record{id: a, key: "alpha"}))

	t.Run("duplicate key rejected", func(t *testing.T) {
		b := s.NextID()
		err := s.Put(b, &record{id: b, key: "alpha"})
		require.ErrorIs(t, err, memstore.ErrDuplicateKey)
		_, ok := s.Get(b)
		assert.False(t, ok, "rejected insert must not land in the primary map")
	})

	t.Run("same id may keep its key", func(t *testing.T) {
		require.NoError(t, s.Put(a, &record{id: a, key: "alpha"}))
	})

	t.Run("key change reindexes", func(t *testing.T) {
		require.NoError(t, s.Put(a, &record{id: a, key: "beta"}))

		got, ok := s.GetByKey("beta")
		require.True(t, ok)
		assert.Equal(t, a, got.id)

		_, ok = s.GetByKey("alpha")
		assert.False(t, ok, "old key must be released")
	})

	t.Run("delete releases the key", func(t *testing.T) {
		s.Delete(a)
		_, ok := s.GetByKey("beta")
		assert.False(t, ok)
	})
}

func TestInsertWith(t *testing.T) {
	errBlocked := errors.New("blocked")

	t.Run("guard failure prevents insert", func(t *testing.T) {
		s := memstore.New[*record]()
		_, err := s.InsertWith(
			func([]*record) error { return errBlocked },
			func(id int64) *record { return &record{id: id} },
		)
		require.ErrorIs(t, err, errBlocked)
		assert.Equal(t, 0, s.Len())
	})

	t.Run("racing guarded inserts commit at most one", func(t *testing.T) {
		s := memstore.New[*record]()

		const workers = 16
		var wg sync.WaitGroup
		results := make(chan error, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.InsertWith(
					func(existing []*record) error {
						if len(existing) > 0 {
							return errBlocked
						}
						return nil
					},
					func(id int64) *record { return &record{id: id} },
				)
				results <- err
			}()
		}
		wg.Wait()
		close(results)

		succeeded := 0
		for err := range results {
			if err == nil {
				succeeded++
			} else {
				require.ErrorIs(t, err, errBlocked)
			}
		}
		assert.Equal(t, 1, succeeded)
		assert.Equal(t, 1, s.Len())
	})
}

func TestUpdate(t *testing.T) {
	s := memstore.New[*record]()

	t.Run("missing id", func(t *testing.T) {
		_, err := s.Update(99, func(r *record) (*record, error) { return r, nil })
		require.ErrorIs(t, err, memstore.ErrNotFound)
	})

	t.Run("stores the replacement", func(t *testing.T) {
		id := s.NextID()
		require.NoError(t, s.Put(id, &record{id: id, key: "old"}))

		got, err := s.Update(id, func(r *record) (*record, error) {
			return &record{id: r.id, key: "new"}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "new", got.key)

		stored, ok := s.Get(id)
		require.True(t, ok)
		assert.Equal(t, "new", stored.key)
	})

	t.Run("failed update leaves the stored value", func(t *testing.T) {
		id := s.NextID()
		require.NoError(t, s.Put(id, &record{id: id, key: "keep"}))

		_, err := s.Update(id, func(r *record) (*record, error) {
			return nil, errors.New("rejected")
		})
		require.Error(t, err)

		stored, ok := s.Get(id)
		require.True(t, ok)
		assert.Equal(t, "keep", stored.key)
	})
}
