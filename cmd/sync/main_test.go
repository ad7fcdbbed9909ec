package main

import (
	"errors"
	"testing"

	"github.com/go-playground/assert/v2"

	"shoedex/internal/model"
)

type fakePendingStore struct {
	pending  []model.Article
	err      error
	gotLimit int
}

func (f *fakePendingStore) GetPending(limit int) ([]model.Article, error) {
	f.gotLimit = limit
	return f.pending, f.err
}

func TestPendingRequeueIDs(t *testing.T) {
	store := &fakePendingStore{pending: []model.Article{{ID: 7}, {ID: 9}}}

	ids, err := pendingRequeueIDs(store, 0, 100)

	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"7", "9"}, ids)
	assert.Equal(t, 100, store.gotLimit)
}

func TestPendingRequeueIDs_SkipsWhenQueueBusy(t *testing.T) {
	store := &fakePendingStore{pending: []model.Article{{ID: 7}}}

	ids, err := pendingRequeueIDs(store, 3, 100)

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(ids))

	// The store is never consulted while the queue still has work.
	assert.Equal(t, 0, store.gotLimit)
}

func TestPendingRequeueIDs_StoreError(t *testing.T) {
	store := &fakePendingStore{err: errors.New("DB down")}

	_, err := pendingRequeueIDs(store, 0, 100)
	assert.NotEqual(t, nil, err)
}
