//go:build unit

package usecase_test

import (
	"testing"
	"time"

	"shareit/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestCreate(t *testing.T) {
	f := newFixture(t)
	requester := f.addUser(t, "Requester", "requester@example.com")

	t.Run("success", func(t *testing.T) {
		view, err := f.requests.Create(f.ctx, requester, "need a drill")
		require.NoError(t, err)
		assert.NotZero(t, view.ID)
		assert.Equal(t, requester, view.RequesterID)
		assert.Equal(t, now, view.Created)
		assert.Empty(t, view.Items)
	})

	t.Run("unknown requester", func(t *testing.T) {
		_, err := f.requests.Create(f.ctx, 999, "need a drill")
		require.ErrorIs(t, err, usecase.ErrUserNotFound)
	})

	t.Run("blank description", func(t *testing.T) {
		_, err := f.requests.Create(f.ctx, requester, " ")
		require.ErrorIs(t, err, usecase.ErrValidation)
	})
}

func TestRequestListings(t *testing.T) {
	f := newFixture(t)
	requester := f.addUser(t, "Requester", "requester@example.com")
	other := f.addUser(t, "Other", "other@example.com")
	owner := f.addUser(t, "Owner", "owner@example.com")

	mk := func(userID int64, desc string, offset time.Duration) *usecase.RequestView {
		t.Helper()
		f.clock.Set(now.Add(offset))
		view, err := f.requests.Create(f.ctx, userID, desc)
		require.NoError(t, err)
		return view
	}

	oldReq := mk(requester, "need a drill", 0)
	newReq := mk(requester, "need a saw", time.Hour)
	otherReq := mk(other, "need a ladder", 2*time.Hour)

	// An item listed against the older request.
	itemView, err := f.itemsUC.Create(f.ctx, owner, usecase.CreateItemParams{
		Name:        "Drill",
		Description: "Cordless drill",
		Available:   true,
		RequestID:   &oldReq.ID,
	})
	require.NoError(t, err)

	t.Run("own requests newest first with items", func(t *testing.T) {
		views, err := f.requests.ListOwn(f.ctx, requester)
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, newReq.ID, views[0].ID)
		assert.Equal(t, oldReq.ID, views[1].ID)

		require.Len(t, views[1].Items, 1)
		assert.Equal(t, itemView.ID, views[1].Items[0].ID)
	})

	t.Run("others listing excludes own requests", func(t *testing.T) {
		views, err := f.requests.ListOthers(f.ctx, requester, 0, 10)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, otherReq.ID, views[0].ID)
	})

	t.Run("others listing paginates", func(t *testing.T) {
		views, err := f.requests.ListOthers(f.ctx, owner, 1, 1)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, newReq.ID, views[0].ID)

		_, err = f.requests.ListOthers(f.ctx, owner, -1, 1)
		require.ErrorIs(t, err, usecase.ErrInvalidArgument)
	})

	t.Run("get by id requires existing viewer", func(t *testing.T) {
		view, err := f.requests.GetByID(f.ctx, oldReq.ID, other)
		require.NoError(t, err)
		require.Len(t, view.Items, 1)

		_, err = f.requests.GetByID(f.ctx, oldReq.ID, 999)
		require.ErrorIs(t, err, usecase.ErrUserNotFound)

		_, err = f.requests.GetByID(f.ctx, 999, other)
		require.ErrorIs(t, err, usecase.ErrRequestNotFound)
	})
}

func TestRequestDelete(t *testing.T) {
	f := newFixture(t)
	requester := f.addUser(t, "Requester", "requester@example.com")
	other := f.addUser(t, "Other", "other@example.com")

	view, err := f.requests.Create(f.ctx, requester, "need a drill")
	require.NoError(t, err)

	t.Run("non-requester forbidden", func(t *testing.T) {
		err := f.requests.Delete(f.ctx, view.ID, other)
		require.ErrorIs(t, err, usecase.ErrForbidden)
	})

	t.Run("requester deletes", func(t *testing.T) {
		require.NoError(t, f.requests.Delete(f.ctx, view.ID, requester))

		_, err := f.requests.GetByID(f.ctx, view.ID, requester)
		require.ErrorIs(t, err, usecase.ErrRequestNotFound)
	})

	t.Run("missing request", func(t *testing.T) {
		err := f.requests.Delete(f.ctx, 999, requester)
		require.ErrorIs(t, err, usecase.ErrRequestNotFound)
	})
}
