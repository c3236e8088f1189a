//go:build unit

package usecase_test

import (
	"testing"

	"shareit/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestItemCreate(t *testing.T) {
	f := newFixture(t)
	owner := f.addUser(t, "Owner", "owner@example.com")

	t.Run("success", func(t *testing.T) {
		view, err := f.itemsUC.Create(f.ctx, owner, usecase.CreateItemParams{
			Name:        "Drill",
			Description: "Cordless drill",
			Available:   true,
		})
		require.NoError(t, err)
		assert.NotZero(t, view.ID)
		assert.Equal(t, owner, view.OwnerID)
		assert.True(t, view.Available)
	})

	t.Run("unknown owner", func(t *testing.T) {
		_, err := f.itemsUC.Create(f.ctx, 999, usecase.CreateItemParams{
			Name:        "Drill",
			Description: "Cordless drill",
			Available:   true,
		})
		require.ErrorIs(t, err, usecase.ErrUserNotFound)
	})

	t.Run("invalid fields", func(t *testing.T) {
		_, err := f.itemsUC.Create(f.ctx, owner, usecase.CreateItemParams{
			Name:        " ",
			Description: "Cordless drill",
			Available:   true,
		})
		require.ErrorIs(t, err, usecase.ErrValidation)
	})
}

func TestItemUpdate(t *testing.T) {
	f := newFixture(t)
	owner := f.addUser(t, "Owner", "owner@example.com")
	other := f.addUser(t, "Other", "other@example.com")
	itemID := f.addItem(t, owner, "Drill", true)

	t.Run("owner patches fields", func(t *testing.T) {
		view, err := f.itemsUC.Update(f.ctx, itemID, owner, usecase.PatchItemParams{
			Name:      strPtr("Hammer"),
			Available: boolPtr(false),
		})
		require.NoError(t, err)
		assert.Equal(t, "Hammer", view.Name)
		assert.False(t, view.Available)
		assert.Equal(t, "Drill description", view.Description)
	})

	t.Run("non-owner masked as not found", func(t *testing.T) {
		_, err := f.itemsUC.Update(f.ctx, itemID, other, usecase.PatchItemParams{
			Name: strPtr("Stolen"),
		})
		require.ErrorIs(t, err, usecase.ErrItemNotFound)
	})

	t.Run("missing item", func(t *testing.T) {
		_, err := f.itemsUC.Update(f.ctx, 999, owner, usecase.PatchItemParams{})
		require.ErrorIs(t, err, usecase.ErrItemNotFound)
	})
}

func TestItemGetByID(t *testing.T) {
	f := newFixture(t)
	owner := f.addUser(t, "Owner", "owner@example.com")
	booker := f.addUser(t, "Booker", "booker@example.com")
	itemID := f.addItem(t, owner, "Drill", true)

	created, err := f.bookings.Create(f.ctx, booker, params(itemID, hours(1), hours(2)))
	require.NoError(t, err)
	_, err = f.bookings.Decide(f.ctx, created.ID, owner, true)
	require.NoError(t, err)

	t.Run("owner sees next booking info", func(t *testing.T) {
		view, err := f.itemsUC.GetByID(f.ctx, itemID, owner)
		require.NoError(t, err)
		require.NotNil(t, view.NextBooking)
		assert.Equal(t, created.ID, view.NextBooking.ID)
		assert.Equal(t, booker, view.NextBooking.BookerID)
		assert.Nil(t, view.LastBooking)
	})

	t.Run("non-owner sees no booking info", func(t *testing.T) {
		view, err := f.itemsUC.GetByID(f.ctx, itemID, booker)
		require.NoError(t, err)
		assert.Nil(t, view.NextBooking)
		assert.Nil(t, view.LastBooking)
	})

	t.Run("missing item", func(t *testing.T) {
		_, err := f.itemsUC.GetByID(f.ctx, 999, owner)
		require.ErrorIs(t, err, usecase.ErrItemNotFound)
	})
}

func TestItemSearch(t *testing.T) {
	f := newFixture(t)
	owner := f.addUser(t, "Owner", "owner@example.com")
	f.addItem(t, owner, "Power Drill", true)
	f.addItem(t, owner, "Hand Saw", true)
	f.addItem(t, owner, "Broken Drill", false)

	t.Run("matches name case-insensitively", func(t *testing.T) {
		views, err := f.itemsUC.Search(f.ctx, "dRiLl")
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "Power Drill", views[0].Name)
	})

	t.Run("unavailable items excluded", func(t *testing.T) {
		views, err := f.itemsUC.Search(f.ctx, "broken")
		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("blank query yields empty list", func(t *testing.T) {
		views, err := f.itemsUC.Search(f.ctx, "   ")
		require.NoError(t, err)
		assert.Empty(t, views)
	})
}

func TestItemAddComment(t *testing.T) {
	f := newFixture(t)
	owner := f.addUser(t, "Owner", "owner@example.com")
	booker := f.addUser(t, "Booker", "booker@example.com")
	stranger := f.addUser(t, "Stranger", "stranger@example.com")
	itemID := f.addItem(t, owner, "Drill", true)

	created, err := f.bookings.Create(f.ctx, booker, params(itemID, hours(1), hours(2)))
	require.NoError(t, err)
	_, err = f.bookings.Decide(f.ctx, created.ID, owner, true)
	require.NoError(t, err)

	t.Run("before the booking finished", func(t *testing.T) {
		_, err := f.itemsUC.AddComment(f.ctx, itemID, booker, "great drill")
		require.ErrorIs(t, err, usecase.ErrCommentNotAllowed)
	})

	// The booking ends at hours(2); move past it.
	f.clock.Set(hours(3))

	t.Run("after the booking finished", func(t *testing.T) {
		view, err := f.itemsUC.AddComment(f.ctx, itemID, booker, "great drill")
		require.NoError(t, err)
		assert.Equal(t, "great drill", view.Text)
		assert.Equal(t, "Booker", view.AuthorName)
		assert.Equal(t, hours(3), view.Created)
	})

	t.Run("comment shows up on the item", func(t *testing.T) {
		view, err := f.itemsUC.GetByID(f.ctx, itemID, stranger)
		require.NoError(t, err)
		require.Len(t, view.Comments, 1)
		assert.Equal(t, "great drill", view.Comments[0].Text)
	})

	t.Run("user without finished booking", func(t *testing.T) {
		_, err := f.itemsUC.AddComment(f.ctx, itemID, stranger, "never used it")
		require.ErrorIs(t, err, usecase.ErrCommentNotAllowed)
	})

	t.Run("blank text", func(t *testing.T) {
		_, err := f.itemsUC.AddComment(f.ctx, itemID, booker, "  ")
		require.ErrorIs(t, err, usecase.ErrValidation)
	})
}

func TestItemListByOwner(t *testing.T) {
	f := newFixture(t)
	owner := f.addUser(t, "Owner", "owner@example.com")
	booker := f.addUser(t, "Booker", "booker@example.com")
	itemID := f.addItem(t, owner, "Drill", true)
	f.addItem(t, owner, "Saw", true)

	created, err := f.bookings.Create(f.ctx, booker, params(itemID, hours(1), hours(2)))
	require.NoError(t, err)
	_, err = f.bookings.Decide(f.ctx, created.ID, owner, true)
	require.NoError(t, err)
	f.clock.Set(hours(3))

	views, err := f.itemsUC.ListByOwner(f.ctx, owner)
	require.NoError(t, err)
	require.Len(t, views, 2)

	var drill *usecase.ItemView
	for _, v := range views {
		if v.Name == "Drill" {
			drill = v
		}
	}
	require.NotNil(t, drill)
	require.NotNil(t, drill.LastBooking)
	assert.Equal(t, created.ID, drill.LastBooking.ID)
	assert.Nil(t, drill.NextBooking)
}
