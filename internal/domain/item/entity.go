package item

import (
	"errors"
	"strings"
)

const (
	maxNameLen        = 255
	maxDescriptionLen = 1000
)

var (
	ErrEmptyName          = errors.New("item name must not be blank")
	ErrNameTooLong        = errors.New("item name is too long")
	ErrEmptyDescription   = errors.New("item description must not be blank")
	ErrDescriptionTooLong = errors.New("item description is too long")
)

// Item is a shareable thing listed by its owner. The owner reference is
// immutable; name, description and the available flag may be patched by
// the owner.
type Item struct {
	id          int64
	name        string
	description string
	available   bool
	ownerID     int64
	requestID   *int64
}

// NewItem validates and builds an unpersisted item; the store assigns
// the id on insert.
func NewItem(name, description string, available bool, ownerID int64, requestID *int64) (*Item, error) {
	it := &Item{available: available, ownerID: ownerID, requestID: requestID}
	if err := it.setName(name); err != nil {
		return nil, err
	}
	if err := it.setDescription(description); err != nil {
		return nil, err
	}
	return it, nil
}

func Reconstruct(id int64, name, description string, available bool, ownerID int64, requestID *int64) *Item {
	return &Item{
		id:          id,
		name:        name,
		description: description,
		available:   available,
		ownerID:     ownerID,
		requestID:   requestID,
	}
}

// Patch applies a partial update; nil fields are left unchanged.
func (i *Item) Patch(name, description *string, available *bool, requestID *int64) error {
	if name != nil {
		if err := i.setName(*name); err != nil {
			return err
		}
	}
	if description != nil {
		if err := i.setDescription(*description); err != nil {
			return err
		}
	}
	if available != nil {
		i.available = *available
	}
	if requestID != nil {
		i.requestID = requestID
	}
	return nil
}

func (i *Item) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if len(name) > maxNameLen {
		return ErrNameTooLong
	}
	i.name = name
	return nil
}

func (i *Item) setDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return ErrEmptyDescription
	}
	if len(description) > maxDescriptionLen {
		return ErrDescriptionTooLong
	}
	i.description = description
	return nil
}

func (i *Item) IsOwnedBy(userID int64) bool {
	return i.ownerID == userID
}

// MatchesText is the search predicate: case-insensitive substring match on
// name or description. Blank queries are rejected upstream.
func (i *Item) MatchesText(lowered string) bool {
	return strings.Contains(strings.ToLower(i.name), lowered) ||
		strings.Contains(strings.ToLower(i.description), lowered)
}

func (i *Item) ID() int64           { return i.id }
func (i *Item) Name() string        { return i.name }
func (i *Item) Description() string { return i.description }
func (i *Item) Available() bool     { return i.available }
func (i *Item) OwnerID() int64      { return i.ownerID }
func (i *Item) RequestID() *int64   { return i.requestID }
