package model

import (
	"time"

	"github.com/rs/xid"
)

// NewID returns a time-prefixed, sortable unique bookmark ID.
func NewID() string {
	return xid.New().String()
}

// IDTime returns the creation time encoded in an ID made by NewID. IDs
// from other sources report false.
func IDTime(id string) (time.Time, bool) {
	x, err := xid.FromString(id)
	if err != nil {
		return time.Time{}, false
	}
	return x.Time(), true
}
