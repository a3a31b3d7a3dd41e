// Package syncdata defines the contract for batches of raw device readings
// pulled from an external data source: the shape of a synchronization
// request and the validation applied to fetched records before anything
// downstream consumes them. Like the calculation package it is pure; the
// actual fetching lives behind the ingest API.
package syncdata

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidRange    = errors.New("invalid date range")
	ErrInvalidDataType = errors.New("invalid sync data type")
)

// Kind partitions synced records by what they describe.
type Kind string

const (
	KindActivities Kind = "activities"
	KindHealth     Kind = "health"
	KindTraining   Kind = "training"
)

// AllKinds returns every supported kind, in validation order.
func AllKinds() []Kind {
	return []Kind{KindActivities, KindHealth, KindTraining}
}

func validKind(k Kind) bool {
	switch k {
	case KindActivities, KindHealth, KindTraining:
		return true
	}
	return false
}

// Request describes one pull from the external data source: which user,
// which kinds, over which closed time window.
type Request struct {
	UserID string    `json:"user_id"`
	Kinds  []Kind    `json:"kinds"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

// NewRequest builds a sync request, defaulting an empty kind list to all
// kinds. The window must not end before it starts; a single-instant window
// is valid.
func NewRequest(userID string, kinds []Kind, start, end time.Time) (Request, error) {
	if end.Before(start) {
		return Request{}, fmt.Errorf("%w: end %s before start %s",
			ErrInvalidRange, end.Format(time.RFC3339), start.Format(time.RFC3339))
	}

	if len(kinds) == 0 {
		kinds = AllKinds()
	} else {
		for _, k := range kinds {
			if !validKind(k) {
				return Request{}, fmt.Errorf("%w: %q", ErrInvalidDataType, string(k))
			}
		}
	}

	return Request{
		UserID: userID,
		Kinds:  kinds,
		Start:  start,
		End:    end,
	}, nil
}
