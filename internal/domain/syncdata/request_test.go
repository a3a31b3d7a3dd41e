package syncdata

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewRequest(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)

	req, err := NewRequest("user-1", []Kind{KindHealth}, start, end)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	if req.UserID != "user-1" {
		t.Errorf("UserID = %q, want %q", req.UserID, "user-1")
	}
	if len(req.Kinds) != 1 || req.Kinds[0] != KindHealth {
		t.Errorf("Kinds = %v, want [health]", req.Kinds)
	}
}

func TestNewRequestDefaultsToAllKinds(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	req, err := NewRequest("user-1", nil, start, start.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	if len(req.Kinds) != 3 {
		t.Fatalf("Kinds = %v, want all three", req.Kinds)
	}
	for i, want := range []Kind{KindActivities, KindHealth, KindTraining} {
		if req.Kinds[i] != want {
			t.Errorf("Kinds[%d] = %v, want %v", i, req.Kinds[i], want)
		}
	}
}

func TestNewRequestInvalidRange(t *testing.T) {
	start := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	if _, err := NewRequest("user-1", nil, start, end); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("NewRequest() error = %v, want ErrInvalidRange", err)
	}
}

func TestNewRequestSingleInstantWindow(t *testing.T) {
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	if _, err := NewRequest("user-1", nil, at, at); err != nil {
		t.Errorf("NewRequest() with equal start and end = %v, want nil", err)
	}
}

func TestNewRequestInvalidKind(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := NewRequest("user-1", []Kind{KindHealth, Kind("wellness")}, start, start.AddDate(0, 0, 1))
	if !errors.Is(err, ErrInvalidDataType) {
		t.Fatalf("NewRequest() error = %v, want ErrInvalidDataType", err)
	}
	// the offending value is named
	if got := err.Error(); !strings.Contains(got, "wellness") {
		t.Errorf("error %q does not name the invalid kind", got)
	}
}
