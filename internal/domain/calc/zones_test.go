package calc

import (
	"errors"
	"testing"
)

func TestHeartRateZonesKarvonen(t *testing.T) {
	zones, err := HeartRateZones(60, 190, MethodKarvonen)
	if err != nil {
		t.Fatalf("HeartRateZones() error = %v", err)
	}

	// reserve = 130; zone bounds at resting + reserve * band
	expected := [5][2]int{
		{125, 138},
		{138, 151},
		{151, 164},
		{164, 177},
		{177, 190},
	}
	for i, want := range expected {
		if zones[i].MinHR != want[0] || zones[i].MaxHR != want[1] {
			t.Errorf("zone %d = [%d, %d], want [%d, %d]",
				i+1, zones[i].MinHR, zones[i].MaxHR, want[0], want[1])
		}
	}

	if zones[0].Name != "Active Recovery" {
		t.Errorf("zone 1 name = %q, want %q", zones[0].Name, "Active Recovery")
	}
	if zones[4].Intensity != "90-100% HRR" {
		t.Errorf("zone 5 intensity = %q, want %q", zones[4].Intensity, "90-100% HRR")
	}
}

func TestHeartRateZonesPercentage(t *testing.T) {
	zones, err := HeartRateZones(60, 190, MethodPercentage)
	if err != nil {
		t.Fatalf("HeartRateZones() error = %v", err)
	}

	expected := [5][2]int{
		{95, 114},
		{114, 133},
		{133, 152},
		{152, 171},
		{171, 190},
	}
	for i, want := range expected {
		if zones[i].MinHR != want[0] || zones[i].MaxHR != want[1] {
			t.Errorf("zone %d = [%d, %d], want [%d, %d]",
				i+1, zones[i].MinHR, zones[i].MaxHR, want[0], want[1])
		}
	}
	if zones[0].Intensity != "50-60% Max HR" {
		t.Errorf("zone 1 intensity = %q, want %q", zones[0].Intensity, "50-60% Max HR")
	}
}

func TestHeartRateZonesBoundsMonotonic(t *testing.T) {
	profiles := [][2]int{{40, 180}, {60, 190}, {75, 165}, {50, 205}}

	for _, p := range profiles {
		for _, method := range []ZoneMethod{MethodKarvonen, MethodPercentage} {
			zones, err := HeartRateZones(p[0], p[1], method)
			if err != nil {
				t.Fatalf("HeartRateZones(%d, %d, %s) error = %v", p[0], p[1], method, err)
			}
			for i := range zones {
				if zones[i].MaxHR < zones[i].MinHR {
					t.Errorf("%s resting=%d max=%d: zone %d inverted", method, p[0], p[1], i+1)
				}
				if i > 0 && zones[i].MinHR < zones[i-1].MaxHR {
					t.Errorf("%s resting=%d max=%d: zone %d overlaps zone %d", method, p[0], p[1], i+1, i)
				}
			}
			if zones[4].MaxHR != p[1] {
				t.Errorf("%s resting=%d max=%d: zone 5 max = %d, want %d",
					method, p[0], p[1], zones[4].MaxHR, p[1])
			}
		}
	}
}

func TestHeartRateZonesInvalidProfile(t *testing.T) {
	tests := []struct {
		name      string
		restingHR int
		maxHR     int
	}{
		{"max below resting", 80, 70},
		{"max equals resting", 80, 80},
		{"zero resting", 0, 180},
		{"negative max", 60, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := HeartRateZones(tt.restingHR, tt.maxHR, MethodKarvonen); !errors.Is(err, ErrInvalidProfile) {
				t.Errorf("HeartRateZones(%d, %d) error = %v, want ErrInvalidProfile",
					tt.restingHR, tt.maxHR, err)
			}
		})
	}
}
