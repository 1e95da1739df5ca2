package cli

import (
	"strings"
	"testing"
	"time"
)

func TestParseDayFlag(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty defaults to today", "", false},
		{"valid date", "2026-03-02", false},
		{"wrong format", "02-03-2026", true},
		{"not a date", "soon", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, err := parseDayFlag(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if day.Hour() != 0 || day.Minute() != 0 {
				t.Errorf("expected a midnight-anchored day, got %v", day)
			}
		})
	}
}

func TestParseDayFlagParsesDate(t *testing.T) {
	day, err := parseDayFlag("2026-03-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if day.Year() != 2026 || day.Month() != time.March || day.Day() != 2 {
		t.Errorf("parsed day = %v, want 2026-03-02", day)
	}
}

func TestParseClockOnDay(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	got, err := parseClockOnDay(day, "14:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("parseClockOnDay = %v, want %v", got, want)
	}

	if _, err := parseClockOnDay(day, "half past two"); err == nil {
		t.Error("expected error for malformed clock value")
	}
}

func TestParseSinceDuration(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		errMsg  string
	}{
		{"empty defaults to 7d", "", false, ""},
		{"valid 7d", "7d", false, ""},
		{"valid 24h", "24h", false, ""},
		{"invalid suffix", "abc", true, "unsupported duration format"},
		{"invalid day number", "xd", true, "invalid day duration"},
		{"invalid hour number", "yh", true, "invalid hour duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSinceDuration(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errMsg)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestTruncateTitle(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly ten..", 13, "exactly ten.."},
		{"a very long activity title", 10, "a very ..."},
	}

	for _, tt := range tests {
		if got := truncateTitle(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("truncateTitle(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}
