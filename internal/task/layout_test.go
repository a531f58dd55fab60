package task

import (
	"testing"
	"time"
	_ "time/tzdata"
)

func TestParseInput(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{input: "2/12/2023 1800", want: date(2023, time.December, 2, 18, 0)},
		{input: "1/1/2024 0900", want: date(2024, time.January, 1, 9, 0)},
		{input: "02/03/2024 0000", want: date(2024, time.March, 2, 0, 0)},
		{input: " 15/6/2025 2359 ", want: date(2025, time.June, 15, 23, 59)},
		{input: "2023-12-02 1800", wantErr: true},
		{input: "2/12/2023 18:00", wantErr: true},
		{input: "2/12/23 1800", wantErr: true},
		{input: "32/1/2024 1000", wantErr: true},
		{input: "1/13/2024 1000", wantErr: true},
		{input: "1/1/2024 2500", wantErr: true},
		{input: "tomorrow", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseInput(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseInput(%q): expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseInput(%q): %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseInput(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestStorageRoundTrip(t *testing.T) {
	times := []time.Time{
		date(2023, time.December, 2, 18, 0),
		date(1999, time.February, 28, 0, 1),
		time.Date(2024, time.July, 4, 12, 30, 45, 0, time.UTC),
	}
	for _, want := range times {
		s := FormatStorage(want)
		got, err := ParseStorage(s)
		if err != nil {
			t.Fatalf("ParseStorage(%q): %v", s, err)
		}
		if !got.Equal(want) {
			t.Errorf("round trip %q: got %v, want %v", s, got, want)
		}
	}
}

func TestStorageFormatIsISO(t *testing.T) {
	got := FormatStorage(date(2023, time.December, 2, 18, 0))
	if got != "2023-12-02T18:00" {
		t.Errorf("FormatStorage: got %q, want 2023-12-02T18:00", got)
	}
	if _, err := ParseStorage("Dec 02 2023, 06:00 PM"); err == nil {
		t.Error("display form must not parse as storage form")
	}
	if _, err := ParseStorage("2/12/2023 1800"); err == nil {
		t.Error("input form must not parse as storage form")
	}
}

func TestFormatDisplay(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{date(2023, time.December, 2, 18, 0), "Dec 02 2023, 06:00 PM"},
		{date(2024, time.January, 1, 0, 5), "Jan 01 2024, 12:05 AM"},
		{date(2024, time.January, 1, 12, 0), "Jan 01 2024, 12:00 PM"},
	}
	for _, tt := range tests {
		if got := FormatDisplay(tt.in); got != tt.want {
			t.Errorf("FormatDisplay(%v): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWallClockIgnoresLocalZone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	saved := time.Local
	time.Local = ny
	t.Cleanup(func() { time.Local = saved })

	// 02:30 on Mar 10 2024 does not exist in New York.
	got, err := ParseInput("10/3/2024 0230")
	if err != nil {
		t.Fatalf("ParseInput: %v", err)
	}
	if s := FormatDisplay(got); s != "Mar 10 2024, 02:30 AM" {
		t.Errorf("FormatDisplay = %q, want Mar 10 2024, 02:30 AM", s)
	}
	if s := FormatStorage(got); s != "2024-03-10T02:30" {
		t.Errorf("FormatStorage = %q, want 2024-03-10T02:30", s)
	}

	stored, err := ParseStorage("2024-03-10T02:30")
	if err != nil {
		t.Fatalf("ParseStorage: %v", err)
	}
	if !stored.Equal(got) {
		t.Errorf("ParseStorage = %v, want %v", stored, got)
	}
}
