package textnorm

import "testing"

func TestParseVolumePhrase(t *testing.T) {
	tests := []struct {
		name          string
		album         string
		wantOK        bool
		wantIndicator string
		wantNumber    int
		wantStyle     NumberStyle
	}{
		{
			name:          "vol dot arabic",
			album:         "Now That's What I Call Music Vol. 3",
			wantOK:        true,
			wantIndicator: "Vol.",
			wantNumber:    3,
			wantStyle:     StyleArabic,
		},
		{
			name:          "part roman",
			album:         "The Wall Part IV",
			wantOK:        true,
			wantIndicator: "Part",
			wantNumber:    4,
			wantStyle:     StyleRoman,
		},
		{
			name:          "volume word",
			album:         "Guardians of the Galaxy: Awesome Mix Volume Two",
			wantOK:        true,
			wantIndicator: "Volume",
			wantNumber:    2,
			wantStyle:     StyleWord,
		},
		{
			name:          "chapter",
			album:         "Chapter 2: The After Math",
			wantOK:        true,
			wantIndicator: "Chapter",
			wantNumber:    2,
			wantStyle:     StyleArabic,
		},
		{
			name:       "bare trailing number",
			album:      "Bad Boys 2",
			wantOK:     true,
			wantNumber: 2,
			wantStyle:  StyleArabic,
		},
		{
			name:   "no phrase",
			album:  "The Dark Side of the Moon",
			wantOK: false,
		},
		{
			name:   "empty",
			album:  "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := ParseVolumePhrase(tt.album)
			if ok != tt.wantOK {
				t.Fatalf("ParseVolumePhrase(%q) ok = %v, want %v", tt.album, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if p.Indicator != tt.wantIndicator {
				t.Errorf("indicator = %q, want %q", p.Indicator, tt.wantIndicator)
			}
			if p.Number != tt.wantNumber {
				t.Errorf("number = %d, want %d", p.Number, tt.wantNumber)
			}
			if p.Style != tt.wantStyle {
				t.Errorf("style = %d, want %d", p.Style, tt.wantStyle)
			}
		})
	}
}

func TestConvertVolumeFormatRoundTrip(t *testing.T) {
	// Converting to another representation and back with the original
	// indicator recovers the original spelling and an equal value.
	tests := []struct {
		album     string
		indicator string
		style     NumberStyle
	}{
		{"Now That's What I Call Music Vol. 3", "Vol.", StyleArabic},
		{"The Wall Part IV", "Part", StyleRoman},
		{"Awesome Mix Volume 2", "Volume", StyleArabic},
	}

	for _, tt := range tests {
		t.Run(tt.album, func(t *testing.T) {
			flipped, ok := FlipVolumeNumber(tt.album)
			if !ok {
				t.Fatalf("FlipVolumeNumber(%q) did not convert", tt.album)
			}
			if flipped == tt.album {
				t.Fatalf("FlipVolumeNumber(%q) returned input", tt.album)
			}
			back, ok := ConvertVolumeFormat(flipped, tt.indicator, tt.style)
			if !ok {
				t.Fatalf("ConvertVolumeFormat(%q) failed", flipped)
			}
			if back != tt.album {
				t.Errorf("round trip = %q, want %q", back, tt.album)
			}
			if VolumeNumber(back) != VolumeNumber(tt.album) {
				t.Errorf("volume number changed: %d vs %d", VolumeNumber(back), VolumeNumber(tt.album))
			}
		})
	}
}

func TestFlipVolumeNumber(t *testing.T) {
	got, ok := FlipVolumeNumber("Greatest Hits Vol. II")
	if !ok || got != "Greatest Hits Vol. 2" {
		t.Errorf("FlipVolumeNumber = %q (ok=%v), want %q", got, ok, "Greatest Hits Vol. 2")
	}

	got, ok = FlipVolumeNumber("Greatest Hits Vol. 2")
	if !ok || got != "Greatest Hits Vol. II" {
		t.Errorf("FlipVolumeNumber = %q (ok=%v), want %q", got, ok, "Greatest Hits Vol. II")
	}

	if _, ok := FlipVolumeNumber("No Numbering Here"); ok {
		t.Error("expected no conversion for album without volume phrase")
	}
}

func TestStripVolumePhrase(t *testing.T) {
	got, ok := StripVolumePhrase("Now That's What I Call Music Vol. 3")
	if !ok || got != "Now That's What I Call Music" {
		t.Errorf("StripVolumePhrase = %q (ok=%v)", got, ok)
	}

	// Too few words to safely strip.
	if _, ok := StripVolumePhrase("Greatest Vol. 2"); ok {
		t.Error("expected short title to be rejected")
	}

	// Bare trailing numbers have no indicator to strip.
	if _, ok := StripVolumePhrase("One Two Three Four Bad Boys 2"); ok {
		t.Error("expected bare number title to be rejected")
	}
}

func TestHasStandaloneRoman(t *testing.T) {
	tests := []struct {
		album string
		want  bool
	}{
		{"Led Zeppelin IV", true},
		{"Rocky IV (Original Soundtrack)", true},
		{"The Wall Part IV", false}, // consumed by the volume phrase
		{"Workout Mix", false},      // lowercase roman letters are words
		{"I Robot", false},          // bare pronoun
		{"The Dark Side of the Moon", false},
	}

	for _, tt := range tests {
		t.Run(tt.album, func(t *testing.T) {
			if got := HasStandaloneRoman(tt.album); got != tt.want {
				t.Errorf("HasStandaloneRoman(%q) = %v, want %v", tt.album, got, tt.want)
			}
		})
	}
}
