package search

import "testing"

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want Traits
	}{
		{
			"plain album",
			Request{Artist: "Radiohead", Album: "OK Computer"},
			0,
		},
		{
			"self-titled",
			Request{Artist: "Pink Floyd", Album: "Pink Floyd"},
			TraitSelfTitled,
		},
		{
			"self-titled with suffix",
			Request{Artist: "Weezer", Album: "Weezer (Blue Album)"},
			TraitSelfTitled | TraitNeedsNormalization,
		},
		{
			"short name",
			Request{Artist: "Autechre", Album: "EP7"},
			TraitShortName,
		},
		{
			"various artists with volume",
			Request{Artist: "Various Artists", Album: "Now That's What I Call Music Vol. 3"},
			TraitVariousArtists | TraitHasVolume | TraitNeedsNormalization,
		},
		{
			"standalone roman numeral",
			Request{Artist: "Led Zeppelin", Album: "Led Zeppelin IV"},
			TraitSelfTitled | TraitHasRomanNumeral,
		},
		{
			"volume phrase with roman value",
			Request{Artist: "Bal-Sagoth", Album: "The Chthonic Chronicles Part II"},
			TraitHasVolume | TraitNeedsNormalization,
		},
		{
			"diacritics",
			Request{Artist: "Sigur Rós", Album: "Takk"},
			TraitNeedsNormalization,
		},
		{
			"ep needs disambiguation",
			Request{Artist: "Burial", Album: "Rival Dealer", ReleaseType: ReleaseTypeEP},
			0,
		},
		{
			"single word ep",
			Request{Artist: "Foals", Album: "Hummer", ReleaseType: ReleaseTypeEP},
			TraitNeedsTypeDisambiguation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Analyze(tt.req); got != tt.want {
				t.Errorf("Analyze(%q/%q) = %v, want %v", tt.req.Artist, tt.req.Album, got, tt.want)
			}
		})
	}
}

func TestTraitsHas(t *testing.T) {
	tr := TraitSelfTitled | TraitHasVolume
	if !tr.Has(TraitSelfTitled) {
		t.Error("expected TraitSelfTitled")
	}
	if !tr.Has(TraitSelfTitled | TraitHasVolume) {
		t.Error("expected combined traits")
	}
	if tr.Has(TraitVariousArtists) {
		t.Error("did not expect TraitVariousArtists")
	}
}

func TestTraitsString(t *testing.T) {
	if got := Traits(0).String(); got != "none" {
		t.Errorf("Traits(0).String() = %q, want %q", got, "none")
	}
	tr := TraitSelfTitled | TraitHasVolume
	if got := tr.String(); got != "self-titled,volume" {
		t.Errorf("String() = %q", got)
	}
}
