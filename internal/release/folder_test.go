package release

import "testing"

func TestParseFolderName(t *testing.T) {
	tests := []struct {
		name string
		path string
		want Folder
	}{
		{
			name: "artist album year with quality tag",
			path: `@@abcde\Music\Pink Floyd - The Wall (1979) [FLAC]`,
			want: Folder{Artist: "Pink Floyd", Album: "The Wall", Year: "1979"},
		},
		{
			name: "year first",
			path: `/shared/music/1977 - Fleetwood Mac - Rumours`,
			want: Folder{Artist: "Fleetwood Mac", Album: "Rumours", Year: "1977"},
		},
		{
			name: "album year with artist parent",
			path: `/shared/Pink Floyd/The Wall (1979)`,
			want: Folder{Artist: "Pink Floyd", Album: "The Wall", Year: "1979"},
		},
		{
			name: "album year with generic parent",
			path: `/downloads/flac/The Wall (1979)`,
			want: Folder{Album: "The Wall", Year: "1979"},
		},
		{
			name: "artist album no year",
			path: `Radiohead - OK Computer`,
			want: Folder{Artist: "Radiohead", Album: "OK Computer"},
		},
		{
			name: "bare album with year elsewhere in path",
			path: `/music/1997/OK Computer`,
			want: Folder{Album: "OK Computer", Year: "1997"},
		},
		{
			name: "title parenthetical survives annotation stripping",
			path: `Oasis - (What's the Story) Morning Glory`,
			want: Folder{Artist: "Oasis", Album: "(What's the Story) Morning Glory"},
		},
		{
			name: "remaster annotation stripped",
			path: `Pink Floyd - The Wall (2011 Remastered) [320]`,
			want: Folder{Artist: "Pink Floyd", Album: "The Wall", Year: "2011"},
		},
		{
			name: "empty",
			path: "",
			want: Folder{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFolderName(tt.path)
			if got != tt.want {
				t.Errorf("ParseFolderName(%q) = %+v, want %+v", tt.path, got, tt.want)
			}
		})
	}
}

func TestUsableArtistDir(t *testing.T) {
	tests := []struct {
		parent string
		want   bool
	}{
		{"Pink Floyd", true},
		{"music", false},
		{"FLAC", false},
		{"Downloads", false},
		{"@@abcde", false},
		{"C:", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := usableArtistDir(tt.parent); got != tt.want {
			t.Errorf("usableArtistDir(%q) = %v, want %v", tt.parent, got, tt.want)
		}
	}
}
