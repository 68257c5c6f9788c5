package names

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Aaron Judge", "aaron judge"},
		{"Ronald Acuña Jr.", "ronald acuna"},
		{"  Vladimir   Guerrero Jr ", "vladimir guerrero"},
		{"José Ramírez", "jose ramirez"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name       string
		search     string
		candidates []string
		want       string
	}{
		{
			name:       "statcast format",
			search:     "Aaron Judge",
			candidates: []string{"Judge, Aaron", "Nola, Aaron"},
			want:       "Judge, Aaron",
		},
		{
			name:       "shared first name is not a match",
			search:     "Aaron Judge",
			candidates: []string{"Smith, Aaron"},
			want:       "",
		},
		{
			name:       "exact match wins",
			search:     "Shohei Ohtani",
			candidates: []string{"Shohei Ohtani", "Ohtani, Shohei"},
			want:       "Shohei Ohtani",
		},
		{
			name:       "first initial with exact last name",
			search:     "J.D. Martinez",
			candidates: []string{"Martinez, Jose"},
			want:       "Martinez, Jose",
		},
		{
			name:       "nickname variant",
			search:     "Mike Trout",
			candidates: []string{"Trout, Michael"},
			want:       "Trout, Michael",
		},
		{
			name:       "nickname reverse direction",
			search:     "Michael Harris",
			candidates: []string{"Harris, Mike"},
			want:       "Harris, Mike",
		},
		{
			name:       "suffix in candidate",
			search:     "Ronald Acuna Jr.",
			candidates: []string{"Acuna Jr., Ronald"},
			want:       "Acuna Jr., Ronald",
		},
		{
			name:       "single token search",
			search:     "Judge",
			candidates: []string{"Judge, Aaron"},
			want:       "",
		},
		{
			name:       "empty candidates",
			search:     "Aaron Judge",
			candidates: nil,
			want:       "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Match(tt.search, tt.candidates); got != tt.want {
				t.Errorf("Match(%q, %v) = %q, want %q", tt.search, tt.candidates, got, tt.want)
			}
		})
	}
}

func TestToStatcast(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Aaron Judge", "Judge, Aaron"},
		{"Ronald Acuna Jr.", "Acuna Jr., Ronald"},
		{"Vladimir Guerrero Jr", "Guerrero Jr, Vladimir"},
		{"Ohtani", "Ohtani"},
		{"Jazz Chisholm Jr.", "Chisholm Jr., Jazz"},
	}
	for _, tt := range tests {
		if got := ToStatcast(tt.in); got != tt.want {
			t.Errorf("ToStatcast(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFromStatcast(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Judge, Aaron", "Aaron Judge"},
		{"Acuna Jr., Ronald", "Ronald Acuna Jr."},
		{"Aaron Judge", "Aaron Judge"},
	}
	for _, tt := range tests {
		if got := FromStatcast(tt.in); got != tt.want {
			t.Errorf("FromStatcast(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
