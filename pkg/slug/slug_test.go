package slug

import "testing"

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "episode title with punctuation",
			input: "Episode 12: A Cool Title!",
			want:  "episode-12-a-cool-title",
		},
		{
			name:  "already a slug",
			input: "already-a-slug",
			want:  "already-a-slug",
		},
		{
			name:  "underscores are kept",
			input: "snake_case Title",
			want:  "snake_case-title",
		},
		{
			name:  "repeated separators collapse",
			input: "Rock -- and -- Roll",
			want:  "rock-and-roll",
		},
		{
			name:  "leading and trailing punctuation",
			input: "  ...Hello, World...  ",
			want:  "hello-world",
		},
		{
			name:  "accents are transliterated",
			input: "Motörhead Café",
			want:  "motorhead-cafe",
		},
		{
			name:  "ligatures are approximated",
			input: "Straße Æon",
			want:  "strasse-aeon",
		},
		{
			name:  "curly quotes become separators",
			input: "The “Punk” Issue",
			want:  "the-punk-issue",
		},
		{
			name:  "ampersand is dropped",
			input: "Salt & Pepper",
			want:  "salt-pepper",
		},
		{
			name:  "time-like title",
			input: "1:55",
			want:  "1-55",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "only punctuation",
			input: "?!",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Make(tt.input); got != tt.want {
				t.Errorf("Make(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMake_Stable(t *testing.T) {
	const title = "Episode 40: Süper Nöise"
	first := Make(title)
	for i := 0; i < 5; i++ {
		if got := Make(title); got != first {
			t.Fatalf("Make() not stable: %q then %q", first, got)
		}
	}
}
