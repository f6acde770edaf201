package translit

import "testing"

func TestToIAST(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want string
	}{
		{"गच्छति", "gacchati"},
		{"राम", "rāma"},
		{"सीता", "sītā"},
		{"धर्मः", "dharmaḥ"},
		{"वनं", "vanaṃ"},
		{"", ""},
		{"abc", "abc"},
	}
	for _, tc := range cases {
		if got := ToIAST(tc.in); got != tc.want {
			t.Fatalf("ToIAST(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
