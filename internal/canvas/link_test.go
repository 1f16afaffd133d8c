package canvas

import "testing"

func TestParseLinkHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   map[string]string
	}{
		{
			name:   "empty",
			header: "",
			want:   map[string]string{},
		},
		{
			name:   "canvas style",
			header: `<https://x/api/v1/courses?page=2>; rel="next", <https://x/api/v1/courses?page=1>; rel="first", <https://x/api/v1/courses?page=5>; rel="last"`,
			want: map[string]string{
				"next":  "https://x/api/v1/courses?page=2",
				"first": "https://x/api/v1/courses?page=1",
				"last":  "https://x/api/v1/courses?page=5",
			},
		},
		{
			name:   "entry without rel is skipped",
			header: `<https://x/a>, <https://x/b>; rel="next"`,
			want:   map[string]string{"next": "https://x/b"},
		},
		{
			name:   "last duplicate wins",
			header: `<https://x/1>; rel="next", <https://x/2>; rel="next"`,
			want:   map[string]string{"next": "https://x/2"},
		},
		{
			name:   "unquoted rel",
			header: `<https://x/2>; rel=next`,
			want:   map[string]string{"next": "https://x/2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseLinkHeader(tt.header)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("rel %q = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}
