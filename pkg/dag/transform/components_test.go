package transform

import (
	"reflect"
	"testing"
)

func TestComponents(t *testing.T) {
	tests := []struct {
		name  string
		ids   []string
		edges [][2]string
		want  [][]string
	}{
		{"empty", nil, nil, [][]string{}},
		{"single", []string{"a"}, nil, [][]string{{"a"}}},
		{
			name:  "two islands",
			ids:   []string{"a", "b", "c", "d"},
			edges: [][2]string{{"a", "b"}, {"d", "c"}},
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "joined through target",
			ids:   []string{"a", "x", "b"},
			edges: [][2]string{{"a", "b"}, {"x", "b"}},
			want:  [][]string{{"a", "x", "b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Components(build(t, tt.ids, tt.edges))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Components() = %v, want %v", got, tt.want)
			}
		})
	}
}
