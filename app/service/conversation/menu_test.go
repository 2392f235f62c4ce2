package conversation

import (
	"reflect"
	"testing"
)

func TestRemainingCategories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		vocabulary []string
		selected   []string
		want       []string
	}{
		{
			name:       "nothing selected returns sorted vocabulary",
			vocabulary: []string{"Shelter", "Food", "Clothing"},
			selected:   nil,
			want:       []string{"Clothing", "Food", "Shelter"},
		},
		{
			name:       "selected entries are excluded",
			vocabulary: []string{"Shelter", "Food", "Clothing"},
			selected:   []string{"Food"},
			want:       []string{"Clothing", "Shelter"},
		},
		{
			name:       "everything selected leaves nothing",
			vocabulary: []string{"Food", "Clothing"},
			selected:   []string{"Clothing", "Food"},
			want:       []string{},
		},
		{
			name:       "selection outside vocabulary is ignored",
			vocabulary: []string{"Food"},
			selected:   []string{"Clothing"},
			want:       []string{"Food"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := remainingCategories(tt.vocabulary, tt.selected)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("remainingCategories() = %v, want %v", got, tt.want)
			}
		})
	}
}
