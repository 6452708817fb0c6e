package usecase

import (
	"reflect"
	"testing"
)

func TestParseBatchInput(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		maxQueries  int
		minLength   int
		want        []string
		wantDropped int
	}{
		{
			name:       "two comma-separated queries",
			raw:        "cafea lavazza, mancare caini",
			maxQueries: 5,
			minLength:  2,
			want:       []string{"cafea lavazza", "mancare caini"},
		},
		{
			name:       "period and slash also separate",
			raw:        "lapte. paine/oua",
			maxQueries: 5,
			minLength:  2,
			want:       []string{"lapte", "paine", "oua"},
		},
		{
			name:       "short fragments are discarded",
			raw:        "tv, a, ,  b , televizor",
			maxQueries: 5,
			minLength:  2,
			want:       []string{"tv", "televizor"},
		},
		{
			name:       "duplicate queries collapse, first wins",
			raw:        "cafea, lapte, cafea",
			maxQueries: 5,
			minLength:  2,
			want:       []string{"cafea", "lapte"},
		},
		{
			name:        "cap drops excess fragments in order",
			raw:         "unu doi, trei patru, cinci sase, sapte opt, noua zece, unsprezece",
			maxQueries:  5,
			minLength:   2,
			want:        []string{"unu doi", "trei patru", "cinci sase", "sapte opt", "noua zece"},
			wantDropped: 1,
		},
		{
			name:       "internal whitespace collapses",
			raw:        "  cafea   boabe  ",
			maxQueries: 5,
			minLength:  2,
			want:       []string{"cafea boabe"},
		},
		{
			name:       "nothing usable",
			raw:        ", . / a",
			maxQueries: 5,
			minLength:  2,
			want:       nil,
		},
		{
			name:       "min length counts runes not bytes",
			raw:        "șa",
			maxQueries: 5,
			minLength:  2,
			want:       []string{"șa"},
		},
		{
			name:       "zero limits fall back to defaults",
			raw:        "cafea, lapte",
			maxQueries: 0,
			minLength:  0,
			want:       []string{"cafea", "lapte"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, dropped := ParseBatchInput(tt.raw, tt.maxQueries, tt.minLength)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("queries = %v, want %v", got, tt.want)
			}
			if dropped != tt.wantDropped {
				t.Errorf("dropped = %d, want %d", dropped, tt.wantDropped)
			}
		})
	}
}
