package sizing

import "testing"

func TestResolve_PriorityOrder(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		numCPU int
		want   int
	}{
		{
			name:   "explicit override wins",
			env:    map[string]string{EnvNumThreads: "6", EnvMaxProcs: "3"},
			numCPU: 8,
			want:   6,
		},
		{
			name:   "generic override when explicit absent",
			env:    map[string]string{EnvMaxProcs: "3"},
			numCPU: 8,
			want:   3,
		},
		{
			name:   "hardware count as last resort",
			env:    map[string]string{},
			numCPU: 8,
			want:   8,
		},
		{
			name:   "unparsable explicit falls through",
			env:    map[string]string{EnvNumThreads: "lots", EnvMaxProcs: "5"},
			numCPU: 8,
			want:   5,
		},
		{
			name:   "zero explicit falls through",
			env:    map[string]string{EnvNumThreads: "0"},
			numCPU: 4,
			want:   4,
		},
		{
			name:   "negative values fall through",
			env:    map[string]string{EnvNumThreads: "-2", EnvMaxProcs: "-1"},
			numCPU: 2,
			want:   2,
		},
		{
			name:   "whitespace is tolerated",
			env:    map[string]string{EnvNumThreads: " 12 "},
			numCPU: 4,
			want:   12,
		},
		{
			name:   "degenerate cpu probe clamps to one",
			env:    map[string]string{},
			numCPU: 0,
			want:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getenv := func(key string) string { return tt.env[key] }
			numCPU := func() int { return tt.numCPU }

			if got := Resolve(getenv, numCPU); got != tt.want {
				t.Errorf("Resolve() = %d, expected %d", got, tt.want)
			}
		})
	}
}
