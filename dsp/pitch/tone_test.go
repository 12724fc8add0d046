package pitch

import "testing"

func TestIsToneWithOptions(t *testing.T) {
	tests := []struct {
		name             string
		nsdf             []float64
		clarityThreshold float64
		clarityTolerance float64
		want             bool
	}{
		{
			name:             "double period confirms",
			nsdf:             []float64{1, 0.5, -0.2, 0.6, 0.95, 0.6, -0.3, 0.7, 0.93, 0.7, -0.2, -0.1},
			clarityThreshold: DefaultClarityThreshold,
			clarityTolerance: DefaultClarityTolerance,
			want:             true,
		},
		{
			name:             "double period off by a quarter",
			nsdf:             []float64{1, 0.5, -0.2, 0.6, 0.95, 0.6, -0.3, 0.1, 0.7, 0.93, 0.7, -0.2},
			clarityThreshold: DefaultClarityThreshold,
			clarityTolerance: DefaultClarityTolerance,
			want:             false,
		},
		{
			name:             "double period too weak",
			nsdf:             []float64{1, 0.5, -0.2, 0.6, 0.95, 0.6, -0.3, 0.2, 0.3, 0.2, -0.2, -0.1},
			clarityThreshold: DefaultClarityThreshold,
			clarityTolerance: DefaultClarityTolerance,
			want:             false,
		},
		{
			name:             "weak double period within wider tolerance",
			nsdf:             []float64{1, 0.5, -0.2, 0.6, 0.95, 0.6, -0.3, 0.2, 0.3, 0.2, -0.2, -0.1},
			clarityThreshold: DefaultClarityThreshold,
			clarityTolerance: 0.7,
			want:             true,
		},
		{
			name:             "maximum at last lag ignored",
			nsdf:             []float64{1, 0.5, -0.2, 0.6, 0.95, 0.6, -0.3, 0.2, 0.4},
			clarityThreshold: DefaultClarityThreshold,
			clarityTolerance: DefaultClarityTolerance,
			want:             true,
		},
		{
			name:             "clarity below threshold",
			nsdf:             []float64{1, 0.5, -0.2, 0.6, 0.95, 0.6, -0.3, 0.2, 0.4},
			clarityThreshold: 0.96,
			clarityTolerance: DefaultClarityTolerance,
			want:             false,
		},
		{
			name:             "single weak lobe",
			nsdf:             []float64{1, -0.2, 0.5, 0.8, 0.5, -0.3},
			clarityThreshold: DefaultClarityThreshold,
			clarityTolerance: DefaultClarityTolerance,
			want:             false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := resultWithNSDF(t, tt.nsdf, 1000)
			if !r.IsValid() {
				t.Fatal("result is not valid")
			}
			got := r.IsToneWithOptions(tt.clarityThreshold, tt.clarityTolerance, DefaultPeriodTolerance)
			if got != tt.want {
				t.Fatalf("IsToneWithOptions() = %v, want %v (maxima %+v)", got, tt.want, r.KeyMaxima())
			}
		})
	}
}

func TestIsToneDefaults(t *testing.T) {
	r := resultWithNSDF(t, []float64{1, 0.5, -0.2, 0.6, 0.95, 0.6, -0.3, 0.7, 0.93, 0.7, -0.2, -0.1}, 1000)
	if !r.IsTone() {
		t.Fatal("IsTone() = false, want true")
	}
	if r.Frequency() != 250 {
		t.Fatalf("Frequency() = %v, want 250", r.Frequency())
	}
}
