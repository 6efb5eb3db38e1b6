package tensor

import "testing"

func TestShape_NumElements(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		want  int
	}{
		{"Scalar", Shape{}, 1},
		{"Vector", Shape{5}, 5},
		{"Matrix", Shape{3, 4}, 12},
		{"Rank3", Shape{2, 3, 4}, 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.shape.NumElements(); got != tt.want {
				t.Errorf("NumElements() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestShape_ComputeStrides(t *testing.T) {
	shape := Shape{2, 3, 4}
	strides := shape.ComputeStrides()

	want := []int{12, 4, 1}
	for i := range want {
		if strides[i] != want[i] {
			t.Errorf("ComputeStrides() = %v, want %v", strides, want)
			break
		}
	}

	if got := len(Shape{}.ComputeStrides()); got != 0 {
		t.Errorf("scalar strides length = %d, want 0", got)
	}
}

func TestShape_Validate(t *testing.T) {
	if err := (Shape{2, 3}).Validate(); err != nil {
		t.Errorf("valid shape rejected: %v", err)
	}
	if err := (Shape{2, 0}).Validate(); err == nil {
		t.Error("zero dimension accepted")
	}
	if err := (Shape{-1}).Validate(); err == nil {
		t.Error("negative dimension accepted")
	}
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Shape
		want      Shape
		needs     bool
		expectErr bool
	}{
		{"SameShape", Shape{3, 5}, Shape{3, 5}, Shape{3, 5}, false, false},
		{"LeftOne", Shape{3, 1}, Shape{3, 5}, Shape{3, 5}, true, false},
		{"RightOne", Shape{1, 5}, Shape{3, 5}, Shape{3, 5}, true, false},
		{"MissingDims", Shape{5}, Shape{3, 5}, Shape{3, 5}, true, false},
		{"Scalar", Shape{}, Shape{3, 5}, Shape{3, 5}, true, false},
		{"Incompatible", Shape{3, 4}, Shape{3, 5}, nil, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, needs, err := BroadcastShapes(tt.a, tt.b)
			if tt.expectErr {
				if err == nil {
					t.Fatal("expected error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("shape = %v, want %v", got, tt.want)
			}
			if needs != tt.needs {
				t.Errorf("needsBroadcast = %v, want %v", needs, tt.needs)
			}
		})
	}
}

func TestBroadcastStrides(t *testing.T) {
	// (3, 1) read as (3, 5): the size-1 dimension gets stride 0.
	in := Shape{3, 1}
	got := BroadcastStrides(in, in.ComputeStrides(), Shape{3, 5})
	if got[0] != 1 || got[1] != 0 {
		t.Errorf("BroadcastStrides = %v, want [1 0]", got)
	}

	// (5) read as (3, 5): the missing leading dimension gets stride 0.
	in = Shape{5}
	got = BroadcastStrides(in, in.ComputeStrides(), Shape{3, 5})
	if got[0] != 0 || got[1] != 1 {
		t.Errorf("BroadcastStrides = %v, want [0 1]", got)
	}
}
