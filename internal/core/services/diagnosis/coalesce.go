package diagnosis

// coalesce returns the first value that is not empty according to
// isEmpty, or the zero value when every candidate is empty. All field
// merging in the reconciler goes through this one helper.
func coalesce[T any](isEmpty func(T) bool, values ...T) T {
	for _, v := range values {
		if !isEmpty(v) {
			return v
		}
	}
	var zero T
	return zero
}

func emptyString(s string) bool { return s == "" }

func emptyList(l []string) bool { return len(l) == 0 }

func zeroFloat(f float64) bool { return f == 0 }

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
