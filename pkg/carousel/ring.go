package carousel

// Prepend returns the last n slides in order, wrapping backwards from the
// end when n exceeds len(slides).
func Prepend[T any](slides []T, n int) []T {
	count := len(slides)
	if count == 0 || n <= 0 {
		return []T{}
	}
	out := make([]T, n)
	for i := 0; i < n; i++ {
		out[n-1-i] = slides[count-1-i%count]
	}
	return out
}

// Append returns the first n slides in order, wrapping forwards from the
// start when n exceeds len(slides).
func Append[T any](slides []T, n int) []T {
	count := len(slides)
	if count == 0 || n <= 0 {
		return []T{}
	}
	out := make([]T, n)
	for i := 0; i < n; i++ {
		out[i] = slides[i%count]
	}
	return out
}

// Pad builds the rendered track for cfg. When the carousel loops (or
// appends clones) the real slides are surrounded by clones and offset is
// the index of the first real slide; otherwise slides are returned as is.
func Pad[T any](slides []T, cfg Config) (track []T, offset int) {
	cfg = cfg.withDefaults()
	if !cfg.padded(len(slides)) {
		return slides, 0
	}
	pad := cfg.padLength()
	track = make([]T, 0, len(slides)+2*pad)
	track = append(track, Prepend(slides, pad)...)
	track = append(track, slides...)
	track = append(track, Append(slides, pad)...)
	return track, pad
}
