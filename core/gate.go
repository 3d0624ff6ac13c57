package core

// Unchanged reports whether next describes the same block as prev, in which
// case a rendered instance of prev can be reused as is.
func Unchanged(prev, next Block) bool {
	return prev.Text == next.Text &&
		prev.Language == next.Language &&
		prev.Key == next.Key
}
