package util

// Paginate converts 1-based page/size query values into from/limit,
// clamping size to a sane range.
func Paginate(page, size int) (from, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 10
	}
	return (page - 1) * size, size
}
