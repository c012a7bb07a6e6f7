package shared

func TrimName(name string, max int) string {
	if len(name) <= max {
		return name
	}
	if max <= 3 {
		return name[:max]
	}
	return name[:max-3] + "..."
}

// IsExcluded reports whether pid is in the protected set.
func IsExcluded(set map[int]struct{}, pid int) bool {
	_, ok := set[pid]
	return ok
}
