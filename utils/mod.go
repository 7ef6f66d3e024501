package utils

// FindIndex returns the position of item in slice, -1 if it is absent.
func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

func Contains[T comparable](slice []T, item T) bool {
	return FindIndex(slice, item) >= 0
}

// Spread puts sep between the bytes of s: Spread("abc", ' ') is "a b c".
func Spread(s string, sep byte) string {
	if s == "" {
		return s
	}
	out := make([]byte, 0, 2*len(s)-1)
	for i := 0; i < len(s); i++ {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, s[i])
	}
	return string(out)
}
