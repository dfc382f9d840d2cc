package update

import "strconv"

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

func selectedText(index int) string {
	if index < 0 {
		return "none"
	}
	return "day " + strconv.Itoa(index+1)
}
