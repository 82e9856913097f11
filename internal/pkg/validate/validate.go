package validate

import "strings"

func Required(value string) bool {
	return strings.TrimSpace(value) != ""
}

// SmartCardNumber accepts the decoder card formats the providers use:
// 10 or 11 digits, nothing else.
func SmartCardNumber(value string) bool {
	value = strings.TrimSpace(value)
	if len(value) < 10 || len(value) > 11 {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
