package utils

// MaskToken masks the middle of a token so log lines never carry usable
// credential material. Short values are fully masked.
func MaskToken(token string) string {
	if len(token) <= 12 {
		return "***"
	}
	return token[:8] + "..." + token[len(token)-4:]
}
