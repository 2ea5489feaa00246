package domain

// ValidSymbol reports whether a ticker string looks like a real symbol.
// Symbols may carry an exchange prefix ("NYSE:SEM") or class suffix
// ("BRK.A"); anything empty, overlong or with other punctuation is
// rejected.
func ValidSymbol(symbol string) bool {
	if symbol == "" || len(symbol) > 10 {
		return false
	}
	for _, c := range symbol {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '.' || c == ':':
		default:
			return false
		}
	}
	return true
}
