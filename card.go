package minfraud

// CardBIN returns the six-digit issuer identification number of a card
// number, ignoring spaces and dashes, or "" when fewer than six digits are
// available. Only the BIN is ever sent to minFraud, never the full number.
func CardBIN(number string) string {
	bin := make([]byte, 0, 6)
	for i := 0; i < len(number) && len(bin) < 6; i++ {
		switch c := number[i]; {
		case c >= '0' && c <= '9':
			bin = append(bin, c)
		case c == ' ' || c == '-':
		default:
			return ""
		}
	}
	if len(bin) < 6 {
		return ""
	}
	return string(bin)
}
