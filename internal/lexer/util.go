package lexer

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDec(b byte) bool {
	return b >= '0' && b <= '9'
}

func isIdentContinue(b byte) bool {
	return isLetter(b) || isDec(b)
}
