package token

// Tokenize appends every token of src to dst, from the stream start
// token up to and including the stream end token.
func Tokenize(dst []Token, src []byte) ([]Token, error) {
	s := NewScanner(src)
	for {
		tok, err := s.Next()
		if err != nil {
			return dst, err
		}
		dst = append(dst, tok)
		if tok.Type == TStreamEnd {
			return dst, nil
		}
	}
}
