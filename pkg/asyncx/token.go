package asyncx

import "github.com/google/uuid"

// Token identifies a logical asynchronous call.
//
// Two tokens are equal iff they were returned by the same [NewToken] call.
// The zero value is not a valid token.
type Token struct {
	id uuid.UUID
}

// NewToken mints a fresh random 128-bit token.
func NewToken() Token {
	return Token{id: uuid.Must(uuid.NewRandom())}
}

// IsZero returns whether this is the zero token.
func (t Token) IsZero() bool {
	return t.id == uuid.Nil
}

// String implements fmt.Stringer.
func (t Token) String() string {
	return t.id.String()
}
