package auth

import (
	"crypto/md5"
	"encoding/hex"
	"time"
)

// TokenIssuer mints opaque session tokens: the hex MD5 of the username and
// the current wall clock. Uniqueness is enforced by storage, not here.
type TokenIssuer struct {
	now func() time.Time
}

func NewTokenIssuer() *TokenIssuer {
	return &TokenIssuer{now: time.Now}
}

// Issue returns a 32 character lowercase hex token.
func (i *TokenIssuer) Issue(username string) string {
	sum := md5.Sum([]byte(username + i.now().String()))
	return hex.EncodeToString(sum[:])
}
