// Package joincode derives the short codes embedded in raffle QR payloads.
// Codes are HMAC slugs of the raffle id, so a code can be checked against
// its raffle without a database lookup.
package joincode

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

const codeLength = 12

var ErrInvalidCode = errors.New("invalid join code")

func Generate(raffleID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(raffleID))
	sum := h.Sum(nil)

	slug := strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")

	return slug[:codeLength]
}

func Validate(raffleID, code, salt string) error {
	expected := Generate(raffleID, salt)
	if !hmac.Equal([]byte(code), []byte(expected)) {
		return ErrInvalidCode
	}

	return nil
}
