// Package password provides the one-way credential hasher used at
// registration, login, and password change.
package password

import "golang.org/x/crypto/bcrypt"

// workFactor bounds brute-force feasibility while keeping login latency
// acceptable. Changing it only affects newly stored digests; bcrypt encodes
// the cost into the digest, so existing ones keep verifying.
const workFactor = 10

// Hasher wraps bcrypt with a fixed work factor.
type Hasher struct {
	cost int
}

func NewHasher() *Hasher {
	return &Hasher{cost: workFactor}
}

// Hash returns a salted digest of plain. Output differs between calls for
// the same input; use Verify to compare.
func (h *Hasher) Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plain matches digest. A mismatch or a malformed
// digest yields false, never an error.
func (h *Hasher) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
