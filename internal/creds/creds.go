// Package creds is the single credential-issuance path for the toolkit:
// every username, group, password and storage hash is derived here, whether
// the caller is the sell orchestrator, the node agent's auto-add or a
// password change.
package creds

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"github.com/GehirnInc/crypt"
	_ "github.com/GehirnInc/crypt/sha512_crypt"
)

// ExpDateLayout is the canonical expiry date format used everywhere.
const ExpDateLayout = "2006-01-02"

// Generator derives account credentials from configured material. Secrets
// are injected, never compiled in.
type Generator struct {
	userPrefix  string // username stem, e.g. "sshmgmt"
	groupPrefix string // group stem, e.g. "grp"
	passPrefix  string // leading marker on issued passwords
	passIV      []byte // keyed-digest salt for deterministic passwords
	cryptSalt   string // sha512-crypt salt parameters, e.g. "$6$..."
}

func NewGenerator(userPrefix, groupPrefix, passPrefix, passIV, cryptSalt string) *Generator {
	return &Generator{
		userPrefix:  userPrefix,
		groupPrefix: groupPrefix,
		passPrefix:  passPrefix,
		passIV:      []byte(passIV),
		cryptSalt:   cryptSalt,
	}
}

// Username derives the OS username for a sell on a capacity class:
// prefix + max_logins + "x" + zero-padded id.
func (g *Generator) Username(maxLogins int32, id int32) string {
	return fmt.Sprintf("%s%dx%03d", g.userPrefix, maxLogins, id)
}

// UsernamePrefix is the per-capacity-class stem, used for prefix lookups
// and agent-side auto-add.
func (g *Generator) UsernamePrefix(maxLogins int32) string {
	return fmt.Sprintf("%s%dx", g.userPrefix, maxLogins)
}

// Group names the primary group for a capacity class.
func (g *Generator) Group(maxLogins int32) string {
	return fmt.Sprintf("%s%d", g.groupPrefix, maxLogins)
}

// RandomPassword issues a fresh password: prefix + 5-digit decimal.
func (g *Generator) RandomPassword() string {
	n, err := rand.Int(rand.Reader, big.NewInt(100000))
	if err != nil {
		// crypto/rand only fails when the platform source is broken;
		// nothing sane to return in that case.
		panic(fmt.Sprintf("creds: random source failed: %v", err))
	}
	return fmt.Sprintf("%s%05d", g.passPrefix, n.Int64())
}

// DerivePassword reproduces a user's password from the username alone:
// a fixed 6-hex-char slice of SHA-256(iv || username), prefixed. Used for
// password recovery, so it must stay stable across releases.
func (g *Generator) DerivePassword(username string) string {
	h := sha256.New()
	h.Write(g.passIV)
	h.Write([]byte(username))

	hexHash := hex.EncodeToString(h.Sum(nil))
	return g.passPrefix + hexHash[10:16]
}

// HashPassword produces the sha512-crypt storage hash handed to the OS
// account tools. With configured salt parameters the hash is deterministic
// per password; without them the crypt library picks a random salt.
func (g *Generator) HashPassword(password string) (string, error) {
	c := crypt.SHA512.New()
	hash, err := c.Generate([]byte(password), []byte(g.cryptSalt))
	if err != nil {
		return "", fmt.Errorf("sha512-crypt: %w", err)
	}
	return hash, nil
}

// VerifyPassword compares a plaintext candidate against a stored hash.
func VerifyPassword(password, hash string) bool {
	return crypt.SHA512.New().Verify(hash, []byte(password)) == nil
}

// IsValidUsername enforces the account naming rule: 3-20 chars,
// alphanumerics or underscore, no leading digit.
func IsValidUsername(username string) bool {
	if len(username) < 3 || len(username) > 20 {
		return false
	}

	for _, c := range username {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_':
		default:
			return false
		}
	}

	return !(username[0] >= '0' && username[0] <= '9')
}

// FormatExpDate validates and canonicalizes a YYYY-MM-DD expiry date.
func FormatExpDate(expDate string) (string, error) {
	date, err := time.Parse(ExpDateLayout, expDate)
	if err != nil {
		return "", fmt.Errorf("invalid expiry date %q: %w", expDate, err)
	}
	return date.Format(ExpDateLayout), nil
}

// AddToTime returns today's date plus the given number of days, canonical
// format.
func AddToTime(days int64) string {
	return time.Now().AddDate(0, 0, int(days)).Format(ExpDateLayout)
}
