// Package cryptox implements the password storage modes used by the
// credential store.
package cryptox

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
)

// Password modes.
const (
	ModePlain  = "plain"
	ModeArgon2 = "argon2"
	ModeBcrypt = "bcrypt"
)

var ErrUnknownMode = errors.New("unknown password mode")

// PasswordHasher turns a password into its stored form and checks a
// candidate password against it.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(stored, password string) (bool, error)
}

// NewPasswordHasher returns the hasher for mode. An empty mode means plain.
func NewPasswordHasher(mode string) (PasswordHasher, error) {
	switch strings.ToLower(mode) {
	case "", ModePlain:
		return PlainHasher{}, nil
	case ModeArgon2:
		return Argon2Hasher{Params: argon2id.DefaultParams}, nil
	case ModeBcrypt:
		return BcryptHasher{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// PlainHasher stores passwords as-is. Records written by older clients
// hold plain passwords, so this is the default.
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) { return password, nil }

func (PlainHasher) Verify(stored, password string) (bool, error) {
	return stored == password, nil
}

// Argon2Hasher stores PHC-encoded argon2id hashes.
type Argon2Hasher struct {
	Params *argon2id.Params
}

func (h Argon2Hasher) Hash(password string) (string, error) {
	p := h.Params
	if p == nil {
		p = argon2id.DefaultParams
	}
	return argon2id.CreateHash(password, p)
}

// Verify reports false, not an error, for a stored value that is not an
// argon2id hash (for example the plain demo password).
func (Argon2Hasher) Verify(stored, password string) (bool, error) {
	if !strings.HasPrefix(stored, "$argon2id$") {
		return false, nil
	}
	return argon2id.ComparePasswordAndHash(password, stored)
}

type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (BcryptHasher) Verify(stored, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword),
		errors.Is(err, bcrypt.ErrHashTooShort):
		return false, nil
	default:
		return false, err
	}
}
