package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Parámetros argon2id recomendados por OWASP.
const (
	argonIterations  = 1
	argonMemory      = 64 * 1024 // KiB
	argonParallelism = 4
	argonSaltLen     = 16
	argonKeyLen      = 32
)

var ErrEmptyPassword = errors.New("password cannot be empty")

// PasswordHasher produce y verifica hashes de contraseñas de un solo sentido.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify devuelve false ante hashes malformados o de formato ajeno,
	// nunca propaga error al caller.
	Verify(encodedHash, password string) bool
}

// Argon2Hasher implementa PasswordHasher con argon2id en formato PHC.
// La sal y los parámetros viajan dentro del propio hash.
type Argon2Hasher struct{}

func NewArgon2Hasher() *Argon2Hasher {
	return &Argon2Hasher{}
}

func (h *Argon2Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key := argon2.IDKey([]byte(password), salt, argonIterations, argonMemory, argonParallelism, argonKeyLen)

	// Formato PHC: $argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>
	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argonMemory,
		argonIterations,
		argonParallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

func (h *Argon2Hasher) Verify(encodedHash, password string) bool {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var memory, iterations, parallelism uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); err != nil {
		return false
	}
	if parallelism == 0 || parallelism > 255 {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(expected) == 0 {
		return false
	}

	key := argon2.IDKey([]byte(password), salt, iterations, memory, uint8(parallelism), uint32(len(expected)))
	return subtle.ConstantTimeCompare(key, expected) == 1
}
