package common

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var snowflakeNode *snowflake.Node

func init() {
	rand.New(rand.NewSource(time.Now().UnixNano()))
	var err error
	snowflakeNode, err = snowflake.NewNode(rand.Int63n(1023))
	if err != nil {
		panic(err)
	}
}

// UUIDint64 returns a cluster-safe int64 identifier
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}

// UUID returns the string form of a snowflake identifier
func UUID() string {
	return snowflakeNode.Generate().String()
}

// GuestID generates a synthetic identity for checkout attempts not tied to
// an authenticated account
func GuestID() string {
	return "guest_" + uuid.NewString()
}

// IsUUID reports whether s is a valid RFC 4122 UUID string
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// GetSecretSalt reads the password salt from the environment, falling back
// to a fixed development salt
func GetSecretSalt() string {
	salt := os.Getenv("VENTARO_SECRET_SALT")
	if salt == "" {
		salt = "ventaro-dev-salt"
	}
	return salt
}

// Sha256HashWithSalt computes sha256(src + salt) in hex
func Sha256HashWithSalt(src, salt string) string {
	h := sha256.New()
	h.Write([]byte(src + salt))
	return hex.EncodeToString(h.Sum(nil))
}

// Sha256Hash computes sha256(src) in hex
func Sha256Hash(src string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(src)))
}
