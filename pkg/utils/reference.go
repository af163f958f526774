package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// GenerateReference builds a unique, human-scannable reference such as
// TXN-1712345678-9f86d081.
func GenerateReference(prefix string) string {
	bytes := make([]byte, 4)
	rand.Read(bytes)
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().Unix(), hex.EncodeToString(bytes))
}
