package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Generates the shared secret for the internal email routes.
// Usage: go run scripts/genkey.go, then set TOTL_INTERNAL_EMAIL_KEY.
func main() {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("TOTL_INTERNAL_EMAIL_KEY=%s\n", hex.EncodeToString(key))
}
