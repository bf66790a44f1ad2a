package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateJwtSecret prints a JWT_SECRET line ready to paste into .env.
func GenerateJwtSecret() {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		panic(err)
	}
	fmt.Printf("JWT_SECRET=%s\n", base64.RawURLEncoding.EncodeToString(secret))
}
