// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"os"
)

// GenerateKeypair creates a new Ed25519 keypair for a userid's
// authentication identity.
func GenerateKeypair() (ed25519.PublicKey, ed25519.PrivateKey, error) {
	public, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("generating Ed25519 keypair: %w", err)
	}
	return public, private, nil
}

// SaveKeypair writes an Ed25519 keypair to the given paths. The
// private key file has 0600 permissions; the public key file has
// 0644.
func SaveKeypair(privatePath, publicPath string, public ed25519.PublicKey, private ed25519.PrivateKey) error {
	if err := os.WriteFile(privatePath, private, 0600); err != nil {
		return fmt.Errorf("writing private key: %w", err)
	}
	if err := os.WriteFile(publicPath, public, 0644); err != nil {
		return fmt.Errorf("writing public key: %w", err)
	}
	return nil
}

// LoadKeypair loads an Ed25519 keypair from the given paths. Returns
// an error if either file is missing or has an unexpected size.
func LoadKeypair(privatePath, publicPath string) (ed25519.PublicKey, ed25519.PrivateKey, error) {
	privateBytes, err := os.ReadFile(privatePath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading private key: %w", err)
	}
	if len(privateBytes) != ed25519.PrivateKeySize {
		return nil, nil, fmt.Errorf("private key has %d bytes, want %d", len(privateBytes), ed25519.PrivateKeySize)
	}

	publicBytes, err := os.ReadFile(publicPath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading public key: %w", err)
	}
	if len(publicBytes) != ed25519.PublicKeySize {
		return nil, nil, fmt.Errorf("public key has %d bytes, want %d", len(publicBytes), ed25519.PublicKeySize)
	}

	return ed25519.PublicKey(publicBytes), ed25519.PrivateKey(privateBytes), nil
}
