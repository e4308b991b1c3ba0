// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

// Package sec verifies ledger-account signatures carried in the Authorization header.
//
// # Header Format
//
//	Authorization: base64("<account_id>&<public_key_hex>&<signature_hex>")
//
// The signature is an ed25519 signature over sha256(account_id). A valid
// signature only proves possession of the key; [Verifier] additionally asks the
// ledger whether that key is registered as an access key of the account.
package sec

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// AuthClaims is the identity reconstructed from a verified Authorization header.
type AuthClaims struct {
	AccountID string
	PublicKey string // "ed25519:<base58>"
	Role      UserRole
}

// KeyChecker resolves whether a public key belongs to an account on the ledger.
type KeyChecker interface {
	HasAccessKey(ctx context.Context, accountID, publicKey string) (bool, error)
}

// Verifier turns Authorization headers into [AuthClaims].
type Verifier struct {
	keys        KeyChecker
	isPublisher func(accountID string) bool
}

// NewVerifier constructs a [Verifier]. isPublisher decides who receives [RoleCreator].
func NewVerifier(keys KeyChecker, isPublisher func(accountID string) bool) *Verifier {
	return &Verifier{keys: keys, isPublisher: isPublisher}
}

// VerifyAuthorization checks the signature, then the key binding on the ledger.
func (verifier *Verifier) VerifyAuthorization(ctx context.Context, header string) (*AuthClaims, error) {
	accountID, publicKey, err := VerifySignature(header)
	if err != nil {
		return nil, err
	}

	encodedKey := EncodePublicKey(publicKey)
	registered, err := verifier.keys.HasAccessKey(ctx, accountID, encodedKey)
	if err != nil {
		return nil, fmt.Errorf("sec: access key lookup failed: %w", err)
	}
	if !registered {
		return nil, fmt.Errorf("sec: key %s is not registered for %s", encodedKey, accountID)
	}

	role := RoleMember
	if verifier.isPublisher != nil && verifier.isPublisher(accountID) {
		role = RoleCreator
	}

	return &AuthClaims{AccountID: accountID, PublicKey: encodedKey, Role: role}, nil
}

// VerifySignature decodes the header and validates the ed25519 signature.
func VerifySignature(header string) (string, ed25519.PublicKey, error) {
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(header))
	if err != nil {
		return "", nil, fmt.Errorf("sec: authorization is not base64: %w", err)
	}

	parts := strings.Split(string(decoded), "&")
	if len(parts) != 3 || parts[0] == "" {
		return "", nil, fmt.Errorf("sec: authorization must have 3 parts, got %d", len(parts))
	}
	accountID, publicKeyHex, signatureHex := parts[0], parts[1], parts[2]

	publicKey, err := hex.DecodeString(publicKeyHex)
	if err != nil || len(publicKey) != ed25519.PublicKeySize {
		return "", nil, fmt.Errorf("sec: malformed public key")
	}

	signature, err := hex.DecodeString(signatureHex)
	if err != nil || len(signature) != ed25519.SignatureSize {
		return "", nil, fmt.Errorf("sec: malformed signature")
	}

	digest := sha256.Sum256([]byte(accountID))
	if !ed25519.Verify(publicKey, digest[:], signature) {
		return "", nil, fmt.Errorf("sec: signature mismatch for %s", accountID)
	}

	return accountID, ed25519.PublicKey(publicKey), nil
}

// EncodePublicKey renders a key the way the ledger RPC expects it.
func EncodePublicKey(publicKey ed25519.PublicKey) string {
	return "ed25519:" + base58.Encode(publicKey)
}

// SignAuthorization builds a header value for accountID. Used by clients and tests.
func SignAuthorization(accountID string, privateKey ed25519.PrivateKey) string {
	digest := sha256.Sum256([]byte(accountID))
	signature := ed25519.Sign(privateKey, digest[:])
	publicKey := privateKey.Public().(ed25519.PublicKey)

	raw := accountID + "&" + hex.EncodeToString(publicKey) + "&" + hex.EncodeToString(signature)
	return base64.StdEncoding.EncodeToString([]byte(raw))
}
