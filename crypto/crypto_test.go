package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"
)

func TestSecretHash(t *testing.T) {
	mac := hmac.New(sha256.New, []byte("s3cret"))
	mac.Write([]byte("aliceclient"))
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	if got := SecretHash("alice", "client", "s3cret"); got != want {
		t.Fatalf("SecretHash = %q, want %q", got, want)
	}
	if SecretHash("alice", "client", "a") == SecretHash("alice", "client", "b") {
		t.Fatal("hash must depend on the secret")
	}
}
