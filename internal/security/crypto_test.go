package security

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	t.Parallel()

	plaintext := []byte(`{"exportId":"abc","dayLogs":[]}`)
	sealed, err := EncryptExport("correct horse", plaintext)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if bytes.Contains(sealed, []byte("dayLogs")) {
		t.Fatal("ciphertext leaks plaintext")
	}

	opened, err := DecryptExport("correct horse", sealed)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if !bytes.Equal(opened, plaintext) {
		t.Fatalf("round trip mismatch: %q", opened)
	}
}

func TestDecryptWithWrongPassphrase(t *testing.T) {
	t.Parallel()

	sealed, err := EncryptExport("right", []byte("secret journal"))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if _, err := DecryptExport("wrong", sealed); !errors.Is(err, ErrWrongPassphrase) {
		t.Fatalf("error = %v, want ErrWrongPassphrase", err)
	}
}

func TestDecryptRejectsTamperedPayload(t *testing.T) {
	t.Parallel()

	sealed, err := EncryptExport("pass", []byte("secret journal"))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	sealed[len(sealed)-1] ^= 0xff
	if _, err := DecryptExport("pass", sealed); !errors.Is(err, ErrWrongPassphrase) {
		t.Fatalf("error = %v, want ErrWrongPassphrase for tampered data", err)
	}
}

func TestMalformedAndEmptyInputs(t *testing.T) {
	t.Parallel()

	if _, err := EncryptExport("", []byte("x")); !errors.Is(err, ErrEmptyPassphrase) {
		t.Fatalf("error = %v, want ErrEmptyPassphrase", err)
	}
	if _, err := DecryptExport("", []byte("x")); !errors.Is(err, ErrEmptyPassphrase) {
		t.Fatalf("error = %v, want ErrEmptyPassphrase", err)
	}
	if _, err := DecryptExport("pass", []byte("short")); !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("error = %v, want ErrMalformedPayload", err)
	}
}

func TestEncryptionIsSaltedPerCall(t *testing.T) {
	t.Parallel()

	first, err := EncryptExport("pass", []byte("same plaintext"))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	second, err := EncryptExport("pass", []byte("same plaintext"))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if bytes.Equal(first, second) {
		t.Fatal("two encryptions of the same plaintext must differ")
	}
}
