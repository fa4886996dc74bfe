package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/GTBioPortal/BioPortal-Backend/internal/common"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/models"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	codec := NewCodec([]byte("super-secret"))
	now := time.Now()

	tok, err := codec.Encode("stu-123", models.KindStudent, now)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	got, err := codec.Decode(tok, models.KindStudent, now)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if got != "stu-123" {
		t.Fatalf("subject mismatch: got %q want %q", got, "stu-123")
	}
}

func TestDecode_Expired(t *testing.T) {
	t.Parallel()

	codec := NewCodec([]byte("secret"))
	now := time.Now()

	tok, err := codec.Encode("u1", models.KindEmployer, now)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	_, err = codec.Decode(tok, models.KindEmployer, now.Add(TokenTTL+time.Second))
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestDecode_ValidJustBeforeExpiry(t *testing.T) {
	t.Parallel()

	codec := NewCodec([]byte("secret"))
	now := time.Now()

	tok, err := codec.Encode("u1", models.KindAdmin, now)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	got, err := codec.Decode(tok, models.KindAdmin, now.Add(TokenTTL-time.Second))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if got != "u1" {
		t.Fatalf("subject mismatch: got %q", got)
	}
}

func TestDecode_WrongSecret(t *testing.T) {
	t.Parallel()

	now := time.Now()
	tok, err := NewCodec([]byte("right-secret")).Encode("u2", models.KindStudent, now)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	_, err = NewCodec([]byte("wrong-secret")).Decode(tok, models.KindStudent, now)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestDecode_Tampered(t *testing.T) {
	t.Parallel()

	codec := NewCodec([]byte("secret"))
	now := time.Now()

	tok, err := codec.Encode("u3", models.KindStudent, now)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	// Flip a character in the payload segment.
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", tok)
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = codec.Decode(tampered, models.KindStudent, now)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	codec := NewCodec([]byte("k"))
	_, err := codec.Decode("not.a.jwt", models.KindStudent, time.Now())
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestDecode_KindMismatch(t *testing.T) {
	t.Parallel()

	codec := NewCodec([]byte("secret"))
	now := time.Now()

	tok, err := codec.Encode("stu-1", models.KindStudent, now)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	_, err = codec.Decode(tok, models.KindEmployer, now)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("student token must not decode for employer kind, got %v", err)
	}
}
