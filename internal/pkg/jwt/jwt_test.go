package jwt

import (
	"errors"
	"testing"
	"time"
)

func TestCreateAndParseToken(t *testing.T) {
	m := NewManager("secret", time.Hour)

	token, err := m.CreateToken(42)
	if err != nil {
		t.Fatalf("CreateToken() error: %v", err)
	}

	id, err := m.GetIdFromToken(token)
	if err != nil {
		t.Fatalf("GetIdFromToken() error: %v", err)
	}
	if id != 42 {
		t.Errorf("id = %d, want 42", id)
	}
}

func TestGetIdFromTokenRejects(t *testing.T) {
	m := NewManager("secret", time.Hour)
	other := NewManager("other", time.Hour)

	expired := NewManager("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	foreign, _ := other.CreateToken(1)
	old, _ := expired.CreateToken(1)

	tests := map[string]string{
		"garbage":      "not-a-token",
		"wrong secret": foreign,
		"expired":      old,
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := m.GetIdFromToken(token)
			invalid := &InvalidTokenError{}
			if !errors.As(err, &invalid) {
				t.Errorf("err = %v, want InvalidTokenError", err)
			}
		})
	}
}
