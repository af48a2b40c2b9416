package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{
			name:     "valid password",
			password: "password12345",
			wantErr:  nil,
		},
		{
			name:     "short synthetic password",
			password: "7",
			wantErr:  nil,
		},
		{
			name:     "password at 72 byte limit",
			password: strings.Repeat("a", 72),
			wantErr:  nil,
		},
		{
			name:     "password over 72 bytes",
			password: strings.Repeat("a", 73),
			wantErr:  ErrPasswordTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password, 4)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("HashPassword() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Errorf("HashPassword() unexpected error = %v", err)
				return
			}
			if hash == "" {
				t.Error("HashPassword() returned empty hash")
			}
			if hash == tt.password {
				t.Error("HashPassword() returned the plaintext password")
			}
		})
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct-password", 4)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	t.Run("correct password", func(t *testing.T) {
		if err := CheckPassword("correct-password", hash); err != nil {
			t.Errorf("CheckPassword() error = %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		err := CheckPassword("wrong-password", hash)
		if !errors.Is(err, ErrInvalidPassword) {
			t.Errorf("CheckPassword() error = %v, want %v", err, ErrInvalidPassword)
		}
	})

	t.Run("garbage hash", func(t *testing.T) {
		if err := CheckPassword("password", "not-a-bcrypt-hash"); err == nil {
			t.Error("CheckPassword() expected error for malformed hash")
		}
	})
}

func TestGenerateSecret(t *testing.T) {
	first, err := GenerateSecret()
	if err != nil {
		t.Fatalf("GenerateSecret() error = %v", err)
	}
	if len(first) != 64 {
		t.Errorf("GenerateSecret() length = %d, want 64 hex chars", len(first))
	}

	second, err := GenerateSecret()
	if err != nil {
		t.Fatalf("GenerateSecret() error = %v", err)
	}
	if first == second {
		t.Error("GenerateSecret() returned the same secret twice")
	}
}
