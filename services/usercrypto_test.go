package services

import (
	"testing"

	"finsmart/errors"
)

func TestEncryptDecryptUserIDRoundtrip(t *testing.T) {
	secret := "my-secret-key"

	for _, userID := range []uint{1, 42, 987654} {
		encrypted, err := EncryptUserID(userID, secret)
		if err != nil {
			t.Fatalf("EncryptUserID(%d): %v", userID, err)
		}

		decrypted, err := DecryptUserID(encrypted, secret)
		if err != nil {
			t.Fatalf("DecryptUserID: %v", err)
		}
		if decrypted != userID {
			t.Fatalf("roundtrip sai: got %d, want %d", decrypted, userID)
		}
	}
}

func TestEncryptUserIDSaltsDiffer(t *testing.T) {
	a, err := EncryptUserID(7, "secret")
	if err != nil {
		t.Fatalf("EncryptUserID: %v", err)
	}
	b, err := EncryptUserID(7, "secret")
	if err != nil {
		t.Fatalf("EncryptUserID: %v", err)
	}
	if a == b {
		t.Fatalf("hai lần mã hóa cùng user_id không được trùng nhau")
	}
}

func TestDecryptUserIDWrongSecret(t *testing.T) {
	encrypted, err := EncryptUserID(1, "secret-a")
	if err != nil {
		t.Fatalf("EncryptUserID: %v", err)
	}

	if _, err := DecryptUserID(encrypted, "secret-b"); err == nil {
		t.Fatalf("giải mã bằng khóa sai phải trả lỗi")
	}
}

func TestDecryptUserIDGarbage(t *testing.T) {
	cases := []string{"", "not-base64!!!", "aGVsbG8=", "U2FsdGVkX18="}
	for _, input := range cases {
		_, err := DecryptUserID(input, "secret")
		if err == nil {
			t.Fatalf("DecryptUserID(%q) phải trả lỗi", input)
		}
		if !errors.HasCode(err, errors.ErrCodeDecryption) {
			t.Fatalf("DecryptUserID(%q) trả mã lỗi sai: %v", input, err)
		}
	}
}

func TestDecryptUserIDMissingSecret(t *testing.T) {
	if _, err := DecryptUserID("abc", ""); err == nil {
		t.Fatalf("thiếu khóa bí mật phải trả lỗi")
	}
	if _, err := EncryptUserID(1, ""); err == nil {
		t.Fatalf("thiếu khóa bí mật phải trả lỗi")
	}
}
