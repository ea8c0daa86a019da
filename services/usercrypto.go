package services

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strconv"

	"finsmart/errors"
)

// Mã hóa user_id tương thích với CryptoJS.AES phía frontend:
// base64("Salted__" + salt 8 byte + ciphertext AES-256-CBC), khóa và IV
// dẫn xuất từ secret + salt theo kiểu EVP_BytesToKey của OpenSSL (MD5).

const opensslSaltHeader = "Salted__"

func evpBytesToKey(secret, salt []byte) (key, iv []byte) {
	var prev []byte
	var derived []byte
	for len(derived) < 48 {
		h := md5.New()
		h.Write(prev)
		h.Write(secret)
		h.Write(salt)
		prev = h.Sum(nil)
		derived = append(derived, prev...)
	}
	return derived[:32], derived[32:48]
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	for i := 0; i < padding; i++ {
		data = append(data, byte(padding))
	}
	return data
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("độ dài dữ liệu không hợp lệ")
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize || padding > len(data) {
		return nil, fmt.Errorf("padding không hợp lệ")
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, fmt.Errorf("padding không hợp lệ")
		}
	}
	return data[:len(data)-padding], nil
}

// EncryptUserID mã hóa user_id để client lưu vào localStorage
func EncryptUserID(userID uint, secret string) (string, error) {
	if secret == "" {
		return "", errors.NewAppError(errors.ErrCodeDecryption, "Thiếu khóa bí mật", nil)
	}

	salt := make([]byte, 8)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key, iv := evpBytesToKey([]byte(secret), salt)
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	plaintext := pkcs7Pad([]byte(strconv.FormatUint(uint64(userID), 10)), aes.BlockSize)
	ciphertext := make([]byte, len(plaintext))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, plaintext)

	out := append([]byte(opensslSaltHeader), salt...)
	out = append(out, ciphertext...)
	return base64.StdEncoding.EncodeToString(out), nil
}

// DecryptUserID giải mã user_id từ chuỗi client gửi lên.
// Giải mã thất bại trả về lỗi DECRYPTION_ERROR, người dùng coi như chưa đăng nhập.
func DecryptUserID(encrypted, secret string) (uint, error) {
	if secret == "" {
		return 0, errors.NewAppError(errors.ErrCodeDecryption, "Thiếu khóa bí mật", nil)
	}

	raw, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return 0, errors.NewAppError(errors.ErrCodeDecryption, "Không thể giải mã user_id", err)
	}
	if len(raw) < len(opensslSaltHeader)+8+aes.BlockSize || string(raw[:len(opensslSaltHeader)]) != opensslSaltHeader {
		return 0, errors.NewAppError(errors.ErrCodeDecryption, "Không thể giải mã user_id", nil)
	}

	salt := raw[len(opensslSaltHeader) : len(opensslSaltHeader)+8]
	ciphertext := raw[len(opensslSaltHeader)+8:]
	if len(ciphertext)%aes.BlockSize != 0 {
		return 0, errors.NewAppError(errors.ErrCodeDecryption, "Không thể giải mã user_id", nil)
	}

	key, iv := evpBytesToKey([]byte(secret), salt)
	block, err := aes.NewCipher(key)
	if err != nil {
		return 0, errors.NewAppError(errors.ErrCodeDecryption, "Không thể giải mã user_id", err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		return 0, errors.NewAppError(errors.ErrCodeDecryption, "Không thể giải mã user_id", err)
	}

	parsed, err := strconv.ParseUint(string(unpadded), 10, 64)
	if err != nil {
		return 0, errors.NewAppError(errors.ErrCodeDecryption, "user_id giải mã không phải số", err)
	}

	return uint(parsed), nil
}
