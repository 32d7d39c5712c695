// Package cipher 提供可逆的密码加解密
//
// 账号密码以密文形式存储，登录时解密后与用户输入比较。
// 算法：XChaCha20-Poly1305（AEAD），随机24字节nonce，输出 base64url(nonce || ciphertext)。
//
// 注意：可逆加密意味着持有密钥即可还原明文，这不是单向哈希。
// 切换到哈希存储需要同时修改登录比较逻辑（解密比较 → 哈希比较）。
package cipher

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

var (
	// ErrInvalidKey 密钥不是32字节的base64编码
	ErrInvalidKey = errors.New("cipher: key must be 32 bytes, base64 encoded")
	// ErrMalformed 密文格式错误或被篡改
	ErrMalformed = errors.New("cipher: malformed ciphertext")
)

// PasswordCipher 密码加解密器，进程内共享，并发安全
type PasswordCipher struct {
	aead interface {
		NonceSize() int
		Overhead() int
		Seal(dst, nonce, plaintext, additionalData []byte) []byte
		Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error)
	}
}

// New 根据base64编码的32字节密钥创建加解密器
// 同时接受标准和URL-safe两种base64
func New(key string) (*PasswordCipher, error) {
	raw, err := decodeKey(key)
	if err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.NewX(raw)
	if err != nil {
		return nil, fmt.Errorf("cipher: %w", err)
	}
	return &PasswordCipher{aead: aead}, nil
}

// GenerateKey 生成一个新的随机密钥（base64url编码）
func GenerateKey() (string, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(key); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(key), nil
}

func decodeKey(key string) ([]byte, error) {
	for _, enc := range []*base64.Encoding{base64.URLEncoding, base64.StdEncoding} {
		raw, err := enc.DecodeString(key)
		if err == nil && len(raw) == chacha20poly1305.KeySize {
			return raw, nil
		}
	}
	return nil, ErrInvalidKey
}

// Encrypt 加密明文，每次调用使用新的随机nonce
func (c *PasswordCipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize(), c.aead.NonceSize()+len(plaintext)+c.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("cipher: generate nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.URLEncoding.EncodeToString(sealed), nil
}

// Decrypt 解密密文
func (c *PasswordCipher) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.URLEncoding.DecodeString(ciphertext)
	if err != nil || len(raw) < c.aead.NonceSize()+c.aead.Overhead() {
		return "", ErrMalformed
	}

	nonce, sealed := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plain, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrMalformed
	}
	return string(plain), nil
}

// Matches 解密后与明文做常量时间比较，解密失败视为不匹配
func (c *PasswordCipher) Matches(ciphertext, plaintext string) bool {
	stored, err := c.Decrypt(ciphertext)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(plaintext)) == 1
}
