package snapshot

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
)

const (
	saltLength = 16
	ivLength   = 16
)

var ErrCorruptEnvelope = errors.New("corrupt snapshot envelope")

// deriveKey combines the fixed passphrase with the per-file salt through a
// one-way digest to produce the cipher key.
func deriveKey(passphrase string, salt []byte) []byte {
	digest := sha256.Sum256(append([]byte(passphrase), salt...))

	return digest[:]
}

// seal encrypts the payload and prepends the cleartext header: a
// length-prefixed salt followed by a length-prefixed IV.
func seal(passphrase string, payload []byte) ([]byte, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	iv := make([]byte, ivLength)
	if _, err := rand.Read(iv); err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(deriveKey(passphrase, salt))
	if err != nil {
		return nil, err
	}

	padded := pkcs7Pad(payload, block.BlockSize())
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	var out bytes.Buffer
	out.WriteByte(saltLength)
	out.Write(salt)
	out.WriteByte(ivLength)
	out.Write(iv)
	out.Write(ciphertext)

	return out.Bytes(), nil
}

// open reads the cleartext header and decrypts the remainder of the file.
func open(passphrase string, file []byte) ([]byte, error) {
	reader := bytes.NewReader(file)

	salt, err := readPrefixed(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorruptEnvelope, err)
	}
	iv, err := readPrefixed(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorruptEnvelope, err)
	}

	block, err := aes.NewCipher(deriveKey(passphrase, salt))
	if err != nil {
		return nil, err
	}

	ciphertext := make([]byte, reader.Len())
	reader.Read(ciphertext)

	if len(iv) != block.BlockSize() || len(ciphertext) == 0 || len(ciphertext)%block.BlockSize() != 0 {
		return nil, ErrCorruptEnvelope
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	return pkcs7Unpad(plaintext, block.BlockSize())
}

func readPrefixed(reader *bytes.Reader) ([]byte, error) {
	length, err := reader.ReadByte()
	if err != nil {
		return nil, err
	}

	data := make([]byte, length)
	if _, err := reader.Read(data); err != nil {
		return nil, err
	}

	return data, nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize

	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrCorruptEnvelope
	}

	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize || padding > len(data) {
		return nil, ErrCorruptEnvelope
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, ErrCorruptEnvelope
		}
	}

	return data[:len(data)-padding], nil
}
