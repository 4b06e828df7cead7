package email

import (
	"mime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeSubject(t *testing.T) {
	t.Run("Should wrap Cyrillic subjects in an encoded word", func(t *testing.T) {
		encoded := encodeSubject("Новая заявка: Иван (Программист)")
		assert.True(t, strings.HasPrefix(encoded, "=?utf-8?q?"))

		dec := new(mime.WordDecoder)
		decoded, err := dec.DecodeHeader(encoded)
		assert.NoError(t, err)
		assert.Equal(t, "Новая заявка: Иван (Программист)", decoded)
	})

	t.Run("Should leave plain ASCII untouched", func(t *testing.T) {
		assert.Equal(t, "New application", encodeSubject("New application"))
	})
}

func TestIsConfigured(t *testing.T) {
	full := Config{
		Host:     "smtp.example.com",
		Port:     "587",
		Username: "bot@example.com",
		Password: "pass",
		ToEmail:  "studio@example.com",
	}
	assert.True(t, NewService(full).IsConfigured())

	partial := full
	partial.ToEmail = ""
	assert.False(t, NewService(partial).IsConfigured())

	assert.False(t, NewService(Config{}).IsConfigured())
}
