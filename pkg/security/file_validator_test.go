package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func mp4Head() []byte {
	head := make([]byte, 512)
	copy(head[4:], []byte("ftypisom"))
	return head
}

func TestValidateVideoFile(t *testing.T) {
	t.Run("Should accept an mp4 with matching magic bytes", func(t *testing.T) {
		result := ValidateVideoFile("presentation.mp4", mp4Head())
		assert.True(t, result.Valid, result.Error)
		assert.Equal(t, ".mp4", result.Extension)
	})

	t.Run("Should accept a webm with an EBML header", func(t *testing.T) {
		head := make([]byte, 512)
		copy(head, []byte{0x1A, 0x45, 0xDF, 0xA3})
		result := ValidateVideoFile("clip.webm", head)
		assert.True(t, result.Valid, result.Error)
	})

	t.Run("Should reject a non-video extension", func(t *testing.T) {
		result := ValidateVideoFile("malware.exe", mp4Head())
		assert.False(t, result.Valid)
	})

	t.Run("Should reject a file with no extension", func(t *testing.T) {
		result := ValidateVideoFile("upload", mp4Head())
		assert.False(t, result.Valid)
	})

	t.Run("Should reject content that does not match the extension", func(t *testing.T) {
		head := make([]byte, 512)
		copy(head, []byte("%PDF-1.7"))
		result := ValidateVideoFile("document.mp4", head)
		assert.False(t, result.Valid)
	})
}
