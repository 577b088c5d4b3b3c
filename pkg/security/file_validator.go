package security

import (
	"bytes"
	"net/http"
	"path/filepath"
	"strings"
)

// FileValidationResult contains the result of upload validation
type FileValidationResult struct {
	Valid        bool   // Whether the file passed all validation checks
	Extension    string // Detected file extension
	DetectedMIME string // MIME type sniffed from the file head
	Error        string // Error message if validation failed
}

// signature is a magic-byte pattern at a fixed offset. MP4-family containers
// carry their marker at offset 4, not at the start of the file.
type signature struct {
	offset int
	magic  []byte
}

// Magic byte signatures for allowed video container formats
var videoSignatures = map[string][]signature{
	".mp4":  {{4, []byte("ftyp")}},
	".m4v":  {{4, []byte("ftyp")}},
	".mov":  {{4, []byte("ftyp")}, {4, []byte("moov")}},
	".webm": {{0, []byte{0x1A, 0x45, 0xDF, 0xA3}}}, // EBML header
	".mkv":  {{0, []byte{0x1A, 0x45, 0xDF, 0xA3}}},
	".avi":  {{0, []byte("RIFF")}},
}

// Allowed file extensions (strict whitelist)
var allowedExtensions = map[string]bool{
	".mp4":  true,
	".m4v":  true,
	".mov":  true,
	".webm": true,
	".mkv":  true,
	".avi":  true,
}

// MIME types http.DetectContentType may report for the whitelisted containers.
// Matroska/WebM and QuickTime often sniff as application/octet-stream, which is
// why the magic-byte layer is authoritative and the MIME layer only rejects
// types that are positively not video.
var acceptedMIMETypes = map[string]bool{
	"video/mp4":                true,
	"video/webm":               true,
	"video/avi":                true,
	"video/quicktime":          true,
	"application/octet-stream": true,
}

// ValidateVideoFile performs 3-layer validation of an uploaded video:
// 1. Extension whitelist check
// 2. Magic byte verification (content matches extension)
// 3. Sniffed MIME type check
// head should hold at least the first 512 bytes of the file.
func ValidateVideoFile(filename string, head []byte) FileValidationResult {
	result := FileValidationResult{}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		result.Error = "file has no extension"
		return result
	}
	result.Extension = ext

	// Layer 1: Extension whitelist
	if !allowedExtensions[ext] {
		result.Error = "file type not allowed: " + ext
		return result
	}

	// Layer 2: Magic bytes
	if !matchesSignature(head, videoSignatures[ext]) {
		result.Error = "file content does not match its extension"
		return result
	}

	// Layer 3: MIME sniffing
	result.DetectedMIME = http.DetectContentType(head)
	mime := result.DetectedMIME
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	if !acceptedMIMETypes[mime] {
		result.Error = "detected MIME type not allowed: " + mime
		return result
	}

	result.Valid = true
	return result
}

func matchesSignature(head []byte, sigs []signature) bool {
	for _, s := range sigs {
		end := s.offset + len(s.magic)
		if len(head) >= end && bytes.Equal(head[s.offset:end], s.magic) {
			return true
		}
	}
	return false
}
