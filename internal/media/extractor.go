package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"video-profile-extractor/internal/domain"
	"video-profile-extractor/pkg/logger"
)

// Extractor saves uploaded videos to scratch storage and derives a mono PCM
// WAV from each one with ffmpeg. Scratch filenames carry a fresh uuid so
// concurrent uploads can never clobber each other's artifacts.
type Extractor struct {
	sampleRate string
	channels   string
	tempDir    string
}

func NewExtractor(sampleRate, channels string) *Extractor {
	return &Extractor{
		sampleRate: sampleRate,
		channels:   channels,
		tempDir:    os.TempDir(),
	}
}

// ProcessVideo streams the upload to a scratch file and extracts its audio
// track. Both returned paths are owned by the caller, who must pass them to
// Cleanup on every exit path.
func (e *Extractor) ProcessVideo(ctx context.Context, src io.Reader, filename string) (string, string, error) {
	videoPath, err := e.saveVideo(src, filename)
	if err != nil {
		return "", "", err
	}

	audioPath, err := e.extractAudio(ctx, videoPath)
	if err != nil {
		// The audio file may exist half-written; hand both paths back so the
		// caller's cleanup covers them.
		return videoPath, audioPath, err
	}
	return videoPath, audioPath, nil
}

func (e *Extractor) saveVideo(src io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".mp4"
	}
	videoPath := filepath.Join(e.tempDir, uuid.NewString()+ext)

	dst, err := os.Create(videoPath)
	if err != nil {
		return "", fmt.Errorf("%w: create scratch file: %v", domain.ErrExtraction, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("%w: save upload: %v", domain.ErrExtraction, err)
	}
	return videoPath, nil
}

// extractAudio invokes ffmpeg synchronously: strip video, 16-bit little-endian
// PCM, configured sample rate and channel count. A non-zero exit is fatal to
// the request and carries the captured stderr.
func (e *Extractor) extractAudio(ctx context.Context, videoPath string) (string, error) {
	audioPath := audioPathFor(videoPath)

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", videoPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", e.sampleRate,
		"-ac", e.channels,
		audioPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return audioPath, fmt.Errorf("%w: ffmpeg: %v: %s", domain.ErrExtraction, err, stderr.String())
	}
	return audioPath, nil
}

// Cleanup removes both scratch artifacts. Best-effort: a deletion failure is
// logged and never returned, so it cannot mask the pipeline's real outcome.
// Missing paths and repeated calls are fine.
func (e *Extractor) Cleanup(videoPath, audioPath string) {
	for _, path := range []string{videoPath, audioPath} {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Log.Warn("Failed to delete scratch file", "path", path, "error", err)
		}
	}
}

// audioPathFor derives the sibling WAV path from the video path.
func audioPathFor(videoPath string) string {
	return strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".wav"
}
