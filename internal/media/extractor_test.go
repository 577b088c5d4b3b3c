package media

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"video-profile-extractor/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestCleanup(t *testing.T) {
	e := NewExtractor("16000", "1")

	t.Run("Should not panic on paths that do not exist", func(t *testing.T) {
		assert.NotPanics(t, func() {
			e.Cleanup(filepath.Join(os.TempDir(), "missing-video.mp4"), filepath.Join(os.TempDir(), "missing-audio.wav"))
		})
	})

	t.Run("Should remove both artifacts and tolerate a second call", func(t *testing.T) {
		video := filepath.Join(t.TempDir(), "scratch.mp4")
		audio := filepath.Join(t.TempDir(), "scratch.wav")
		require.NoError(t, os.WriteFile(video, []byte("v"), 0o600))
		require.NoError(t, os.WriteFile(audio, []byte("a"), 0o600))

		e.Cleanup(video, audio)
		assert.NoFileExists(t, video)
		assert.NoFileExists(t, audio)

		assert.NotPanics(t, func() {
			e.Cleanup(video, audio)
		})
	})

	t.Run("Should ignore empty paths", func(t *testing.T) {
		assert.NotPanics(t, func() {
			e.Cleanup("", "")
		})
	})
}

func TestAudioPathFor(t *testing.T) {
	assert.Equal(t, "/tmp/abc.wav", audioPathFor("/tmp/abc.mp4"))
	assert.Equal(t, "/tmp/clip.wav", audioPathFor("/tmp/clip.webm"))
}
