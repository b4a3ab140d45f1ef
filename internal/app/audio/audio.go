package audio

import (
	"bytes"
	"fmt"
	"os/exec"
)

// Converter normalizes an input media file into a recognizable waveform
type Converter interface {
	Convert(inputPath, outputPath string) error
}

// FFmpegConverter converts any container ffmpeg understands into a
// mono 16kHz PCM WAV, the format the recognition engine expects
type FFmpegConverter struct{}

// NewFFmpegConverter creates an ffmpeg-backed converter
func NewFFmpegConverter() *FFmpegConverter {
	return &FFmpegConverter{}
}

// Convert runs ffmpeg synchronously with fixed parameters
func (c *FFmpegConverter) Convert(inputPath, outputPath string) error {
	cmd := exec.Command("ffmpeg", "-y", "-i", inputPath, "-vn", "-acodec", "pcm_s16le", "-ar", "16000", "-ac", "1", outputPath)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("FFmpeg error: %v, stderr: %s", err, stderr.String())
	}

	return nil
}
