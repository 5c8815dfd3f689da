// Package file converts between the engine's sample buffers and encoded
// audio: a byte-exact 16-bit PCM WAV encoder for export and upload, a WAV
// file writer, and decoders for the formats the loader accepts.
package file

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/dhiasalah/websampler-go/internal/audio"
)

// Standard audio constants
const (
	DefaultSampleRate = 44100
	DefaultBitDepth   = 16
)

const wavHeaderSize = 44

// EncodeWAV encodes buf as a complete in-memory WAV container: 16-bit
// signed PCM, interleaved channels, standard 44-byte RIFF/WAVE/fmt/data
// header. The output is byte-exact for a given buffer, so it can be
// verified or diffed by automated checks.
func EncodeWAV(buf *audio.Buffer) ([]byte, error) {
	if buf == nil || buf.NumChannels() == 0 || buf.SampleRate <= 0 {
		return nil, audio.ErrInvalidParameters
	}

	channels := buf.NumChannels()
	frames := buf.FrameCount()
	blockAlign := channels * 2
	dataSize := frames * blockAlign
	byteRate := buf.SampleRate * blockAlign

	out := bytes.NewBuffer(make([]byte, 0, wavHeaderSize+dataSize))

	// RIFF chunk descriptor
	out.WriteString("RIFF")
	binary.Write(out, binary.LittleEndian, uint32(36+dataSize))
	out.WriteString("WAVE")

	// fmt sub-chunk
	out.WriteString("fmt ")
	binary.Write(out, binary.LittleEndian, uint32(16))
	binary.Write(out, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(out, binary.LittleEndian, uint16(channels))
	binary.Write(out, binary.LittleEndian, uint32(buf.SampleRate))
	binary.Write(out, binary.LittleEndian, uint32(byteRate))
	binary.Write(out, binary.LittleEndian, uint16(blockAlign))
	binary.Write(out, binary.LittleEndian, uint16(DefaultBitDepth))

	// data sub-chunk
	out.WriteString("data")
	binary.Write(out, binary.LittleEndian, uint32(dataSize))

	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			binary.Write(out, binary.LittleEndian, floatToPCM16(buf.Channels[ch][i]))
		}
	}

	return out.Bytes(), nil
}

// floatToPCM16 maps a float sample to 16-bit PCM: clamp to [-1, 1], then
// scale by 32768 for negative and 32767 for non-negative values.
func floatToPCM16(s float64) int16 {
	if s < -1 {
		s = -1
	} else if s > 1 {
		s = 1
	}
	if s < 0 {
		return int16(s * 32768)
	}
	return int16(s * 32767)
}

// SaveWAV writes buf to a WAV file at filePath, creating the directory
// structure if needed.
func SaveWAV(filePath string, buf *audio.Buffer) error {
	if buf == nil || buf.NumChannels() == 0 {
		return audio.ErrInvalidParameters
	}

	if err := os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	outFile, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer outFile.Close()

	enc := wav.NewEncoder(outFile, buf.SampleRate, DefaultBitDepth, buf.NumChannels(), 1)

	if err := enc.Write(&gaudio.IntBuffer{
		Data:   interleaveToInts(buf),
		Format: &gaudio.Format{SampleRate: buf.SampleRate, NumChannels: buf.NumChannels()},
	}); err != nil {
		return fmt.Errorf("failed to write to WAV encoder: %w", err)
	}

	return enc.Close()
}

// interleaveToInts flattens the buffer's channels into interleaved 16-bit
// samples stored as ints, the layout go-audio's encoder expects.
func interleaveToInts(buf *audio.Buffer) []int {
	channels := buf.NumChannels()
	frames := buf.FrameCount()
	data := make([]int, 0, frames*channels)
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			data = append(data, int(floatToPCM16(buf.Channels[ch][i])))
		}
	}
	return data
}
