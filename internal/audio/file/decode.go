package file

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	mp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/tphakala/flac"

	"github.com/go-audio/wav"

	"github.com/dhiasalah/websampler-go/internal/audio"
)

// Decode reads encoded audio from r, sniffs the container format and
// decodes it into a sample buffer. WAV, FLAC, MP3 and Ogg Vorbis are
// accepted. Malformed or unrecognized input fails with ErrDecodeFailed; no
// partial buffer is ever returned.
func Decode(r io.Reader) (*audio.Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrDecodeFailed, err)
	}
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: input too short", audio.ErrDecodeFailed)
	}

	switch {
	case bytes.HasPrefix(data, []byte("RIFF")):
		return decodeWAV(data)
	case bytes.HasPrefix(data, []byte("fLaC")):
		return decodeFLAC(data)
	case bytes.HasPrefix(data, []byte("OggS")):
		return decodeOGG(data)
	default:
		// MP3 has no reliable magic beyond a frame sync or an ID3 tag;
		// let the decoder decide.
		return decodeMP3(data)
	}
}

// DecodeFile opens and decodes an audio file from disk.
func DecodeFile(path string) (*audio.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

func decodeWAV(data []byte) (*audio.Buffer, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: wav: %w", audio.ErrDecodeFailed, err)
	}
	if pcm.Format == nil || pcm.Format.NumChannels <= 0 || pcm.Format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: wav: missing format", audio.ErrDecodeFailed)
	}

	channels := pcm.Format.NumChannels
	scale := float64(int64(1) << (dec.BitDepth - 1))
	frames := len(pcm.Data) / channels

	chans := make([][]float64, channels)
	for ch := range chans {
		chans[ch] = make([]float64, frames)
	}
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			chans[ch][i] = float64(pcm.Data[i*channels+ch]) / scale
		}
	}

	return audio.NewBuffer(chans, pcm.Format.SampleRate)
}

func decodeFLAC(data []byte) (*audio.Buffer, error) {
	dec, err := flac.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: flac: %w", audio.ErrDecodeFailed, err)
	}
	if dec.NChannels <= 0 || dec.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: flac: missing format", audio.ErrDecodeFailed)
	}

	bytesPerSample := dec.BitsPerSample / 8
	if bytesPerSample < 2 || bytesPerSample > 4 {
		return nil, fmt.Errorf("%w: flac: unsupported bit depth %d", audio.ErrDecodeFailed, dec.BitsPerSample)
	}
	scale := float64(int64(1) << (dec.BitsPerSample - 1))

	channels := dec.NChannels
	chans := make([][]float64, channels)
	ch := 0

	// Frames arrive as interleaved little-endian PCM bytes.
	for {
		frame, err := dec.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: flac: %w", audio.ErrDecodeFailed, err)
		}

		for i := 0; i+bytesPerSample <= len(frame); i += bytesPerSample {
			var sample int32
			switch dec.BitsPerSample {
			case 16:
				sample = int32(int16(binary.LittleEndian.Uint16(frame[i:])))
			case 24:
				sample = int32(frame[i]) | int32(frame[i+1])<<8 | int32(frame[i+2])<<16
				// Sign extension for 24-bit
				if sample&0x800000 != 0 {
					sample |= -1 << 24
				}
			case 32:
				sample = int32(binary.LittleEndian.Uint32(frame[i:]))
			}
			chans[ch] = append(chans[ch], float64(sample)/scale)
			ch = (ch + 1) % channels
		}
	}

	// A truncated final frame can leave the channels one sample apart;
	// drop the ragged tail so the buffer invariant holds.
	frames := len(chans[0])
	for _, c := range chans[1:] {
		if len(c) < frames {
			frames = len(c)
		}
	}
	for i := range chans {
		chans[i] = chans[i][:frames]
	}

	return audio.NewBuffer(chans, dec.SampleRate)
}

func decodeMP3(data []byte) (*audio.Buffer, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: mp3: %w", audio.ErrDecodeFailed, err)
	}

	// go-mp3 always yields 16-bit stereo little-endian PCM.
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: mp3: %w", audio.ErrDecodeFailed, err)
	}

	frames := len(raw) / 4
	left := make([]float64, frames)
	right := make([]float64, frames)
	for i := 0; i < frames; i++ {
		left[i] = float64(int16(binary.LittleEndian.Uint16(raw[i*4:]))) / 32768.0
		right[i] = float64(int16(binary.LittleEndian.Uint16(raw[i*4+2:]))) / 32768.0
	}

	return audio.NewBuffer([][]float64{left, right}, dec.SampleRate())
}

func decodeOGG(data []byte) (*audio.Buffer, error) {
	interleaved, format, err := oggvorbis.ReadAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: ogg: %w", audio.ErrDecodeFailed, err)
	}
	if format.Channels <= 0 || format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: ogg: missing format", audio.ErrDecodeFailed)
	}

	channels := format.Channels
	frames := len(interleaved) / channels
	chans := make([][]float64, channels)
	for ch := range chans {
		chans[ch] = make([]float64, frames)
	}
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			chans[ch][i] = float64(interleaved[i*channels+ch])
		}
	}

	return audio.NewBuffer(chans, format.SampleRate)
}

// DecodePCM16 converts raw interleaved 16-bit little-endian PCM, the format
// the capture device produces, into a sample buffer.
func DecodePCM16(data []byte, sampleRate int, channels int) (*audio.Buffer, error) {
	if sampleRate <= 0 || channels <= 0 {
		return nil, audio.ErrInvalidParameters
	}

	// Drop a trailing odd byte rather than failing the whole capture.
	if len(data)%2 != 0 {
		data = data[:len(data)-1]
	}

	frames := len(data) / (2 * channels)
	chans := make([][]float64, channels)
	for ch := range chans {
		chans[ch] = make([]float64, frames)
	}
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			off := (i*channels + ch) * 2
			chans[ch][i] = float64(int16(binary.LittleEndian.Uint16(data[off:]))) / 32768.0
		}
	}

	return audio.NewBuffer(chans, sampleRate)
}
