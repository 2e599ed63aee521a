// Package audiotest builds small, valid audio files for tests.
package audiotest

import (
	"encoding/binary"
	"time"
)

// MP3FrameSamples is the number of samples in one MPEG-1 Layer III frame.
const MP3FrameSamples = 1152

// MP3SampleRate is the sample rate of the frames written by MP3.
const MP3SampleRate = 44100

// WAV returns a silent 16-bit mono PCM WAV file of the given length.
func WAV(length time.Duration, sampleRate int) []byte {
	frames := int(int64(sampleRate) * int64(length) / int64(time.Second))
	dataSize := frames * 2

	le := binary.LittleEndian
	b := make([]byte, 0, 44+dataSize)
	b = append(b, "RIFF"...)
	b = le.AppendUint32(b, uint32(36+dataSize))
	b = append(b, "WAVE"...)
	b = append(b, "fmt "...)
	b = le.AppendUint32(b, 16)
	b = le.AppendUint16(b, 1) // PCM
	b = le.AppendUint16(b, 1) // mono
	b = le.AppendUint32(b, uint32(sampleRate))
	b = le.AppendUint32(b, uint32(sampleRate*2))
	b = le.AppendUint16(b, 2)
	b = le.AppendUint16(b, 16)
	b = append(b, "data"...)
	b = le.AppendUint32(b, uint32(dataSize))
	return append(b, make([]byte, dataSize)...)
}

// MP3 returns an ID3-tagged stream of silent MPEG-1 Layer III frames
// (128 kbit/s, 44.1 kHz, mono). Its playback length is
// frames*MP3FrameSamples/MP3SampleRate seconds.
func MP3(frames int) []byte {
	// 144 * 128000 / 44100, no padding
	const frameSize = 417

	// ID3v2.3 header with an empty tag body.
	b := []byte{'I', 'D', '3', 3, 0, 0, 0, 0, 0, 0}
	for i := 0; i < frames; i++ {
		frame := make([]byte, frameSize)
		frame[0], frame[1], frame[2], frame[3] = 0xFF, 0xFB, 0x90, 0xC0
		b = append(b, frame...)
	}
	return b
}
