package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
)

// encodeWAV wraps mono 16-bit PCM chunks in a RIFF/WAVE container.
func encodeWAV(frames [][]int16, sampleRate int) []byte {
	var samples int
	for _, f := range frames {
		samples += len(f)
	}
	dataSize := uint32(samples * 2)

	var buf bytes.Buffer

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16)) // PCM chunk size
	binary.Write(&buf, binary.LittleEndian, uint16(1))  // PCM format
	binary.Write(&buf, binary.LittleEndian, uint16(1))  // mono
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*2)) // byte rate
	binary.Write(&buf, binary.LittleEndian, uint16(2))            // block align
	binary.Write(&buf, binary.LittleEndian, uint16(16))           // bits per sample

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataSize)
	for _, f := range frames {
		binary.Write(&buf, binary.LittleEndian, f)
	}

	return buf.Bytes()
}

// writeWAV writes frames to path as a canonical mono 16-bit PCM WAV file.
// Writing the same frames to the same path yields the same file.
func writeWAV(path string, frames [][]int16, sampleRate int) error {
	if err := os.WriteFile(path, encodeWAV(frames, sampleRate), 0o644); err != nil {
		return fmt.Errorf("write wav: %w", err)
	}
	return nil
}
