package player

import (
	"bytes"
	"encoding/binary"
)

// makeWAV builds a mono 16-bit PCM WAV file with the given number of samples.
func makeWAV(sampleRate, samples int) []byte {
	const (
		channels      = 1
		bitsPerSample = 16
	)
	blockAlign := channels * bitsPerSample / 8
	dataSize := samples * blockAlign

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize)) //nolint:gosec // small test sizes
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(&buf, binary.LittleEndian, uint16(channels))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))            //nolint:gosec // small test sizes
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*blockAlign)) //nolint:gosec // small test sizes
	_ = binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))            //nolint:gosec // small test sizes
	_ = binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(dataSize)) //nolint:gosec // small test sizes
	buf.Write(make([]byte, dataSize))
	return buf.Bytes()
}
