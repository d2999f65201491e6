package tags

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	goflac "github.com/go-flac/go-flac"
	"github.com/llehouerou/go-m4a"
	"github.com/llehouerou/go-mp3"
)

// ReadAudioInfo reads audio stream properties (duration, sample rate)
// without decoding the whole stream. Both must be positive.
func ReadAudioInfo(path string) (*AudioInfo, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !Supported(path) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExtension, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer f.Close()

	var info *AudioInfo
	switch ext {
	case ExtMP3:
		info, err = readMP3AudioInfo(f)
	case ExtFLAC:
		info, err = readFLACStreamInfo(path)
	case ExtOPUS:
		info, err = readOpusAudioInfo(f)
	case ExtM4A:
		info, err = readM4AAudioInfo(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingAudioProperties, err)
	}
	if info.Duration <= 0 || info.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: duration %gs, sample rate %d",
			ErrMissingAudioProperties, info.Duration, info.SampleRate)
	}
	return info, nil
}

// readMP3AudioInfo extracts audio info from an MP3 file.
func readMP3AudioInfo(f *os.File) (*AudioInfo, error) {
	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, err
	}

	sampleRate := decoder.SampleRate()
	if sampleRate == 0 {
		return nil, errors.New("mp3: invalid sample rate")
	}
	sampleCount := max(decoder.SampleCount(), 0)

	return &AudioInfo{
		Duration:   float64(sampleCount) / float64(sampleRate),
		SampleRate: sampleRate,
	}, nil
}

// readFLACStreamInfo extracts audio info from FLAC streaminfo metadata.
func readFLACStreamInfo(path string) (*AudioInfo, error) {
	flacFile, err := goflac.ParseFile(path)
	if err != nil {
		return nil, err
	}

	for _, meta := range flacFile.Meta {
		if meta.Type != goflac.StreamInfo || len(meta.Data) < 18 {
			continue
		}
		data := meta.Data

		// Sample rate is in bits 0-19 of bytes 10-12
		sampleRate := int(data[10])<<12 | int(data[11])<<4 | int(data[12])>>4
		// Total samples is in bytes 14-17 (plus 4 bits from byte 13)
		totalSamples := int64(data[13]&0x0F)<<32 | int64(data[14])<<24 | int64(data[15])<<16 | int64(data[16])<<8 | int64(data[17])

		var duration float64
		if sampleRate > 0 {
			duration = float64(totalSamples) / float64(sampleRate)
		}
		return &AudioInfo{Duration: duration, SampleRate: sampleRate}, nil
	}
	return nil, errors.New("flac: no streaminfo block")
}

// Opus granule positions always count 48 kHz samples.
const opusGranuleRate = 48000

// readOpusAudioInfo extracts audio info from an Opus file: the input
// sample rate and pre-skip from the OpusHead packet, the duration from the
// last page's granule position.
func readOpusAudioInfo(f *os.File) (*AudioInfo, error) {
	head := make([]byte, 4096)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	head = head[:n]

	idx := bytes.Index(head, []byte("OpusHead"))
	if idx < 0 || idx+16 > len(head) {
		return nil, errors.New("opus: no OpusHead packet")
	}
	preSkip := int64(binary.LittleEndian.Uint16(head[idx+10:]))
	sampleRate := int(binary.LittleEndian.Uint32(head[idx+12:]))
	if sampleRate == 0 {
		sampleRate = opusGranuleRate
	}

	granule, err := lastOggGranule(f)
	if err != nil {
		return nil, err
	}
	return &AudioInfo{
		Duration:   float64(max(granule-preSkip, 0)) / opusGranuleRate,
		SampleRate: sampleRate,
	}, nil
}

// lastOggGranule returns the granule position of the last Ogg page.
func lastOggGranule(f *os.File) (int64, error) {
	fi, err := f.Stat()
	if err != nil {
		return 0, err
	}

	// Read the last 64KB to find the last OGG page
	searchSize := min(int64(65536), fi.Size())
	if _, err := f.Seek(-searchSize, io.SeekEnd); err != nil {
		return 0, err
	}
	buf := make([]byte, searchSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return 0, err
	}
	buf = buf[:n]

	// Search backwards for OggS magic; granule position is at offset 6,
	// 8 bytes little-endian.
	for i := len(buf) - 27; i >= 0; i-- {
		if bytes.HasPrefix(buf[i:], []byte("OggS")) {
			if g := int64(binary.LittleEndian.Uint64(buf[i+6:])); g > 0 {
				return g, nil
			}
			break
		}
	}
	return 0, errors.New("ogg: could not determine duration")
}

// readM4AAudioInfo extracts audio info from an M4A file.
func readM4AAudioInfo(f *os.File) (*AudioInfo, error) {
	container, err := m4a.Open(f)
	if err != nil {
		return nil, err
	}
	return &AudioInfo{
		Duration:   container.Duration().Seconds(),
		SampleRate: int(container.SampleRate()),
	}, nil
}
