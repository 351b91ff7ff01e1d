package domain

import (
	"bytes"

	"github.com/Vovarama1992/kz_voice/internal/ports"
)

// MaxAudioSize — 5 MiB, примерно 30 секунд речи
const MaxAudioSize = 5 * 1024 * 1024

var (
	oggMagic  = []byte("OggS")
	webmMagic = []byte{0x1A, 0x45, 0xDF, 0xA3}
	ftypMagic = []byte("ftyp")
)

// Classify определяет формат по сигнатуре. Content-Type клиента не учитывается.
func Classify(data []byte) ports.AudioFormat {
	switch {
	case bytes.HasPrefix(data, oggMagic):
		return ports.FormatOggOpus
	case bytes.HasPrefix(data, webmMagic):
		return ports.FormatWebmOpus
	case len(data) >= 8 && bytes.Equal(data[4:8], ftypMagic):
		// ISO BMFF (mp4/m4a): провайдер принимает это как MP3
		return ports.FormatMP3
	default:
		return ports.FormatWebmOpus
	}
}

func Validate(data []byte, maxSize int) error {
	if len(data) == 0 {
		return newStageError(KindInvalidInput, StageIngest, "no audio", ErrEmptyAudio)
	}
	if len(data) > maxSize {
		return newStageError(KindInvalidInput, StageIngest, "audio too large", ErrAudioTooLarge)
	}
	return nil
}

func Ingest(data []byte) (ports.AudioPayload, error) {
	if err := Validate(data, MaxAudioSize); err != nil {
		return ports.AudioPayload{}, err
	}
	return ports.AudioPayload{Data: data, Format: Classify(data)}, nil
}
