package ports

// AudioFormat — тег кодировки, который ждёт STT-провайдер.
type AudioFormat string

const (
	FormatWebmOpus AudioFormat = "WEBM_OPUS"
	FormatOggOpus  AudioFormat = "OGG_OPUS"
	// MP3 — ближайший тег провайдера для контейнера MP4/AAC
	FormatMP3 AudioFormat = "MP3"
)

// SampleRate одинаковый для всех форматов
const SampleRate = 48000

func (f AudioFormat) SampleRateHertz() int {
	return SampleRate
}

func (f AudioFormat) String() string {
	return string(f)
}

// AudioPayload — входное аудио после проверки. Не мутируется.
type AudioPayload struct {
	Data   []byte
	Format AudioFormat
}

func (p AudioPayload) Size() int {
	return len(p.Data)
}

// SynthesizedAudio — итоговый ответ голосом (m4a).
type SynthesizedAudio struct {
	Data        []byte
	ContentType string
}
