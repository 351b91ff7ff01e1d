package delivery

import "encoding/base64"

// Заголовки, через которые текст едет рядом с бинарным телом.
// Браузер прочитает их только если они перечислены в Access-Control-Expose-Headers.
const (
	HeaderTranscript = "X-Transcript"
	HeaderResponse   = "X-Response"
)

// EncodeHeaderText кодирует UTF-8 текст в base64 для HTTP-заголовка.
func EncodeHeaderText(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func DecodeHeaderText(v string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
