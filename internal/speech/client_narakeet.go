package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	DefaultNarakeetURL = "https://api.narakeet.com"
	DefaultVoice       = "aidar" // казахский голос

	// больше m4a-ответа за одну реплику не бывает
	maxAudioResponse = 20 << 20
)

var ErrEmptyAudio = errors.New("tts: empty audio response")

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tts [narakeet]: API error %d: %s", e.StatusCode, e.Message)
}

type NarakeetClient struct {
	apiKey  string
	voice   string
	baseURL string
	httpCli *http.Client
}

func NewNarakeetClient(apiKey, voice, baseURL string, httpCli *http.Client) *NarakeetClient {
	if voice == "" {
		voice = DefaultVoice
	}
	if baseURL == "" {
		baseURL = DefaultNarakeetURL
	}
	if httpCli == nil {
		httpCli = http.DefaultClient
	}
	return &NarakeetClient{
		apiKey:  apiKey,
		voice:   voice,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCli: httpCli,
	}
}

// TEXT → SPEECH (m4a в памяти, без временных файлов)
func (c *NarakeetClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	url := c.baseURL + "/text-to-speech/m4a"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(text))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("x-voice", c.voice)
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("Accept", "application/octet-stream")

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return nil, fmt.Errorf("narakeet request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(b))}
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(resp.Body, maxAudioResponse)); err != nil {
		return nil, fmt.Errorf("read narakeet audio: %w", err)
	}
	if buf.Len() == 0 {
		return nil, ErrEmptyAudio
	}
	return buf.Bytes(), nil
}
