package ai

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/api/option"
	speech "google.golang.org/api/speech/v1p1beta1"

	"github.com/Vovarama1992/kz_voice/internal/ports"
)

// GoogleCredentials — один из вариантов, по приоритету сверху вниз
type GoogleCredentials struct {
	CredentialsBase64 string // JSON сервис-аккаунта в base64 (деплой)
	CredentialsFile   string // путь к файлу (локально)
	APIKey            string
}

func (c GoogleCredentials) clientOptions() ([]option.ClientOption, error) {
	switch {
	case c.CredentialsBase64 != "":
		raw, err := base64.StdEncoding.DecodeString(c.CredentialsBase64)
		if err != nil {
			return nil, fmt.Errorf("decode google credentials: %w", err)
		}
		return []option.ClientOption{option.WithCredentialsJSON(raw)}, nil
	case c.CredentialsFile != "":
		return []option.ClientOption{option.WithCredentialsFile(c.CredentialsFile)}, nil
	case c.APIKey != "":
		return []option.ClientOption{option.WithAPIKey(c.APIKey)}, nil
	}
	// application default credentials
	return nil, nil
}

type GoogleSTTClient struct {
	svc *speech.Service
}

func NewGoogleSTTClient(ctx context.Context, creds GoogleCredentials, extra ...option.ClientOption) (*GoogleSTTClient, error) {
	opts, err := creds.clientOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, extra...)

	svc, err := speech.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("google stt: create service: %w", err)
	}
	return &GoogleSTTClient{svc: svc}, nil
}

func (c *GoogleSTTClient) Recognize(ctx context.Context, req ports.RecognizeRequest) ([]ports.RecognitionSegment, error) {
	call := c.svc.Speech.Recognize(&speech.RecognizeRequest{
		Audio: &speech.RecognitionAudio{
			Content: base64.StdEncoding.EncodeToString(req.Audio),
		},
		Config: &speech.RecognitionConfig{
			Encoding:                   req.Encoding.String(),
			SampleRateHertz:            int64(req.SampleRateHertz),
			LanguageCode:               req.LanguageCode,
			Model:                      "default",
			EnableAutomaticPunctuation: req.EnableAutomaticPunctuation,
		},
	})

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, wrapDiag("google-stt", err)
	}

	segments := make([]ports.RecognitionSegment, 0, len(resp.Results))
	for _, r := range resp.Results {
		if r == nil || len(r.Alternatives) == 0 || r.Alternatives[0] == nil {
			continue
		}
		alt := r.Alternatives[0]
		segments = append(segments, ports.RecognitionSegment{
			Transcript: alt.Transcript,
			Confidence: alt.Confidence,
		})
	}
	return segments, nil
}
