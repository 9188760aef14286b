package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/yungbote/lifeweeks-backend/internal/pkg/logger"
	"github.com/yungbote/lifeweeks-backend/internal/utils"
)

// SpeechResult is the collaborator outcome: a transcript, or a placeholder
// marked Unavailable when no real provider is configured. Hard failures of a
// configured provider come back as errors instead.
type SpeechResult struct {
	Text        string
	Unavailable bool
	Reason      string
}

type SpeechProvider interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (*SpeechResult, error)
	Close() error
}

// PlaceholderTranscript is what an unconfigured provider "hears".
const PlaceholderTranscript = "Voice note recorded (transcription not configured)"

// NewSpeechProvider returns the Google Cloud Speech provider when
// credentials are configured, and a placeholder provider otherwise.
func NewSpeechProvider(log *logger.Logger) (SpeechProvider, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	slog := log.With("service", "SpeechProvider")

	creds := strings.TrimSpace(utils.GetEnv("GOOGLE_APPLICATION_CREDENTIALS_JSON", "", nil))
	if creds == "" {
		creds = strings.TrimSpace(utils.GetEnv("GOOGLE_APPLICATION_CREDENTIALS", "", nil))
	}
	if creds == "" {
		slog.Warn("Google credentials not configured, voice notes will use placeholder transcripts")
		return &unavailableSpeechProvider{reason: "google credentials not configured"}, nil
	}

	c, err := speech.NewClient(context.Background(), option.WithCredentialsFile(creds))
	if err != nil {
		slog.Warn("Speech client init failed, falling back to placeholder transcripts", "error", err)
		return &unavailableSpeechProvider{reason: err.Error()}, nil
	}

	return &gcpSpeechProvider{
		log:        slog,
		client:     c,
		maxRetries: 4,
	}, nil
}

type gcpSpeechProvider struct {
	log        *logger.Logger
	client     *speech.Client
	maxRetries int
}

func (s *gcpSpeechProvider) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *gcpSpeechProvider) Transcribe(ctx context.Context, audio []byte, mimeType string) (*SpeechResult, error) {
	// voice notes are short; keep a strict timeout
	ctx, cancel := context.WithTimeout(ctx, 3*time.Minute)
	defer cancel()

	if len(audio) == 0 {
		return &SpeechResult{Text: ""}, nil
	}

	req := &speechpb.LongRunningRecognizeRequest{
		Config: buildRecognitionConfig(mimeType),
		Audio:  &speechpb.RecognitionAudio{AudioSource: &speechpb.RecognitionAudio_Content{Content: audio}},
	}

	resp, err := s.retryLR(ctx, func() (*speechpb.LongRunningRecognizeResponse, error) {
		op, err := s.client.LongRunningRecognize(ctx, req)
		if err != nil {
			return nil, err
		}
		return op.Wait(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("speech longrunningrecognize: %w", err)
	}

	return &SpeechResult{Text: primaryText(resp)}, nil
}

func buildRecognitionConfig(mimeType string) *speechpb.RecognitionConfig {
	return &speechpb.RecognitionConfig{
		LanguageCode:               "en-US",
		EnableAutomaticPunctuation: true,
		Encoding:                   inferEncoding(mimeType),
	}
}

func inferEncoding(mimeType string) speechpb.RecognitionConfig_AudioEncoding {
	m := strings.ToLower(strings.TrimSpace(mimeType))

	switch {
	case strings.Contains(m, "wav"):
		return speechpb.RecognitionConfig_LINEAR16
	case strings.Contains(m, "flac"):
		return speechpb.RecognitionConfig_FLAC
	case strings.Contains(m, "mp3") || strings.Contains(m, "mpeg"):
		return speechpb.RecognitionConfig_MP3
	case strings.Contains(m, "ogg") || strings.Contains(m, "opus") || strings.Contains(m, "webm"):
		return speechpb.RecognitionConfig_OGG_OPUS
	default:
		// leave unspecified; the API can sometimes auto-detect
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED
	}
}

func primaryText(resp *speechpb.LongRunningRecognizeResponse) string {
	if resp == nil || len(resp.Results) == 0 {
		return ""
	}

	var full strings.Builder
	for _, r := range resp.Results {
		if r == nil || len(r.Alternatives) == 0 || r.Alternatives[0] == nil {
			continue
		}
		alt := r.Alternatives[0]
		if strings.TrimSpace(alt.Transcript) == "" {
			continue
		}
		if full.Len() > 0 {
			full.WriteString(" ")
		}
		full.WriteString(strings.TrimSpace(alt.Transcript))
	}
	return strings.TrimSpace(full.String())
}

func (s *gcpSpeechProvider) retryLR(ctx context.Context, fn func() (*speechpb.LongRunningRecognizeResponse, error)) (*speechpb.LongRunningRecognizeResponse, error) {
	backoff := 750 * time.Millisecond
	var last error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		resp, err := fn()
		if err == nil {
			return resp, nil
		}
		last = err

		code := status.Code(err)
		if code != codes.Unavailable && code != codes.ResourceExhausted && code != codes.DeadlineExceeded {
			return nil, err
		}
		if attempt == s.maxRetries {
			break
		}
		time.Sleep(backoff)
		backoff *= 2
		if backoff > 10*time.Second {
			backoff = 10 * time.Second
		}
	}
	return nil, last
}

type unavailableSpeechProvider struct {
	reason string
}

func (p *unavailableSpeechProvider) Transcribe(ctx context.Context, audio []byte, mimeType string) (*SpeechResult, error) {
	return &SpeechResult{
		Text:        PlaceholderTranscript,
		Unavailable: true,
		Reason:      p.reason,
	}, nil
}

func (p *unavailableSpeechProvider) Close() error { return nil }
