package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/pauljayakar30/Paninis-eye/internal/modules/session/domain"
	sessionout "github.com/pauljayakar30/Paninis-eye/internal/modules/session/port/out"
	"github.com/pauljayakar30/Paninis-eye/internal/platform/devanagari"
	apperrors "github.com/pauljayakar30/Paninis-eye/internal/platform/errors"
)

// HTTPOCRClient posts manuscript images to the recognition collaborator and
// enriches the raw response with script detection, reconstruction flags,
// mask ids and damage severity.
type HTTPOCRClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPOCRClient(baseURL string) *HTTPOCRClient {
	return &HTTPOCRClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

var _ sessionout.OCRClient = (*HTTPOCRClient)(nil)

type ocrResponse struct {
	Text   string `json:"text"`
	Tokens []struct {
		Text       string  `json:"text"`
		StartChar  int     `json:"start_char"`
		EndChar    int     `json:"end_char"`
		Confidence float64 `json:"confidence"`
	} `json:"tokens"`
	Masks []struct {
		BBox       [4]float64 `json:"bbox"`
		Confidence float64    `json:"confidence"`
		DamageType string     `json:"type"`
		StartChar  int        `json:"start_char"`
		EndChar    int        `json:"end_char"`
	} `json:"masks"`
}

func (c *HTTPOCRClient) Recognize(ctx context.Context, filename string, image []byte) (sessionout.OCRResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return sessionout.OCRResult{}, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return sessionout.OCRResult{}, fmt.Errorf("build upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return sessionout.OCRResult{}, fmt.Errorf("build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ocr", &body)
	if err != nil {
		return sessionout.OCRResult{}, fmt.Errorf("build ocr request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return sessionout.OCRResult{}, fmt.Errorf("ocr service unreachable: %w", apperrors.ErrBackendUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return sessionout.OCRResult{}, fmt.Errorf("ocr service returned %d: %w", resp.StatusCode, apperrors.ErrBackendError)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return sessionout.OCRResult{}, fmt.Errorf("read ocr response: %w", err)
	}
	var decoded ocrResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return sessionout.OCRResult{}, fmt.Errorf("malformed ocr response: %w", apperrors.ErrBackendError)
	}
	if decoded.Text == "" {
		return sessionout.OCRResult{}, fmt.Errorf("ocr response missing text: %w", apperrors.ErrBackendError)
	}
	return enhance(decoded), nil
}

func enhance(decoded ocrResponse) sessionout.OCRResult {
	result := sessionout.OCRResult{Text: decoded.Text}
	for _, token := range decoded.Tokens {
		result.Tokens = append(result.Tokens, domain.Token{
			Text:                token.Text,
			StartChar:           token.StartChar,
			EndChar:             token.EndChar,
			Confidence:          token.Confidence,
			IsSanskrit:          devanagari.ContainsDevanagari(token.Text),
			NeedsReconstruction: domain.NeedsReconstruction(token.Confidence),
		})
	}
	for i, mask := range decoded.Masks {
		result.Masks = append(result.Masks, domain.Mask{
			MaskID:     fmt.Sprintf("mask_%d", i),
			BBox:       mask.BBox,
			Confidence: mask.Confidence,
			DamageType: mask.DamageType,
			Severity:   domain.ClassifySeverity(mask.Confidence),
			StartChar:  mask.StartChar,
			EndChar:    mask.EndChar,
		})
	}
	return result
}
