package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pauljayakar30/Paninis-eye/internal/modules/session/domain"
	apperrors "github.com/pauljayakar30/Paninis-eye/internal/platform/errors"
)

const (
	FormatJSON = "json"
	FormatTEI  = "tei"
)

// Export renders a session in the requested format. Output depends only on
// the session content, so repeated exports are byte-identical.
func Export(session domain.Session, format string) (filename, mediaType string, content []byte, err error) {
	switch format {
	case FormatJSON:
		content, err = exportJSON(session)
		return "reconstruction_" + session.ID + ".json", "application/json", content, err
	case FormatTEI:
		return "reconstruction_" + session.ID + ".xml", "application/xml", exportTEI(session), nil
	default:
		return "", "", nil, fmt.Errorf("unsupported export format %q: %w", format, apperrors.ErrInvalidInput)
	}
}

type jsonExport struct {
	SessionID  string          `json:"session_id"`
	Filename   string          `json:"filename"`
	SourceText string          `json:"source_text"`
	CreatedAt  string          `json:"created_at"`
	Tokens     []domain.Token  `json:"tokens"`
	Masks      []domain.Mask   `json:"masks"`
	Result     json.RawMessage `json:"result,omitempty"`
}

func exportJSON(session domain.Session) ([]byte, error) {
	export := jsonExport{
		SessionID:  session.ID,
		Filename:   session.Filename,
		SourceText: session.SourceText,
		CreatedAt:  session.CreatedAt.UTC().Format(time.RFC3339),
		Tokens:     session.Tokens,
		Masks:      session.Masks,
	}
	if session.LastResult != nil {
		raw, err := json.Marshal(session.LastResult)
		if err != nil {
			return nil, fmt.Errorf("marshal result: %w", err)
		}
		export.Result = raw
	}
	out, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	return out, nil
}

const teiSkeleton = `<?xml version="1.0" encoding="UTF-8"?>
<TEI xmlns="http://www.tei-c.org/ns/1.0">
  <teiHeader>
    <fileDesc>
      <titleStmt>
        <title>Sanskrit Manuscript Reconstruction</title>
      </titleStmt>
      <publicationStmt>
        <p>Generated by Panini's Eye</p>
      </publicationStmt>
      <sourceDesc>
        <p>Session %s</p>
      </sourceDesc>
    </fileDesc>
  </teiHeader>
  <text>
    <body>
      <div type="manuscript">
        <p>%s</p>
      </div>%s
    </body>
  </text>
</TEI>
`

func exportTEI(session domain.Session) []byte {
	var choices strings.Builder
	if session.LastResult != nil {
		for _, candidate := range session.LastResult.Candidates {
			fmt.Fprintf(&choices, "\n      <choice><corr cert=\"%.2f\">%s</corr></choice>",
				candidate.Scores.Combined, escapeXML(candidate.Text))
		}
	}
	return []byte(fmt.Sprintf(teiSkeleton, escapeXML(session.ID), escapeXML(session.SourceText), choices.String()))
}

func escapeXML(s string) string {
	replacer := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return replacer.Replace(s)
}
