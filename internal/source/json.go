package source

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/nao1215/issuesreport/internal/model"
)

// Document is the native input format:
//
//	{
//	  "filesAnalyzed": 12,
//	  "issues": [
//	    {"severity": "MAJOR", "ruleKey": "go:S1481", "ruleName": "Unused local variables",
//	     "filePath": "main.go", "startLine": 10, "message": "Remove \"tmp\"."}
//	  ]
//	}
type Document struct {
	// FilesAnalyzed is the number of files the engine analyzed.
	FilesAnalyzed int `json:"filesAnalyzed"`

	// Issues lists the engine's findings.
	Issues []model.Issue `json:"issues"`
}

// DecodeJSON decodes a native JSON document. Unknown fields are rejected so
// that typos in hand-written inputs surface early.
func DecodeJSON(data []byte) (*Batch, error) {
	var doc Document

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if doc.FilesAnalyzed < 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, model.ErrNegativeFileCount)
	}

	for i, issue := range doc.Issues {
		if issue.RuleKey == "" {
			return nil, fmt.Errorf("%w: issue %d has no ruleKey", ErrInvalidDocument, i)
		}
	}

	return &Batch{
		Issues:        doc.Issues,
		FilesAnalyzed: doc.FilesAnalyzed,
	}, nil
}
