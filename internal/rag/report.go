package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNoDocuments means a report was requested but nothing relevant is
// stored for the question.
var ErrNoDocuments = errors.New("no relevant documents found")

// reportTopK widens retrieval for report export beyond the chat default.
const reportTopK = 5

// ReportSection is one relevant act excerpt in an exported report.
type ReportSection struct {
	Index    int
	Filename string
	Content  string
}

// Report is the exportable collection of act sections relevant to a
// question. Rendering to a final document format is up to the caller.
type Report struct {
	Question string
	Sections []ReportSection
	Degraded bool
}

// BuildReport retrieves the act sections relevant to question for export.
// Unlike Answer, an empty retrieval is an error here: there is nothing to
// export.
func (s *Service) BuildReport(ctx context.Context, question string) (*Report, error) {
	q := strings.TrimSpace(question)
	if q == "" {
		return nil, ErrEmptyQuestion
	}

	res, err := s.retriever.Retrieve(ctx, q, reportTopK)
	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}

	rep := &Report{Question: q, Degraded: res.Degraded}
	for i, d := range res.Documents {
		if strings.TrimSpace(d.Content) == "" {
			continue
		}
		name := d.Metadata.Filename
		if name == "" {
			name = "Unknown Document"
		}
		rep.Sections = append(rep.Sections, ReportSection{
			Index:    i + 1,
			Filename: name,
			Content:  d.Content,
		})
	}
	if len(rep.Sections) == 0 {
		return nil, ErrNoDocuments
	}
	return rep, nil
}

// Render lays the report out as plain text with a disclaimer footer.
func (r *Report) Render() string {
	var sb strings.Builder
	sb.WriteString("Maharashtra Cooperative Societies Act\n")
	sb.WriteString("=====================================\n\n")
	sb.WriteString("Query: " + r.Question + "\n\n")
	for _, sec := range r.Sections {
		fmt.Fprintf(&sb, "Section %d\n", sec.Index)
		fmt.Fprintf(&sb, "Source: %s\n\n", sec.Filename)
		sb.WriteString(sec.Content)
		sb.WriteString("\n\n")
	}
	sb.WriteString("This document is generated from the MCS Act Legal Assistant. " +
		"Please verify with official sources for legal proceedings.\n")
	return sb.String()
}
