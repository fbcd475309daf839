package retriever

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/societydesk/actbot/internal/embed"
	"github.com/societydesk/actbot/internal/model"
)

type fakeEmbedder struct {
	vec []float32
	err error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string, mode embed.Mode) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vec, nil
}

func (f *fakeEmbedder) Dimension() int { return len(f.vec) }

type fakeStore struct {
	searchDocs  []model.RetrievedDocument
	searchErr   error
	scanDocs    []model.RetrievedDocument
	scanErr     error
	scanCalled  bool
	searchCalls int
}

func (f *fakeStore) SimilaritySearch(ctx context.Context, q []float32, threshold float64, limit int) ([]model.RetrievedDocument, error) {
	f.searchCalls++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchDocs, nil
}

func (f *fakeStore) ScanAll(ctx context.Context, limit int) ([]model.RetrievedDocument, error) {
	f.scanCalled = true
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	if limit < len(f.scanDocs) {
		return f.scanDocs[:limit], nil
	}
	return f.scanDocs, nil
}

func doc(name string, id int, score float64) model.RetrievedDocument {
	return model.RetrievedDocument{
		Content:    "section text",
		Metadata:   model.ChunkMetadata{Filename: name, ChunkID: id, TotalChunks: 10},
		Similarity: score,
	}
}

func TestRetrieve_RankedPath(t *testing.T) {
	st := &fakeStore{searchDocs: []model.RetrievedDocument{
		doc("act.pdf", 3, 0.91),
		doc("act.pdf", 7, 0.74),
		doc("act.pdf", 1, 0.58),
	}}
	r := New(&fakeEmbedder{vec: []float32{0.1, 0.2}}, st, zap.NewNop())

	res, err := r.Retrieve(context.Background(), "what is a quorum", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Degraded {
		t.Fatal("ranked path must not be flagged degraded")
	}
	if len(res.Documents) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(res.Documents))
	}
	for i := 1; i < len(res.Documents); i++ {
		if res.Documents[i].Similarity > res.Documents[i-1].Similarity {
			t.Fatalf("similarity not non-increasing at %d", i)
		}
	}
	if st.scanCalled {
		t.Fatal("fallback scan must not run when similarity search succeeds")
	}
}

func TestRetrieve_EmptyStoreIsNotAnError(t *testing.T) {
	r := New(&fakeEmbedder{vec: []float32{1}}, &fakeStore{}, zap.NewNop())

	res, err := r.Retrieve(context.Background(), "anything", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Documents) != 0 {
		t.Fatalf("expected empty result, got %d documents", len(res.Documents))
	}
	if res.Degraded {
		t.Fatal("empty ranked result must not be degraded")
	}
}

func TestRetrieve_FallbackOnSearchError(t *testing.T) {
	st := &fakeStore{
		searchErr: errors.New("function match_documents does not exist"),
		scanDocs: []model.RetrievedDocument{
			doc("act.pdf", 1, 0),
			doc("act.pdf", 2, 0),
			doc("act.pdf", 3, 0),
			doc("act.pdf", 4, 0),
		},
	}
	r := New(&fakeEmbedder{vec: []float32{1}}, st, zap.NewNop())

	res, err := r.Retrieve(context.Background(), "audit rules", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Degraded {
		t.Fatal("fallback result must be flagged degraded")
	}
	if len(res.Documents) > 3 {
		t.Fatalf("fallback must respect topK, got %d documents", len(res.Documents))
	}
	if !st.scanCalled {
		t.Fatal("expected fallback scan to run")
	}
}

func TestRetrieve_BothPathsFailing(t *testing.T) {
	st := &fakeStore{
		searchErr: errors.New("search down"),
		scanErr:   errors.New("scan down"),
	}
	r := New(&fakeEmbedder{vec: []float32{1}}, st, zap.NewNop())

	_, err := r.Retrieve(context.Background(), "anything", 3)
	if err == nil {
		t.Fatal("expected error when both paths fail")
	}
	var rerr *Error
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *retriever.Error, got %T", err)
	}
	if !strings.Contains(err.Error(), "search down") || !strings.Contains(err.Error(), "scan down") {
		t.Fatalf("error should carry both causes: %v", err)
	}
}

func TestRetrieve_EmbeddingFailureIsFatal(t *testing.T) {
	st := &fakeStore{scanDocs: []model.RetrievedDocument{doc("act.pdf", 1, 0)}}
	r := New(&fakeEmbedder{err: &embed.Error{Reason: "timeout"}}, st, zap.NewNop())

	_, err := r.Retrieve(context.Background(), "anything", 3)
	if err == nil {
		t.Fatal("expected error on embedding failure")
	}
	var eerr *embed.Error
	if !errors.As(err, &eerr) {
		t.Fatalf("expected wrapped *embed.Error, got %v", err)
	}
	if st.searchCalls != 0 || st.scanCalled {
		t.Fatal("store must not be queried without a query vector")
	}
}
