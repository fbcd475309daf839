package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/societydesk/actbot/internal/chunk"
	"github.com/societydesk/actbot/internal/embed"
	"github.com/societydesk/actbot/internal/model"
)

type countingEmbedder struct {
	dim     int
	calls   int
	failOn  int // 1-based call number that errors; 0 disables
	lastMod embed.Mode
}

func (c *countingEmbedder) Embed(ctx context.Context, text string, mode embed.Mode) ([]float32, error) {
	c.calls++
	c.lastMod = mode
	if c.failOn != 0 && c.calls == c.failOn {
		return nil, &embed.Error{Reason: "injected failure"}
	}
	return make([]float32, c.dim), nil
}

func (c *countingEmbedder) Dimension() int { return c.dim }

type memStore struct {
	chunks    []model.Chunk
	insertErr error
}

func (m *memStore) Insert(ctx context.Context, c model.Chunk) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.chunks = append(m.chunks, c)
	return nil
}

func newTestPipeline(t *testing.T, texts map[string]string, emb *countingEmbedder, st *memStore) *Pipeline {
	t.Helper()
	splitter, err := chunk.NewSplitter(10, 2)
	if err != nil {
		t.Fatal(err)
	}
	extract := func(path string) (string, error) {
		text, ok := texts[filepath.Base(path)]
		if !ok {
			return "", errors.New("unreadable file")
		}
		return text, nil
	}
	return New(extract, splitter, emb, st, zap.NewNop())
}

func writePDFs(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("%PDF-stub"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func manyWords(n int) string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("word%d", i)
	}
	return strings.Join(out, " ")
}

func TestRun_IngestsAllChunksWithMetadata(t *testing.T) {
	emb := &countingEmbedder{dim: 4}
	st := &memStore{}
	p := newTestPipeline(t, map[string]string{"act.pdf": manyWords(25)}, emb, st)

	sum, err := p.Run(context.Background(), writePDFs(t, "act.pdf"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 25 words, size 10, overlap 2 -> ceil(23/8) = 3 chunks
	if sum.ChunksUploaded != 3 || sum.FilesProcessed != 1 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if emb.lastMod != embed.ModeDocument {
		t.Fatalf("ingestion must embed with the document mode, got %q", emb.lastMod)
	}
	for i, c := range st.chunks {
		md := c.Metadata
		if md.Filename != "act.pdf" || md.ChunkID != i+1 || md.TotalChunks != 3 {
			t.Fatalf("chunk %d has wrong metadata: %+v", i, md)
		}
		if len(c.Embedding) != 4 {
			t.Fatalf("chunk %d has wrong embedding length %d", i, len(c.Embedding))
		}
	}
}

func TestRun_ChunkFailureIsSkippedNotFatal(t *testing.T) {
	emb := &countingEmbedder{dim: 4, failOn: 2}
	st := &memStore{}
	p := newTestPipeline(t, map[string]string{"act.pdf": manyWords(25)}, emb, st)

	sum, err := p.Run(context.Background(), writePDFs(t, "act.pdf"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.ChunksUploaded != 2 {
		t.Fatalf("expected failed chunk to be skipped, got %d uploaded", sum.ChunksUploaded)
	}
	if sum.FilesProcessed != 1 {
		t.Fatalf("file with a bad chunk still counts as processed: %+v", sum)
	}
}

func TestRun_FileFailuresDoNotAbortBatch(t *testing.T) {
	emb := &countingEmbedder{dim: 4}
	st := &memStore{}
	texts := map[string]string{
		"good.pdf":  manyWords(12),
		"empty.pdf": "   ",
		// broken.pdf missing from the map -> extractor errors
	}
	p := newTestPipeline(t, texts, emb, st)

	sum, err := p.Run(context.Background(), writePDFs(t, "good.pdf", "empty.pdf", "broken.pdf"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.FilesFound != 3 {
		t.Fatalf("expected 3 files found, got %d", sum.FilesFound)
	}
	if sum.FilesProcessed != 1 {
		t.Fatalf("only the good file should process, got %d", sum.FilesProcessed)
	}
	if sum.ChunksUploaded == 0 {
		t.Fatal("good file should upload chunks")
	}
}

func TestRun_UnreadableDirectoryIsFatal(t *testing.T) {
	p := newTestPipeline(t, nil, &countingEmbedder{dim: 4}, &memStore{})
	if _, err := p.Run(context.Background(), filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing input directory")
	}
}

func TestRun_IgnoresNonPDFFiles(t *testing.T) {
	emb := &countingEmbedder{dim: 4}
	st := &memStore{}
	p := newTestPipeline(t, map[string]string{"act.pdf": manyWords(5)}, emb, st)

	dir := writePDFs(t, "act.pdf")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	sum, err := p.Run(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if sum.FilesFound != 1 {
		t.Fatalf("expected only the pdf counted, got %d", sum.FilesFound)
	}
}

func TestIngestFile_StoreFailureSkipsChunk(t *testing.T) {
	emb := &countingEmbedder{dim: 4}
	st := &memStore{insertErr: errors.New("db down")}
	p := newTestPipeline(t, map[string]string{"act.pdf": manyWords(12)}, emb, st)

	res, err := p.IngestFile(context.Background(), "act.pdf")
	if err != nil {
		t.Fatalf("insert failures are per-chunk, not fatal: %v", err)
	}
	if res.ChunksUploaded != 0 {
		t.Fatalf("expected 0 uploads with failing store, got %d", res.ChunksUploaded)
	}
	if res.ChunksTotal == 0 {
		t.Fatal("chunk total should still be reported")
	}
}
