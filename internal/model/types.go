package model

// ChunkMetadata describes where a chunk came from within its source document.
// ChunkID is 1-based and unique within a filename.
type ChunkMetadata struct {
	Filename    string `json:"filename"`
	ChunkID     int    `json:"chunk_id"`
	TotalChunks int    `json:"total_chunks"`
}

// Chunk is one stored unit of act text with its embedding. Chunks are written
// once by the ingestion pipeline and never mutated afterwards.
type Chunk struct {
	Content   string
	Metadata  ChunkMetadata
	Embedding []float32
}

// RetrievedDocument is a chunk view returned by similarity search.
// Similarity is 0 when the score is unknown (fallback scan).
type RetrievedDocument struct {
	Content    string
	Metadata   ChunkMetadata
	Similarity float64
}

// Source identifies one retrieved chunk in a chat response.
type Source struct {
	Filename    string `json:"filename"`
	ChunkID     int    `json:"chunk_id"`
	TotalChunks int    `json:"total_chunks"`
}

// ResourceLink is one official reference link.
type ResourceLink struct {
	Name        string `json:"name" yaml:"name"`
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description" yaml:"description"`
}

// ResourceBundle is a topic-tagged set of official links. Bundles are loaded
// once at startup and read-only for the process lifetime.
type ResourceBundle struct {
	Title string         `json:"title" yaml:"title"`
	Links []ResourceLink `json:"links" yaml:"links"`
}

// ChatRequest is the body of /api/chat and /api/report.
type ChatRequest struct {
	Question string `json:"question"`
}

// ResponsePayload is the assembled answer for one question.
type ResponsePayload struct {
	Answer       string           `json:"answer"`
	Sources      []Source         `json:"sources"`
	RelatedLinks []ResourceBundle `json:"related_links"`
}
