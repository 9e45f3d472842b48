package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mpaoletti/lexquiz/internal/aiken"
	"github.com/mpaoletti/lexquiz/internal/chunker"
	"github.com/mpaoletti/lexquiz/internal/generator"
	"github.com/mpaoletti/lexquiz/internal/gift"
	"github.com/mpaoletti/lexquiz/internal/matcher"
	"github.com/mpaoletti/lexquiz/internal/ollama"
	"github.com/mpaoletti/lexquiz/internal/reviewer"
	"github.com/mpaoletti/lexquiz/internal/storage"
	"github.com/mpaoletti/lexquiz/internal/textsource"
	"github.com/mpaoletti/lexquiz/internal/translator"
	"github.com/mpaoletti/lexquiz/pkg/types"
)

const (
	// DefaultMinChunkChars is the shortest chunk worth sending to the model.
	DefaultMinChunkChars = 500

	// DefaultBatchSize is how many annotated blocks go into one output file.
	DefaultBatchSize = 500
)

// Config contains configuration for the pipeline.
type Config struct {
	ChunkSize     int // generation chunk size (default: chunker.DefaultChunkSize)
	Overlap       int // generation chunk overlap (default: chunker.DefaultOverlap)
	ContextSize   int // coarse context size for matching (default: chunker.DefaultContextSize)
	MinChunkChars int // chunks shorter than this are skipped (default: DefaultMinChunkChars)
	BatchSize     int // annotated blocks per output file (default: DefaultBatchSize)
	Workers       int // concurrent model calls (default: runtime.NumCPU())
	Model         string

	// Optional collaborators. A nil Translator disables translation; a nil
	// Store disables run persistence.
	Translator translator.Translator
	Store      storage.Store
}

func (c *Config) normalize() {
	if c.ChunkSize <= 0 {
		c.ChunkSize = chunker.DefaultChunkSize
	}
	if c.Overlap < 0 {
		c.Overlap = chunker.DefaultOverlap
	}
	if c.ContextSize <= 0 {
		c.ContextSize = chunker.DefaultContextSize
	}
	if c.MinChunkChars <= 0 {
		c.MinChunkChars = DefaultMinChunkChars
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Statistics contains the outcome of one pipeline pass.
type Statistics struct {
	ChunksTotal     int
	ChunksProcessed int
	ChunksSkipped   int
	ChunksFailed    int
	Attempts        int
	Questions       int
	Duration        time.Duration
}

// SuccessRate returns the questions/attempts ratio as a percentage.
func (s *Statistics) SuccessRate() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Questions) / float64(s.Attempts) * 100
}

// Pipeline coordinates the passes: chunk -> generate -> translate -> store,
// plus the review and feedback-conversion passes over existing banks.
type Pipeline struct {
	gen  *generator.Generator
	rev  *reviewer.Reviewer
	conv *gift.Converter
	cfg  Config
}

// New creates a Pipeline with all passes backed by the given service.
func New(svc ollama.Service, cfg Config) *Pipeline {
	cfg.normalize()
	return &Pipeline{
		gen:  generator.New(svc),
		rev:  reviewer.New(svc),
		conv: gift.NewConverter(svc),
		cfg:  cfg,
	}
}

// Generate runs the first pass over a source text: split into chunks, ask the
// model for questions about each, optionally translate the results. Chunks
// whose call fails are logged and skipped; the run continues with the rest.
func (p *Pipeline) Generate(ctx context.Context, src textsource.Source, sourcePath string) ([]types.QuestionRecord, *Statistics, error) {
	start := time.Now()

	text, err := src.Text(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read source: %w", err)
	}

	chunks, err := chunker.Split(text, chunker.Options{
		ChunkSize: p.cfg.ChunkSize,
		Overlap:   p.cfg.Overlap,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to split source: %w", err)
	}

	stats := &Statistics{ChunksTotal: len(chunks)}

	run, err := p.beginRun(ctx, storage.RunKindGenerate, sourcePath)
	if err != nil {
		return nil, nil, err
	}

	results := make([][]types.QuestionRecord, len(chunks))
	perChunk := make([]generator.Stats, len(chunks))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Workers)

	for i, chunk := range chunks {
		if len(chunk) < p.cfg.MinChunkChars {
			stats.ChunksSkipped++
			continue
		}

		g.Go(func() error {
			recs, err := p.gen.Generate(gctx, chunk, &perChunk[i])
			if err != nil {
				log.Printf("chunk %d/%d failed: %v", i+1, len(chunks), err)
				mu.Lock()
				stats.ChunksFailed++
				mu.Unlock()
				return nil
			}
			results[i] = recs
			mu.Lock()
			stats.ChunksProcessed++
			mu.Unlock()
			log.Printf("chunk %d/%d: %d questions", i+1, len(chunks), len(recs))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	records := make([]types.QuestionRecord, 0)
	for i := range results {
		records = append(records, results[i]...)
		stats.Attempts += perChunk[i].Attempts
	}
	stats.Questions = len(records)

	if p.cfg.Translator != nil {
		records = translator.TranslateBatch(ctx, p.cfg.Translator, records)
	}

	stats.Duration = time.Since(start)
	if err := p.finishRun(ctx, run, stats, records); err != nil {
		return nil, nil, err
	}
	return records, stats, nil
}

// Improve runs the second pass: each record is checked against its most
// relevant context chunk and either kept or replaced by an improved version.
// The output always has the same length and order as the input.
func (p *Pipeline) Improve(ctx context.Context, records []types.QuestionRecord, sourceText, sourcePath string) ([]types.QuestionRecord, *Statistics, error) {
	start := time.Now()

	contexts, err := p.contextChunks(sourceText)
	if err != nil {
		return nil, nil, err
	}

	stats := &Statistics{ChunksTotal: len(contexts)}

	run, err := p.beginRun(ctx, storage.RunKindImprove, sourcePath)
	if err != nil {
		return nil, nil, err
	}

	out := make([]types.QuestionRecord, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Workers)

	for i, rec := range records {
		g.Go(func() error {
			contextText := matcher.BestChunk(rec.Question, contexts)
			out[i] = p.rev.Improve(gctx, rec, contextText)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	stats.Attempts = len(records)
	stats.Questions = len(out)
	stats.Duration = time.Since(start)
	if err := p.finishRun(ctx, run, stats, out); err != nil {
		return nil, nil, err
	}
	return out, stats, nil
}

// ConvertGIFT runs the feedback pass: each record is matched to its most
// relevant context chunk, enriched with per-option feedback and rendered as
// an annotated block. Blocks are written in bank order, batched into files of
// BatchSize blocks. It returns the paths written.
func (p *Pipeline) ConvertGIFT(ctx context.Context, records []types.QuestionRecord, sourceText, outPath string) ([]string, *Statistics, error) {
	start := time.Now()

	contexts, err := p.contextChunks(sourceText)
	if err != nil {
		return nil, nil, err
	}

	stats := &Statistics{ChunksTotal: len(contexts)}

	run, err := p.beginRun(ctx, storage.RunKindGift, outPath)
	if err != nil {
		return nil, nil, err
	}

	blocks := make([]string, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Workers)

	for i, rec := range records {
		g.Go(func() error {
			contextText := matcher.BestChunk(rec.Question, contexts)
			block, err := p.conv.Convert(gctx, rec, contextText)
			if err != nil {
				log.Printf("skipping record %d: %v", i, err)
				return nil
			}
			blocks[i] = block
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	kept := make([]string, 0, len(blocks))
	for _, block := range blocks {
		if block != "" {
			kept = append(kept, block)
		}
	}

	paths, err := writeBatches(outPath, kept, p.cfg.BatchSize)
	if err != nil {
		return nil, nil, err
	}

	stats.Attempts = len(records)
	stats.Questions = len(kept)
	stats.Duration = time.Since(start)
	if err := p.finishRun(ctx, run, stats, nil); err != nil {
		return nil, nil, err
	}
	return paths, stats, nil
}

// SaveBank writes records in plain Aiken format to path.
func SaveBank(path string, records []types.QuestionRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := aiken.Encode(f, records); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// LoadBank reads a bank from disk, requiring complete records.
func LoadBank(path string) ([]types.QuestionRecord, error) {
	records, malformed, err := aiken.DecodeFile(path, aiken.ModeStrict)
	if err != nil {
		return nil, err
	}
	if malformed > 0 {
		log.Printf("dropped %d malformed records from %s", malformed, path)
	}
	return records, nil
}

// contextChunks splits a source text into the coarse chunks used for
// relevance matching. Matching needs more surrounding text than generation,
// so these chunks do not overlap.
func (p *Pipeline) contextChunks(sourceText string) ([]string, error) {
	contexts, err := chunker.Split(sourceText, chunker.Options{
		ChunkSize: p.cfg.ContextSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to split context: %w", err)
	}
	return contexts, nil
}

func (p *Pipeline) beginRun(ctx context.Context, kind storage.RunKind, sourcePath string) (*storage.Run, error) {
	if p.cfg.Store == nil {
		return nil, nil
	}
	run := &storage.Run{
		Kind:       kind,
		SourcePath: sourcePath,
		Model:      p.cfg.Model,
		ChunkSize:  p.cfg.ChunkSize,
		Overlap:    p.cfg.Overlap,
	}
	if err := p.cfg.Store.CreateRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return run, nil
}

func (p *Pipeline) finishRun(ctx context.Context, run *storage.Run, stats *Statistics, records []types.QuestionRecord) error {
	if run == nil {
		return nil
	}
	run.ChunksProcessed = stats.ChunksProcessed
	run.QuestionsGenerated = stats.Questions
	run.Attempts = stats.Attempts
	run.Duration = stats.Duration
	if err := p.cfg.Store.FinishRun(ctx, run); err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	if len(records) > 0 {
		if err := p.cfg.Store.InsertQuestions(ctx, run.ID, records); err != nil {
			return fmt.Errorf("failed to store questions: %w", err)
		}
	}
	return nil
}

// writeBatches writes blocks to path, splitting into numbered files when they
// exceed batchSize. A single batch keeps the given path unchanged.
func writeBatches(path string, blocks []string, batchSize int) ([]string, error) {
	if len(blocks) <= batchSize {
		if err := os.WriteFile(path, []byte(strings.Join(blocks, "")), 0o644); err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	var paths []string
	for i, n := 0, 1; i < len(blocks); i, n = i+batchSize, n+1 {
		end := i + batchSize
		if end > len(blocks) {
			end = len(blocks)
		}
		batchPath := numberedPath(path, n)
		if err := os.WriteFile(batchPath, []byte(strings.Join(blocks[i:end], "")), 0o644); err != nil {
			return nil, err
		}
		paths = append(paths, batchPath)
	}
	return paths, nil
}

func numberedPath(path string, n int) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return fmt.Sprintf("%s_%d%s", base, n, ext)
}
