package marketplace

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// documentMetadata is the result of the generation fan-out.
type documentMetadata struct {
	Summary     string
	Tags        []string
	CourseCodes []string
	Difficulty  int
	Flashcards  []Flashcard
}

// UploadDocument runs the upload pipeline: extract text, generate
// metadata concurrently, store the file, then persist the document and
// its flashcards. Metadata generation degrades to deterministic
// fallbacks and never fails the upload; file storage and the document
// insert are load-bearing and do.
func (s *Service) UploadDocument(ctx context.Context, ownerID string, req UploadRequest) (*Document, error) {
	if ownerID == "" {
		return nil, ErrUnauthorized
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if req.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}
	if len(req.File) == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}

	text := s.extractUploadText(req)
	meta := s.generateMetadata(ctx, text)

	// An explicitly submitted course code wins over detected ones.
	courseCode := strings.TrimSpace(req.CourseCode)
	if courseCode == "" && len(meta.CourseCodes) > 0 {
		courseCode = meta.CourseCodes[0]
	}

	ext := strings.ToLower(path.Ext(req.FileName))
	if ext == "" {
		ext = ".pdf"
	}
	filePath := fmt.Sprintf("%s/%d%s", ownerID, time.Now().UnixNano(), ext)

	if err := s.files.Save(ctx, filePath, bytes.NewReader(req.File)); err != nil {
		return nil, fmt.Errorf("saving document file: %w", err)
	}

	doc := &Document{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		CourseCode:  courseCode,
		University:  strings.TrimSpace(req.University),
		Tags:        meta.Tags,
		Price:       req.Price,
		Summary:     meta.Summary,
		Difficulty:  meta.Difficulty,
		FilePath:    filePath,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.docs.InsertDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("saving document: %w", err)
	}

	if len(meta.Flashcards) > 0 {
		cards := make([]Flashcard, len(meta.Flashcards))
		for i, fc := range meta.Flashcards {
			cards[i] = Flashcard{
				ID:         uuid.NewString(),
				DocumentID: doc.ID,
				Front:      fc.Front,
				Back:       fc.Back,
			}
		}
		if err := s.cards.InsertFlashcards(ctx, cards); err != nil {
			// The document is already live; losing the cards is not
			// worth failing the whole upload.
			s.log.Warn("flashcard insert failed", "document", doc.ID, "error", err)
		}
	}

	return doc, nil
}

func (s *Service) extractUploadText(req UploadRequest) string {
	if s.extractor == nil {
		return ""
	}
	text, err := s.extractor.ExtractText(req.File)
	if err != nil {
		s.log.Warn("text extraction failed", "file", req.FileName, "error", err)
		return ""
	}
	return text
}

// generateMetadata fans out the generator calls and substitutes the
// deterministic fallback for any feature that errors.
func (s *Service) generateMetadata(ctx context.Context, text string) documentMetadata {
	var meta documentMetadata

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		meta.Summary = s.summaryOrFallback(gctx, text)
		return nil
	})
	g.Go(func() error {
		meta.Tags = s.tagsOrFallback(gctx, text)
		return nil
	})
	g.Go(func() error {
		meta.CourseCodes = s.courseCodesOrFallback(gctx, text)
		return nil
	})
	g.Go(func() error {
		meta.Difficulty = s.difficultyOrFallback(gctx, text)
		return nil
	})
	g.Go(func() error {
		meta.Flashcards = s.flashcardsOrFallback(gctx, text)
		return nil
	})
	g.Wait()

	return meta
}

func (s *Service) summaryOrFallback(ctx context.Context, text string) string {
	v, err := s.metadata.Summarize(ctx, text)
	if err == nil {
		return v
	}
	s.log.Warn("summary generation degraded", "error", err)
	v, _ = s.fallback.Summarize(ctx, text)
	return v
}

func (s *Service) tagsOrFallback(ctx context.Context, text string) []string {
	v, err := s.metadata.Tags(ctx, text)
	if err == nil {
		return v
	}
	s.log.Warn("tag generation degraded", "error", err)
	v, _ = s.fallback.Tags(ctx, text)
	return v
}

func (s *Service) courseCodesOrFallback(ctx context.Context, text string) []string {
	v, err := s.metadata.CourseCodes(ctx, text)
	if err == nil {
		return v
	}
	s.log.Warn("course code detection degraded", "error", err)
	v, _ = s.fallback.CourseCodes(ctx, text)
	return v
}

func (s *Service) difficultyOrFallback(ctx context.Context, text string) int {
	v, err := s.metadata.Difficulty(ctx, text)
	if err == nil {
		return v
	}
	s.log.Warn("difficulty estimation degraded", "error", err)
	v, _ = s.fallback.Difficulty(ctx, text)
	return v
}

func (s *Service) flashcardsOrFallback(ctx context.Context, text string) []Flashcard {
	v, err := s.metadata.Flashcards(ctx, text)
	if err == nil {
		return v
	}
	s.log.Warn("flashcard generation degraded", "error", err)
	v, _ = s.fallback.Flashcards(ctx, text)
	return v
}
