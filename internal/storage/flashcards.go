package storage

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/egil10/nordnotat/internal/marketplace"
)

// InsertFlashcards stores generated study cards in one round trip.
func (s *Store) InsertFlashcards(ctx context.Context, cards []marketplace.Flashcard) error {
	if len(cards) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, card := range cards {
		batch.Queue(
			`INSERT INTO flashcards (id, document_id, front, back) VALUES ($1, $2, $3, $4)`,
			card.ID, card.DocumentID, card.Front, card.Back,
		)
	}

	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return storeErr("insert flashcards", err)
	}
	return nil
}

// ListFlashcards returns a document's study cards.
func (s *Store) ListFlashcards(ctx context.Context, documentID string) ([]marketplace.Flashcard, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, document_id, front, back FROM flashcards WHERE document_id = $1 ORDER BY id`,
		documentID,
	)
	if err != nil {
		return nil, storeErr("list flashcards", err)
	}
	defer rows.Close()

	var cards []marketplace.Flashcard
	for rows.Next() {
		var card marketplace.Flashcard
		if err := rows.Scan(&card.ID, &card.DocumentID, &card.Front, &card.Back); err != nil {
			return nil, storeErr("scan flashcard", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list flashcards", err)
	}
	return cards, nil
}
