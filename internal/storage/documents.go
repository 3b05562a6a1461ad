package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/egil10/nordnotat/internal/marketplace"
)

const documentColumns = "id, owner_id, title, description, course_code, university, tags, price, summary, difficulty, file_path, created_at"

// InsertDocument stores a new catalog document.
func (s *Store) InsertDocument(ctx context.Context, doc *marketplace.Document) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO documents (`+documentColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		doc.ID, doc.OwnerID, doc.Title, doc.Description, doc.CourseCode,
		doc.University, doc.Tags, doc.Price, doc.Summary, doc.Difficulty,
		doc.FilePath, doc.CreatedAt,
	)
	if err != nil {
		return storeErr("insert document", err)
	}
	return nil
}

// GetDocument returns marketplace.ErrDocumentNotFound for unknown ids.
func (s *Store) GetDocument(ctx context.Context, id string) (*marketplace.Document, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = $1`, id)

	var doc marketplace.Document
	err := row.Scan(&doc.ID, &doc.OwnerID, &doc.Title, &doc.Description,
		&doc.CourseCode, &doc.University, &doc.Tags, &doc.Price,
		&doc.Summary, &doc.Difficulty, &doc.FilePath, &doc.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, marketplace.ErrDocumentNotFound
	}
	if err != nil {
		return nil, storeErr("get document", err)
	}
	return &doc, nil
}

// ListDocuments returns filtered documents, newest first.
func (s *Store) ListDocuments(ctx context.Context, filter marketplace.DocumentFilter) ([]marketplace.Document, error) {
	query, args := buildDocumentQuery(filter)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list documents", err)
	}
	defer rows.Close()

	var docs []marketplace.Document
	for rows.Next() {
		var doc marketplace.Document
		if err := rows.Scan(&doc.ID, &doc.OwnerID, &doc.Title, &doc.Description,
			&doc.CourseCode, &doc.University, &doc.Tags, &doc.Price,
			&doc.Summary, &doc.Difficulty, &doc.FilePath, &doc.CreatedAt); err != nil {
			return nil, storeErr("scan document", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list documents", err)
	}
	return docs, nil
}

// buildDocumentQuery assembles the filtered listing query with
// positional arguments. Kept separate so the SQL shape is testable
// without a database.
func buildDocumentQuery(filter marketplace.DocumentFilter) (string, []any) {
	var (
		where []string
		args  []any
	)

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Query != "" {
		p := arg("%" + filter.Query + "%")
		where = append(where, fmt.Sprintf("(title ILIKE %s OR description ILIKE %s OR course_code ILIKE %s)", p, p, p))
	}
	if filter.University != "" {
		where = append(where, "university = "+arg(filter.University))
	}
	if filter.CourseCode != "" {
		where = append(where, "course_code = "+arg(filter.CourseCode))
	}
	if filter.Difficulty > 0 {
		where = append(where, "difficulty = "+arg(filter.Difficulty))
	}

	var b strings.Builder
	b.WriteString("SELECT " + documentColumns + " FROM documents")
	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY created_at DESC")
	b.WriteString(" LIMIT " + arg(filter.Limit))
	b.WriteString(" OFFSET " + arg(filter.Offset))

	return b.String(), args
}
