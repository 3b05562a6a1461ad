package storage

import (
	"context"

	"github.com/egil10/nordnotat/internal/marketplace"
)

// InsertPurchase is an atomic insert-if-absent. A conflict on either
// uniqueness constraint (buyer+document, or payment id) leaves the
// existing row untouched and reports inserted=false with a nil error,
// which callers treat as "already recorded".
func (s *Store) InsertPurchase(ctx context.Context, p *marketplace.Purchase) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO purchases (id, buyer_id, document_id, payment_id, amount, platform_fee, seller_amount, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT DO NOTHING`,
		p.ID, p.BuyerID, p.DocumentID, p.PaymentID, p.Amount,
		p.PlatformFee, p.SellerAmount, p.CreatedAt,
	)
	if err != nil {
		return false, storeErr("insert purchase", err)
	}
	return tag.RowsAffected() == 1, nil
}

// HasPurchase reports whether a purchase binds buyer and document.
func (s *Store) HasPurchase(ctx context.Context, buyerID, documentID string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM purchases WHERE buyer_id = $1 AND document_id = $2)`,
		buyerID, documentID,
	).Scan(&exists)
	if err != nil {
		return false, storeErr("check purchase", err)
	}
	return exists, nil
}

// ListPurchasesByBuyer returns the buyer's purchases, newest first.
func (s *Store) ListPurchasesByBuyer(ctx context.Context, buyerID string) ([]marketplace.Purchase, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, buyer_id, document_id, payment_id, amount, platform_fee, seller_amount, created_at
		 FROM purchases WHERE buyer_id = $1 ORDER BY created_at DESC`,
		buyerID,
	)
	if err != nil {
		return nil, storeErr("list purchases", err)
	}
	defer rows.Close()

	var purchases []marketplace.Purchase
	for rows.Next() {
		var p marketplace.Purchase
		if err := rows.Scan(&p.ID, &p.BuyerID, &p.DocumentID, &p.PaymentID,
			&p.Amount, &p.PlatformFee, &p.SellerAmount, &p.CreatedAt); err != nil {
			return nil, storeErr("scan purchase", err)
		}
		purchases = append(purchases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list purchases", err)
	}
	return purchases, nil
}

// ListSalesBySeller returns completed sales of the seller's documents,
// newest first.
func (s *Store) ListSalesBySeller(ctx context.Context, sellerID string) ([]marketplace.Sale, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT p.document_id, d.title, p.buyer_id, p.amount, p.seller_amount, p.created_at
		 FROM purchases p
		 JOIN documents d ON d.id = p.document_id
		 WHERE d.owner_id = $1
		 ORDER BY p.created_at DESC`,
		sellerID,
	)
	if err != nil {
		return nil, storeErr("list sales", err)
	}
	defer rows.Close()

	var sales []marketplace.Sale
	for rows.Next() {
		var sale marketplace.Sale
		if err := rows.Scan(&sale.DocumentID, &sale.DocumentTitle, &sale.BuyerID,
			&sale.Amount, &sale.SellerAmount, &sale.CreatedAt); err != nil {
			return nil, storeErr("scan sale", err)
		}
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list sales", err)
	}
	return sales, nil
}
