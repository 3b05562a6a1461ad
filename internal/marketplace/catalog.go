package marketplace

import "context"

const defaultListLimit = 50

// ListDocuments returns catalog documents, newest first.
func (s *Service) ListDocuments(ctx context.Context, filter DocumentFilter) ([]Document, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = defaultListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.docs.ListDocuments(ctx, filter)
}

// GetDocument returns a single catalog document.
func (s *Service) GetDocument(ctx context.Context, id string) (*Document, error) {
	return s.docs.GetDocument(ctx, id)
}

// DocumentFlashcards returns the study cards for a document. Only the
// owner and buyers are entitled to them.
func (s *Service) DocumentFlashcards(ctx context.Context, principalID, documentID string) ([]Flashcard, error) {
	if principalID == "" {
		return nil, ErrUnauthorized
	}

	doc, err := s.docs.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	if doc.OwnerID != principalID {
		owned, err := s.purchases.HasPurchase(ctx, principalID, documentID)
		if err != nil {
			return nil, err
		}
		if !owned {
			return nil, ErrNotEntitled
		}
	}

	return s.cards.ListFlashcards(ctx, documentID)
}

// ListPurchases returns the caller's purchases, newest first.
func (s *Service) ListPurchases(ctx context.Context, buyerID string) ([]Purchase, error) {
	if buyerID == "" {
		return nil, ErrUnauthorized
	}
	return s.purchases.ListPurchasesByBuyer(ctx, buyerID)
}

// ListSales returns completed sales of the caller's documents.
func (s *Service) ListSales(ctx context.Context, sellerID string) ([]Sale, error) {
	if sellerID == "" {
		return nil, ErrUnauthorized
	}
	return s.purchases.ListSalesBySeller(ctx, sellerID)
}
