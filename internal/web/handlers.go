package web

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/egil10/nordnotat/internal/marketplace"
)

const (
	maxWebhookBody = 1 << 20  // 1MB
	maxUploadSize  = 32 << 20 // 32MB
)

// statusFor maps domain errors to HTTP statuses. Transient store
// failures and processor failures stay 5xx; on the webhook path that
// is what keeps the processor retrying instead of dropping the event.
func statusFor(err error) int {
	switch {
	case errors.Is(err, marketplace.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, marketplace.ErrNotEntitled):
		return http.StatusForbidden
	case errors.Is(err, marketplace.ErrDocumentNotFound):
		return http.StatusNotFound
	case errors.Is(err, marketplace.ErrAlreadyPurchased),
		errors.Is(err, marketplace.ErrInvalidInput),
		errors.Is(err, marketplace.ErrInvalidSignature),
		errors.Is(err, marketplace.ErrMalformedEvent):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func (s *Server) handleCheckout(c *gin.Context) {
	var req marketplace.CheckoutRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID, err := s.svc.InitiateCheckout(c.Request.Context(), principal(c), req)
	if err != nil {
		s.log.Warn("checkout rejected", "document", req.DocumentID, "error", err)
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessionId": sessionID})
}

// handleWebhook receives signed processor notifications. The signature
// header is the sole authentication on this route. A handled or
// ignored event acknowledges {received:true}; a persistence failure
// returns 5xx so the processor redelivers.
func (s *Server) handleWebhook(c *gin.Context) {
	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		s.metrics.WebhookEvent("unknown", "rejected")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing signature"})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
	if err != nil {
		s.metrics.WebhookEvent("unknown", "rejected")
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable payload"})
		return
	}

	event, err := s.events.VerifyEvent(body, signature)
	if err != nil {
		s.metrics.WebhookEvent("unknown", "rejected")
		s.log.Warn("webhook rejected", "error", err)
		abortWithError(c, err)
		return
	}

	recorded, err := s.svc.CompleteCheckout(c.Request.Context(), event)
	if err != nil {
		outcome := "rejected"
		if statusFor(err) >= http.StatusInternalServerError {
			outcome = "retryable"
		}
		s.metrics.WebhookEvent(event.Type, outcome)
		s.log.Error("webhook processing failed", "type", event.Type, "error", err)
		abortWithError(c, err)
		return
	}

	// Redeliveries are acknowledged but only a fresh insert counts.
	if recorded {
		s.metrics.PurchaseRecorded()
	}
	s.metrics.WebhookEvent(event.Type, "ok")
	c.JSON(http.StatusOK, gin.H{"received": true})
}

func (s *Server) handleUpload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}

	price, err := strconv.ParseInt(c.PostForm("price"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
		return
	}

	doc, err := s.svc.UploadDocument(c.Request.Context(), principal(c), marketplace.UploadRequest{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		CourseCode:  c.PostForm("course_code"),
		University:  c.PostForm("university"),
		Price:       price,
		FileName:    fileHeader.Filename,
		File:        data,
	})
	if err != nil {
		s.log.Warn("upload failed", "error", err)
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "documentId": doc.ID})
}

func (s *Server) handleListDocuments(c *gin.Context) {
	difficulty, _ := strconv.Atoi(c.Query("difficulty"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit := 50

	docs, err := s.svc.ListDocuments(c.Request.Context(), marketplace.DocumentFilter{
		Query:      c.Query("q"),
		University: c.Query("university"),
		CourseCode: c.Query("course"),
		Difficulty: difficulty,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": docs, "count": len(docs), "page": page})
}

func (s *Server) handleGetDocument(c *gin.Context) {
	doc, err := s.svc.GetDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": doc})
}

func (s *Server) handleFlashcards(c *gin.Context) {
	cards, err := s.svc.DocumentFlashcards(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"flashcards": cards, "count": len(cards)})
}

func (s *Server) handleListPurchases(c *gin.Context) {
	purchases, err := s.svc.ListPurchases(c.Request.Context(), principal(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"purchases": purchases, "count": len(purchases)})
}

func (s *Server) handleListSales(c *gin.Context) {
	sales, err := s.svc.ListSales(c.Request.Context(), principal(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sales": sales, "count": len(sales)})
}
