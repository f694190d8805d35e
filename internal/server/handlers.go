package server

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/msundar/receipt-processor/internal/store"
	"github.com/msundar/receipt-processor/internal/types"
)

// Receipts beyond this size are not worth reading.
const maxReceiptBytes = 1 << 20

// handleIndex returns the service greeting.
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.textResponse(w, http.StatusOK, "Receipt Processor Challenge")
}

// handleProcessReceipt validates and scores a submitted receipt, returning
// the generated id.
func (s *Server) handleProcessReceipt(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxReceiptBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Unable to read request body")
		return
	}

	receipt, err := types.ParseReceipt(body)
	if err != nil {
		log.Printf("Rejected receipt: %v", err)
		s.textResponse(w, http.StatusBadRequest, "The receipt is invalid")
		return
	}

	id, err := s.store.Submit(receipt)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateReceipt) {
			s.errorResponse(w, HTTPStatus(err), "Duplicate receipt submitted")
			return
		}
		s.errorResponse(w, HTTPStatus(err), "Unable to process receipt")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"id": id})
}

// handleGetPoints returns the score recorded for a receipt id.
func (s *Server) handleGetPoints(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	score, err := s.store.Lookup(id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), "No receipt found for that id")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]int{"points": score})
}
