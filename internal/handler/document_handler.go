/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package handler

import (
	"net/http"

	"portal/internal/service"

	"github.com/gorilla/mux"
)

// DocumentHandler is used to handle all document-related routes, the plain
// request/response side. Content changes in an open editing session flow
// through the collaboration hub instead
type DocumentHandler struct {
	documentService service.DocumentService
}

func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Creates an empty document owned by the logged user
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	thisUser, ok := requestUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	title := r.FormValue("title")
	document, err := h.documentService.CreateDocument(&thisUser, title)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"document": document,
		"status":   "success",
	})
}

// Lists the documents of the logged user
func (h *DocumentHandler) GetOwnDocuments(w http.ResponseWriter, r *http.Request) {
	thisUser, ok := requestUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	documents, err := h.documentService.GetOwnDocuments(&thisUser)
	if err != nil {
		http.Error(w, "Could not list the documents...", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"documents": documents,
		"status":    "success",
	})
}

// Retrieves one document, with its current content
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	document, err := h.documentService.GetDocument(vars["uuid"])
	if err != nil {
		http.Error(w, "The requested document does not exist.", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"document": document,
		"status":   "success",
	})
}

// Changes the title of a document owned by the logged user
func (h *DocumentHandler) RenameDocument(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	thisUser, ok := requestUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	document, err := h.documentService.GetDocument(vars["uuid"])
	if err != nil {
		http.Error(w, "The requested document does not exist.", http.StatusNotFound)
		return
	}
	if document.OwnerUUID != thisUser.UUID {
		http.Error(w, "Only the owner can rename a document", http.StatusForbidden)
		return
	}

	if err := h.documentService.RenameDocument(vars["uuid"], r.FormValue("title")); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "success"})
}

// Deletes a document owned by the logged user
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	thisUser, ok := requestUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	document, err := h.documentService.GetDocument(vars["uuid"])
	if err != nil {
		http.Error(w, "The requested document does not exist.", http.StatusNotFound)
		return
	}
	if document.OwnerUUID != thisUser.UUID {
		http.Error(w, "Only the owner can delete a document", http.StatusForbidden)
		return
	}

	if err := h.documentService.DeleteDocument(vars["uuid"]); err != nil {
		http.Error(w, "Could not delete the document...", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "success"})
}
