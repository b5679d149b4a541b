/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package handler

import (
	"fmt"
	"io"
	"net/http"

	"portal/internal/service"

	"github.com/gorilla/mux"
)

// Uploads larger than this are rejected before buffering
const maxUploadBytes = 32 << 20

// FileHandler is used to handle the file storage routes
type FileHandler struct {
	fileService service.FileService
}

func NewFileHandler(fileService service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// Uploads a file for the logged user, multipart field "file"
func (h *FileHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	thisUser, ok := requestUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "The upload is too large or malformed", http.StatusBadRequest)
		return
	}

	src, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "The form is missing its file", http.StatusBadRequest)
		return
	}
	defer src.Close()

	file, err := h.fileService.SaveFile(&thisUser, header.Filename, src)
	if err != nil {
		http.Error(w, "Could not store the file...", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"file":   file,
		"status": "success",
	})
}

// Lists the files of the logged user
func (h *FileHandler) GetOwnFiles(w http.ResponseWriter, r *http.Request) {
	thisUser, ok := requestUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	files, err := h.fileService.GetOwnFiles(&thisUser)
	if err != nil {
		http.Error(w, "Could not list the files...", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"files":  files,
		"status": "success",
	})
}

// Downloads one file of the logged user
func (h *FileHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	thisUser, ok := requestUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	file, handle, err := h.fileService.OpenFile(vars["uuid"])
	if err != nil {
		http.Error(w, "The requested file does not exist.", http.StatusNotFound)
		return
	}
	defer handle.Close()

	if file.OwnerUUID != thisUser.UUID {
		http.Error(w, "Only the owner can download a file", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	w.Header().Set("Content-Type", "application/octet-stream")
	io.Copy(w, handle)
}
