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
	"time"

	"portal/internal/service"

	"github.com/gorilla/mux"
)

// TaskHandler is used to handle all task-related routes
type TaskHandler struct {
	taskService service.TaskService
}

func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// Creates a task for the logged user
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	thisUser, ok := requestUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var dueAt *time.Time
	if raw := r.FormValue("due-at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			http.Error(w, "The deadline must be RFC3339", http.StatusBadRequest)
			return
		}
		dueAt = &parsed
	}

	task, err := h.taskService.CreateTask(&thisUser, r.FormValue("title"), r.FormValue("description"), dueAt)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"task":   task,
		"status": "success",
	})
}

// Lists the tasks of the logged user
func (h *TaskHandler) GetOwnTasks(w http.ResponseWriter, r *http.Request) {
	thisUser, ok := requestUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	tasks, err := h.taskService.GetOwnTasks(&thisUser)
	if err != nil {
		http.Error(w, "Could not list the tasks...", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"tasks":  tasks,
		"status": "success",
	})
}

// Moves a task of the logged user to another status
func (h *TaskHandler) MoveTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	thisUser, ok := requestUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	task, err := h.taskService.GetTask(vars["uuid"])
	if err != nil {
		http.Error(w, "The requested task does not exist.", http.StatusNotFound)
		return
	}
	if task.OwnerUUID != thisUser.UUID {
		http.Error(w, "Only the owner can move a task", http.StatusForbidden)
		return
	}

	task, err = h.taskService.MoveTask(vars["uuid"], r.FormValue("status"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"task":   task,
		"status": "success",
	})
}

// Deletes a task of the logged user
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	thisUser, ok := requestUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	task, err := h.taskService.GetTask(vars["uuid"])
	if err != nil {
		http.Error(w, "The requested task does not exist.", http.StatusNotFound)
		return
	}
	if task.OwnerUUID != thisUser.UUID {
		http.Error(w, "Only the owner can delete a task", http.StatusForbidden)
		return
	}

	if err := h.taskService.DeleteTask(vars["uuid"]); err != nil {
		http.Error(w, "Could not delete the task...", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "success"})
}
