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
	"portal/internal/view"

	"github.com/gorilla/sessions"
)

type authReqFields struct {
	Username    string `json:"username"`
	DisplayName string `json:"display-name"`
	Password    string `json:"password"`
}

// AuthHandler helps in managing user registration and authentication
type AuthHandler struct {
	authService service.AuthService
	cookieStore *sessions.CookieStore
	renderer    *view.PageRenderer
}

func NewAuthHandler(authService service.AuthService, cookieStore *sessions.CookieStore, renderer *view.PageRenderer) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookieStore: cookieStore,
		renderer:    renderer,
	}
}

// Registers a user
// If the method is GET, a registration form is shown
// If it's POST, it retrieves the input fields and uses the auth service to register the user
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		if err := h.renderer.RenderTemplate(w, "register.html", nil); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	var request = authReqFields{}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error occurred while parsing the form", http.StatusBadRequest)
		return
	}

	request.Username = r.FormValue("username")
	request.DisplayName = r.FormValue("display-name")
	request.Password = r.FormValue("password")

	if !validateUsername(request.Username) {
		http.Error(w, "The username is not valid, it must be 3 to 32 letters, numbers, dashes or underscores", http.StatusBadRequest)
		return
	}
	if request.DisplayName == "" {
		request.DisplayName = request.Username
	}

	user, err := h.authService.Register(request.Username, request.DisplayName, request.Password)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.openSession(w, r, user.UUID, user.Username, user.DisplayName, user.IsAdmin)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
}

// Login handles the authentication phase
// If this function got called with a GET request, it shows the login form
// Otherwise, for POST, it retrieves the form's input fields and tries to authenticate the user using the auth service
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		if err := h.renderer.RenderTemplate(w, "login.html", nil); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	var request = authReqFields{}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}

	request.Username = r.FormValue("username")
	request.Password = r.FormValue("password")

	user, err := h.authService.Login(request.Username, request.Password)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	h.openSession(w, r, user.UUID, user.Username, user.DisplayName, user.IsAdmin)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout drops the session values and sends the user back to the login page
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.cookieStore.Get(r, "auth-session")
	session.Options.MaxAge = -1
	sessions.Save(r, w)

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) openSession(w http.ResponseWriter, r *http.Request, uuid, username, displayName string, isAdmin bool) {
	session, _ := h.cookieStore.Get(r, "auth-session")
	session.Values["user_uuid"] = uuid
	session.Values["username"] = username
	session.Values["display_name"] = displayName
	session.Values["is_admin"] = isAdmin
	sessions.Save(r, w)
}
