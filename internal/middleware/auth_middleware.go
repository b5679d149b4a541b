/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package middleware

import (
	"context"
	"net/http"

	"portal/internal/entity"

	"github.com/gorilla/sessions"
)

type contextKey string

// UserKey is where the middleware places the authenticated user in the request context
const UserKey contextKey = "user"

// AuthMiddleware resolves the session cookie into a user entity and injects it
// into the request context. Requests without a valid session are sent to the
// login page. This is the identity resolver the collaboration hub relies on:
// the websocket endpoint sits behind it
func AuthMiddleware(store *sessions.CookieStore, next func(w http.ResponseWriter, r *http.Request)) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := store.Get(r, "auth-session")
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		userUUID, ok1 := session.Values["user_uuid"].(string)
		username, ok2 := session.Values["username"].(string)
		displayName, ok3 := session.Values["display_name"].(string)

		if !(ok1 && ok2 && ok3) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		isAdmin, _ := session.Values["is_admin"].(bool)

		user := entity.User{
			UUID:        userUUID,
			Username:    username,
			DisplayName: displayName,
			IsAdmin:     isAdmin,
		}

		ctx := context.WithValue(r.Context(), UserKey, user)
		next(w, r.WithContext(ctx))
	}
}

// AdminMiddleware gates the admin panel, it assumes AuthMiddleware ran before
func AdminMiddleware(next func(w http.ResponseWriter, r *http.Request)) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := r.Context().Value(UserKey).(entity.User)
		if !ok || !user.IsAdmin {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}
