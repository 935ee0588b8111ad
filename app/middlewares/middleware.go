package middlewares

import (
	"context"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/riiqx/storefront/app/helpers"
	"github.com/riiqx/storefront/app/utils/sessions"
)

// CartSessionMiddleware guarantees every request carries a cart
// namespace: an existing one from the session cookie, or a fresh uuid
// written back to it. The namespace keys the persisted cart snapshot.
func CartSessionMiddleware(sessionStore sessions.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cartID := sessionStore.GetCartID(r)
			if cartID == "" {
				cartID = uuid.New().String()
				if err := sessionStore.SetCartID(w, r, cartID); err != nil {
					log.Printf("CartSessionMiddleware: failed to save cart ID to session: %v", err)
				}
			}

			ctx := context.WithValue(r.Context(), helpers.ContextKeyCartID, cartID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserSessionMiddleware resolves the logged-in user ID (if any) into
// the request context. It never rejects; RequireAuth does that.
func UserSessionMiddleware(sessionStore sessions.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sessionStore.GetUserID(r)
			if userID != "" {
				ctx := context.WithValue(r.Context(), helpers.ContextKeyUserID, userID)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects requests without a resolved user ID.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(helpers.ContextKeyUserID).(string)
		if !ok || userID == "" {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CSRFMiddleware protects state-changing browser routes. Disabled in
// the test environment where no key is configured.
func CSRFMiddleware(authKey []byte, secure bool) func(http.Handler) http.Handler {
	if len(authKey) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return csrf.Protect(authKey, csrf.Secure(secure), csrf.Path("/"))
}

// CartIDFromContext pulls the cart namespace set by
// CartSessionMiddleware.
func CartIDFromContext(ctx context.Context) string {
	cartID, _ := ctx.Value(helpers.ContextKeyCartID).(string)
	return cartID
}

// UserIDFromContext pulls the authenticated user ID, empty when the
// request is anonymous.
func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(helpers.ContextKeyUserID).(string)
	return userID
}
