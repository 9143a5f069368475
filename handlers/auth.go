package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/sharmasagarr/taskmanager/domain"
	"github.com/sharmasagarr/taskmanager/services"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type authResp struct {
	Token string              `json:"token"`
	User  domain.UserSnapshot `json:"user"`
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	req := &struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{}
	if err := readReq(req, r, w); err != nil {
		return
	}

	token, user, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeErrorResp(err, w)
		return
	}

	writeResp(authResp{Token: token, User: user.Snapshot()}, http.StatusCreated, w)
}

func (h *AuthHandler) LogIn(w http.ResponseWriter, r *http.Request) {
	req := &struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{}
	if err := readReq(req, r, w); err != nil {
		return
	}

	token, user, err := h.auth.LogIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeErrorResp(err, w)
		return
	}

	writeResp(authResp{Token: token, User: user.Snapshot()}, http.StatusOK, w)
}

type userIDKey struct{}

// UserIDFromContext returns the authenticated user id placed in the
// context by AuthMiddleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	return id, ok
}

type AuthMiddleware struct {
	auth *services.AuthService
}

func NewAuthMiddleware(auth *services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// Handle resolves the bearer token into a request-scoped user id.
func (m *AuthMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			writeErrorResp(domain.ErrInvalidToken(), w)
			return
		}

		userId, err := m.auth.ResolveToken(r.Context(), token)
		if err != nil {
			writeErrorResp(err, w)
			return
		}

		r = r.WithContext(context.WithValue(r.Context(), userIDKey{}, userId))
		next.ServeHTTP(w, r)
	})
}
