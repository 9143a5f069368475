package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/sharmasagarr/taskmanager/domain"

	"github.com/google/uuid"
)

type errorResp struct {
	Message string `json:"message"`
}

func writeErrorResp(err error, w http.ResponseWriter) {
	if err == nil {
		return
	}

	var status int
	switch {
	case errors.Is(err, domain.ErrValidation()):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials()), errors.Is(err, domain.ErrInvalidToken()):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden()):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrUserNotFound()),
		errors.Is(err, domain.ErrTaskNotFound()),
		errors.Is(err, domain.ErrAssignedUserNotFound()),
		errors.Is(err, domain.ErrAssigneeUserNotFound()):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrEmailTaken()):
		status = http.StatusConflict
	default:
		log.Printf("Unexpected error: %v", err)
		writeResp(errorResp{Message: "Server error"}, http.StatusInternalServerError, w)
		return
	}

	writeResp(errorResp{Message: err.Error()}, status, w)
}

func writeResp(resp any, statusCode int, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if resp == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

func readReq(req any, r *http.Request, w http.ResponseWriter) error {
	err := json.NewDecoder(r.Body).Decode(req)
	if err != nil {
		writeResp(errorResp{Message: "unable to decode json"}, http.StatusBadRequest, w)
	}
	return err
}

func MiddlewareContentTypeSet(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// MiddlewareRequestID tags every request with an id for log correlation.
func MiddlewareRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
	})
}
