package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires up all routes. Mutating task routes go through the
// auth middleware; reads are open.
func NewRouter(authHandler *AuthHandler, taskHandler *TaskHandler, authMiddleware *AuthMiddleware) *mux.Router {
	router := mux.NewRouter()
	router.Use(MiddlewareRequestID)
	router.Use(MiddlewareContentTypeSet)

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeResp(struct {
			Message string `json:"message"`
		}{Message: "Task manager is running"}, http.StatusOK, w)
	}).Methods(http.MethodGet)

	router.HandleFunc("/users/signup", authHandler.SignUp).Methods(http.MethodPost)
	router.HandleFunc("/users/login", authHandler.LogIn).Methods(http.MethodPost)

	router.HandleFunc("/tasks", taskHandler.GetAll).Methods(http.MethodGet)
	router.HandleFunc("/tasks/filter", taskHandler.Filter).Methods(http.MethodGet)

	protected := router.NewRoute().Subrouter()
	protected.Use(authMiddleware.Handle)
	protected.HandleFunc("/tasks", taskHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/tasks/{id}/status", taskHandler.UpdateStatus).Methods(http.MethodPatch)
	protected.HandleFunc("/tasks/{id}", taskHandler.Delete).Methods(http.MethodDelete)

	return router
}
