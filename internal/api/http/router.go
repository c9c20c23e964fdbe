package http

import (
	"net/http"

	"evrental-backend/internal/security"
	"evrental-backend/internal/service"

	"github.com/gorilla/mux"
)

// NewRouter wires all HTTP handlers. Auth endpoints are public; everything
// else requires a bearer token.
func NewRouter(
	tokens security.TokenManager,
	authSvc service.AuthService,
	chatSvc service.ChatService,
	txnSvc service.TransactionService,
	vehicleSvc service.VehicleService,
) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	authHandler := NewAuthHandler(authSvc)
	r.HandleFunc("/api/auth/guest", authHandler.Guest).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(AuthMiddleware(tokens))

	chatHandler := NewChatHandler(chatSvc)
	api.HandleFunc("/chat/sessions", chatHandler.StartSession).Methods(http.MethodPost)
	api.HandleFunc("/chat/sessions/{id}/messages", chatHandler.SendMessage).Methods(http.MethodPost)
	api.HandleFunc("/chat/sessions/{id}/messages", chatHandler.GetTranscript).Methods(http.MethodGet)

	txnHandler := NewTransactionHandler(txnSvc)
	api.HandleFunc("/transactions", txnHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/transactions/{id}/confirm", txnHandler.Confirm).Methods(http.MethodPost)
	api.HandleFunc("/transactions/{id}/cancel", txnHandler.Cancel).Methods(http.MethodPost)

	vehicleHandler := NewVehicleHandler(vehicleSvc)
	api.HandleFunc("/vehicles", vehicleHandler.Search).Methods(http.MethodGet)

	return r
}
