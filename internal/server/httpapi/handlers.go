package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/antonk9218/paybuddy/internal/common"
	"github.com/antonk9218/paybuddy/internal/server/services"
	"github.com/antonk9218/paybuddy/internal/server/views"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"accessToken"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type addConnectionRequest struct {
	ConnectionID int64 `json:"connectionId"`
}

type createTransactionRequest struct {
	ReceiverID    *int64           `json:"receiverId,omitempty"`
	ReceiverEmail *string          `json:"receiverEmail,omitempty"`
	Description   string           `json:"description"`
	Amount        decimal.Decimal  `json:"amount"`
	FeePercent    *decimal.Decimal `json:"feePercent,omitempty"`
}

type createTransactionResponse struct {
	ID          int64           `json:"id"`
	SenderID    int64           `json:"senderId"`
	ReceiverID  int64           `json:"receiverId"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	FeePercent  decimal.Decimal `json:"feePercent"`
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return common.Validationf("malformed request body")
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, common.Validationf("invalid %s", name)
	}
	return id, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	user, err := s.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "email", user.Email)
	writeJSON(w, http.StatusCreated, views.PublicUser(user))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{AccessToken: token})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.FindAll(r.Context())
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		s.writeError(r.Context(), w, common.ErrUnauthorized)
		return
	}

	profile, err := s.users.Profile(r.Context(), userID)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		s.writeError(r.Context(), w, common.ErrUnauthorized)
		return
	}

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	user, err := s.users.FindByID(r.Context(), userID)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	if err := s.users.ChangePassword(r.Context(), user.Email, req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddConnection(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		s.writeError(r.Context(), w, common.ErrUnauthorized)
		return
	}

	var req addConnectionRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	if err := s.connections.AddConnection(r.Context(), userID, req.ConnectionID); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleRemoveConnection(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		s.writeError(r.Context(), w, common.ErrUnauthorized)
		return
	}

	connectionID, err := pathID(r, "connectionID")
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	if err := s.connections.RemoveConnection(r.Context(), userID, connectionID); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListConnections(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	conns, err := s.connections.ListConnections(r.Context(), userID)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, conns)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	senderID, ok := userIDFromContext(r.Context())
	if !ok {
		s.writeError(r.Context(), w, common.ErrUnauthorized)
		return
	}

	var req createTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	var receiver services.ReceiverRef
	switch {
	case req.ReceiverID != nil && req.ReceiverEmail != nil:
		s.writeError(r.Context(), w, common.Validationf("receiverId and receiverEmail are mutually exclusive"))
		return
	case req.ReceiverID != nil:
		receiver = services.ReceiverByID(*req.ReceiverID)
	case req.ReceiverEmail != nil:
		receiver = services.ReceiverByEmail(*req.ReceiverEmail)
	default:
		s.writeError(r.Context(), w, common.Validationf("either receiverId or receiverEmail is required"))
		return
	}

	tx, err := s.transactions.CreateTransaction(r.Context(), senderID, receiver, req.Description, req.Amount, req.FeePercent)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createTransactionResponse{
		ID:          tx.ID,
		SenderID:    tx.SenderID,
		ReceiverID:  tx.ReceiverID,
		Description: tx.Description,
		Amount:      tx.Amount,
		FeePercent:  tx.FeePercent,
	})
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.transactions.ListAll(r.Context())
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

func (s *Server) handleListTransactionsBySender(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	txs, err := s.transactions.ListBySender(r.Context(), id)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

func (s *Server) handleListTransactionsByReceiver(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	txs, err := s.transactions.ListByReceiver(r.Context(), id)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, txs)
}
