package http

import (
	"encoding/json"
	stdErrors "errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/apurva-sri/Bolio-chatWeb/config"
	"github.com/apurva-sri/Bolio-chatWeb/internal/message"
	"github.com/apurva-sri/Bolio-chatWeb/internal/note"
	"github.com/apurva-sri/Bolio-chatWeb/internal/push"
	Push "github.com/apurva-sri/Bolio-chatWeb/internal/push/model"
	pushRepository "github.com/apurva-sri/Bolio-chatWeb/internal/push/repository"
	"github.com/apurva-sri/Bolio-chatWeb/internal/relay"
	appErrors "github.com/apurva-sri/Bolio-chatWeb/pkg/errors"
	"github.com/apurva-sri/Bolio-chatWeb/pkg/logger"
)

type Handler struct {
	Messages message.MessageUsecase
	Notes    note.NoteUsecase
	Subs     push.SubscriptionRepository
	Hub      *relay.Hub
	Config   *config.Config
	Logger   logger.Logger
}

func NewHandler(messages message.MessageUsecase, notes note.NoteUsecase, subs push.SubscriptionRepository, hub *relay.Hub, cfg *config.Config, logger logger.Logger) *Handler {
	return &Handler{
		Messages: messages,
		Notes:    notes,
		Subs:     subs,
		Hub:      hub,
		Config:   cfg,
		Logger:   logger,
	}
}

func (h *Handler) Routes() http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/message", h.HandleSendMessage).Methods(http.MethodPost)
	api.HandleFunc("/message/read/{roomId}", h.HandleMarkRoomRead).Methods(http.MethodPut)
	api.HandleFunc("/message/delivered/{id}", h.HandleMarkDelivered).Methods(http.MethodPut)
	api.HandleFunc("/message/{roomId}", h.HandleGetMessages).Methods(http.MethodGet)
	api.HandleFunc("/user/push-subscription", h.HandleSavePushSubscription).Methods(http.MethodPost)
	api.HandleFunc("/user/push-subscription", h.HandleDeletePushSubscription).Methods(http.MethodDelete)
	api.HandleFunc("/notes", h.HandleListNotes).Methods(http.MethodGet)
	api.HandleFunc("/notes", h.HandleCreateNote).Methods(http.MethodPost)
	api.HandleFunc("/notes/{id}", h.HandleUpdateNote).Methods(http.MethodPut)
	api.HandleFunc("/notes/{id}", h.HandleDeleteNote).Methods(http.MethodDelete)

	r.HandleFunc("/ws", h.HandleWebSocket)

	c := cors.New(cors.Options{
		AllowedOrigins:   h.Config.Server.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-User-ID"},
		AllowCredentials: true,
	})
	return c.Handler(r)
}

// userID extracts the authenticated user set by the fronting auth proxy.
func (h *Handler) userID(r *http.Request) (uuid.UUID, bool) {
	raw := r.Header.Get("X-User-ID")
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

type sendMessageRequest struct {
	RoomID   uuid.UUID `json:"roomId"`
	Content  string    `json:"content"`
	Type     string    `json:"type"`
	FileURL  string    `json:"fileUrl"`
	FileName string    `json:"fileName"`
}

func (h *Handler) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		h.writeError(w, appErrors.Unauthorized("missing user identity"))
		return
	}

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, appErrors.InvalidArg("invalid request body"))
		return
	}
	if req.RoomID == uuid.Nil {
		h.writeError(w, appErrors.InvalidArg("roomId is required"))
		return
	}

	msg, err := h.Messages.Send(r.Context(), message.SendMessageCommand{
		SenderID: userID,
		RoomID:   req.RoomID,
		Content:  req.Content,
		Type:     req.Type,
		FileURL:  req.FileURL,
		FileName: req.FileName,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, msg)
}

func (h *Handler) HandleGetMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		h.writeError(w, appErrors.Unauthorized("missing user identity"))
		return
	}
	roomID, err := uuid.Parse(mux.Vars(r)["roomId"])
	if err != nil {
		h.writeError(w, appErrors.InvalidArg("invalid room id"))
		return
	}

	msgs, err := h.Messages.History(r.Context(), roomID, userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, msgs)
}

func (h *Handler) HandleMarkRoomRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		h.writeError(w, appErrors.Unauthorized("missing user identity"))
		return
	}
	roomID, err := uuid.Parse(mux.Vars(r)["roomId"])
	if err != nil {
		h.writeError(w, appErrors.InvalidArg("invalid room id"))
		return
	}

	if err := h.Messages.MarkRoomRead(r.Context(), roomID, userID); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) HandleMarkDelivered(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		h.writeError(w, appErrors.Unauthorized("missing user identity"))
		return
	}
	messageID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, appErrors.InvalidArg("invalid message id"))
		return
	}

	if _, err := h.Messages.MarkDelivered(r.Context(), messageID, userID); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type pushSubscriptionRequest struct {
	Subscription struct {
		Endpoint string `json:"endpoint"`
		Keys     struct {
			P256dh string `json:"p256dh"`
			Auth   string `json:"auth"`
		} `json:"keys"`
	} `json:"subscription"`
}

func (h *Handler) HandleSavePushSubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		h.writeError(w, appErrors.Unauthorized("missing user identity"))
		return
	}

	var req pushSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, appErrors.InvalidArg("invalid request body"))
		return
	}
	s := req.Subscription
	if s.Endpoint == "" || s.Keys.P256dh == "" || s.Keys.Auth == "" {
		h.writeError(w, appErrors.ErrInvalidSubscription)
		return
	}

	err := h.Subs.UpsertSubscription(r.Context(), &Push.Subscription{
		UserID:   userID,
		Endpoint: s.Endpoint,
		P256dh:   s.Keys.P256dh,
		Auth:     s.Keys.Auth,
	})
	if err != nil {
		h.Logger.Error("failed to save push subscription", "user_id", userID, "err", err)
		h.writeError(w, appErrors.Internal("failed to save subscription"))
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleDeletePushSubscription disables push for the user, e.g. after the
// browser reported the endpoint expired.
func (h *Handler) HandleDeletePushSubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		h.writeError(w, appErrors.Unauthorized("missing user identity"))
		return
	}

	if err := h.Subs.DeleteSubscription(r.Context(), userID); err != nil {
		if stdErrors.Is(err, pushRepository.ErrSubscriptionNotFound) {
			h.writeError(w, appErrors.ErrSubscriptionNotFound)
			return
		}
		h.Logger.Error("failed to delete push subscription", "user_id", userID, "err", err)
		h.writeError(w, appErrors.Internal("failed to delete subscription"))
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type noteRequest struct {
	Title      *string    `json:"title"`
	Content    *string    `json:"content"`
	Color      *string    `json:"color"`
	ReminderAt *time.Time `json:"reminderAt"`
	// ClearReminder removes the reminder; omitting reminderAt leaves it as is.
	ClearReminder bool  `json:"clearReminder"`
	IsPinned      *bool `json:"isPinned"`
}

func (h *Handler) HandleCreateNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		h.writeError(w, appErrors.Unauthorized("missing user identity"))
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, appErrors.InvalidArg("invalid request body"))
		return
	}

	cmd := note.CreateNoteCommand{UserID: userID, ReminderAt: req.ReminderAt}
	if req.Title != nil {
		cmd.Title = *req.Title
	}
	if req.Content != nil {
		cmd.Content = *req.Content
	}
	if req.Color != nil {
		cmd.Color = *req.Color
	}

	n, err := h.Notes.Create(r.Context(), cmd)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, n)
}

func (h *Handler) HandleListNotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		h.writeError(w, appErrors.Unauthorized("missing user identity"))
		return
	}

	notes, err := h.Notes.List(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, notes)
}

func (h *Handler) HandleUpdateNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		h.writeError(w, appErrors.Unauthorized("missing user identity"))
		return
	}
	noteID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, appErrors.InvalidArg("invalid note id"))
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, appErrors.InvalidArg("invalid request body"))
		return
	}

	n, err := h.Notes.Update(r.Context(), note.UpdateNoteCommand{
		NoteID:        noteID,
		UserID:        userID,
		Title:         req.Title,
		Content:       req.Content,
		Color:         req.Color,
		ReminderAt:    req.ReminderAt,
		ClearReminder: req.ClearReminder,
		IsPinned:      req.IsPinned,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, n)
}

func (h *Handler) HandleDeleteNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		h.writeError(w, appErrors.Unauthorized("missing user identity"))
		return
	}
	noteID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, appErrors.InvalidArg("invalid note id"))
		return
	}

	if err := h.Notes.Delete(r.Context(), noteID, userID); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.Error("failed to encode response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var appErr *appErrors.AppError
	if !stdErrors.As(err, &appErr) {
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal server error"})
		return
	}
	h.writeJSON(w, statusFor(appErr.Code), appErr)
}

func statusFor(code appErrors.Code) int {
	switch code {
	case appErrors.CodeInvalidArgument:
		return http.StatusBadRequest
	case appErrors.CodeNotFound:
		return http.StatusNotFound
	case appErrors.CodePermissionDenied:
		return http.StatusForbidden
	case appErrors.CodeUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
