package controllers

import (
	"encoding/json"
	"net/http"

	"eventfriend_server/services"

	"github.com/gorilla/mux"
)

// ChatController struct
type ChatController struct {
	ChatService *services.ChatService
}

// NewChatController initializes the chat controller
func NewChatController(service *services.ChatService) *ChatController {
	return &ChatController{ChatService: service}
}

// HandleCreateConnection - Establishes the connection for a user pair
// and event; idempotent for the same pair and event
func (c *ChatController) HandleCreateConnection(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserA   string `json:"userA"`
		UserB   string `json:"userB"`
		EventID string `json:"eventId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	connection, err := c.ChatService.CreateConnection(r.Context(), request.UserA, request.UserB, request.EventID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, connection)
}

// HandleAcceptConnection - Moves a pending connection to accepted
func (c *ChatController) HandleAcceptConnection(w http.ResponseWriter, r *http.Request) {
	connectionID := mux.Vars(r)["connectionId"]

	connection, err := c.ChatService.AcceptConnection(r.Context(), connectionID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, connection)
}

// HandleSendMessage - Sends a direct message between two users
func (c *ChatController) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var request struct {
		SenderID   string `json:"senderId"`
		ReceiverID string `json:"receiverId"`
		Content    string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	message, err := c.ChatService.SendMessage(r.Context(), request.SenderID, request.ReceiverID, request.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, message)
}

// HandleSendConnectionMessage - Sends a message into a connection's thread
func (c *ChatController) HandleSendConnectionMessage(w http.ResponseWriter, r *http.Request) {
	connectionID := mux.Vars(r)["connectionId"]

	var request struct {
		SenderID string `json:"senderId"`
		Content  string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	message, err := c.ChatService.SendMessageOnConnection(r.Context(), connectionID, request.SenderID, request.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, message)
}

// HandleGetMessagesBetween - Fetches the thread between two users,
// oldest first
func (c *ChatController) HandleGetMessagesBetween(w http.ResponseWriter, r *http.Request) {
	userA := r.URL.Query().Get("userA")
	userB := r.URL.Query().Get("userB")
	if userA == "" || userB == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "userA and userB are required"})
		return
	}

	messages, err := c.ChatService.GetMessagesBetween(r.Context(), userA, userB)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}

// HandleGetConnectionMessages - Fetches a connection's thread, oldest first
func (c *ChatController) HandleGetConnectionMessages(w http.ResponseWriter, r *http.Request) {
	connectionID := mux.Vars(r)["connectionId"]

	messages, err := c.ChatService.GetMessagesByConnection(r.Context(), connectionID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}
