package routes

import (
	"eventfriend_server/controllers"
	"eventfriend_server/services"

	"github.com/gorilla/mux"
)

// RegisterChatRoutes sets up routes for connection and message operations under /api/chat
func RegisterChatRoutes(r *mux.Router, chatService *services.ChatService) {
	controller := controllers.NewChatController(chatService)

	chatRouter := r.PathPrefix("/api/chat").Subrouter()

	chatRouter.HandleFunc("/connections", controller.HandleCreateConnection).Methods("POST")
	chatRouter.HandleFunc("/connections/{connectionId}/accept", controller.HandleAcceptConnection).Methods("POST")
	chatRouter.HandleFunc("/connections/{connectionId}/messages", controller.HandleSendConnectionMessage).Methods("POST")
	chatRouter.HandleFunc("/connections/{connectionId}/messages", controller.HandleGetConnectionMessages).Methods("GET")
	chatRouter.HandleFunc("/message", controller.HandleSendMessage).Methods("POST")
	chatRouter.HandleFunc("/messages", controller.HandleGetMessagesBetween).Methods("GET")
}
