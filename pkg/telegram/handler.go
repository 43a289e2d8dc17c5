// Package telegram serves the placeholder panel for the Telegram chat widget.
// Nothing is sent to Telegram; the panel only explains how to embed a widget.
package telegram

import (
	"net/http"

	"github.com/klokku/creatordash/internal/rest"
)

type Panel struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ChatUrl     string   `json:"chatUrl"`
	Steps       []string `json:"steps"`
}

func NewPanel(chatUrl string) Panel {
	return Panel{
		Title:       "Telegram Integration",
		Description: "Connect your Telegram chat widget to manage conversations directly from the dashboard.",
		ChatUrl:     chatUrl,
		Steps: []string{
			"Create a Telegram bot or get your chat widget code",
			"Configure the widget settings in your Telegram bot settings",
			"Embed the widget code in this page for seamless integration",
		},
	}
}

type Handler struct {
	panel Panel
}

func NewHandler(chatUrl string) *Handler {
	return &Handler{panel: NewPanel(chatUrl)}
}

func (h *Handler) GetPanel(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, h.panel)
}
