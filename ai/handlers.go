package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"mise/utils"
)

const chefSystemPrompt = "You are a world-class professional chef assistant. Provide practical, accurate culinary advice. Be concise but helpful."

const chatFallback = "I'm having trouble connecting to the kitchen right now. Please try again later."

// Chat answers a free-form culinary question. Upstream failures answer with
// a fixed fallback string instead of an error status; the user retries.
func Chat(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Message is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	reply := chatFallback
	if client, err := Default(); err == nil {
		if text, err := client.Complete(ctx, chefSystemPrompt, req.Message); err == nil {
			reply = text
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "reply": reply})
}

// Speak synthesizes assistant text into raw PCM audio (16-bit, 24kHz, mono).
func Speak(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Text is required")
		return
	}

	client, err := Default()
	if err != nil {
		utils.RespondWithError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	audio, err := client.Speak(ctx, req.Text)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, "Speech synthesis failed")
		return
	}

	w.Header().Set("Content-Type", "audio/pcm")
	w.Header().Set("X-Sample-Rate", "24000")
	w.Header().Set("X-Channels", "1")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}
