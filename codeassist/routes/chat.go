package routes

import (
	"codeassist/codeassist/controllers"
	httputils "codeassist/codeassist/utils/http"
	"codeassist/codeassist/utils/types"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
)

func ChatRoutes(ctrl *controllers.ChatController) chi.Router {
	r := chi.NewRouter()

	// POST /chat/stream : relay one chat turn as server-sent events
	r.Post("/stream", func(w http.ResponseWriter, r *http.Request) {
		var req types.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		events, err := ctrl.Stream(r.Context(), req)
		if err != nil {
			httputils.WriteError(w, statusForError(err, http.StatusInternalServerError), err.Error())
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			httputils.WriteError(w, http.StatusInternalServerError, "streaming unsupported")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)

		// Drain to the end even if the client went away, so the controller
		// goroutine gets to persist the transcript.
		for ev := range events {
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	})

	// GET /chat/ws : same relay over a websocket, one turn per connection
	r.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusInternalError, "internal error")

		ctx := r.Context()
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		if typ != websocket.MessageText {
			conn.Close(websocket.StatusUnsupportedData, "unsupported data")
			return
		}
		var req types.ChatRequest
		if err := json.Unmarshal(data, &req); err != nil {
			conn.Write(ctx, websocket.MessageText, []byte(`{"type":"error","content":"invalid json"}`))
			return
		}

		events, err := ctrl.Stream(ctx, req)
		if err != nil {
			msg, _ := json.Marshal(types.StreamEvent{Type: "error", Content: err.Error()})
			conn.Write(ctx, websocket.MessageText, msg)
			conn.Close(websocket.StatusPolicyViolation, "rejected")
			return
		}

		for ev := range events {
			msg, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			if err := conn.Write(ctx, websocket.MessageText, msg); err != nil {
				// Client gone; keep draining so the transcript still lands.
				for range events {
				}
				return
			}
		}
		conn.Close(websocket.StatusNormalClosure, "")
	})

	return r
}
