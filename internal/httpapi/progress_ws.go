package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

const (
	progressWriteWait = 10 * time.Second
	progressPongWait  = 60 * time.Second
	progressPingEvery = (progressPongWait * 9) / 10
)

// handleProgressWS streams the cached map's most recent stage timings to a
// connecting client, then pushes updates whenever the cache is refreshed by
// a subsequent generate/rivers call, until the client disconnects.
func (s *Server) handleProgressWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("httpapi: websocket upgrade failed")
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(1 * time.Second)
	pinger := time.NewTicker(progressPingEvery)
	defer ticker.Stop()
	defer pinger.Stop()

	var lastTimings string

	for {
		select {
		case <-ticker.C:
			if _, _, _, ok := s.mapCache.Load(); !ok {
				continue
			}
			payload, err := json.Marshal(s.mapCache.Timings())
			if err != nil {
				continue
			}
			if string(payload) == lastTimings {
				continue
			}
			lastTimings = string(payload)

			conn.SetWriteDeadline(time.Now().Add(progressWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-pinger.C:
			conn.SetWriteDeadline(time.Now().Add(progressWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
