package game

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"kalaha/internal/domain/game"
)

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWatch streams the game to a websocket: the current snapshot first,
// then one message per saved move until either side disconnects.
func (g *GameHandler) HandleWatch(w http.ResponseWriter, r *http.Request) {
	gamePin := chi.URLParam(r, "gamePin")

	current, sub, err := g.gameUC.Watch(r.Context(), gamePin)
	if err != nil {
		g.fail(w, err)
		return
	}
	defer sub.Close()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Errorf("upgrade error: %v", err)
		return
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err = conn.WriteJSON(game.Update{Game: current}); err != nil {
		g.log.Warnf("failed to send snapshot of game %s: %v", gamePin, err)
		return
	}

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-sub.Updates():
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err = conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				g.log.Warnf("failed to forward update of game %s: %v", gamePin, err)
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}
