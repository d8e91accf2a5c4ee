package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	errs "kalaha/internal/errors"
	"kalaha/internal/httpresponse"
	"kalaha/internal/pin"
)

const PlayerPinHeader = "x-player-pin"

type playerPinKey struct{}

// PlayerPin rejects requests without a well-formed x-player-pin header and
// stores its value in the request context.
func PlayerPin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		playerPin := strings.TrimSpace(r.Header.Get(PlayerPinHeader))
		if !pin.IsPlayer(playerPin) {
			httpresponse.WriteError(w, errs.ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPlayerPin(r.Context(), playerPin)))
	})
}

// GamePin answers 404 for routes whose {gamePin} parameter can never name a
// game.
func GamePin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if kind, ok := pin.KindOf(chi.URLParam(r, "gamePin")); !ok || kind != pin.Game {
			httpresponse.WriteError(w, errs.ErrGameNotFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func WithPlayerPin(ctx context.Context, playerPin string) context.Context {
	return context.WithValue(ctx, playerPinKey{}, playerPin)
}

func PlayerPinFrom(ctx context.Context) string {
	playerPin, _ := ctx.Value(playerPinKey{}).(string)
	return playerPin
}
