package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/ivlev/slideplay/internal/clock"
	"github.com/ivlev/slideplay/internal/media"
	"github.com/ivlev/slideplay/internal/player"
	"github.com/ivlev/slideplay/internal/render"
)

// liveMessage is sent to live playback clients.
type liveMessage struct {
	Type     string                `json:"type"`
	Index    int                   `json:"index"`
	Subtitle string                `json:"subtitle,omitempty"`
	State    *player.PlaybackState `json:"state,omitempty"`
	Frame    *render.View          `json:"frame,omitempty"`
	Result   *player.Result        `json:"result,omitempty"`
	Error    string                `json:"error,omitempty"`
}

// ServeLive handles GET /ws/scenarios/{id}/play. The server runs a player with
// simulated transports; the client sends player.Command messages and receives slide,
// subtitle, complete and exit messages. The session ends on completion, exit or
// disconnect.
func (h *Handler) ServeLive(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	doc, err := h.store.Load(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", "id", id, "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loop := clock.NewLoop(64)
	logger := h.logger.With("id", id, "remote", r.RemoteAddr)

	// only the loop goroutine writes to conn
	send := func(msg liveMessage) {
		if ctx.Err() != nil {
			return
		}
		if err := conn.WriteJSON(msg); err != nil {
			logger.Debug("live write failed", "error", err)
			cancel()
		}
	}

	var p *player.Player
	p = player.New(doc, player.Options{
		Clock:              loop,
		Logger:             logger,
		Transports:         media.Simulator{Clock: loop, Interval: h.opts.TimeUpdateInterval}.Factory(),
		TransitionDuration: h.opts.TransitionDuration,
		SettleDelay:        h.opts.SettleDelay,
		LoadingDelay:       h.opts.LoadingDelay,
		OnSlideChange: func(index int) {
			state := p.Snapshot()
			frame := p.Frame()
			send(liveMessage{Type: "slide", Index: index, State: &state, Frame: &frame})
		},
		OnSubtitle: func(index int, text string) {
			send(liveMessage{Type: "subtitle", Index: index, Subtitle: text})
		},
		OnComplete: func(res player.Result) {
			send(liveMessage{Type: "complete", Index: res.CurrentSlide, Result: &res})
			cancel()
		},
		OnExit: func(state player.PlaybackState) {
			send(liveMessage{Type: "exit", Index: state.CurrentSlide, State: &state})
			cancel()
		},
	})

	go func() {
		for {
			var cmd player.Command
			if err := conn.ReadJSON(&cmd); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logger.Debug("live read ended", "error", err)
				}
				cancel()
				return
			}
			loop.Post(func() {
				if err := p.Apply(cmd); err != nil {
					send(liveMessage{Type: "error", Index: p.Snapshot().CurrentSlide, Error: err.Error()})
				}
			})
		}
	}()

	logger.Info("live playback started", "slides", len(doc.Slides))
	loop.Post(p.Start)
	_ = loop.Run(ctx)

	// the loop has stopped; this goroutine is the only one touching p now
	p.Exit()
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	logger.Info("live playback ended", "state", p.State().String())
}
