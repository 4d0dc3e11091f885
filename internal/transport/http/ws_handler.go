package http

import (
	"context"
	"errors"
	"io"
	stdhttp "net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/channelchat/internal/chat"
	"github.com/vovakirdan/channelchat/internal/proto"
)

// session is one live WebSocket connection as seen by the coordinator.
type session struct {
	id     string
	events chan *chat.Event
}

func newSession() *session {
	return &session{
		id:     uuid.NewString(),
		events: make(chan *chat.Event, 32),
	}
}

// ID returns the stable identifier of this connection.
func (s *session) ID() string { return s.id }

// Send queues an event for the write loop, dropping it if the client is too
// slow to keep up.
func (s *session) Send(ev *chat.Event) bool {
	select {
	case s.events <- ev:
		return true
	default:
		return false
	}
}

// WSHandler upgrades HTTP connections and bridges them to the coordinator.
type WSHandler struct {
	coord *chat.Coordinator
	log   *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(coord *chat.Coordinator, logger *zerolog.Logger) stdhttp.Handler {
	return &WSHandler{coord: coord, log: logger}
}

func (h *WSHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	ctx := r.Context()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	sess := newSession()
	defer func() {
		// Full cleanup happens in the coordinator: leave every channel,
		// then drop the user record.
		h.coord.Commands <- &chat.Command{Kind: chat.CommandDisconnect, Conn: sess}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, sess)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, sess)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != 0 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			h.log.Warn().Err(err).Str("conn_id", sess.id).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, sess *session) error {
	for {
		var inbound proto.Inbound
		if err := wsjson.Read(ctx, conn, &inbound); err != nil {
			return err
		}

		cmd, protoErr := inboundToCommand(sess, inbound)
		if protoErr != nil {
			if err := wsjson.Write(ctx, conn, proto.Outbound{
				Event: proto.OutboundChatError,
				Data:  protoErr,
			}); err != nil {
				return err
			}
			continue
		}
		if cmd != nil {
			h.coord.Commands <- cmd
		}
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, sess *session) error {
	for {
		select {
		case event := <-sess.events:
			if err := wsjson.Write(ctx, conn, outboundFromEvent(event)); err != nil {
				h.log.Error().Err(err).Str("conn_id", sess.id).Msg("write ws event")
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
