package http

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/secmon-lab/hemera/pkg/usecase"
	"github.com/secmon-lab/hemera/pkg/utils/errutil"
	"github.com/secmon-lab/hemera/pkg/utils/safe"
)

// chatFrame is one utterance from the UI
type chatFrame struct {
	Pattern string `json:"pattern"`
	Message string `json:"message"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// wsHandler runs one chat conversation per websocket connection. The
// calendar binding and the tool set are fixed when the connection is
// accepted, so a login during an open conversation takes effect on the
// next connection.
func wsHandler(chatUC *usecase.ChatUseCase, authUC *usecase.AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already replied to the client
			errutil.Handle(r.Context(), err, "failed to upgrade websocket")
			return
		}
		defer safe.Close(r.Context(), conn)

		ctx := r.Context()

		var sessionToken string
		if c, err := r.Cookie(authCookieName); err == nil {
			sessionToken = c.Value
		}

		sess, err := chatUC.NewSession(ctx, authUC.CalendarForSession(ctx, sessionToken))
		if err != nil {
			errutil.Handle(ctx, err, "failed to start chat session")
			writeServerError(conn, err)
			return
		}
		defer chatUC.CloseSession(ctx, sess)

		for {
			var frame chatFrame
			if err := conn.ReadJSON(&frame); err != nil {
				var closeErr *websocket.CloseError
				if !errors.As(err, &closeErr) {
					// Malformed frame or broken transport
					writeServerError(conn, err)
				}
				return
			}

			reply, err := chatUC.HandleUtterance(ctx, sess, frame.Pattern, frame.Message)
			if err != nil {
				errutil.Handle(ctx, err, "chat turn failed")
				writeServerError(conn, err)
				return
			}

			if err := conn.WriteMessage(websocket.TextMessage, []byte(reply)); err != nil {
				errutil.Handle(ctx, err, "failed to send chat reply")
				return
			}
		}
	}
}

// writeServerError sends the terminal error frame. The caller closes the
// connection right after.
func writeServerError(conn *websocket.Conn, err error) {
	msg := "Server error: " + err.Error()
	conn.WriteMessage(websocket.TextMessage, []byte(msg)) //nolint:errcheck // connection is being torn down
}
