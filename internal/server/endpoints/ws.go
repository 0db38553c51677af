package endpoints

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/jackzampolin/sommelier/internal/session"
	"github.com/jackzampolin/sommelier/internal/sommelier"
	"github.com/jackzampolin/sommelier/internal/svcctx"
)

// Client message types.
const (
	MessageRecommend = "recommend"
	MessageCompare   = "compare"
	MessageHistory   = "history"
)

// Server message types.
const (
	MessageSession        = "session"
	MessageRecommendation = "recommendation"
	MessageComparison     = "comparison"
	MessageError          = "error"
)

// Error codes sent in error messages.
const (
	ErrCodeInvalidMessage = "INVALID_MESSAGE"
	ErrCodeUnknownType    = "UNKNOWN_TYPE"
	ErrCodeSessionFailed  = "SESSION_FAILED"
	ErrCodeUnavailable    = "UNAVAILABLE"
)

// maxMessageSize bounds one client frame.
const maxMessageSize = 64 * 1024

// ClientMessage is a frame sent by a socket client.
type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ServerMessage is a frame sent to a socket client.
type ServerMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id,omitempty"`
	Payload   any    `json:"payload,omitempty"`
}

// ErrorPayload describes a failed client message.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errorMessage(sessionID, code, msg string) ServerMessage {
	return ServerMessage{
		Type:      MessageError,
		SessionID: sessionID,
		Payload:   ErrorPayload{Code: code, Message: msg},
	}
}

// WebSocketEndpoint handles GET /api/ws. Each connection owns one session
// for its lifetime; the session is dropped when the socket closes.
type WebSocketEndpoint struct {
	// AllowedOrigins lists accepted Origin headers. Empty or "*" accepts all.
	AllowedOrigins []string
}

func (e *WebSocketEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/ws", e.handler
}

func (e *WebSocketEndpoint) RequiresInit() bool { return true }

func (e *WebSocketEndpoint) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if len(e.AllowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range e.AllowedOrigins {
				if allowed == "*" || allowed == origin {
					return true
				}
			}
			return false
		},
	}
}

// handler godoc
//
//	@Summary		Session socket
//	@Description	Upgrades to a WebSocket bound to a new session. Client frames are
//	@Description	{type: recommend|compare|history, payload}; replies are
//	@Description	{type: recommendation|comparison|history|error, session_id, payload}.
//	@Tags			recommend
//	@Success		101
//	@Router			/api/ws [get]
func (e *WebSocketEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	logger := svcctx.LoggerFrom(r.Context())
	upgrader := e.upgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	sm := svcctx.SessionsFrom(r.Context())
	sess, err := sm.Create(r.Context())
	if err != nil {
		_ = conn.WriteJSON(errorMessage("", ErrCodeSessionFailed, err.Error()))
		return
	}
	defer func() {
		if err := sm.Delete(sess.ID); err != nil && !errors.Is(err, session.ErrNotFound) {
			logger.Warn("failed to drop websocket session", "session_id", sess.ID, "error", err)
		}
	}()
	logger.Info("websocket session opened", "session_id", sess.ID)

	if err := conn.WriteJSON(ServerMessage{Type: MessageSession, SessionID: sess.ID}); err != nil {
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("websocket read error", "session_id", sess.ID, "error", err)
			}
			break
		}

		reply := e.dispatch(ctx, sess, data)
		if err := conn.WriteJSON(reply); err != nil {
			logger.Warn("websocket write error", "session_id", sess.ID, "error", err)
			break
		}
	}
	logger.Info("websocket session closed", "session_id", sess.ID)
}

// dispatch serves one client frame. Frames are handled in arrival order.
func (e *WebSocketEndpoint) dispatch(ctx context.Context, sess *session.Session, data []byte) ServerMessage {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return errorMessage(sess.ID, ErrCodeInvalidMessage, "invalid JSON: "+err.Error())
	}

	switch msg.Type {
	case MessageRecommend:
		var req RecommendRequest
		if err := decodePayload(msg.Payload, &req); err != nil {
			return errorMessage(sess.ID, ErrCodeInvalidMessage, err.Error())
		}
		if err := req.validate(); err != nil {
			return errorMessage(sess.ID, ErrCodeInvalidMessage, err.Error())
		}
		return ServerMessage{
			Type:      MessageRecommendation,
			SessionID: sess.ID,
			Payload:   recommendIn(ctx, sess, req),
		}

	case MessageCompare:
		var req CompareRequest
		if err := decodePayload(msg.Payload, &req); err != nil {
			return errorMessage(sess.ID, ErrCodeInvalidMessage, err.Error())
		}
		if err := req.validate(); err != nil {
			return errorMessage(sess.ID, ErrCodeInvalidMessage, err.Error())
		}
		s := svcctx.SommelierFrom(ctx)
		if s == nil {
			return errorMessage(sess.ID, ErrCodeUnavailable, "sommelier not initialized")
		}
		sess.Touch()
		return ServerMessage{
			Type:      MessageComparison,
			SessionID: sess.ID,
			Payload:   compareWith(ctx, s, req),
		}

	case MessageHistory:
		sess.Touch()
		summaries := sess.History().Summaries()
		return ServerMessage{
			Type:      MessageHistory,
			SessionID: sess.ID,
			Payload: HistoryResponse{
				SessionID:    sess.ID,
				Interactions: summaries,
				Total:        len(summaries),
			},
		}

	default:
		return errorMessage(sess.ID, ErrCodeUnknownType, fmt.Sprintf("unknown message type %q", msg.Type))
	}
}

func decodePayload(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return errors.New("payload is required")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}

// Command opens an interactive socket session: each input line is a dish.
func (e *WebSocketEndpoint) Command(getServerURL func() string) *cobra.Command {
	var name, persona string
	var includeBottles bool
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive recommendations over the session socket",
		Long: `Opens a WebSocket session and asks for a pairing for every dish typed.

Commands:
  :history   show this session's saved recommendations
  :compare   ask every persona about the previous dish
  :quit      close the session`,
		RunE: func(cmd *cobra.Command, args []string) error {
			wsURL := strings.Replace(getServerURL(), "http", "ws", 1) + "/api/ws"
			conn, _, err := websocket.DefaultDialer.DialContext(cmd.Context(), wsURL, nil)
			if err != nil {
				return fmt.Errorf("failed to connect to %s: %w", wsURL, err)
			}
			defer conn.Close()

			var hello ServerMessage
			if err := conn.ReadJSON(&hello); err != nil {
				return err
			}
			if hello.Type == MessageError {
				return fmt.Errorf("server refused session: %v", hello.Payload)
			}
			fmt.Printf("Session %s. Type a dish, or :quit.\n", hello.SessionID)

			var lastDish string
			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					break
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}

				var msg ClientMessage
				switch line {
				case ":quit":
					return conn.WriteMessage(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				case ":history":
					msg = ClientMessage{Type: MessageHistory}
				case ":compare":
					if lastDish == "" {
						fmt.Println("No dish yet.")
						continue
					}
					payload, _ := json.Marshal(CompareRequest{CustomerName: name, Dish: lastDish})
					msg = ClientMessage{Type: MessageCompare, Payload: payload}
				default:
					lastDish = line
					payload, _ := json.Marshal(RecommendRequest{
						CustomerName:   name,
						Dish:           line,
						Persona:        persona,
						IncludeBottles: includeBottles,
					})
					msg = ClientMessage{Type: MessageRecommend, Payload: payload}
				}

				if err := conn.WriteJSON(msg); err != nil {
					return err
				}
				if err := printSocketReply(conn); err != nil {
					return err
				}
			}
			return scanner.Err()
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Customer name")
	cmd.Flags().StringVar(&persona, "persona", sommelier.DefaultPersona, "Persona key")
	cmd.Flags().BoolVar(&includeBottles, "bottles", false, "Append bottle suggestions")
	return cmd
}

// printSocketReply reads one server frame and prints it for a terminal.
func printSocketReply(conn *websocket.Conn) error {
	var raw struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := conn.ReadJSON(&raw); err != nil {
		return err
	}

	switch raw.Type {
	case MessageRecommendation:
		var resp RecommendResponse
		if err := json.Unmarshal(raw.Payload, &resp); err != nil {
			return err
		}
		fmt.Println(resp.Text())
	case MessageComparison:
		var resp CompareResponse
		if err := json.Unmarshal(raw.Payload, &resp); err != nil {
			return err
		}
		fmt.Println(resp.Text())
	case MessageHistory:
		var resp HistoryResponse
		if err := json.Unmarshal(raw.Payload, &resp); err != nil {
			return err
		}
		fmt.Println(resp.Text())
	case MessageError:
		var p ErrorPayload
		if err := json.Unmarshal(raw.Payload, &p); err != nil {
			return err
		}
		fmt.Printf("error (%s): %s\n", p.Code, p.Message)
	default:
		fmt.Printf("unexpected %q message\n", raw.Type)
	}
	return nil
}
