// Package gateway exposes the ledger over WebSocket. Clients submit execute
// and query envelopes as JSON frames; executes are funneled through the host
// runtime's sequential queue, queries read the stores directly.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"nft-ledger/internal/domain"
	"nft-ledger/internal/host"
	"nft-ledger/internal/observability"
	"nft-ledger/internal/query"
)

// Request is one inbound frame. Exactly one of Execute or Query must be set.
// The sender is taken from the frame as-is: transaction-envelope signature
// verification belongs to the surrounding host deployment, not this gateway.
type Request struct {
	ID      uint64          `json:"id"`
	Sender  domain.Address  `json:"sender,omitempty"`
	Execute json.RawMessage `json:"execute,omitempty"`
	Query   json.RawMessage `json:"query,omitempty"`
}

// Reply is the response frame for one request.
type Reply struct {
	ID     uint64          `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Server serves the /ws endpoint.
type Server struct {
	runtime  *host.Runtime
	queries  *query.Service
	metrics  *observability.Metrics
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a gateway over the runtime and query service.
func NewServer(runtime *host.Runtime, queries *query.Service, metrics *observability.Metrics, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runtime: runtime,
		queries: queries,
		metrics: metrics,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
}

// Handler returns the HTTP handler serving the gateway endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	return mux
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("upgrade %s: %v", r.RemoteAddr, err)
		return
	}
	defer conn.Close()

	if s.metrics != nil {
		s.metrics.ConnectionsActive.Inc()
		defer s.metrics.ConnectionsActive.Dec()
	}

	// Frames from one connection are handled in arrival order; writes are
	// serialized because replies may interleave with other goroutines later.
	var writeMu sync.Mutex

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Printf("read %s: %v", r.RemoteAddr, err)
			}
			return
		}

		var req Request
		if err := json.Unmarshal(data, &req); err != nil {
			s.writeReply(conn, &writeMu, Reply{Error: fmt.Sprintf("decode request: %v", err)})
			continue
		}

		reply := s.dispatch(r.Context(), &req)
		s.writeReply(conn, &writeMu, reply)
	}
}

func (s *Server) dispatch(ctx context.Context, req *Request) Reply {
	switch {
	case req.Execute != nil && req.Query != nil:
		return Reply{ID: req.ID, Error: "request must carry either execute or query, not both"}
	case req.Execute != nil:
		return s.dispatchExecute(ctx, req)
	case req.Query != nil:
		return s.dispatchQuery(ctx, req)
	default:
		return Reply{ID: req.ID, Error: "request carries neither execute nor query"}
	}
}

func (s *Server) dispatchExecute(ctx context.Context, req *Request) Reply {
	if err := req.Sender.Validate(); err != nil {
		return Reply{ID: req.ID, Error: fmt.Sprintf("bad sender: %v", err)}
	}

	msg, err := domain.UnmarshalExecuteMsg(req.Execute)
	if err != nil {
		return Reply{ID: req.ID, Error: err.Error()}
	}

	resp, err := s.runtime.Submit(ctx, domain.MessageInfo{Sender: req.Sender}, msg)
	if err != nil {
		return Reply{ID: req.ID, Error: err.Error()}
	}

	result, err := json.Marshal(resp)
	if err != nil {
		return Reply{ID: req.ID, Error: fmt.Sprintf("encode response: %v", err)}
	}
	return Reply{ID: req.ID, Result: result}
}

func (s *Server) dispatchQuery(ctx context.Context, req *Request) Reply {
	msg, err := domain.UnmarshalQueryMsg(req.Query)
	if err != nil {
		return Reply{ID: req.ID, Error: err.Error()}
	}

	if s.metrics != nil {
		s.metrics.QueriesServed.WithLabelValues(msg.Kind()).Inc()
	}

	resp, err := s.queries.Query(ctx, msg)
	if err != nil {
		return Reply{ID: req.ID, Error: err.Error()}
	}

	result, err := json.Marshal(resp)
	if err != nil {
		return Reply{ID: req.ID, Error: fmt.Sprintf("encode response: %v", err)}
	}
	return Reply{ID: req.ID, Result: result}
}

func (s *Server) writeReply(conn *websocket.Conn, mu *sync.Mutex, reply Reply) {
	mu.Lock()
	defer mu.Unlock()
	if err := conn.WriteJSON(reply); err != nil {
		s.logger.Printf("write reply: %v", err)
	}
}
