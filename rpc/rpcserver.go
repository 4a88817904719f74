// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/emberchain/emberd/chaincfg"
	"github.com/emberchain/emberd/chainquery"
	"github.com/emberchain/emberd/rpcmodel"
	"github.com/emberchain/emberd/util/chainhash"
	"github.com/emberchain/emberd/util/panics"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

const (
	// rpcAuthTimeoutSeconds is the number of seconds a connection to the
	// RPC server is allowed to stay open without authenticating before it
	// is closed.
	rpcAuthTimeoutSeconds = 10

	// maxRequestSize is the maximum number of bytes a request body may
	// carry before it is rejected.
	maxRequestSize = 1024 * 1024
)

// ChainQuerier is the chain-query surface the RPC handlers consume.
type ChainQuerier interface {
	Params() *chaincfg.Params
	BlockByHash(hash *chainhash.Hash) (*chainquery.BlockWithMeta, bool, error)
	OmmersByNumber(blockNumber uint64) ([]chainquery.OmmerRef, error)
	GasUsedByTx(txHash *chainhash.Hash) (uint64, bool, error)
	IsStateAvailable(stateRoot *chainhash.Hash) (bool, error)
	BlockCount() (uint64, error)
	BestBlockHash() (*chainhash.Hash, error)
}

// Config is the configuration the RPC server is instantiated with.
type Config struct {
	// Listeners defines the listeners the RPC server accepts connections
	// on. They are owned by the server after NewServer returns.
	Listeners []net.Listener

	// StartupTime is the unix timestamp the daemon started at, used by
	// the uptime command.
	StartupTime int64

	// MaxClients is the maximum number of concurrent RPC connections.
	MaxClients int

	// User and Pass are the basic-auth credentials. Empty User disables
	// authentication.
	User string
	Pass string

	// Chain serves all chain queries.
	Chain ChainQuerier
}

// commandHandler describes a callback function used to handle a specific
// command.
type commandHandler func(*Server, interface{}, <-chan struct{}) (interface{}, error)

// rpcHandlers maps RPC command strings to appropriate handler functions.
var rpcHandlers = map[string]commandHandler{
	"getMinerDataByBlockHash": handleGetMinerDataByBlockHash,
	"getBlock":                handleGetBlock,
	"getBlockCount":           handleGetBlockCount,
	"getBestBlockHash":        handleGetBestBlockHash,
	"getInfo":                 handleGetInfo,
	"ping":                    handlePing,
	"uptime":                  handleUptime,
	"stop":                    handleStop,
	"debugLevel":              handleDebugLevel,
}

// Server provides a concurrent safe RPC server to a chain server.
type Server struct {
	started  int32
	shutdown int32

	cfg        Config
	authsha    [sha256.Size]byte
	numClients int32

	requestProcessShutdown chan struct{}
	quit                   chan int
	wg                     sync.WaitGroup
}

// NewServer returns a new instance of the Server struct.
func NewServer(cfg *Config) (*Server, error) {
	rpc := Server{
		cfg:                    *cfg,
		requestProcessShutdown: make(chan struct{}),
		quit:                   make(chan int),
	}
	if cfg.User != "" && cfg.Pass != "" {
		login := cfg.User + ":" + cfg.Pass
		auth := "Basic " + base64.StdEncoding.EncodeToString([]byte(login))
		rpc.authsha = sha256.Sum256([]byte(auth))
	}
	return &rpc, nil
}

// RequestedProcessShutdown returns a channel that is sent to when an
// authorized RPC client requests the process to shut down.
func (s *Server) RequestedProcessShutdown() <-chan struct{} {
	return s.requestProcessShutdown
}

// Start is used by emberd to start the rpc listener.
func (s *Server) Start() {
	if atomic.AddInt32(&s.started, 1) != 1 {
		return
	}

	log.Trace("Starting RPC server")
	rpcServeMux := http.NewServeMux()
	httpServer := &http.Server{
		Handler: rpcServeMux,

		// Timeout connections which don't complete the initial
		// handshake within the allowed timeframe.
		ReadTimeout: time.Second * rpcAuthTimeoutSeconds,
	}
	rpcServeMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Connection", "close")
		w.Header().Set("Content-Type", "application/json")
		r.Close = true

		if !s.checkAuth(r) {
			jsonAuthFail(w)
			return
		}
		s.jsonRPCRead(w, r)
	})

	// Endpoint for websocket connections serving the same method table.
	rpcServeMux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		if !s.checkAuth(r) {
			jsonAuthFail(w)
			return
		}
		conn, err := wsUpgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Errorf("Unexpected websocket error: %s", err)
			return
		}
		s.websocketHandler(conn, r.RemoteAddr)
	})

	for _, listener := range s.cfg.Listeners {
		s.wg.Add(1)
		spawn(func() {
			log.Infof("RPC server listening on %s", listener.Addr())
			err := httpServer.Serve(listener)
			log.Tracef("RPC listener done for %s: %s", listener.Addr(), err)
			s.wg.Done()
		})
	}

	s.wg.Add(1)
	spawn(func() {
		defer s.wg.Done()
		<-s.quit
		err := httpServer.Close()
		if err != nil {
			log.Errorf("Problem shutting down http server: %s", err)
		}
	})
}

// Stop is used by emberd to stop the rpc server.
func (s *Server) Stop() error {
	if atomic.AddInt32(&s.shutdown, 1) != 1 {
		log.Infof("RPC server is already in the process of shutting down")
		return nil
	}
	log.Warnf("RPC server shutting down")
	for _, listener := range s.cfg.Listeners {
		err := listener.Close()
		if err != nil {
			log.Errorf("Problem shutting down rpc: %s", err)
			return err
		}
	}
	close(s.quit)
	s.wg.Wait()
	log.Infof("RPC server shutdown complete")
	return nil
}

// checkAuth checks the HTTP Basic authentication supplied by a client against
// the configured credentials. An empty configured user disables auth. A
// constant time comparison is used to prevent timing attacks.
func (s *Server) checkAuth(r *http.Request) bool {
	if s.cfg.User == "" {
		return true
	}

	authhdr := r.Header["Authorization"]
	if len(authhdr) == 0 {
		log.Warnf("RPC authentication failure from %s", r.RemoteAddr)
		return false
	}

	authsha := sha256.Sum256([]byte(authhdr[0]))
	cmp := subtle.ConstantTimeCompare(authsha[:], s.authsha[:])
	if cmp != 1 {
		log.Warnf("RPC authentication failure from %s", r.RemoteAddr)
		return false
	}
	return true
}

// limitConnections responds with a 503 service unavailable and returns true
// if adding another client would exceed the maximum allow RPC clients.
func (s *Server) limitConnections(w http.ResponseWriter, remoteAddr string) bool {
	if s.cfg.MaxClients <= 0 {
		return false
	}
	if int(atomic.LoadInt32(&s.numClients)+1) > s.cfg.MaxClients {
		log.Infof("Max RPC clients exceeded [%d] - disconnecting client %s",
			s.cfg.MaxClients, remoteAddr)
		http.Error(w, "503 Too busy. Try again later.",
			http.StatusServiceUnavailable)
		return true
	}
	return false
}

// incrementClients adds one to the number of connected RPC clients.
func (s *Server) incrementClients() {
	atomic.AddInt32(&s.numClients, 1)
}

// decrementClients subtracts one from the number of connected RPC clients.
func (s *Server) decrementClients() {
	atomic.AddInt32(&s.numClients, -1)
}

// jsonAuthFail sends a message back to the client if the http auth is
// rejected.
func jsonAuthFail(w http.ResponseWriter) {
	w.Header().Add("WWW-Authenticate", `Basic realm="emberd RPC"`)
	http.Error(w, "401 Unauthorized.", http.StatusUnauthorized)
}

// jsonRPCRead handles reading and responding to RPC messages.
func (s *Server) jsonRPCRead(w http.ResponseWriter, r *http.Request) {
	if atomic.LoadInt32(&s.shutdown) != 0 {
		return
	}
	if s.limitConnections(w, r.RemoteAddr) {
		return
	}
	s.incrementClients()
	defer s.decrementClients()

	body, err := ioutil.ReadAll(io.LimitReader(r.Body, maxRequestSize))
	r.Body.Close()
	if err != nil {
		errCode := http.StatusBadRequest
		http.Error(w, fmt.Sprintf("%d error reading JSON message: %s",
			errCode, err), errCode)
		return
	}

	reply := s.handleRequestBody(body, nil)
	_, err = w.Write(reply)
	if err != nil {
		log.Errorf("Failed to write reply: %s", err)
	}
}

// handleRequestBody parses a raw request body, dispatches the command and
// returns the marshalled response. closeChan signals the handler that the
// originating connection went away.
func (s *Server) handleRequestBody(body []byte, closeChan <-chan struct{}) []byte {
	var responseID interface{}
	var request rpcmodel.Request
	err := json.Unmarshal(body, &request)
	if err != nil {
		jsonErr := &rpcmodel.RPCError{
			Code:    rpcmodel.ErrRPCParse,
			Message: "Failed to parse request: " + err.Error(),
		}
		reply, err := rpcmodel.MarshalResponse(responseID, nil, jsonErr)
		if err != nil {
			log.Errorf("Failed to marshal parse-failure reply: %s", err)
			return nil
		}
		return reply
	}

	if request.Method == "" {
		jsonErr := &rpcmodel.RPCError{
			Code:    rpcmodel.ErrRPCInvalidRequest,
			Message: "Invalid request: malformed",
		}
		reply, err := rpcmodel.MarshalResponse(request.ID, nil, jsonErr)
		if err != nil {
			log.Errorf("Failed to marshal invalid-request reply: %s", err)
			return nil
		}
		return reply
	}
	responseID = request.ID

	result, jsonErr := s.standardCmdResult(&request, closeChan)
	reply, err := rpcmodel.MarshalResponse(responseID, result, jsonErr)
	if err != nil {
		log.Errorf("Failed to marshal reply: %s", err)
		return nil
	}
	return reply
}

// standardCmdResult unmarshals and dispatches a single command, converting
// every failure into an appropriate *rpcmodel.RPCError.
func (s *Server) standardCmdResult(request *rpcmodel.Request, closeChan <-chan struct{}) (interface{}, *rpcmodel.RPCError) {
	if atomic.LoadInt32(&s.shutdown) != 0 {
		return nil, &rpcmodel.RPCError{
			Code:    rpcmodel.ErrRPCInShutdown,
			Message: "emberd is shutting down",
		}
	}

	cmd, err := rpcmodel.UnmarshalCmd(request)
	if err != nil {
		var rpcModelErr rpcmodel.Error
		if ok := errors.As(err, &rpcModelErr); ok {
			switch rpcModelErr.ErrorCode {
			case rpcmodel.ErrUnregisteredMethod:
				return nil, &rpcmodel.RPCError{
					Code:    rpcmodel.ErrRPCMethodNotFound,
					Message: "Method not found",
				}
			default:
				return nil, &rpcmodel.RPCError{
					Code:    rpcmodel.ErrRPCInvalidParams,
					Message: rpcModelErr.Description,
				}
			}
		}
		return nil, internalRPCError(err.Error(), "Failed to unmarshal command")
	}
	log.Tracef("Dispatching %s command: %s", request.Method,
		spew.Sdump(cmd))

	handler, ok := rpcHandlers[request.Method]
	if !ok {
		return nil, &rpcmodel.RPCError{
			Code:    rpcmodel.ErrRPCMethodNotFound,
			Message: "Method not found",
		}
	}

	result, err := handler(s, cmd, closeChan)
	if err != nil {
		var jsonErr *rpcmodel.RPCError
		if ok := errors.As(err, &jsonErr); ok {
			return nil, jsonErr
		}
		return nil, internalRPCError(err.Error(), "Unhandled handler error")
	}
	return result, nil
}

// websocketHandler serves requests arriving over an upgraded websocket
// connection, one request per text message, until the client goes away.
func (s *Server) websocketHandler(conn *websocket.Conn, remoteAddr string) {
	log.Infof("New websocket client %s", remoteAddr)
	s.incrementClients()
	defer s.decrementClients()
	defer conn.Close()

	closeChan := make(chan struct{})
	defer close(closeChan)

	for atomic.LoadInt32(&s.shutdown) == 0 {
		_, body, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure,
				websocket.CloseGoingAway) {
				log.Tracef("Websocket read error from %s: %s", remoteAddr, err)
			}
			break
		}
		reply := s.handleRequestBody(body, closeChan)
		err = conn.WriteMessage(websocket.TextMessage, reply)
		if err != nil {
			log.Errorf("Failed to write websocket reply to %s: %s",
				remoteAddr, err)
			break
		}
	}
	log.Infof("Disconnected websocket client %s", remoteAddr)
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

var spawn = panics.GoroutineWrapperFunc(log)
