package main

import (
	"fmt"
	"net"
	"os"
	"sync/atomic"
	"time"

	"github.com/emberchain/emberd/chainquery"
	"github.com/emberchain/emberd/config"
	"github.com/emberchain/emberd/dbaccess"
	"github.com/emberchain/emberd/logger"
	"github.com/emberchain/emberd/rpc"
	"github.com/emberchain/emberd/signal"
	"github.com/emberchain/emberd/util/panics"
	"github.com/emberchain/emberd/version"
	"github.com/pkg/errors"
)

// emberd is a wrapper for all the emberd services
type emberd struct {
	cfg             *config.Config
	databaseContext *dbaccess.DatabaseContext
	rpcServer       *rpc.Server

	started, shutdown int32
}

// start launches all the emberd services.
func (e *emberd) start() {
	// Already started?
	if atomic.AddInt32(&e.started, 1) != 1 {
		return
	}

	log.Trace("Starting emberd")

	if !e.cfg.DisableRPC {
		e.rpcServer.Start()

		// Signal process shutdown when the RPC server requests it.
		spawn(func() {
			<-e.rpcServer.RequestedProcessShutdown()
			signal.ShutdownRequestChannel <- struct{}{}
		})
	}
}

// stop gracefully shuts down all the emberd services.
func (e *emberd) stop() error {
	// Make sure this only happens once.
	if atomic.AddInt32(&e.shutdown, 1) != 1 {
		log.Infof("Emberd is already in the process of shutting down")
		return nil
	}

	log.Warnf("Emberd shutting down")

	// Shutdown the RPC server if it's not disabled.
	if !e.cfg.DisableRPC {
		err := e.rpcServer.Stop()
		if err != nil {
			log.Errorf("Error stopping rpcServer: %+v", err)
		}
	}

	err := e.databaseContext.Close()
	if err != nil {
		log.Errorf("Error closing the database: %+v", err)
	}
	return nil
}

// newEmberd returns a new emberd instance configured per cfg. Use start to
// begin serving RPC clients.
func newEmberd(cfg *config.Config) (*emberd, error) {
	databaseContext, err := dbaccess.New(cfg.DataDir())
	if err != nil {
		return nil, err
	}

	queries := chainquery.New(databaseContext, cfg.NetParams())
	err = queries.EnsureGenesis()
	if err != nil {
		closeErr := databaseContext.Close()
		if closeErr != nil {
			log.Errorf("Error closing the database: %+v", closeErr)
		}
		return nil, err
	}

	var rpcServer *rpc.Server
	if !cfg.DisableRPC {
		listeners, err := setupRPCListeners(cfg.RPCListeners)
		if err != nil {
			return nil, err
		}
		rpcServer, err = rpc.NewServer(&rpc.Config{
			Listeners:   listeners,
			StartupTime: time.Now().Unix(),
			MaxClients:  cfg.RPCMaxClients,
			User:        cfg.RPCUser,
			Pass:        cfg.RPCPass,
			Chain:       queries,
		})
		if err != nil {
			return nil, err
		}
	}

	return &emberd{
		cfg:             cfg,
		databaseContext: databaseContext,
		rpcServer:       rpcServer,
	}, nil
}

// setupRPCListeners returns a slice of listeners that are configured for use
// with the RPC server.
func setupRPCListeners(listenAddrs []string) ([]net.Listener, error) {
	listeners := make([]net.Listener, 0, len(listenAddrs))
	for _, addr := range listenAddrs {
		listener, err := net.Listen("tcp", addr)
		if err != nil {
			log.Warnf("Can't listen on %s: %s", addr, err)
			continue
		}
		listeners = append(listeners, listener)
	}
	if len(listeners) == 0 {
		return nil, errors.New("RPC: No valid listen address")
	}
	return listeners, nil
}

func emberdMain() error {
	cfg, _, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// Initialize logging before any subsystem writes to it.
	err = os.MkdirAll(cfg.LogDir, 0700)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log directory: %s\n", err)
		return err
	}
	logger.InitLog(cfg.LogFile(), cfg.ErrLogFile())
	defer panics.HandlePanic(log, nil)

	log.Infof("Version %s", version.Version())

	e, err := newEmberd(cfg)
	if err != nil {
		log.Errorf("Unable to start emberd: %+v", err)
		return err
	}

	signal.AddInterruptHandler(func() {
		err := e.stop()
		if err != nil {
			log.Errorf("Error stopping emberd: %+v", err)
		}
	})
	e.start()

	signal.WaitForShutdown()
	log.Info("Shutdown complete")
	return nil
}

func main() {
	if err := emberdMain(); err != nil {
		os.Exit(1)
	}
}
