package rpc

import (
	"github.com/emberchain/emberd/chaincfg"
	"github.com/emberchain/emberd/rpcmodel"
	"github.com/emberchain/emberd/version"
)

// handleGetInfo implements the getInfo command. We only return the fields
// that are not related to wallet functionality.
func handleGetInfo(s *Server, cmd interface{}, closeChan <-chan struct{}) (interface{}, error) {
	blockCount, err := s.cfg.Chain.BlockCount()
	if err != nil {
		return nil, internalRPCError(err.Error(), "Failed to fetch block count")
	}

	params := s.cfg.Chain.Params()
	return &rpcmodel.GetInfoResult{
		Version: version.Version(),
		Blocks:  blockCount,
		Net:     params.Name,
		Testnet: params.Net == chaincfg.Testnet,
		Simnet:  params.Net == chaincfg.Simnet,
		Errors:  "",
	}, nil
}
