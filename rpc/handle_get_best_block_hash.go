package rpc

// handleGetBestBlockHash implements the getBestBlockHash command.
func handleGetBestBlockHash(s *Server, cmd interface{}, closeChan <-chan struct{}) (interface{}, error) {
	bestBlockHash, err := s.cfg.Chain.BestBlockHash()
	if err != nil {
		return nil, internalRPCError(err.Error(), "Failed to fetch best block hash")
	}
	return "0x" + bestBlockHash.String(), nil
}
