package rpc

// handleGetBlockCount implements the getBlockCount command.
func handleGetBlockCount(s *Server, cmd interface{}, closeChan <-chan struct{}) (interface{}, error) {
	blockCount, err := s.cfg.Chain.BlockCount()
	if err != nil {
		return nil, internalRPCError(err.Error(), "Failed to fetch block count")
	}
	return blockCount, nil
}
