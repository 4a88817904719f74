package rpc

// handlePing implements the ping command. The empty reply itself is the
// liveness signal.
func handlePing(s *Server, cmd interface{}, closeChan <-chan struct{}) (interface{}, error) {
	return nil, nil
}
