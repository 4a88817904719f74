package config

import (
	"os"

	"github.com/emberchain/emberd/chaincfg"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

// NetworkFlags holds the network configuration, that is which network is
// selected.
type NetworkFlags struct {
	Testnet bool `long:"testnet" description:"Use the test network"`
	Simnet  bool `long:"simnet" description:"Use the simulation test network"`

	ActiveNetParams *chaincfg.Params
}

// ResolveNetwork parses the network command line arguments and sets
// ActiveNetParams accordingly. It returns an error if more than one network
// was selected, nil otherwise.
func (networkFlags *NetworkFlags) ResolveNetwork(parser *flags.Parser) error {
	// ActiveNetParams holds the selected network parameters. Default value
	// is mainnet.
	networkFlags.ActiveNetParams = &chaincfg.MainnetParams

	// Multiple networks can't be selected simultaneously.
	numNets := 0
	if networkFlags.Testnet {
		numNets++
		networkFlags.ActiveNetParams = &chaincfg.TestnetParams
	}
	if networkFlags.Simnet {
		numNets++
		networkFlags.ActiveNetParams = &chaincfg.SimnetParams
	}
	if numNets > 1 {
		parser.WriteHelp(os.Stderr)
		return errors.New("multiple network parameters (testnet, simnet) " +
			"cannot be used together, please choose only one network")
	}
	return nil
}

// NetParams returns the network parameters the flags resolved to.
func (networkFlags *NetworkFlags) NetParams() *chaincfg.Params {
	return networkFlags.ActiveNetParams
}
