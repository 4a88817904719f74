// Copyright (c) 2014-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// NOTE: This file is intended to house the RPC commands that are supported by
// an ember rpc server.

package rpcmodel

import (
	"encoding/json"
	"fmt"
)

// GetMinerDataByBlockHashCmd defines the getMinerDataByBlockHash JSON-RPC
// command.
type GetMinerDataByBlockHashCmd struct {
	BlockHash string
}

// NewGetMinerDataByBlockHashCmd returns a new instance which can be used to
// issue a getMinerDataByBlockHash JSON-RPC command.
func NewGetMinerDataByBlockHashCmd(blockHash string) *GetMinerDataByBlockHashCmd {
	return &GetMinerDataByBlockHashCmd{
		BlockHash: blockHash,
	}
}

// GetBlockCmd defines the getBlock JSON-RPC command.
type GetBlockCmd struct {
	Hash    string
	Verbose *bool `jsonrpcdefault:"true"`
}

// NewGetBlockCmd returns a new instance which can be used to issue a getBlock
// JSON-RPC command.
func NewGetBlockCmd(hash string, verbose *bool) *GetBlockCmd {
	return &GetBlockCmd{
		Hash:    hash,
		Verbose: verbose,
	}
}

// GetBlockCountCmd defines the getBlockCount JSON-RPC command.
type GetBlockCountCmd struct{}

// NewGetBlockCountCmd returns a new instance which can be used to issue a
// getBlockCount JSON-RPC command.
func NewGetBlockCountCmd() *GetBlockCountCmd {
	return &GetBlockCountCmd{}
}

// GetBestBlockHashCmd defines the getBestBlockHash JSON-RPC command.
type GetBestBlockHashCmd struct{}

// NewGetBestBlockHashCmd returns a new instance which can be used to issue a
// getBestBlockHash JSON-RPC command.
func NewGetBestBlockHashCmd() *GetBestBlockHashCmd {
	return &GetBestBlockHashCmd{}
}

// GetInfoCmd defines the getInfo JSON-RPC command.
type GetInfoCmd struct{}

// NewGetInfoCmd returns a new instance which can be used to issue a getInfo
// JSON-RPC command.
func NewGetInfoCmd() *GetInfoCmd {
	return &GetInfoCmd{}
}

// PingCmd defines the ping JSON-RPC command.
type PingCmd struct{}

// NewPingCmd returns a new instance which can be used to issue a ping
// JSON-RPC command.
func NewPingCmd() *PingCmd {
	return &PingCmd{}
}

// UptimeCmd defines the uptime JSON-RPC command.
type UptimeCmd struct{}

// NewUptimeCmd returns a new instance which can be used to issue an uptime
// JSON-RPC command.
func NewUptimeCmd() *UptimeCmd {
	return &UptimeCmd{}
}

// StopCmd defines the stop JSON-RPC command.
type StopCmd struct{}

// NewStopCmd returns a new instance which can be used to issue a stop
// JSON-RPC command.
func NewStopCmd() *StopCmd {
	return &StopCmd{}
}

// DebugLevelCmd defines the debugLevel JSON-RPC command. This command is not
// a standard command. It is an extension for supporting dynamic debug levels.
type DebugLevelCmd struct {
	LevelSpec string
}

// NewDebugLevelCmd returns a new DebugLevelCmd which can be used to issue a
// debugLevel JSON-RPC command.
func NewDebugLevelCmd(levelSpec string) *DebugLevelCmd {
	return &DebugLevelCmd{
		LevelSpec: levelSpec,
	}
}

// unmarshalString unmarshals a single positional string parameter.
func unmarshalString(method string, params []json.RawMessage, index int, name string) (string, error) {
	var value string
	err := json.Unmarshal(params[index], &value)
	if err != nil {
		str := fmt.Sprintf("parameter #%d '%s' of method %q must be a "+
			"string", index+1, name, method)
		return "", makeError(ErrInvalidType, str)
	}
	return value, nil
}

// unmarshalOptionalBool unmarshals an optional positional bool parameter,
// returning defaultValue when the parameter was omitted.
func unmarshalOptionalBool(method string, params []json.RawMessage, index int,
	name string, defaultValue bool) (*bool, error) {

	value := defaultValue
	if index < len(params) {
		err := json.Unmarshal(params[index], &value)
		if err != nil {
			str := fmt.Sprintf("parameter #%d '%s' of method %q must "+
				"be a boolean", index+1, name, method)
			return nil, makeError(ErrInvalidType, str)
		}
	}
	return &value, nil
}

// checkNumParams ensures the parameter count for a method is within the
// inclusive [minimum, maximum] range.
func checkNumParams(method string, params []json.RawMessage, minimum, maximum int) error {
	if len(params) < minimum || len(params) > maximum {
		str := fmt.Sprintf("wrong number of params for method %q "+
			"(expected between %d and %d, got %d)", method, minimum,
			maximum, len(params))
		return makeError(ErrNumParams, str)
	}
	return nil
}

// UnmarshalCmd unmarshals a JSON-RPC request into a suitable concrete command
// so the caller can type switch on the result. An unknown method returns an
// Error with ErrorCode ErrUnregisteredMethod.
func UnmarshalCmd(request *Request) (interface{}, error) {
	method := request.Method
	params := request.Params

	switch method {
	case "getMinerDataByBlockHash":
		if err := checkNumParams(method, params, 1, 1); err != nil {
			return nil, err
		}
		blockHash, err := unmarshalString(method, params, 0, "blockHash")
		if err != nil {
			return nil, err
		}
		return NewGetMinerDataByBlockHashCmd(blockHash), nil

	case "getBlock":
		if err := checkNumParams(method, params, 1, 2); err != nil {
			return nil, err
		}
		hash, err := unmarshalString(method, params, 0, "hash")
		if err != nil {
			return nil, err
		}
		verbose, err := unmarshalOptionalBool(method, params, 1, "verbose", true)
		if err != nil {
			return nil, err
		}
		return NewGetBlockCmd(hash, verbose), nil

	case "getBlockCount":
		if err := checkNumParams(method, params, 0, 0); err != nil {
			return nil, err
		}
		return NewGetBlockCountCmd(), nil

	case "getBestBlockHash":
		if err := checkNumParams(method, params, 0, 0); err != nil {
			return nil, err
		}
		return NewGetBestBlockHashCmd(), nil

	case "getInfo":
		if err := checkNumParams(method, params, 0, 0); err != nil {
			return nil, err
		}
		return NewGetInfoCmd(), nil

	case "ping":
		if err := checkNumParams(method, params, 0, 0); err != nil {
			return nil, err
		}
		return NewPingCmd(), nil

	case "uptime":
		if err := checkNumParams(method, params, 0, 0); err != nil {
			return nil, err
		}
		return NewUptimeCmd(), nil

	case "stop":
		if err := checkNumParams(method, params, 0, 0); err != nil {
			return nil, err
		}
		return NewStopCmd(), nil

	case "debugLevel":
		if err := checkNumParams(method, params, 1, 1); err != nil {
			return nil, err
		}
		levelSpec, err := unmarshalString(method, params, 0, "levelSpec")
		if err != nil {
			return nil, err
		}
		return NewDebugLevelCmd(levelSpec), nil
	}

	str := fmt.Sprintf("%q is not registered", method)
	return nil, makeError(ErrUnregisteredMethod, str)
}
