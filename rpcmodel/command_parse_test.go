// Copyright (c) 2014 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpcmodel_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/emberchain/emberd/rpcmodel"
)

func boolPtr(v bool) *bool {
	return &v
}

// TestUnmarshalCmd tests that raw JSON-RPC requests unmarshal into the
// expected concrete command values.
func TestUnmarshalCmd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		request  string
		expected interface{}
	}{
		{
			name: "getMinerDataByBlockHash",
			request: `{"jsonRpc":"1.0","method":"getMinerDataByBlockHash",` +
				`"params":["0x1234"],"id":1}`,
			expected: rpcmodel.NewGetMinerDataByBlockHashCmd("0x1234"),
		},
		{
			name:     "getBlock default verbose",
			request:  `{"jsonRpc":"1.0","method":"getBlock","params":["0x1234"],"id":1}`,
			expected: rpcmodel.NewGetBlockCmd("0x1234", boolPtr(true)),
		},
		{
			name:     "getBlock explicit verbose",
			request:  `{"jsonRpc":"1.0","method":"getBlock","params":["0x1234",false],"id":1}`,
			expected: rpcmodel.NewGetBlockCmd("0x1234", boolPtr(false)),
		},
		{
			name:     "getBlockCount",
			request:  `{"jsonRpc":"1.0","method":"getBlockCount","params":[],"id":1}`,
			expected: rpcmodel.NewGetBlockCountCmd(),
		},
		{
			name:     "getBestBlockHash",
			request:  `{"jsonRpc":"1.0","method":"getBestBlockHash","params":[],"id":1}`,
			expected: rpcmodel.NewGetBestBlockHashCmd(),
		},
		{
			name:     "getInfo",
			request:  `{"jsonRpc":"1.0","method":"getInfo","params":[],"id":1}`,
			expected: rpcmodel.NewGetInfoCmd(),
		},
		{
			name:     "ping",
			request:  `{"jsonRpc":"1.0","method":"ping","params":[],"id":1}`,
			expected: rpcmodel.NewPingCmd(),
		},
		{
			name:     "uptime",
			request:  `{"jsonRpc":"1.0","method":"uptime","params":[],"id":1}`,
			expected: rpcmodel.NewUptimeCmd(),
		},
		{
			name:     "stop",
			request:  `{"jsonRpc":"1.0","method":"stop","params":[],"id":1}`,
			expected: rpcmodel.NewStopCmd(),
		},
		{
			name:     "debugLevel",
			request:  `{"jsonRpc":"1.0","method":"debugLevel","params":["RPCS=trace"],"id":1}`,
			expected: rpcmodel.NewDebugLevelCmd("RPCS=trace"),
		},
	}

	t.Logf("Running %d tests", len(tests))
	for _, test := range tests {
		var request rpcmodel.Request
		err := json.Unmarshal([]byte(test.request), &request)
		if err != nil {
			t.Errorf("%s: request unmarshal failed: %s", test.name, err)
			continue
		}

		cmd, err := rpcmodel.UnmarshalCmd(&request)
		if err != nil {
			t.Errorf("%s: UnmarshalCmd failed: %s", test.name, err)
			continue
		}
		if !reflect.DeepEqual(cmd, test.expected) {
			t.Errorf("%s: got %+v, want %+v", test.name, cmd, test.expected)
		}
	}
}

// TestUnmarshalCmdErrors tests malformed requests produce the expected error
// codes.
func TestUnmarshalCmdErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		request string
		code    rpcmodel.ErrorCode
	}{
		{
			name:    "unregistered method",
			request: `{"jsonRpc":"1.0","method":"bogusMethod","params":[],"id":1}`,
			code:    rpcmodel.ErrUnregisteredMethod,
		},
		{
			name:    "missing required param",
			request: `{"jsonRpc":"1.0","method":"getMinerDataByBlockHash","params":[],"id":1}`,
			code:    rpcmodel.ErrNumParams,
		},
		{
			name: "too many params",
			request: `{"jsonRpc":"1.0","method":"getBlockCount",` +
				`"params":["extra"],"id":1}`,
			code: rpcmodel.ErrNumParams,
		},
		{
			name: "wrong param type",
			request: `{"jsonRpc":"1.0","method":"getMinerDataByBlockHash",` +
				`"params":[42],"id":1}`,
			code: rpcmodel.ErrInvalidType,
		},
	}

	t.Logf("Running %d tests", len(tests))
	for _, test := range tests {
		var request rpcmodel.Request
		err := json.Unmarshal([]byte(test.request), &request)
		if err != nil {
			t.Errorf("%s: request unmarshal failed: %s", test.name, err)
			continue
		}

		_, err = rpcmodel.UnmarshalCmd(&request)
		if err == nil {
			t.Errorf("%s: UnmarshalCmd unexpectedly succeeded", test.name)
			continue
		}
		rpcModelErr, ok := err.(rpcmodel.Error)
		if !ok {
			t.Errorf("%s: error is %T, want rpcmodel.Error", test.name, err)
			continue
		}
		if rpcModelErr.ErrorCode != test.code {
			t.Errorf("%s: error code is %s, want %s", test.name,
				rpcModelErr.ErrorCode, test.code)
		}
	}
}

// TestMarshalResponse tests response marshalling for both the error-free and
// null-result cases.
func TestMarshalResponse(t *testing.T) {
	t.Parallel()

	// A successful lookup of a nonexistent resource serializes as a null
	// result with a null error.
	marshalled, err := rpcmodel.MarshalResponse(1, nil, nil)
	if err != nil {
		t.Fatalf("MarshalResponse unexpectedly failed: %s", err)
	}
	expected := `{"result":null,"error":null,"id":1}`
	if string(marshalled) != expected {
		t.Errorf("MarshalResponse returned %s, want %s", marshalled, expected)
	}

	rpcErr := rpcmodel.NewRPCError(rpcmodel.ErrRPCStateUnavailable,
		"world state not available")
	marshalled, err = rpcmodel.MarshalResponse(2, nil, rpcErr)
	if err != nil {
		t.Fatalf("MarshalResponse unexpectedly failed: %s", err)
	}
	expected = `{"result":null,"error":{"code":-8,` +
		`"message":"world state not available"},"id":2}`
	if string(marshalled) != expected {
		t.Errorf("MarshalResponse returned %s, want %s", marshalled, expected)
	}
}
