// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainhash

import (
	"bytes"
	"testing"
)

// mainnetGenesisHashStr is used throughout the tests as an arbitrary,
// well-formed hash string.
const mainnetGenesisHashStr = "d4e56740f876aef8c010b86a40d5f56745a118d0906a34e69aec8c0db1cb8fa3"

// TestHash tests the Hash API.
func TestHash(t *testing.T) {
	hash, err := NewHashFromStr(mainnetGenesisHashStr)
	if err != nil {
		t.Errorf("NewHashFromStr: %v", err)
	}

	// Ensure contents of hash of block 234440 don't match 234439.
	buf := hash.CloneBytes()
	buf[0] ^= 0xff
	newHash, err := NewHash(buf)
	if err != nil {
		t.Errorf("NewHash: unexpected error %v", err)
	}
	if newHash.IsEqual(hash) {
		t.Errorf("IsEqual: hash contents should not match - got: %v, want: %v",
			newHash, hash)
	}

	err = newHash.SetBytes(hash.CloneBytes())
	if err != nil {
		t.Errorf("SetBytes: %v", err)
	}
	if !newHash.IsEqual(hash) {
		t.Errorf("IsEqual: hash contents mismatch - got: %v, want: %v",
			newHash, hash)
	}
	if !bytes.Equal(newHash[:], hash[:]) {
		t.Errorf("hash contents mismatch - got: %x, want: %x", newHash[:], hash[:])
	}

	// Invalid size for SetBytes.
	err = newHash.SetBytes([]byte{0x00})
	if err == nil {
		t.Errorf("SetBytes: failed to received expected err - got: nil")
	}

	// Invalid size for NewHash.
	invalidHash := make([]byte, HashSize+1)
	_, err = NewHash(invalidHash)
	if err == nil {
		t.Errorf("NewHash: failed to received expected err - got: nil")
	}
}

// TestHashString tests the stringized output for hashes.
func TestHashString(t *testing.T) {
	hash := Hash{
		0xd4, 0xe5, 0x67, 0x40, 0xf8, 0x76, 0xae, 0xf8,
		0xc0, 0x10, 0xb8, 0x6a, 0x40, 0xd5, 0xf5, 0x67,
		0x45, 0xa1, 0x18, 0xd0, 0x90, 0x6a, 0x34, 0xe6,
		0x9a, 0xec, 0x8c, 0x0d, 0xb1, 0xcb, 0x8f, 0xa3,
	}

	hashStr := hash.String()
	if hashStr != mainnetGenesisHashStr {
		t.Errorf("String: wrong hash string - got %v, want %v",
			hashStr, mainnetGenesisHashStr)
	}
}

// TestDecode tests decoding hash strings, including the 0x prefix and
// short-string padding behavior.
func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"plain hex", mainnetGenesisHashStr, mainnetGenesisHashStr, false},
		{"0x prefix", "0x" + mainnetGenesisHashStr, mainnetGenesisHashStr, false},
		{
			"short string is zero padded",
			"01",
			"0000000000000000000000000000000000000000000000000000000000000001",
			false,
		},
		{"empty string", "", "0000000000000000000000000000000000000000000000000000000000000000", false},
		{"too long", mainnetGenesisHashStr + "00", "", true},
		{"not hex", "banana", "", true},
	}

	for _, test := range tests {
		var hash Hash
		err := Decode(&hash, test.in)
		if (err != nil) != test.wantErr {
			t.Errorf("%s: unexpected error status - got %v, wantErr %v",
				test.name, err, test.wantErr)
			continue
		}
		if err == nil && hash.String() != test.want {
			t.Errorf("%s: wrong hash - got %v, want %v",
				test.name, hash.String(), test.want)
		}
	}
}
