package lib

import (
	"math/rand"
	"time"
)

var uidSource = rand.New(rand.NewSource(time.Now().UnixMilli()))

// NewUID returns a random non-zero value usable as a UIDVALIDITY
func NewUID() uint32 {
	for {
		if uid := uidSource.Uint32(); uid > 0 {
			return uid
		}
	}
}
