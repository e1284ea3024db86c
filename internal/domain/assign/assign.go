// Package assign places visitors without a signup into capacity-bounded
// breakout sessions deterministically.
package assign

import (
	"crypto/md5" //nolint:gosec // placement hash, not a security boundary
	"math/big"

	"github.com/okian/badger/internal/domain/model"
)

// NoSpotsAvailable is assigned to a slot when every session in it is full.
const NoSpotsAvailable = "no more spots available"

// IsSentinel reports whether session is the exhaustion marker rather than a
// real session name.
func IsSentinel(session string) bool {
	return session == NoSpotsAvailable
}

// Summary reports the outcome of one AssignRemaining call.
type Summary struct {
	Assigned       int            `json:"assigned"`
	MorningFull    int            `json:"morning_full"`
	AfternoonFull  int            `json:"afternoon_full"`
	MorningSeats   map[string]int `json:"morning_seats"`
	AfternoonSeats map[string]int `json:"afternoon_seats"`
}

// Hash returns the MD5 digest of the raw email as an unsigned 128-bit
// big-endian integer.
func Hash(rawEmail string) *big.Int {
	sum := md5.Sum([]byte(rawEmail)) //nolint:gosec // see import
	return new(big.Int).SetBytes(sum[:])
}

// StartIndex reduces h modulo size. size must be positive.
func StartIndex(h *big.Int, size int) int {
	return int(new(big.Int).Mod(h, big.NewInt(int64(size))).Int64())
}

// AssignRemaining fills both breakout fields of every visitor that is not yet
// assigned, in slice order, decrementing morning and afternoon in place.
// Visitors processed earlier win seats when capacity is scarce.
func AssignRemaining(visitors []*model.Visitor, morning, afternoon *Catalog) Summary {
	sum := Summary{
		MorningSeats:   make(map[string]int),
		AfternoonSeats: make(map[string]int),
	}
	for _, v := range visitors {
		if v.AssignedToBreakout {
			continue
		}
		h := Hash(v.Email)

		v.MorningBreakout = morning.take(StartIndex(h, morning.Len()))
		v.AfternoonBreakout = afternoon.take(StartIndex(h, afternoon.Len()))
		v.AssignedToBreakout = true

		sum.Assigned++
		if IsSentinel(v.MorningBreakout) {
			sum.MorningFull++
		} else {
			sum.MorningSeats[v.MorningBreakout]++
		}
		if IsSentinel(v.AfternoonBreakout) {
			sum.AfternoonFull++
		} else {
			sum.AfternoonSeats[v.AfternoonBreakout]++
		}
	}
	return sum
}
