// Package pin creates the short identifiers shown to players: a category
// prefix and a six digit, zero padded number, e.g. "G-004211".
package pin

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"kalaha/internal/domain/game"
)

type Kind string

const (
	Game      Kind = "G"
	PlayerOne Kind = "P1"
	PlayerTwo Kind = "P2"
)

const suffixSpace = 1000000

var pattern = regexp.MustCompile(`^(G|P1|P2)-\d{6}$`)

// New returns a fresh pin of the given kind. Pins are not unique by
// construction; storage must reject duplicates.
func New(kind Kind) string {
	return Format(kind, suffixFromUUID(uuid.New()))
}

func Format(kind Kind, n uint32) string {
	return fmt.Sprintf("%s-%06d", kind, n%suffixSpace)
}

// ForSeat maps a seat to the player pin kind.
func ForSeat(seat game.Seat) Kind {
	if seat == game.PlayerTwo {
		return PlayerTwo
	}
	return PlayerOne
}

func Valid(s string) bool {
	_, ok := KindOf(s)
	return ok
}

// KindOf parses the kind of a well-formed pin.
func KindOf(s string) (Kind, bool) {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return Kind(m[1]), true
}

// IsPlayer reports whether s is a well-formed player pin.
func IsPlayer(s string) bool {
	kind, ok := KindOf(s)
	return ok && kind != Game
}

func suffixFromUUID(id uuid.UUID) uint32 {
	sum := md5.Sum(id[:])
	return binary.BigEndian.Uint32(sum[:4]) % suffixSpace
}
