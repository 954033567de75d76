package state

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chesslang/chesslang/internal/position"
)

// StandardStartFEN is the piece-placement field of the standard chess
// starting position, used to bootstrap setups with no declared placements
// or an additive setup (§4.6 step 2).
const StandardStartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

var standardLetters = map[string]byte{
	"King": 'K', "Queen": 'Q', "Rook": 'R', "Bishop": 'B', "Knight": 'N', "Pawn": 'P',
}

var letterToStandard = map[byte]string{
	'K': "King", 'Q': "Queen", 'R': "Rook", 'B': "Bishop", 'N': "Knight", 'P': "Pawn",
}

// customCode returns the FEN placeholder letter for a non-standard piece:
// 'X' for White, 'x' for Black. The piece type is not encoded, so every
// custom piece of one owner serializes to the same letter and only its
// position and owner are visible in the placement string.
func customCode(owner position.Owner) byte {
	if owner == position.White {
		return 'X'
	}
	return 'x'
}

// EncodeFEN renders the board's piece placement field (§6.2). Custom piece
// types serialize only as position + owner via customCode; two different
// custom types at the same square/owner are indistinguishable by design
// (documented limitation, spec §9 "FEN ... may spuriously repeat").
func EncodeFEN(b *Board) string {
	var ranks []string
	for rank := b.Height - 1; rank >= 0; rank-- {
		var sb strings.Builder
		empty := 0
		for file := 0; file < b.Width; file++ {
			p := b.At(position.Position{File: file, Rank: rank})
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			if letter, ok := standardLetters[p.Type]; ok {
				if p.Owner == position.Black {
					letter = letter + ('a' - 'A')
				}
				sb.WriteByte(letter)
			} else {
				sb.WriteByte(customCode(p.Owner))
			}
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		ranks = append(ranks, sb.String())
	}
	return strings.Join(ranks, "/")
}

// DecodeStandardFEN places standard pieces from a piece-placement field onto
// an already-allocated board (used only for the bootstrap position, which is
// always 8x8 with standard letters).
func DecodeStandardFEN(b *Board, fen string, traitsFor func(pieceType string) (map[string]bool, map[string]any)) error {
	rows := strings.Split(fen, "/")
	if len(rows) != b.Height {
		return fmt.Errorf("FEN rank count %d does not match board height %d", len(rows), b.Height)
	}
	for i, row := range rows {
		rank := b.Height - 1 - i
		file := 0
		for _, c := range []byte(row) {
			if c >= '1' && c <= '9' {
				file += int(c - '0')
				continue
			}
			upper := c
			owner := position.White
			if c >= 'a' && c <= 'z' {
				upper = c - ('a' - 'A')
				owner = position.Black
			}
			typeName, ok := letterToStandard[upper]
			if !ok {
				return fmt.Errorf("unknown FEN piece letter %q", c)
			}
			if file >= b.Width {
				return fmt.Errorf("FEN row %q overflows board width %d", row, b.Width)
			}
			traits, initState := traitsFor(typeName)
			b.Place(typeName, owner, position.Position{File: file, Rank: rank}, traits, initState)
			file++
		}
	}
	return nil
}
