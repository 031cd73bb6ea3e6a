package model

import "testing"

func TestCastlingRightsFromFEN(t *testing.T) {
	tests := []struct {
		field string
		want  CastlingRights
	}{
		{"KQkq", CastlingRights{White: [2]bool{true, true}, Black: [2]bool{true, true}}},
		{"-", CastlingRights{}},
		{"Kq", CastlingRights{White: [2]bool{true, false}, Black: [2]bool{false, true}}},
		{"Qk", CastlingRights{White: [2]bool{false, true}, Black: [2]bool{true, false}}},
		{"K", CastlingRights{White: [2]bool{true, false}}},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			if got := CastlingRightsFromFEN(tt.field); got != tt.want {
				t.Errorf("CastlingRightsFromFEN(%q) = %+v, want %+v", tt.field, got, tt.want)
			}
		})
	}
}

func TestValidCastleDirection(t *testing.T) {
	cr := CastlingRightsFromFEN("Kq")
	tests := []struct {
		name      string
		color     PieceColor
		fileDelta int
		want      bool
	}{
		{"white kingside allowed", White, 2, true},
		{"white queenside revoked", White, -2, false},
		{"black kingside revoked", Black, 2, false},
		{"black queenside allowed", Black, -2, true},
		{"zero delta never castles", White, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cr.ValidCastleDirection(tt.color, tt.fileDelta); got != tt.want {
				t.Errorf("ValidCastleDirection(%s, %d) = %v, want %v", tt.color, tt.fileDelta, got, tt.want)
			}
		})
	}
}

func TestUpdateAfterMove(t *testing.T) {
	tests := []struct {
		name string
		move Move
		want CastlingRights
	}{
		{
			"king move clears both white rights",
			Move{From: NewPosition(7, 4), To: NewPosition(7, 5), PieceType: King, PieceColor: White},
			CastlingRights{Black: [2]bool{true, true}},
		},
		{
			"kingside rook move clears white kingside",
			Move{From: NewPosition(7, 7), To: NewPosition(5, 7), PieceType: Rook, PieceColor: White},
			CastlingRights{White: [2]bool{false, true}, Black: [2]bool{true, true}},
		},
		{
			"queenside rook move clears black queenside",
			Move{From: NewPosition(0, 0), To: NewPosition(3, 0), PieceType: Rook, PieceColor: Black},
			CastlingRights{White: [2]bool{true, true}, Black: [2]bool{true, false}},
		},
		{
			"non corner rook move changes nothing",
			Move{From: NewPosition(4, 4), To: NewPosition(4, 6), PieceType: Rook, PieceColor: White},
			CastlingRights{White: [2]bool{true, true}, Black: [2]bool{true, true}},
		},
		{
			"pawn move changes nothing",
			Move{From: NewPosition(6, 4), To: NewPosition(4, 4), PieceType: Pawn, PieceColor: White},
			CastlingRights{White: [2]bool{true, true}, Black: [2]bool{true, true}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cr := CastlingRightsFromFEN("KQkq")
			cr.UpdateAfterMove(tt.move)
			if cr != tt.want {
				t.Errorf("after %v rights = %+v, want %+v", tt.move, cr, tt.want)
			}
		})
	}
}

// Rights only ever go from true to false.
func TestCastlingRightsMonotonic(t *testing.T) {
	cr := CastlingRights{}
	cr.UpdateAfterMove(Move{From: NewPosition(7, 4), To: NewPosition(6, 4), PieceType: King, PieceColor: White})
	cr.UpdateAfterMove(Move{From: NewPosition(0, 7), To: NewPosition(0, 5), PieceType: Rook, PieceColor: Black})
	if cr != (CastlingRights{}) {
		t.Errorf("revoked rights came back: %+v", cr)
	}
}
