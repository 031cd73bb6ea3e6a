package model

import "testing"

func TestParseFEN(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Fen
	}{
		{
			"starting position",
			StartingFEN,
			Fen{
				PiecePlacement: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",
				ActiveColor:    "w",
				CastlingRights: "KQkq",
				MoveNumber:     1,
			},
		},
		{
			"midgame position",
			"5R2/2p4n/1Q6/6Pp/1R2P3/2P2b1K/P2krq2/2N5 w - - 0 1",
			Fen{
				PiecePlacement: "5R2/2p4n/1Q6/6Pp/1R2P3/2P2b1K/P2krq2/2N5",
				ActiveColor:    "w",
				CastlingRights: "-",
				MoveNumber:     1,
			},
		},
		{
			"black to move with move number",
			"rk1r1bb1/ppp1pp1p/3n2n1/1q1p2p1/4P3/1N2Q1PP/PPPP1P2/RK2RBBN b - - 0 13",
			Fen{
				PiecePlacement: "rk1r1bb1/ppp1pp1p/3n2n1/1q1p2p1/4P3/1N2Q1PP/PPPP1P2/RK2RBBN",
				ActiveColor:    "b",
				CastlingRights: "-",
				MoveNumber:     13,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFEN(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("ParseFEN(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFENErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"too few fields", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq"},
		{"bad move number", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseFEN(tt.in); err == nil {
				t.Errorf("ParseFEN(%q) succeeded, want error", tt.in)
			}
		})
	}
}

func TestDefaultFEN(t *testing.T) {
	fen := DefaultFEN()
	if fen.ActiveColor != "w" || fen.MoveNumber != 1 || fen.CastlingRights != "KQkq" {
		t.Errorf("DefaultFEN() = %+v", fen)
	}
}
