package model

import "testing"

func TestAddPlayer(t *testing.T) {
	game := NewGame("test-game")

	color, err := game.AddPlayer("alice")
	if err != nil || color != White {
		t.Fatalf("first player got %q, %v", color, err)
	}
	color, err = game.AddPlayer("bob")
	if err != nil || color != Black {
		t.Fatalf("second player got %q, %v", color, err)
	}
	if _, err := game.AddPlayer("carol"); err == nil {
		t.Error("third player joined a full game")
	}

	if !game.IsPlayerInGame("alice") || !game.IsPlayerInGame("bob") {
		t.Error("seated player not recognized")
	}
	if game.IsPlayerInGame("carol") {
		t.Error("rejected player recognized")
	}
	if game.CanSpectate() {
		t.Error("full game still open to spectators")
	}
}

func TestGameMakeMove(t *testing.T) {
	game := NewGame("test-game")
	game.AddPlayer("alice")
	game.AddPlayer("bob")

	t.Run("black cannot open", func(t *testing.T) {
		if err := game.MakeMove("bob", WSMove{From: NewPosition(1, 4), To: NewPosition(3, 4)}); err == nil {
			t.Error("black moved first")
		}
	})
	t.Run("outsider cannot move", func(t *testing.T) {
		if err := game.MakeMove("carol", WSMove{From: NewPosition(6, 4), To: NewPosition(4, 4)}); err == nil {
			t.Error("outsider moved")
		}
	})
	t.Run("out of bounds is rejected before the board sees it", func(t *testing.T) {
		if err := game.MakeMove("alice", WSMove{From: Position{Rank: 9, File: 0}, To: Position{Rank: 4, File: 4}}); err == nil {
			t.Error("out of bounds move accepted")
		}
	})
	t.Run("empty source square is rejected", func(t *testing.T) {
		if err := game.MakeMove("alice", WSMove{From: NewPosition(4, 4), To: NewPosition(3, 4)}); err == nil {
			t.Error("move from empty square accepted")
		}
	})
	t.Run("legal opening move", func(t *testing.T) {
		if err := game.MakeMove("alice", WSMove{From: NewPosition(6, 4), To: NewPosition(4, 4)}); err != nil {
			t.Fatal(err)
		}
		state := game.GetState()
		if state.ToMove != Black {
			t.Errorf("to move = %q", state.ToMove)
		}
		if len(state.MoveLog) != 1 || state.MoveLog[0] != "e4" {
			t.Errorf("move log = %v", state.MoveLog)
		}
		if state.LastMove == nil || state.LastMove.To != NewPosition(4, 4) {
			t.Errorf("last move = %+v", state.LastMove)
		}
	})
	t.Run("white cannot move twice", func(t *testing.T) {
		if err := game.MakeMove("alice", WSMove{From: NewPosition(6, 3), To: NewPosition(4, 3)}); err == nil {
			t.Error("white moved on black's turn")
		}
	})
}

func TestGameResign(t *testing.T) {
	game := NewGame("test-game")
	game.AddPlayer("alice")
	game.AddPlayer("bob")

	if err := game.Resign("carol"); err == nil {
		t.Error("outsider resigned")
	}
	if err := game.Resign("alice"); err != nil {
		t.Fatal(err)
	}

	state := game.GetState()
	if state.GameEndStatus != Resignation || state.Winner != Black {
		t.Errorf("end state = %q, %q", state.GameEndStatus, state.Winner)
	}
	if err := game.MakeMove("bob", WSMove{From: NewPosition(1, 4), To: NewPosition(3, 4)}); err == nil {
		t.Error("move accepted after resignation")
	}
}

func TestGameReset(t *testing.T) {
	game := NewGame("test-game")
	game.AddPlayer("alice")
	game.AddPlayer("bob")

	if err := game.MakeMove("alice", WSMove{From: NewPosition(6, 4), To: NewPosition(4, 4)}); err != nil {
		t.Fatal(err)
	}

	fen, err := ParseFEN("k7/8/8/1Q6/8/8/8/7K w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if err := game.Reset(fen); err != nil {
		t.Fatal(err)
	}

	state := game.GetState()
	if len(state.MoveLog) != 0 || state.LastMove != nil || state.IsCheck {
		t.Errorf("bookkeeping not cleared: %+v", state)
	}
	if state.ToMove != White {
		t.Errorf("to move = %q", state.ToMove)
	}
	if state.Board.PieceAt(NewPosition(3, 1)) == nil {
		t.Error("reset board missing the seeded queen")
	}
}

// A state snapshot handed to a caller must not change underneath it
// while later moves and resets mutate the live game.
func TestGetStateSnapshotIsDetached(t *testing.T) {
	game := NewGame("test-game")
	game.AddPlayer("alice")
	game.AddPlayer("bob")

	if err := game.MakeMove("alice", WSMove{From: NewPosition(6, 4), To: NewPosition(4, 4)}); err != nil {
		t.Fatal(err)
	}
	snapshot := game.GetState()

	if err := game.MakeMove("bob", WSMove{From: NewPosition(1, 4), To: NewPosition(3, 4)}); err != nil {
		t.Fatal(err)
	}
	fen, err := ParseFEN(StartingFEN)
	if err != nil {
		t.Fatal(err)
	}
	if err := game.Reset(fen); err != nil {
		t.Fatal(err)
	}
	if err := game.MakeMove("alice", WSMove{From: NewPosition(6, 3), To: NewPosition(4, 3)}); err != nil {
		t.Fatal(err)
	}

	if len(snapshot.MoveLog) != 1 || snapshot.MoveLog[0] != "e4" {
		t.Errorf("snapshot move log changed: %v", snapshot.MoveLog)
	}
	if snapshot.Board.PieceAt(NewPosition(4, 4)) == nil {
		t.Error("snapshot board lost the pawn on e4")
	}
	if snapshot.Board.PieceAt(NewPosition(3, 4)) != nil {
		t.Error("snapshot board picked up a move made after the snapshot")
	}
	if snapshot.ToMove != Black {
		t.Errorf("snapshot to move = %q", snapshot.ToMove)
	}
}

func TestQueue(t *testing.T) {
	queue := NewQueue()

	if _, _, ok := queue.NextPair(); ok {
		t.Error("pair from empty queue")
	}

	if err := queue.AddPlayer(Player{ID: "alice"}); err != nil {
		t.Fatal(err)
	}
	if err := queue.AddPlayer(Player{ID: "alice"}); err == nil {
		t.Error("duplicate player queued")
	}
	if _, _, ok := queue.NextPair(); ok {
		t.Error("pair from a queue of one")
	}

	queue.AddPlayer(Player{ID: "bob"})
	queue.AddPlayer(Player{ID: "carol"})

	p1, p2, ok := queue.NextPair()
	if !ok || p1.ID != "alice" || p2.ID != "bob" {
		t.Errorf("pair = %q, %q, %v", p1.ID, p2.ID, ok)
	}
	if queue.Size() != 1 {
		t.Errorf("size = %d", queue.Size())
	}
}
