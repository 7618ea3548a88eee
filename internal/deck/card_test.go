package deck

import "testing"

func TestRankValue(t *testing.T) {
	tests := []struct {
		rank     Rank
		expected int
	}{
		{Two, 2},
		{Six, 6},
		{Nine, 9},
		{Ten, 10},
		{Jack, 10},
		{Queen, 10},
		{King, 10},
		{Ace, 11},
	}

	for _, tt := range tests {
		if got := tt.rank.Value(); got != tt.expected {
			t.Errorf("Value(%s) = %d, want %d", tt.rank, got, tt.expected)
		}
	}
}

func TestCardString(t *testing.T) {
	tests := []struct {
		card     Card
		expected string
	}{
		{Card{Rank: Ace, Suit: Spades}, "A♠"},
		{Card{Rank: Ten, Suit: Hearts}, "T♥"},
		{Card{Rank: Two, Suit: Clubs}, "2♣"},
		{Card{Rank: Queen, Suit: Diamonds}, "Q♦"},
	}

	for _, tt := range tests {
		if got := tt.card.String(); got != tt.expected {
			t.Errorf("String() = %q, want %q", got, tt.expected)
		}
	}
}

func TestCardIsRed(t *testing.T) {
	if !(Card{Rank: Ace, Suit: Hearts}).IsRed() {
		t.Error("hearts should be red")
	}
	if !(Card{Rank: Ace, Suit: Diamonds}).IsRed() {
		t.Error("diamonds should be red")
	}
	if (Card{Rank: Ace, Suit: Spades}).IsRed() {
		t.Error("spades should not be red")
	}
	if (Card{Rank: Ace, Suit: Clubs}).IsRed() {
		t.Error("clubs should not be red")
	}
}

func TestCardIsAce(t *testing.T) {
	if !(Card{Rank: Ace, Suit: Spades}).IsAce() {
		t.Error("ace of spades should be an ace")
	}
	if (Card{Rank: King, Suit: Spades}).IsAce() {
		t.Error("king of spades should not be an ace")
	}
}

func TestCardCompare(t *testing.T) {
	low := Card{Rank: Two, Suit: Spades}
	high := Card{Rank: Three, Suit: Clubs}

	if low.Compare(high) >= 0 {
		t.Error("rank should dominate suit in ordering")
	}
	if !low.Less(high) {
		t.Error("2s should sort before 3c")
	}

	// Same rank breaks ties by suit
	club := Card{Rank: King, Suit: Clubs}
	spade := Card{Rank: King, Suit: Spades}
	if !club.Less(spade) {
		t.Error("Kc should sort before Ks")
	}
	if club.Compare(club) != 0 {
		t.Error("a card should compare equal to itself")
	}
}

func TestSortAscending(t *testing.T) {
	cards := MustParseCards("KhAs2c7d")
	SortAscending(cards)

	for i := 1; i < len(cards); i++ {
		if cards[i].Less(cards[i-1]) {
			t.Fatalf("cards not ascending at %d: %v", i, cards)
		}
	}
	if cards[0].Rank != Two || cards[len(cards)-1].Rank != Ace {
		t.Errorf("unexpected order: %v", cards)
	}
}

func TestSortDescending(t *testing.T) {
	cards := MustParseCards("2cAsKh7d")
	SortDescending(cards)

	for i := 1; i < len(cards); i++ {
		if cards[i-1].Less(cards[i]) {
			t.Fatalf("cards not descending at %d: %v", i, cards)
		}
	}
}

func TestParseCards(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "blackjack",
			input: "AsTh",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Hearts, Rank: Ten},
			},
		},
		{
			name:  "mixed suits",
			input: "AhKdQcJs9s",
			expected: []Card{
				{Suit: Hearts, Rank: Ace},
				{Suit: Diamonds, Rank: King},
				{Suit: Clubs, Rank: Queen},
				{Suit: Spades, Rank: Jack},
				{Suit: Spades, Rank: Nine},
			},
		},
		{
			name:  "case insensitive",
			input: "asKHqD",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Hearts, Rank: King},
				{Suit: Diamonds, Rank: Queen},
			},
		},
		{
			name:    "invalid rank",
			input:   "XsKs",
			wantErr: true,
		},
		{
			name:    "invalid suit",
			input:   "AsKx",
			wantErr: true,
		},
		{
			name:    "odd length",
			input:   "AsK",
			wantErr: true,
		},
		{
			name:     "empty string",
			input:    "",
			expected: []Card{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseCards() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && !cardsEqual(got, tt.expected) {
				t.Errorf("ParseCards() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCardCodeRoundTrip(t *testing.T) {
	for _, suit := range Suits {
		for _, rank := range Ranks {
			card := NewCard(rank, suit)
			parsed, err := ParseCard(card.Code())
			if err != nil {
				t.Fatalf("ParseCard(%q): %v", card.Code(), err)
			}
			if parsed != card {
				t.Errorf("round trip %q: got %v, want %v", card.Code(), parsed, card)
			}
		}
	}
}

func cardsEqual(a, b []Card) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
