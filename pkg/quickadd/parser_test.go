package quickadd

import "testing"

func TestParseLineVariants(t *testing.T) {
	p := NewParser("each")

	tests := []struct {
		name  string
		input string
		want  Entry
	}{
		{
			name:  "bare name",
			input: "Milk",
			want:  Entry{Name: "Milk", Quantity: 1, Unit: "each"},
		},
		{
			name:  "qty with x",
			input: "2x Milk",
			want:  Entry{Name: "Milk", Quantity: 2, Unit: "each"},
		},
		{
			name:  "qty without x",
			input: "3 Apples",
			want:  Entry{Name: "Apples", Quantity: 3, Unit: "each"},
		},
		{
			name:  "qty name price",
			input: "2x Milk $4.50",
			want:  Entry{Name: "Milk", Quantity: 2, Unit: "each", EstimatedPrice: 4.50},
		},
		{
			name:  "price and unit",
			input: "Eggs $3.00 dozen",
			want:  Entry{Name: "Eggs", Quantity: 1, Unit: "dozen", EstimatedPrice: 3.00},
		},
		{
			name:  "multi word name",
			input: "4 Greek Yogurt $1.25 pack",
			want:  Entry{Name: "Greek Yogurt", Quantity: 4, Unit: "pack", EstimatedPrice: 1.25},
		},
		{
			name:  "unit word kept when it is the whole name",
			input: "Bag",
			want:  Entry{Name: "Bag", Quantity: 1, Unit: "each"},
		},
		{
			name:  "whole dollar price",
			input: "Bread $3",
			want:  Entry{Name: "Bread", Quantity: 1, Unit: "each", EstimatedPrice: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.parseLine(tt.input)
			if err != nil {
				t.Fatalf("parseLine(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parseLine(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseMultiLine(t *testing.T) {
	p := NewParser("each")

	entries, err := p.Parse("2x Milk $4.50\n\nEggs $3.00 dozen\nChips")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Name != "Milk" || entries[1].Unit != "dozen" || entries[2].Quantity != 1 {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestParseRejectsNamelessLine(t *testing.T) {
	p := NewParser("each")

	if _, err := p.Parse("$4.50"); err == nil {
		t.Error("expected error for line with no item name")
	}
}
