package quickadd

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Parser converts free-text quick-add lines into item entries.
//
// Grammar, all parts optional except the name:
//
//	[<qty>[x]] <name> [$<price>] [<unit>]
//
// e.g. "2x Milk $4.50", "Eggs $3.00 dozen", "3 Apples".
type Parser struct {
	defaultUnit string
}

var (
	qtyRe   = regexp.MustCompile(`^(\d+)\s*[xX]?\s+`)
	priceRe = regexp.MustCompile(`\$(\d+(?:\.\d{1,2})?)`)
)

// Units recognized as a trailing unit label.
var knownUnits = map[string]struct{}{
	"each": {}, "kg": {}, "g": {}, "lb": {}, "oz": {},
	"l": {}, "ml": {}, "dozen": {}, "pack": {}, "bag": {},
	"box": {}, "bottle": {}, "can": {}, "bunch": {},
}

// NewParser creates a quick-add parser. defaultUnit is applied to
// entries with no unit label, e.g. "each".
func NewParser(defaultUnit string) *Parser {
	if defaultUnit == "" {
		defaultUnit = "each"
	}
	return &Parser{defaultUnit: defaultUnit}
}

// Parse parses a multi-line quick-add text into entries. Blank lines
// are skipped. Fails if any non-blank line has no name left after
// quantity/price/unit extraction.
func (p *Parser) Parse(text string) ([]Entry, error) {
	var entries []Entry
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		entry, err := p.parseLine(line)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (p *Parser) parseLine(line string) (Entry, error) {
	entry := Entry{Quantity: 1, Unit: p.defaultUnit}

	// Leading quantity: "2x Milk" or "2 Milk".
	if m := qtyRe.FindStringSubmatch(line); m != nil {
		qty, _ := strconv.Atoi(m[1])
		if qty >= 1 {
			entry.Quantity = qty
		}
		line = strings.TrimSpace(line[len(m[0]):])
	}

	// Price: first "$N" or "$N.NN" anywhere.
	if m := priceRe.FindStringSubmatch(line); m != nil {
		price, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			entry.EstimatedPrice = price
		}
		line = strings.TrimSpace(strings.Replace(line, m[0], "", 1))
	}

	// Trailing unit label.
	fields := strings.Fields(line)
	if len(fields) > 1 {
		last := strings.ToLower(fields[len(fields)-1])
		if _, ok := knownUnits[last]; ok {
			entry.Unit = last
			fields = fields[:len(fields)-1]
		}
	}

	entry.Name = strings.TrimSpace(strings.Join(fields, " "))
	if entry.Name == "" {
		return Entry{}, fmt.Errorf("no item name in line %q", line)
	}

	return entry, nil
}
