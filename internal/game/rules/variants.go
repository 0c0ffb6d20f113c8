package rules

// Built-in variant names.
const (
	VariantClassic  = "classic"
	VariantExtended = "extended"
	VariantCoin     = "coin"
)

// Classic returns the three-move cycle: rock beats scissors, scissors beats
// paper, paper beats rock.
func Classic() *Graph {
	g, err := NewGraph(VariantClassic,
		[]Move{
			{Code: "r", Name: "Rock"},
			{Code: "p", Name: "Paper"},
			{Code: "s", Name: "Scissors"},
		},
		map[string][]string{
			"r": {"s"},
			"p": {"r"},
			"s": {"p"},
		},
	)
	if err != nil {
		// The definition is hardcoded and always valid.
		panic(err)
	}
	return g
}

// Extended returns the five-move variant where every move beats exactly two
// others and loses to exactly two others.
func Extended() *Graph {
	g, err := NewGraph(VariantExtended,
		[]Move{
			{Code: "r", Name: "Rock"},
			{Code: "p", Name: "Paper"},
			{Code: "s", Name: "Scissors"},
			{Code: "l", Name: "Lizard"},
			{Code: "k", Name: "Spock"},
		},
		map[string][]string{
			"r": {"s", "l"},
			"p": {"r", "k"},
			"s": {"p", "l"},
			"l": {"p", "k"},
			"k": {"r", "s"},
		},
	)
	if err != nil {
		panic(err)
	}
	return g
}

// Coin returns the two-sided coin toss move set. The coin has no beats
// relation; matching sides is judged by the match engine, not the graph.
func Coin() *Graph {
	g, err := NewMoveSet(VariantCoin, []Move{
		{Code: "h", Name: "Heads"},
		{Code: "t", Name: "Tails"},
	})
	if err != nil {
		panic(err)
	}
	return g
}
