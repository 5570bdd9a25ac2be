package solver

import "github.com/lox/hunlsolver/game"

// RegretMatchedStrategy implements spec §4.9: positive regrets are
// normalised into a probability distribution over the legal actions; if
// every regret is non-positive the distribution is uniform.
func RegretMatchedStrategy(regrets map[game.Action]float64, legal []game.Action) map[game.Action]float64 {
	sigma := make(map[game.Action]float64, len(legal))
	var z float64
	for _, a := range legal {
		if r := regrets[a]; r > 0 {
			sigma[a] = r
			z += r
		}
	}
	if z > 0 {
		for _, a := range legal {
			sigma[a] /= z
		}
		return sigma
	}
	u := 1.0 / float64(len(legal))
	for _, a := range legal {
		sigma[a] = u
	}
	return sigma
}
