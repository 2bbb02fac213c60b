package pricing

// Config selects how an Engine blends and trains. Engines are constructed
// explicitly and passed to whoever issues recommendations; there is no
// process-wide instance, so differently weighted engines can coexist.
type Config struct {
	// MLWeight blends rule and model adjustments: 0 = pure rules, 1 = pure model.
	MLWeight float64

	// TrainingSamples sizes the synthetic dataset.
	TrainingSamples int

	// Seed fixes the training data PRNG for reproducible models.
	Seed int64

	Rules Rules
}

const (
	defaultMLWeight        = 0.5
	defaultTrainingSamples = 2000
	defaultSeed            = 42
)

func DefaultConfig() Config {
	return Config{
		MLWeight:        defaultMLWeight,
		TrainingSamples: defaultTrainingSamples,
		Seed:            defaultSeed,
		Rules:           DefaultRules(),
	}
}
