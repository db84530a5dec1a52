package main

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type config struct {
	Addr         string
	StoreBackend string // "file" or "sqlite"
	StateFile    string
	StateDB      string

	LearningRate    float64
	DiscountFactor  float64
	ExplorationRate float64
	Learner         string // "montecarlo" or "bellman"

	TrainEpisodes  int
	TrainSaveEvery int
	TrainOutDir    string
}

func loadConfig() config {
	if err := godotenv.Load(); err == nil {
		log.Info().Msg("loaded environment from .env")
	}

	return config{
		Addr:         getenv("ADDR", ":5000"),
		StoreBackend: getenv("STORE_BACKEND", "file"),
		StateFile:    getenv("STATE_FILE", "data/agent_state.json"),
		StateDB:      getenv("STATE_DB", "data/agent_state.db"),

		LearningRate:    getfloat("LEARNING_RATE", 0.1),
		DiscountFactor:  getfloat("DISCOUNT_FACTOR", 0.9),
		ExplorationRate: getfloat("EXPLORATION_RATE", 1.0),
		Learner:         getenv("LEARNER", "montecarlo"),

		TrainEpisodes:  getint("TRAIN_EPISODES", 1000),
		TrainSaveEvery: getint("TRAIN_SAVE_EVERY", 100),
		TrainOutDir:    getenv("TRAIN_OUT_DIR", "experiments"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getfloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("ignoring unparseable float")
		return fallback
	}
	return f
}

func getint(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("ignoring unparseable int")
		return fallback
	}
	return n
}
