package main

import (
	"flag"
	"net/http"

	"tictac/agent"
	"tictac/server"
	"tictac/store"
	"tictac/trainer"

	"github.com/rs/zerolog/log"
)

func main() {
	mode := flag.String("mode", "serve", "serve the HTTP agent or run self-play training (serve|train)")
	episodes := flag.Int("episodes", 0, "override the number of training episodes")
	flag.Parse()

	cfg := loadConfig()
	if *episodes > 0 {
		cfg.TrainEpisodes = *episodes
	}

	st, closeStore := openStore(cfg)
	defer closeStore()

	a := newAgent(cfg)

	switch *mode {
	case "serve":
		serve(cfg, a, st)
	case "train":
		train(cfg, a, st)
	default:
		log.Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}

func openStore(cfg config) (store.Store, func()) {
	switch cfg.StoreBackend {
	case "file":
		return store.NewFileStore(cfg.StateFile), func() {}
	case "sqlite":
		s, err := store.OpenSQLiteStore(cfg.StateDB)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open sqlite store")
		}
		return s, func() { s.Close() }
	default:
		log.Fatal().Str("backend", cfg.StoreBackend).Msg("unknown store backend")
		return nil, nil
	}
}

func newAgent(cfg config) *agent.Agent {
	options := []agent.Option{
		agent.WithLearningRate(cfg.LearningRate),
		agent.WithExplorationRate(cfg.ExplorationRate),
	}

	switch cfg.Learner {
	case "montecarlo":
		// Agent default
	case "bellman":
		options = append(options, agent.WithLearner(&agent.BellmanLearner{
			LearningRate:   cfg.LearningRate,
			DiscountFactor: cfg.DiscountFactor,
		}))
	default:
		log.Fatal().Str("learner", cfg.Learner).Msg("unknown learner")
	}

	return agent.New(options...)
}

func serve(cfg config, a *agent.Agent, st store.Store) {
	srv := server.New(a, st, log.Logger)
	log.Info().Str("addr", cfg.Addr).Msg("agent listening")
	if err := http.ListenAndServe(cfg.Addr, srv.Router()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func train(cfg config, a *agent.Agent, st store.Store) {
	t := trainer.New(a, st,
		trainer.WithEpisodes(cfg.TrainEpisodes),
		trainer.WithSaveEvery(cfg.TrainSaveEvery),
	)

	records, err := t.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("training failed")
	}

	writer, err := trainer.NewWriter(cfg.TrainOutDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create run writer")
	}
	if err := writer.WriteEpisodeRecords(records); err != nil {
		log.Fatal().Err(err).Msg("failed to write episode records")
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored episode records")
}
