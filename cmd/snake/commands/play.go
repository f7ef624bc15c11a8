package commands

import (
	"context"
	"io/ioutil"
	"math/rand"
	"os"
	"time"

	"github.com/gridsnake/engine/api"
	"github.com/gridsnake/engine/config"
	"github.com/gridsnake/engine/controller"
	"github.com/gridsnake/engine/rules"
	"github.com/gridsnake/engine/worker"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	gridSize     = config.GridSize
	tickInterval = config.TickInterval
)

var (
	seed       int64
	listenAddr string
	logFile    string
)

func init() {
	playCmd.Flags().IntVarP(&gridSize, "size", "s", gridSize, "number of cells on each side of the grid")
	playCmd.Flags().DurationVarP(&tickInterval, "tick", "t", tickInterval, "time between snake moves")
	playCmd.Flags().Int64Var(&seed, "seed", 0, "seed for apple placement, 0 picks one from the clock")
	playCmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "serve the spectator api on this address, e.g. :3005")
	playCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file while playing")
	playCmd.Flags().BoolVar(&promEnable, "prometheus", promEnable, "enable prometheus metrics")
	playCmd.Flags().StringVar(&promListen, "prometheus-listen", promListen, "prometheus http endpoint")
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "plays snake in the terminal",
	Args: func(c *cobra.Command, args []string) error {
		if gridSize < rules.MinGridSize {
			return rules.ErrGridTooSmall
		}
		if tickInterval <= 0 {
			return errors.New("tick must be positive")
		}
		return nil
	},
	RunE: func(*cobra.Command, []string) error {
		prometheus()
		return play()
	},
}

func play() error {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	game, err := rules.New(gridSize, rules.WithRand(rand.New(rand.NewSource(seed))))
	if err != nil {
		return err
	}

	closeLog, err := redirectLog(logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	sessionID := uuid.NewV4().String()
	store := controller.InstrumentStore(controller.InMemStore(config.MaxFrames))
	log.WithFields(log.Fields{
		"SessionID": sessionID,
		"Size":      gridSize,
		"Tick":      tickInterval,
		"Seed":      seed,
	}).Info("starting game")

	if listenAddr != "" {
		srv := api.New(listenAddr, store, api.Session{
			ID:           sessionID,
			Size:         gridSize,
			TickInterval: tickInterval,
			Started:      time.Now(),
		})
		go func() {
			if err := srv.WaitForExit(); err != nil {
				log.WithError(err).
					WithField("listen", listenAddr).
					Error("spectator api failed")
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				log.WithError(err).Warn("spectator api shutdown")
			}
		}()
	}

	r, err := newTermRenderer("Snake")
	if err != nil {
		return errors.Wrap(err, "unable to open terminal")
	}
	defer r.Close()
	r.SetStatus("arrows/wasd steer - r restart - esc quit")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	input := make(chan worker.Input, 8)
	go pollKeys(ctx, cancel, setupEventQueue(), input)

	w := &worker.Worker{
		Game:         game,
		TickInterval: tickInterval,
		SessionID:    sessionID,
		Renderer:     r,
		Store:        store,
	}
	err = w.Run(ctx, input)
	if err == context.Canceled {
		log.WithField("SessionID", sessionID).Info("game closed")
		return nil
	}
	return err
}

// redirectLog sends logs to path while the terminal is owned by the game.
// Without a path they are discarded.
func redirectLog(path string) (func(), error) {
	out := log.StandardLogger().Out
	if path == "" {
		log.SetOutput(ioutil.Discard)
		return func() { log.SetOutput(out) }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open log file %s", path)
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(out)
		if err := f.Close(); err != nil {
			log.WithError(err).Warn("unable to close log file")
		}
	}, nil
}
