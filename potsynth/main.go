package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/itohio/potsynth/pkg/config"
	"github.com/itohio/potsynth/pkg/logging"
)

// configReloadDelay coalesces the burst of events editors produce on save.
const configReloadDelay = 250 * time.Millisecond

func main() {
	var (
		portFlag     = flag.String("p", "", "Serial port override (e.g., COM3 or /dev/ttyACM0)")
		configFlag   = flag.String("config", "config.yaml", "Configuration file path")
		mockFlag     = flag.Bool("mock", false, "Use mocked device instead of serial port")
		recordFlag   = flag.String("record", "", "Record the synthesized audio to a WAV file")
		headlessFlag = flag.Bool("headless", false, "Run without a window, logging messages until interrupted")
		debugFlag    = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFlag)
	if err != nil {
		logging.New("potsynth", true).Fatalw("failed to load configuration", "file", *configFlag, "error", err)
	}

	logger := logging.New("potsynth", *debugFlag || cfg.Logging.Debug)
	defer logger.Sync()

	// Override serial port if provided via command line
	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := newSession(cfg, logger, *mockFlag)
	if err := s.startAudio(*recordFlag); err != nil {
		if *recordFlag != "" {
			logger.Fatalw("failed to start audio", "error", err)
		}
		logger.Warnw("audio output unavailable, continuing silently", "error", err)
	}

	err = config.Watch(ctx, *configFlag, configReloadDelay, func(newCfg *config.Config, err error) {
		if err != nil {
			logger.Warnw("failed to reload configuration", "error", err)
			return
		}
		s.applyConfig(newCfg)
	})
	if err != nil {
		logger.Warnw("configuration will not be reloaded on change", "error", err)
	}

	if *headlessFlag {
		err = runHeadless(ctx, s)
	} else {
		err = runGUI(ctx, s, *configFlag)
	}
	if err != nil {
		logger.Errorw("stopped with error", "error", err)
	}

	if err := s.close(); err != nil {
		logger.Errorw("shutdown", "error", err)
	}
}

// runGUI shows the main window until it is closed or ctx is cancelled.
func runGUI(ctx context.Context, s *session, configPath string) error {
	application := app.NewWithID("com.itohio.potsynth")

	window := application.NewWindow("Pot Synth")
	window.Resize(fyne.NewSize(1000, 700))
	window.CenterOnScreen()

	state := newAppState(s, window, configPath)
	window.SetContent(state.build())

	go func() {
		<-ctx.Done()
		fyne.Do(application.Quit)
	}()

	window.ShowAndRun()
	return nil
}
