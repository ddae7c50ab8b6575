package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fractal/coordinator"
	"fractal/misc"

	"github.com/spf13/cobra"
)

const defaultSettingsFile = "config.json"

func mainCmd() *cobra.Command {
	var (
		heartBeat time.Duration
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "fractal [settings.json]",
		Short: "Render a Mandelbrot or Julia set to a PNG image",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// At this point usage information has already been printed if obviously incorrect.
			cmd.SilenceUsage = true

			settingsFile := defaultSettingsFile
			if len(args) == 1 {
				settingsFile = args[0]
			}
			return run(cmd.Context(), settingsFile, heartBeat, misc.Logging{Verbose: verbose})
		},
	}
	// errors are logged once by main
	cmd.SilenceErrors = true
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
	cmd.Flags().DurationVar(&heartBeat, "heartbeat", coordinator.DefaultHeartBeat, "how often to log render progress")

	return cmd
}

func run(ctx context.Context, settingsFile string, heartBeat time.Duration, logging misc.Logging) error {
	logger := logging.NewLogger("Fractal")
	logger.Infof("Loading settings from %s", settingsFile)

	c, err := coordinator.NewCoordinator(settingsFile, logging)
	if err != nil {
		return err
	}
	defer c.Close()
	c.SetHeartBeat(heartBeat)

	path, err := c.Run(ctx)
	if err != nil {
		return err
	}
	logger.Infof("Done, image written to %s", path)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := mainCmd().ExecuteContext(ctx)
	stop()
	misc.CheckError(err, misc.Logging{}.NewLogger("Fractal"), misc.Fatal)
}
