package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/tphakala/malgo"

	"github.com/dhiasalah/websampler-go/internal/audio/capture"
	"github.com/dhiasalah/websampler-go/internal/audio/file"
	"github.com/dhiasalah/websampler-go/internal/audio/playback"
	"github.com/dhiasalah/websampler-go/internal/engine"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "websampler",
	Short:   "Pad sampler engine: load, trim, record and slice samples",
	Version: version,
}

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List available capture devices",
	RunE:  runDevices,
}

var playCmd = &cobra.Command{
	Use:   "play <audio-file>",
	Short: "Load an audio file into a pad and audition it",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlay,
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record from the microphone, slice at silences and export the slices as WAV files",
	RunE:  runRecord,
}

var (
	flagDuration time.Duration
	flagOutDir   string
)

func init() {
	recordCmd.Flags().DurationVar(&flagDuration, "duration", 10*time.Second, "recording length")
	recordCmd.Flags().StringVarP(&flagOutDir, "out", "o", ".", "output directory for slices")

	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(recordCmd)
}

func runDevices(cmd *cobra.Command, args []string) error {
	ctx, err := capture.NewDefaultContext(nil)
	if err != nil {
		return err
	}
	defer ctx.Uninit()

	infos, err := ctx.Devices(malgo.Capture)
	if err != nil {
		return err
	}

	for _, info := range infos {
		fmt.Printf("%s\n", info.Name())
	}
	return nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg := engine.NewDefaultConfig()

	device, err := playback.NewSpeakerDevice(cfg.SampleRate)
	if err != nil {
		return fmt.Errorf("failed to initialize output device: %w", err)
	}

	sampler := engine.New(cfg, device, nil, nil)
	defer sampler.Close()

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	pad, err := sampler.LoadPad(0, f, filepath.Base(args[0]))
	if err != nil {
		return err
	}

	if err := sampler.Play(0); err != nil {
		return err
	}

	// The speaker mixes asynchronously; wait the pad out.
	time.Sleep(time.Duration(pad.Duration()*float64(time.Second)) + 200*time.Millisecond)
	return nil
}

func runRecord(cmd *cobra.Command, args []string) error {
	captureCtx, err := capture.NewDefaultContext(nil)
	if err != nil {
		return fmt.Errorf("failed to initialize capture context: %w", err)
	}
	defer captureCtx.Uninit()

	sampler := engine.New(nil, nil, captureCtx, nil)
	defer sampler.Close()

	if err := sampler.StartRecording(); err != nil {
		return err
	}
	fmt.Printf("recording for %s...\n", flagDuration)
	time.Sleep(flagDuration)

	loaded, err := sampler.StopRecordingSegmented(0)
	if err != nil {
		return err
	}
	if len(loaded) == 0 {
		fmt.Println("no sounds detected")
		return nil
	}

	for _, pad := range loaded {
		out := filepath.Join(flagOutDir, fmt.Sprintf("slice-%02d.wav", pad.Index+1))
		if err := file.SaveWAV(out, pad.Buffer); err != nil {
			return err
		}
		fmt.Printf("%s (%.2fs)\n", out, pad.Duration())
	}
	return nil
}
