// Command png2bmp decodes a PNG file and writes it back out as a
// Windows bitmap.
package main

import (
	"bytes"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	png "github.com/llehouerou/go-png"
	"github.com/llehouerou/go-png/bmp"
)

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "png2bmp <input.png> <output.bmp>",
		Short: "Convert a PNG image to a Windows bitmap",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}

			if err := convert(args[0], args[1]); err != nil {
				log.Fatal().Err(err).Msg("conversion failed")
			}
		},
	}
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log per-image decode details")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func convert(inputPath, outputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}

	start := time.Now()
	rows := 0
	var img png.Image
	err = png.Decode(data,
		func(hdr png.ImageHeader) {
			img.Header = hdr
			img.Pixels = make([]byte, 0, int(hdr.Height)*hdr.ScanlineLength())
			log.Debug().
				Uint32("width", hdr.Width).
				Uint32("height", hdr.Height).
				Uint8("bit_depth", hdr.BitDepth).
				Uint8("color_type", hdr.ColorType).
				Msg("image header")
		},
		func(line []byte) {
			img.Pixels = append(img.Pixels, line...)
			rows++
		},
	)
	if err != nil {
		return err
	}
	log.Info().
		Str("input", inputPath).
		Int("rows", rows).
		Dur("elapsed", time.Since(start)).
		Msg("decoded")

	var out bytes.Buffer
	if err := bmp.Write(&out, &img); err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, out.Bytes(), 0o644); err != nil {
		return err
	}
	log.Info().Str("output", outputPath).Int("bytes", out.Len()).Msg("written")
	return nil
}
