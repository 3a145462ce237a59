package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/rawbytedev/memlink"
	"github.com/rawbytedev/memlink/pkg/frame"
)

type shiftConfiguration struct {
	Base      *baseConfiguration
	In        string
	Out       string
	Script    string
	Size      string
	FramedIn  bool
	FramedOut bool
	Compress  bool
}

func newShiftCmd(base *baseConfiguration) *cobra.Command {
	config := &shiftConfiguration{Base: base}
	cmd := &cobra.Command{
		Use:   "shift",
		Short: "Apply a YAML script of erase/insert/fill/put steps to a file in place",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShift(cmd, config)
		},
	}
	cmd.Flags().StringVarP(&config.In, "in", "i", "", "input file")
	cmd.Flags().StringVarP(&config.Out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&config.Script, "script", "s", "", "YAML script file")
	cmd.Flags().StringVar(&config.Size, "size", "", "buffer size, e.g. 4KiB (default input file size, required with --framed-in)")
	cmd.Flags().BoolVar(&config.FramedIn, "framed-in", false, "input is a frame stream")
	cmd.Flags().BoolVar(&config.FramedOut, "framed-out", false, "write output as a single data frame")
	cmd.Flags().BoolVar(&config.Compress, "compress", false, "zstd-compress the output frame (implies --framed-out)")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("script")
	return cmd
}

func runShift(cmd *cobra.Command, config *shiftConfiguration) error {
	log := config.Base.log

	sf, err := os.Open(config.Script)
	if err != nil {
		return err
	}
	script, err := ParseScript(sf)
	sf.Close()
	if err != nil {
		return err
	}

	in, err := os.Open(config.In)
	if err != nil {
		return err
	}
	defer in.Close()

	size, err := config.bufferSize(in)
	if err != nil {
		return err
	}
	blk, err := memlink.NewBlock(size)
	if err != nil {
		return err
	}
	defer blk.Release()
	m := blk.Link()

	var src io.Reader = in
	if config.FramedIn {
		src = frame.NewReader(in)
	}
	read, err := m.ReadFull(src)
	switch {
	case err == nil:
		var extra [1]byte
		if k, _ := io.ReadFull(src, extra[:]); k > 0 {
			log.Warn().Int("size", size).Msg("input longer than buffer, tail dropped")
		}
	case config.Size != "" && (errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)):
		// an explicit --size larger than the input leaves a zeroed tail
		log.Warn().Int("read", read).Int("size", size).Msg("input shorter than buffer")
	default:
		return fmt.Errorf("reading %s: %w", config.In, err)
	}
	log.Debug().Str("in", config.In).Str("size", humanize.IBytes(uint64(size))).Int("steps", len(script.Steps)).Msg("loaded")

	if err := script.Apply(&m); err != nil {
		return err
	}

	n, err := config.writeOutput(cmd.OutOrStdout(), &m)
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	log.Info().Str("written", humanize.IBytes(uint64(n))).Msg("shift done")
	return nil
}

func (config *shiftConfiguration) framedOut() bool {
	return config.FramedOut || config.Compress
}

// writeOutput writes the view to --out, or to stdout when it is unset.
func (config *shiftConfiguration) writeOutput(stdout io.Writer, m *memlink.MemLink) (n int64, err error) {
	dst := stdout
	if config.Out != "" {
		f, cerr := os.Create(config.Out)
		if cerr != nil {
			return 0, cerr
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		dst = f
	}
	if config.framedOut() {
		var flags byte
		if config.Compress {
			flags |= frame.FlagZstd
		}
		dst = frame.NewWriter(dst, flags)
	}
	return m.WriteTo(dst)
}

// bufferSize is --size, or the input file size when --size is unset.
// Either is capped so that the whole buffer fits one output frame.
func (config *shiftConfiguration) bufferSize(in *os.File) (int, error) {
	limit := uint64(frame.MaxFrameSize)
	if config.framedOut() {
		limit = frame.MaxPayloadSize
	}
	var n uint64
	switch {
	case config.Size != "":
		var err error
		if n, err = humanize.ParseBytes(config.Size); err != nil {
			return 0, fmt.Errorf("invalid --size: %w", err)
		}
	case config.FramedIn:
		return 0, errors.New("--size is required with --framed-in")
	default:
		st, err := in.Stat()
		if err != nil {
			return 0, err
		}
		n = uint64(st.Size())
	}
	if n > limit {
		return 0, fmt.Errorf("buffer size %s exceeds %s", humanize.IBytes(n), humanize.IBytes(limit))
	}
	return int(n), nil
}
