package main

import (
	"encoding/binary"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arloliu/payloadbuf/pack"
	"github.com/arloliu/payloadbuf/pattern"
)

var (
	cyclicAlphabet string
	cyclicN        int
	cyclicLookup   string
	cyclicBits     int
	cyclicBig      bool
)

var cyclicCmd = &cobra.Command{
	Use:   "cyclic [length]",
	Short: "Generate a cyclic pattern or look up a crash offset",
	Long: `Generate the first N bytes of the de Bruijn cyclic pattern, or look up
the offset of a crashed register value within it.

The lookup argument is either a literal substring ("caaa") or a hex register
value (0x61616163) that is unpacked in the target byte order first.`,
	Example: `  payloadbuf cyclic 200
  payloadbuf cyclic -l caaa
  payloadbuf cyclic -l 0x61616163`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCyclic,
}

func init() {
	cyclicCmd.Flags().StringVarP(&cyclicLookup, "lookup", "l", "", "look up the offset of a substring or hex value")
	cyclicCmd.Flags().StringVarP(&cyclicAlphabet, "alphabet", "a", pattern.DefaultAlphabet, "pattern alphabet")
	cyclicCmd.Flags().IntVarP(&cyclicN, "length", "n", pattern.DefaultN, "unique window length")
	cyclicCmd.Flags().IntVar(&cyclicBits, "bits", 32, "register width for hex lookups (32 or 64)")
	cyclicCmd.Flags().BoolVar(&cyclicBig, "big-endian", false, "treat hex lookups as big-endian")
}

func runCyclic(cmd *cobra.Command, args []string) error {
	if cyclicLookup != "" {
		return lookupOffset(cyclicLookup)
	}

	if len(args) != 1 {
		return fmt.Errorf("either a length argument or --lookup is required")
	}
	length, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid length %q: %w", args[0], err)
	}

	data, err := pattern.CyclicWith(cyclicAlphabet, cyclicN, length)
	if err != nil {
		return err
	}
	os.Stdout.Write(data)

	return nil
}

// lookupOffset resolves arg as either a hex register value or a literal
// pattern substring and prints its offset in the cyclic pattern.
func lookupOffset(arg string) error {
	sub := []byte(arg)

	if value, err := strconv.ParseUint(arg, 0, 64); err == nil && len(arg) > 2 && (arg[:2] == "0x" || arg[:2] == "0X") {
		ctx := &pack.Context{Bits: cyclicBits, Order: binary.LittleEndian}
		if cyclicBig {
			ctx.Order = binary.BigEndian
		}
		sub = ctx.P32(uint32(value))
		if cyclicBits == 64 {
			sub = ctx.P64(value)
		}
	}

	off := pattern.FindWith(cyclicAlphabet, cyclicN, sub)
	if off < 0 {
		return fmt.Errorf("%q does not occur in the pattern", arg)
	}
	fmt.Printf("%d\n", off)

	return nil
}
