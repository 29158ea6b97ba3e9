package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tushargaudara/Anima-Engine/internal/anim"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "List discovered animations and verify they decode",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib := anim.NewLibrary(cfg.Animations.Dirs...)
		entries := lib.Scan()
		if len(entries) == 0 {
			fmt.Println("No animations found. Searched:")
			for _, d := range lib.Dirs() {
				fmt.Printf("  %s\n", d)
			}
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tFRAMES\tSIZE\tDURATION\tSTATUS")
		bad := 0
		for _, e := range entries {
			seq, err := lib.Load(e.Path)
			if err != nil {
				bad++
				fmt.Fprintf(w, "%s\t-\t-\t-\t%v\n", e.Name, err)
				continue
			}
			var total float64
			for _, d := range seq.Durations {
				total += d
			}
			fmt.Fprintf(w, "%s\t%d\t%dx%d\t%.1fs\tok\n",
				e.Name, len(seq.Frames), seq.W, seq.H, total)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if bad > 0 {
			return fmt.Errorf("%d animation(s) failed to decode", bad)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
