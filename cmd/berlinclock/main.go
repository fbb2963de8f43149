package main

import (
	"fmt"
	"io"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/saaga0h/jeeves-clock/internal/berlinclock"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:], time.Now, os.Stdout, os.Stderr))
}

// run prints the Berlin Clock for each HH:MM:SS argument, or for the current time with --now.
// Grids are separated by a blank line
func run(args []string, now func() time.Time, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("berlinclock", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	showNow := fs.Bool("now", false, "Show the current time")
	zone := fs.String("time-zone", "Local", "IANA time zone used with --now")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: berlinclock [--now] [--time-zone ZONE] [HH:MM:SS ...]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	var inputs []berlinclock.Time
	if *showNow {
		loc, err := time.LoadLocation(*zone)
		if err != nil {
			fmt.Fprintf(stderr, "invalid time zone %q: %v\n", *zone, err)
			return 2
		}
		inputs = append(inputs, berlinclock.FromClock(now().In(loc)))
	}
	for _, arg := range fs.Args() {
		t, err := berlinclock.ParseTime(arg)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		inputs = append(inputs, t)
	}

	if len(inputs) == 0 {
		fs.Usage()
		return 2
	}

	for i, t := range inputs {
		grid, err := berlinclock.Convert(t)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		if i > 0 {
			fmt.Fprintln(stdout)
		}
		fmt.Fprintln(stdout, grid)
	}
	return 0
}
