package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"cloud.google.com/go/logging"
	"github.com/aasmall/asciigraph"
	"github.com/aasmall/diceval/lib/dicelang"
	errors "github.com/aasmall/diceval/lib/dicelang-errors"
	"github.com/aasmall/diceval/lib/envreader"
	log "github.com/aasmall/diceval/lib/logger"
	"github.com/davecgh/go-spew/spew"
	"github.com/mgutz/ansi"
)

func main() {
	var path, cmd, configFile string
	var verbose, prob, flat bool
	flag.StringVar(&path, "path", "", "Path to a file with one roll command per line.")
	flag.StringVar(&cmd, "cmd", "4d100+1d6 小焰除3", "Roll command")
	flag.StringVar(&configFile, "config", "", "Config file read for keys missing from the environment.")
	flag.BoolVar(&verbose, "v", false, "Display the parsed structure of each command")
	flag.BoolVar(&prob, "p", false, "Display a probability map for each dice term")
	flag.BoolVar(&flat, "flat", false, "Use the flat roll grammar")
	face := flag.Int64("face", 0, "Face of dice written without one (overrides DICEVAL_DEFAULT_FACE)")
	seed := flag.Int64("seed", 0, "Seed for repeatable rolls (overrides DICEVAL_SEED)")
	color := flag.Bool("color", false, "Color the output (overrides DICEVAL_COLOR)")
	flag.Parse()

	var opts []envreader.EnvReaderOption
	if configFile != "" {
		opts = append(opts, envreader.WithConfigFile(configFile))
	}
	config, err := getConfig(opts...)
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := log.New(
		config.projectID,
		log.WithDebug(config.debug),
		log.WithDefaultSeverity(logging.Info),
		log.WithLogName(config.logName),
		log.WithLocal(config.local),
	)
	defer logger.Close()

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "flat":
			config.mode = flatMode
		case "face":
			config.defaultFace = *face
		case "seed":
			config.seed = *seed
		case "color":
			config.color = *color
		}
	})
	if err := config.validate(); err != nil {
		logger.Fatalf("%v", err)
	}

	s := newSession(config, os.Stdout, logger)
	failed := false
	if path == "" {
		failed = s.printDiceInfo(cmd, verbose, prob) != nil
	} else {
		c := make(chan string)
		go readRollsFromFile(c, path, logger)
		rolled := 0
		for cmd := range c {
			if err := s.printDiceInfo(cmd, verbose, prob); err != nil {
				failed = true
			}
			rolled++
		}
		logger.Printf("rolled %d commands from %s", rolled, path)
	}
	if failed {
		logger.Close()
		os.Exit(1)
	}
}

type session struct {
	config *cliConfig
	ctx    *dicelang.Context
	out    io.Writer
	log    *log.Logger
	paint  func(s string, style string) string
}

func newSession(config *cliConfig, out io.Writer, logger *log.Logger) *session {
	var ctxOpts []dicelang.ContextOption
	if config.seed != 0 {
		ctxOpts = append(ctxOpts, dicelang.WithRoller(dicelang.NewSeededRoller(config.seed)))
	}
	s := &session{
		config: config,
		ctx:    dicelang.NewContext(config.defaultFace, ctxOpts...),
		out:    out,
		log:    logger,
		paint:  func(s string, style string) string { return s },
	}
	if config.color {
		s.paint = ansi.Color
	}
	return s
}

// printDiceInfo prints one command: the parsed line, the total and its trace.
func (s *session) printDiceInfo(cmd string, verbose bool, prob bool) error {
	fmt.Fprintln(s.out, cmd)
	var total int64
	var trace string
	var dice []dicelang.Dice
	var err error
	if s.config.mode == flatMode {
		total, trace, dice, err = s.flat(cmd, verbose)
	} else {
		total, trace, dice, err = s.tree(cmd, verbose)
	}
	if err != nil {
		s.log.Errorf("%q: %v", cmd, err)
		fmt.Fprintln(s.out, s.paint(describeError(err), "red"))
		fmt.Fprintln(s.out, "----------")
		return err
	}
	if prob {
		s.printProbabilities(dice)
	}
	fmt.Fprintf(s.out, "Total: %s\n", s.paint(fmt.Sprint(total), "green+b"))
	fmt.Fprintln(s.out, trace)
	fmt.Fprintln(s.out, "----------")
	return nil
}

func (s *session) tree(cmd string, verbose bool) (int64, string, []dicelang.Dice, error) {
	var parserOpts []dicelang.ParserOption
	if s.config.numberWords {
		parserOpts = append(parserOpts, dicelang.WithNumberWords())
	}
	entities := dicelang.Parse(cmd, parserOpts...)
	s.log.Debugf("parsed %d entities from %q", len(entities), cmd)
	if verbose {
		fmt.Fprint(s.out, "Entities:\n----------\n")
		fmt.Fprintln(s.out, dicelang.PrintEntities(entities))
		fmt.Fprint(s.out, spew.Sdump(entities))
		fmt.Fprintln(s.out, "----------")
	}
	var line []string
	for _, e := range entities {
		switch e := e.(type) {
		case dicelang.Description:
			line = append(line, s.paint(strings.TrimSpace(string(e)), "cyan"))
		case dicelang.Expression:
			line = append(line, s.paint(e.Text, "yellow+b"))
		}
	}
	fmt.Fprintln(s.out, strings.Join(line, " "))
	total, trace, err := s.ctx.EvalEntities(entities)
	return total, trace, dicelang.CollectDice(entities), err
}

func (s *session) flat(cmd string, verbose bool) (int64, string, []dicelang.Dice, error) {
	roll, err := dicelang.NewParser(cmd).Command()
	if err != nil {
		return 0, "", nil, err
	}
	if verbose {
		fmt.Fprint(s.out, "Roll:\n----------\n")
		fmt.Fprint(s.out, spew.Sdump(roll))
		fmt.Fprintln(s.out, "----------")
	}
	fmt.Fprintln(s.out, s.paint(dicelang.RollString(roll), "yellow+b"))
	var dice []dicelang.Dice
	for _, t := range roll {
		if t.Kind == dicelang.DiceToken {
			dice = append(dice, t.Dice)
		}
	}
	total, trace, err := s.ctx.EvalRoll(roll)
	return total, trace, dice, err
}

func describeError(err error) string {
	switch e := err.(type) {
	case *errors.LexError:
		return fmt.Sprintf("Could not parse input: %s (line %d, column %d)", e.Err, e.Line, e.Col)
	case *errors.DicelangError:
		switch e.Code {
		case errors.InvalidCommand:
			return "Nothing to roll in that command."
		case errors.UnsupportedCommand:
			return "Variables are not supported: " + e.Error()
		case errors.DiceBoundsExceeded, errors.Arithmetic, errors.Friendly:
			return e.Error()
		}
	}
	return "An unexpected error has occurred: " + err.Error()
}

func sortProbMap(m map[int64]float64) []int64 {
	var keys []int64
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (s *session) printProbabilities(dice []dicelang.Dice) {
	for _, d := range dice {
		face := d.Face
		if d.FaceOmitted {
			face = s.ctx.DefaultFace
		}
		probMap, err := dicelang.DiceProbability(d.Number, face)
		if err != nil {
			s.log.Infof("no probability map for %dd%d: %v", d.Number, face, err)
			continue
		}
		keys := sortProbMap(probMap)
		fmt.Fprintf(s.out, "\nProbability Map for %dd%d:\n", d.Number, face)
		series := make([]float64, 0, len(keys))
		for _, k := range keys {
			fmt.Fprintf(s.out, "%2d:  %2.5F%%\n", k, probMap[k])
			series = append(series, probMap[k])
		}
		mean, stddev := dicelang.Expectation(probMap)
		fmt.Fprintf(s.out, "Mean: %.3f  Standard deviation: %.3f\n", mean, stddev)
		if len(series) > 1 {
			fmt.Fprintln(s.out, asciigraph.Plot(series,
				asciigraph.Height(10),
				asciigraph.Caption(fmt.Sprintf("%dd%d, %% by total from %d", d.Number, face, keys[0]))))
		}
		fmt.Fprint(s.out, "----------\n")
	}
}

func readRollsFromFile(c chan string, path string, logger *log.Logger) {
	defer close(c)
	file, err := os.Open(path)
	if err != nil {
		logger.Errorf("Could not open file: %v", err)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		c <- scanner.Text()
	}
	if err := scanner.Err(); err != nil {
		logger.Errorf("Could not scan file: %v", err)
		return
	}
}
