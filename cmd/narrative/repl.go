package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Coroz2/imdb-narrative/internal/config"
	"github.com/Coroz2/imdb-narrative/internal/controller"
	"github.com/Coroz2/imdb-narrative/internal/writer"
)

const helpText = `Commands:
  scene <1|2|3>      switch scene (1 Timeline, 2 Genre Evolution, 3 Critics vs Box Office)
  decade <year>      highlight a decade in scene 1, e.g. decade 1990
  genre <name|all>   highlight a genre in scene 2, e.g. genre Drama
  rating <value>     set the rating threshold in scene 3, e.g. rating 8.5
  genres             list available genres
  report             write the current scene to a Markdown report
  help               show this help
  quit               exit`

// runControlLoop reads control commands line by line and dispatches them
// as events to the scene controller. One event runs to completion before
// the next line is read.
func runControlLoop(in io.Reader, holder *sessionHolder, cfg *config.Config) {
	fmt.Println()
	fmt.Println(helpText)

	scanner := bufio.NewScanner(in)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Print("> ")
			continue
		}

		fields := strings.Fields(line)
		cmd := strings.ToLower(fields[0])
		if cmd == "quit" || cmd == "exit" {
			return
		}

		if err := dispatch(cmd, fields[1:], holder.get(), cfg); err != nil {
			if errors.Is(err, controller.ErrWrongScene) {
				fmt.Printf("Not here: %v\n", err)
			} else {
				fmt.Printf("Error: %v\n", err)
			}
		}
		fmt.Print("> ")
	}
}

// dispatch maps one parsed command onto a controller event or a local
// action.
func dispatch(cmd string, args []string, sess *session, cfg *config.Config) error {
	switch cmd {
	case "scene":
		n, err := intArg(args, "scene number")
		if err != nil {
			return err
		}
		return sess.controller.SelectScene(n)

	case "decade":
		d, err := intArg(args, "decade")
		if err != nil {
			return err
		}
		return sess.controller.SetDecade(d)

	case "genre":
		if len(args) == 0 {
			return fmt.Errorf("genre requires a name (or \"all\")")
		}
		return sess.controller.SetGenre(strings.Join(args, " "))

	case "rating":
		if len(args) == 0 {
			return fmt.Errorf("rating requires a value")
		}
		r, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid rating %q", args[0])
		}
		return sess.controller.SetRating(r)

	case "genres":
		for _, g := range sess.dataset.Genres() {
			fmt.Printf("  %s\n", g)
		}
		return nil

	case "report":
		frame, note, ok := sess.controller.CurrentFrame()
		if !ok {
			return fmt.Errorf("nothing rendered yet")
		}
		path, err := writer.NewReportWriter(cfg.Report.Dir).WriteReport(frame, note, sess.controller.Controls())
		if err != nil {
			return err
		}
		fmt.Printf("Report written: %s\n", path)
		return nil

	case "help":
		fmt.Println(helpText)
		return nil

	default:
		return fmt.Errorf("unknown command %q (try \"help\")", cmd)
	}
}

// intArg parses the single integer argument of a command.
func intArg(args []string, what string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%s required", what)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, args[0])
	}
	return n, nil
}
