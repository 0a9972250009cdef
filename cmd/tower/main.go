package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/chzyer/readline"
	"github.com/labstack/gommon/log"

	"github.com/konczyk/irrops/internal/history"
	"github.com/konczyk/irrops/internal/schedule"
	"github.com/konczyk/irrops/internal/shell"
)

func main() {
	scenario := flag.String("scenario", envOr("SCENARIO", "data/default.json"), "path to the JSON scenario file")
	historyDB := flag.String("history", envOr("HISTORY_DB", "data/history.db"), "path to the disruption history database (empty disables it)")
	flag.Parse()

	sched, err := schedule.LoadFile(*scenario)
	if err != nil {
		log.Fatalf("load scenario: %v", err)
	}
	sched.Assign()

	var store *history.Store
	if *historyDB != "" {
		store, err = history.Open(*historyDB)
		if err != nil {
			log.Warnf("history disabled: %v", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	fmt.Printf("Tower online. Loaded flights from %s\n", *scenario)

	var completions []readline.PrefixCompleterInterface
	for _, cmd := range shell.Commands() {
		completions = append(completions, readline.PcItem(cmd))
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:       ">> ",
		AutoComplete: readline.NewPrefixCompleter(completions...),
	})
	if err != nil {
		log.Fatalf("readline: %v", err)
	}
	defer rl.Close()

	sh := shell.New(sched, store, os.Stdout)
	sh.Pager = paginate

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			fmt.Println("CTRL-C")
			break
		}
		if err == io.EOF {
			fmt.Println("CTRL-D")
			break
		}
		if err != nil {
			log.Errorf("readline: %v", err)
			break
		}
		if !sh.Execute(line) {
			break
		}
	}
}

// paginate pipes content through less so big tables do not flood the
// terminal, falling back to more when less is unavailable.
func paginate(content string) {
	name := "less"
	args := []string{"-R"}
	if _, err := exec.LookPath(name); err != nil {
		name, args = "more", nil
	}
	pager := exec.Command(name, args...)
	pager.Stdin = strings.NewReader(content)
	pager.Stdout = os.Stdout
	pager.Stderr = os.Stderr
	if err := pager.Run(); err != nil {
		fmt.Print(content)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
