// Command play is a line-oriented REPL for exercising an Engine by
// hand: setboard/play/undo/search/clear verbs over stdin. It wires in
// nnue.StubInferencer since this repo carries no trained network; a
// real deployment swaps in a concrete nnue.Inferencer here.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/nnuecore/gomoku"
	"github.com/nnuecore/gomoku/board"
	"github.com/nnuecore/gomoku/nnue"
)

var (
	rule       = flag.String("rule", "freestyle", "forbidden-move rule: freestyle, standard, or renju")
	paramFile  = flag.String("param_file", "", "PUCT parameter file, see mcts.Params.LoadParamFile")
	graphDump  = flag.String("graphviz_dump", "", "if set, write the final search tree here on exit")
	nodeBudget = flag.Int64("nodes", 20000, "node budget for each search command")
)

func main() {
	flag.Parse()

	cfg := gomoku.DefaultConfig()
	cfg.Rule = parseRule(*rule)
	cfg.ParamFile = *paramFile
	cfg.GraphvizDumpPath = *graphDump

	engine := gomoku.NewEngine(nnue.StubInferencer{}, cfg)
	defer func() {
		if err := engine.Close(); err != nil {
			log.Printf("play: close: %v", err)
		}
	}()
	engine.ClearBoard()

	fmt.Printf("rule=%s nodes=%d; commands: setboard, play <color> <x> <y>, undo <x> <y>, search <color>, clear, quit\n", cfg.Rule, *nodeBudget)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "quit", "exit":
			return
		case "clear":
			engine.ClearBoard()
			fmt.Println("ok")
		case "setboard":
			if err := setBoard(engine, fields[1:]); err != nil {
				fmt.Printf("error: %v\n", err)
			} else {
				fmt.Println("ok")
			}
		case "play":
			if err := playMove(engine, fields[1:]); err != nil {
				fmt.Printf("error: %v\n", err)
			} else {
				fmt.Println("ok")
			}
		case "undo":
			if err := undoMove(engine, fields[1:]); err != nil {
				fmt.Printf("error: %v\n", err)
			} else {
				fmt.Println("ok")
			}
		case "search":
			if err := search(engine, fields[1:], *nodeBudget); err != nil {
				fmt.Printf("error: %v\n", err)
			}
		default:
			fmt.Printf("unknown command: %s\n", fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		log.Printf("play: reading stdin: %v", err)
	}
}

func parseRule(s string) board.Rule {
	switch strings.ToLower(s) {
	case "standard":
		return board.Standard
	case "renju":
		return board.Renju
	default:
		return board.Freestyle
	}
}

func parseColor(s string) (board.Color, error) {
	switch strings.ToLower(s) {
	case "black", "b":
		return board.Black, nil
	case "white", "w":
		return board.White, nil
	default:
		return board.Empty, fmt.Errorf("unknown color %q", s)
	}
}

// setBoard consumes a flat list of "color x y" triples (everything
// else on the board stays empty) and applies them via Engine.SetBoard.
func setBoard(engine *gomoku.Engine, fields []string) error {
	if len(fields)%3 != 0 {
		return fmt.Errorf("expected color/x/y triples, got %d fields", len(fields))
	}
	cells := make([]board.Color, board.MaxBS*board.MaxBS)
	for i := 0; i < len(fields); i += 3 {
		color, err := parseColor(fields[i])
		if err != nil {
			return err
		}
		x, err := strconv.Atoi(fields[i+1])
		if err != nil {
			return fmt.Errorf("bad x: %w", err)
		}
		y, err := strconv.Atoi(fields[i+2])
		if err != nil {
			return fmt.Errorf("bad y: %w", err)
		}
		cells[board.FromXY(x, y)] = color
	}
	return engine.SetBoard(cells)
}

func playMove(engine *gomoku.Engine, fields []string) error {
	if len(fields) != 3 {
		return fmt.Errorf("usage: play <color> <x> <y>")
	}
	color, err := parseColor(fields[0])
	if err != nil {
		return err
	}
	x, err := strconv.Atoi(fields[1])
	if err != nil {
		return fmt.Errorf("bad x: %w", err)
	}
	y, err := strconv.Atoi(fields[2])
	if err != nil {
		return fmt.Errorf("bad y: %w", err)
	}
	return engine.Play(color, board.FromXY(x, y))
}

func undoMove(engine *gomoku.Engine, fields []string) error {
	if len(fields) != 2 {
		return fmt.Errorf("usage: undo <x> <y>")
	}
	x, err := strconv.Atoi(fields[0])
	if err != nil {
		return fmt.Errorf("bad x: %w", err)
	}
	y, err := strconv.Atoi(fields[1])
	if err != nil {
		return fmt.Errorf("bad y: %w", err)
	}
	return engine.Undo(board.FromXY(x, y))
}

func search(engine *gomoku.Engine, fields []string, nodes int64) error {
	if len(fields) != 1 {
		return fmt.Errorf("usage: search <color>")
	}
	color, err := parseColor(fields[0])
	if err != nil {
		return err
	}
	move, value := engine.FullSearch(color, nodes)
	if move == board.NullLoc {
		fmt.Println("no legal move")
		return nil
	}
	x, y := move.XY()
	fmt.Printf("move=(%d,%d) value=%.4f visits=%d\n", x, y, value, engine.RootVisit())
	return nil
}
