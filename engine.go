// Package gomoku wires together the board, shape index, VCF solver,
// NNUE evaluator adapter, and MCTS driver into the five operations a
// caller actually needs: setBoard, play, undo, fullSearch, and
// clearBoard.
package gomoku

import (
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/nnuecore/gomoku/board"
	"github.com/nnuecore/gomoku/mcts"
	"github.com/nnuecore/gomoku/nnue"
)

// Engine is the single entry point a driver (CLI, GTP-alike protocol,
// whatever calls in) talks to. It owns exactly one position, fixed at
// board.MaxBS x board.MaxBS.
type Engine struct {
	tree   *mcts.Tree
	infer  nnue.Inferencer
	config Config
}

// NewEngine builds an Engine for infer under cfg, loading
// cfg.ParamFile over cfg.MCTS if one is set.
func NewEngine(infer nnue.Inferencer, cfg Config) *Engine {
	if err := cfg.MCTS.LoadParamFile(cfg.ParamFile); err != nil {
		// LoadParamFile only returns an error when the file exists but
		// cannot be opened; MCTS is left untouched and the engine keeps
		// its current params.
		_ = err
	}

	tree := mcts.NewTree(cfg.Rule, infer)
	tree.SetParams(cfg.MCTS)

	return &Engine{tree: tree, infer: infer, config: cfg}
}

// SetBoard replaces the whole position. cells is row-major, length
// board.MaxBS*board.MaxBS.
func (e *Engine) SetBoard(cells []board.Color) error {
	if len(cells) != board.MaxBS*board.MaxBS {
		return errors.Wrapf(ErrUnsupportedSize, "got %d cells", len(cells))
	}
	return e.tree.SetBoard(cells)
}

// Play applies color's move at loc, reusing the matching subtree
// where possible.
func (e *Engine) Play(color board.Color, loc board.Loc) error {
	return e.tree.Play(color, loc)
}

// Undo retracts the stone at loc and discards the whole search tree.
func (e *Engine) Undo(loc board.Loc) error {
	return e.tree.Undo(loc)
}

// ClearBoard resets the engine to an empty board.
func (e *Engine) ClearBoard() {
	e.tree.ClearBoard()
}

// FullSearch searches for color's best move within nodeBudget
// simulations (after an always-run VCF fast-path), returning the move
// and color's win-rate estimate for the position.
func (e *Engine) FullSearch(color board.Color, nodeBudget int64) (move board.Loc, value float64) {
	return e.tree.FullSearch(color, nodeBudget)
}

// Terminate sets or clears the cooperative search-abort flag. Calling
// Terminate(true) from another goroutine while FullSearch is running
// cuts it short: it returns its best move so far instead of spending
// the full nodeBudget. The flag is cleared automatically at the start
// of each FullSearch call.
func (e *Engine) Terminate(v bool) { e.tree.SetTerminate(v) }

// RootVisit and RootValue expose the live root's statistics, mostly
// useful for a driver's own logging.
func (e *Engine) RootVisit() int64   { return e.tree.RootVisit() }
func (e *Engine) RootValue() float64 { return e.tree.RootValue() }

// Close tears the engine down: it closes the injected Inferencer if
// it implements io.Closer, and, if cfg.GraphvizDumpPath was set,
// writes the final search tree there. Errors from either step are
// aggregated rather than short-circuited, so a failure to write the
// debug dump doesn't hide a failure to close the evaluator.
func (e *Engine) Close() error {
	var errs *multierror.Error

	if closer, ok := e.infer.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			errs = multierror.Append(errs, errors.Wrap(err, "close inferencer"))
		}
	}

	if e.config.GraphvizDumpPath != "" {
		if err := e.dumpGraph(); err != nil {
			errs = multierror.Append(errs, errors.Wrap(err, "dump search graph"))
		}
	}

	return errs.ErrorOrNil()
}

func (e *Engine) dumpGraph() error {
	dot, err := mcts.ExportGraph(e.tree, 4)
	if err != nil {
		return err
	}
	return os.WriteFile(e.config.GraphvizDumpPath, []byte(dot), 0o644)
}
