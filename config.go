package gomoku

import (
	"github.com/nnuecore/gomoku/board"
	"github.com/nnuecore/gomoku/mcts"
)

// Config bundles everything needed to stand up an Engine beyond the
// neural evaluator, which is supplied directly to NewEngine.
type Config struct {
	// Rule is the forbidden-move ruleset the VCF solver enforces.
	Rule board.Rule

	// MCTS holds the PUCT tuning; mcts.DefaultParams is a sane start.
	MCTS mcts.Params

	// ParamFile, if non-empty, is loaded over MCTS at engine
	// construction time (see mcts.Params.LoadParamFile for its format
	// and its forgiving malformed-file policy).
	ParamFile string

	// GraphvizDumpPath, if non-empty, makes Close write the final
	// search tree to this path as a Graphviz DOT file before tearing
	// the engine down.
	GraphvizDumpPath string
}

// DefaultConfig returns a Config for Standard rule play with the
// reference PUCT tuning and no file-based extras.
func DefaultConfig() Config {
	return Config{
		Rule: board.Standard,
		MCTS: mcts.DefaultParams(),
	}
}
