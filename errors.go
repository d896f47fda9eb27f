package gomoku

import "github.com/pkg/errors"

// ErrUnsupportedSize is returned by SetBoard when the caller hands in
// a cell count that doesn't match board.MaxBS*board.MaxBS — this
// engine only ever plays the one fixed board size.
var ErrUnsupportedSize = errors.New("gomoku: only the fixed board size is supported")

// ErrParamFileMalformed names the malformed-parameter-file condition.
// Nothing in this module returns it: mcts.Params.LoadParamFile logs a
// file that fails to parse and returns nil, leaving the params at
// their previous value.
var ErrParamFileMalformed = errors.New("gomoku: parameter file malformed")
