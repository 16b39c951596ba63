package mcfg

import "errors"

// ErrInvalidMode is returned by Grammar.Run when called with a Mode other
// than ModeRecognize or ModeParse.
var ErrInvalidMode = errors.New("mcfg: invalid mode")

// ErrStepBudgetExceeded is returned by Grammar.Run (and AgendaParser.Run)
// when the parser's MaxSteps cap is reached before the agenda empties. The
// partially-built chart is discarded; no error crosses the boundary other
// than this sentinel (spec.md §5, §7).
var ErrStepBudgetExceeded = errors.New("mcfg: step budget exceeded")
