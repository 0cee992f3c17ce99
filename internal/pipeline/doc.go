// Package pipeline provides a framework for executing comparison steps in sequence.
//
// A comparison passes through several stages: extracting both documents,
// segmenting them into sentences, aligning the sentences, scoring the changes
// and assembling the report. Each stage is implemented as a Step that receives
// the shared comparison state and fills in its own part.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling, logging and timing across steps
// 3. It supports cancellation via context between long-running steps
//
// A failing step ends the run. There is no partial result: a comparison
// either produces a full report or an error.
package pipeline
