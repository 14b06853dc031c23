// Package trainer is the castanet training entry point. It reads labelled
// CSV input files, trains every hashtron of a feedforward network on the
// votes of all samples, evaluates the result and saves the model. Training
// runs on the CPU without backpropagation.
package trainer
