// Package main is the castanet command. It reads castanet.yaml (or the file
// named by CASTANET_CONFIG) and, depending on run_mode, trains a hashtron
// text classifier on the input files or predicts their labels.
package main
