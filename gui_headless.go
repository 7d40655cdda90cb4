//go:build headless

package main

func runGui(synth *Synth) error {
	return errHeadless
}
