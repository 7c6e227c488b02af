package utils

import (
	"fmt"
	"log"

	"github.com/ttacon/chalk"
)

func Check(err error, msg string) {
	if err != nil {
		fmt.Print(chalk.Red)
		log.Print(msg, chalk.Reset)
		log.Panicln(err)
	}
}

func Assert(ok bool, msg string) {
	if !ok {
		fmt.Print(chalk.Red)
		log.Print(msg, chalk.Reset)
		log.Panic()
	}
}

// Warn logs a non-fatal anomaly; used where the simulation must keep
// going (observer failures, stale references).
func Warn(msg string) {
	fmt.Print(chalk.Yellow)
	log.Print(msg, chalk.Reset)
}
