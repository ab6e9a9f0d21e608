package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Cloud-Foundations/Dominator/lib/flags/commands"
	"github.com/Cloud-Foundations/Dominator/lib/flags/loadflags"
	"github.com/Cloud-Foundations/Dominator/lib/flagutil"
	"github.com/Cloud-Foundations/Dominator/lib/log/cmdlogger"
)

var (
	caseInsensitive = flag.Bool("caseInsensitive", false,
		"Match patterns without regard to ASCII letter case")
	categoryList flagutil.StringList
	configFile   = flag.String("config", "",
		"Name of routing configuration file (overrides -categories)")
	defaultCategory = flag.String("defaultCategory", "",
		"Category receiving lines which match no pattern (default: drop)")
	metricsPort = flag.Uint("metricsPort", 0,
		"Port number to serve metrics on (default: none)")
	optimize = flag.Bool("optimize", false,
		"Use literal prefilters to skip non-matching text")
	outputDir = flag.String("outputDir", ".",
		"Directory to write category log files to")
	workers = flag.Uint("workers", 1,
		"Number of goroutines classifying lines")
)

func init() {
	flag.Var(&categoryList, "categories",
		"Comma separated list of name=pattern categories, tried in order")
}

func printUsage() {
	w := flag.CommandLine.Output()
	fmt.Fprintln(w, "Usage: relog [flags...] command")
	fmt.Fprintln(w, "Common flags:")
	flag.PrintDefaults()
	fmt.Fprintln(w, "Commands:")
	commands.PrintCommands(w, subcommands)
}

var subcommands = []commands.Command{
	{"check-config", "file", 1, 1, checkConfigSubcommand},
	{"match", "pattern text...", 2, -1, matchSubcommand},
	{"route", "", 0, 0, routeSubcommand},
}

func doMain() int {
	if err := loadflags.LoadForCli("relog"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 {
		printUsage()
		return 2
	}
	logger := cmdlogger.New()
	return commands.RunCommands(subcommands, printUsage, logger)
}

func main() {
	os.Exit(doMain())
}
