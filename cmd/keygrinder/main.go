package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/mjwhitta/cli"
	log "github.com/sirupsen/logrus"
)

// Version info
var version = "0.1.0"

// Exit codes
const (
	ExitSuccess = iota
	ExitError
	ExitMissingArg
)

// Global flags
var flags struct {
	vault      string
	wordlist   string
	salt       string
	ciphertext string
	password   string
	outfile    string
	threads    int
	batchSize  int
	stats      int
	verbose    bool
}

// Command to run
var command string
var cmdArgs []string

func init() {
	// Configure cli
	cli.Align = true
	cli.Authors = []string{"keygrinder authors"}
	cli.Banner = fmt.Sprintf("%s [OPTIONS] <command> [args...]", os.Args[0])
	cli.Info(
		"Keygrinder - Legacy Wallet Key Backup Cracker",
		"",
		"Tests candidate passwords against OpenSSL-style (Salted__)",
		"encrypted key backups with a from-scratch MD5/AES-256 pipeline",
		"and routes heuristic matches through exact re-verification.",
	)
	cli.ExitStatus(
		"0 - Success",
		"1 - Error",
	)

	// Define flags (short, long, default, description)
	cli.Flag(&flags.vault, "f", "vault", "", "Vault file of Salted__ records")
	cli.Flag(&flags.wordlist, "w", "wordlist", "", "Wordlist file (omit to read stdin)")
	cli.Flag(&flags.salt, "a", "salt", "", "Salt as hex")
	cli.Flag(&flags.ciphertext, "c", "ciphertext", "", "One 16-byte ciphertext block as hex")
	cli.Flag(&flags.password, "p", "pass", "", "Candidate password")
	cli.Flag(&flags.outfile, "o", "out", "", "Append found passwords to file")
	cli.Flag(&flags.threads, "t", "threads", runtime.NumCPU(), "Worker threads")
	cli.Flag(&flags.batchSize, "b", "batch", 4096, "Candidates per dispatched batch")
	cli.Flag(&flags.stats, "s", "stats", 60, "Seconds between progress reports (0 disables)")
	cli.Flag(&flags.verbose, "v", "verbose", false, "Verbose output")

	// Commands section
	cli.Section("Commands",
		"  crack    Run a wordlist against vault records\n",
		"  derive   Print key material for a password and salt\n",
		"  decrypt  Decrypt one block and print the lane record\n",
		"  verify   Exactly verify a password against a vault record\n",
		"  version  Print version",
	)

	cli.Parse()

	// Get command from args
	if cli.NArg() == 0 {
		cli.Usage(ExitMissingArg)
	}

	command = cli.Arg(0)
	if cli.NArg() > 1 {
		cmdArgs = cli.Args()[1:]
	}

	log.SetOutput(os.Stderr)
	if flags.verbose {
		log.SetLevel(log.DebugLevel)
	}
}

func main() {
	var err error
	switch command {
	case "crack":
		err = cmdCrack(cmdArgs)
	case "derive":
		err = cmdDerive(cmdArgs)
	case "decrypt":
		err = cmdDecrypt(cmdArgs)
	case "verify":
		err = cmdVerify(cmdArgs)
	case "version":
		fmt.Printf("keygrinder %s\n", version)
	case "help":
		cli.Usage(ExitSuccess)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		cli.Usage(ExitError)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
