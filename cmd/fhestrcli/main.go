// Command fhestrcli drives one oblivious string operation end to end:
// encrypt the inputs, run the operation under internal/simfhe, decrypt
// the result, and print both the FHE result and the elapsed time.
// Grounded on original_source's main.rs, cut down from its timing-macro
// harness to a single cobra command, and on open-policy-agent's cmd
// package for the flag/command wiring style.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cryptlab/fhestrings/fhecompare"
	"github.com/cryptlab/fhestrings/fheclient"
	"github.com/cryptlab/fhestrings/fheconcat"
	"github.com/cryptlab/fhestrings/fhelog"
	"github.com/cryptlab/fhestrings/fhepattern"
	"github.com/cryptlab/fhestrings/fhereplace"
	"github.com/cryptlab/fhestrings/fhesearch"
	"github.com/cryptlab/fhestrings/fhesplit"
	"github.com/cryptlab/fhestrings/fhestring"
	"github.com/cryptlab/fhestrings/internal/simfhe"
	"github.com/cryptlab/fhestrings/oracle"
)

type arguments struct {
	inputString    string
	pattern        string
	charPattern    string
	replacePattern string
	integerArg     int
	hasIntegerArg  bool
	maxRepeat      int
	padding        int
	operation      string
	logLevel       string
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	args := &arguments{}
	var integerArg int
	code := 0

	root := &cobra.Command{
		Use:   "fhestrcli <input-string> <pattern>",
		Short: "Run one oblivious FHE string operation and print the result next to a timing line",
		Long: `fhestrcli encrypts its input under a demonstration-only cleartext backend
(internal/simfhe — not a real FHE scheme), runs the requested operation,
decrypts the result, and prints it beside the elapsed time.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, cliArgs []string) error {
			args.inputString = cliArgs[0]
			args.pattern = cliArgs[1]
			if integerArg >= 0 {
				args.integerArg = integerArg
				args.hasIntegerArg = true
			}
			return runOperation(args)
		},
	}

	root.Flags().StringVarP(&args.charPattern, "char-pattern", "c", "", "single-character pattern, overrides --pattern for char operations")
	root.Flags().StringVarP(&args.replacePattern, "replace-pattern", "r", "", "replacement string for the replace operation")
	root.Flags().IntVarP(&integerArg, "integer-arg", "i", -1, "integer argument (repeat count); -1 means unset")
	root.Flags().IntVar(&args.maxRepeat, "max-repeat", 5, "public upper bound on repeat counts (not read by any current operation)")
	root.Flags().IntVar(&args.padding, "padding", 2, "number of trailing padding null bytes to encrypt with")
	root.Flags().StringVarP(&args.operation, "operation", "o", "find",
		"operation to run: find|rfind|contains|starts-with|ends-with|strip-prefix|strip-suffix|eq|compare|trim|upper|lower|concat|repeat|split|rsplit|split-terminator|split-whitespace|replace")
	root.Flags().StringVar(&args.logLevel, "log-level", "info", "log level: debug|info|warn|error")

	root.SetArgs(argv)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		code = 2
	}
	return code
}

func runOperation(args *arguments) error {
	if err := fhelog.SetLevel(args.logLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	fhelog.Warn("internal/simfhe is a cleartext reference backend; it provides no confidentiality")

	client, server := simfhe.GenKeys()

	encS, err := fheclient.EncryptStrPadding(client, args.inputString, args.padding)
	if err != nil {
		return err
	}
	pattern, err := buildPattern(args)
	if err != nil {
		return err
	}

	start := time.Now()
	output, err := dispatch(server, client, args, encS, pattern)
	elapsed := time.Since(start)
	if err != nil {
		return err
	}

	fmt.Printf("operation: %s\n", args.operation)
	fmt.Printf("input:     %q\n", args.inputString)
	fmt.Printf("pattern:   %q\n", args.pattern)
	fmt.Printf("result:    %s\n", output)
	fmt.Printf("elapsed:   %s\n", elapsed)
	return nil
}

func buildPattern(args *arguments) (fhepattern.Pattern, error) {
	if args.charPattern != "" {
		return fhepattern.NewClearChar(args.charPattern[0]), nil
	}
	return fhepattern.NewClearString(args.pattern), nil
}

func boolResult(client *simfhe.ClientKey, b oracle.CT) string {
	if client.DecryptBool(b) {
		return "true"
	}
	return "false"
}

func boolIndexResult(client *simfhe.ClientKey, found, index oracle.CT) string {
	if !client.DecryptBool(found) {
		return "not found"
	}
	return fmt.Sprintf("found at %d", client.DecryptU32(index))
}

func decryptResult(client *simfhe.ClientKey, s fhestring.FheString) string {
	out, err := fheclient.DecryptString(client, s)
	if err != nil {
		return fmt.Sprintf("<decrypt error: %v>", err)
	}
	return fmt.Sprintf("%q", out)
}

func splitResult(client *simfhe.ClientKey, split fhesplit.Result) string {
	n := client.DecryptU32(split.NumberParts)
	var parts []string
	for i, part := range split.Parts {
		if uint32(i) >= n {
			break
		}
		out, err := fheclient.DecryptString(client, part)
		if err != nil {
			out = fmt.Sprintf("<decrypt error: %v>", err)
		}
		parts = append(parts, fmt.Sprintf("%q", out))
	}
	return fmt.Sprintf("%d parts: [%s]", n, strings.Join(parts, ", "))
}

func dispatch(server *simfhe.Backend, client *simfhe.ClientKey, args *arguments, encS fhestring.FheString, pattern fhepattern.Pattern) (string, error) {
	switch strings.ToLower(args.operation) {
	case "find":
		found, index := fhesearch.Find(server, encS, pattern)
		return boolIndexResult(client, found, index), nil
	case "rfind":
		found, index := fhesearch.Rfind(server, encS, pattern)
		return boolIndexResult(client, found, index), nil
	case "contains":
		return boolResult(client, fhesearch.Contains(server, encS, pattern)), nil
	case "starts-with":
		return boolResult(client, fhesearch.StartsWith(server, encS, pattern)), nil
	case "ends-with":
		return boolResult(client, fhesearch.EndsWith(server, encS, pattern)), nil
	case "strip-prefix":
		ok, stripped := fhesearch.StripPrefix(server, encS, pattern)
		if !client.DecryptBool(ok) {
			return "no match", nil
		}
		return decryptResult(client, stripped), nil
	case "strip-suffix":
		ok, stripped := fhesearch.StripSuffix(server, encS, pattern)
		if !client.DecryptBool(ok) {
			return "no match", nil
		}
		return decryptResult(client, stripped), nil
	case "eq":
		encPattern, err := fheclient.EncryptStr(client, args.pattern)
		if err != nil {
			return "", err
		}
		return boolResult(client, fhecompare.Eq(server, encS, encPattern)), nil
	case "compare":
		encPattern, err := fheclient.EncryptStr(client, args.pattern)
		if err != nil {
			return "", err
		}
		return boolResult(client, fhecompare.Le(server, encS, encPattern)), nil
	case "trim":
		return decryptResult(client, fhecompare.Trim(server, encS)), nil
	case "upper":
		return decryptResult(client, fhecompare.ToUpper(server, encS)), nil
	case "lower":
		return decryptResult(client, fhecompare.ToLower(server, encS)), nil
	case "concat":
		return decryptResult(client, fheconcat.ConcatClear(server, encS, args.pattern)), nil
	case "repeat":
		n := 0
		if args.hasIntegerArg {
			n = args.integerArg
		}
		return decryptResult(client, fheconcat.RepeatClear(server, encS, n)), nil
	case "split":
		return splitResult(client, fhesplit.Split(server, encS, pattern)), nil
	case "rsplit":
		return splitResult(client, fhesplit.RSplit(server, encS, pattern)), nil
	case "split-terminator":
		return splitResult(client, fhesplit.SplitTerminator(server, encS, pattern)), nil
	case "split-whitespace":
		return splitResult(client, fhesplit.SplitAsciiWhitespace(server, encS)), nil
	case "replace":
		newValue, err := fheclient.EncryptStr(client, args.replacePattern)
		if err != nil {
			return "", err
		}
		return decryptResult(client, fhereplace.Replace(server, encS, pattern, newValue)), nil
	default:
		return "", fmt.Errorf("unknown operation %q", args.operation)
	}
}
