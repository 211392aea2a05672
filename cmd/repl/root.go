package repl

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tbruckmaier/redsim/cmd/util"
	"github.com/tbruckmaier/redsim/lib/client"
)

var (
	// ReplCmd represents the interactive shell command
	ReplCmd = &cobra.Command{
		Use:   "repl",
		Short: "Interactive command shell against an in-process instance",
		Long: util.WrapString("Starts a line-oriented shell. Every line is parsed " +
			"as a command name followed by arguments and dispatched against a fresh " +
			"in-process instance. Type 'quit' or 'exit' to leave."),
		RunE: run,
	}
)

func init() {
	cobra.OnInitialize(util.InitConfig)

	ReplCmd.Flags().String("prompt", "redsim> ", util.WrapString("Prompt shown before each input line"))
}

func run(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	prompt := viper.GetString("prompt")
	c := client.New(nil)
	scanner := bufio.NewScanner(os.Stdin)

	for {
		if c.InTransaction() {
			fmt.Printf("%s(TX) ", strings.TrimSuffix(prompt, " "))
		} else {
			fmt.Print(prompt)
		}

		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}

		tokens, err := splitLine(scanner.Text())
		if err != nil {
			fmt.Printf("(error) %v\n", err)
			continue
		}
		if len(tokens) == 0 {
			continue
		}

		name := strings.ToLower(tokens[0])
		if name == "quit" || name == "exit" {
			return nil
		}

		result, err := c.Do(name, tokens[1:]...)
		if err != nil {
			fmt.Printf("(error) %v\n", err)
			continue
		}
		printResult(result, "")
	}
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// splitLine tokenizes an input line. Double quotes group words and may
// contain backslash-escaped quotes and backslashes.
func splitLine(line string) ([]string, error) {
	var tokens []string
	var current strings.Builder

	inQuotes := false
	inToken := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case inQuotes && ch == '\\' && i+1 < len(line):
			i++
			current.WriteByte(line[i])
		case ch == '"':
			inQuotes = !inQuotes
			inToken = true
		case !inQuotes && (ch == ' ' || ch == '\t'):
			if inToken {
				tokens = append(tokens, current.String())
				current.Reset()
				inToken = false
			}
		default:
			current.WriteByte(ch)
			inToken = true
		}
	}

	if inQuotes {
		return nil, fmt.Errorf("unbalanced quotes")
	}
	if inToken {
		tokens = append(tokens, current.String())
	}
	return tokens, nil
}

// printResult renders one command result the way redis-cli would
func printResult(result any, indent string) {
	switch v := result.(type) {
	case nil:
		fmt.Printf("%s(nil)\n", indent)
	case bool:
		n := 0
		if v {
			n = 1
		}
		fmt.Printf("%s(integer) %d\n", indent, n)
	case int:
		fmt.Printf("%s(integer) %d\n", indent, v)
	case int64:
		fmt.Printf("%s(integer) %d\n", indent, v)
	case string:
		fmt.Printf("%s%q\n", indent, v)
	case error:
		fmt.Printf("%s(error) %v\n", indent, v)
	case []string:
		if len(v) == 0 {
			fmt.Printf("%s(empty list)\n", indent)
			return
		}
		for i, item := range v {
			fmt.Printf("%s%d) %q\n", indent, i+1, item)
		}
	case []any:
		if len(v) == 0 {
			fmt.Printf("%s(empty list)\n", indent)
			return
		}
		for i, item := range v {
			fmt.Printf("%s%d)", indent, i+1)
			printResult(item, " ")
		}
	case map[string]string:
		if len(v) == 0 {
			fmt.Printf("%s(empty hash)\n", indent)
			return
		}
		fields := make([]string, 0, len(v))
		for field := range v {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for i, field := range fields {
			fmt.Printf("%s%d) %q => %q\n", indent, i+1, field, v[field])
		}
	default:
		fmt.Printf("%s%v\n", indent, v)
	}
}
