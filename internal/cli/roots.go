package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	perr "github.com/matzehuels/followgraph/pkg/errors"
	"github.com/matzehuels/followgraph/pkg/quadratic"
)

// rootsCommand prints the integer roots of ax² + bx + c = 0.
//
// Flag parsing is disabled so that negative coefficients are not taken for
// shorthand flags.
func (c *CLI) rootsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "roots a b c",
		Short:              "Print the integer roots of ax² + bx + c = 0",
		Example:            `  followgraph roots 1 -3 2`,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, a := range args {
				if a == "-h" || a == "--help" {
					return cmd.Help()
				}
			}
			return runRoots(cmd, args)
		},
	}
	return cmd
}

func runRoots(cmd *cobra.Command, args []string) error {
	if len(args) != 3 {
		return perr.New(perr.ErrCodeInvalidInput, "roots takes exactly 3 coefficients, got %d", len(args))
	}

	var coef [3]int64
	for i, a := range args {
		n, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return perr.Wrap(perr.ErrCodeInvalidInput, err, "coefficient %q is not a 64-bit integer", a)
		}
		coef[i] = n
	}

	roots, err := quadratic.Roots(coef[0], coef[1], coef[2])
	if errors.Is(err, quadratic.ErrDegenerate) {
		return perr.Wrap(perr.ErrCodeInvalidInput, err, "every integer is a root")
	}
	if err != nil {
		return err
	}

	loggerFromContext(cmd.Context()).Debug("solved quadratic", "a", coef[0], "b", coef[1], "c", coef[2], "roots", len(roots))
	if len(roots) == 0 {
		printInfo(cmd.ErrOrStderr(), "No integer roots")
		return nil
	}
	parts := make([]string, len(roots))
	for i, r := range roots {
		parts[i] = strconv.FormatInt(r, 10)
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(parts, " "))
	return nil
}
