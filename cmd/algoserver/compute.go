package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/R3E-Network/algorithm_service/internal/app/services/algorithms"
)

func (c *cli) newComputeCmd() *cobra.Command {
	compute := &cobra.Command{
		Use:   "compute",
		Short: "Run an algorithm once and print the outcome as JSON",
	}

	var (
		array     []int
		target    int
		algorithm string
	)

	search := &cobra.Command{
		Use:   "search",
		Short: "Binary search a sorted copy of --array for --target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.checkArray(array); err != nil {
				return err
			}
			return printJSON(cmd, c.algorithms().Search(cmd.Context(), array, target))
		},
	}
	search.Flags().IntSliceVar(&array, "array", nil, "Values to search, comma separated or repeated")
	search.Flags().IntVar(&target, "target", 0, "Value to look for")
	_ = search.MarkFlagRequired("target")

	sortCmd := func(use, short string, run func(*cobra.Command) (any, error)) *cobra.Command {
		cmd := &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := c.checkArray(array); err != nil {
					return err
				}
				out, err := run(cmd)
				if err != nil {
					return err
				}
				return printJSON(cmd, out)
			},
		}
		cmd.Flags().IntSliceVar(&array, "array", nil, "Values to sort, comma separated or repeated")
		return cmd
	}

	quick := sortCmd("quicksort", "Sort --array with quicksort", func(cmd *cobra.Command) (any, error) {
		return c.algorithms().QuickSort(cmd.Context(), array)
	})
	bubble := sortCmd("bubblesort", "Sort --array with bubble sort", func(cmd *cobra.Command) (any, error) {
		return c.algorithms().BubbleSort(cmd.Context(), array)
	})
	byName := sortCmd("sort", "Sort --array with the algorithm named by --algorithm", func(cmd *cobra.Command) (any, error) {
		return c.algorithms().Sort(cmd.Context(), algorithm, array)
	})
	byName.Flags().StringVar(&algorithm, "algorithm", "quickSort", "quickSort or bubbleSort")

	fibonacci := &cobra.Command{
		Use:   "fibonacci <n>",
		Short: "Print the first n Fibonacci numbers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := intArg(args[0])
			if err != nil {
				return err
			}
			out, err := c.algorithms().Fibonacci(cmd.Context(), n)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}

	primes := &cobra.Command{
		Use:   "primes <limit>",
		Short: "Print every prime up to limit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, err := intArg(args[0])
			if err != nil {
				return err
			}
			if limit > c.cfg.Algorithms.MaxPrimeLimit {
				return fmt.Errorf("limit exceeds %d", c.cfg.Algorithms.MaxPrimeLimit)
			}
			return printJSON(cmd, c.algorithms().Primes(cmd.Context(), limit))
		},
	}

	factorial := &cobra.Command{
		Use:   "factorial <n>",
		Short: "Print n!",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := intArg(args[0])
			if err != nil {
				return err
			}
			out, err := c.algorithms().Factorial(cmd.Context(), n)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}

	compute.AddCommand(search, quick, bubble, byName, fibonacci, primes, factorial)
	return compute
}

func (c *cli) algorithms() *algorithms.Service {
	return algorithms.New(c.log)
}

func (c *cli) checkArray(array []int) error {
	if len(array) > c.cfg.Algorithms.MaxArrayLen {
		return fmt.Errorf("--array exceeds %d elements", c.cfg.Algorithms.MaxArrayLen)
	}
	return nil
}

func intArg(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", raw)
	}
	return n, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
