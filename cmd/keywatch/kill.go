package main

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newKillCmd(g *globalOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "kill <pid>",
		Short: "Terminate a process after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			pid, err := strconv.Atoi(args[0])
			if err != nil || pid <= 0 {
				return fmt.Errorf("invalid pid %q", args[0])
			}

			e, err := newEngine(cmd, g, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeEngine(e, &err)

			req := e.gate.Arm(pid, "")
			if !yes {
				if g.interactive == nil || !g.interactive(cmd.InOrStdin()) {
					e.gate.Cancel(req)
					return errors.New("refusing to terminate without confirmation; pass --yes")
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "%s [y/N] ", req.Prompt())
				line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if a := strings.ToLower(strings.TrimSpace(line)); a != "y" && a != "yes" {
					e.gate.Cancel(req)
					fmt.Fprintln(cmd.OutOrStdout(), "aborted")
					return nil
				}
			}

			out := e.gate.Confirm(req)
			if !out.OK {
				return errors.New(out.Reason)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Reason)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm termination without prompting")
	return cmd
}
