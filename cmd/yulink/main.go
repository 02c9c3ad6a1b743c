// Command yulink links one or more relocatable object files into a
// flat executable image.
package main

/*
Author: Jeff Berkowitz
Copyright (C) 2023 Jeff Berkowitz

This file is part of yuasm.

Yuasm is free software; you can redistribute it and/or
modify it under the terms of the GNU General Public License
as published by the Free Software Foundation, either version 3
of the License, or (at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see http://www.gnu.org/licenses/.
*/

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gmofishsauce/yuasm/internal/diag"
	"github.com/gmofishsauce/yuasm/internal/linker"
)

var command = &cobra.Command{
	Use:   "yulink object.o [object.o ...]",
	Short: "Link relocatable object files into program.bin",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args, cmd)
	},
}

func init() {
	command.SilenceErrors = true
	command.SilenceUsage = true
	command.Flags().StringP("output", "o", "program.bin", "path to write the linked image to")
	command.Flags().BoolVarP(&diag.Debug, "debug", "d", false, "accepted for symmetry with yuasm; the linker prints no trace")
}

func run(objects []string, cmd *cobra.Command) error {
	output, _ := cmd.Flags().GetString("output")

	blob, err := linker.Link(objects, true)
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, blob, 0o644); err != nil {
		return fmt.Errorf("link error: %w", err)
	}
	diag.Pr("wrote %s (%d bytes)", output, len(blob))
	return nil
}

func main() {
	if err := command.Execute(); err != nil {
		diag.Fatalf("%s", err)
	}
}
