// Command yuasm assembles one source module into a relocatable object
// file. It is a thin marshaling layer over internal/fsm and
// internal/object; argument parsing, the console trace, and the
// exit-code shape are deliberately kept out of the core packages.
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
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gmofishsauce/yuasm/internal/diag"
	"github.com/gmofishsauce/yuasm/internal/fsm"
	"github.com/gmofishsauce/yuasm/internal/linker"
	"github.com/gmofishsauce/yuasm/internal/object"
)

var command = &cobra.Command{
	Use:   "yuasm source.asm",
	Short: "Assemble one source module into a relocatable object file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args[0], cmd)
	},
}

func init() {
	command.SilenceErrors = true
	command.SilenceUsage = true
	command.Flags().StringP("objdir", "o", "objects", "directory to write the object file into")
	command.Flags().BoolVarP(&diag.Debug, "debug", "d", false, "trace FSM state transitions to stderr")
	command.Flags().BoolP("link", "l", false, "also link the resulting object file into program.bin")
}

func run(source string, cmd *cobra.Command) error {
	objDir, _ := cmd.Flags().GetString("objdir")
	link, _ := cmd.Flags().GetBool("link")

	asm, err := fsm.New(source)
	if err != nil {
		return err
	}
	obj, err := asm.Run()
	if err != nil {
		return err
	}

	base := filepath.Base(source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if err := os.MkdirAll(objDir, 0o755); err != nil {
		return fmt.Errorf("object-file error: %w", err)
	}
	objPath := filepath.Join(objDir, base+".o")
	if err := object.WriteFile(objPath, obj); err != nil {
		return err
	}
	diag.Pr("wrote %s (%d instructions, %d defs, %d callers)", objPath, obj.InstructionCount(), len(obj.Defs), len(obj.Callers))

	if link {
		blob, err := linker.Link([]string{objPath}, false)
		if err != nil {
			return err
		}
		if err := os.WriteFile("program.bin", blob, 0o644); err != nil {
			return fmt.Errorf("link error: %w", err)
		}
		diag.Pr("wrote program.bin (%d bytes)", len(blob))
	}
	return nil
}

func main() {
	if err := command.Execute(); err != nil {
		diag.Fatalf("%s", err)
	}
}
