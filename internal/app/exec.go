// Copyright © 2025 Ansisnap contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/app/exec.go
// Summary: Runs a command under a pseudo-terminal and captures its output.
//
// Programs attached to a pipe usually disable color. Running them under a
// PTY makes them emit escape sequences as if on a real terminal, which is
// the whole point of capturing for this tool.

package app

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"

	"github.com/creack/pty"
)

// ptyCols is the terminal width advertised to the captured command.
const ptyCols = 200

// captureCommand runs command through the shell under a pseudo-terminal and
// returns everything it wrote. The command's exit status is ignored: partial
// colored output from a failing command is still renderable.
func captureCommand(command string, rows int) ([]byte, error) {
	cmd := exec.Command("/bin/sh", "-c", command)
	cmd.Env = append(cmd.Environ(), "TERM=xterm-256color")

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(rows),
		Cols: ptyCols,
	})
	if err != nil {
		return nil, fmt.Errorf("start %q under pty: %w", command, err)
	}
	defer ptmx.Close()

	var buf bytes.Buffer
	// Read until the slave side closes; on Linux that surfaces as EIO,
	// which just means end of output.
	if _, err := io.Copy(&buf, ptmx); err != nil && buf.Len() == 0 {
		cmd.Wait()
		return nil, fmt.Errorf("read pty output of %q: %w", command, err)
	}
	cmd.Wait()

	return buf.Bytes(), nil
}
