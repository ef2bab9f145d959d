package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"arithviz/internal/stepper"

	"golang.org/x/term"
)

const clearScreen = "\x1b[H\x1b[2J"

type key int

const (
	keyNone key = iota
	keyNext
	keyPrevious
	keyFirst
	keyLast
	keyQuit
)

// present prints the run once, or hands control to the interactive stepper.
func (c *cli) present(length int, view viewFlags, render func(io.Writer, stepper.Cursor) error) error {
	cur := stepper.New(length)
	switch {
	case view.step >= 0:
		cur = stepper.At(length, view.step)
	case !view.interactive:
		cur = cur.Last()
	}

	if !view.interactive {
		return render(c.out, cur)
	}

	f, isFile := c.in.(*os.File)
	if !isFile || !term.IsTerminal(int(f.Fd())) {
		return stepLoop(c.in, c.out, cur, render)
	}

	state, err := term.MakeRaw(int(f.Fd()))
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer term.Restore(int(f.Fd()), state)

	// Raw mode disables output post-processing, so bare LFs need a CR.
	return stepLoop(f, crlfWriter{w: c.out}, cur, render)
}

// stepLoop redraws the table after every key until the user quits or input
// ends.
func stepLoop(in io.Reader, out io.Writer, cur stepper.Cursor, render func(io.Writer, stepper.Cursor) error) error {
	draw := func() error {
		if _, err := io.WriteString(out, clearScreen); err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := render(&buf, cur); err != nil {
			return err
		}
		buf.WriteString("[n]ext  [p]revious  [g] first  [G] last  [q]uit\n")
		_, err := out.Write(buf.Bytes())
		return err
	}

	if err := draw(); err != nil {
		return err
	}

	r := bufio.NewReader(in)
	for {
		k, err := readKey(r)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch k {
		case keyQuit:
			return nil
		case keyNext:
			cur = cur.Next()
		case keyPrevious:
			cur = cur.Previous()
		case keyFirst:
			cur = cur.First()
		case keyLast:
			cur = cur.Last()
		default:
			continue
		}

		if err := draw(); err != nil {
			return err
		}
	}
}

func readKey(r *bufio.Reader) (key, error) {
	b, err := r.ReadByte()
	if err != nil {
		return keyNone, err
	}

	switch b {
	case 'n', 'l', ' ':
		return keyNext, nil
	case 'p', 'h', 'b':
		return keyPrevious, nil
	case 'g':
		return keyFirst, nil
	case 'G':
		return keyLast, nil
	case 'q', 0x03, 0x04:
		return keyQuit, nil
	case 0x1b:
		// Arrow keys arrive as ESC [ C / ESC [ D.
		if next, err := r.ReadByte(); err != nil || next != '[' {
			return keyNone, err
		}
		dir, err := r.ReadByte()
		if err != nil {
			return keyNone, err
		}
		switch dir {
		case 'C', 'B':
			return keyNext, nil
		case 'D', 'A':
			return keyPrevious, nil
		}
	}
	return keyNone, nil
}

type crlfWriter struct {
	w io.Writer
}

func (cw crlfWriter) Write(p []byte) (int, error) {
	if _, err := cw.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
