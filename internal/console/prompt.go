package console

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/food-storage/internal/domain/model"
)

// Prompter reads validated values line by line. Every Read method re-prompts
// until the input is valid and returns io.EOF once the input is exhausted.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
	styles  styles
	today   func() time.Time
}

// NewPrompter creates a Prompter reading from r and writing prompts to w.
// today bounds ReadDate; nil means the current date.
func NewPrompter(r io.Reader, w io.Writer, today func() time.Time) *Prompter {
	if today == nil {
		today = func() time.Time { return model.Today(nil) }
	}
	return &Prompter{
		scanner: bufio.NewScanner(r),
		out:     w,
		styles:  newStyles(w),
		today:   today,
	}
}

func (p *Prompter) readLine(prompt string) (string, error) {
	fmt.Fprint(p.out, p.styles.prompt.Render(prompt+": "))
	if !p.scanner.Scan() {
		fmt.Fprintln(p.out)
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

func (p *Prompter) complain(msg string) {
	fmt.Fprintln(p.out, p.styles.err.Render(msg))
}

// ReadInt reads any integer.
func (p *Prompter) ReadInt(prompt string) (int, error) {
	for {
		line, err := p.readLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			p.complain("Invalid input. Please enter a valid integer.")
			continue
		}
		return n, nil
	}
}

// ReadPositiveInt reads an integer greater than zero.
func (p *Prompter) ReadPositiveInt(prompt string) (int, error) {
	for {
		n, err := p.ReadInt(prompt)
		if err != nil {
			return 0, err
		}
		if n <= 0 {
			p.complain("Please enter a number greater than zero.")
			continue
		}
		return n, nil
	}
}

// ReadFloat reads any finite number.
func (p *Prompter) ReadFloat(prompt string) (float64, error) {
	for {
		line, err := p.readLine(prompt)
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(line, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			p.complain("Invalid input. Please enter a valid number.")
			continue
		}
		return f, nil
	}
}

// ReadNonNegativeFloat reads a finite number that is zero or greater.
func (p *Prompter) ReadNonNegativeFloat(prompt string) (float64, error) {
	for {
		f, err := p.ReadFloat(prompt)
		if err != nil {
			return 0, err
		}
		if f < 0 {
			p.complain("Please enter a number that is zero or greater.")
			continue
		}
		return f, nil
	}
}

// ReadDate reads a dd-MM-yyyy date that is today or later.
func (p *Prompter) ReadDate(prompt string) (time.Time, error) {
	for {
		line, err := p.readLine(prompt + " (dd-MM-yyyy)")
		if err != nil {
			return time.Time{}, err
		}
		date, err := time.Parse(model.InputDateLayout, line)
		if err != nil {
			p.complain("Invalid date format. Please use dd-MM-yyyy.")
			continue
		}
		if date.Before(model.DateOf(p.today())) {
			p.complain("Date cannot be in the past.")
			continue
		}
		return date, nil
	}
}

// ReadString reads a non-blank value that does not parse as a number.
func (p *Prompter) ReadString(prompt string) (string, error) {
	for {
		line, err := p.readLine(prompt)
		if err != nil {
			return "", err
		}
		if line == "" {
			p.complain("Input cannot be blank.")
			continue
		}
		if _, err := strconv.ParseFloat(line, 64); err == nil {
			p.complain("Input cannot be a number.")
			continue
		}
		return line, nil
	}
}
